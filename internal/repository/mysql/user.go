/**
 * 用户仓库层:用户数据访问
 * @author: hxll
 * @date: 2025.11.18
 * @description: 用户数据访问,单纯数据访问,不包含业务逻辑
 * @func: 用户的增删改查与用户角色关联的整体替换
 */
package mysql

import (
	"context"
	"strings"
	"time"

	"kimi/internal/model"

	"gorm.io/gorm"
)

// UserRepository 用户仓库结构体
// 负责处理用户相关的数据访问，不包含业务逻辑
type UserRepository struct {
	db *gorm.DB // 数据库连接
}

// NewUserRepository 创建用户仓库实例
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{
		db: db,
	}
}

// CreateUser 创建用户
// 密码应该在服务层已经被哈希处理
func (r *UserRepository) CreateUser(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

// GetUserByID 根据ID获取用户
func (r *UserRepository) GetUserByID(ctx context.Context, id uint) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).First(&user, id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil // 返回 nil 而不是错误，让业务层处理
		}
		return nil, err
	}
	return &user, nil
}

// GetUserByUsername 根据用户名获取用户
func (r *UserRepository) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil // 返回 nil 而不是错误，让业务层处理
		}
		return nil, err
	}
	return &user, nil
}

// GetUserByEmail 根据邮箱获取用户
func (r *UserRepository) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil // 返回 nil 而不是错误，让业务层处理
		}
		return nil, err
	}
	return &user, nil
}

// GetUserByUniqueKeys 按用户名/邮箱/手机号任一匹配查找用户
// 一次组合查询完成写入前的唯一性检查,为空串的条件跳过,excludeID用于更新场景排除自身
func (r *UserRepository) GetUserByUniqueKeys(ctx context.Context, username, email, phone string, excludeID uint) (*model.User, error) {
	conditions := make([]string, 0, 3)
	args := make([]interface{}, 0, 4)
	if username != "" {
		conditions = append(conditions, "username = ?")
		args = append(args, username)
	}
	if email != "" {
		conditions = append(conditions, "email = ?")
		args = append(args, email)
	}
	if phone != "" {
		conditions = append(conditions, "phone = ?")
		args = append(args, phone)
	}
	if len(conditions) == 0 {
		return nil, nil
	}

	query := r.db.WithContext(ctx).Where("("+strings.Join(conditions, " OR ")+")", args...)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}

	var user model.User
	err := query.First(&user).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil // 返回 nil 而不是错误，让业务层处理
		}
		return nil, err
	}
	return &user, nil
}

// GetUserWithRoles 根据ID获取用户并预加载角色
func (r *UserRepository) GetUserWithRoles(ctx context.Context, id uint) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).Preload("Roles").First(&user, id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// GetUserWithAuthorities 根据用户名获取用户并预加载角色和角色下的权限
// 用于主体(Principal)解析，状态过滤在服务层完成
func (r *UserRepository) GetUserWithAuthorities(ctx context.Context, username string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).
		Preload("Roles").
		Preload("Roles.Permissions").
		Where("username = ?", username).
		First(&user).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// ListUsers 分页获取用户列表
// keyword 模糊匹配用户名、昵称、邮箱
func (r *UserRepository) ListUsers(ctx context.Context, offset, limit int, keyword string) ([]*model.User, int64, error) {
	var users []*model.User
	var total int64

	query := r.db.WithContext(ctx).Model(&model.User{})
	if keyword != "" {
		like := "%" + keyword + "%"
		query = query.Where("username LIKE ? OR nickname LIKE ? OR email LIKE ?", like, like, like)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Preload("Roles").
		Order("id ASC").
		Offset(offset).
		Limit(limit).
		Find(&users).Error
	if err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

// UpdateUser 更新用户
func (r *UserRepository) UpdateUser(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

// UpdatePassword 更新用户密码哈希
func (r *UserRepository) UpdatePassword(ctx context.Context, userID uint, passwordHash string, operatorID uint) error {
	return r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"password":   passwordHash,
			"updated_by": operatorID,
			"updated_at": time.Now(),
		}).Error
}

// UpdateLastLogin 更新最近登录时间与IP
func (r *UserRepository) UpdateLastLogin(ctx context.Context, userID uint, clientIP string, loginAt time.Time) error {
	return r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"last_login_at": loginAt,
			"last_login_ip": clientIP,
		}).Error
}

// DeleteUser 删除用户(软删除)并清理用户角色关联
func (r *UserRepository) DeleteUser(ctx context.Context, userID uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&model.UserRole{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.User{}, userID).Error
	})
}

// ReplaceUserRoles 整体替换用户的角色关联
// 单个事务内先清空旧关联再写入新关联，不做差量比对
func (r *UserRepository) ReplaceUserRoles(ctx context.Context, userID uint, roleIDs []uint, operatorID uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&model.UserRole{}).Error; err != nil {
			return err
		}
		if len(roleIDs) == 0 {
			return nil
		}
		now := time.Now()
		userRoles := make([]*model.UserRole, 0, len(roleIDs))
		for _, roleID := range roleIDs {
			userRoles = append(userRoles, &model.UserRole{
				UserID:    userID,
				RoleID:    roleID,
				CreatedAt: now,
				CreatedBy: operatorID,
			})
		}
		return tx.Create(&userRoles).Error
	})
}

// GetUserStats 获取用户统计信息
func (r *UserRepository) GetUserStats(ctx context.Context) (*model.UserStats, error) {
	var stats model.UserStats
	db := r.db.WithContext(ctx).Model(&model.User{})

	if err := db.Count(&stats.Total).Error; err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Model(&model.User{}).
		Where("status = ?", model.UserStatusEnabled).
		Count(&stats.Enabled).Error; err != nil {
		return nil, err
	}
	stats.Disabled = stats.Total - stats.Enabled
	return &stats, nil
}
