/**
 * 角色仓库层:角色数据访问
 * @author: hxll
 * @date: 2025.11.18
 * @description: 角色数据访问,单纯数据访问,不包含业务逻辑
 * @func: 角色的增删改查与角色权限关联的整体替换
 */
package mysql

import (
	"context"
	"time"

	"kimi/internal/model"

	"gorm.io/gorm"
)

// RoleRepository 角色仓库结构体
type RoleRepository struct {
	db *gorm.DB // 数据库连接
}

// NewRoleRepository 创建角色仓库实例
func NewRoleRepository(db *gorm.DB) *RoleRepository {
	return &RoleRepository{
		db: db,
	}
}

// CreateRole 创建角色
func (r *RoleRepository) CreateRole(ctx context.Context, role *model.Role) error {
	return r.db.WithContext(ctx).Create(role).Error
}

// GetRoleByID 根据ID获取角色
func (r *RoleRepository) GetRoleByID(ctx context.Context, id uint) (*model.Role, error) {
	var role model.Role
	err := r.db.WithContext(ctx).First(&role, id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil // 返回 nil 而不是错误，让业务层处理
		}
		return nil, err
	}
	return &role, nil
}

// GetRoleByCode 根据角色编码获取角色
func (r *RoleRepository) GetRoleByCode(ctx context.Context, code string) (*model.Role, error) {
	var role model.Role
	err := r.db.WithContext(ctx).Where("code = ?", code).First(&role).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil // 返回 nil 而不是错误，让业务层处理
		}
		return nil, err
	}
	return &role, nil
}

// GetRoleWithPermissions 根据ID获取角色并预加载权限
func (r *RoleRepository) GetRoleWithPermissions(ctx context.Context, id uint) (*model.Role, error) {
	var role model.Role
	err := r.db.WithContext(ctx).Preload("Permissions").First(&role, id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &role, nil
}

// GetRolesByIDs 根据ID列表批量获取角色
// 不存在的ID不会出现在结果中
func (r *RoleRepository) GetRolesByIDs(ctx context.Context, ids []uint) ([]*model.Role, error) {
	if len(ids) == 0 {
		return []*model.Role{}, nil
	}
	var roles []*model.Role
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&roles).Error
	if err != nil {
		return nil, err
	}
	return roles, nil
}

// ListRoles 分页获取角色列表
// keyword 模糊匹配角色编码、角色名称
func (r *RoleRepository) ListRoles(ctx context.Context, offset, limit int, keyword string) ([]*model.Role, int64, error) {
	var roles []*model.Role
	var total int64

	query := r.db.WithContext(ctx).Model(&model.Role{})
	if keyword != "" {
		like := "%" + keyword + "%"
		query = query.Where("code LIKE ? OR name LIKE ?", like, like)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("sort_order ASC, id ASC").
		Offset(offset).
		Limit(limit).
		Find(&roles).Error
	if err != nil {
		return nil, 0, err
	}
	return roles, total, nil
}

// UpdateRole 更新角色
func (r *RoleRepository) UpdateRole(ctx context.Context, role *model.Role) error {
	return r.db.WithContext(ctx).Save(role).Error
}

// CountUsersWithRole 统计持有指定角色的用户关联数
// 用于角色删除前的引用检查
func (r *RoleRepository) CountUsersWithRole(ctx context.Context, roleID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.UserRole{}).
		Where("role_id = ?", roleID).
		Count(&count).Error
	return count, err
}

// DeleteRole 删除角色(软删除)并清理角色权限关联
// 引用检查由服务层在调用前完成
func (r *RoleRepository) DeleteRole(ctx context.Context, roleID uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("role_id = ?", roleID).Delete(&model.RolePermission{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Role{}, roleID).Error
	})
}

// ReplaceRolePermissions 整体替换角色的权限关联
// 单个事务内先清空旧关联再写入新关联，不做差量比对
func (r *RoleRepository) ReplaceRolePermissions(ctx context.Context, roleID uint, permissionIDs []uint, operatorID uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("role_id = ?", roleID).Delete(&model.RolePermission{}).Error; err != nil {
			return err
		}
		if len(permissionIDs) == 0 {
			return nil
		}
		now := time.Now()
		rolePermissions := make([]*model.RolePermission, 0, len(permissionIDs))
		for _, permissionID := range permissionIDs {
			rolePermissions = append(rolePermissions, &model.RolePermission{
				RoleID:       roleID,
				PermissionID: permissionID,
				CreatedAt:    now,
				CreatedBy:    operatorID,
			})
		}
		return tx.Create(&rolePermissions).Error
	})
}

// GetRoleStats 获取角色统计信息
func (r *RoleRepository) GetRoleStats(ctx context.Context) (*model.RoleStats, error) {
	var stats model.RoleStats
	if err := r.db.WithContext(ctx).Model(&model.Role{}).Count(&stats.Total).Error; err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Model(&model.Role{}).
		Where("status = ?", model.RoleStatusEnabled).
		Count(&stats.Enabled).Error; err != nil {
		return nil, err
	}
	stats.Disabled = stats.Total - stats.Enabled
	return &stats, nil
}
