/**
 * 权限仓库层:权限数据访问
 * @author: hxll
 * @date: 2025.11.18
 * @description: 权限数据访问,单纯数据访问,不包含业务逻辑
 * @func: 权限的增删改查与删除前的引用统计
 */
package mysql

import (
	"context"

	"kimi/internal/model"

	"gorm.io/gorm"
)

// PermissionRepository 权限仓库结构体
type PermissionRepository struct {
	db *gorm.DB // 数据库连接
}

// NewPermissionRepository 创建权限仓库实例
func NewPermissionRepository(db *gorm.DB) *PermissionRepository {
	return &PermissionRepository{
		db: db,
	}
}

// CreatePermission 创建权限
func (r *PermissionRepository) CreatePermission(ctx context.Context, permission *model.Permission) error {
	return r.db.WithContext(ctx).Create(permission).Error
}

// GetPermissionByID 根据ID获取权限
func (r *PermissionRepository) GetPermissionByID(ctx context.Context, id uint) (*model.Permission, error) {
	var permission model.Permission
	err := r.db.WithContext(ctx).First(&permission, id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil // 返回 nil 而不是错误，让业务层处理
		}
		return nil, err
	}
	return &permission, nil
}

// GetPermissionByCode 根据权限编码获取权限
func (r *PermissionRepository) GetPermissionByCode(ctx context.Context, code string) (*model.Permission, error) {
	var permission model.Permission
	err := r.db.WithContext(ctx).Where("code = ?", code).First(&permission).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil // 返回 nil 而不是错误，让业务层处理
		}
		return nil, err
	}
	return &permission, nil
}

// GetPermissionsByIDs 根据ID列表批量获取权限
// 不存在的ID不会出现在结果中
func (r *PermissionRepository) GetPermissionsByIDs(ctx context.Context, ids []uint) ([]*model.Permission, error) {
	if len(ids) == 0 {
		return []*model.Permission{}, nil
	}
	var permissions []*model.Permission
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&permissions).Error
	if err != nil {
		return nil, err
	}
	return permissions, nil
}

// ListAllPermissions 获取全部权限
// 用于权限树构建，排序保证同级展示顺序稳定
func (r *PermissionRepository) ListAllPermissions(ctx context.Context) ([]*model.Permission, error) {
	var permissions []*model.Permission
	err := r.db.WithContext(ctx).
		Order("sort_order ASC, id ASC").
		Find(&permissions).Error
	if err != nil {
		return nil, err
	}
	return permissions, nil
}

// ListPermissions 分页获取权限列表
// keyword 模糊匹配权限编码、权限名称
func (r *PermissionRepository) ListPermissions(ctx context.Context, offset, limit int, keyword string) ([]*model.Permission, int64, error) {
	var permissions []*model.Permission
	var total int64

	query := r.db.WithContext(ctx).Model(&model.Permission{})
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
		Find(&permissions).Error
	if err != nil {
		return nil, 0, err
	}
	return permissions, total, nil
}

// UpdatePermission 更新权限
func (r *PermissionRepository) UpdatePermission(ctx context.Context, permission *model.Permission) error {
	return r.db.WithContext(ctx).Save(permission).Error
}

// CountChildren 统计指定权限的直接子节点数
// 用于权限删除前的层级检查
func (r *PermissionRepository) CountChildren(ctx context.Context, parentID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Permission{}).
		Where("parent_id = ?", parentID).
		Count(&count).Error
	return count, err
}

// CountRolesWithPermission 统计引用指定权限的角色关联数
// 用于权限删除前的引用检查
func (r *PermissionRepository) CountRolesWithPermission(ctx context.Context, permissionID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.RolePermission{}).
		Where("permission_id = ?", permissionID).
		Count(&count).Error
	return count, err
}

// DeletePermission 删除权限(软删除)
// 子节点与角色引用检查由服务层在调用前完成
func (r *PermissionRepository) DeletePermission(ctx context.Context, permissionID uint) error {
	return r.db.WithContext(ctx).Delete(&model.Permission{}, permissionID).Error
}

// GetPermissionStats 获取权限统计信息
func (r *PermissionRepository) GetPermissionStats(ctx context.Context) (*model.PermissionStats, error) {
	var stats model.PermissionStats
	db := r.db.WithContext(ctx)

	if err := db.Model(&model.Permission{}).Count(&stats.Total).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&model.Permission{}).
		Where("type = ?", model.PermissionTypeMenu).
		Count(&stats.Menu).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&model.Permission{}).
		Where("type = ?", model.PermissionTypeButton).
		Count(&stats.Button).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&model.Permission{}).
		Where("type = ?", model.PermissionTypeAPI).
		Count(&stats.API).Error; err != nil {
		return nil, err
	}
	return &stats, nil
}
