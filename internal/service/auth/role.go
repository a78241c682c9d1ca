/**
 * 认证服务层:角色管理服务
 * @author: hxll
 * @date: 2025.11.18
 * @description: 角色CRUD与角色权限整体替换
 * @note: 角色编码创建后不可修改;被用户引用的角色禁止删除
 */
package auth

import (
	"context"

	"kimi/internal/model"
	"kimi/internal/pkg/logger"
	"kimi/internal/repository/mysql"
)

// RoleService 角色管理服务
type RoleService struct {
	roleRepo       *mysql.RoleRepository
	permissionRepo *mysql.PermissionRepository
}

// NewRoleService 创建角色管理服务实例
func NewRoleService(roleRepo *mysql.RoleRepository, permissionRepo *mysql.PermissionRepository) *RoleService {
	return &RoleService{
		roleRepo:       roleRepo,
		permissionRepo: permissionRepo,
	}
}

// CreateRole 创建角色
// 角色编码重复返回 ErrRoleCodeExists;可同时指定初始权限列表
func (s *RoleService) CreateRole(ctx context.Context, req *model.CreateRoleRequest, operatorID uint, clientIP string) (*model.Role, error) {
	existing, err := s.roleRepo.GetRoleByCode(ctx, req.Code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, model.ErrRoleCodeExists
	}

	role := &model.Role{
		Code:        req.Code,
		Name:        req.Name,
		Description: req.Description,
		Status:      model.RoleStatusEnabled,
		SortOrder:   req.SortOrder,
		CreatedBy:   operatorID,
		UpdatedBy:   operatorID,
	}
	if err := s.roleRepo.CreateRole(ctx, role); err != nil {
		logger.LogBusinessError(err, "role_create", operatorID, clientIP, map[string]interface{}{
			"role_code": req.Code,
			"timestamp": logger.NowFormatted(),
		})
		return nil, err
	}

	if len(req.PermissionIDs) > 0 {
		validIDs, err := s.filterValidPermissionIDs(ctx, req.PermissionIDs)
		if err != nil {
			return nil, err
		}
		if err := s.roleRepo.ReplaceRolePermissions(ctx, role.ID, validIDs, operatorID); err != nil {
			return nil, err
		}
	}

	logger.LogBusinessOperation("role_create", operatorID, "", clientIP, "success", "创建角色成功", map[string]interface{}{
		"role_code": role.Code,
		"role_id":   role.ID,
		"timestamp": logger.NowFormatted(),
	})
	return s.roleRepo.GetRoleWithPermissions(ctx, role.ID)
}

// GetRole 获取角色详情(含权限)
func (s *RoleService) GetRole(ctx context.Context, roleID uint) (*model.Role, error) {
	role, err := s.roleRepo.GetRoleWithPermissions(ctx, roleID)
	if err != nil {
		return nil, err
	}
	if role == nil {
		return nil, model.ErrRoleNotFound
	}
	return role, nil
}

// ListRoles 分页获取角色列表
func (s *RoleService) ListRoles(ctx context.Context, page *model.PageRequest) ([]*model.Role, int64, error) {
	page.Normalize()
	return s.roleRepo.ListRoles(ctx, page.Offset(), page.PageSize, page.Keyword)
}

// UpdateRole 更新角色
// 角色编码是稳定的业务标识,不提供修改入口
func (s *RoleService) UpdateRole(ctx context.Context, roleID uint, req *model.UpdateRoleRequest, operatorID uint, clientIP string) (*model.Role, error) {
	role, err := s.roleRepo.GetRoleByID(ctx, roleID)
	if err != nil {
		return nil, err
	}
	if role == nil {
		return nil, model.ErrRoleNotFound
	}

	if req.Name != "" {
		role.Name = req.Name
	}
	if req.Description != "" {
		role.Description = req.Description
	}
	if req.Status != nil {
		role.Status = *req.Status
	}
	if req.SortOrder != nil {
		role.SortOrder = *req.SortOrder
	}
	role.UpdatedBy = operatorID

	if err := s.roleRepo.UpdateRole(ctx, role); err != nil {
		logger.LogBusinessError(err, "role_update", operatorID, clientIP, map[string]interface{}{
			"role_id":   roleID,
			"timestamp": logger.NowFormatted(),
		})
		return nil, err
	}

	logger.LogBusinessOperation("role_update", operatorID, "", clientIP, "success", "更新角色成功", map[string]interface{}{
		"role_id":   roleID,
		"timestamp": logger.NowFormatted(),
	})
	return role, nil
}

// DeleteRole 删除角色
// 仍被用户持有的角色返回 ErrRoleInUse,删除时一并清理角色权限关联
func (s *RoleService) DeleteRole(ctx context.Context, roleID uint, operatorID uint, clientIP string) error {
	role, err := s.roleRepo.GetRoleByID(ctx, roleID)
	if err != nil {
		return err
	}
	if role == nil {
		return model.ErrRoleNotFound
	}

	count, err := s.roleRepo.CountUsersWithRole(ctx, roleID)
	if err != nil {
		return err
	}
	if count > 0 {
		return model.ErrRoleInUse
	}

	if err := s.roleRepo.DeleteRole(ctx, roleID); err != nil {
		logger.LogBusinessError(err, "role_delete", operatorID, clientIP, map[string]interface{}{
			"role_id":   roleID,
			"timestamp": logger.NowFormatted(),
		})
		return err
	}

	logger.LogBusinessOperation("role_delete", operatorID, "", clientIP, "success", "删除角色成功", map[string]interface{}{
		"role_code": role.Code,
		"role_id":   roleID,
		"timestamp": logger.NowFormatted(),
	})
	return nil
}

// SetRolePermissions 整体替换角色权限
// 列表中不存在的权限ID静默忽略,空列表清空角色全部权限
func (s *RoleService) SetRolePermissions(ctx context.Context, roleID uint, permissionIDs []uint, operatorID uint, clientIP string) (*model.Role, error) {
	role, err := s.roleRepo.GetRoleByID(ctx, roleID)
	if err != nil {
		return nil, err
	}
	if role == nil {
		return nil, model.ErrRoleNotFound
	}

	validIDs, err := s.filterValidPermissionIDs(ctx, permissionIDs)
	if err != nil {
		return nil, err
	}
	if err := s.roleRepo.ReplaceRolePermissions(ctx, roleID, validIDs, operatorID); err != nil {
		logger.LogBusinessError(err, "role_set_permissions", operatorID, clientIP, map[string]interface{}{
			"role_id":   roleID,
			"timestamp": logger.NowFormatted(),
		})
		return nil, err
	}

	logger.LogBusinessOperation("role_set_permissions", operatorID, "", clientIP, "success", "替换角色权限成功", map[string]interface{}{
		"role_id":        roleID,
		"permission_ids": validIDs,
		"timestamp":      logger.NowFormatted(),
	})
	return s.roleRepo.GetRoleWithPermissions(ctx, roleID)
}

// GetRoleStats 获取角色统计信息
func (s *RoleService) GetRoleStats(ctx context.Context) (*model.RoleStats, error) {
	return s.roleRepo.GetRoleStats(ctx)
}

// filterValidPermissionIDs 过滤掉不存在的权限ID
func (s *RoleService) filterValidPermissionIDs(ctx context.Context, permissionIDs []uint) ([]uint, error) {
	permissions, err := s.permissionRepo.GetPermissionsByIDs(ctx, permissionIDs)
	if err != nil {
		return nil, err
	}
	validIDs := make([]uint, 0, len(permissions))
	for _, permission := range permissions {
		validIDs = append(validIDs, permission.ID)
	}
	return validIDs, nil
}
