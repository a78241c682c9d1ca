/**
 * 认证服务层:权限管理服务
 * @author: hxll
 * @date: 2025.11.18
 * @description: 权限CRUD、权限树构建与删除前的层级/引用检查
 * @note: 树构建单次遍历完成;父节点缺失的游离节点静默丢弃,不报错
 */
package auth

import (
	"context"

	"kimi/internal/model"
	"kimi/internal/pkg/logger"
	"kimi/internal/repository/mysql"
)

// PermissionService 权限管理服务
type PermissionService struct {
	permissionRepo *mysql.PermissionRepository
}

// NewPermissionService 创建权限管理服务实例
func NewPermissionService(permissionRepo *mysql.PermissionRepository) *PermissionService {
	return &PermissionService{
		permissionRepo: permissionRepo,
	}
}

// CreatePermission 创建权限
// 权限编码重复返回 ErrPermissionCodeExists;指定父节点时父节点必须存在
func (s *PermissionService) CreatePermission(ctx context.Context, req *model.CreatePermissionRequest, operatorID uint, clientIP string) (*model.Permission, error) {
	existing, err := s.permissionRepo.GetPermissionByCode(ctx, req.Code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, model.ErrPermissionCodeExists
	}

	if req.ParentID != 0 {
		parent, err := s.permissionRepo.GetPermissionByID(ctx, req.ParentID)
		if err != nil {
			return nil, err
		}
		if parent == nil {
			return nil, model.ErrPermissionParentNotFound
		}
	}

	permission := &model.Permission{
		Code:      req.Code,
		Name:      req.Name,
		Type:      req.Type,
		ParentID:  req.ParentID,
		Path:      req.Path,
		Method:    req.Method,
		Icon:      req.Icon,
		SortOrder: req.SortOrder,
		Status:    model.PermissionStatusEnabled,
		CreatedBy: operatorID,
		UpdatedBy: operatorID,
	}
	if err := s.permissionRepo.CreatePermission(ctx, permission); err != nil {
		logger.LogBusinessError(err, "permission_create", operatorID, clientIP, map[string]interface{}{
			"permission_code": req.Code,
			"timestamp":       logger.NowFormatted(),
		})
		return nil, err
	}

	logger.LogBusinessOperation("permission_create", operatorID, "", clientIP, "success", "创建权限成功", map[string]interface{}{
		"permission_code": permission.Code,
		"permission_id":   permission.ID,
		"timestamp":       logger.NowFormatted(),
	})
	return permission, nil
}

// GetPermission 获取权限详情
func (s *PermissionService) GetPermission(ctx context.Context, permissionID uint) (*model.Permission, error) {
	permission, err := s.permissionRepo.GetPermissionByID(ctx, permissionID)
	if err != nil {
		return nil, err
	}
	if permission == nil {
		return nil, model.ErrPermissionNotFound
	}
	return permission, nil
}

// ListPermissions 分页获取权限列表
func (s *PermissionService) ListPermissions(ctx context.Context, page *model.PageRequest) ([]*model.Permission, int64, error) {
	page.Normalize()
	return s.permissionRepo.ListPermissions(ctx, page.Offset(), page.PageSize, page.Keyword)
}

// GetPermissionTree 构建完整权限树
// 单次遍历:先建节点索引再挂接父子关系,父节点不存在的节点不进树
func (s *PermissionService) GetPermissionTree(ctx context.Context) ([]*model.PermissionNode, error) {
	permissions, err := s.permissionRepo.ListAllPermissions(ctx)
	if err != nil {
		return nil, err
	}
	return BuildPermissionTree(permissions), nil
}

// BuildPermissionTree 将扁平权限列表组装为树
// 输入顺序决定同级节点顺序;返回根节点列表,children始终非nil
func BuildPermissionTree(permissions []*model.Permission) []*model.PermissionNode {
	nodes := make(map[uint]*model.PermissionNode, len(permissions))
	for _, permission := range permissions {
		nodes[permission.ID] = &model.PermissionNode{
			Permission: *permission,
			Children:   []*model.PermissionNode{},
		}
	}

	roots := make([]*model.PermissionNode, 0)
	for _, permission := range permissions {
		node := nodes[permission.ID]
		if permission.IsRoot() {
			roots = append(roots, node)
			continue
		}
		parent, ok := nodes[permission.ParentID]
		if !ok {
			// 父节点已不存在,游离节点不进树
			continue
		}
		parent.Children = append(parent.Children, node)
	}
	return roots
}

// UpdatePermission 更新权限
// 变更父节点时校验:父节点存在、不是自身、不会形成环路
func (s *PermissionService) UpdatePermission(ctx context.Context, permissionID uint, req *model.UpdatePermissionRequest, operatorID uint, clientIP string) (*model.Permission, error) {
	permission, err := s.permissionRepo.GetPermissionByID(ctx, permissionID)
	if err != nil {
		return nil, err
	}
	if permission == nil {
		return nil, model.ErrPermissionNotFound
	}

	if req.Code != nil && *req.Code != permission.Code {
		existing, err := s.permissionRepo.GetPermissionByCode(ctx, *req.Code)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != permissionID {
			return nil, model.ErrPermissionCodeExists
		}
		permission.Code = *req.Code
	}
	if req.Name != "" {
		permission.Name = req.Name
	}
	if req.Type != nil {
		permission.Type = *req.Type
	}
	if req.ParentID != nil && *req.ParentID != permission.ParentID {
		if err := s.checkParentChange(ctx, permissionID, *req.ParentID); err != nil {
			return nil, err
		}
		permission.ParentID = *req.ParentID
	}
	if req.Path != nil {
		permission.Path = *req.Path
	}
	if req.Method != nil {
		permission.Method = *req.Method
	}
	if req.Icon != nil {
		permission.Icon = *req.Icon
	}
	if req.SortOrder != nil {
		permission.SortOrder = *req.SortOrder
	}
	if req.Status != nil {
		permission.Status = *req.Status
	}
	permission.UpdatedBy = operatorID

	if err := s.permissionRepo.UpdatePermission(ctx, permission); err != nil {
		logger.LogBusinessError(err, "permission_update", operatorID, clientIP, map[string]interface{}{
			"permission_id": permissionID,
			"timestamp":     logger.NowFormatted(),
		})
		return nil, err
	}

	logger.LogBusinessOperation("permission_update", operatorID, "", clientIP, "success", "更新权限成功", map[string]interface{}{
		"permission_id": permissionID,
		"timestamp":     logger.NowFormatted(),
	})
	return permission, nil
}

// DeletePermission 删除权限
// 存在子节点返回 ErrPermissionHasChildren,仍被角色引用返回 ErrPermissionInUse
func (s *PermissionService) DeletePermission(ctx context.Context, permissionID uint, operatorID uint, clientIP string) error {
	permission, err := s.permissionRepo.GetPermissionByID(ctx, permissionID)
	if err != nil {
		return err
	}
	if permission == nil {
		return model.ErrPermissionNotFound
	}

	childCount, err := s.permissionRepo.CountChildren(ctx, permissionID)
	if err != nil {
		return err
	}
	if childCount > 0 {
		return model.ErrPermissionHasChildren
	}

	refCount, err := s.permissionRepo.CountRolesWithPermission(ctx, permissionID)
	if err != nil {
		return err
	}
	if refCount > 0 {
		return model.ErrPermissionInUse
	}

	if err := s.permissionRepo.DeletePermission(ctx, permissionID); err != nil {
		logger.LogBusinessError(err, "permission_delete", operatorID, clientIP, map[string]interface{}{
			"permission_id": permissionID,
			"timestamp":     logger.NowFormatted(),
		})
		return err
	}

	logger.LogBusinessOperation("permission_delete", operatorID, "", clientIP, "success", "删除权限成功", map[string]interface{}{
		"permission_code": permission.Code,
		"permission_id":   permissionID,
		"timestamp":       logger.NowFormatted(),
	})
	return nil
}

// GetPermissionStats 获取权限统计信息
func (s *PermissionService) GetPermissionStats(ctx context.Context) (*model.PermissionStats, error) {
	return s.permissionRepo.GetPermissionStats(ctx)
}

// checkParentChange 校验父节点变更的合法性
// 从新父节点沿parent链向上走,途中遇到自身即为环路
func (s *PermissionService) checkParentChange(ctx context.Context, permissionID, newParentID uint) error {
	if newParentID == 0 {
		return nil
	}
	if newParentID == permissionID {
		return model.ErrPermissionParentCycle
	}

	permissions, err := s.permissionRepo.ListAllPermissions(ctx)
	if err != nil {
		return err
	}
	parentOf := make(map[uint]uint, len(permissions))
	for _, permission := range permissions {
		parentOf[permission.ID] = permission.ParentID
	}

	if _, ok := parentOf[newParentID]; !ok {
		return model.ErrPermissionParentNotFound
	}

	// parent链长度受权限总数约束,不会死循环
	for current := newParentID; current != 0; {
		parent, ok := parentOf[current]
		if !ok {
			break
		}
		if parent == permissionID {
			return model.ErrPermissionParentCycle
		}
		current = parent
	}
	return nil
}
