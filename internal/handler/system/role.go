/**
 * 系统管理接口:角色管理
 * @author: hxll
 * @date: 2025.11.18
 * @description: 角色CRUD与角色权限整体替换
 * @func:
 * 	1.创建/查询/更新/删除角色
 * 	2.整体替换角色权限
 * 	3.角色统计
 */
package system

import (
	"net/http"

	"kimi/internal/model"
	"kimi/internal/service/auth"

	"github.com/gin-gonic/gin"
)

// RoleHandler 角色管理处理器
type RoleHandler struct {
	roleService *auth.RoleService
	userService *auth.UserService
}

// NewRoleHandler 创建角色管理处理器实例
func NewRoleHandler(roleService *auth.RoleService, userService *auth.UserService) *RoleHandler {
	return &RoleHandler{
		roleService: roleService,
		userService: userService,
	}
}

// operatorID 将令牌中的操作者用户名换算为用户ID,用于审计字段
func (h *RoleHandler) operatorID(c *gin.Context) uint {
	username := currentUsername(c)
	if username == "" {
		return 0
	}
	id, err := h.userService.GetUserIDByUsername(c.Request.Context(), username)
	if err != nil {
		return 0
	}
	return id
}

// CreateRole 创建角色
// POST /api/v1/system/roles
func (h *RoleHandler) CreateRole(c *gin.Context) {
	var req model.CreateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	role, err := h.roleService.CreateRole(c.Request.Context(), &req, h.operatorID(c), c.ClientIP())
	if err != nil {
		respondError(c, statusCodeOf(err), "failed to create role", err)
		return
	}

	respondSuccess(c, http.StatusCreated, "role created successfully", role)
}

// GetRoles 分页获取角色列表
// GET /api/v1/system/roles
func (h *RoleHandler) GetRoles(c *gin.Context) {
	var page model.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondError(c, http.StatusBadRequest, "invalid query parameters", err)
		return
	}

	roles, total, err := h.roleService.ListRoles(c.Request.Context(), &page)
	if err != nil {
		respondError(c, statusCodeOf(err), "failed to list roles", err)
		return
	}

	respondSuccess(c, http.StatusOK, "roles retrieved successfully",
		model.NewPaginationResponse(total, page.Page, page.PageSize, roles))
}

// GetRole 获取角色详情(含权限)
// GET /api/v1/system/roles/:id
func (h *RoleHandler) GetRole(c *gin.Context) {
	roleID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	role, err := h.roleService.GetRole(c.Request.Context(), roleID)
	if err != nil {
		respondError(c, statusCodeOf(err), "failed to get role", err)
		return
	}

	respondSuccess(c, http.StatusOK, "role retrieved successfully", role)
}

// UpdateRole 更新角色
// PUT /api/v1/system/roles/:id
func (h *RoleHandler) UpdateRole(c *gin.Context) {
	roleID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req model.UpdateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	role, err := h.roleService.UpdateRole(c.Request.Context(), roleID, &req, h.operatorID(c), c.ClientIP())
	if err != nil {
		respondError(c, statusCodeOf(err), "failed to update role", err)
		return
	}

	respondSuccess(c, http.StatusOK, "role updated successfully", role)
}

// DeleteRole 删除角色
// DELETE /api/v1/system/roles/:id
func (h *RoleHandler) DeleteRole(c *gin.Context) {
	roleID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.roleService.DeleteRole(c.Request.Context(), roleID, h.operatorID(c), c.ClientIP()); err != nil {
		respondError(c, statusCodeOf(err), "failed to delete role", err)
		return
	}

	respondSuccess(c, http.StatusOK, "role deleted successfully", nil)
}

// ReplaceRolePermissions 整体替换角色权限
// PUT /api/v1/system/roles/:id/permissions
func (h *RoleHandler) ReplaceRolePermissions(c *gin.Context) {
	roleID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req model.ReplaceRolePermissionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	role, err := h.roleService.SetRolePermissions(c.Request.Context(), roleID, req.PermissionIDs, h.operatorID(c), c.ClientIP())
	if err != nil {
		respondError(c, statusCodeOf(err), "failed to replace role permissions", err)
		return
	}

	respondSuccess(c, http.StatusOK, "role permissions replaced successfully", role)
}

// GetRoleStats 获取角色统计信息
// GET /api/v1/system/roles/stats
func (h *RoleHandler) GetRoleStats(c *gin.Context) {
	stats, err := h.roleService.GetRoleStats(c.Request.Context())
	if err != nil {
		respondError(c, statusCodeOf(err), "failed to get role stats", err)
		return
	}
	respondSuccess(c, http.StatusOK, "role stats retrieved successfully", stats)
}
