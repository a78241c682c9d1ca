/**
 * 系统管理接口:权限管理
 * @author: hxll
 * @date: 2025.11.18
 * @description: 权限CRUD与权限树查询
 * @func:
 * 	1.创建/查询/更新/删除权限
 * 	2.权限树查询
 * 	3.权限统计
 */
package system

import (
	"net/http"

	"kimi/internal/model"
	"kimi/internal/service/auth"

	"github.com/gin-gonic/gin"
)

// PermissionHandler 权限管理处理器
type PermissionHandler struct {
	permissionService *auth.PermissionService
	userService       *auth.UserService
}

// NewPermissionHandler 创建权限管理处理器实例
func NewPermissionHandler(permissionService *auth.PermissionService, userService *auth.UserService) *PermissionHandler {
	return &PermissionHandler{
		permissionService: permissionService,
		userService:       userService,
	}
}

// operatorID 将令牌中的操作者用户名换算为用户ID,用于审计字段
func (h *PermissionHandler) operatorID(c *gin.Context) uint {
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

// CreatePermission 创建权限
// POST /api/v1/system/permissions
func (h *PermissionHandler) CreatePermission(c *gin.Context) {
	var req model.CreatePermissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	permission, err := h.permissionService.CreatePermission(c.Request.Context(), &req, h.operatorID(c), c.ClientIP())
	if err != nil {
		respondError(c, statusCodeOf(err), "failed to create permission", err)
		return
	}

	respondSuccess(c, http.StatusCreated, "permission created successfully", permission)
}

// GetPermissions 分页获取权限列表
// GET /api/v1/system/permissions
func (h *PermissionHandler) GetPermissions(c *gin.Context) {
	var page model.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondError(c, http.StatusBadRequest, "invalid query parameters", err)
		return
	}

	permissions, total, err := h.permissionService.ListPermissions(c.Request.Context(), &page)
	if err != nil {
		respondError(c, statusCodeOf(err), "failed to list permissions", err)
		return
	}

	respondSuccess(c, http.StatusOK, "permissions retrieved successfully",
		model.NewPaginationResponse(total, page.Page, page.PageSize, permissions))
}

// GetPermissionTree 获取完整权限树
// GET /api/v1/system/permissions/tree
func (h *PermissionHandler) GetPermissionTree(c *gin.Context) {
	tree, err := h.permissionService.GetPermissionTree(c.Request.Context())
	if err != nil {
		respondError(c, statusCodeOf(err), "failed to get permission tree", err)
		return
	}
	respondSuccess(c, http.StatusOK, "permission tree retrieved successfully", tree)
}

// GetPermission 获取权限详情
// GET /api/v1/system/permissions/:id
func (h *PermissionHandler) GetPermission(c *gin.Context) {
	permissionID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	permission, err := h.permissionService.GetPermission(c.Request.Context(), permissionID)
	if err != nil {
		respondError(c, statusCodeOf(err), "failed to get permission", err)
		return
	}

	respondSuccess(c, http.StatusOK, "permission retrieved successfully", permission)
}

// UpdatePermission 更新权限
// PUT /api/v1/system/permissions/:id
func (h *PermissionHandler) UpdatePermission(c *gin.Context) {
	permissionID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req model.UpdatePermissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	permission, err := h.permissionService.UpdatePermission(c.Request.Context(), permissionID, &req, h.operatorID(c), c.ClientIP())
	if err != nil {
		respondError(c, statusCodeOf(err), "failed to update permission", err)
		return
	}

	respondSuccess(c, http.StatusOK, "permission updated successfully", permission)
}

// DeletePermission 删除权限
// DELETE /api/v1/system/permissions/:id
func (h *PermissionHandler) DeletePermission(c *gin.Context) {
	permissionID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.permissionService.DeletePermission(c.Request.Context(), permissionID, h.operatorID(c), c.ClientIP()); err != nil {
		respondError(c, statusCodeOf(err), "failed to delete permission", err)
		return
	}

	respondSuccess(c, http.StatusOK, "permission deleted successfully", nil)
}

// GetPermissionStats 获取权限统计信息
// GET /api/v1/system/permissions/stats
func (h *PermissionHandler) GetPermissionStats(c *gin.Context) {
	stats, err := h.permissionService.GetPermissionStats(c.Request.Context())
	if err != nil {
		respondError(c, statusCodeOf(err), "failed to get permission stats", err)
		return
	}
	respondSuccess(c, http.StatusOK, "permission stats retrieved successfully", stats)
}
