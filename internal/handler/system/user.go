/**
 * 系统管理接口:用户管理
 * @author: hxll
 * @date: 2025.11.18
 * @description: 管理端用户CRUD、角色替换、密码重置,以及当前用户的个人信息与改密
 * @func:
 * 	1.创建/查询/更新/删除用户
 * 	2.整体替换用户角色
 * 	3.管理员重置密码
 * 	4.当前用户资料与修改密码
 */
package system

import (
	"net/http"

	"kimi/internal/model"
	"kimi/internal/service/auth"

	"github.com/gin-gonic/gin"
)

// UserHandler 用户管理处理器
type UserHandler struct {
	userService     *auth.UserService
	passwordService *auth.PasswordService
}

// NewUserHandler 创建用户管理处理器实例
func NewUserHandler(userService *auth.UserService, passwordService *auth.PasswordService) *UserHandler {
	return &UserHandler{
		userService:     userService,
		passwordService: passwordService,
	}
}

// operatorID 将令牌中的操作者用户名换算为用户ID,用于审计字段
func (h *UserHandler) operatorID(c *gin.Context) uint {
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

// CreateUser 创建用户
// POST /api/v1/system/users
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req model.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	user, err := h.userService.CreateUser(c.Request.Context(), &req, h.operatorID(c), c.ClientIP())
	if err != nil {
		respondError(c, statusCodeOf(err), "failed to create user", err)
		return
	}

	respondSuccess(c, http.StatusCreated, "user created successfully", model.NewUserInfo(user))
}

// GetUsers 分页获取用户列表
// GET /api/v1/system/users
func (h *UserHandler) GetUsers(c *gin.Context) {
	var page model.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondError(c, http.StatusBadRequest, "invalid query parameters", err)
		return
	}

	users, total, err := h.userService.ListUsers(c.Request.Context(), &page)
	if err != nil {
		respondError(c, statusCodeOf(err), "failed to list users", err)
		return
	}

	infos := make([]*model.UserInfo, 0, len(users))
	for _, user := range users {
		infos = append(infos, model.NewUserInfo(user))
	}
	respondSuccess(c, http.StatusOK, "users retrieved successfully",
		model.NewPaginationResponse(total, page.Page, page.PageSize, infos))
}

// GetUser 获取单个用户详情
// GET /api/v1/system/users/:id
func (h *UserHandler) GetUser(c *gin.Context) {
	userID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	user, err := h.userService.GetUser(c.Request.Context(), userID)
	if err != nil {
		respondError(c, statusCodeOf(err), "failed to get user", err)
		return
	}

	respondSuccess(c, http.StatusOK, "user retrieved successfully", model.NewUserInfo(user))
}

// UpdateUser 更新用户
// PUT /api/v1/system/users/:id
func (h *UserHandler) UpdateUser(c *gin.Context) {
	userID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req model.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	user, err := h.userService.UpdateUser(c.Request.Context(), userID, &req, h.operatorID(c), c.ClientIP())
	if err != nil {
		respondError(c, statusCodeOf(err), "failed to update user", err)
		return
	}

	respondSuccess(c, http.StatusOK, "user updated successfully", model.NewUserInfo(user))
}

// DeleteUser 删除用户
// DELETE /api/v1/system/users/:id
func (h *UserHandler) DeleteUser(c *gin.Context) {
	userID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.userService.DeleteUser(c.Request.Context(), userID, h.operatorID(c), c.ClientIP()); err != nil {
		respondError(c, statusCodeOf(err), "failed to delete user", err)
		return
	}

	respondSuccess(c, http.StatusOK, "user deleted successfully", nil)
}

// ReplaceUserRoles 整体替换用户角色
// PUT /api/v1/system/users/:id/roles
func (h *UserHandler) ReplaceUserRoles(c *gin.Context) {
	userID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req model.ReplaceUserRolesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	user, err := h.userService.ReplaceUserRoles(c.Request.Context(), userID, req.RoleIDs, h.operatorID(c), c.ClientIP())
	if err != nil {
		respondError(c, statusCodeOf(err), "failed to replace user roles", err)
		return
	}

	respondSuccess(c, http.StatusOK, "user roles replaced successfully", model.NewUserInfo(user))
}

// ResetPassword 管理员重置用户密码为固定默认值
// POST /api/v1/system/users/:id/password/reset
func (h *UserHandler) ResetPassword(c *gin.Context) {
	userID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.passwordService.ResetPassword(c.Request.Context(), userID, h.operatorID(c), c.ClientIP()); err != nil {
		respondError(c, statusCodeOf(err), "failed to reset password", err)
		return
	}

	respondSuccess(c, http.StatusOK, "password reset successfully", nil)
}

// GetProfile 获取当前登录用户资料
// GET /api/v1/system/profile
func (h *UserHandler) GetProfile(c *gin.Context) {
	username := currentUsername(c)
	if username == "" {
		respondError(c, http.StatusUnauthorized, "authentication required", nil)
		return
	}

	user, err := h.userService.GetUserByUsername(c.Request.Context(), username)
	if err != nil {
		respondError(c, statusCodeOf(err), "failed to get profile", err)
		return
	}

	respondSuccess(c, http.StatusOK, "profile retrieved successfully", model.NewUserInfo(user))
}

// ChangePassword 当前登录用户修改密码
// PUT /api/v1/system/profile/password
func (h *UserHandler) ChangePassword(c *gin.Context) {
	username := currentUsername(c)
	if username == "" {
		respondError(c, http.StatusUnauthorized, "authentication required", nil)
		return
	}

	var req model.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	userID, err := h.userService.GetUserIDByUsername(c.Request.Context(), username)
	if err != nil {
		respondError(c, statusCodeOf(err), "failed to change password", err)
		return
	}

	if err := h.passwordService.ChangePassword(c.Request.Context(), userID, &req, c.ClientIP()); err != nil {
		respondError(c, statusCodeOf(err), "failed to change password", err)
		return
	}

	respondSuccess(c, http.StatusOK, "password changed successfully", nil)
}

// GetUserStats 获取用户统计信息
// GET /api/v1/system/users/stats
func (h *UserHandler) GetUserStats(c *gin.Context) {
	stats, err := h.userService.GetUserStats(c.Request.Context())
	if err != nil {
		respondError(c, statusCodeOf(err), "failed to get user stats", err)
		return
	}
	respondSuccess(c, http.StatusOK, "user stats retrieved successfully", stats)
}
