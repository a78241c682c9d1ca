/**
 * 认证接口:注册
 * @author: hxll
 * @date: 2025.11.18
 * @description: 用户自助注册,注册用户挂默认角色
 * @func: Register
 */
package auth

import (
	"net/http"

	"kimi/internal/model"
	"kimi/internal/service/auth"

	"github.com/gin-gonic/gin"
)

// RegisterHandler 注册接口处理器
type RegisterHandler struct {
	userService *auth.UserService
}

// NewRegisterHandler 创建注册处理器实例
func NewRegisterHandler(userService *auth.UserService) *RegisterHandler {
	return &RegisterHandler{
		userService: userService,
	}
}

// Register 用户注册接口
// POST /api/v1/auth/register
func (h *RegisterHandler) Register(c *gin.Context) {
	var req model.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	resp, err := h.userService.Register(c.Request.Context(), &req, c.ClientIP())
	if err != nil {
		respondError(c, statusCodeOf(err), "registration failed", err)
		return
	}

	respondSuccess(c, http.StatusCreated, "registration successful", resp)
}
