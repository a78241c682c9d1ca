/**
 * 认证接口:登录
 * @author: hxll
 * @date: 2025.11.18
 * @description: 用户名密码登录,签发访问令牌与刷新令牌
 * @func: Login
 */
package auth

import (
	"net/http"

	"kimi/internal/model"
	"kimi/internal/service/auth"

	"github.com/gin-gonic/gin"
)

// LoginHandler 登录接口处理器
type LoginHandler struct {
	sessionService *auth.SessionService
}

// NewLoginHandler 创建登录处理器实例
func NewLoginHandler(sessionService *auth.SessionService) *LoginHandler {
	return &LoginHandler{
		sessionService: sessionService,
	}
}

// Login 用户登录接口
// POST /api/v1/auth/login
func (h *LoginHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	resp, err := h.sessionService.Login(c.Request.Context(), &req, c.ClientIP(), c.GetHeader("User-Agent"))
	if err != nil {
		respondError(c, statusCodeOf(err), "login failed", err)
		return
	}

	respondSuccess(c, http.StatusOK, "login successful", resp)
}
