/**
 * 认证接口:登出
 * @author: hxll
 * @date: 2025.11.18
 * @description: 清理在线会话缓存;无状态令牌到期前依然有效,客户端应自行丢弃
 * @func: Logout
 */
package auth

import (
	"net/http"

	"kimi/internal/app/server/middleware"
	"kimi/internal/service/auth"

	"github.com/gin-gonic/gin"
)

// LogoutHandler 登出接口处理器
type LogoutHandler struct {
	sessionService *auth.SessionService
}

// NewLogoutHandler 创建登出处理器实例
func NewLogoutHandler(sessionService *auth.SessionService) *LogoutHandler {
	return &LogoutHandler{
		sessionService: sessionService,
	}
}

// Logout 用户登出接口
// POST /api/v1/auth/logout (需认证)
func (h *LogoutHandler) Logout(c *gin.Context) {
	principal := middleware.PrincipalFromContext(c)
	if principal == nil {
		respondError(c, http.StatusUnauthorized, "authentication required", nil)
		return
	}

	if err := h.sessionService.Logout(c.Request.Context(), principal.Username, c.ClientIP()); err != nil {
		respondError(c, statusCodeOf(err), "logout failed", err)
		return
	}

	respondSuccess(c, http.StatusOK, "logout successful", nil)
}
