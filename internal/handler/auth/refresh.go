/**
 * 认证接口:令牌刷新
 * @author: hxll
 * @date: 2025.11.18
 * @description: 用刷新令牌换发新访问令牌,权限快照重新解析,刷新令牌不轮换
 * @func: Refresh
 */
package auth

import (
	"net/http"

	"kimi/internal/model"
	"kimi/internal/service/auth"

	"github.com/gin-gonic/gin"
)

// RefreshHandler 令牌刷新接口处理器
type RefreshHandler struct {
	sessionService *auth.SessionService
}

// NewRefreshHandler 创建令牌刷新处理器实例
func NewRefreshHandler(sessionService *auth.SessionService) *RefreshHandler {
	return &RefreshHandler{
		sessionService: sessionService,
	}
}

// Refresh 刷新访问令牌接口
// POST /api/v1/auth/refresh
func (h *RefreshHandler) Refresh(c *gin.Context) {
	var req model.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	resp, err := h.sessionService.RefreshAccessToken(c.Request.Context(), req.RefreshToken, c.ClientIP())
	if err != nil {
		respondError(c, statusCodeOf(err), "token refresh failed", err)
		return
	}

	respondSuccess(c, http.StatusOK, "token refreshed successfully", resp)
}
