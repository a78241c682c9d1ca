/**
 * 系统管理接口:在线会话
 * @author: hxll
 * @date: 2025.11.18
 * @description: 管理端在线用户列表,数据来自Redis会话缓存,仅供展示
 * @func: GetOnlineSessions
 */
package system

import (
	"net/http"

	"kimi/internal/service/auth"

	"github.com/gin-gonic/gin"
)

// SessionHandler 在线会话处理器
type SessionHandler struct {
	sessionService *auth.SessionService
}

// NewSessionHandler 创建在线会话处理器实例
func NewSessionHandler(sessionService *auth.SessionService) *SessionHandler {
	return &SessionHandler{
		sessionService: sessionService,
	}
}

// GetOnlineSessions 获取在线会话列表
// GET /api/v1/system/sessions
func (h *SessionHandler) GetOnlineSessions(c *gin.Context) {
	sessions, err := h.sessionService.ListOnlineSessions(c.Request.Context())
	if err != nil {
		respondError(c, statusCodeOf(err), "failed to list online sessions", err)
		return
	}
	respondSuccess(c, http.StatusOK, "online sessions retrieved successfully", sessions)
}
