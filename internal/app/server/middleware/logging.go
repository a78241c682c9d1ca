/**
 * 中间件:日志与恢复中间件
 * @author: hxll
 * @date: 2025.11.18
 * @description: HTTP访问日志记录与panic恢复
 * @func:
 *   - GinLoggingMiddleware 记录请求方法/路径/状态码/耗时
 *   - GinRecoveryMiddleware panic恢复并返回500
 */
package middleware

import (
	"net/http"
	"time"

	"kimi/internal/model"
	"kimi/internal/pkg/logger"

	"github.com/gin-gonic/gin"
)

// GinLoggingMiddleware Gin访问日志中间件
func (m *Manager) GinLoggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		clientIP := c.ClientIP()

		c.Next()

		duration := time.Since(start)
		statusCode := c.Writer.Status()

		username := ""
		if uname, exists := c.Get(UsernameKey); exists {
			if unameStr, ok := uname.(string); ok {
				username = unameStr
			}
		}

		result := "success"
		if statusCode >= http.StatusBadRequest {
			result = "failed"
		}
		logger.LogBusinessOperation("http_request", 0, username, clientIP, result, "API Request", map[string]interface{}{
			"method":        c.Request.Method,
			"url":           c.Request.URL.String(),
			"status_code":   statusCode,
			"duration_ms":   duration.Milliseconds(),
			"user_agent":    c.GetHeader("User-Agent"),
			"response_size": int64(c.Writer.Size()),
			"timestamp":     logger.NowFormatted(),
		})
	}
}

// GinRecoveryMiddleware panic恢复中间件
func (m *Manager) GinRecoveryMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				logger.WithFields(map[string]interface{}{
					"panic":     r,
					"method":    c.Request.Method,
					"url":       c.Request.URL.String(),
					"client_ip": c.ClientIP(),
					"timestamp": logger.NowFormatted(),
				}).Error("panic recovered")

				c.JSON(http.StatusInternalServerError, model.APIResponse{
					Code:    http.StatusInternalServerError,
					Status:  "error",
					Message: "internal server error",
				})
				c.Abort()
			}
		}()
		c.Next()
	}
}
