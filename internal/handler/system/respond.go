/**
 * 系统管理接口:响应辅助
 * @author: hxll
 * @date: 2025.11.18
 * @description: 统一的成功/错误响应、业务错误映射与操作者身份解析
 * @func: respondSuccess / respondError / statusCodeOf / parseIDParam
 */
package system

import (
	"errors"
	"net/http"
	"strconv"

	"kimi/internal/app/server/middleware"
	"kimi/internal/model"
	"kimi/internal/pkg/logger"

	"github.com/gin-gonic/gin"
)

// respondSuccess 写入成功响应
func respondSuccess(c *gin.Context, statusCode int, message string, data interface{}) {
	c.JSON(statusCode, model.APIResponse{
		Code:    statusCode,
		Status:  "success",
		Message: message,
		Data:    data,
	})
}

// respondError 写入错误响应
// 未分类错误(5xx)的细节只记日志,不回传客户端
func respondError(c *gin.Context, statusCode int, message string, err error) {
	resp := model.APIResponse{
		Code:    statusCode,
		Status:  "error",
		Message: message,
	}
	if err != nil {
		if statusCode >= http.StatusInternalServerError {
			logger.WithFields(map[string]interface{}{
				"path":      c.FullPath(),
				"client_ip": c.ClientIP(),
				"error":     err.Error(),
			}).Error("internal error")
		} else {
			resp.Error = err.Error()
		}
	}
	c.JSON(statusCode, resp)
}

// statusCodeOf 业务错误到HTTP状态码的映射
// 处理器只认哨兵错误,不解析错误文本
func statusCodeOf(err error) int {
	switch {
	case errors.Is(err, model.ErrInvalidCredentials),
		errors.Is(err, model.ErrTokenInvalid),
		errors.Is(err, model.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, model.ErrAccountDisabled),
		errors.Is(err, model.ErrAccountLocked),
		errors.Is(err, model.ErrPermissionDenied):
		return http.StatusForbidden
	case model.IsNotFound(err):
		return http.StatusNotFound
	case model.IsConflict(err):
		return http.StatusConflict
	case model.IsValidationError(err),
		errors.Is(err, model.ErrPasswordMismatch),
		errors.Is(err, model.ErrPasswordConfirmMismatch),
		errors.Is(err, model.ErrPermissionParentNotFound):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// parseIDParam 解析路径中的数字ID参数
func parseIDParam(c *gin.Context, name string) (uint, bool) {
	value, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || value == 0 {
		respondError(c, http.StatusBadRequest, "invalid "+name, err)
		return 0, false
	}
	return uint(value), true
}

// currentUsername 取当前登录用户名,未认证路由返回空串
func currentUsername(c *gin.Context) string {
	principal := middleware.PrincipalFromContext(c)
	if principal == nil {
		return ""
	}
	return principal.Username
}
