/**
 * 中间件:认证与鉴权中间件
 * @author: hxll
 * @date: 2025.11.18
 * @description: JWT访问令牌验证与基于权限字符串的接口级鉴权
 * @func:
 *   - GinJWTAuthMiddleware 验证访问令牌并将认证主体写入上下文
 *   - GinRequireAuthority 要求持有指定权限字符串(管理员直通)
 *   - GinAdminRoleMiddleware 要求管理员角色
 */
package middleware

import (
	"net/http"

	"kimi/internal/model"
	pkgauth "kimi/internal/pkg/auth"

	"github.com/gin-gonic/gin"
)

// 上下文键,供handler取用
const (
	PrincipalKey = "principal" // *model.Principal
	UsernameKey  = "username"  // string
)

// GinJWTAuthMiddleware JWT认证中间件
// 验证通过后基于令牌声明构建认证主体写入上下文,不回源数据库
func (m *Manager) GinJWTAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := pkgauth.ExtractTokenFromHeader(c.GetHeader("Authorization"))
		if tokenString == "" {
			c.JSON(http.StatusUnauthorized, model.APIResponse{
				Code:    http.StatusUnauthorized,
				Status:  "error",
				Message: "authorization header required",
			})
			c.Abort()
			return
		}

		tokenInfo, err := m.tokenService.ValidateAccessToken(tokenString)
		if err != nil {
			c.JSON(http.StatusUnauthorized, model.APIResponse{
				Code:    http.StatusUnauthorized,
				Status:  "error",
				Message: "invalid or expired token",
			})
			c.Abort()
			return
		}

		// 令牌即权限快照,主体直接来自声明
		principal := &model.Principal{
			Username:    tokenInfo.Subject,
			Enabled:     true,
			Authorities: tokenInfo.Authorities,
		}
		c.Set(PrincipalKey, principal)
		c.Set(UsernameKey, principal.Username)

		c.Next()
	}
}

// GinRequireAuthority 权限字符串鉴权中间件
// 管理员角色直通,其他主体必须持有指定权限字符串
func (m *Manager) GinRequireAuthority(authority string) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal := PrincipalFromContext(c)
		if principal == nil {
			c.JSON(http.StatusUnauthorized, model.APIResponse{
				Code:    http.StatusUnauthorized,
				Status:  "error",
				Message: "authentication required",
			})
			c.Abort()
			return
		}

		if !m.rbacService.IsAdmin(principal) && !m.rbacService.HasAuthority(principal, authority) {
			c.JSON(http.StatusForbidden, model.APIResponse{
				Code:    http.StatusForbidden,
				Status:  "error",
				Message: "permission denied",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

// GinAdminRoleMiddleware 管理员鉴权中间件
func (m *Manager) GinAdminRoleMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		principal := PrincipalFromContext(c)
		if principal == nil {
			c.JSON(http.StatusUnauthorized, model.APIResponse{
				Code:    http.StatusUnauthorized,
				Status:  "error",
				Message: "authentication required",
			})
			c.Abort()
			return
		}

		if !m.rbacService.IsAdmin(principal) {
			c.JSON(http.StatusForbidden, model.APIResponse{
				Code:    http.StatusForbidden,
				Status:  "error",
				Message: "admin role required",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

// PrincipalFromContext 从Gin上下文取出认证主体
// 未经过认证中间件的路由返回nil
func PrincipalFromContext(c *gin.Context) *model.Principal {
	value, exists := c.Get(PrincipalKey)
	if !exists {
		return nil
	}
	principal, ok := value.(*model.Principal)
	if !ok {
		return nil
	}
	return principal
}
