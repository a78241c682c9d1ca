/**
 * 中间件:中间件管理器
 * @author: hxll
 * @date: 2025.11.18
 * @description: 统一持有中间件依赖的服务实例
 * @func: NewManager
 */
package middleware

import (
	"kimi/internal/service/auth"
)

// Manager 中间件管理器
// 集中注入中间件需要的服务依赖
type Manager struct {
	tokenService *auth.TokenService
	rbacService  *auth.RBACService
}

// NewManager 创建中间件管理器实例
func NewManager(tokenService *auth.TokenService, rbacService *auth.RBACService) *Manager {
	return &Manager{
		tokenService: tokenService,
		rbacService:  rbacService,
	}
}
