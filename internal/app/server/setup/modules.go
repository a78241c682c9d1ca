/**
 * 装配:模块聚合定义
 * @author: hxll
 * @date: 2025.11.18
 * @description: 认证模块与系统管理模块的组件聚合结构
 * @func: AuthModule / SystemModule
 */
package setup

import (
	authHandler "kimi/internal/handler/auth"
	systemHandler "kimi/internal/handler/system"
	authService "kimi/internal/service/auth"
)

// AuthModule 认证模块输出
// 聚合登录/登出/刷新/注册处理器与认证域服务,供路由装配使用
type AuthModule struct {
	LoginHandler    *authHandler.LoginHandler
	LogoutHandler   *authHandler.LogoutHandler
	RefreshHandler  *authHandler.RefreshHandler
	RegisterHandler *authHandler.RegisterHandler

	TokenService     *authService.TokenService
	SessionService   *authService.SessionService
	PrincipalService *authService.PrincipalService
	PasswordService  *authService.PasswordService
	UserService      *authService.UserService
	RBACService      *authService.RBACService
}

// SystemModule 系统管理模块输出
// 聚合用户/角色/权限/在线会话管理处理器
type SystemModule struct {
	UserHandler       *systemHandler.UserHandler
	RoleHandler       *systemHandler.RoleHandler
	PermissionHandler *systemHandler.PermissionHandler
	SessionHandler    *systemHandler.SessionHandler

	RoleService       *authService.RoleService
	PermissionService *authService.PermissionService
}
