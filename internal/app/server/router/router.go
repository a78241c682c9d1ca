/**
 * 路由:路由装配
 * @author: hxll
 * @date: 2025.11.18
 * @description: 注册认证接口与系统管理接口,挂载认证/鉴权/日志中间件
 * @func: NewRouter / SetupRoutes
 * @note: 接口级鉴权采用权限字符串,管理员角色直通
 */
package router

import (
	"net/http"

	"kimi/internal/app/server/middleware"
	"kimi/internal/app/server/setup"
	"kimi/internal/model"

	"github.com/gin-gonic/gin"
)

// 系统管理接口的权限字符串
const (
	AuthorityUserView   = "system:user:view"
	AuthorityUserManage = "system:user:manage"
	AuthorityRoleView   = "system:role:view"
	AuthorityRoleManage = "system:role:manage"
	AuthorityPermView   = "system:permission:view"
	AuthorityPermManage = "system:permission:manage"
)

// Router 路由器
type Router struct {
	engine     *gin.Engine
	middleware *middleware.Manager
	authModule *setup.AuthModule
	sysModule  *setup.SystemModule
}

// NewRouter 创建路由器实例
func NewRouter(mode string, mw *middleware.Manager, authModule *setup.AuthModule, sysModule *setup.SystemModule) *Router {
	gin.SetMode(mode)
	engine := gin.New()
	return &Router{
		engine:     engine,
		middleware: mw,
		authModule: authModule,
		sysModule:  sysModule,
	}
}

// Engine 获取底层gin引擎
func (r *Router) Engine() *gin.Engine {
	return r.engine
}

// SetupRoutes 注册全部路由
func (r *Router) SetupRoutes() {
	r.engine.Use(r.middleware.GinRecoveryMiddleware())
	r.engine.Use(r.middleware.GinLoggingMiddleware())

	// 健康检查
	r.engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, model.APIResponse{
			Code:    http.StatusOK,
			Status:  "success",
			Message: "ok",
		})
	})

	v1 := r.engine.Group("/api/v1")

	// 公开认证接口
	authGroup := v1.Group("/auth")
	{
		authGroup.POST("/login", r.authModule.LoginHandler.Login)
		authGroup.POST("/register", r.authModule.RegisterHandler.Register)
		authGroup.POST("/refresh", r.authModule.RefreshHandler.Refresh)
	}

	// 需认证的认证接口
	authProtected := v1.Group("/auth")
	authProtected.Use(r.middleware.GinJWTAuthMiddleware())
	{
		authProtected.POST("/logout", r.authModule.LogoutHandler.Logout)
	}

	// 系统管理接口,全部需认证
	system := v1.Group("/system")
	system.Use(r.middleware.GinJWTAuthMiddleware())
	{
		// 当前用户
		system.GET("/profile", r.sysModule.UserHandler.GetProfile)
		system.PUT("/profile/password", r.sysModule.UserHandler.ChangePassword)

		// 用户管理
		users := system.Group("/users")
		{
			users.GET("", r.middleware.GinRequireAuthority(AuthorityUserView), r.sysModule.UserHandler.GetUsers)
			users.GET("/stats", r.middleware.GinRequireAuthority(AuthorityUserView), r.sysModule.UserHandler.GetUserStats)
			users.GET("/:id", r.middleware.GinRequireAuthority(AuthorityUserView), r.sysModule.UserHandler.GetUser)
			users.POST("", r.middleware.GinRequireAuthority(AuthorityUserManage), r.sysModule.UserHandler.CreateUser)
			users.PUT("/:id", r.middleware.GinRequireAuthority(AuthorityUserManage), r.sysModule.UserHandler.UpdateUser)
			users.DELETE("/:id", r.middleware.GinRequireAuthority(AuthorityUserManage), r.sysModule.UserHandler.DeleteUser)
			users.PUT("/:id/roles", r.middleware.GinRequireAuthority(AuthorityUserManage), r.sysModule.UserHandler.ReplaceUserRoles)
			users.POST("/:id/password/reset", r.middleware.GinRequireAuthority(AuthorityUserManage), r.sysModule.UserHandler.ResetPassword)
		}

		// 角色管理
		roles := system.Group("/roles")
		{
			roles.GET("", r.middleware.GinRequireAuthority(AuthorityRoleView), r.sysModule.RoleHandler.GetRoles)
			roles.GET("/stats", r.middleware.GinRequireAuthority(AuthorityRoleView), r.sysModule.RoleHandler.GetRoleStats)
			roles.GET("/:id", r.middleware.GinRequireAuthority(AuthorityRoleView), r.sysModule.RoleHandler.GetRole)
			roles.POST("", r.middleware.GinRequireAuthority(AuthorityRoleManage), r.sysModule.RoleHandler.CreateRole)
			roles.PUT("/:id", r.middleware.GinRequireAuthority(AuthorityRoleManage), r.sysModule.RoleHandler.UpdateRole)
			roles.DELETE("/:id", r.middleware.GinRequireAuthority(AuthorityRoleManage), r.sysModule.RoleHandler.DeleteRole)
			roles.PUT("/:id/permissions", r.middleware.GinRequireAuthority(AuthorityRoleManage), r.sysModule.RoleHandler.ReplaceRolePermissions)
		}

		// 权限管理
		permissions := system.Group("/permissions")
		{
			permissions.GET("", r.middleware.GinRequireAuthority(AuthorityPermView), r.sysModule.PermissionHandler.GetPermissions)
			permissions.GET("/tree", r.middleware.GinRequireAuthority(AuthorityPermView), r.sysModule.PermissionHandler.GetPermissionTree)
			permissions.GET("/stats", r.middleware.GinRequireAuthority(AuthorityPermView), r.sysModule.PermissionHandler.GetPermissionStats)
			permissions.GET("/:id", r.middleware.GinRequireAuthority(AuthorityPermView), r.sysModule.PermissionHandler.GetPermission)
			permissions.POST("", r.middleware.GinRequireAuthority(AuthorityPermManage), r.sysModule.PermissionHandler.CreatePermission)
			permissions.PUT("/:id", r.middleware.GinRequireAuthority(AuthorityPermManage), r.sysModule.PermissionHandler.UpdatePermission)
			permissions.DELETE("/:id", r.middleware.GinRequireAuthority(AuthorityPermManage), r.sysModule.PermissionHandler.DeletePermission)
		}

		// 在线会话,仅管理员
		system.GET("/sessions", r.middleware.GinAdminRoleMiddleware(), r.sysModule.SessionHandler.GetOnlineSessions)
	}
}
