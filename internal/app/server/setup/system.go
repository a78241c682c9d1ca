/**
 * 装配:系统管理模块构建
 * @author: hxll
 * @date: 2025.11.18
 * @description: 初始化系统管理域(用户/角色/权限/在线会话)的仓库、服务与处理器
 * @func: BuildSystemModule
 */
package setup

import (
	systemHandler "kimi/internal/handler/system"
	"kimi/internal/pkg/logger"
	mysqlRepo "kimi/internal/repository/mysql"
	authService "kimi/internal/service/auth"

	"gorm.io/gorm"
)

// BuildSystemModule 构建系统管理模块
// 复用认证模块已构建的用户/密码/会话服务,避免重复装配
func BuildSystemModule(db *gorm.DB, authModule *AuthModule) (*SystemModule, error) {
	logger.WithFields(map[string]interface{}{
		"path":      "internal.app.server.setup.system.BuildSystemModule",
		"operation": "setup",
	}).Info("开始构建系统管理模块")

	roleRepo := mysqlRepo.NewRoleRepository(db)
	permissionRepo := mysqlRepo.NewPermissionRepository(db)

	permissionService := authService.NewPermissionService(permissionRepo)
	roleService := authService.NewRoleService(roleRepo, permissionRepo)

	module := &SystemModule{
		UserHandler:       systemHandler.NewUserHandler(authModule.UserService, authModule.PasswordService),
		RoleHandler:       systemHandler.NewRoleHandler(roleService, authModule.UserService),
		PermissionHandler: systemHandler.NewPermissionHandler(permissionService, authModule.UserService),
		SessionHandler:    systemHandler.NewSessionHandler(authModule.SessionService),

		RoleService:       roleService,
		PermissionService: permissionService,
	}

	logger.WithFields(map[string]interface{}{
		"path":      "internal.app.server.setup.system.BuildSystemModule",
		"operation": "setup",
	}).Info("系统管理模块构建完成")
	return module, nil
}
