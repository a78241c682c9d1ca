/**
 * 装配:认证模块构建
 * @author: hxll
 * @date: 2025.11.18
 * @description: 初始化认证域的工具、仓库、服务与处理器
 * @func: BuildAuthModule
 */
package setup

import (
	"kimi/internal/config"
	authHandler "kimi/internal/handler/auth"
	authPkg "kimi/internal/pkg/auth"
	"kimi/internal/pkg/logger"
	mysqlRepo "kimi/internal/repository/mysql"
	redisRepo "kimi/internal/repository/redis"
	authService "kimi/internal/service/auth"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

// BuildAuthModule 构建认证模块
// redisClient 为 nil 时跳过在线会话缓存,认证功能不受影响
func BuildAuthModule(db *gorm.DB, redisClient *redis.Client, cfg *config.Config) (*AuthModule, error) {
	logger.WithFields(map[string]interface{}{
		"path":      "internal.app.server.setup.auth.BuildAuthModule",
		"operation": "setup",
	}).Info("开始构建认证模块")

	// 1) 工具:令牌管理器与密码管理器
	jwtCfg := cfg.Security.JWT
	tokenManager := authPkg.NewTokenManager(jwtCfg.Secret, jwtCfg.Issuer, jwtCfg.AccessTokenExpire, jwtCfg.RefreshTokenExpire)
	passwordManager := authPkg.NewPasswordManager(authPkg.DefaultPasswordConfig)

	// 2) 仓库
	userRepo := mysqlRepo.NewUserRepository(db)
	roleRepo := mysqlRepo.NewRoleRepository(db)
	var sessionRepo *redisRepo.SessionRepository
	if redisClient != nil {
		sessionRepo = redisRepo.NewSessionRepository(redisClient)
	} else {
		logger.WithFields(map[string]interface{}{
			"path":      "internal.app.server.setup.auth.BuildAuthModule",
			"operation": "setup",
		}).Warn("未配置Redis,在线会话缓存不可用")
	}

	// 3) 服务
	authCfg := &cfg.Security.Auth
	principalService := authService.NewPrincipalService(userRepo)
	tokenService := authService.NewTokenService(tokenManager)
	sessionService := authService.NewSessionService(userRepo, sessionRepo, principalService, tokenService, passwordManager)
	passwordService := authService.NewPasswordService(userRepo, passwordManager, authCfg)
	userService := authService.NewUserService(userRepo, roleRepo, passwordManager, authCfg)
	rbacService := authService.NewRBACService(principalService, authCfg)

	// 4) 处理器
	module := &AuthModule{
		LoginHandler:    authHandler.NewLoginHandler(sessionService),
		LogoutHandler:   authHandler.NewLogoutHandler(sessionService),
		RefreshHandler:  authHandler.NewRefreshHandler(sessionService),
		RegisterHandler: authHandler.NewRegisterHandler(userService),

		TokenService:     tokenService,
		SessionService:   sessionService,
		PrincipalService: principalService,
		PasswordService:  passwordService,
		UserService:      userService,
		RBACService:      rbacService,
	}

	logger.WithFields(map[string]interface{}{
		"path":      "internal.app.server.setup.auth.BuildAuthModule",
		"operation": "setup",
	}).Info("认证模块构建完成")
	return module, nil
}
