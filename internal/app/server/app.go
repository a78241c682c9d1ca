/**
 * 应用:服务端应用生命周期
 * @author: hxll
 * @date: 2025.11.18
 * @description: 装配数据库/Redis/模块/路由,管理HTTP服务的启动与优雅关闭
 * @func: NewApp / Start / Stop
 */
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"kimi/internal/app/server/middleware"
	"kimi/internal/app/server/router"
	"kimi/internal/app/server/setup"
	"kimi/internal/config"
	"kimi/internal/pkg/database"
	"kimi/internal/pkg/logger"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

// App 服务端应用
type App struct {
	cfg         *config.Config
	db          *gorm.DB
	redisClient *redis.Client
	httpServer  *http.Server
	stopWatcher func() error
}

// NewApp 创建应用实例并完成全部装配
func NewApp(cfg *config.Config) (*App, error) {
	db, err := database.NewMySQLConnection(&cfg.Database.MySQL)
	if err != nil {
		return nil, fmt.Errorf("failed to init mysql: %w", err)
	}

	// Redis不可用时降级运行,在线会话缓存失效但认证不受影响
	var redisClient *redis.Client
	if cfg.Database.Redis.Host != "" {
		redisClient, err = database.NewRedisConnection(&cfg.Database.Redis)
		if err != nil {
			logger.WithFields(map[string]interface{}{
				"error": err.Error(),
			}).Warn("Redis连接失败,在线会话缓存不可用")
			redisClient = nil
		}
	}

	authModule, err := setup.BuildAuthModule(db, redisClient, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to build auth module: %w", err)
	}
	sysModule, err := setup.BuildSystemModule(db, authModule)
	if err != nil {
		return nil, fmt.Errorf("failed to build system module: %w", err)
	}

	mw := middleware.NewManager(authModule.TokenService, authModule.RBACService)
	r := router.NewRouter(cfg.Server.Mode, mw, authModule, sysModule)
	r.SetupRoutes()

	httpServer := &http.Server{
		Addr:           fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:        r.Engine(),
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		IdleTimeout:    cfg.Server.IdleTimeout,
		MaxHeaderBytes: cfg.Server.MaxHeaderBytes,
	}

	return &App{
		cfg:         cfg,
		db:          db,
		redisClient: redisClient,
		httpServer:  httpServer,
	}, nil
}

// WatchConfig 启动配置热加载,运行时只热更新日志级别
func (a *App) WatchConfig(configPath, env string) error {
	stop, err := config.WatchConfig(configPath, env, func(level string) {
		if err := logger.SetLevel(level); err != nil {
			logger.WithFields(map[string]interface{}{
				"level": level,
				"error": err.Error(),
			}).Warn("日志级别热更新失败")
			return
		}
		logger.WithFields(map[string]interface{}{
			"level": level,
		}).Info("日志级别已热更新")
	})
	if err != nil {
		return err
	}
	a.stopWatcher = stop
	return nil
}

// Start 启动HTTP服务(阻塞)
func (a *App) Start() error {
	logger.WithFields(map[string]interface{}{
		"addr": a.httpServer.Addr,
		"mode": a.cfg.Server.Mode,
	}).Info("HTTP服务启动")

	if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("http server error: %w", err)
	}
	return nil
}

// Stop 优雅关闭
func (a *App) Stop(ctx context.Context) error {
	logger.WithFields(map[string]interface{}{
		"timestamp": logger.NowFormatted(),
	}).Info("开始优雅关闭")

	if a.stopWatcher != nil {
		if err := a.stopWatcher(); err != nil {
			logger.WithFields(map[string]interface{}{
				"error": err.Error(),
			}).Warn("配置监听关闭失败")
		}
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http server shutdown error: %w", err)
	}

	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			logger.WithFields(map[string]interface{}{
				"error": err.Error(),
			}).Warn("Redis连接关闭失败")
		}
	}

	if sqlDB, err := a.db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			logger.WithFields(map[string]interface{}{
				"error": err.Error(),
			}).Warn("MySQL连接关闭失败")
		}
	}

	logger.WithFields(map[string]interface{}{
		"timestamp": logger.NowFormatted(),
	}).Info("优雅关闭完成")
	return nil
}
