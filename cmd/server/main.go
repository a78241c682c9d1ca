/**
 * 入口:API服务
 * @author: hxll
 * @date: 2025.11.18
 * @description: 加载配置、初始化日志、启动HTTP服务并处理优雅关闭
 * @func: main
 */
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"kimi/internal/app/server"
	"kimi/internal/config"
	"kimi/internal/pkg/logger"
)

func main() {
	var (
		configPath = flag.String("config", "", "配置文件目录,缺省为 configs/")
		env        = flag.String("env", "", "运行环境: development, test, production")
	)
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath, *env)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	if _, err := logger.Init(&cfg.Log); err != nil {
		fmt.Fprintf(os.Stderr, "failed to init logger: %v\n", err)
		os.Exit(1)
	}

	app, err := server.NewApp(cfg)
	if err != nil {
		logger.WithFields(map[string]interface{}{
			"error": err.Error(),
		}).Fatal("应用初始化失败")
	}

	if err := app.WatchConfig(*configPath, *env); err != nil {
		logger.WithFields(map[string]interface{}{
			"error": err.Error(),
		}).Warn("配置热加载启动失败,继续以静态配置运行")
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- app.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			logger.WithFields(map[string]interface{}{
				"error": err.Error(),
			}).Fatal("HTTP服务异常退出")
		}
	case sig := <-quit:
		logger.WithFields(map[string]interface{}{
			"signal": sig.String(),
		}).Info("收到退出信号")
		if err := app.Stop(context.Background()); err != nil {
			logger.WithFields(map[string]interface{}{
				"error": err.Error(),
			}).Error("优雅关闭失败")
			os.Exit(1)
		}
	}
}
