/**
 * 日志管理器
 * @author: hxll
 * @date: 2025.11.18
 * @description: 基于logrus的结构化日志，支持json/text格式与lumberjack文件轮转
 * @func: Init / WithFields / 业务日志辅助函数
 */
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"kimi/internal/config"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// 给格式化器使用的时间戳格式，毫秒精度
const timestampFormat = "2006-01-02 15:04:05.000"

// instance 全局日志实例
// 未初始化时各辅助函数静默降级到logrus标准实例，便于单元测试
var instance *logrus.Logger

// Init 初始化日志管理器
// 根据配置设置日志级别、格式和输出目标
func Init(cfg *config.LogConfig) (*logrus.Logger, error) {
	if cfg == nil {
		return nil, fmt.Errorf("log config cannot be nil")
	}

	logger := logrus.New()

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		// 解析失败时回退到info级别
		level = logrus.InfoLevel
		logger.Warnf("Invalid log level '%s', using 'info' as default", cfg.Level)
	}
	logger.SetLevel(level)

	if err := setFormatter(logger, cfg); err != nil {
		return nil, fmt.Errorf("failed to set log formatter: %w", err)
	}

	if err := setOutput(logger, cfg); err != nil {
		return nil, fmt.Errorf("failed to set log output: %w", err)
	}

	logger.SetReportCaller(cfg.Caller)

	instance = logger
	return logger, nil
}

// SetLevel 运行时调整日志级别，配置热加载时使用
func SetLevel(level string) error {
	if instance == nil {
		return fmt.Errorf("logger not initialized")
	}
	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	instance.SetLevel(parsed)
	return nil
}

// setFormatter 设置日志格式化器
func setFormatter(logger *logrus.Logger, cfg *config.LogConfig) error {
	switch strings.ToLower(cfg.Format) {
	case "json":
		// JSON格式，适合生产环境和日志分析
		logger.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: timestampFormat,
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyTime:  "timestamp",
				logrus.FieldKeyLevel: "level",
				logrus.FieldKeyMsg:   "message",
				logrus.FieldKeyFunc:  "function",
				logrus.FieldKeyFile:  "file",
			},
		})
	case "text":
		// 文本格式，适合开发环境和控制台输出
		logger.SetFormatter(&logrus.TextFormatter{
			TimestampFormat: timestampFormat,
			FullTimestamp:   true,
			ForceColors:     true,
		})
	default:
		return fmt.Errorf("unsupported log format: %s", cfg.Format)
	}
	return nil
}

// setOutput 设置日志输出目标
// file输出使用lumberjack做大小轮转与过期清理
func setOutput(logger *logrus.Logger, cfg *config.LogConfig) error {
	switch strings.ToLower(cfg.Output) {
	case "stdout", "":
		logger.SetOutput(os.Stdout)
	case "stderr":
		logger.SetOutput(os.Stderr)
	case "file":
		if cfg.FilePath == "" {
			return fmt.Errorf("log file path is required for file output")
		}
		rotator := &lumberjack.Logger{
			Filename:   cfg.FilePath,
			MaxSize:    cfg.MaxSize,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAge,
			Compress:   cfg.Compress,
		}
		// 调试级别下同时输出到控制台，便于本地排查
		if logger.GetLevel() == logrus.DebugLevel {
			logger.SetOutput(io.MultiWriter(os.Stdout, rotator))
		} else {
			logger.SetOutput(rotator)
		}
	default:
		return fmt.Errorf("unsupported log output: %s", cfg.Output)
	}
	return nil
}

// WithFields 带字段的日志入口
func WithFields(fields map[string]interface{}) *logrus.Entry {
	if instance != nil {
		return instance.WithFields(fields)
	}
	return logrus.NewEntry(logrus.StandardLogger())
}

// NowFormatted 当前时间的标准格式字符串
func NowFormatted() string {
	return time.Now().Format(timestampFormat)
}

// LogBusinessOperation 记录业务操作日志
// operation为操作标识，result为success/failed等结果标记
func LogBusinessOperation(operation string, userID uint, username, clientIP, result, message string, extraFields map[string]interface{}) {
	fields := map[string]interface{}{
		"log_type":  "business",
		"operation": operation,
		"user_id":   userID,
		"username":  username,
		"client_ip": clientIP,
		"result":    result,
	}
	for k, v := range extraFields {
		fields[k] = v
	}
	WithFields(fields).Info(message)
}

// LogBusinessError 记录业务错误日志
func LogBusinessError(err error, operation string, userID uint, clientIP string, extraFields map[string]interface{}) {
	if err == nil {
		return
	}
	fields := map[string]interface{}{
		"log_type":  "error",
		"operation": operation,
		"user_id":   userID,
		"client_ip": clientIP,
		"error":     err.Error(),
	}
	for k, v := range extraFields {
		fields[k] = v
	}
	WithFields(fields).Error(err.Error())
}
