/**
 * 配置:配置加载
 * @author: hxll
 * @date: 2025.11.18
 * @description: 基于viper的配置加载，支持按环境选择配置文件与环境变量覆盖
 * @func: LoadConfig
 */
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// GlobalConfig 全局配置实例
var GlobalConfig *Config

// LoadConfig 加载配置文件
// configPath: 配置文件目录，为空时使用默认路径
// env: 环境标识，支持 development, test, production
func LoadConfig(configPath, env string) (*Config, error) {
	if env == "" {
		env = getEnvFromEnvironment()
	}

	v := viper.New()
	v.SetConfigType("yaml")

	if configPath == "" {
		configPath = getDefaultConfigPath()
	}
	configFile := getConfigFileName(configPath, env)
	v.SetConfigFile(configFile)

	// 环境变量覆盖，如 KIMI_SECURITY_JWT_SECRET
	v.SetEnvPrefix("KIMI")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", configFile, err)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	ApplyDefaults(&config)

	if err := Validate(&config); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	GlobalConfig = &config
	return &config, nil
}

// getEnvFromEnvironment 从环境变量获取环境标识
func getEnvFromEnvironment() string {
	env := os.Getenv("KIMI_ENV")
	if env == "" {
		env = os.Getenv("GO_ENV")
	}
	if env == "" {
		env = "development"
	}
	return env
}

// getDefaultConfigPath 获取默认配置文件目录
func getDefaultConfigPath() string {
	if configPath := os.Getenv("KIMI_CONFIG_PATH"); configPath != "" {
		return configPath
	}
	return "configs"
}

// getConfigFileName 根据环境获取配置文件名
func getConfigFileName(configPath, env string) string {
	var configFile string

	switch env {
	case "production", "prod":
		configFile = filepath.Join(configPath, "config.prod.yaml")
	case "test", "testing":
		configFile = filepath.Join(configPath, "config.test.yaml")
	default:
		configFile = filepath.Join(configPath, "config.yaml")
	}

	// 环境专属文件不存在时回退到默认配置文件
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		defaultConfig := filepath.Join(configPath, "config.yaml")
		if _, err := os.Stat(defaultConfig); err == nil {
			return defaultConfig
		}
	}

	return configFile
}
