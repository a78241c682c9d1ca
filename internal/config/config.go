/**
 * 配置:应用配置结构
 * @author: hxll
 * @date: 2025.11.18
 * @description: 应用配置结构体定义 [这里的字段和配置文件中一级字段保持一致，否则会没有值]
 * @func: Config 及各子配置结构体
 */
package config

import (
	"fmt"
	"time"
)

// Config 应用配置结构体
type Config struct {
	Server   ServerConfig   `yaml:"server" mapstructure:"server"`     // 服务器配置
	Database DatabaseConfig `yaml:"database" mapstructure:"database"` // 数据库配置
	Log      LogConfig      `yaml:"log" mapstructure:"log"`           // 日志配置
	Security SecurityConfig `yaml:"security" mapstructure:"security"` // 安全配置
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Host           string        `yaml:"host" mapstructure:"host"`                         // 服务器主机地址
	Port           int           `yaml:"port" mapstructure:"port"`                         // 服务器端口
	Mode           string        `yaml:"mode" mapstructure:"mode"`                         // 运行模式: debug, release, test
	ReadTimeout    time.Duration `yaml:"read_timeout" mapstructure:"read_timeout"`         // 读取超时时间
	WriteTimeout   time.Duration `yaml:"write_timeout" mapstructure:"write_timeout"`       // 写入超时时间
	IdleTimeout    time.Duration `yaml:"idle_timeout" mapstructure:"idle_timeout"`         // 空闲超时时间
	MaxHeaderBytes int           `yaml:"max_header_bytes" mapstructure:"max_header_bytes"` // 最大请求头字节数
}

// DatabaseConfig 数据库配置
type DatabaseConfig struct {
	MySQL MySQLConfig `yaml:"mysql" mapstructure:"mysql"` // MySQL配置
	Redis RedisConfig `yaml:"redis" mapstructure:"redis"` // Redis配置
}

// MySQLConfig MySQL数据库配置
type MySQLConfig struct {
	Host            string        `yaml:"host" mapstructure:"host"`                           // 数据库主机
	Port            int           `yaml:"port" mapstructure:"port"`                           // 数据库端口
	Username        string        `yaml:"username" mapstructure:"username"`                   // 用户名
	Password        string        `yaml:"password" mapstructure:"password"`                   // 密码
	Database        string        `yaml:"database" mapstructure:"database"`                   // 数据库名
	Charset         string        `yaml:"charset" mapstructure:"charset"`                     // 字符集
	ParseTime       bool          `yaml:"parse_time" mapstructure:"parse_time"`               // 是否解析时间
	Loc             string        `yaml:"loc" mapstructure:"loc"`                             // 时区
	MaxIdleConns    int           `yaml:"max_idle_conns" mapstructure:"max_idle_conns"`       // 最大空闲连接数
	MaxOpenConns    int           `yaml:"max_open_conns" mapstructure:"max_open_conns"`       // 最大打开连接数
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime" mapstructure:"conn_max_lifetime"` // 连接最大生存时间
}

// RedisConfig Redis配置
type RedisConfig struct {
	Host         string        `yaml:"host" mapstructure:"host"`                     // Redis主机
	Port         int           `yaml:"port" mapstructure:"port"`                     // Redis端口
	Password     string        `yaml:"password" mapstructure:"password"`             // Redis密码
	Database     int           `yaml:"database" mapstructure:"database"`             // Redis数据库索引
	PoolSize     int           `yaml:"pool_size" mapstructure:"pool_size"`           // 连接池大小
	MinIdleConns int           `yaml:"min_idle_conns" mapstructure:"min_idle_conns"` // 最小空闲连接数
	DialTimeout  time.Duration `yaml:"dial_timeout" mapstructure:"dial_timeout"`     // 连接超时
	ReadTimeout  time.Duration `yaml:"read_timeout" mapstructure:"read_timeout"`     // 读取超时
	WriteTimeout time.Duration `yaml:"write_timeout" mapstructure:"write_timeout"`   // 写入超时
}

// LogConfig 日志配置
type LogConfig struct {
	Level      string `yaml:"level" mapstructure:"level"`             // 日志级别
	Format     string `yaml:"format" mapstructure:"format"`           // 日志格式: json, text
	Output     string `yaml:"output" mapstructure:"output"`           // 输出方式: stdout, stderr, file
	FilePath   string `yaml:"file_path" mapstructure:"file_path"`     // 日志文件路径
	MaxSize    int    `yaml:"max_size" mapstructure:"max_size"`       // 单个日志文件最大大小(MB)
	MaxBackups int    `yaml:"max_backups" mapstructure:"max_backups"` // 保留的日志文件数量
	MaxAge     int    `yaml:"max_age" mapstructure:"max_age"`         // 日志文件保留天数
	Compress   bool   `yaml:"compress" mapstructure:"compress"`       // 是否压缩日志文件
	Caller     bool   `yaml:"caller" mapstructure:"caller"`           // 是否显示调用者信息
}

// SecurityConfig 安全配置
type SecurityConfig struct {
	JWT  JWTConfig  `yaml:"jwt" mapstructure:"jwt"`   // JWT配置
	Auth AuthConfig `yaml:"auth" mapstructure:"auth"` // 认证业务配置
}

// JWTConfig JWT配置
type JWTConfig struct {
	Secret             string        `yaml:"secret" mapstructure:"secret"`                             // 签名密钥，所有验证节点共享同一把
	Issuer             string        `yaml:"issuer" mapstructure:"issuer"`                             // 签发者
	AccessTokenExpire  time.Duration `yaml:"access_token_expire" mapstructure:"access_token_expire"`   // 访问令牌过期时间，默认24h
	RefreshTokenExpire time.Duration `yaml:"refresh_token_expire" mapstructure:"refresh_token_expire"` // 刷新令牌过期时间，默认7d
}

// AuthConfig 认证业务配置
type AuthConfig struct {
	AdminRoleCode   string `yaml:"admin_role_code" mapstructure:"admin_role_code"`     // 管理员角色编码
	DefaultRoleCode string `yaml:"default_role_code" mapstructure:"default_role_code"` // 注册默认角色编码
	DefaultAvatar   string `yaml:"default_avatar" mapstructure:"default_avatar"`       // 注册默认头像
	ResetPassword   string `yaml:"reset_password" mapstructure:"reset_password"`       // 管理员重置密码的固定默认值
}

// Validate 校验配置有效性
func Validate(cfg *Config) error {
	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", cfg.Server.Port)
	}
	if cfg.Security.JWT.Secret == "" {
		return fmt.Errorf("jwt secret is required")
	}
	if len(cfg.Security.JWT.Secret) < 32 {
		return fmt.Errorf("jwt secret must be at least 32 characters")
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "json"
	}
	return nil
}

// ApplyDefaults 填充缺省配置
func ApplyDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "0.0.0.0"
	}
	if cfg.Server.Mode == "" {
		cfg.Server.Mode = "release"
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = 30 * time.Second
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = 30 * time.Second
	}
	if cfg.Server.IdleTimeout == 0 {
		cfg.Server.IdleTimeout = 60 * time.Second
	}
	if cfg.Server.MaxHeaderBytes == 0 {
		cfg.Server.MaxHeaderBytes = 1 << 20
	}
	if cfg.Security.JWT.Issuer == "" {
		cfg.Security.JWT.Issuer = "kimi"
	}
	if cfg.Security.JWT.AccessTokenExpire == 0 {
		cfg.Security.JWT.AccessTokenExpire = 24 * time.Hour
	}
	if cfg.Security.JWT.RefreshTokenExpire == 0 {
		cfg.Security.JWT.RefreshTokenExpire = 7 * 24 * time.Hour
	}
	if cfg.Security.Auth.AdminRoleCode == "" {
		cfg.Security.Auth.AdminRoleCode = "admin"
	}
	if cfg.Security.Auth.DefaultRoleCode == "" {
		cfg.Security.Auth.DefaultRoleCode = "user"
	}
	if cfg.Security.Auth.DefaultAvatar == "" {
		cfg.Security.Auth.DefaultAvatar = "/static/avatar/default.png"
	}
	if cfg.Security.Auth.ResetPassword == "" {
		cfg.Security.Auth.ResetPassword = "kimi@123456"
	}
}
