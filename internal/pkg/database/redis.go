/**
 * 基础设施:Redis连接
 * @author: hxll
 * @date: 2025.11.18
 * @description: Redis客户端初始化与连通性检查
 * @func: NewRedisConnection
 */
package database

import (
	"context"
	"fmt"
	"time"

	"kimi/internal/config"

	"github.com/go-redis/redis/v8"
)

// NewRedisConnection 创建Redis连接
func NewRedisConnection(cfg *config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password:     cfg.Password,
		DB:           cfg.Database,
		PoolSize:     cfg.PoolSize,
		MinIdleConns: cfg.MinIdleConns,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	})

	// 测试连接
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping Redis: %w", err)
	}

	return client, nil
}
