/**
 * 会话仓库层:在线会话数据访问
 * @author: hxll
 * @date: 2025.11.18
 * @description: 在线会话信息缓存(Redis存储,适合多实例部署),单纯数据访问,不包含业务逻辑
 * @note: 会话缓存仅用于管理端在线用户展示，不参与令牌有效性判定
 */
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"kimi/internal/model"

	"github.com/go-redis/redis/v8"
)

// SessionRepository Redis会话存储库
type SessionRepository struct {
	client *redis.Client
}

// NewSessionRepository 创建会话存储库实例
func NewSessionRepository(client *redis.Client) *SessionRepository {
	return &SessionRepository{
		client: client,
	}
}

// StoreSession 存储用户会话信息
func (r *SessionRepository) StoreSession(ctx context.Context, userID uint, sessionData *model.SessionData, expiration time.Duration) error {
	data, err := json.Marshal(sessionData)
	if err != nil {
		return fmt.Errorf("failed to marshal session data: %w", err)
	}

	sessionKey := r.getSessionKey(userID)
	if err := r.client.Set(ctx, sessionKey, data, expiration).Err(); err != nil {
		return fmt.Errorf("failed to store session: %w", err)
	}
	return nil
}

// GetSession 获取用户会话信息
// 会话不存在时返回 nil 而不是错误，让业务层处理
func (r *SessionRepository) GetSession(ctx context.Context, userID uint) (*model.SessionData, error) {
	sessionKey := r.getSessionKey(userID)

	data, err := r.client.Get(ctx, sessionKey).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	var sessionData model.SessionData
	if err := json.Unmarshal([]byte(data), &sessionData); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session data: %w", err)
	}
	return &sessionData, nil
}

// DeleteSession 删除用户会话
func (r *SessionRepository) DeleteSession(ctx context.Context, userID uint) error {
	sessionKey := r.getSessionKey(userID)
	if err := r.client.Del(ctx, sessionKey).Err(); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// ListSessions 获取所有在线会话
// 用于管理端在线用户列表展示
func (r *SessionRepository) ListSessions(ctx context.Context) ([]*model.SessionData, error) {
	keys, err := r.client.Keys(ctx, r.getSessionPattern()).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get session keys: %w", err)
	}
	if len(keys) == 0 {
		return []*model.SessionData{}, nil
	}

	values, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get sessions: %w", err)
	}

	sessions := make([]*model.SessionData, 0, len(values))
	for _, value := range values {
		if value == nil {
			continue
		}
		var sessionData model.SessionData
		if err := json.Unmarshal([]byte(value.(string)), &sessionData); err != nil {
			continue // 跳过无效数据
		}
		sessions = append(sessions, &sessionData)
	}
	return sessions, nil
}

// getSessionKey 生成会话键[KEY:session:user:{userID}]
func (r *SessionRepository) getSessionKey(userID uint) string {
	return fmt.Sprintf("session:user:%d", userID)
}

// getSessionPattern 生成会话模式键[用于批量操作]
func (r *SessionRepository) getSessionPattern() string {
	return "session:user:*"
}

// Ping 检查Redis连接
func (r *SessionRepository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Close 关闭Redis连接
func (r *SessionRepository) Close() error {
	return r.client.Close()
}
