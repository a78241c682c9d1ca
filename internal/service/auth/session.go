/**
 * 认证服务层:会话服务
 * @author: hxll
 * @date: 2025.11.18
 * @description: 登录/登出/令牌刷新的业务编排
 * @note: 令牌本身无状态,登出只清理在线会话缓存,已签发的令牌到期前依然可验
 */
package auth

import (
	"context"
	"errors"
	"time"

	"kimi/internal/model"
	"kimi/internal/pkg/auth"
	"kimi/internal/pkg/logger"
	"kimi/internal/repository/mysql"
	"kimi/internal/repository/redis"
)

// TokenType 返回给客户端的令牌类型
const TokenType = "Bearer"

// SessionService 会话服务
// 编排登录、登出、刷新三个认证入口流程
type SessionService struct {
	userRepo         *mysql.UserRepository
	sessionRepo      *redis.SessionRepository // 可为nil,此时跳过在线会话缓存
	principalService *PrincipalService
	tokenService     *TokenService
	passwordManager  *auth.PasswordManager
}

// NewSessionService 创建会话服务实例
func NewSessionService(
	userRepo *mysql.UserRepository,
	sessionRepo *redis.SessionRepository,
	principalService *PrincipalService,
	tokenService *TokenService,
	passwordManager *auth.PasswordManager,
) *SessionService {
	return &SessionService{
		userRepo:         userRepo,
		sessionRepo:      sessionRepo,
		principalService: principalService,
		tokenService:     tokenService,
		passwordManager:  passwordManager,
	}
}

// Login 用户登录
// 用户不存在和密码错误统一返回 ErrInvalidCredentials,不泄露账号是否存在
func (s *SessionService) Login(ctx context.Context, req *model.LoginRequest, clientIP, userAgent string) (*model.LoginResponse, error) {
	user, err := s.userRepo.GetUserWithAuthorities(ctx, req.Username)
	if err != nil {
		logger.LogBusinessError(err, "user_login", 0, clientIP, map[string]interface{}{
			"username":  req.Username,
			"timestamp": logger.NowFormatted(),
		})
		return nil, err
	}
	if user == nil {
		return nil, model.ErrInvalidCredentials
	}

	valid, err := s.passwordManager.VerifyPassword(req.Password, user.Password)
	if err != nil || !valid {
		logger.LogBusinessOperation("user_login", user.ID, user.Username, clientIP, "failed", "密码验证失败", map[string]interface{}{
			"timestamp": logger.NowFormatted(),
		})
		return nil, model.ErrInvalidCredentials
	}

	if !user.IsActive() {
		logger.LogBusinessOperation("user_login", user.ID, user.Username, clientIP, "failed", "账号已禁用", map[string]interface{}{
			"timestamp": logger.NowFormatted(),
		})
		return nil, model.ErrAccountDisabled
	}

	principal := s.principalService.Resolve(user)

	tokenPair, err := s.tokenService.GenerateTokenPair(principal)
	if err != nil {
		logger.LogBusinessError(err, "user_login", user.ID, clientIP, map[string]interface{}{
			"username":  user.Username,
			"timestamp": logger.NowFormatted(),
		})
		return nil, err
	}

	// 登录痕迹与会话缓存是辅助信息，失败不阻断登录
	now := time.Now()
	if err := s.userRepo.UpdateLastLogin(ctx, user.ID, clientIP, now); err != nil {
		logger.LogBusinessError(err, "update_last_login", user.ID, clientIP, map[string]interface{}{
			"timestamp": logger.NowFormatted(),
		})
	}
	s.storeSession(ctx, user, principal, clientIP, userAgent, now)

	user.LastLoginAt = &now
	user.LastLoginIP = clientIP

	logger.LogBusinessOperation("user_login", user.ID, user.Username, clientIP, "success", "登录成功", map[string]interface{}{
		"authority_count": len(principal.Authorities),
		"timestamp":       logger.NowFormatted(),
	})

	return &model.LoginResponse{
		AccessToken:      tokenPair.AccessToken,
		RefreshToken:     tokenPair.RefreshToken,
		TokenType:        TokenType,
		ExpiresIn:        tokenPair.ExpiresIn,
		RefreshExpiresIn: tokenPair.RefreshExpiresIn,
		User:             model.NewUserInfo(user),
		Principal:        principal,
	}, nil
}

// Logout 用户登出
// 仅清理在线会话缓存,无状态令牌到期前依然有效
func (s *SessionService) Logout(ctx context.Context, username, clientIP string) error {
	user, err := s.userRepo.GetUserByUsername(ctx, username)
	if err != nil {
		return err
	}
	if user == nil {
		return model.ErrUserNotFound
	}

	if s.sessionRepo != nil {
		if err := s.sessionRepo.DeleteSession(ctx, user.ID); err != nil {
			logger.LogBusinessError(err, "user_logout", user.ID, clientIP, map[string]interface{}{
				"timestamp": logger.NowFormatted(),
			})
			return err
		}
	}

	logger.LogBusinessOperation("user_logout", user.ID, user.Username, clientIP, "success", "登出成功", map[string]interface{}{
		"timestamp": logger.NowFormatted(),
	})
	return nil
}

// RefreshAccessToken 刷新访问令牌
// 只换发访问令牌,刷新令牌原样返回;权限快照从数据库重新解析
func (s *SessionService) RefreshAccessToken(ctx context.Context, refreshToken string, clientIP string) (*model.RefreshTokenResponse, error) {
	tokenInfo, err := s.tokenService.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, model.ErrTokenInvalid
	}

	principal, err := s.principalService.ResolveByUsername(ctx, tokenInfo.Subject)
	if err != nil {
		// 用户已被删除,刷新令牌随之失效
		if errors.Is(err, model.ErrUserNotFound) {
			return nil, model.ErrTokenInvalid
		}
		return nil, err
	}
	if !principal.Enabled {
		return nil, model.ErrAccountDisabled
	}

	accessToken, expiresIn, err := s.tokenService.GenerateAccessToken(principal)
	if err != nil {
		logger.LogBusinessError(err, "token_refresh", principal.UserID, clientIP, map[string]interface{}{
			"username":  principal.Username,
			"timestamp": logger.NowFormatted(),
		})
		return nil, err
	}

	logger.LogBusinessOperation("token_refresh", principal.UserID, principal.Username, clientIP, "success", "访问令牌刷新成功", map[string]interface{}{
		"timestamp": logger.NowFormatted(),
	})

	return &model.RefreshTokenResponse{
		AccessToken:      accessToken,
		RefreshToken:     refreshToken,
		TokenType:        TokenType,
		ExpiresIn:        expiresIn,
		RefreshExpiresIn: int64(time.Until(tokenInfo.ExpiresAt).Seconds()),
	}, nil
}

// ListOnlineSessions 获取在线会话列表
// 未配置Redis时返回空列表
func (s *SessionService) ListOnlineSessions(ctx context.Context) ([]*model.SessionData, error) {
	if s.sessionRepo == nil {
		return []*model.SessionData{}, nil
	}
	return s.sessionRepo.ListSessions(ctx)
}

// storeSession 写入在线会话缓存,有效期与访问令牌一致
func (s *SessionService) storeSession(ctx context.Context, user *model.User, principal *model.Principal, clientIP, userAgent string, loginAt time.Time) {
	if s.sessionRepo == nil {
		return
	}
	sessionData := &model.SessionData{
		UserID:    user.ID,
		Username:  user.Username,
		Roles:     principal.Roles(),
		LoginTime: loginAt,
		ClientIP:  clientIP,
		UserAgent: userAgent,
	}
	expiration := time.Duration(s.tokenService.AccessTokenTTL()) * time.Second
	if err := s.sessionRepo.StoreSession(ctx, user.ID, sessionData, expiration); err != nil {
		logger.LogBusinessError(err, "store_session", user.ID, clientIP, map[string]interface{}{
			"timestamp": logger.NowFormatted(),
		})
	}
}
