/**
 * 认证服务层:令牌服务
 * @author: hxll
 * @date: 2025.11.18
 * @description: 基于JWT的无状态令牌签发与验证,验证只依赖共享密钥,不查库不查缓存
 * @func: GenerateTokenPair / ValidateAccessToken / ValidateRefreshToken / SubjectOf
 */
package auth

import (
	"kimi/internal/model"
	"kimi/internal/pkg/auth"
	"kimi/internal/pkg/logger"
)

// TokenPair 一次签发的访问令牌和刷新令牌
type TokenPair struct {
	AccessToken      string // 访问令牌
	RefreshToken     string // 刷新令牌
	ExpiresIn        int64  // 访问令牌有效期(秒)
	RefreshExpiresIn int64  // 刷新令牌有效期(秒)
}

// TokenService 令牌服务
type TokenService struct {
	tokenManager *auth.TokenManager
}

// NewTokenService 创建令牌服务实例
func NewTokenService(tokenManager *auth.TokenManager) *TokenService {
	return &TokenService{
		tokenManager: tokenManager,
	}
}

// GenerateTokenPair 为认证主体签发访问令牌和刷新令牌
// 访问令牌携带权限快照，刷新令牌只携带身份
func (s *TokenService) GenerateTokenPair(principal *model.Principal) (*TokenPair, error) {
	accessToken, err := s.tokenManager.IssueAccessToken(principal.Username, principal.Authorities)
	if err != nil {
		return nil, err
	}

	refreshToken, err := s.tokenManager.IssueRefreshToken(principal.Username)
	if err != nil {
		return nil, err
	}

	return &TokenPair{
		AccessToken:      accessToken,
		RefreshToken:     refreshToken,
		ExpiresIn:        int64(s.tokenManager.AccessTokenTTL().Seconds()),
		RefreshExpiresIn: int64(s.tokenManager.RefreshTokenTTL().Seconds()),
	}, nil
}

// GenerateAccessToken 为认证主体单独签发访问令牌
// 刷新流程只换发访问令牌，刷新令牌原样保留
func (s *TokenService) GenerateAccessToken(principal *model.Principal) (string, int64, error) {
	accessToken, err := s.tokenManager.IssueAccessToken(principal.Username, principal.Authorities)
	if err != nil {
		return "", 0, err
	}
	return accessToken, int64(s.tokenManager.AccessTokenTTL().Seconds()), nil
}

// ValidateAccessToken 验证访问令牌
// 签名错误、格式错误、过期等任何验证失败统一折叠为 model.ErrTokenInvalid
func (s *TokenService) ValidateAccessToken(tokenString string) (*auth.TokenInfo, error) {
	tokenInfo, err := s.tokenManager.VerifyAccessToken(tokenString)
	if err != nil {
		// 具体失败原因只进日志,调用方不得据此分支
		logger.WithFields(map[string]interface{}{
			"token_type": "access",
			"reason":     err.Error(),
		}).Warn("令牌验证失败")
		return nil, model.ErrTokenInvalid
	}
	return tokenInfo, nil
}

// ValidateRefreshToken 验证刷新令牌
func (s *TokenService) ValidateRefreshToken(tokenString string) (*auth.TokenInfo, error) {
	tokenInfo, err := s.tokenManager.VerifyRefreshToken(tokenString)
	if err != nil {
		logger.WithFields(map[string]interface{}{
			"token_type": "refresh",
			"reason":     err.Error(),
		}).Warn("令牌验证失败")
		return nil, model.ErrTokenInvalid
	}
	return tokenInfo, nil
}

// SubjectOf 不验证签名提取令牌主体
// 仅用于日志和排障展示，不得用于任何授权判断
func (s *TokenService) SubjectOf(tokenString string) (string, error) {
	return s.tokenManager.SubjectOf(tokenString)
}

// AccessTokenTTL 访问令牌有效期
func (s *TokenService) AccessTokenTTL() int64 {
	return int64(s.tokenManager.AccessTokenTTL().Seconds())
}
