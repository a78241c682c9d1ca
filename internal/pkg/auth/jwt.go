/**
 * 工具类:JWT工具
 * @author: hxll
 * @date: 2025.11.18
 * @description: 令牌编解码器，自包含签名令牌，验证为纯计算不做任何IO
 * @func:
 * 	1.签发访问令牌(携带auth权限声明)
 * 	2.签发刷新令牌
 * 	3.验证令牌(失败原因收敛为统一错误)
 * 	4.免验签提取subject
 */

package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	// AuthoritiesDelimiter auth声明中权限串的分隔符
	AuthoritiesDelimiter = ","

	audienceAccess  = "kimi-web"
	audienceRefresh = "kimi-refresh"
)

// AccessClaims 访问令牌声明结构
// auth 为逗号拼接的权限串列表（ROLE_前缀角色串 + 权限编码）
type AccessClaims struct {
	Authorities string `json:"auth"`
	jwt.RegisteredClaims
}

// TokenInfo 令牌验证结果
type TokenInfo struct {
	Subject     string    // 用户名
	ExpiresAt   time.Time // 过期时间
	IssuedAt    time.Time // 签发时间
	Authorities []string  // 权限串列表，刷新令牌为空
}

// TokenManager 令牌管理器
// 对称密钥签发与验证使用同一把密钥，单验证方模型
type TokenManager struct {
	secretKey       []byte
	issuer          string
	accessTokenTTL  time.Duration
	refreshTokenTTL time.Duration
}

// NewTokenManager 创建令牌管理器
func NewTokenManager(secretKey, issuer string, accessTokenTTL, refreshTokenTTL time.Duration) *TokenManager {
	if accessTokenTTL <= 0 {
		accessTokenTTL = 24 * time.Hour
	}
	if refreshTokenTTL <= 0 {
		refreshTokenTTL = 7 * 24 * time.Hour
	}
	return &TokenManager{
		secretKey:       []byte(secretKey),
		issuer:          issuer,
		accessTokenTTL:  accessTokenTTL,
		refreshTokenTTL: refreshTokenTTL,
	}
}

// IssueAccessToken 签发访问令牌
// subject为用户名，authorities为扁平权限串集合，逗号拼接进auth声明
func (m *TokenManager) IssueAccessToken(username string, authorities []string) (string, error) {
	if username == "" {
		return "", errors.New("username cannot be empty")
	}
	now := time.Now()
	claims := &AccessClaims{
		Authorities: strings.Join(authorities, AuthoritiesDelimiter),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    m.issuer,
			Subject:   username,
			Audience:  []string{audienceAccess},
			ExpiresAt: jwt.NewNumericDate(now.Add(m.accessTokenTTL)),
			NotBefore: jwt.NewNumericDate(now),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        generateJTI(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secretKey)
}

// IssueRefreshToken 签发刷新令牌
// 不携带权限声明，audience区分刷新令牌与访问令牌
func (m *TokenManager) IssueRefreshToken(username string) (string, error) {
	if username == "" {
		return "", errors.New("username cannot be empty")
	}
	now := time.Now()
	claims := &jwt.RegisteredClaims{
		Issuer:    m.issuer,
		Subject:   username,
		Audience:  []string{audienceRefresh},
		ExpiresAt: jwt.NewNumericDate(now.Add(m.refreshTokenTTL)),
		NotBefore: jwt.NewNumericDate(now),
		IssuedAt:  jwt.NewNumericDate(now),
		ID:        generateJTI(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secretKey)
}

// VerifyAccessToken 验证访问令牌
// 签名错误、格式错误、算法不支持、已过期对调用方是同一个失败结果
// 具体原因通过返回错误的包装信息交由调用方日志记录，调用方不得据此分支
func (m *TokenManager) VerifyAccessToken(tokenString string) (*TokenInfo, error) {
	claims := &AccessClaims{}
	if err := m.parse(tokenString, claims); err != nil {
		return nil, err
	}
	if len(claims.Audience) == 0 || claims.Audience[0] != audienceAccess {
		return nil, errors.New("unexpected token audience")
	}

	info := &TokenInfo{
		Subject:     claims.Subject,
		Authorities: splitAuthorities(claims.Authorities),
	}
	if claims.ExpiresAt != nil {
		info.ExpiresAt = claims.ExpiresAt.Time
	}
	if claims.IssuedAt != nil {
		info.IssuedAt = claims.IssuedAt.Time
	}
	return info, nil
}

// VerifyRefreshToken 验证刷新令牌
func (m *TokenManager) VerifyRefreshToken(tokenString string) (*TokenInfo, error) {
	claims := &jwt.RegisteredClaims{}
	if err := m.parse(tokenString, claims); err != nil {
		return nil, err
	}
	if len(claims.Audience) == 0 || claims.Audience[0] != audienceRefresh {
		return nil, errors.New("not a refresh token")
	}

	info := &TokenInfo{Subject: claims.Subject}
	if claims.ExpiresAt != nil {
		info.ExpiresAt = claims.ExpiresAt.Time
	}
	if claims.IssuedAt != nil {
		info.IssuedAt = claims.IssuedAt.Time
	}
	return info, nil
}

// SubjectOf 免验签提取令牌subject
// 仅用于验证已经通过、或调用方自行承担风险的场景
func (m *TokenManager) SubjectOf(tokenString string) (string, error) {
	parser := jwt.NewParser()
	claims := &jwt.RegisteredClaims{}
	if _, _, err := parser.ParseUnverified(tokenString, claims); err != nil {
		return "", fmt.Errorf("malformed token: %w", err)
	}
	return claims.Subject, nil
}

// AccessTokenTTL 访问令牌有效期
func (m *TokenManager) AccessTokenTTL() time.Duration {
	return m.accessTokenTTL
}

// RefreshTokenTTL 刷新令牌有效期
func (m *TokenManager) RefreshTokenTTL() time.Duration {
	return m.refreshTokenTTL
}

// parse 解析并校验签名、时间窗口
func (m *TokenManager) parse(tokenString string, claims jwt.Claims) error {
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secretKey, nil
	})
	if err != nil {
		return err
	}
	if !token.Valid {
		return errors.New("invalid token")
	}
	return nil
}

// ExtractTokenFromHeader 从Authorization头中提取令牌
func ExtractTokenFromHeader(authHeader string) string {
	if len(authHeader) > 7 && strings.EqualFold(authHeader[:7], "Bearer ") {
		return authHeader[7:]
	}
	return ""
}

// splitAuthorities 拆分auth声明，空声明返回空切片
func splitAuthorities(joined string) []string {
	if joined == "" {
		return []string{}
	}
	return strings.Split(joined, AuthoritiesDelimiter)
}

// generateJTI 生成JWT ID
func generateJTI() string {
	// 使用纳秒级时间戳确保唯一性
	now := time.Now()
	return now.Format("20060102150405") + "-" + fmt.Sprintf("%09d", now.Nanosecond())
}
