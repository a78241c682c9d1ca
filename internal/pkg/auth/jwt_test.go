// 令牌编解码器单元测试
// 覆盖签发/验证往返、权限声明保持、过期与篡改拒绝、audience区分
package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-0123456789abcdef-0000"

func newTestTokenManager() *TokenManager {
	return NewTokenManager(testSecret, "kimi", time.Hour, 7*24*time.Hour)
}

func TestTokenRoundTrip(t *testing.T) {
	tm := newTestTokenManager()

	t.Run("访问令牌签发验证往返", func(t *testing.T) {
		authorities := []string{"ROLE_admin", "system:user:view", "system:user:manage"}
		token, err := tm.IssueAccessToken("alice", authorities)
		require.NoError(t, err)
		require.NotEmpty(t, token)

		info, err := tm.VerifyAccessToken(token)
		require.NoError(t, err)
		assert.Equal(t, "alice", info.Subject)
		assert.Equal(t, authorities, info.Authorities)
		assert.True(t, info.ExpiresAt.After(time.Now()))
	})

	t.Run("空权限集合往返后仍为空集合", func(t *testing.T) {
		token, err := tm.IssueAccessToken("bob", nil)
		require.NoError(t, err)

		info, err := tm.VerifyAccessToken(token)
		require.NoError(t, err)
		assert.NotNil(t, info.Authorities)
		assert.Empty(t, info.Authorities)
	})

	t.Run("刷新令牌签发验证往返", func(t *testing.T) {
		token, err := tm.IssueRefreshToken("alice")
		require.NoError(t, err)

		info, err := tm.VerifyRefreshToken(token)
		require.NoError(t, err)
		assert.Equal(t, "alice", info.Subject)
		assert.Empty(t, info.Authorities)
	})

	t.Run("空用户名拒绝签发", func(t *testing.T) {
		_, err := tm.IssueAccessToken("", nil)
		assert.Error(t, err)
		_, err = tm.IssueRefreshToken("")
		assert.Error(t, err)
	})
}

func TestTokenAudience(t *testing.T) {
	tm := newTestTokenManager()

	t.Run("访问令牌不能当刷新令牌用", func(t *testing.T) {
		accessToken, err := tm.IssueAccessToken("alice", []string{"ROLE_user"})
		require.NoError(t, err)

		_, err = tm.VerifyRefreshToken(accessToken)
		assert.Error(t, err)
	})

	t.Run("刷新令牌不能当访问令牌用", func(t *testing.T) {
		refreshToken, err := tm.IssueRefreshToken("alice")
		require.NoError(t, err)

		_, err = tm.VerifyAccessToken(refreshToken)
		assert.Error(t, err)
	})
}

func TestTokenRejection(t *testing.T) {
	tm := newTestTokenManager()

	t.Run("篡改令牌拒绝", func(t *testing.T) {
		token, err := tm.IssueAccessToken("alice", []string{"ROLE_user"})
		require.NoError(t, err)

		tampered := token[:len(token)-4] + "xxxx"
		_, err = tm.VerifyAccessToken(tampered)
		assert.Error(t, err)
	})

	t.Run("其他密钥签发的令牌拒绝", func(t *testing.T) {
		other := NewTokenManager("another-secret-key-0123456789abcdef", "kimi", time.Hour, time.Hour)
		token, err := other.IssueAccessToken("alice", nil)
		require.NoError(t, err)

		_, err = tm.VerifyAccessToken(token)
		assert.Error(t, err)
	})

	t.Run("过期令牌拒绝", func(t *testing.T) {
		short := NewTokenManager(testSecret, "kimi", time.Millisecond, time.Millisecond)
		token, err := short.IssueAccessToken("alice", nil)
		require.NoError(t, err)

		time.Sleep(10 * time.Millisecond)
		_, err = short.VerifyAccessToken(token)
		assert.Error(t, err)
	})

	t.Run("格式错误的令牌拒绝", func(t *testing.T) {
		_, err := tm.VerifyAccessToken("not-a-jwt")
		assert.Error(t, err)
	})
}

func TestSubjectOf(t *testing.T) {
	tm := newTestTokenManager()

	t.Run("免验签提取subject", func(t *testing.T) {
		token, err := tm.IssueAccessToken("alice", []string{"ROLE_admin"})
		require.NoError(t, err)

		subject, err := tm.SubjectOf(token)
		require.NoError(t, err)
		assert.Equal(t, "alice", subject)
	})

	t.Run("过期令牌仍可提取subject", func(t *testing.T) {
		short := NewTokenManager(testSecret, "kimi", time.Millisecond, time.Millisecond)
		token, err := short.IssueAccessToken("alice", nil)
		require.NoError(t, err)

		time.Sleep(10 * time.Millisecond)
		subject, err := short.SubjectOf(token)
		require.NoError(t, err)
		assert.Equal(t, "alice", subject)
	})

	t.Run("非法令牌报错", func(t *testing.T) {
		_, err := tm.SubjectOf("garbage")
		assert.Error(t, err)
	})
}

func TestExtractTokenFromHeader(t *testing.T) {
	token := "abc.def.ghi"

	assert.Equal(t, token, ExtractTokenFromHeader("Bearer "+token))
	assert.Equal(t, token, ExtractTokenFromHeader("bearer "+token))
	assert.Empty(t, ExtractTokenFromHeader(token))
	assert.Empty(t, ExtractTokenFromHeader(""))
	assert.Empty(t, ExtractTokenFromHeader("Basic dXNlcjpwYXNz"))
}

func TestAuthoritiesEncoding(t *testing.T) {
	tm := newTestTokenManager()

	// auth声明为逗号拼接的单个字符串
	authorities := []string{"ROLE_admin", "a:b:c"}
	token, err := tm.IssueAccessToken("alice", authorities)
	require.NoError(t, err)

	info, err := tm.VerifyAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, strings.Join(authorities, AuthoritiesDelimiter), strings.Join(info.Authorities, AuthoritiesDelimiter))
}
