// 密码工具单元测试
// 使用轻量argon2参数,避免测试耗时
package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPasswordManager() *PasswordManager {
	return NewPasswordManager(&PasswordConfig{
		Memory:      1024,
		Iterations:  1,
		Parallelism: 1,
		SaltLength:  16,
		KeyLength:   32,
	})
}

func TestPasswordHashAndVerify(t *testing.T) {
	pm := newTestPasswordManager()

	t.Run("哈希验证往返", func(t *testing.T) {
		hash, err := pm.HashPassword("secret123")
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(hash, "$argon2id$v=19$"))

		ok, err := pm.VerifyPassword("secret123", hash)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("错误密码验证失败", func(t *testing.T) {
		hash, err := pm.HashPassword("secret123")
		require.NoError(t, err)

		ok, err := pm.VerifyPassword("wrong-password", hash)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("相同密码两次哈希结果不同", func(t *testing.T) {
		hash1, err := pm.HashPassword("secret123")
		require.NoError(t, err)
		hash2, err := pm.HashPassword("secret123")
		require.NoError(t, err)
		assert.NotEqual(t, hash1, hash2)
	})

	t.Run("空密码拒绝哈希", func(t *testing.T) {
		_, err := pm.HashPassword("")
		assert.Error(t, err)
	})

	t.Run("非法哈希格式报错", func(t *testing.T) {
		_, err := pm.VerifyPassword("secret123", "not-a-phc-hash")
		assert.Error(t, err)
	})
}

func TestValidatePasswordStrength(t *testing.T) {
	assert.NoError(t, ValidatePasswordStrength("abc123"))
	assert.NoError(t, ValidatePasswordStrength("Passw0rd!"))

	assert.Error(t, ValidatePasswordStrength("ab1"))     // 太短
	assert.Error(t, ValidatePasswordStrength("abcdef"))  // 无数字
	assert.Error(t, ValidatePasswordStrength("123456"))  // 无字母
}
