// 令牌服务测试
// 验证失败对调用方收敛为统一错误,具体原因进日志
package auth

import (
	"testing"

	"kimi/internal/model"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateTokenFailureLogged(t *testing.T) {
	hook := test.NewGlobal()
	defer hook.Reset()

	ts := testTokenService()

	t.Run("访问令牌验证失败收敛为统一错误且原因进日志", func(t *testing.T) {
		hook.Reset()

		_, err := ts.ValidateAccessToken("not-a-token")
		assert.ErrorIs(t, err, model.ErrTokenInvalid)

		require.NotEmpty(t, hook.Entries)
		entry := hook.LastEntry()
		assert.Equal(t, "access", entry.Data["token_type"])
		assert.NotEmpty(t, entry.Data["reason"])
	})

	t.Run("刷新令牌验证失败同样记录原因", func(t *testing.T) {
		hook.Reset()

		_, err := ts.ValidateRefreshToken("not-a-token")
		assert.ErrorIs(t, err, model.ErrTokenInvalid)

		require.NotEmpty(t, hook.Entries)
		assert.Equal(t, "refresh", hook.LastEntry().Data["token_type"])
	})
}
