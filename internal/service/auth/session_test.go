// 会话服务测试
// 覆盖登录/刷新/登出编排:凭证错误收敛、禁用拦截、权限快照刷新、刷新令牌不轮换
package auth

import (
	"context"
	"testing"

	"kimi/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogin(t *testing.T) {
	f := newTestFixture(t)
	ctx := context.Background()

	user := f.createUser(t, "alice", "secret123")
	admin := f.createRole(t, "admin")
	perm := f.createPermission(t, "system:user:view", 0)
	f.grantPermissions(t, admin.ID, perm.ID)
	f.assignRoles(t, user.ID, admin.ID)

	t.Run("登录成功返回令牌对和权限快照", func(t *testing.T) {
		resp, err := f.sessionService.Login(ctx, &model.LoginRequest{
			Username: "alice",
			Password: "secret123",
		}, "127.0.0.1", "test-agent")
		require.NoError(t, err)

		assert.NotEmpty(t, resp.AccessToken)
		assert.NotEmpty(t, resp.RefreshToken)
		assert.Equal(t, "Bearer", resp.TokenType)
		assert.Equal(t, []string{"ROLE_admin", "system:user:view"}, resp.Principal.Authorities)
		assert.Equal(t, "alice", resp.User.Username)

		// 签发的访问令牌可以独立验证,携带相同的权限快照
		info, err := f.tokenService.ValidateAccessToken(resp.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, "alice", info.Subject)
		assert.Equal(t, resp.Principal.Authorities, info.Authorities)
	})

	t.Run("登录更新最近登录痕迹", func(t *testing.T) {
		_, err := f.sessionService.Login(ctx, &model.LoginRequest{
			Username: "alice",
			Password: "secret123",
		}, "10.0.0.8", "test-agent")
		require.NoError(t, err)

		reloaded, err := f.userRepo.GetUserByID(ctx, user.ID)
		require.NoError(t, err)
		require.NotNil(t, reloaded.LastLoginAt)
		assert.Equal(t, "10.0.0.8", reloaded.LastLoginIP)
	})

	t.Run("密码错误返回统一凭证错误", func(t *testing.T) {
		_, err := f.sessionService.Login(ctx, &model.LoginRequest{
			Username: "alice",
			Password: "wrong-password",
		}, "127.0.0.1", "")
		assert.ErrorIs(t, err, model.ErrInvalidCredentials)
	})

	t.Run("用户不存在返回统一凭证错误", func(t *testing.T) {
		_, err := f.sessionService.Login(ctx, &model.LoginRequest{
			Username: "ghost",
			Password: "secret123",
		}, "127.0.0.1", "")
		assert.ErrorIs(t, err, model.ErrInvalidCredentials)
	})

	t.Run("禁用账号拒绝登录", func(t *testing.T) {
		disabled := f.createUser(t, "frank", "secret123")
		disabled.Status = model.UserStatusDisabled
		require.NoError(t, f.userRepo.UpdateUser(ctx, disabled))

		_, err := f.sessionService.Login(ctx, &model.LoginRequest{
			Username: "frank",
			Password: "secret123",
		}, "127.0.0.1", "")
		assert.ErrorIs(t, err, model.ErrAccountDisabled)
	})
}

func TestRefreshAccessToken(t *testing.T) {
	f := newTestFixture(t)
	ctx := context.Background()

	user := f.createUser(t, "alice", "secret123")
	admin := f.createRole(t, "admin")
	f.assignRoles(t, user.ID, admin.ID)

	login := func(t *testing.T) *model.LoginResponse {
		resp, err := f.sessionService.Login(ctx, &model.LoginRequest{
			Username: "alice",
			Password: "secret123",
		}, "127.0.0.1", "")
		require.NoError(t, err)
		return resp
	}

	t.Run("刷新换发新访问令牌且刷新令牌不变", func(t *testing.T) {
		resp := login(t)

		refreshed, err := f.sessionService.RefreshAccessToken(ctx, resp.RefreshToken, "127.0.0.1")
		require.NoError(t, err)
		assert.NotEmpty(t, refreshed.AccessToken)
		assert.Equal(t, resp.RefreshToken, refreshed.RefreshToken)

		info, err := f.tokenService.ValidateAccessToken(refreshed.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, "alice", info.Subject)
	})

	t.Run("刷新后的令牌携带最新权限快照", func(t *testing.T) {
		resp := login(t)

		// 登录后授权发生变化
		perm := f.createPermission(t, "system:role:view", 0)
		f.grantPermissions(t, admin.ID, perm.ID)

		refreshed, err := f.sessionService.RefreshAccessToken(ctx, resp.RefreshToken, "127.0.0.1")
		require.NoError(t, err)

		info, err := f.tokenService.ValidateAccessToken(refreshed.AccessToken)
		require.NoError(t, err)
		assert.Contains(t, info.Authorities, "system:role:view")
	})

	t.Run("访问令牌不能用于刷新", func(t *testing.T) {
		resp := login(t)

		_, err := f.sessionService.RefreshAccessToken(ctx, resp.AccessToken, "127.0.0.1")
		assert.ErrorIs(t, err, model.ErrTokenInvalid)
	})

	t.Run("用户被删除后刷新令牌失效", func(t *testing.T) {
		victim := f.createUser(t, "temp", "secret123")
		resp, err := f.sessionService.Login(ctx, &model.LoginRequest{
			Username: "temp",
			Password: "secret123",
		}, "127.0.0.1", "")
		require.NoError(t, err)

		require.NoError(t, f.userRepo.DeleteUser(ctx, victim.ID))

		_, err = f.sessionService.RefreshAccessToken(ctx, resp.RefreshToken, "127.0.0.1")
		assert.ErrorIs(t, err, model.ErrTokenInvalid)
	})

	t.Run("用户被禁用后刷新被拒", func(t *testing.T) {
		resp := login(t)

		user.Status = model.UserStatusDisabled
		require.NoError(t, f.userRepo.UpdateUser(ctx, user))

		_, err := f.sessionService.RefreshAccessToken(ctx, resp.RefreshToken, "127.0.0.1")
		assert.ErrorIs(t, err, model.ErrAccountDisabled)

		// 恢复,避免影响后续用例
		user.Status = model.UserStatusEnabled
		require.NoError(t, f.userRepo.UpdateUser(ctx, user))
	})

	t.Run("伪造刷新令牌被拒", func(t *testing.T) {
		_, err := f.sessionService.RefreshAccessToken(ctx, "not-a-token", "127.0.0.1")
		assert.ErrorIs(t, err, model.ErrTokenInvalid)
	})
}

func TestLogout(t *testing.T) {
	f := newTestFixture(t)
	ctx := context.Background()

	f.createUser(t, "alice", "secret123")

	t.Run("未配置Redis时登出直接成功", func(t *testing.T) {
		assert.NoError(t, f.sessionService.Logout(ctx, "alice", "127.0.0.1"))
	})

	t.Run("用户不存在登出报错", func(t *testing.T) {
		assert.ErrorIs(t, f.sessionService.Logout(ctx, "ghost", "127.0.0.1"), model.ErrUserNotFound)
	})

	t.Run("未配置Redis时在线会话列表为空", func(t *testing.T) {
		sessions, err := f.sessionService.ListOnlineSessions(ctx)
		require.NoError(t, err)
		assert.Empty(t, sessions)
	})
}

func TestChangePassword(t *testing.T) {
	f := newTestFixture(t)
	ctx := context.Background()

	user := f.createUser(t, "alice", "secret123")

	t.Run("旧密码错误拒绝修改", func(t *testing.T) {
		err := f.passwordService.ChangePassword(ctx, user.ID, &model.ChangePasswordRequest{
			OldPassword:     "wrong",
			NewPassword:     "newpass123",
			ConfirmPassword: "newpass123",
		}, "127.0.0.1")
		assert.ErrorIs(t, err, model.ErrPasswordMismatch)
	})

	t.Run("两次新密码不一致拒绝修改", func(t *testing.T) {
		err := f.passwordService.ChangePassword(ctx, user.ID, &model.ChangePasswordRequest{
			OldPassword:     "secret123",
			NewPassword:     "newpass123",
			ConfirmPassword: "different123",
		}, "127.0.0.1")
		assert.ErrorIs(t, err, model.ErrPasswordConfirmMismatch)
	})

	t.Run("修改成功后新密码可登录旧密码失效", func(t *testing.T) {
		require.NoError(t, f.passwordService.ChangePassword(ctx, user.ID, &model.ChangePasswordRequest{
			OldPassword:     "secret123",
			NewPassword:     "newpass123",
			ConfirmPassword: "newpass123",
		}, "127.0.0.1"))

		_, err := f.sessionService.Login(ctx, &model.LoginRequest{Username: "alice", Password: "secret123"}, "", "")
		assert.ErrorIs(t, err, model.ErrInvalidCredentials)

		_, err = f.sessionService.Login(ctx, &model.LoginRequest{Username: "alice", Password: "newpass123"}, "", "")
		assert.NoError(t, err)
	})

	t.Run("管理员重置密码为固定默认值", func(t *testing.T) {
		target := f.createUser(t, "bob", "secret123")
		require.NoError(t, f.passwordService.ResetPassword(ctx, target.ID, user.ID, "127.0.0.1"))

		_, err := f.sessionService.Login(ctx, &model.LoginRequest{Username: "bob", Password: "kimi@123456"}, "", "")
		assert.NoError(t, err)
	})
}
