// 主体解析服务测试
// 覆盖权限字符串集合的组成规则:ROLE_前缀、状态过滤、去重
package auth

import (
	"context"
	"testing"

	"kimi/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolvePrincipal(t *testing.T) {
	f := newTestFixture(t)
	ctx := context.Background()

	t.Run("角色带ROLE_前缀且权限编码平铺", func(t *testing.T) {
		user := f.createUser(t, "alice", "secret123")
		admin := f.createRole(t, "admin")
		userView := f.createPermission(t, "system:user:view", 0)
		userManage := f.createPermission(t, "system:user:manage", 0)
		f.grantPermissions(t, admin.ID, userView.ID, userManage.ID)
		f.assignRoles(t, user.ID, admin.ID)

		principal, err := f.principalService.ResolveByUsername(ctx, "alice")
		require.NoError(t, err)

		assert.Equal(t, user.ID, principal.UserID)
		assert.True(t, principal.Enabled)
		assert.False(t, principal.Locked)
		assert.Equal(t, []string{"ROLE_admin", "system:user:view", "system:user:manage"}, principal.Authorities)
		assert.True(t, principal.HasRole("admin"))
		assert.True(t, principal.HasAuthority("system:user:view"))
		assert.False(t, principal.HasAuthority("system:role:manage"))
	})

	t.Run("禁用角色整体跳过", func(t *testing.T) {
		user := f.createUser(t, "bob", "secret123")
		disabled := &model.Role{Code: "auditor", Name: "auditor", Status: model.RoleStatusDisabled}
		require.NoError(t, f.roleRepo.CreateRole(ctx, disabled))
		perm := f.createPermission(t, "system:audit:view", 0)
		f.grantPermissions(t, disabled.ID, perm.ID)
		f.assignRoles(t, user.ID, disabled.ID)

		principal, err := f.principalService.ResolveByUsername(ctx, "bob")
		require.NoError(t, err)
		assert.Empty(t, principal.Authorities)
	})

	t.Run("启用角色下的禁用权限单独跳过", func(t *testing.T) {
		user := f.createUser(t, "carol", "secret123")
		role := f.createRole(t, "viewer")
		enabled := f.createPermission(t, "system:report:view", 0)
		disabledPerm := &model.Permission{
			Code: "system:report:export", Name: "export",
			Type: model.PermissionTypeAPI, Status: model.PermissionStatusDisabled,
		}
		require.NoError(t, f.permissionRepo.CreatePermission(ctx, disabledPerm))
		f.grantPermissions(t, role.ID, enabled.ID, disabledPerm.ID)
		f.assignRoles(t, user.ID, role.ID)

		principal, err := f.principalService.ResolveByUsername(ctx, "carol")
		require.NoError(t, err)
		assert.Equal(t, []string{"ROLE_viewer", "system:report:view"}, principal.Authorities)
	})

	t.Run("多角色共享权限去重", func(t *testing.T) {
		user := f.createUser(t, "dave", "secret123")
		role1 := f.createRole(t, "ops")
		role2 := f.createRole(t, "dev")
		shared := f.createPermission(t, "system:deploy", 0)
		f.grantPermissions(t, role1.ID, shared.ID)
		f.grantPermissions(t, role2.ID, shared.ID)
		f.assignRoles(t, user.ID, role1.ID, role2.ID)

		principal, err := f.principalService.ResolveByUsername(ctx, "dave")
		require.NoError(t, err)

		count := 0
		for _, authority := range principal.Authorities {
			if authority == "system:deploy" {
				count++
			}
		}
		assert.Equal(t, 1, count)
		assert.ElementsMatch(t, []string{"ROLE_ops", "ROLE_dev", "system:deploy"}, principal.Authorities)
	})

	t.Run("禁用用户解析为未启用主体", func(t *testing.T) {
		user := f.createUser(t, "eve", "secret123")
		user.Status = model.UserStatusDisabled
		require.NoError(t, f.userRepo.UpdateUser(ctx, user))

		principal, err := f.principalService.ResolveByUsername(ctx, "eve")
		require.NoError(t, err)
		assert.False(t, principal.Enabled)
		assert.True(t, principal.Locked)
	})

	t.Run("用户不存在返回ErrUserNotFound", func(t *testing.T) {
		_, err := f.principalService.ResolveByUsername(ctx, "ghost")
		assert.ErrorIs(t, err, model.ErrUserNotFound)
	})
}

func TestRBACChecks(t *testing.T) {
	f := newTestFixture(t)

	principal := &model.Principal{
		Username:    "alice",
		Enabled:     true,
		Authorities: []string{"ROLE_admin", "system:user:view"},
	}

	assert.True(t, f.rbacService.IsAdmin(principal))
	assert.True(t, f.rbacService.HasAuthority(principal, "system:user:view"))
	assert.True(t, f.rbacService.HasAnyAuthority(principal, "nope", "system:user:view"))
	assert.False(t, f.rbacService.HasAuthority(principal, "system:user:manage"))
	assert.False(t, f.rbacService.HasAuthority(nil, "system:user:view"))

	plain := &model.Principal{Username: "bob", Enabled: true, Authorities: []string{"ROLE_user"}}
	assert.False(t, f.rbacService.IsAdmin(plain))
}
