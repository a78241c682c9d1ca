// 角色管理服务测试
// 覆盖编码唯一性、删除引用保护、权限整体替换语义
package auth

import (
	"context"
	"testing"

	"kimi/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateRole(t *testing.T) {
	f := newTestFixture(t)
	ctx := context.Background()

	t.Run("创建角色并绑定初始权限", func(t *testing.T) {
		p1 := f.createPermission(t, "system:user:view", 0)

		role, err := f.roleService.CreateRole(ctx, &model.CreateRoleRequest{
			Code:          "ops",
			Name:          "运维",
			PermissionIDs: []uint{p1.ID},
		}, 1, "127.0.0.1")
		require.NoError(t, err)

		require.Len(t, role.Permissions, 1)
		assert.Equal(t, "system:user:view", role.Permissions[0].Code)
	})

	t.Run("角色编码重复返回冲突", func(t *testing.T) {
		_, err := f.roleService.CreateRole(ctx, &model.CreateRoleRequest{
			Code: "ops",
			Name: "another",
		}, 1, "127.0.0.1")
		assert.ErrorIs(t, err, model.ErrRoleCodeExists)
		assert.True(t, model.IsConflict(err))
	})

	t.Run("初始权限中不存在的ID被静默忽略", func(t *testing.T) {
		role, err := f.roleService.CreateRole(ctx, &model.CreateRoleRequest{
			Code:          "dev",
			Name:          "开发",
			PermissionIDs: []uint{99999},
		}, 1, "127.0.0.1")
		require.NoError(t, err)
		assert.Empty(t, role.Permissions)
	})
}

func TestUpdateRole(t *testing.T) {
	f := newTestFixture(t)
	ctx := context.Background()

	role := f.createRole(t, "ops")

	t.Run("更新名称和状态", func(t *testing.T) {
		disabled := model.RoleStatusDisabled
		updated, err := f.roleService.UpdateRole(ctx, role.ID, &model.UpdateRoleRequest{
			Name:   "运维组",
			Status: &disabled,
		}, 1, "127.0.0.1")
		require.NoError(t, err)

		assert.Equal(t, "运维组", updated.Name)
		assert.Equal(t, model.RoleStatusDisabled, updated.Status)
		// 编码保持不变
		assert.Equal(t, "ops", updated.Code)
	})

	t.Run("角色不存在返回错误", func(t *testing.T) {
		_, err := f.roleService.UpdateRole(ctx, 99999, &model.UpdateRoleRequest{Name: "x"}, 1, "")
		assert.ErrorIs(t, err, model.ErrRoleNotFound)
	})
}

func TestDeleteRole(t *testing.T) {
	f := newTestFixture(t)
	ctx := context.Background()

	t.Run("被用户持有的角色拒绝删除且数据不变", func(t *testing.T) {
		role := f.createRole(t, "ops")
		user := f.createUser(t, "alice", "secret123")
		f.assignRoles(t, user.ID, role.ID)

		err := f.roleService.DeleteRole(ctx, role.ID, 1, "127.0.0.1")
		assert.ErrorIs(t, err, model.ErrRoleInUse)

		// 角色与关联均未被动过
		still, err := f.roleRepo.GetRoleByID(ctx, role.ID)
		require.NoError(t, err)
		require.NotNil(t, still)
		count, err := f.roleRepo.CountUsersWithRole(ctx, role.ID)
		require.NoError(t, err)
		assert.EqualValues(t, 1, count)
	})

	t.Run("无人持有的角色删除并清理权限关联", func(t *testing.T) {
		role := f.createRole(t, "dev")
		perm := f.createPermission(t, "system:deploy", 0)
		f.grantPermissions(t, role.ID, perm.ID)

		require.NoError(t, f.roleService.DeleteRole(ctx, role.ID, 1, "127.0.0.1"))

		gone, err := f.roleRepo.GetRoleByID(ctx, role.ID)
		require.NoError(t, err)
		assert.Nil(t, gone)

		// 关联表已清空,权限本身不受影响
		refCount, err := f.permissionRepo.CountRolesWithPermission(ctx, perm.ID)
		require.NoError(t, err)
		assert.EqualValues(t, 0, refCount)
		still, err := f.permissionRepo.GetPermissionByID(ctx, perm.ID)
		require.NoError(t, err)
		assert.NotNil(t, still)
	})

	t.Run("角色不存在返回错误", func(t *testing.T) {
		assert.ErrorIs(t, f.roleService.DeleteRole(ctx, 99999, 1, ""), model.ErrRoleNotFound)
	})
}

func TestDisabledStatusPersisted(t *testing.T) {
	f := newTestFixture(t)
	ctx := context.Background()

	t.Run("禁用状态的角色落库后读回仍为禁用", func(t *testing.T) {
		role := &model.Role{Code: "frozen", Name: "frozen", Status: model.RoleStatusDisabled}
		require.NoError(t, f.roleRepo.CreateRole(ctx, role))

		reloaded, err := f.roleRepo.GetRoleByID(ctx, role.ID)
		require.NoError(t, err)
		require.NotNil(t, reloaded)
		assert.Equal(t, model.RoleStatusDisabled, reloaded.Status)
	})

	t.Run("禁用状态的权限落库后读回仍为禁用", func(t *testing.T) {
		permission := &model.Permission{Code: "frozen:perm", Name: "frozen", Type: model.PermissionTypeAPI, Status: model.PermissionStatusDisabled}
		require.NoError(t, f.permissionRepo.CreatePermission(ctx, permission))

		reloaded, err := f.permissionRepo.GetPermissionByID(ctx, permission.ID)
		require.NoError(t, err)
		require.NotNil(t, reloaded)
		assert.Equal(t, model.PermissionStatusDisabled, reloaded.Status)
	})

	t.Run("禁用状态的用户落库后读回仍为禁用", func(t *testing.T) {
		user := &model.User{Username: "frost", Password: "x", Nickname: "frost", Status: model.UserStatusDisabled}
		require.NoError(t, f.userRepo.CreateUser(ctx, user))

		reloaded, err := f.userRepo.GetUserByID(ctx, user.ID)
		require.NoError(t, err)
		require.NotNil(t, reloaded)
		assert.Equal(t, model.UserStatusDisabled, reloaded.Status)
	})
}

func TestSetRolePermissions(t *testing.T) {
	f := newTestFixture(t)
	ctx := context.Background()

	role := f.createRole(t, "ops")
	p1 := f.createPermission(t, "perm:1", 0)
	p2 := f.createPermission(t, "perm:2", 0)
	p3 := f.createPermission(t, "perm:3", 0)

	t.Run("整体替换而非差量合并", func(t *testing.T) {
		_, err := f.roleService.SetRolePermissions(ctx, role.ID, []uint{p1.ID, p2.ID}, 1, "127.0.0.1")
		require.NoError(t, err)

		updated, err := f.roleService.SetRolePermissions(ctx, role.ID, []uint{p2.ID, p3.ID}, 1, "127.0.0.1")
		require.NoError(t, err)

		codes := make([]string, 0, len(updated.Permissions))
		for _, permission := range updated.Permissions {
			codes = append(codes, permission.Code)
		}
		assert.ElementsMatch(t, []string{"perm:2", "perm:3"}, codes)
	})

	t.Run("重复提交同一列表幂等", func(t *testing.T) {
		first, err := f.roleService.SetRolePermissions(ctx, role.ID, []uint{p1.ID, p2.ID}, 1, "")
		require.NoError(t, err)
		second, err := f.roleService.SetRolePermissions(ctx, role.ID, []uint{p1.ID, p2.ID}, 1, "")
		require.NoError(t, err)
		assert.Equal(t, len(first.Permissions), len(second.Permissions))
	})

	t.Run("空列表清空全部权限", func(t *testing.T) {
		updated, err := f.roleService.SetRolePermissions(ctx, role.ID, []uint{}, 1, "")
		require.NoError(t, err)
		assert.Empty(t, updated.Permissions)
	})

	t.Run("不存在的权限ID被静默忽略", func(t *testing.T) {
		updated, err := f.roleService.SetRolePermissions(ctx, role.ID, []uint{p1.ID, 99999}, 1, "")
		require.NoError(t, err)
		require.Len(t, updated.Permissions, 1)
		assert.Equal(t, "perm:1", updated.Permissions[0].Code)
	})
}
