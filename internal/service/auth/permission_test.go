// 权限管理服务测试
// 覆盖树构建、环路防护、删除前的层级与引用检查
package auth

import (
	"context"
	"testing"

	"kimi/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatePermission(t *testing.T) {
	f := newTestFixture(t)
	ctx := context.Background()

	t.Run("创建根权限和子权限", func(t *testing.T) {
		root, err := f.permissionService.CreatePermission(ctx, &model.CreatePermissionRequest{
			Code: "system", Name: "系统管理", Type: model.PermissionTypeMenu,
		}, 1, "127.0.0.1")
		require.NoError(t, err)
		assert.True(t, root.IsRoot())

		child, err := f.permissionService.CreatePermission(ctx, &model.CreatePermissionRequest{
			Code: "system:user", Name: "用户管理", Type: model.PermissionTypeMenu, ParentID: root.ID,
		}, 1, "127.0.0.1")
		require.NoError(t, err)
		assert.Equal(t, root.ID, child.ParentID)
	})

	t.Run("权限编码重复返回冲突", func(t *testing.T) {
		_, err := f.permissionService.CreatePermission(ctx, &model.CreatePermissionRequest{
			Code: "system", Name: "dup", Type: model.PermissionTypeMenu,
		}, 1, "")
		assert.ErrorIs(t, err, model.ErrPermissionCodeExists)
	})

	t.Run("父节点不存在拒绝创建", func(t *testing.T) {
		_, err := f.permissionService.CreatePermission(ctx, &model.CreatePermissionRequest{
			Code: "orphan", Name: "orphan", Type: model.PermissionTypeAPI, ParentID: 99999,
		}, 1, "")
		assert.ErrorIs(t, err, model.ErrPermissionParentNotFound)
	})
}

func TestPermissionTree(t *testing.T) {
	f := newTestFixture(t)
	ctx := context.Background()

	t.Run("树结构与同级顺序", func(t *testing.T) {
		root := f.createPermission(t, "system", 0)
		childA := &model.Permission{Code: "system:a", Name: "a", Type: model.PermissionTypeMenu, ParentID: root.ID, SortOrder: 2, Status: model.PermissionStatusEnabled}
		childB := &model.Permission{Code: "system:b", Name: "b", Type: model.PermissionTypeMenu, ParentID: root.ID, SortOrder: 1, Status: model.PermissionStatusEnabled}
		require.NoError(t, f.permissionRepo.CreatePermission(ctx, childA))
		require.NoError(t, f.permissionRepo.CreatePermission(ctx, childB))
		grandchild := f.createPermission(t, "system:b:detail", childB.ID)

		tree, err := f.permissionService.GetPermissionTree(ctx)
		require.NoError(t, err)

		require.Len(t, tree, 1)
		assert.Equal(t, "system", tree[0].Code)
		// 同级按sort_order排序
		require.Len(t, tree[0].Children, 2)
		assert.Equal(t, "system:b", tree[0].Children[0].Code)
		assert.Equal(t, "system:a", tree[0].Children[1].Code)
		require.Len(t, tree[0].Children[0].Children, 1)
		assert.Equal(t, grandchild.Code, tree[0].Children[0].Children[0].Code)
		// 叶子节点children为空切片而不是nil
		assert.NotNil(t, tree[0].Children[1].Children)
		assert.Empty(t, tree[0].Children[1].Children)
	})

	t.Run("父节点缺失的游离节点不进树", func(t *testing.T) {
		orphan := &model.Permission{Code: "orphan", Name: "orphan", Type: model.PermissionTypeAPI, ParentID: 99999, Status: model.PermissionStatusEnabled}
		require.NoError(t, f.permissionRepo.CreatePermission(ctx, orphan))

		tree, err := f.permissionService.GetPermissionTree(ctx)
		require.NoError(t, err)
		for _, node := range tree {
			assert.NotEqual(t, "orphan", node.Code)
		}
	})

	t.Run("空表返回空根列表", func(t *testing.T) {
		empty := newTestFixture(t)
		tree, err := empty.permissionService.GetPermissionTree(ctx)
		require.NoError(t, err)
		assert.NotNil(t, tree)
		assert.Empty(t, tree)
	})
}

func TestUpdatePermissionParent(t *testing.T) {
	f := newTestFixture(t)
	ctx := context.Background()

	// system -> system:user -> system:user:detail
	root := f.createPermission(t, "system", 0)
	child := f.createPermission(t, "system:user", root.ID)
	grandchild := f.createPermission(t, "system:user:detail", child.ID)

	t.Run("父节点改为自身拒绝", func(t *testing.T) {
		parentID := child.ID
		_, err := f.permissionService.UpdatePermission(ctx, child.ID, &model.UpdatePermissionRequest{
			ParentID: &parentID,
		}, 1, "")
		assert.ErrorIs(t, err, model.ErrPermissionParentCycle)
	})

	t.Run("父节点改为自身后代拒绝", func(t *testing.T) {
		parentID := grandchild.ID
		_, err := f.permissionService.UpdatePermission(ctx, child.ID, &model.UpdatePermissionRequest{
			ParentID: &parentID,
		}, 1, "")
		assert.ErrorIs(t, err, model.ErrPermissionParentCycle)
	})

	t.Run("父节点不存在拒绝", func(t *testing.T) {
		parentID := uint(99999)
		_, err := f.permissionService.UpdatePermission(ctx, child.ID, &model.UpdatePermissionRequest{
			ParentID: &parentID,
		}, 1, "")
		assert.ErrorIs(t, err, model.ErrPermissionParentNotFound)
	})

	t.Run("挂到合法的新父节点", func(t *testing.T) {
		other := f.createPermission(t, "report", 0)
		parentID := other.ID
		updated, err := f.permissionService.UpdatePermission(ctx, grandchild.ID, &model.UpdatePermissionRequest{
			ParentID: &parentID,
		}, 1, "")
		require.NoError(t, err)
		assert.Equal(t, other.ID, updated.ParentID)
	})

	t.Run("提升为根节点", func(t *testing.T) {
		parentID := uint(0)
		updated, err := f.permissionService.UpdatePermission(ctx, child.ID, &model.UpdatePermissionRequest{
			ParentID: &parentID,
		}, 1, "")
		require.NoError(t, err)
		assert.True(t, updated.IsRoot())
	})
}

func TestDeletePermission(t *testing.T) {
	f := newTestFixture(t)
	ctx := context.Background()

	t.Run("有子节点拒绝删除", func(t *testing.T) {
		parent := f.createPermission(t, "system", 0)
		f.createPermission(t, "system:user", parent.ID)

		err := f.permissionService.DeletePermission(ctx, parent.ID, 1, "")
		assert.ErrorIs(t, err, model.ErrPermissionHasChildren)

		still, err := f.permissionRepo.GetPermissionByID(ctx, parent.ID)
		require.NoError(t, err)
		assert.NotNil(t, still)
	})

	t.Run("被角色引用拒绝删除", func(t *testing.T) {
		perm := f.createPermission(t, "system:deploy", 0)
		role := f.createRole(t, "ops")
		f.grantPermissions(t, role.ID, perm.ID)

		err := f.permissionService.DeletePermission(ctx, perm.ID, 1, "")
		assert.ErrorIs(t, err, model.ErrPermissionInUse)
	})

	t.Run("叶子且无引用可删除", func(t *testing.T) {
		perm := f.createPermission(t, "system:tmp", 0)
		require.NoError(t, f.permissionService.DeletePermission(ctx, perm.ID, 1, ""))

		gone, err := f.permissionRepo.GetPermissionByID(ctx, perm.ID)
		require.NoError(t, err)
		assert.Nil(t, gone)
	})

	t.Run("权限不存在返回错误", func(t *testing.T) {
		assert.ErrorIs(t, f.permissionService.DeletePermission(ctx, 99999, 1, ""), model.ErrPermissionNotFound)
	})
}

func TestPermissionStats(t *testing.T) {
	f := newTestFixture(t)
	ctx := context.Background()

	f.createPermission(t, "api:1", 0)
	menu := &model.Permission{Code: "menu:1", Name: "m", Type: model.PermissionTypeMenu, Status: model.PermissionStatusEnabled}
	require.NoError(t, f.permissionRepo.CreatePermission(ctx, menu))

	stats, err := f.permissionService.GetPermissionStats(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, stats.Total)
	assert.EqualValues(t, 1, stats.Menu)
	assert.EqualValues(t, 1, stats.API)
	assert.EqualValues(t, 0, stats.Button)
}
