// 服务层测试辅助
// 使用内存SQLite跑真实gorm读写,不mock仓库层
package auth

import (
	"context"
	"testing"
	"time"

	"kimi/internal/config"
	"kimi/internal/model"
	pkgauth "kimi/internal/pkg/auth"
	mysqlRepo "kimi/internal/repository/mysql"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// newTestDB 打开内存数据库并完成建表
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.SetupJoinTable(&model.User{}, "Roles", &model.UserRole{}))
	require.NoError(t, db.SetupJoinTable(&model.Role{}, "Users", &model.UserRole{}))
	require.NoError(t, db.SetupJoinTable(&model.Role{}, "Permissions", &model.RolePermission{}))
	require.NoError(t, db.SetupJoinTable(&model.Permission{}, "Roles", &model.RolePermission{}))
	require.NoError(t, db.AutoMigrate(&model.User{}, &model.Role{}, &model.Permission{}))
	return db
}

// testAuthConfig 测试用认证业务配置
func testAuthConfig() *config.AuthConfig {
	return &config.AuthConfig{
		AdminRoleCode:   "admin",
		DefaultRoleCode: "user",
		DefaultAvatar:   "/static/avatar/default.png",
		ResetPassword:   "kimi@123456",
	}
}

// testPasswordManager 轻量argon2参数,避免测试耗时
func testPasswordManager() *pkgauth.PasswordManager {
	return pkgauth.NewPasswordManager(&pkgauth.PasswordConfig{
		Memory:      1024,
		Iterations:  1,
		Parallelism: 1,
		SaltLength:  16,
		KeyLength:   32,
	})
}

// testTokenService 测试用令牌服务
func testTokenService() *TokenService {
	tm := pkgauth.NewTokenManager("test-secret-key-0123456789abcdef-0000", "kimi", time.Hour, 7*24*time.Hour)
	return NewTokenService(tm)
}

// testFixture 服务层测试上下文
type testFixture struct {
	db             *gorm.DB
	userRepo       *mysqlRepo.UserRepository
	roleRepo       *mysqlRepo.RoleRepository
	permissionRepo *mysqlRepo.PermissionRepository

	principalService  *PrincipalService
	tokenService      *TokenService
	sessionService    *SessionService
	passwordService   *PasswordService
	userService       *UserService
	roleService       *RoleService
	permissionService *PermissionService
	rbacService       *RBACService
}

// newTestFixture 构建全套服务,Redis会话缓存留空
func newTestFixture(t *testing.T) *testFixture {
	t.Helper()

	db := newTestDB(t)
	userRepo := mysqlRepo.NewUserRepository(db)
	roleRepo := mysqlRepo.NewRoleRepository(db)
	permissionRepo := mysqlRepo.NewPermissionRepository(db)

	authCfg := testAuthConfig()
	passwordManager := testPasswordManager()
	principalService := NewPrincipalService(userRepo)
	tokenService := testTokenService()

	return &testFixture{
		db:             db,
		userRepo:       userRepo,
		roleRepo:       roleRepo,
		permissionRepo: permissionRepo,

		principalService:  principalService,
		tokenService:      tokenService,
		sessionService:    NewSessionService(userRepo, nil, principalService, tokenService, passwordManager),
		passwordService:   NewPasswordService(userRepo, passwordManager, authCfg),
		userService:       NewUserService(userRepo, roleRepo, passwordManager, authCfg),
		roleService:       NewRoleService(roleRepo, permissionRepo),
		permissionService: NewPermissionService(permissionRepo),
		rbacService:       NewRBACService(principalService, authCfg),
	}
}

// createUser 创建启用状态的测试用户,返回用户
func (f *testFixture) createUser(t *testing.T, username, password string) *model.User {
	t.Helper()

	hash, err := testPasswordManager().HashPassword(password)
	require.NoError(t, err)
	user := &model.User{
		Username: username,
		Password: hash,
		Nickname: username,
		Status:   model.UserStatusEnabled,
	}
	require.NoError(t, f.userRepo.CreateUser(context.Background(), user))
	return user
}

// createRole 创建启用状态的角色
func (f *testFixture) createRole(t *testing.T, code string) *model.Role {
	t.Helper()

	role := &model.Role{
		Code:   code,
		Name:   code,
		Status: model.RoleStatusEnabled,
	}
	require.NoError(t, f.roleRepo.CreateRole(context.Background(), role))
	return role
}

// createPermission 创建启用状态的权限
func (f *testFixture) createPermission(t *testing.T, code string, parentID uint) *model.Permission {
	t.Helper()

	permission := &model.Permission{
		Code:     code,
		Name:     code,
		Type:     model.PermissionTypeAPI,
		ParentID: parentID,
		Status:   model.PermissionStatusEnabled,
	}
	require.NoError(t, f.permissionRepo.CreatePermission(context.Background(), permission))
	return permission
}

// assignRoles 给用户挂角色
func (f *testFixture) assignRoles(t *testing.T, userID uint, roleIDs ...uint) {
	t.Helper()
	require.NoError(t, f.userRepo.ReplaceUserRoles(context.Background(), userID, roleIDs, 0))
}

// grantPermissions 给角色挂权限
func (f *testFixture) grantPermissions(t *testing.T, roleID uint, permissionIDs ...uint) {
	t.Helper()
	require.NoError(t, f.roleRepo.ReplaceRolePermissions(context.Background(), roleID, permissionIDs, 0))
}
