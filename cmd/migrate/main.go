/**
 * 入口:数据库迁移与初始化
 * @author: hxll
 * @date: 2025.11.18
 * @description: 建表迁移,可选初始化管理员角色/用户与基础权限树,重复执行安全
 * @func: main
 */
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"kimi/internal/config"
	"kimi/internal/model"
	"kimi/internal/pkg/auth"
	"kimi/internal/pkg/database"
	"kimi/internal/pkg/logger"
	mysqlRepo "kimi/internal/repository/mysql"

	"gorm.io/gorm"
)

func main() {
	var (
		configPath = flag.String("config", "", "配置文件目录,缺省为 configs/")
		env        = flag.String("env", "", "运行环境: development, test, production")
		seed       = flag.Bool("seed", false, "迁移后初始化管理员角色/用户与基础权限树")
	)
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath, *env)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	if _, err := logger.Init(&cfg.Log); err != nil {
		fmt.Fprintf(os.Stderr, "failed to init logger: %v\n", err)
		os.Exit(1)
	}

	db, err := database.NewMySQLConnection(&cfg.Database.MySQL)
	if err != nil {
		logger.WithFields(map[string]interface{}{"error": err.Error()}).Fatal("MySQL连接失败")
	}

	if err := Migrate(db); err != nil {
		logger.WithFields(map[string]interface{}{"error": err.Error()}).Fatal("数据库迁移失败")
	}
	logger.WithFields(nil).Info("数据库迁移完成")

	if *seed {
		if err := Seed(context.Background(), db, cfg); err != nil {
			logger.WithFields(map[string]interface{}{"error": err.Error()}).Fatal("初始化数据失败")
		}
		logger.WithFields(nil).Info("初始化数据完成")
	}
}

// Migrate 执行建表迁移
// 先注册自定义连接表模型,让关联表携带审计字段
func Migrate(db *gorm.DB) error {
	if err := db.SetupJoinTable(&model.User{}, "Roles", &model.UserRole{}); err != nil {
		return fmt.Errorf("setup user_roles join table: %w", err)
	}
	if err := db.SetupJoinTable(&model.Role{}, "Users", &model.UserRole{}); err != nil {
		return fmt.Errorf("setup user_roles join table: %w", err)
	}
	if err := db.SetupJoinTable(&model.Role{}, "Permissions", &model.RolePermission{}); err != nil {
		return fmt.Errorf("setup role_permissions join table: %w", err)
	}
	if err := db.SetupJoinTable(&model.Permission{}, "Roles", &model.RolePermission{}); err != nil {
		return fmt.Errorf("setup role_permissions join table: %w", err)
	}
	return db.AutoMigrate(&model.User{}, &model.Role{}, &model.Permission{})
}

// Seed 初始化管理员角色/用户与基础权限树
// 全部按编码先查后建,重复执行不产生重复数据
func Seed(ctx context.Context, db *gorm.DB, cfg *config.Config) error {
	userRepo := mysqlRepo.NewUserRepository(db)
	roleRepo := mysqlRepo.NewRoleRepository(db)
	permissionRepo := mysqlRepo.NewPermissionRepository(db)

	// 1) 基础权限树:系统管理菜单 + 各管理接口权限
	systemMenu, err := ensurePermission(ctx, permissionRepo, &model.Permission{
		Code: "system", Name: "系统管理", Type: model.PermissionTypeMenu, ParentID: 0, Path: "/system", SortOrder: 1,
	})
	if err != nil {
		return err
	}

	permissionSpecs := []*model.Permission{
		{Code: "system:user:view", Name: "用户查看", Type: model.PermissionTypeAPI, Path: "/api/v1/system/users", Method: "GET", SortOrder: 1},
		{Code: "system:user:manage", Name: "用户管理", Type: model.PermissionTypeAPI, Path: "/api/v1/system/users", Method: "POST", SortOrder: 2},
		{Code: "system:role:view", Name: "角色查看", Type: model.PermissionTypeAPI, Path: "/api/v1/system/roles", Method: "GET", SortOrder: 3},
		{Code: "system:role:manage", Name: "角色管理", Type: model.PermissionTypeAPI, Path: "/api/v1/system/roles", Method: "POST", SortOrder: 4},
		{Code: "system:permission:view", Name: "权限查看", Type: model.PermissionTypeAPI, Path: "/api/v1/system/permissions", Method: "GET", SortOrder: 5},
		{Code: "system:permission:manage", Name: "权限管理", Type: model.PermissionTypeAPI, Path: "/api/v1/system/permissions", Method: "POST", SortOrder: 6},
	}
	permissionIDs := make([]uint, 0, len(permissionSpecs))
	for _, spec := range permissionSpecs {
		spec.ParentID = systemMenu.ID
		permission, err := ensurePermission(ctx, permissionRepo, spec)
		if err != nil {
			return err
		}
		permissionIDs = append(permissionIDs, permission.ID)
	}

	// 2) 管理员角色与默认角色
	adminRole, err := ensureRole(ctx, roleRepo, cfg.Security.Auth.AdminRoleCode, "管理员")
	if err != nil {
		return err
	}
	if err := roleRepo.ReplaceRolePermissions(ctx, adminRole.ID, permissionIDs, 0); err != nil {
		return err
	}
	if _, err := ensureRole(ctx, roleRepo, cfg.Security.Auth.DefaultRoleCode, "普通用户"); err != nil {
		return err
	}

	// 3) 管理员用户,初始密码使用配置的重置密码
	existing, err := userRepo.GetUserByUsername(ctx, "admin")
	if err != nil {
		return err
	}
	if existing == nil {
		passwordManager := auth.NewPasswordManager(auth.DefaultPasswordConfig)
		hash, err := passwordManager.HashPassword(cfg.Security.Auth.ResetPassword)
		if err != nil {
			return err
		}
		adminUser := &model.User{
			Username: "admin",
			Password: hash,
			Nickname: "管理员",
			Avatar:   cfg.Security.Auth.DefaultAvatar,
			Status:   model.UserStatusEnabled,
		}
		if err := userRepo.CreateUser(ctx, adminUser); err != nil {
			return err
		}
		if err := userRepo.ReplaceUserRoles(ctx, adminUser.ID, []uint{adminRole.ID}, adminUser.ID); err != nil {
			return err
		}
	}
	return nil
}

// ensurePermission 按编码查找权限,不存在则创建
func ensurePermission(ctx context.Context, repo *mysqlRepo.PermissionRepository, spec *model.Permission) (*model.Permission, error) {
	existing, err := repo.GetPermissionByCode(ctx, spec.Code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}
	spec.Status = model.PermissionStatusEnabled
	if err := repo.CreatePermission(ctx, spec); err != nil {
		return nil, err
	}
	return spec, nil
}

// ensureRole 按编码查找角色,不存在则创建
func ensureRole(ctx context.Context, repo *mysqlRepo.RoleRepository, code, name string) (*model.Role, error) {
	existing, err := repo.GetRoleByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}
	role := &model.Role{
		Code:   code,
		Name:   name,
		Status: model.RoleStatusEnabled,
	}
	if err := repo.CreateRole(ctx, role); err != nil {
		return nil, err
	}
	return role, nil
}
