/**
 * 认证服务层:用户管理服务
 * @author: hxll
 * @date: 2025.11.18
 * @description: 用户注册与管理端用户CRUD、用户角色整体替换
 * @note: 唯一性采用先查询后比对,冲突返回业务错误而不是依赖数据库唯一索引报错
 */
package auth

import (
	"context"

	"kimi/internal/config"
	"kimi/internal/model"
	"kimi/internal/pkg/auth"
	"kimi/internal/pkg/logger"
	"kimi/internal/repository/mysql"
)

// UserService 用户管理服务
type UserService struct {
	userRepo        *mysql.UserRepository
	roleRepo        *mysql.RoleRepository
	passwordManager *auth.PasswordManager
	authConfig      *config.AuthConfig
}

// NewUserService 创建用户管理服务实例
func NewUserService(
	userRepo *mysql.UserRepository,
	roleRepo *mysql.RoleRepository,
	passwordManager *auth.PasswordManager,
	authConfig *config.AuthConfig,
) *UserService {
	return &UserService{
		userRepo:        userRepo,
		roleRepo:        roleRepo,
		passwordManager: passwordManager,
		authConfig:      authConfig,
	}
}

// Register 用户自助注册
// 注册用户挂默认角色(或请求指定的角色编码),状态默认启用
func (s *UserService) Register(ctx context.Context, req *model.RegisterRequest, clientIP string) (*model.RegisterResponse, error) {
	if req.Password != req.ConfirmPassword {
		return nil, model.ErrPasswordConfirmMismatch
	}
	if err := auth.ValidatePasswordStrength(req.Password); err != nil {
		return nil, err
	}

	if err := s.checkUserUnique(ctx, req.Username, req.Email, req.Phone, 0); err != nil {
		return nil, err
	}

	hash, err := s.passwordManager.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	avatar := s.authConfig.DefaultAvatar
	nickname := req.Nickname
	if nickname == "" {
		nickname = req.Username
	}

	user := &model.User{
		Username: req.Username,
		Password: hash,
		Email:    req.Email,
		Phone:    req.Phone,
		Nickname: nickname,
		Avatar:   avatar,
		Status:   model.UserStatusEnabled,
	}
	if err := s.userRepo.CreateUser(ctx, user); err != nil {
		logger.LogBusinessError(err, "user_register", 0, clientIP, map[string]interface{}{
			"username":  req.Username,
			"timestamp": logger.NowFormatted(),
		})
		return nil, err
	}

	// 挂默认角色,角色不存在时注册仍然成功,用户暂无任何权限
	roleCode := req.RoleCode
	if roleCode == "" {
		roleCode = s.authConfig.DefaultRoleCode
	}
	role, err := s.roleRepo.GetRoleByCode(ctx, roleCode)
	if err == nil && role != nil {
		if err := s.userRepo.ReplaceUserRoles(ctx, user.ID, []uint{role.ID}, user.ID); err != nil {
			logger.LogBusinessError(err, "user_register", user.ID, clientIP, map[string]interface{}{
				"role_code": roleCode,
				"timestamp": logger.NowFormatted(),
			})
		} else {
			user.Roles = []*model.Role{role}
		}
	}

	logger.LogBusinessOperation("user_register", user.ID, user.Username, clientIP, "success", "注册成功", map[string]interface{}{
		"role_code": roleCode,
		"timestamp": logger.NowFormatted(),
	})

	return &model.RegisterResponse{
		User:    model.NewUserInfo(user),
		Message: "注册成功",
	}, nil
}

// CreateUser 管理端创建用户
func (s *UserService) CreateUser(ctx context.Context, req *model.CreateUserRequest, operatorID uint, clientIP string) (*model.User, error) {
	if err := auth.ValidatePasswordStrength(req.Password); err != nil {
		return nil, err
	}
	if err := s.checkUserUnique(ctx, req.Username, req.Email, req.Phone, 0); err != nil {
		return nil, err
	}

	hash, err := s.passwordManager.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	avatar := req.Avatar
	if avatar == "" {
		avatar = s.authConfig.DefaultAvatar
	}
	nickname := req.Nickname
	if nickname == "" {
		nickname = req.Username
	}

	user := &model.User{
		Username:  req.Username,
		Password:  hash,
		Email:     req.Email,
		Phone:     req.Phone,
		Nickname:  nickname,
		Avatar:    avatar,
		Status:    model.UserStatusEnabled,
		CreatedBy: operatorID,
		UpdatedBy: operatorID,
	}
	if err := s.userRepo.CreateUser(ctx, user); err != nil {
		logger.LogBusinessError(err, "user_create", operatorID, clientIP, map[string]interface{}{
			"username":  req.Username,
			"timestamp": logger.NowFormatted(),
		})
		return nil, err
	}

	if len(req.RoleIDs) > 0 {
		validIDs, err := s.filterValidRoleIDs(ctx, req.RoleIDs)
		if err != nil {
			return nil, err
		}
		if err := s.userRepo.ReplaceUserRoles(ctx, user.ID, validIDs, operatorID); err != nil {
			return nil, err
		}
	}

	logger.LogBusinessOperation("user_create", operatorID, "", clientIP, "success", "创建用户成功", map[string]interface{}{
		"target_user": user.Username,
		"user_id":     user.ID,
		"timestamp":   logger.NowFormatted(),
	})
	return s.userRepo.GetUserWithRoles(ctx, user.ID)
}

// GetUser 获取用户详情(含角色)
func (s *UserService) GetUser(ctx context.Context, userID uint) (*model.User, error) {
	user, err := s.userRepo.GetUserWithRoles(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, model.ErrUserNotFound
	}
	return user, nil
}

// ListUsers 分页获取用户列表
func (s *UserService) ListUsers(ctx context.Context, page *model.PageRequest) ([]*model.User, int64, error) {
	page.Normalize()
	return s.userRepo.ListUsers(ctx, page.Offset(), page.PageSize, page.Keyword)
}

// UpdateUser 更新用户基础信息
// 用户名不允许修改;邮箱变化时重新做唯一性检查
func (s *UserService) UpdateUser(ctx context.Context, userID uint, req *model.UpdateUserRequest, operatorID uint, clientIP string) (*model.User, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, model.ErrUserNotFound
	}

	if req.Email != "" && req.Email != user.Email {
		if err := s.checkUserUnique(ctx, "", req.Email, "", userID); err != nil {
			return nil, err
		}
		user.Email = req.Email
	}
	if req.Phone != "" && req.Phone != user.Phone {
		if err := s.checkUserUnique(ctx, "", "", req.Phone, userID); err != nil {
			return nil, err
		}
		user.Phone = req.Phone
	}
	if req.Nickname != "" {
		user.Nickname = req.Nickname
	}
	if req.Avatar != "" {
		user.Avatar = req.Avatar
	}
	if req.Status != nil {
		user.Status = *req.Status
	}
	user.UpdatedBy = operatorID

	if err := s.userRepo.UpdateUser(ctx, user); err != nil {
		logger.LogBusinessError(err, "user_update", operatorID, clientIP, map[string]interface{}{
			"target_user_id": userID,
			"timestamp":      logger.NowFormatted(),
		})
		return nil, err
	}

	logger.LogBusinessOperation("user_update", operatorID, "", clientIP, "success", "更新用户成功", map[string]interface{}{
		"target_user_id": userID,
		"timestamp":      logger.NowFormatted(),
	})
	return s.userRepo.GetUserWithRoles(ctx, userID)
}

// DeleteUser 删除用户(软删除)
// 用户角色关联随删除一并清理
func (s *UserService) DeleteUser(ctx context.Context, userID uint, operatorID uint, clientIP string) error {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return model.ErrUserNotFound
	}

	if err := s.userRepo.DeleteUser(ctx, userID); err != nil {
		logger.LogBusinessError(err, "user_delete", operatorID, clientIP, map[string]interface{}{
			"target_user_id": userID,
			"timestamp":      logger.NowFormatted(),
		})
		return err
	}

	logger.LogBusinessOperation("user_delete", operatorID, "", clientIP, "success", "删除用户成功", map[string]interface{}{
		"target_user":    user.Username,
		"target_user_id": userID,
		"timestamp":      logger.NowFormatted(),
	})
	return nil
}

// ReplaceUserRoles 整体替换用户角色
// 列表中不存在的角色ID静默忽略,空列表清空用户全部角色
func (s *UserService) ReplaceUserRoles(ctx context.Context, userID uint, roleIDs []uint, operatorID uint, clientIP string) (*model.User, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, model.ErrUserNotFound
	}

	validIDs, err := s.filterValidRoleIDs(ctx, roleIDs)
	if err != nil {
		return nil, err
	}
	if err := s.userRepo.ReplaceUserRoles(ctx, userID, validIDs, operatorID); err != nil {
		logger.LogBusinessError(err, "user_replace_roles", operatorID, clientIP, map[string]interface{}{
			"target_user_id": userID,
			"timestamp":      logger.NowFormatted(),
		})
		return nil, err
	}

	logger.LogBusinessOperation("user_replace_roles", operatorID, "", clientIP, "success", "替换用户角色成功", map[string]interface{}{
		"target_user_id": userID,
		"role_ids":       validIDs,
		"timestamp":      logger.NowFormatted(),
	})
	return s.userRepo.GetUserWithRoles(ctx, userID)
}

// GetUserByUsername 根据用户名获取用户(含角色)
// 用于当前登录用户的个人信息查询
func (s *UserService) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	user, err := s.userRepo.GetUserWithAuthorities(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, model.ErrUserNotFound
	}
	return user, nil
}

// GetUserIDByUsername 根据用户名取用户ID
// 供处理器将令牌中的操作者身份换算为审计字段用的用户ID
func (s *UserService) GetUserIDByUsername(ctx context.Context, username string) (uint, error) {
	user, err := s.userRepo.GetUserByUsername(ctx, username)
	if err != nil {
		return 0, err
	}
	if user == nil {
		return 0, model.ErrUserNotFound
	}
	return user.ID, nil
}

// GetUserStats 获取用户统计信息
func (s *UserService) GetUserStats(ctx context.Context) (*model.UserStats, error) {
	return s.userRepo.GetUserStats(ctx)
}

// checkUserUnique 用户名/邮箱/手机号唯一性检查,单次组合查询完成
// excludeID 用于更新场景排除自身
func (s *UserService) checkUserUnique(ctx context.Context, username, email, phone string, excludeID uint) error {
	existing, err := s.userRepo.GetUserByUniqueKeys(ctx, username, email, phone, excludeID)
	if err != nil {
		return err
	}
	if existing != nil {
		return model.ErrUserAlreadyExists
	}
	return nil
}

// filterValidRoleIDs 过滤掉不存在的角色ID
func (s *UserService) filterValidRoleIDs(ctx context.Context, roleIDs []uint) ([]uint, error) {
	roles, err := s.roleRepo.GetRolesByIDs(ctx, roleIDs)
	if err != nil {
		return nil, err
	}
	validIDs := make([]uint, 0, len(roles))
	for _, role := range roles {
		validIDs = append(validIDs, role.ID)
	}
	return validIDs, nil
}
