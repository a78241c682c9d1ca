/**
 * 认证服务层:密码服务
 * @author: hxll
 * @date: 2025.11.18
 * @description: 密码修改与管理员重置
 * @note: 令牌无状态,改密后已签发的令牌到期前依然可验,这是设计上的接受项
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

// PasswordService 密码服务
type PasswordService struct {
	userRepo        *mysql.UserRepository
	passwordManager *auth.PasswordManager
	authConfig      *config.AuthConfig
}

// NewPasswordService 创建密码服务实例
func NewPasswordService(userRepo *mysql.UserRepository, passwordManager *auth.PasswordManager, authConfig *config.AuthConfig) *PasswordService {
	return &PasswordService{
		userRepo:        userRepo,
		passwordManager: passwordManager,
		authConfig:      authConfig,
	}
}

// ChangePassword 用户修改自己的密码
// 需验证旧密码,新密码需两次输入一致并满足强度要求
func (s *PasswordService) ChangePassword(ctx context.Context, userID uint, req *model.ChangePasswordRequest, clientIP string) error {
	if req.NewPassword != req.ConfirmPassword {
		return model.ErrPasswordConfirmMismatch
	}
	if err := auth.ValidatePasswordStrength(req.NewPassword); err != nil {
		return err
	}

	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return model.ErrUserNotFound
	}

	valid, err := s.passwordManager.VerifyPassword(req.OldPassword, user.Password)
	if err != nil || !valid {
		logger.LogBusinessOperation("change_password", userID, user.Username, clientIP, "failed", "旧密码验证失败", map[string]interface{}{
			"timestamp": logger.NowFormatted(),
		})
		return model.ErrPasswordMismatch
	}

	hash, err := s.passwordManager.HashPassword(req.NewPassword)
	if err != nil {
		return err
	}
	if err := s.userRepo.UpdatePassword(ctx, userID, hash, userID); err != nil {
		logger.LogBusinessError(err, "change_password", userID, clientIP, map[string]interface{}{
			"timestamp": logger.NowFormatted(),
		})
		return err
	}

	logger.LogBusinessOperation("change_password", userID, user.Username, clientIP, "success", "密码修改成功", map[string]interface{}{
		"timestamp": logger.NowFormatted(),
	})
	return nil
}

// ResetPassword 管理员将指定用户密码重置为固定默认值
func (s *PasswordService) ResetPassword(ctx context.Context, targetUserID uint, operatorID uint, clientIP string) error {
	user, err := s.userRepo.GetUserByID(ctx, targetUserID)
	if err != nil {
		return err
	}
	if user == nil {
		return model.ErrUserNotFound
	}

	hash, err := s.passwordManager.HashPassword(s.authConfig.ResetPassword)
	if err != nil {
		return err
	}
	if err := s.userRepo.UpdatePassword(ctx, targetUserID, hash, operatorID); err != nil {
		logger.LogBusinessError(err, "reset_password", operatorID, clientIP, map[string]interface{}{
			"target_user_id": targetUserID,
			"timestamp":      logger.NowFormatted(),
		})
		return err
	}

	logger.LogBusinessOperation("reset_password", operatorID, "", clientIP, "success", "密码重置成功", map[string]interface{}{
		"target_user_id": targetUserID,
		"target_user":    user.Username,
		"timestamp":      logger.NowFormatted(),
	})
	return nil
}
