/**
 * 认证服务层:主体解析服务
 * @author: hxll
 * @date: 2025.11.18
 * @description: 将数据库中的用户及其角色权限解析为认证主体(Principal)
 * @func: 权限字符串集合 = ROLE_前缀角色编码 + 权限编码,仅取启用状态的角色和权限
 */
package auth

import (
	"context"

	"kimi/internal/model"
	"kimi/internal/repository/mysql"
)

// PrincipalService 主体解析服务
// 登录和令牌刷新都通过这里从数据库取最新的权限快照
type PrincipalService struct {
	userRepo *mysql.UserRepository
}

// NewPrincipalService 创建主体解析服务实例
func NewPrincipalService(userRepo *mysql.UserRepository) *PrincipalService {
	return &PrincipalService{
		userRepo: userRepo,
	}
}

// ResolveByUsername 根据用户名解析认证主体
// 用户不存在时返回 model.ErrUserNotFound
func (s *PrincipalService) ResolveByUsername(ctx context.Context, username string) (*model.Principal, error) {
	user, err := s.userRepo.GetUserWithAuthorities(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, model.ErrUserNotFound
	}
	return s.Resolve(user), nil
}

// Resolve 将已加载角色权限的用户转换为认证主体
// 禁用角色整体跳过(其下权限一并失效)，启用角色下的禁用权限单独跳过
func (s *PrincipalService) Resolve(user *model.User) *model.Principal {
	principal := &model.Principal{
		UserID:      user.ID,
		Username:    user.Username,
		Nickname:    user.Nickname,
		Avatar:      user.Avatar,
		Enabled:     user.IsActive(),
		Locked:      !user.IsActive(),
		Authorities: []string{},
	}

	seen := make(map[string]struct{})
	appendAuthority := func(authority string) {
		if authority == "" {
			return
		}
		if _, ok := seen[authority]; ok {
			return
		}
		seen[authority] = struct{}{}
		principal.Authorities = append(principal.Authorities, authority)
	}

	for _, role := range user.Roles {
		if role == nil || !role.IsActive() {
			continue
		}
		appendAuthority(model.RolePrefix + role.Code)
		for _, permission := range role.Permissions {
			if permission == nil || !permission.IsActive() {
				continue
			}
			appendAuthority(permission.Code)
		}
	}

	return principal
}
