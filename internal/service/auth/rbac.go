/**
 * 认证服务层:RBAC鉴权服务
 * @author: hxll
 * @date: 2025.11.18
 * @description: 基于扁平权限集合的访问控制判定
 * @note: 在线请求基于令牌内的权限快照判定,不回源数据库;回源判定仅供需要实时权限的场景
 */
package auth

import (
	"context"

	"kimi/internal/config"
	"kimi/internal/model"
)

// RBACService RBAC鉴权服务
type RBACService struct {
	principalService *PrincipalService
	authConfig       *config.AuthConfig
}

// NewRBACService 创建RBAC鉴权服务实例
func NewRBACService(principalService *PrincipalService, authConfig *config.AuthConfig) *RBACService {
	return &RBACService{
		principalService: principalService,
		authConfig:       authConfig,
	}
}

// HasAuthority 判定主体是否持有指定权限字符串
// ROLE_前缀代表角色,其余为权限编码
func (s *RBACService) HasAuthority(principal *model.Principal, authority string) bool {
	if principal == nil {
		return false
	}
	return principal.HasAuthority(authority)
}

// HasAnyAuthority 判定主体是否持有任意一个指定权限字符串
func (s *RBACService) HasAnyAuthority(principal *model.Principal, authorities ...string) bool {
	if principal == nil {
		return false
	}
	for _, authority := range authorities {
		if principal.HasAuthority(authority) {
			return true
		}
	}
	return false
}

// HasRole 判定主体是否持有指定角色编码(不带ROLE_前缀)
func (s *RBACService) HasRole(principal *model.Principal, roleCode string) bool {
	if principal == nil {
		return false
	}
	return principal.HasRole(roleCode)
}

// IsAdmin 判定主体是否为管理员
func (s *RBACService) IsAdmin(principal *model.Principal) bool {
	return s.HasRole(principal, s.authConfig.AdminRoleCode)
}

// CheckUserAuthority 回源数据库判定用户当前是否持有指定权限
// 绕过令牌快照,反映数据库中的实时授权状态
func (s *RBACService) CheckUserAuthority(ctx context.Context, username, authority string) (bool, error) {
	principal, err := s.principalService.ResolveByUsername(ctx, username)
	if err != nil {
		return false, err
	}
	if !principal.Enabled {
		return false, nil
	}
	return principal.HasAuthority(authority), nil
}
