/**
 * 模型:认证主体
 * @author: hxll
 * @date: 2025.11.18
 * @description: 请求级的认证主体，携带扁平化的权限字符串集合
 * @func: Principal 结构体及权限判定方法
 */
package model

import "strings"

// RolePrefix 角色权限字符串前缀
// 以该前缀开头的权限串表示角色授权，其余为权限编码授权
// 该约定是单一扁平集合同时支撑角色判定和权限判定的关键
const RolePrefix = "ROLE_"

// Principal 认证主体
// 由用户及其角色、权限扁平化而来，仅在一次请求的生命周期内有效
type Principal struct {
	UserID      uint     `json:"user_id"`     // 用户ID
	Username    string   `json:"username"`    // 用户名
	Nickname    string   `json:"nickname"`    // 昵称
	Avatar      string   `json:"avatar"`      // 头像
	Enabled     bool     `json:"enabled"`     // 是否启用，status==enabled
	Locked      bool     `json:"locked"`      // 是否锁定，status==disabled
	Authorities []string `json:"authorities"` // "ROLE_"+角色编码 与 权限编码 的并集
}

// HasAuthority 检查主体是否拥有指定权限串（角色串或权限编码均可）
func (p *Principal) HasAuthority(authority string) bool {
	for _, a := range p.Authorities {
		if a == authority {
			return true
		}
	}
	return false
}

// HasRole 检查主体是否拥有指定角色编码（不带ROLE_前缀）
func (p *Principal) HasRole(roleCode string) bool {
	return p.HasAuthority(RolePrefix + roleCode)
}

// Roles 返回主体的角色编码列表（剥离ROLE_前缀）
func (p *Principal) Roles() []string {
	roles := make([]string, 0)
	for _, a := range p.Authorities {
		if strings.HasPrefix(a, RolePrefix) {
			roles = append(roles, strings.TrimPrefix(a, RolePrefix))
		}
	}
	return roles
}

// Permissions 返回主体的权限编码列表（不含角色串）
func (p *Principal) Permissions() []string {
	perms := make([]string, 0)
	for _, a := range p.Authorities {
		if !strings.HasPrefix(a, RolePrefix) {
			perms = append(perms, a)
		}
	}
	return perms
}
