/**
 * 模型:响应模型
 * @author: hxll
 * @date: 2025.11.18
 * @description: API响应数据模型，包含认证和系统管理操作的响应结构体
 * @func: 各种Response结构体定义
 */
package model

import (
	"time"
)

// LoginResponse 登录响应结构
type LoginResponse struct {
	AccessToken      string     `json:"access_token"`       // 访问令牌
	RefreshToken     string     `json:"refresh_token"`      // 刷新令牌
	TokenType        string     `json:"token_type"`         // 令牌类型，固定为"Bearer"
	ExpiresIn        int64      `json:"expires_in"`         // 访问令牌过期时间（秒）
	RefreshExpiresIn int64      `json:"refresh_expires_in"` // 刷新令牌过期时间（秒）
	User             *UserInfo  `json:"user"`               // 用户信息摘要
	Principal        *Principal `json:"principal"`          // 认证主体，含扁平权限集合
}

// RefreshTokenResponse 刷新令牌响应结构
// 刷新令牌不轮换，原样返回
type RefreshTokenResponse struct {
	AccessToken      string `json:"access_token"`       // 新的访问令牌
	RefreshToken     string `json:"refresh_token"`      // 原刷新令牌，保持不变
	TokenType        string `json:"token_type"`         // 令牌类型，固定为"Bearer"
	ExpiresIn        int64  `json:"expires_in"`         // 访问令牌过期时间（秒）
	RefreshExpiresIn int64  `json:"refresh_expires_in"` // 刷新令牌过期时间（秒）
}

// RegisterResponse 用户注册响应结构
type RegisterResponse struct {
	User    *UserInfo `json:"user"`    // 用户信息
	Message string    `json:"message"` // 注册成功消息
}

// UserInfo 用户信息响应结构
type UserInfo struct {
	ID          uint       `json:"id"`            // 用户ID
	Username    string     `json:"username"`      // 用户名
	Email       string     `json:"email"`         // 邮箱地址
	Phone       string     `json:"phone"`         // 手机号码
	Nickname    string     `json:"nickname"`      // 用户昵称
	Avatar      string     `json:"avatar"`        // 用户头像URL
	Status      UserStatus `json:"status"`        // 用户状态
	LastLoginAt *time.Time `json:"last_login_at"` // 最后登录时间
	CreatedAt   time.Time  `json:"created_at"`    // 创建时间
	Roles       []string   `json:"roles"`         // 角色编码列表
}

// NewUserInfo 从用户模型构建用户信息摘要
func NewUserInfo(user *User) *UserInfo {
	info := &UserInfo{
		ID:          user.ID,
		Username:    user.Username,
		Email:       user.Email,
		Phone:       user.Phone,
		Nickname:    user.Nickname,
		Avatar:      user.Avatar,
		Status:      user.Status,
		LastLoginAt: user.LastLoginAt,
		CreatedAt:   user.CreatedAt,
		Roles:       make([]string, 0, len(user.Roles)),
	}
	for _, role := range user.Roles {
		info.Roles = append(info.Roles, role.Code)
	}
	return info
}

// APIResponse 通用API响应结构
type APIResponse struct {
	Code    int               `json:"code,omitempty"`   // 响应状态码，可选
	Status  string            `json:"status"`           // 响应状态："success" 或 "error"
	Message string            `json:"message"`          // 响应消息
	Data    interface{}       `json:"data,omitempty"`   // 响应数据，可选
	Error   string            `json:"error,omitempty"`  // 错误信息，可选
	Errors  []ValidationError `json:"errors,omitempty"` // 验证错误列表，可选
}

// PaginationResponse 分页响应结构
type PaginationResponse struct {
	Total      int64       `json:"total"`       // 总记录数
	Page       int         `json:"page"`        // 当前页码
	PageSize   int         `json:"page_size"`   // 每页大小
	TotalPages int         `json:"total_pages"` // 总页数
	Data       interface{} `json:"data"`        // 分页数据
}

// NewPaginationResponse 构建分页响应
func NewPaginationResponse(total int64, page, pageSize int, data interface{}) *PaginationResponse {
	totalPages := int(total) / pageSize
	if int(total)%pageSize > 0 {
		totalPages++
	}
	return &PaginationResponse{
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
		Data:       data,
	}
}

// RoleStats 角色统计结构
type RoleStats struct {
	Total    int64 `json:"total"`    // 角色总数
	Enabled  int64 `json:"enabled"`  // 启用角色数
	Disabled int64 `json:"disabled"` // 禁用角色数
}

// UserStats 用户统计结构
type UserStats struct {
	Total    int64 `json:"total"`    // 用户总数
	Enabled  int64 `json:"enabled"`  // 启用用户数
	Disabled int64 `json:"disabled"` // 禁用用户数
}

// PermissionStats 权限统计结构
type PermissionStats struct {
	Total  int64 `json:"total"`  // 权限总数
	Menu   int64 `json:"menu"`   // 菜单类型数量
	Button int64 `json:"button"` // 按钮类型数量
	API    int64 `json:"api"`    // 接口类型数量
}

// SessionData 在线会话信息
// 仅为管理端展示用途的信息缓存，不承载令牌有效性状态
type SessionData struct {
	UserID    uint      `json:"user_id"`    // 用户ID
	Username  string    `json:"username"`   // 用户名
	Roles     []string  `json:"roles"`      // 角色编码列表
	LoginTime time.Time `json:"login_time"` // 登录时间
	ClientIP  string    `json:"client_ip"`  // 客户端IP
	UserAgent string    `json:"user_agent"` // 用户代理
}
