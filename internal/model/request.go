/**
 * 模型:请求模型
 * @author: hxll
 * @date: 2025.11.18
 * @description: API请求数据模型，包含认证和系统管理操作的请求结构体
 * @func: 各种Request结构体定义
 */
package model

// LoginRequest 登录请求结构
type LoginRequest struct {
	Username string `json:"username" binding:"required"` // 用户名，必填
	Password string `json:"password" binding:"required"` // 密码，必填
}

// RefreshTokenRequest 刷新令牌请求结构
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"` // 刷新令牌，必填
}

// RegisterRequest 用户注册请求结构
type RegisterRequest struct {
	Username        string `json:"username" binding:"required,min=3,max=50"` // 用户名，必填，3-50字符
	Password        string `json:"password" binding:"required,min=6"`        // 密码，必填，最少6字符
	ConfirmPassword string `json:"confirm_password" binding:"required"`      // 确认密码，必填，需与密码一致
	Email           string `json:"email" binding:"omitempty,email"`          // 邮箱地址，可选
	Phone           string `json:"phone"`                                    // 手机号码，可选
	Nickname        string `json:"nickname"`                                 // 用户昵称，可选
	RoleCode        string `json:"role_code"`                                // 注册角色编码，可选，缺省使用配置的默认角色
}

// ChangePasswordRequest 修改密码请求结构
type ChangePasswordRequest struct {
	OldPassword     string `json:"old_password" binding:"required"`        // 旧密码，必填
	NewPassword     string `json:"new_password" binding:"required,min=6"`  // 新密码，必填，最少6字符
	ConfirmPassword string `json:"confirm_password" binding:"required"`    // 确认新密码，必填
}

// CreateUserRequest 创建用户请求结构
type CreateUserRequest struct {
	Username string `json:"username" binding:"required,min=3,max=50"` // 用户名，必填
	Password string `json:"password" binding:"required,min=6"`        // 密码，必填
	Email    string `json:"email" binding:"omitempty,email"`          // 邮箱地址，可选
	Phone    string `json:"phone"`                                    // 手机号码，可选
	Nickname string `json:"nickname"`                                 // 用户昵称，可选
	Avatar   string `json:"avatar"`                                   // 头像，可选
	RoleIDs  []uint `json:"role_ids"`                                 // 角色ID列表，可选
}

// UpdateUserRequest 更新用户请求结构 [用户名不允许修改，其他字段可选]
type UpdateUserRequest struct {
	Email    string      `json:"email" binding:"omitempty,email"` // 邮箱地址，可选
	Phone    string      `json:"phone"`                           // 手机号码，可选
	Nickname string      `json:"nickname"`                        // 用户昵称，可选
	Avatar   string      `json:"avatar"`                          // 头像，可选
	Status   *UserStatus `json:"status"`                          // 用户状态，可选，指针区分零值和未设置
}

// ReplaceUserRolesRequest 重置用户角色请求结构
type ReplaceUserRolesRequest struct {
	RoleIDs []uint `json:"role_ids"` // 角色ID列表，整体替换，空列表清空用户角色
}

// CreateRoleRequest 创建角色请求结构
type CreateRoleRequest struct {
	Code          string `json:"code" binding:"required,max=50"`  // 角色编码，必填，创建后不可修改
	Name          string `json:"name" binding:"required,max=100"` // 角色名称，必填
	Description   string `json:"description"`                     // 角色描述，可选
	SortOrder     int    `json:"sort_order"`                      // 排序值，可选
	PermissionIDs []uint `json:"permission_ids"`                  // 权限ID列表，可选
}

// UpdateRoleRequest 更新角色请求结构 [角色编码不允许修改]
type UpdateRoleRequest struct {
	Name        string      `json:"name"`        // 角色名称，可选
	Description string      `json:"description"` // 角色描述，可选
	Status      *RoleStatus `json:"status"`      // 角色状态，可选，指针区分零值和未设置
	SortOrder   *int        `json:"sort_order"`  // 排序值，可选
}

// ReplaceRolePermissionsRequest 重置角色权限请求结构
type ReplaceRolePermissionsRequest struct {
	PermissionIDs []uint `json:"permission_ids"` // 权限ID列表，整体替换，空列表清空角色权限
}

// CreatePermissionRequest 创建权限请求结构
type CreatePermissionRequest struct {
	Code      string         `json:"code" binding:"required,max=100"` // 权限编码，必填
	Name      string         `json:"name" binding:"required,max=100"` // 权限名称，必填
	Type      PermissionType `json:"type" binding:"required"`         // 权限类型:1-菜单,2-按钮,3-接口
	ParentID  uint           `json:"parent_id"`                       // 父权限ID，0为根
	Path      string         `json:"path"`                            // 路径，可选
	Method    string         `json:"method"`                          // HTTP方法，可选
	Icon      string         `json:"icon"`                            // 图标，可选
	SortOrder int            `json:"sort_order"`                      // 排序值，可选
}

// UpdatePermissionRequest 更新权限请求结构
type UpdatePermissionRequest struct {
	Code      *string           `json:"code"`       // 权限编码，可选
	Name      string            `json:"name"`       // 权限名称，可选
	Type      *PermissionType   `json:"type"`       // 权限类型，可选
	ParentID  *uint             `json:"parent_id"`  // 父权限ID，可选，更新时做环路校验
	Path      *string           `json:"path"`       // 路径，可选
	Method    *string           `json:"method"`     // HTTP方法，可选
	Icon      *string           `json:"icon"`       // 图标，可选
	SortOrder *int              `json:"sort_order"` // 排序值，可选
	Status    *PermissionStatus `json:"status"`     // 状态，可选
}

// PageRequest 分页请求结构
type PageRequest struct {
	Page     int    `form:"page,default=1"`       // 页码，从1开始
	PageSize int    `form:"page_size,default=20"` // 每页数量，默认20，最大100
	Keyword  string `form:"keyword"`              // 关键字，可选
}

// Normalize 修正分页参数到合理范围
func (r *PageRequest) Normalize() {
	if r.Page < 1 {
		r.Page = 1
	}
	if r.PageSize <= 0 {
		r.PageSize = 20
	} else if r.PageSize > 100 {
		r.PageSize = 100
	}
}

// Offset 计算分页偏移量
func (r *PageRequest) Offset() int {
	return (r.Page - 1) * r.PageSize
}
