/**
 * 模型:用户模型
 * @author: hxll
 * @date: 2025.11.18
 * @description: 用户数据模型，包含用户基本信息、状态管理和角色关联
 * @func: User / UserRole 结构体及相关方法
 */
package model

import (
	"time"

	"gorm.io/gorm"
)

// User 用户模型
type User struct {
	ID          uint           `json:"id" gorm:"primaryKey;autoIncrement"`                                            // 用户唯一标识ID，主键自增
	Username    string         `json:"username" gorm:"uniqueIndex;not null;size:50" validate:"required,min=3,max=50"` // 用户名，唯一索引，3-50字符
	Password    string         `json:"-" gorm:"not null;size:255"`                                                    // 密码摘要，argon2id编码，不在JSON中返回
	Email       string         `json:"email" gorm:"size:100"`                                                         // 邮箱地址
	Phone       string         `json:"phone" gorm:"size:20"`                                                          // 手机号码
	Nickname    string         `json:"nickname" gorm:"size:50"`                                                       // 用户昵称
	Avatar      string         `json:"avatar" gorm:"size:255"`                                                        // 用户头像URL
	Status      UserStatus     `json:"status" gorm:"comment:用户状态:0-禁用,1-启用"`                                          // 用户状态，业务层显式赋值
	LastLoginAt *time.Time     `json:"last_login_at" gorm:"comment:最后登录时间"`                                           // 最后登录时间，可为空
	LastLoginIP string         `json:"last_login_ip" gorm:"size:45;comment:最后登录IP"`                                   // 最后登录IP地址，支持IPv6
	CreatedAt   time.Time      `json:"created_at"`                                                                    // 创建时间，自动管理
	UpdatedAt   time.Time      `json:"updated_at"`                                                                    // 更新时间，自动管理
	CreatedBy   uint           `json:"created_by" gorm:"comment:创建人用户ID"`                                             // 创建人，由调用方显式传入
	UpdatedBy   uint           `json:"updated_by" gorm:"comment:更新人用户ID"`                                             // 更新人，由调用方显式传入
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`                                                                // 软删除标记，所有查询自动过滤

	// 关联关系
	Roles []*Role `json:"roles" gorm:"many2many:user_roles;"` // 用户角色，多对多关系
}

// UserStatus 用户状态枚举
type UserStatus int

const (
	UserStatusDisabled UserStatus = 0 // 禁用状态
	UserStatusEnabled  UserStatus = 1 // 启用状态
)

// UserRole 用户角色关联表
type UserRole struct {
	UserID    uint      `json:"user_id" gorm:"primaryKey"` // 用户ID，联合主键
	RoleID    uint      `json:"role_id" gorm:"primaryKey"` // 角色ID，联合主键
	CreatedAt time.Time `json:"created_at"`                // 关联创建时间
	CreatedBy uint      `json:"created_by"`                // 关联创建人
}

// TableName 指定用户表名
func (User) TableName() string {
	return "users"
}

// TableName 指定用户角色关联表名
func (UserRole) TableName() string {
	return "user_roles"
}

// IsActive 检查用户是否处于启用状态
func (u *User) IsActive() bool {
	return u.Status == UserStatusEnabled
}

// HasRole 检查用户是否拥有指定角色编码
func (u *User) HasRole(roleCode string) bool {
	for _, role := range u.Roles {
		if role.Code == roleCode {
			return true
		}
	}
	return false
}
