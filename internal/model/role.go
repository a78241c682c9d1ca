/**
 * 模型:角色模型
 * @author: hxll
 * @date: 2025.11.18
 * @description: 角色数据模型，包含角色基本信息、状态管理和权限关联
 * @func: Role / RolePermission 结构体及相关方法
 */
package model

import (
	"time"

	"gorm.io/gorm"
)

// Role 角色模型
// Code 是角色的业务主键，创建后不允许修改
type Role struct {
	ID          uint           `json:"id" gorm:"primaryKey;autoIncrement"`                           // 角色唯一标识ID，主键自增
	Code        string         `json:"code" gorm:"uniqueIndex;not null;size:50" validate:"required"` // 角色编码，唯一索引，业务主键
	Name        string         `json:"name" gorm:"not null;size:100" validate:"required"`            // 角色名称
	Description string         `json:"description" gorm:"size:255"`                                  // 角色描述信息
	Status      RoleStatus     `json:"status" gorm:"comment:角色状态:0-禁用,1-启用"`                         // 角色状态，业务层显式赋值
	SortOrder   int            `json:"sort_order" gorm:"default:0;comment:排序值,升序"`                   // 排序值
	CreatedAt   time.Time      `json:"created_at"`                                                   // 创建时间，自动管理
	UpdatedAt   time.Time      `json:"updated_at"`                                                   // 更新时间，自动管理
	CreatedBy   uint           `json:"created_by"`                                                   // 创建人用户ID
	UpdatedBy   uint           `json:"updated_by"`                                                   // 更新人用户ID
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`                                               // 软删除标记

	// 关联关系
	Users       []User        `json:"-" gorm:"many2many:user_roles;"`                 // 拥有此角色的用户，多对多关系
	Permissions []*Permission `json:"permissions" gorm:"many2many:role_permissions;"` // 角色拥有的权限，多对多关系
}

// RoleStatus 角色状态枚举
type RoleStatus int

const (
	RoleStatusDisabled RoleStatus = 0 // 禁用状态
	RoleStatusEnabled  RoleStatus = 1 // 启用状态
)

// RolePermission 角色权限关联表
type RolePermission struct {
	RoleID       uint      `json:"role_id" gorm:"primaryKey"`       // 角色ID，联合主键
	PermissionID uint      `json:"permission_id" gorm:"primaryKey"` // 权限ID，联合主键
	CreatedAt    time.Time `json:"created_at"`                      // 关联创建时间
	CreatedBy    uint      `json:"created_by"`                      // 关联创建人
}

// TableName 指定角色表名
func (Role) TableName() string {
	return "roles"
}

// TableName 指定角色权限关联表名
func (RolePermission) TableName() string {
	return "role_permissions"
}

// IsActive 检查角色是否处于启用状态
func (r *Role) IsActive() bool {
	return r.Status == RoleStatusEnabled
}
