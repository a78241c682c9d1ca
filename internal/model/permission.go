/**
 * 模型:权限模型
 * @author: hxll
 * @date: 2025.11.18
 * @description: 权限数据模型，按 parent_id 组成权限森林，支持菜单/按钮/接口三种类型
 * @func: Permission / PermissionNode 结构体及相关方法
 */
package model

import (
	"time"

	"gorm.io/gorm"
)

// Permission 权限模型
// ParentID 为 0 表示根节点；父子关系只用于权限树展示，鉴权使用扁平的权限编码集合
type Permission struct {
	ID        uint             `json:"id" gorm:"primaryKey;autoIncrement"`                            // 权限唯一标识ID，主键自增
	Code      string           `json:"code" gorm:"uniqueIndex;not null;size:100" validate:"required"` // 权限编码，唯一索引，如 system:user:create
	Name      string           `json:"name" gorm:"not null;size:100" validate:"required"`             // 权限名称
	Type      PermissionType   `json:"type" gorm:"default:1;comment:权限类型:1-菜单,2-按钮,3-接口"`             // 权限类型
	ParentID  uint             `json:"parent_id" gorm:"default:0;index;comment:父权限ID,0为根"`            // 父权限ID
	Path      string           `json:"path" gorm:"size:255;comment:路由或接口路径"`                          // 路径
	Method    string           `json:"method" gorm:"size:10;comment:HTTP方法"`                          // HTTP方法，接口类型权限使用
	Icon      string           `json:"icon" gorm:"size:100"`                                          // 图标，菜单类型权限使用
	SortOrder int              `json:"sort_order" gorm:"default:0;comment:排序值,升序"`                    // 排序值
	Status    PermissionStatus `json:"status" gorm:"comment:状态:0-禁用,1-启用"`                            // 状态，业务层显式赋值
	CreatedAt time.Time        `json:"created_at"`                                                    // 创建时间，自动管理
	UpdatedAt time.Time        `json:"updated_at"`                                                    // 更新时间，自动管理
	CreatedBy uint             `json:"created_by"`                                                    // 创建人用户ID
	UpdatedBy uint             `json:"updated_by"`                                                    // 更新人用户ID
	DeletedAt gorm.DeletedAt   `json:"-" gorm:"index"`                                                // 软删除标记

	// 关联关系
	Roles []Role `json:"-" gorm:"many2many:role_permissions;"` // 拥有此权限的角色，多对多关系
}

// PermissionType 权限类型枚举
type PermissionType int

const (
	PermissionTypeMenu   PermissionType = 1 // 菜单
	PermissionTypeButton PermissionType = 2 // 按钮
	PermissionTypeAPI    PermissionType = 3 // 接口
)

// PermissionStatus 权限状态枚举
type PermissionStatus int

const (
	PermissionStatusDisabled PermissionStatus = 0 // 禁用状态
	PermissionStatusEnabled  PermissionStatus = 1 // 启用状态
)

// PermissionNode 权限树节点
// Children 始终初始化为空切片，保证JSON输出为 [] 而不是 null
type PermissionNode struct {
	Permission
	Children []*PermissionNode `json:"children"`
}

// TableName 指定权限表名
func (Permission) TableName() string {
	return "permissions"
}

// IsRoot 检查是否为根权限
func (p *Permission) IsRoot() bool {
	return p.ParentID == 0
}

// IsActive 检查权限是否处于启用状态
func (p *Permission) IsActive() bool {
	return p.Status == PermissionStatusEnabled
}
