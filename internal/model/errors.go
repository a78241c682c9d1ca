/**
 * 模型:错误定义
 * @author: hxll
 * @date: 2025.11.18
 * @description: 业务错误常量和验证错误类型定义，处理器根据 errors.Is 映射HTTP状态码
 * @func: 各种错误常量和 ValidationError 结构体
 */
package model

import "errors"

// 认证相关错误
var (
	// ErrInvalidCredentials 用户名不存在和密码错误统一返回该错误，不暴露具体原因
	ErrInvalidCredentials = errors.New("用户名或密码错误")
	ErrAccountDisabled    = errors.New("账号已被禁用")
	ErrAccountLocked      = errors.New("账号已被锁定")
	// ErrTokenInvalid 签名错误、格式错误、算法不支持、已过期统一收敛为该错误，具体原因只记录日志
	ErrTokenInvalid = errors.New("令牌无效或已过期")

	ErrPasswordMismatch        = errors.New("原密码错误")
	ErrPasswordConfirmMismatch = errors.New("两次输入的密码不一致")
)

// 资源不存在错误
var (
	ErrUserNotFound       = errors.New("用户不存在")
	ErrRoleNotFound       = errors.New("角色不存在")
	ErrPermissionNotFound = errors.New("权限不存在")
)

// 业务规则冲突错误，全部在写入前显式校验，不依赖存储层约束报错
var (
	ErrUserAlreadyExists        = errors.New("用户名、邮箱或手机号已存在")
	ErrRoleCodeExists           = errors.New("角色编码已存在")
	ErrPermissionCodeExists     = errors.New("权限编码已存在")
	ErrRoleInUse                = errors.New("角色已分配给用户，无法删除")
	ErrPermissionHasChildren    = errors.New("权限存在子权限，无法删除")
	ErrPermissionInUse          = errors.New("权限已分配给角色，无法删除")
	ErrPermissionParentCycle    = errors.New("父权限不能是自身或自身的下级权限")
	ErrPermissionParentNotFound = errors.New("父权限不存在")
)

// 鉴权错误
var (
	ErrUnauthorized     = errors.New("未授权访问")
	ErrPermissionDenied = errors.New("权限不足")
)

// ValidationError 验证错误结构体
type ValidationError struct {
	Field   string `json:"field"`   // 字段名
	Message string `json:"message"` // 错误消息
}

// Error 实现error接口
func (e *ValidationError) Error() string {
	return e.Message
}

// IsValidationError 检查是否为验证错误
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsConflict 检查是否为业务规则冲突错误
func IsConflict(err error) bool {
	for _, target := range []error{
		ErrUserAlreadyExists, ErrRoleCodeExists, ErrPermissionCodeExists,
		ErrRoleInUse, ErrPermissionHasChildren, ErrPermissionInUse,
		ErrPermissionParentCycle,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// IsNotFound 检查是否为资源不存在错误
func IsNotFound(err error) bool {
	return errors.Is(err, ErrUserNotFound) ||
		errors.Is(err, ErrRoleNotFound) ||
		errors.Is(err, ErrPermissionNotFound)
}
