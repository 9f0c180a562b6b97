package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError 自定义应用错误
// 设计说明：
// 1. Code是业务错误码，每一类领域结果（校验失败、冲突、不存在……）对应一个固定的码
// 2. Message是返回给客户端的提示信息
// 3. Err是内部错误，仅记录到日志，不返回给客户端（防止泄露实现细节）
// 4. HTTP状态码由Code确定性映射（见HTTPStatus），路由层不做字符串匹配
type AppError struct {
	Code    int    `json:"code"`    // 业务错误码
	Message string `json:"message"` // 客户端可见的错误提示
	Err     error  `json:"-"`       // 内部错误（不序列化）
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%d] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%d] %s", e.Code, e.Message)
}

// Unwrap 支持errors.Is和errors.As
func (e *AppError) Unwrap() error {
	return e.Err
}

// New 创建新的AppError
func New(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap 包装系统错误（如存储错误、序列化错误）
// 用途：将底层错误转换为业务错误，隐藏实现细节
func Wrap(err error, message string) *AppError {
	return &AppError{
		Code:    ErrCodeStoreError,
		Message: message,
		Err:     err,
	}
}

// Wrapf 格式化包装错误
func Wrapf(err error, format string, args ...interface{}) *AppError {
	return &AppError{
		Code:    ErrCodeStoreError,
		Message: fmt.Sprintf(format, args...),
		Err:     err,
	}
}

// =========================================
// 错误码定义
// =========================================
// 规范：
// - 4xxxx: 客户端错误（参数错误、业务规则校验失败）
// - 5xxxx: 服务端错误（存储异常、序列化失败）
// 前三位与HTTP状态码对齐，便于排查

const (
	// 客户端错误
	ErrCodeInvalidRequest = 40000 // 请求格式错误（请求体无法解析、缺少搜索词）
	ErrCodeNotFound       = 40400 // 资源不存在
	ErrCodeConflict       = 40900 // 资源冲突（ISBN已存在）
	ErrCodeValidation     = 42200 // 实体校验失败

	// 服务端错误
	ErrCodeInternal   = 50000 // 内部错误
	ErrCodeStoreError = 50001 // 存储错误
)

// HTTPStatus 业务错误码到HTTP状态码的确定性映射
func (e *AppError) HTTPStatus() int {
	switch e.Code {
	case ErrCodeInvalidRequest:
		return http.StatusBadRequest
	case ErrCodeNotFound:
		return http.StatusNotFound
	case ErrCodeConflict:
		return http.StatusConflict
	case ErrCodeValidation:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// =========================================
// 预定义错误
// =========================================

var (
	ErrInternal       = New(ErrCodeInternal, "internal error")
	ErrInvalidRequest = New(ErrCodeInvalidRequest, "invalid request")
)

// =========================================
// 辅助函数
// =========================================

// IsAppError 判断是否为AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError 提取AppError（如果不是AppError则包装成Internal错误）
// 注意：未知错误的消息原样透出，作为响应中的message字段
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return &AppError{
		Code:    ErrCodeInternal,
		Message: err.Error(),
		Err:     err,
	}
}
