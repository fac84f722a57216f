package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError 自定义应用错误
// 设计说明：
// 1. Code是业务错误码，HTTP状态码由HTTPStatus(Code)推导
// 2. Message是面向调用方的提示信息
// 3. Err是底层错误，5xxxx类错误会把它拼进问题详情（便于前端排查）
// 4. Fields是附加字段，会作为problem响应的扩展成员输出（如bookId）
type AppError struct {
	Code    int                    `json:"code"`
	Message string                 `json:"message"`
	Err     error                  `json:"-"`
	Fields  map[string]interface{} `json:"-"`

	base *AppError // With/Withf派生副本指向的原始错误
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

// Is 使With()/Withf()派生出的副本仍能匹配预定义错误
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.origin() == t.origin()
}

func (e *AppError) origin() *AppError {
	if e.base != nil {
		return e.base
	}
	return e
}

// Detail 返回问题详情文本
// 带底层错误时格式为 "Message: err"
func (e *AppError) Detail() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// With 返回附加了扩展字段的副本（预定义错误是共享变量，不能原地修改）
func (e *AppError) With(key string, value interface{}) *AppError {
	fields := make(map[string]interface{}, len(e.Fields)+1)
	for k, v := range e.Fields {
		fields[k] = v
	}
	fields[key] = value

	return &AppError{
		Code:    e.Code,
		Message: e.Message,
		Err:     e.Err,
		Fields:  fields,
		base:    e.origin(),
	}
}

// Withf 返回替换了Message的副本
func (e *AppError) Withf(format string, args ...interface{}) *AppError {
	cp := *e
	cp.Message = fmt.Sprintf(format, args...)
	cp.base = e.origin()
	return &cp
}

// WithErr 返回附加了底层错误的副本,errors.Is仍能匹配原预定义错误
func (e *AppError) WithErr(err error) *AppError {
	cp := *e
	cp.Err = err
	cp.base = e.origin()
	return &cp
}

// New 创建新的AppError
func New(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap 包装系统错误（如数据库错误、网络错误）
func Wrap(err error, message string) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: message,
		Err:     err,
	}
}

// Wrapf 格式化包装错误
func Wrapf(err error, format string, args ...interface{}) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: fmt.Sprintf(format, args...),
		Err:     err,
	}
}

// =========================================
// 错误码定义
// =========================================
// 规范：
// - 4xxxx: 客户端错误（参数错误、业务规则校验失败）
// - 5xxxx: 服务端错误（数据库异常、外部服务调用失败）

const (
	// 系统级错误码（50000-50099）
	ErrCodeInternal      = 50000 // 内部错误
	ErrCodeDatabaseError = 50001 // 数据库错误
	ErrCodeRedisError    = 50002 // Redis错误
	ErrCodeUnavailable   = 50300 // 依赖服务不可用

	// 资源错误（40400-40499）
	ErrCodeNotFound      = 40400 // 资源不存在(通用)
	ErrCodeBookNotFound  = 40402 // 图书不存在
	ErrCodeRouteNotFound = 40404 // 路由不存在

	// 业务规则错误（40000-40099）
	ErrCodeBusinessError = 40000 // 业务错误(通用)
	ErrCodeISBNDuplicate = 40004 // ISBN已存在

	// 限流（42900-42999）
	ErrCodeTooManyRequests = 42900

	// 参数错误（40900-40999）
	ErrCodeInvalidParams = 40900 // 参数错误
	ErrCodeBindError     = 40901 // 参数绑定失败
)

// =========================================
// 预定义错误（避免每次都New）
// =========================================

var (
	ErrInternal        = New(ErrCodeInternal, "Internal server error")
	ErrDatabaseError   = New(ErrCodeDatabaseError, "Database error")
	ErrRedisError      = New(ErrCodeRedisError, "Cache service error")
	ErrUnavailable     = New(ErrCodeUnavailable, "Service unavailable")
	ErrNotFound        = New(ErrCodeNotFound, "Resource not found")
	ErrRouteNotFound   = New(ErrCodeRouteNotFound, "Route not found")
	ErrTooManyRequests = New(ErrCodeTooManyRequests, "Too many requests")
	ErrInvalidParams   = New(ErrCodeInvalidParams, "Invalid parameters")
	ErrBindError       = New(ErrCodeBindError, "Malformed request")
)

// HTTPStatus 业务错误码 → HTTP状态码
func HTTPStatus(code int) int {
	switch {
	case code == ErrCodeUnavailable:
		return http.StatusServiceUnavailable
	case code >= 50000:
		return http.StatusInternalServerError
	case code >= 42900 && code < 43000:
		return http.StatusTooManyRequests
	case code >= 40900 && code < 41000:
		return http.StatusBadRequest
	case code >= 40400 && code < 40500:
		return http.StatusNotFound
	case code == ErrCodeISBNDuplicate:
		return http.StatusConflict
	case code >= 40000 && code < 40100:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// =========================================
// 辅助函数
// =========================================

// IsAppError 判断是否为AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError 提取AppError（如果不是AppError则包装成Internal错误）
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return ErrInternal.WithErr(err)
}

// HasCode 判断错误链中是否有指定错误码
func HasCode(err error, code int) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}
