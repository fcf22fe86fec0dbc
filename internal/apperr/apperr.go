// Package apperr 定义携带 HTTP 状态码的业务错误。
//
// Service 层返回 *Error，ErrorHandler 中间件统一序列化为响应信封；
// 其他任何错误都按 500 处理，并只向客户端暴露通用信息。
package apperr

import (
	"errors"
	"net/http"
)

// FieldError 字段级校验错误
type FieldError struct {
	Field string `json:"field"`
	Error string `json:"error"`
}

// Error 带状态码的业务错误
type Error struct {
	Status  int
	Message string
	Errors  []FieldError
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return e.Message + ": " + e.cause.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.cause
}

// Wrap 返回附带底层原因的副本（原因只用于日志，不会返回给客户端）
func (e *Error) Wrap(cause error) *Error {
	return &Error{Status: e.Status, Message: e.Message, Errors: e.Errors, cause: cause}
}

// New 创建指定状态码的错误
func New(status int, message string) *Error {
	return &Error{Status: status, Message: message}
}

func BadRequest(message string) *Error {
	return New(http.StatusBadRequest, message)
}

// Validation 400，附带字段错误列表
func Validation(message string, fields []FieldError) *Error {
	return &Error{Status: http.StatusBadRequest, Message: message, Errors: fields}
}

func Unauthorized(message string) *Error {
	return New(http.StatusUnauthorized, message)
}

func NotFound(message string) *Error {
	return New(http.StatusNotFound, message)
}

func Conflict(message string) *Error {
	return New(http.StatusConflict, message)
}

func Internal(message string) *Error {
	return New(http.StatusInternalServerError, message)
}

// From 将任意错误转换为 *Error，未知错误视为 500
func From(err error) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return Internal(http.StatusText(http.StatusInternalServerError)).Wrap(err)
}
