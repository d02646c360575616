package models

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorKind 错误分类，决定对外的状态码
type ErrorKind string

const (
	KindBadRequest  ErrorKind = "bad_request"
	KindDecode      ErrorKind = "decode_error"
	KindUpstream    ErrorKind = "upstream_error"
	KindInvalidData ErrorKind = "invalid_data"
	KindServer      ErrorKind = "server_error"
)

// AppError 应用错误类型
type AppError struct {
	Kind    ErrorKind `json:"kind"`
	Code    int       `json:"code"`
	Message string    `json:"message"`
	Err     error     `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.Err }

// NewAppError 创建新的应用错误
func NewAppError(kind ErrorKind, code int, message string, err error) *AppError {
	return &AppError{
		Kind:    kind,
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// NewBadRequestError 创建400错误
func NewBadRequestError(message string, err error) *AppError {
	return NewAppError(KindBadRequest, http.StatusBadRequest, message, err)
}

// NewDecodeError 图片引用无法解码，对外表现为404
func NewDecodeError(message string, err error) *AppError {
	return NewAppError(KindDecode, http.StatusNotFound, message, err)
}

// NewUpstreamError 第三方接口失败；状态码由调用方按失败类型决定（404 或 500）
func NewUpstreamError(code int, message string, err error) *AppError {
	return NewAppError(KindUpstream, code, message, err)
}

// NewInvalidDataError 上游有响应但缺少必需结构
func NewInvalidDataError(message string, err error) *AppError {
	return NewAppError(KindInvalidData, http.StatusNotFound, message, err)
}

// NewInternalError 创建500错误
func NewInternalError(message string, err error) *AppError {
	return NewAppError(KindServer, http.StatusInternalServerError, message, err)
}

// AsAppError 从错误链中提取 *AppError；不是则包装为500
func AsAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return NewInternalError("内部服务器错误", err)
}
