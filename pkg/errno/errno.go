package errno

import (
	"context"
	"net/http"

	"github.com/pkg/errors"
)

// Kind 错误种类，决定返回给调用方的状态码和 errorKind 字段
type Kind string

const (
	InvalidArgument   Kind = "InvalidArgument"
	Unauthorized      Kind = "Unauthorized"
	Forbidden         Kind = "Forbidden"
	NotFound          Kind = "NotFound"
	DependencyFailure Kind = "DependencyFailure"
	Internal          Kind = "Internal"
	TooManyRequests   Kind = "TooManyRequests"
)

// StatusCode 错误种类对应的HTTP状态码
func (k Kind) StatusCode() int {
	switch k {
	case InvalidArgument:
		return http.StatusBadRequest
	case Unauthorized:
		return http.StatusUnauthorized
	case Forbidden:
		return http.StatusForbidden
	case NotFound:
		return http.StatusNotFound
	case DependencyFailure:
		return http.StatusBadGateway
	case TooManyRequests:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// Error 业务错误：Message 可以安全地展示给用户，Err 保留底层原因只用于日志
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Wrap(kind Kind, err error, message string) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

func NewInvalidArgument(message string) *Error { return New(InvalidArgument, message) }
func NewUnauthorized(message string) *Error    { return New(Unauthorized, message) }
func NewForbidden(message string) *Error       { return New(Forbidden, message) }
func NewNotFound(message string) *Error        { return New(NotFound, message) }

func NewDependency(err error, message string) *Error { return Wrap(DependencyFailure, err, message) }
func NewInternal(err error, message string) *Error   { return Wrap(Internal, err, message) }

// KindOf 取出错误链上的种类；调用方的取消/超时按依赖失败处理，其余未知错误一律视为内部错误
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return DependencyFailure
	}
	return Internal
}

// MessageOf 取出可展示的错误信息，未知错误不向外暴露细节
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return "请求已取消或超时"
	}
	return "服务器内部错误"
}

func Is(err error, kind Kind) bool {
	return KindOf(err) == kind
}
