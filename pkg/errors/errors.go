package errors

import (
	"errors"
	"fmt"

	"tradegate/pkg/errors/ecode"
)

// 带错误码的error，响应层通过DecodeErr取出码和提示
type CodedError struct {
	Code    int
	Message string
	cause   error
}

func (e *CodedError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

func (e *CodedError) Unwrap() error {
	return e.cause
}

// WithCode 创建一个带错误码的error
func WithCode(code int, message string) error {
	if message == "" {
		message = ecode.Text(code)
	}
	return &CodedError{Code: code, Message: message}
}

// Wrap 包装已有error并附加错误码和提示
func Wrap(err error, code int, message string) error {
	if message == "" {
		message = ecode.Text(code)
	}
	return &CodedError{Code: code, Message: message, cause: err}
}

// Wrapf 同Wrap，带格式化参数
func Wrapf(err error, code int, format string, args ...interface{}) error {
	return &CodedError{Code: code, Message: fmt.Sprintf(format, args...), cause: err}
}

// DecodeErr 解出错误码和提示信息，nil表示成功
// 带cause的错误要把底层原因一并透传给调用方，不允许只留提示吞掉细节
func DecodeErr(err error) (int, string) {
	if err == nil {
		return ecode.Success, ecode.Text(ecode.Success)
	}
	var coded *CodedError
	if errors.As(err, &coded) {
		return coded.Code, coded.Error()
	}
	return ecode.Unknown, err.Error()
}

// Code 只取错误码
func Code(err error) int {
	code, _ := DecodeErr(err)
	return code
}
