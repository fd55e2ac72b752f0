package generator

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation 请求字段缺失或越界，终止本次生成
	ErrValidation = errors.New("validation error")
	// ErrTemplateUnavailable 模板无法打开，改用空白文档，只记录日志
	ErrTemplateUnavailable = errors.New("template unavailable")
)

// ValidationError 带字段名的校验错误，errors.Is(err, ErrValidation) 为真
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// prefixField 给校验错误的字段名加上位置前缀，其他错误原样返回
func prefixField(err error, prefix string) error {
	var ve *ValidationError
	if errors.As(err, &ve) {
		ve.Field = prefix + ve.Field
	}
	return err
}
