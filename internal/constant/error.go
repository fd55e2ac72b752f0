package constant

import (
	"errors"
	"net/http"
)

// 自定义错误
var (
	// 通用错误
	ErrInternalError    = errors.New("内部错误")
	ErrInvalidParams    = errors.New("参数错误")
	ErrUnauthorized     = errors.New("未授权")
	ErrForbidden        = errors.New("禁止访问")
	ErrDatabaseError    = errors.New("数据库错误")
	ErrInvalidToken     = errors.New("无效的token")
	ErrTokenExpired     = errors.New("token已过期")
	ErrRecordNotFound   = errors.New("记录不存在")
	ErrSerializeError   = errors.New("序列化错误")
	ErrDeserializeError = errors.New("反序列化错误")
	ErrCacheError       = errors.New("缓存错误")

	// 生成相关错误
	ErrUserNotFound     = errors.New("用户不存在")
	ErrInsufficientDisk = errors.New("磁盘空间不足")
)

var errorCodes = []struct {
	err  error
	code int
}{
	{ErrInvalidParams, http.StatusBadRequest},
	{ErrUnauthorized, http.StatusUnauthorized},
	{ErrInvalidToken, http.StatusUnauthorized},
	{ErrTokenExpired, http.StatusUnauthorized},
	{ErrForbidden, http.StatusForbidden},
	{ErrRecordNotFound, http.StatusNotFound},
	{ErrUserNotFound, http.StatusNotFound},
	{ErrInsufficientDisk, http.StatusInsufficientStorage},
	{ErrDatabaseError, http.StatusInternalServerError},
	{ErrSerializeError, http.StatusInternalServerError},
	{ErrDeserializeError, http.StatusInternalServerError},
	{ErrCacheError, http.StatusInternalServerError},
	{ErrInternalError, http.StatusInternalServerError},
}

// 获取错误对应的HTTP状态码，支持包装后的错误
func GetErrorCode(err error) int {
	for _, ec := range errorCodes {
		if errors.Is(err, ec.err) {
			return ec.code
		}
	}
	return http.StatusInternalServerError
}
