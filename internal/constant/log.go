package constant

// 日志字段
const (
	LogFieldRequestID = "request_id"
	LogFieldUserID    = "user_id"
	LogFieldKind      = "kind"
	LogFieldPath      = "path"
	LogFieldError     = "error"
)

// fiber 上下文中的键
const (
	LocalsUser  = "user"
	LocalsToken = "token"
)
