// Package response 统一响应体 {code,msg,data}；HTTP 状态码恒为 200，错误类别放在 code
package response

// 业务码直接沿用 HTTP 语义
const (
	CodeOK              = 0
	CodeBadRequest      = 400 // 参数错误 / 非法状态迁移
	CodeUnauthorized    = 401 // 未登录 / token 无效
	CodeForbidden       = 403 // 已登录但无权操作该资源
	CodeNotFound        = 404
	CodeConflict        = 409
	CodeTooManyRequests = 429
	CodeServerError     = 500
	CodeTimeout         = 504
)

var defaultMsg = map[int]string{
	CodeOK:              "OK",
	CodeBadRequest:      "Bad Request",
	CodeUnauthorized:    "Unauthorized",
	CodeForbidden:       "Forbidden",
	CodeNotFound:        "Not Found",
	CodeConflict:        "Conflict",
	CodeTooManyRequests: "Too Many Requests",
	CodeServerError:     "Internal Server Error",
	CodeTimeout:         "Timeout",
}

type Resp struct {
	Code int    `json:"code"`
	Msg  string `json:"msg"`
	Data any    `json:"data"`
}

// New data 为 nil 时输出 {}，客户端不用判 null
func New(code int, msg string, data any) Resp {
	if data == nil {
		data = struct{}{}
	}
	return Resp{Code: code, Msg: msg, Data: data}
}

func OK(data any) Resp { return New(CodeOK, defaultMsg[CodeOK], data) }

// Error msg 为空时取该 code 的默认文案
func Error(code int, msg string) Resp {
	if msg == "" {
		msg = defaultMsg[code]
	}
	return New(code, msg, nil)
}
