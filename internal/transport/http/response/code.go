package response

// 业务错误码（直接基于 HTTP 语义），strict 模式下同时作为 HTTP 状态码
const (
	CodeOK           = 0
	CodeBadRequest   = 400
	CodeUnauthorized = 401
	CodeForbidden    = 403
	CodeNotFound     = 404
	CodeConflict     = 409
	CodeTooLarge     = 413
	CodeServerError  = 500
	CodeUnavailable  = 503
	CodeTimeout      = 504
)

// CodeMsgMap 没有业务消息时的默认文案
var CodeMsgMap = map[int]string{
	CodeOK:           "OK",
	CodeBadRequest:   "Bad Request",
	CodeUnauthorized: "Unauthorized",
	CodeForbidden:    "Forbidden",
	CodeNotFound:     "Not Found",
	CodeConflict:     "Conflict",
	CodeTooLarge:     "Request body too large",
	CodeServerError:  "Internal Server Error",
	CodeUnavailable:  "Server busy",
	CodeTimeout:      "Timeout",
}
