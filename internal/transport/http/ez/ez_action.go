package ez

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"go-gin-product-api/internal/domain"
	resp "go-gin-product-api/internal/transport/http/response"
)

// KeyUser 鉴权通过后当前用户存放在 gin.Context 的 key
const KeyUser = "user"

// KeyBearer Authorization: Bearer 头里的 token（可选来源）
const KeyBearer = "bearer_token"

// 绑定方式
type Binder string

const (
	BindJSON Binder = "json" // 从 JSON 绑定，解析失败视为空入参
	BindNone Binder = "none" // 不绑定
)

// 统一错误对象（配合 resp.Error(c, code, msg)）
type AErr struct {
	Code int
	Msg  string
	Err  error
}

func (e *AErr) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "action error"
}

func (e *AErr) Unwrap() error { return e.Err }

// FromError 把服务层错误映射成错误码 + 回给客户端的消息
func FromError(err error) *AErr {
	var ae *AErr
	if errors.As(err, &ae) {
		return ae
	}
	var ve *domain.ValidationError
	var pe *domain.PersistenceError
	switch {
	case errors.Is(err, domain.ErrMissingInput), errors.As(err, &ve):
		return &AErr{Code: resp.CodeBadRequest, Msg: err.Error(), Err: err}
	case errors.Is(err, domain.ErrEmailTaken):
		return &AErr{Code: resp.CodeConflict, Msg: err.Error(), Err: err}
	case errors.Is(err, domain.ErrAuthFailed),
		errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrWrongPassword):
		return &AErr{Code: resp.CodeUnauthorized, Msg: err.Error(), Err: err}
	case errors.Is(err, domain.ErrNotOwner):
		return &AErr{Code: resp.CodeForbidden, Msg: err.Error(), Err: err}
	case errors.Is(err, domain.ErrProductNotFound):
		return &AErr{Code: resp.CodeNotFound, Msg: err.Error(), Err: err}
	case errors.As(err, &pe) && pe.Public:
		return &AErr{Code: resp.CodeServerError, Msg: pe.Error(), Err: err}
	case errors.Is(err, context.DeadlineExceeded):
		return &AErr{Code: resp.CodeTimeout, Err: err}
	}
	// 存储层细节不回给客户端
	return &AErr{Code: resp.CodeServerError, Msg: resp.CodeMsgMap[resp.CodeServerError], Err: err}
}

// Tokened 需要鉴权的入参实现它，token 放在请求体里
type Tokened interface{ AuthToken() string }

// TokenIn 可嵌入到入参结构体
type TokenIn struct {
	Token string `json:"token"`
}

func (t TokenIn) AuthToken() string { return t.Token }

type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*domain.User, error)
}

type EZ struct {
	g    *gin.RouterGroup
	gate Authenticator
	log  *zap.Logger
}

func New(g *gin.RouterGroup, gate Authenticator, l *zap.Logger) EZ {
	return EZ{g: g, gate: gate, log: l}
}

// 动作定义：I 入参；Handler 返回的 gin.H 合并进 {success:true}
type Action[I any] struct {
	Method  string // "GET" | "POST" | "PUT" | "DELETE"
	Path    string
	Binder  Binder
	Auth    bool // 先过 token 鉴权，u 非 nil
	Handler func(c *gin.Context, u *domain.User, in *I) (gin.H, error)
}

func tokenOf(c *gin.Context, in any) string {
	if t, ok := in.(Tokened); ok {
		if tok := strings.TrimSpace(t.AuthToken()); tok != "" {
			return tok
		}
	}
	return c.GetString(KeyBearer)
}

func RegisterAction[I any](e EZ, a Action[I]) {
	h := func(c *gin.Context) {
		// 1) 绑定入参：非法 JSON 与缺字段同样处理；个别字段类型不符时只丢弃该字段
		var in I
		if a.Binder == BindJSON {
			if err := c.ShouldBindJSON(&in); err != nil {
				var tooLarge *http.MaxBytesError
				var typeErr *json.UnmarshalTypeError
				switch {
				case errors.As(err, &tooLarge):
					resp.Error(c, resp.CodeTooLarge, "")
					return
				case errors.As(err, &typeErr):
				default:
					var zero I
					in = zero
				}
			}
		}

		// 2) 鉴权
		var u *domain.User
		if a.Auth {
			var err error
			u, err = e.gate.Authenticate(c.Request.Context(), tokenOf(c, &in))
			if err != nil {
				e.fail(c, err)
				return
			}
			c.Set(KeyUser, u)
		}

		// 3) 执行 + 统一错误映射
		out, err := a.Handler(c, u, &in)
		if err != nil {
			e.fail(c, err)
			return
		}
		resp.Success(c, out)
	}

	switch strings.ToUpper(a.Method) {
	case http.MethodGet:
		e.g.GET(a.Path, h)
	case http.MethodPut:
		e.g.PUT(a.Path, h)
	case http.MethodDelete:
		e.g.DELETE(a.Path, h)
	default: // 默认 POST
		e.g.POST(a.Path, h)
	}
}

func (e EZ) fail(c *gin.Context, err error) {
	ae := FromError(err)
	if ae.Code >= resp.CodeServerError {
		e.log.Error("action failed", zap.String("path", c.FullPath()), zap.Error(err))
		_ = c.Error(err)
	}
	resp.Error(c, ae.Code, ae.Msg)
}
