package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	// KeyStrict gin.Context 中是否启用真实 HTTP 状态码
	KeyStrict = "strict_status"
	// KeyFailed 本次请求回了 success=false
	KeyFailed = "action_failed"
)

// OK {success:true, ...extra}
func OK(extra gin.H) gin.H {
	out := gin.H{"success": true}
	for k, v := range extra {
		out[k] = v
	}
	return out
}

// Fail {success:false, message}；msg 为空时用 code 的默认文案
func Fail(code int, msg string) gin.H {
	if msg == "" {
		msg = CodeMsgMap[code]
	}
	return gin.H{"success": false, "message": msg}
}

// Status 非 strict 模式下一律 200
func Status(c *gin.Context, code int) int {
	if code == CodeOK || !c.GetBool(KeyStrict) {
		return http.StatusOK
	}
	if http.StatusText(code) == "" {
		return http.StatusInternalServerError
	}
	return code
}

func Success(c *gin.Context, extra gin.H) {
	c.JSON(http.StatusOK, OK(extra))
}

func Error(c *gin.Context, code int, msg string) {
	c.Set(KeyFailed, true)
	c.JSON(Status(c, code), Fail(code, msg))
}

func Abort(c *gin.Context, code int, msg string) {
	c.Set(KeyFailed, true)
	c.AbortWithStatusJSON(Status(c, code), Fail(code, msg))
}

// StatusMode 放在中间件链最前面
func StatusMode(strict bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(KeyStrict, strict)
		c.Next()
	}
}
