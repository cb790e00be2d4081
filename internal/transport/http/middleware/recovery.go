package middleware

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	resp "go-gin-product-api/internal/transport/http/response"
)

func SimpleRecovery(l *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				l.Error("panic recovered",
					zap.Any("panic", rec),
					zap.String("path", c.Request.URL.Path),
					zap.Stack("stack"),
				)
				resp.Abort(c, resp.CodeServerError, "")
			}
		}()
		c.Next()
	}
}
