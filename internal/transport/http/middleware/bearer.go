package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	httpez "go-gin-product-api/internal/transport/http/ez"
)

// BearerToken 请求体里没有 token 时，鉴权退回到 Authorization: Bearer 头
func BearerToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		if ah := c.GetHeader("Authorization"); strings.HasPrefix(ah, "Bearer ") {
			c.Set(httpez.KeyBearer, strings.TrimSpace(strings.TrimPrefix(ah, "Bearer ")))
		}
		c.Next()
	}
}
