package router

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"go-gin-product-api/internal/core/server"
	httpez "go-gin-product-api/internal/transport/http/ez"
	"go-gin-product-api/internal/transport/http/handler"
	mdw "go-gin-product-api/internal/transport/http/middleware"
	resp "go-gin-product-api/internal/transport/http/response"
)

type Options struct {
	StrictStatus   bool
	MaxInFlight    int64
	MaxBodyBytes   int64
	RequestTimeout time.Duration
}

type Deps struct {
	Gate    httpez.Authenticator
	Auth    *handler.AuthHandler
	Product *handler.ProductHandler
	// Ready 可选，/health 调用它检查 DB / redis
	Ready func(ctx context.Context) error
}

func NewAPIEngine(l *zap.Logger, d Deps, o Options) *gin.Engine {
	r := server.NewRouter(l)

	// 中间件
	r.Use(
		resp.StatusMode(o.StrictStatus),
		mdw.RequestID(),
		mdw.AccessLog(l),
		mdw.Metrics(),
		mdw.SimpleRecovery(l),
		mdw.ConcurrencyLimit(o.MaxInFlight),
		mdw.MaxBodyBytes(o.MaxBodyBytes),
		mdw.Timeout(o.RequestTimeout),
		mdw.BearerToken(),
	)

	// 健康检查 / 指标
	r.GET("/health", func(c *gin.Context) {
		if d.Ready != nil {
			if err := d.Ready(c.Request.Context()); err != nil {
				l.Warn("health check failed", zap.Error(err))
				c.JSON(http.StatusServiceUnavailable, gin.H{"ok": 0})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"ok": 1})
	})
	r.GET("/metrics", mdw.MetricsHandler())

	api := r.Group("/api")
	d.Auth.Mount(httpez.New(api, d.Gate, l))
	d.Product.Mount(httpez.New(api.Group("/product"), d.Gate, l))

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, resp.Fail(resp.CodeNotFound, ""))
	})
	return r
}
