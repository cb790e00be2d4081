package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"go-gin-product-api/internal/core/config"
	"go-gin-product-api/internal/core/logger"
)

// NewRouter 基础引擎：zap 兜底 recovery + CORS，业务中间件由 transport 层追加
func NewRouter(l *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(ginzap.RecoveryWithZap(l, true))
	r.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:    []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders:   []string{"X-Request-ID"},
		MaxAge:          12 * time.Hour,
	}))
	return r
}

func BuildServer(c config.HTTP, handler http.Handler, l *zap.Logger) *http.Server {
	return &http.Server{
		Addr:           Addr(c.Host, c.Port),
		Handler:        handler,
		ReadTimeout:    time.Duration(c.ReadTimeoutSec) * time.Second,
		WriteTimeout:   time.Duration(c.WriteTimeoutSec) * time.Second,
		IdleTimeout:    time.Duration(c.IdleTimeoutSec) * time.Second,
		MaxHeaderBytes: 1 << 20, // 1MB
		ErrorLog:       logger.ToStdLogger(l, zapcore.WarnLevel),
	}
}

// Run 阻塞到 ctx 取消，然后在 grace 内优雅关闭
func Run(ctx context.Context, srv *http.Server, grace time.Duration, l *zap.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		l.Info("http starting", zap.String("addr", srv.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), grace)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	l.Info("http stopped gracefully")
	return nil
}

func Addr(host string, port int) string { return fmt.Sprintf("%s:%d", host, port) }
