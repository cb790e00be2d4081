package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "go.uber.org/automaxprocs"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"go-gin-product-api/internal/core/auth"
	"go-gin-product-api/internal/core/cache"
	"go-gin-product-api/internal/core/config"
	"go-gin-product-api/internal/core/database"
	"go-gin-product-api/internal/core/logger"
	"go-gin-product-api/internal/core/server"
	"go-gin-product-api/internal/domain"
	"go-gin-product-api/internal/repo"
	"go-gin-product-api/internal/service"
	"go-gin-product-api/internal/transport/http/handler"
	"go-gin-product-api/internal/transport/http/router"
)

const productListKey = "products:all"

type store struct {
	users    domain.UserRepository
	products domain.ProductRepository
	ping     func(ctx context.Context) error
	close    func()
}

func main() {
	_ = godotenv.Load()
	cfg, err := config.Load("")
	if err == nil {
		err = cfg.Validate()
	}
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	l, cleanup := logger.FromConfig(cfg.Log)
	defer cleanup()
	defer logger.RedirectStdLog(l, zapcore.InfoLevel)()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st := mustOpenStore(ctx, cfg, l)
	defer st.close()

	codec, err := auth.NewCodec(auth.Options{
		Mode:   cfg.Token.Mode,
		Secret: cfg.Secret,
		Issuer: cfg.Token.Issuer,
		TTL:    time.Duration(cfg.Token.TTLMin) * time.Minute,
	})
	if err != nil {
		l.Fatal("token codec", zap.Error(err))
	}

	// 产品列表缓存（可选）
	var listCache service.ListCache
	ready := st.ping
	if cfg.Redis.Addr != "" {
		c := cache.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err := c.Ping(ctx); err != nil {
			l.Warn("redis unavailable, product list cache disabled", zap.String("addr", cfg.Redis.Addr), zap.Error(err))
			_ = c.Close()
		} else {
			defer c.Close()
			listCache = cache.NewListCache[service.ProductView](c, productListKey, time.Duration(cfg.Redis.TTLSec)*time.Second)
			dbPing := st.ping
			ready = func(ctx context.Context) error {
				if err := dbPing(ctx); err != nil {
					return err
				}
				return c.Ping(ctx)
			}
			l.Info("product list cache enabled", zap.String("addr", cfg.Redis.Addr))
		}
	}

	gate := service.NewGate(st.users, codec, l)
	accounts := service.NewAccountService(st.users, cfg.Password.Cost, l)
	login := service.NewLoginService(st.users, codec, l)
	products := service.NewProductService(st.products, listCache,
		service.ProductOptions{EnforceOwnership: cfg.Product.EnforceOwnership}, l)

	r := router.NewAPIEngine(l, router.Deps{
		Gate:    gate,
		Auth:    handler.NewAuthHandler(accounts, login),
		Product: handler.NewProductHandler(products),
		Ready:   ready,
	}, router.Options{
		StrictStatus:   cfg.App.HTTP.StrictStatus,
		MaxInFlight:    cfg.App.HTTP.MaxInFlight,
		MaxBodyBytes:   cfg.App.HTTP.MaxBodyBytes,
		RequestTimeout: time.Duration(cfg.App.HTTP.RequestTimeoutSec) * time.Second,
	})

	srv := server.BuildServer(cfg.App.HTTP, r, l)

	// 启动日志
	host4human := cfg.App.HTTP.Host
	if host4human == "" || host4human == "0.0.0.0" {
		host4human = "127.0.0.1"
	}
	baseURL := "http://" + host4human + ":" + fmt.Sprint(cfg.App.HTTP.Port)
	l.Info("product api starting",
		zap.String("addr", srv.Addr),
		zap.String("health", baseURL+"/health"),
		zap.String("api", baseURL+"/api"),
		zap.String("token_mode", cfg.Token.Mode),
		zap.Bool("strict_status", cfg.App.HTTP.StrictStatus),
	)

	if err := server.Run(ctx, srv, 10*time.Second, l); err != nil && !errors.Is(err, http.ErrServerClosed) {
		l.Fatal("product api FAILED", zap.Error(err))
	}
}

// mustOpenStore db.driver=memory 时不连数据库
func mustOpenStore(ctx context.Context, cfg *config.Config, l *zap.Logger) store {
	if cfg.DB.Driver == "memory" {
		l.Warn("using in-memory store, data is lost on restart")
		return store{
			users:    repo.NewMemUserRepo(),
			products: repo.NewMemProductRepo(),
			ping:     func(context.Context) error { return nil },
			close:    func() {},
		}
	}

	db, err := database.NewGorm(database.OptsFromConfig(cfg.DB), l)
	if err != nil {
		l.Fatal("db open", zap.Error(err))
	}
	sqlDB, err := db.DB()
	if err != nil {
		l.Fatal("db handle", zap.Error(err))
	}
	l.Info("database connected", zap.String("driver", cfg.DB.Driver))

	if cfg.DB.AutoMigrate {
		if err := database.Migrate(ctx, db, cfg.DB.Driver, l, "up"); err != nil {
			l.Fatal("migrate failed", zap.Error(err))
		}
		l.Info("migrations applied")
	}
	return store{
		users:    repo.NewUserRepo(db),
		products: repo.NewProductRepo(db),
		ping:     sqlDB.PingContext,
		close:    func() { _ = sqlDB.Close() },
	}
}
