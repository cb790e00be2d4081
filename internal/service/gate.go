package service

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"go-gin-product-api/internal/core/auth"
	"go-gin-product-api/internal/domain"
)

var authFailures = prometheus.NewCounterVec(
	prometheus.CounterOpts{Name: "auth_failures_total", Help: "Count of rejected product API tokens"},
	[]string{"reason"},
)

func init() { prometheus.MustRegister(authFailures) }

// Gate 把请求体里的 token 解析成用户；任何失败都归为 ErrAuthFailed
type Gate struct {
	users domain.UserRepository
	codec auth.Codec
	log   *zap.Logger
}

func NewGate(users domain.UserRepository, codec auth.Codec, l *zap.Logger) *Gate {
	return &Gate{users: users, codec: codec, log: l}
}

func (g *Gate) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	if token == "" {
		return nil, g.reject("missing")
	}
	hash, email, err := g.codec.Decode(token)
	if err != nil {
		return nil, g.reject("undecodable")
	}
	u, err := g.users.FindByCredentials(ctx, email, hash)
	if err != nil {
		g.log.Error("auth lookup failed", zap.Error(err))
		return nil, domain.Persistence("find user by credentials", err)
	}
	if u == nil {
		return nil, g.reject("unknown")
	}
	return u, nil
}

func (g *Gate) reject(reason string) error {
	authFailures.WithLabelValues(reason).Inc()
	g.log.Debug("auth rejected", zap.String("reason", reason))
	return domain.ErrAuthFailed
}
