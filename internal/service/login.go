package service

import (
	"context"

	"go.uber.org/zap"

	"go-gin-product-api/internal/core/auth"
	"go-gin-product-api/internal/domain"
	"go-gin-product-api/pkg/utils"
)

type LoginService struct {
	users domain.UserRepository
	codec auth.Codec
	log   *zap.Logger
}

func NewLoginService(users domain.UserRepository, codec auth.Codec, l *zap.Logger) *LoginService {
	return &LoginService{users: users, codec: codec, log: l}
}

// Login 校验密码并签发 token（使用库中存储的摘要和 email）；
// 只有空串算缺失，"0" 照常查库
func (s *LoginService) Login(ctx context.Context, email, password string) (string, error) {
	if email == "" || password == "" {
		return "", domain.ErrMissingInput
	}
	u, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return "", domain.Persistence("find user by email", err)
	}
	if u == nil {
		return "", domain.ErrUserNotFound
	}
	if !utils.CheckPassword(password, u.Password) {
		return "", domain.ErrWrongPassword
	}
	tok, err := s.codec.Encode(u.Password, u.Email)
	if err != nil {
		s.log.Error("issue token failed", zap.Uint("user_id", u.ID), zap.Error(err))
		return "", err
	}
	return tok, nil
}
