package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"go-gin-product-api/internal/domain"
	"go-gin-product-api/pkg/utils"
)

type RegisterInput struct {
	Name      string
	Email     string
	Password1 string
	Password2 string
}

type AccountService struct {
	users    domain.UserRepository
	hashCost int
	log      *zap.Logger
}

func NewAccountService(users domain.UserRepository, hashCost int, l *zap.Logger) *AccountService {
	return &AccountService{users: users, hashCost: hashCost, log: l}
}

// Register 校验顺序固定：缺失 -> email -> 名称 -> 密码，第一个失败直接返回
func (s *AccountService) Register(ctx context.Context, in RegisterInput) error {
	if err := ValidateMissingInput(in.Name, in.Email, in.Password1, in.Password2); err != nil {
		return err
	}
	if err := ValidateEmail(in.Email); err != nil {
		return err
	}
	if err := ValidateName(in.Name); err != nil {
		return err
	}
	if err := ValidatePassword(in.Password1, in.Password2); err != nil {
		return err
	}

	hash, err := utils.HashPassword(in.Password1, s.hashCost)
	if err != nil {
		return err
	}
	u := &domain.User{Name: in.Name, Email: in.Email, Password: hash}
	if err := s.users.Create(ctx, u); err != nil {
		if errors.Is(err, domain.ErrEmailTaken) {
			return err
		}
		s.log.Warn("create user failed", zap.String("email", in.Email), zap.Error(err))
		return domain.PublicPersistence("create user", err)
	}
	s.log.Info("user registered", zap.Uint("user_id", u.ID))
	return nil
}
