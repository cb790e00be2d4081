package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"go-gin-product-api/internal/core/auth"
	"go-gin-product-api/internal/domain"
	"go-gin-product-api/pkg/utils"
)

const testSecret = "test-app-secret"

// seedUser 写入一个已注册用户，返回其记录
func seedUser(t *testing.T, users *memUsers, name, email, password string) *domain.User {
	t.Helper()
	hash, err := utils.HashPassword(password, bcrypt.MinCost)
	require.NoError(t, err)
	u := &domain.User{Name: name, Email: email, Password: hash}
	require.NoError(t, users.Create(context.Background(), u))
	return u
}

func TestLogin(t *testing.T) {
	users := newMemUsers()
	u := seedUser(t, users, "Ann Lee", "ann@x.com", "abcd")
	codec := auth.NewECBCodec(testSecret)
	s := NewLoginService(users, codec, zap.NewNop())

	t.Run("success", func(t *testing.T) {
		tok, err := s.Login(context.Background(), "ann@x.com", "abcd")
		require.NoError(t, err)
		require.NotEmpty(t, tok)

		hash, email, err := codec.Decode(tok)
		require.NoError(t, err)
		assert.Equal(t, u.Password, hash)
		assert.Equal(t, "ann@x.com", email)
	})

	t.Run("wrong password", func(t *testing.T) {
		tok, err := s.Login(context.Background(), "ann@x.com", "nope")
		assert.ErrorIs(t, err, domain.ErrWrongPassword)
		assert.EqualError(t, err, "Wrong password")
		assert.Empty(t, tok)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := s.Login(context.Background(), "bob@x.com", "abcd")
		assert.ErrorIs(t, err, domain.ErrUserNotFound)
		assert.EqualError(t, err, "User not found")
	})

	t.Run("missing input", func(t *testing.T) {
		_, err := s.Login(context.Background(), "ann@x.com", "")
		assert.ErrorIs(t, err, domain.ErrMissingInput)
		_, err = s.Login(context.Background(), "", "abcd")
		assert.ErrorIs(t, err, domain.ErrMissingInput)
	})

	t.Run("zero is a value not a missing field", func(t *testing.T) {
		_, err := s.Login(context.Background(), "ann@x.com", "0")
		assert.ErrorIs(t, err, domain.ErrWrongPassword)
		_, err = s.Login(context.Background(), "0", "abcd")
		assert.ErrorIs(t, err, domain.ErrUserNotFound)
	})

	t.Run("same token every login", func(t *testing.T) {
		a, err := s.Login(context.Background(), "ann@x.com", "abcd")
		require.NoError(t, err)
		b, err := s.Login(context.Background(), "ann@x.com", "abcd")
		require.NoError(t, err)
		assert.Equal(t, a, b)
	})
}

func TestLogin_StoreError(t *testing.T) {
	users := newMemUsers()
	users.err = errBoom
	s := NewLoginService(users, auth.NewECBCodec(testSecret), zap.NewNop())

	_, err := s.Login(context.Background(), "ann@x.com", "abcd")
	assert.ErrorIs(t, err, domain.ErrPersistence)
	assert.ErrorIs(t, err, errBoom)
}
