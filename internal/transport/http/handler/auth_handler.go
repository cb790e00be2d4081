package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"go-gin-product-api/internal/domain"
	"go-gin-product-api/internal/service"
	httpez "go-gin-product-api/internal/transport/http/ez"
)

const (
	MsgUserCreated  = "User created successfully"
	MsgLoginSuccess = "Login success"
)

type Registerer interface {
	Register(ctx context.Context, in service.RegisterInput) error
}

type LoginIssuer interface {
	Login(ctx context.Context, email, password string) (string, error)
}

type AuthHandler struct {
	accounts Registerer
	login    LoginIssuer
}

func NewAuthHandler(accounts Registerer, login LoginIssuer) *AuthHandler {
	return &AuthHandler{accounts: accounts, login: login}
}

type registerIn struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Password1 string `json:"password1"`
	Password2 string `json:"password2"`
}

type loginIn struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Mount POST /register, POST /login（公共，无需 token）
func (h *AuthHandler) Mount(ez httpez.EZ) {
	httpez.RegisterAction(ez, httpez.Action[registerIn]{
		Method:  http.MethodPost,
		Path:    "/register",
		Binder:  httpez.BindJSON,
		Handler: h.register,
	})
	httpez.RegisterAction(ez, httpez.Action[loginIn]{
		Method:  http.MethodPost,
		Path:    "/login",
		Binder:  httpez.BindJSON,
		Handler: h.doLogin,
	})
}

func (h *AuthHandler) register(c *gin.Context, _ *domain.User, in *registerIn) (gin.H, error) {
	err := h.accounts.Register(c.Request.Context(), service.RegisterInput{
		Name:      in.Name,
		Email:     in.Email,
		Password1: in.Password1,
		Password2: in.Password2,
	})
	if err != nil {
		return nil, err
	}
	return gin.H{"message": MsgUserCreated}, nil
}

func (h *AuthHandler) doLogin(c *gin.Context, _ *domain.User, in *loginIn) (gin.H, error) {
	tok, err := h.login.Login(c.Request.Context(), in.Email, in.Password)
	if err != nil {
		return nil, err
	}
	return gin.H{"message": MsgLoginSuccess, "token": tok}, nil
}
