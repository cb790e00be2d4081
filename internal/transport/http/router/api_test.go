package router

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"go-gin-product-api/internal/core/auth"
	"go-gin-product-api/internal/repo"
	"go-gin-product-api/internal/service"
	"go-gin-product-api/internal/transport/http/handler"
)

func init() { gin.SetMode(gin.TestMode) }

const secret = "router-test-secret"

type app struct {
	t *testing.T
	h http.Handler
}

func newApp(t *testing.T, strict, ownership bool, ready func(context.Context) error) *app {
	l := zap.NewNop()
	users := repo.NewMemUserRepo()
	codec := auth.NewECBCodec(secret)
	gate := service.NewGate(users, codec, l)
	products := service.NewProductService(repo.NewMemProductRepo(), nil,
		service.ProductOptions{EnforceOwnership: ownership}, l)

	r := NewAPIEngine(l, Deps{
		Gate:    gate,
		Auth:    handler.NewAuthHandler(service.NewAccountService(users, bcrypt.MinCost, l), service.NewLoginService(users, codec, l)),
		Product: handler.NewProductHandler(products),
		Ready:   ready,
	}, Options{StrictStatus: strict, MaxInFlight: 16, MaxBodyBytes: 1 << 10})
	return &app{t: t, h: r}
}

func (a *app) call(method, path, body string) (int, map[string]any) {
	a.t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	a.h.ServeHTTP(w, req)
	var out map[string]any
	require.NoError(a.t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return w.Code, out
}

func (a *app) registerAndLogin(name, email string) string {
	a.t.Helper()
	_, out := a.call(http.MethodPost, "/api/register",
		`{"name":"`+name+`","email":"`+email+`","password1":"abcd","password2":"abcd"}`)
	require.Equal(a.t, true, out["success"], out)
	_, out = a.call(http.MethodPost, "/api/login", `{"email":"`+email+`","password":"abcd"}`)
	require.Equal(a.t, true, out["success"], out)
	return out["token"].(string)
}

func TestAPI_FullFlow(t *testing.T) {
	a := newApp(t, false, false, nil)

	_, out := a.call(http.MethodPost, "/api/register", `{"name":"Ann Lee","email":"ann@x.com","password1":"abcd","password2":"abcd"}`)
	assert.Equal(t, map[string]any{"success": true, "message": "User created successfully"}, out)

	_, out = a.call(http.MethodPost, "/api/register", `{"name":"Ann Lee","email":"ann@x.com","password1":"abcd","password2":"abcd"}`)
	assert.Equal(t, map[string]any{"success": false, "message": "Email already registered"}, out)

	_, out = a.call(http.MethodPost, "/api/register", `{"name":"Ann","email":"ann2@x.com","password1":"abcd","password2":"abcd"}`)
	assert.Equal(t, "Name is too short", out["message"])

	_, out = a.call(http.MethodPost, "/api/login", `{"email":"ann@x.com","password":"nope"}`)
	assert.Equal(t, map[string]any{"success": false, "message": "Wrong password"}, out)
	_, out = a.call(http.MethodPost, "/api/login", `{"email":"bob@x.com","password":"abcd"}`)
	assert.Equal(t, "User not found", out["message"])

	_, out = a.call(http.MethodPost, "/api/login", `{"email":"ann@x.com","password":"abcd"}`)
	assert.Equal(t, "Login success", out["message"])
	tok := out["token"].(string)
	assert.Len(t, tok, 108, "base64 of 80 cipher bytes")

	_, out = a.call(http.MethodPost, "/api/product/list", `{"token":"`+tok+`"}`)
	assert.Equal(t, map[string]any{"success": true, "products": []any{}}, out)

	_, out = a.call(http.MethodPost, "/api/product/add", `{"token":"`+tok+`","name":"Apple","price":2.5}`)
	assert.Equal(t, map[string]any{"success": true}, out)
	_, out = a.call(http.MethodPost, "/api/product/add", `{"token":"`+tok+`","name":"Free","price":0}`)
	assert.Equal(t, "Missing input", out["message"])

	_, out = a.call(http.MethodPut, "/api/product/edit", `{"token":"`+tok+`","id":1,"name":"Green apple","price":3}`)
	assert.Equal(t, map[string]any{"success": true}, out)

	_, out = a.call(http.MethodPost, "/api/product/list", `{"token":"`+tok+`"}`)
	assert.Equal(t, []any{map[string]any{"id": 1.0, "name": "Green apple", "price": 3.0}}, out["products"])

	_, out = a.call(http.MethodDelete, "/api/product/delete", `{"token":"`+tok+`","id":1}`)
	assert.Equal(t, map[string]any{"success": true}, out)
	_, out = a.call(http.MethodDelete, "/api/product/delete", `{"token":"`+tok+`","id":1}`)
	assert.Equal(t, map[string]any{"success": false, "message": "Product not found"}, out)

	_, out = a.call(http.MethodPost, "/api/product/list", `{"token":"Zm9yZ2Vk"}`)
	assert.Equal(t, map[string]any{"success": false, "message": "Auth failed"}, out)
	_, out = a.call(http.MethodPost, "/api/product/list", `{}`)
	assert.Equal(t, "Auth failed", out["message"])

	// 数字形式的 name 照常写入
	_, out = a.call(http.MethodPost, "/api/product/add", `{"token":"`+tok+`","name":123,"price":5}`)
	assert.Equal(t, map[string]any{"success": true}, out)
	_, out = a.call(http.MethodPost, "/api/product/list", `{"token":"`+tok+`"}`)
	assert.Equal(t, []any{map[string]any{"id": 2.0, "name": "123", "price": 5.0}}, out["products"])

	_, out = a.call(http.MethodPut, "/api/product/edit", `{"token":"`+tok+`","id":-4,"name":"","price":0}`)
	assert.Equal(t, map[string]any{"success": false, "message": "Missing input"}, out)
}

func TestAPI_StrictStatus(t *testing.T) {
	a := newApp(t, true, false, nil)
	tok := a.registerAndLogin("Ann Lee", "ann@x.com")

	code, _ := a.call(http.MethodPost, "/api/product/list", `{"token":"nope"}`)
	assert.Equal(t, http.StatusUnauthorized, code)
	code, _ = a.call(http.MethodPost, "/api/product/add", `{"token":"`+tok+`"}`)
	assert.Equal(t, http.StatusBadRequest, code)
	code, _ = a.call(http.MethodPut, "/api/product/edit", `{"token":"`+tok+`","id":9,"name":"x","price":1}`)
	assert.Equal(t, http.StatusNotFound, code)
	code, _ = a.call(http.MethodPost, "/api/register", `{"name":"Ann Lee","email":"ann@x.com","password1":"abcd","password2":"abcd"}`)
	assert.Equal(t, http.StatusConflict, code)
	code, _ = a.call(http.MethodPost, "/api/product/add", `{"token":"`+tok+`","name":"`+strings.Repeat("a", 2048)+`","price":1}`)
	assert.Equal(t, http.StatusRequestEntityTooLarge, code)
}

func TestAPI_Ownership(t *testing.T) {
	a := newApp(t, false, true, nil)
	annTok := a.registerAndLogin("Ann Lee", "ann@x.com")
	bobTok := a.registerAndLogin("Bob Ray", "bob@x.com")

	_, out := a.call(http.MethodPost, "/api/product/add", `{"token":"`+annTok+`","name":"Apple","price":1}`)
	require.Equal(t, true, out["success"])

	_, out = a.call(http.MethodPut, "/api/product/edit", `{"token":"`+bobTok+`","id":1,"name":"Mine","price":1}`)
	assert.Equal(t, map[string]any{"success": false, "message": "Product not owned by user"}, out)
	_, out = a.call(http.MethodDelete, "/api/product/delete", `{"token":"`+bobTok+`","id":1}`)
	assert.Equal(t, "Product not owned by user", out["message"])

	// 列表不按用户过滤
	_, out = a.call(http.MethodPost, "/api/product/list", `{"token":"`+bobTok+`"}`)
	assert.Len(t, out["products"], 1)
}

func TestAPI_HealthMetricsAndNoRoute(t *testing.T) {
	healthy := true
	a := newApp(t, false, false, func(context.Context) error {
		if healthy {
			return nil
		}
		return errors.New("db down")
	})

	code, out := a.call(http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, 1.0, out["ok"])
	healthy = false
	code, _ = a.call(http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusServiceUnavailable, code)

	code, out = a.call(http.MethodGet, "/api/nope", "")
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, false, out["success"])

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()
	a.h.ServeHTTP(w, req)
	body, _ := io.ReadAll(w.Body)
	assert.Contains(t, string(body), "http_requests_total")
}
