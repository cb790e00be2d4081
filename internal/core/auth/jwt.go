package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims pld 是 legacy 格式的密文，摘要不以明文出现在 JWT 里
type Claims struct {
	Payload string `json:"pld"`
	jwt.RegisteredClaims
}

// JWTCodec 可选的签名 + 过期 token，请求/响应结构不变
type JWTCodec struct {
	Secret []byte
	Issuer string
	TTL    time.Duration
	inner  *ECBCodec
}

func NewJWTCodec(secret, issuer string, ttl time.Duration) *JWTCodec {
	return &JWTCodec{Secret: []byte(secret), Issuer: issuer, TTL: ttl, inner: NewECBCodec(secret)}
}

func (j *JWTCodec) Encode(passwordHash, email string) (string, error) {
	payload, err := j.inner.Encode(passwordHash, email)
	if err != nil {
		return "", err
	}
	now := time.Now()
	claims := Claims{
		Payload: payload,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			Issuer:    j.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.TTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(j.Secret)
}

func (j *JWTCodec) Decode(tokenStr string) (string, string, error) {
	t, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected alg")
		}
		return j.Secret, nil
	}, jwt.WithIssuer(j.Issuer), jwt.WithLeeway(60*time.Second))
	if err != nil {
		return "", "", ErrInvalidToken
	}
	c, ok := t.Claims.(*Claims)
	if !ok || !t.Valid {
		return "", "", ErrInvalidToken
	}
	hash, email, err := j.inner.Decode(c.Payload)
	if err != nil || email != c.Subject {
		return "", "", ErrInvalidToken
	}
	return hash, email, nil
}
