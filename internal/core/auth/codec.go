package auth

import (
	"errors"
	"fmt"
	"time"
)

// HashLen 是 bcrypt 摘要长度，也是 token 明文中 email 的起始偏移
const HashLen = 60

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrHashLength   = fmt.Errorf("password hash must be exactly %d bytes", HashLen)
)

// Codec 在 (密码摘要, email) 与 token 之间互转
type Codec interface {
	Encode(passwordHash, email string) (string, error)
	Decode(token string) (passwordHash, email string, err error)
}

const (
	ModeLegacy = "legacy"
	ModeJWT    = "jwt"
)

type Options struct {
	Mode   string
	Secret string
	Issuer string
	TTL    time.Duration
}

// NewCodec 按模式构造；空模式即 legacy
func NewCodec(o Options) (Codec, error) {
	switch o.Mode {
	case "", ModeLegacy:
		return NewECBCodec(o.Secret), nil
	case ModeJWT:
		if o.Secret == "" {
			return nil, errors.New("jwt token mode requires a secret")
		}
		ttl := o.TTL
		if ttl <= 0 {
			ttl = 24 * time.Hour
		}
		return NewJWTCodec(o.Secret, o.Issuer, ttl), nil
	default:
		return nil, fmt.Errorf("unknown token mode %q", o.Mode)
	}
}

// splitPlain 固定偏移切分：前 60 字节为摘要，其余为 email
func splitPlain(plain []byte) (string, string, error) {
	if len(plain) < HashLen {
		return "", "", ErrInvalidToken
	}
	return string(plain[:HashLen]), string(plain[HashLen:]), nil
}
