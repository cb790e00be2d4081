package auth

import (
	"bytes"
	"crypto/aes"
	"encoding/base64"
)

const keyLen = 16 // AES-128

// ECBCodec 兼容旧客户端的 token 格式：
// base64(AES-128-ECB(key, hash||email))，PKCS#7 填充。
// 同一 (hash, email) 永远得到同一 token。
type ECBCodec struct {
	key []byte
}

// NewECBCodec 密钥不足 16 字节补 0，超出截断（与旧服务的行为一致）
func NewECBCodec(secret string) *ECBCodec {
	key := make([]byte, keyLen)
	copy(key, secret)
	return &ECBCodec{key: key}
}

func (c *ECBCodec) Encode(passwordHash, email string) (string, error) {
	if len(passwordHash) != HashLen {
		return "", ErrHashLength
	}
	block, err := aes.NewCipher(c.key)
	if err != nil {
		return "", err
	}
	plain := pkcs7Pad([]byte(passwordHash+email), aes.BlockSize)
	out := make([]byte, len(plain))
	for i := 0; i < len(plain); i += aes.BlockSize {
		block.Encrypt(out[i:i+aes.BlockSize], plain[i:i+aes.BlockSize])
	}
	return base64.StdEncoding.EncodeToString(out), nil
}

func (c *ECBCodec) Decode(token string) (string, string, error) {
	raw, err := base64.StdEncoding.DecodeString(token)
	if err != nil || len(raw) == 0 || len(raw)%aes.BlockSize != 0 {
		return "", "", ErrInvalidToken
	}
	block, err := aes.NewCipher(c.key)
	if err != nil {
		return "", "", err
	}
	plain := make([]byte, len(raw))
	for i := 0; i < len(raw); i += aes.BlockSize {
		block.Decrypt(plain[i:i+aes.BlockSize], raw[i:i+aes.BlockSize])
	}
	plain, ok := pkcs7Unpad(plain, aes.BlockSize)
	if !ok {
		return "", "", ErrInvalidToken
	}
	return splitPlain(plain)
}

func pkcs7Pad(b []byte, size int) []byte {
	n := size - len(b)%size
	return append(b, bytes.Repeat([]byte{byte(n)}, n)...)
}

func pkcs7Unpad(b []byte, size int) ([]byte, bool) {
	if len(b) == 0 || len(b)%size != 0 {
		return nil, false
	}
	n := int(b[len(b)-1])
	if n == 0 || n > size {
		return nil, false
	}
	for _, p := range b[len(b)-n:] {
		if int(p) != n {
			return nil, false
		}
	}
	return b[:len(b)-n], true
}
