package utils

import "golang.org/x/crypto/bcrypt"

// bcrypt 只使用前 72 字节；旧服务静默截断，这里保持一致
const maxBcryptInput = 72

// HashPassword cost<=0 时使用 bcrypt.DefaultCost；输出固定 60 字符
func HashPassword(pw string, cost int) (string, error) {
	if cost <= 0 {
		cost = bcrypt.DefaultCost
	}
	b, err := bcrypt.GenerateFromPassword(clip(pw), cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func CheckPassword(pw, hashed string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), clip(pw)) == nil
}

func clip(pw string) []byte {
	b := []byte(pw)
	if len(b) > maxBcryptInput {
		b = b[:maxBcryptInput]
	}
	return b
}
