package service

import (
	"regexp"
	"strconv"

	"github.com/go-playground/validator/v10"

	"go-gin-product-api/internal/domain"
)

const (
	MinNameLength     = 4
	MaxNameLength     = 255
	MinPasswordLength = 4
	MaxPasswordLength = 255
	// MaxEmailLength 与 users.email 列宽一致
	MaxEmailLength = 191
)

var (
	validate    = validator.New()
	nameCharset = regexp.MustCompile(`^[a-zA-Z0-9\s]+$`)
)

// IsEmpty 与旧服务的判空一致："" 和 "0" 都算缺失
func IsEmpty(s string) bool { return s == "" || s == "0" }

func ValidateMissingInput(fields ...string) error {
	for _, f := range fields {
		if IsEmpty(f) {
			return domain.ErrMissingInput
		}
	}
	return nil
}

func ValidateEmail(email string) error {
	if validate.Var(email, "required,max="+strconv.Itoa(MaxEmailLength)+",email") != nil {
		return &domain.ValidationError{Kind: domain.KindEmailInvalid, Msg: "Email is not valid"}
	}
	return nil
}

// ValidateName 长度按字节计算
func ValidateName(name string) error {
	switch {
	case len(name) < MinNameLength:
		return &domain.ValidationError{Kind: domain.KindNameTooShort, Msg: "Name is too short"}
	case len(name) > MaxNameLength:
		return &domain.ValidationError{Kind: domain.KindNameTooLong, Msg: "Name is too long"}
	case !nameCharset.MatchString(name):
		return &domain.ValidationError{Kind: domain.KindInvalidCharacters, Msg: "Name contains invalid characters"}
	}
	return nil
}

func ValidatePassword(p1, p2 string) error {
	switch {
	case len(p1) < MinPasswordLength:
		return &domain.ValidationError{Kind: domain.KindPasswordTooShort, Msg: "Password is too short"}
	case len(p1) > MaxPasswordLength:
		return &domain.ValidationError{Kind: domain.KindPasswordTooLong, Msg: "Password is too long"}
	case p1 != p2:
		return &domain.ValidationError{Kind: domain.KindPasswordsMismatch, Msg: "Passwords do not match"}
	}
	return nil
}
