package domain

import "errors"

// 业务错误：消息文本与旧客户端保持一致，直接回给调用方
var (
	ErrMissingInput    = errors.New("Missing input")
	ErrUserNotFound    = errors.New("User not found")
	ErrWrongPassword   = errors.New("Wrong password")
	ErrAuthFailed      = errors.New("Auth failed")
	ErrProductNotFound = errors.New("Product not found")
	ErrNotOwner        = errors.New("Product not owned by user")
	ErrEmailTaken      = errors.New("Email already registered")

	// ErrValidation 是所有字段校验失败的父错误
	ErrValidation = errors.New("validation failed")
	// ErrPersistence 包装存储层错误
	ErrPersistence = errors.New("persistence failed")
)

// ValidationKind 标识具体的校验失败类型
type ValidationKind string

const (
	KindEmailInvalid      ValidationKind = "email_invalid"
	KindNameTooShort      ValidationKind = "name_too_short"
	KindNameTooLong       ValidationKind = "name_too_long"
	KindInvalidCharacters ValidationKind = "invalid_characters"
	KindPasswordTooShort  ValidationKind = "password_too_short"
	KindPasswordTooLong   ValidationKind = "password_too_long"
	KindPasswordsMismatch ValidationKind = "passwords_mismatch"
)

// ValidationError 携带失败类型和原样返回给客户端的消息
type ValidationError struct {
	Kind ValidationKind
	Msg  string
}

func (e *ValidationError) Error() string { return e.Msg }

func (e *ValidationError) Unwrap() error { return ErrValidation }

// PersistenceError 包装存储层错误；Public 为 true 时底层消息原样回给客户端（注册）
type PersistenceError struct {
	Op     string
	Err    error
	Public bool
}

func (e *PersistenceError) Error() string { return e.Err.Error() }

func (e *PersistenceError) Unwrap() []error { return []error{ErrPersistence, e.Err} }

func Persistence(op string, err error) error {
	if err == nil {
		return nil
	}
	return &PersistenceError{Op: op, Err: err}
}

func PublicPersistence(op string, err error) error {
	if err == nil {
		return nil
	}
	return &PersistenceError{Op: op, Err: err, Public: true}
}
