package domain

import (
	"context"
	"time"
)

type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	Email     string    `gorm:"uniqueIndex;size:191;not null" json:"email"`
	Password  string    `gorm:"size:60;not null" json:"-"` // bcrypt 摘要，固定 60 字符
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (User) TableName() string { return "users" }

// UserRepository 查询均返回 (nil, nil) 表示不存在
type UserRepository interface {
	Create(ctx context.Context, u *User) error
	FindByID(ctx context.Context, id uint) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	// FindByCredentials 按 email + 密码摘要精确匹配
	FindByCredentials(ctx context.Context, email, passwordHash string) (*User, error)
}
