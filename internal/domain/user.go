package domain

import (
	"context"
	"time"
)

type User struct {
	ID           int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Email        string    `gorm:"uniqueIndex;size:191" json:"email"`
	PasswordHash string    `gorm:"size:191" json:"-"`
	FullName     string    `gorm:"size:128" json:"full_name"`
	Location     string    `gorm:"size:128" json:"location"`
	Bio          string    `gorm:"type:text" json:"bio"`
	ProfileImage string    `gorm:"size:512" json:"profile_image"`
	CreatedAt    time.Time `json:"created_at"`
}

// Actor 当前请求的已认证用户；nil 表示未登录
type Actor struct {
	ID int64
}

type UserRepository interface {
	// Create 分配 ID；邮箱重复返回 ErrConflict
	Create(ctx context.Context, u *User) error
	FindByID(ctx context.Context, id int64) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	// FindByIDs 批量查找，缺失的 id 不出现在结果里
	FindByIDs(ctx context.Context, ids []int64) (map[int64]User, error)
	Update(ctx context.Context, u *User) error
}
