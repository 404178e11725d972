package domain

import (
	"context"
	"time"
)

const SkillTypeTeaching = "teaching"

type Skill struct {
	ID              int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	OwnerID         int64     `gorm:"index" json:"owner_id"`
	SkillName       string    `gorm:"size:128" json:"skill_name"`
	Category        string    `gorm:"size:64" json:"category"`
	Description     string    `gorm:"type:text" json:"description"`
	SkillType       string    `gorm:"size:32" json:"skill_type"`
	HourlyRate      *float64  `json:"hourly_rate"`
	AcceptsExchange bool      `json:"accepts_exchange"`
	CreatedAt       time.Time `json:"created_at"`
}

// CreateSkillInput 可选字段为 nil 时取默认值
type CreateSkillInput struct {
	SkillName       string   `json:"skill_name"`
	Category        string   `json:"category"`
	Description     string   `json:"description"`
	SkillType       *string  `json:"skill_type"`       // 默认 teaching
	HourlyRate      *float64 `json:"hourly_rate"`      // 可空
	AcceptsExchange *bool    `json:"accepts_exchange"` // 默认 false
}

type SkillRepository interface {
	Create(ctx context.Context, s *Skill) error
	FindByID(ctx context.Context, id int64) (*Skill, error)
	// List 按创建顺序返回
	List(ctx context.Context) ([]Skill, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]Skill, error)
	FindByIDs(ctx context.Context, ids []int64) (map[int64]Skill, error)
	// Delete 在同一临界区内执行 check，check 返回错误则不删除
	Delete(ctx context.Context, id int64, check func(s *Skill) error) error
}
