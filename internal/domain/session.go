package domain

import (
	"context"
	"time"
)

const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
	StatusDeclined  = "declined"

	DefaultDurationHours = 1.0
)

// Session 一次预约课程
type Session struct {
	ID            int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	SkillID       int64     `gorm:"index" json:"skill_id"`
	TeacherID     int64     `gorm:"index" json:"teacher_id"`
	LearnerID     int64     `gorm:"index" json:"learner_id"`
	SessionDate   string    `gorm:"size:64" json:"session_date"`
	DurationHours float64   `json:"duration_hours"`
	PaymentMethod string    `gorm:"size:64" json:"payment_method"`
	Status        string    `gorm:"size:32;index" json:"status"`
	CreatedAt     time.Time `json:"created_at"`
}

// HasParticipant teacher 或 learner
func (s *Session) HasParticipant(userID int64) bool {
	return s.TeacherID == userID || s.LearnerID == userID
}

type CreateSessionInput struct {
	SkillID       int64    `json:"skill_id"`
	TeacherID     int64    `json:"teacher_id"`
	LearnerID     int64    `json:"learner_id"` // 忽略，始终以当前用户为准
	SessionDate   string   `json:"session_date"`
	DurationHours *float64 `json:"duration_hours"` // 默认 1.0
	PaymentMethod string   `json:"payment_method"`
}

type SessionRepository interface {
	Create(ctx context.Context, s *Session) error
	FindByID(ctx context.Context, id int64) (*Session, error)
	ListByParticipant(ctx context.Context, userID int64) ([]Session, error)
	// Mutate 原子地读-改-写；fn 返回错误时不落库
	Mutate(ctx context.Context, id int64, fn func(s *Session) error) (*Session, error)
}
