package domain

import (
	"context"
	"time"
)

type Review struct {
	ID             int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	SessionID      int64     `gorm:"index" json:"session_id"`
	ReviewerID     int64     `gorm:"index" json:"reviewer_id"`
	ReviewedUserID int64     `gorm:"index" json:"reviewed_user_id"`
	Rating         float64   `json:"rating"`
	Comment        string    `gorm:"type:text" json:"comment"`
	CreatedAt      time.Time `json:"created_at"`
}

type CreateReviewInput struct {
	SessionID      int64   `json:"session_id"`
	ReviewedUserID int64   `json:"reviewed_user_id"`
	Rating         float64 `json:"rating"`
	Comment        string  `json:"comment"`
}

type ReviewRepository interface {
	Create(ctx context.Context, r *Review) error
	ListByReviewed(ctx context.Context, userID int64) ([]Review, error)
}
