package repo

import (
	"context"

	"gorm.io/gorm"

	"skillswap/internal/domain"
)

type ReviewRepo struct{ db *gorm.DB }

func NewReviewRepo(db *gorm.DB) *ReviewRepo { return &ReviewRepo{db: db} }

func (r *ReviewRepo) Create(ctx context.Context, rv *domain.Review) error {
	return r.db.WithContext(ctx).Create(rv).Error
}

func (r *ReviewRepo) ListByReviewed(ctx context.Context, userID int64) ([]domain.Review, error) {
	var out []domain.Review
	err := r.db.WithContext(ctx).Where("reviewed_user_id = ?", userID).Order("id ASC").Find(&out).Error
	return out, err
}
