package service

import (
	"context"

	"go.uber.org/zap"

	"skillswap/internal/core/events"
	"skillswap/internal/domain"
)

// Reviews 评价账本：只追加
type Reviews struct {
	reviews domain.ReviewRepository
	opt     Options
}

func NewReviews(reviews domain.ReviewRepository, opt Options) *Reviews {
	return &Reviews{reviews: reviews, opt: opt.normalize()}
}

// Create 不校验 session 是否存在、被评价人是否参与，也不要求 session 已结束
func (s *Reviews) Create(ctx context.Context, actor *domain.Actor, in domain.CreateReviewInput) (_ int64, err error) {
	ctx, span := startSpan(ctx, "reviews.Create")
	defer func() { endSpan(span, err) }()

	if actor == nil {
		return 0, domain.ErrNotAuthenticated
	}
	rv := &domain.Review{
		SessionID:      in.SessionID,
		ReviewerID:     actor.ID,
		ReviewedUserID: in.ReviewedUserID,
		Rating:         in.Rating,
		Comment:        s.opt.Text.Text(in.Comment),
	}
	if err := s.reviews.Create(ctx, rv); err != nil {
		return 0, err
	}
	reviewsCreated.Inc()
	s.opt.publish(ctx, events.ReviewCreated, map[string]any{
		"review_id": rv.ID, "session_id": rv.SessionID,
		"reviewer_id": rv.ReviewerID, "reviewed_user_id": rv.ReviewedUserID,
	})
	s.opt.Log.Info("review created", zap.Int64("review_id", rv.ID), zap.Int64("reviewed_user_id", rv.ReviewedUserID))
	return rv.ID, nil
}
