package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"skillswap/internal/core/events"
	"skillswap/internal/domain"
)

// Booking 预约引擎：创建 session 并推进其状态
type Booking struct {
	sessions domain.SessionRepository
	policy   TransitionPolicy
	opt      Options
}

func NewBooking(sessions domain.SessionRepository, policy TransitionPolicy, opt Options) *Booking {
	if policy == nil {
		policy = Permissive{}
	}
	return &Booking{sessions: sessions, policy: policy, opt: opt.normalize()}
}

// Create learner 始终取当前用户；skill/teacher 不做存在性校验
func (s *Booking) Create(ctx context.Context, actor *domain.Actor, in domain.CreateSessionInput) (_ int64, err error) {
	ctx, span := startSpan(ctx, "booking.Create")
	defer func() { endSpan(span, err) }()

	if actor == nil {
		return 0, domain.ErrNotAuthenticated
	}
	duration := domain.DefaultDurationHours
	if in.DurationHours != nil {
		if *in.DurationHours <= 0 {
			return 0, fmt.Errorf("duration_hours must be positive: %w", domain.ErrInvalidInput)
		}
		duration = *in.DurationHours
	}
	ss := &domain.Session{
		SkillID:       in.SkillID,
		TeacherID:     in.TeacherID,
		LearnerID:     actor.ID,
		SessionDate:   in.SessionDate,
		DurationHours: duration,
		PaymentMethod: in.PaymentMethod,
		Status:        domain.StatusPending,
	}
	if err := s.sessions.Create(ctx, ss); err != nil {
		return 0, err
	}
	sessionsCreated.Inc()
	s.opt.publish(ctx, events.SessionCreated, map[string]any{
		"session_id": ss.ID, "skill_id": ss.SkillID,
		"teacher_id": ss.TeacherID, "learner_id": ss.LearnerID,
	})
	s.opt.Log.Info("session created",
		zap.Int64("session_id", ss.ID),
		zap.Int64("teacher_id", ss.TeacherID),
		zap.Int64("learner_id", ss.LearnerID),
	)
	return ss.ID, nil
}

// UpdateStatus 仅 teacher/learner 可改；是否校验迁移由 policy 决定
func (s *Booking) UpdateStatus(ctx context.Context, actor *domain.Actor, id int64, status string) (err error) {
	ctx, span := startSpan(ctx, "booking.UpdateStatus")
	defer func() { endSpan(span, err) }()

	if actor == nil {
		return domain.ErrNotAuthenticated
	}
	var from string
	updated, err := s.sessions.Mutate(ctx, id, func(ss *domain.Session) error {
		if !ss.HasParticipant(actor.ID) {
			return fmt.Errorf("user %d is not a participant of session %d: %w", actor.ID, id, domain.ErrUnauthorized)
		}
		if !s.policy.Allow(ss.Status, status) {
			return fmt.Errorf("%q -> %q: %w", ss.Status, status, domain.ErrInvalidTransition)
		}
		from = ss.Status
		ss.Status = status
		return nil
	})
	if err != nil {
		return err
	}
	sessionTransitions.WithLabelValues(statusLabel(status)).Inc()
	s.opt.publish(ctx, events.SessionStatusChanged, map[string]any{
		"session_id": updated.ID, "from": from, "to": updated.Status, "actor_id": actor.ID,
	})
	s.opt.Log.Info("session status changed",
		zap.Int64("session_id", updated.ID),
		zap.String("from", from),
		zap.String("to", updated.Status),
		zap.Int64("actor_id", actor.ID),
	)
	return nil
}

// statusLabel 自由文本状态统一记为 other
func statusLabel(status string) string {
	switch status {
	case domain.StatusPending, domain.StatusConfirmed, domain.StatusCompleted,
		domain.StatusCancelled, domain.StatusDeclined:
		return status
	}
	return "other"
}
