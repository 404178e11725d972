package repo

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"skillswap/internal/domain"
)

type SessionRepo struct{ db *gorm.DB }

func NewSessionRepo(db *gorm.DB) *SessionRepo { return &SessionRepo{db: db} }

func (r *SessionRepo) Create(ctx context.Context, s *domain.Session) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *SessionRepo) FindByID(ctx context.Context, id int64) (*domain.Session, error) {
	var s domain.Session
	err := r.db.WithContext(ctx).First(&s, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SessionRepo) ListByParticipant(ctx context.Context, userID int64) ([]domain.Session, error) {
	var out []domain.Session
	err := r.db.WithContext(ctx).
		Where("teacher_id = ? OR learner_id = ?", userID, userID).
		Order("id ASC").
		Find(&out).Error
	return out, err
}

func (r *SessionRepo) Mutate(ctx context.Context, id int64, fn func(s *domain.Session) error) (*domain.Session, error) {
	var out domain.Session
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var s domain.Session
		err := forUpdate(tx).First(&s, "id = ?", id).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("session %d: %w", id, domain.ErrNotFound)
		}
		if err != nil {
			return err
		}
		if err := fn(&s); err != nil {
			return err
		}
		s.ID = id
		if err := tx.Save(&s).Error; err != nil {
			return err
		}
		out = s
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}
