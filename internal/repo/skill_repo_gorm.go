package repo

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"skillswap/internal/domain"
)

type SkillRepo struct{ db *gorm.DB }

func NewSkillRepo(db *gorm.DB) *SkillRepo { return &SkillRepo{db: db} }

func (r *SkillRepo) Create(ctx context.Context, s *domain.Skill) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *SkillRepo) FindByID(ctx context.Context, id int64) (*domain.Skill, error) {
	var s domain.Skill
	err := r.db.WithContext(ctx).First(&s, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SkillRepo) List(ctx context.Context) ([]domain.Skill, error) {
	var out []domain.Skill
	err := r.db.WithContext(ctx).Order("id ASC").Find(&out).Error
	return out, err
}

func (r *SkillRepo) ListByOwner(ctx context.Context, ownerID int64) ([]domain.Skill, error) {
	var out []domain.Skill
	err := r.db.WithContext(ctx).Where("owner_id = ?", ownerID).Order("id ASC").Find(&out).Error
	return out, err
}

func (r *SkillRepo) FindByIDs(ctx context.Context, ids []int64) (map[int64]domain.Skill, error) {
	out := make(map[int64]domain.Skill, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var ss []domain.Skill
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&ss).Error; err != nil {
		return nil, err
	}
	for _, s := range ss {
		out[s.ID] = s
	}
	return out, nil
}

// Delete 事务内加锁读取、校验、删除
func (r *SkillRepo) Delete(ctx context.Context, id int64, check func(s *domain.Skill) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var s domain.Skill
		err := forUpdate(tx).First(&s, "id = ?", id).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("skill %d: %w", id, domain.ErrNotFound)
		}
		if err != nil {
			return err
		}
		if check != nil {
			if err := check(&s); err != nil {
				return err
			}
		}
		return tx.Delete(&domain.Skill{}, "id = ?", id).Error
	})
}
