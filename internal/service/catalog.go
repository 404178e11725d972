package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"skillswap/internal/core/events"
	"skillswap/internal/domain"
)

// Catalog 技能目录：仅支持创建与删除
type Catalog struct {
	skills domain.SkillRepository
	opt    Options
}

func NewCatalog(skills domain.SkillRepository, opt Options) *Catalog {
	return &Catalog{skills: skills, opt: opt.normalize()}
}

func (s *Catalog) Create(ctx context.Context, actor *domain.Actor, in domain.CreateSkillInput) (_ int64, err error) {
	ctx, span := startSpan(ctx, "catalog.Create")
	defer func() { endSpan(span, err) }()

	if actor == nil {
		return 0, domain.ErrNotAuthenticated
	}
	sk := &domain.Skill{
		OwnerID:     actor.ID,
		SkillName:   s.opt.Text.Text(in.SkillName),
		Category:    s.opt.Text.Text(in.Category),
		Description: s.opt.Text.Text(in.Description),
		SkillType:   domain.SkillTypeTeaching,
		HourlyRate:  in.HourlyRate,
	}
	if in.SkillType != nil {
		sk.SkillType = *in.SkillType
	}
	if in.AcceptsExchange != nil {
		sk.AcceptsExchange = *in.AcceptsExchange
	}
	if err := s.skills.Create(ctx, sk); err != nil {
		return 0, err
	}
	skillsCreated.Inc()
	s.opt.invalidate(ctx, keySkillList)
	s.opt.publish(ctx, events.SkillCreated, map[string]any{"skill_id": sk.ID, "owner_id": sk.OwnerID})
	s.opt.Log.Info("skill created", zap.Int64("skill_id", sk.ID), zap.Int64("owner_id", sk.OwnerID))
	return sk.ID, nil
}

// Delete 仅拥有者可删；已有 session 保留悬空 skill_id
func (s *Catalog) Delete(ctx context.Context, actor *domain.Actor, id int64) (err error) {
	ctx, span := startSpan(ctx, "catalog.Delete")
	defer func() { endSpan(span, err) }()

	if actor == nil {
		return domain.ErrNotAuthenticated
	}
	err = s.skills.Delete(ctx, id, func(sk *domain.Skill) error {
		if sk.OwnerID != actor.ID {
			return fmt.Errorf("skill %d not owned by user %d: %w", id, actor.ID, domain.ErrUnauthorized)
		}
		return nil
	})
	if err != nil {
		return err
	}
	skillsDeleted.Inc()
	s.opt.invalidate(ctx, keySkillList)
	s.opt.publish(ctx, events.SkillDeleted, map[string]any{"skill_id": id, "owner_id": actor.ID})
	s.opt.Log.Info("skill deleted", zap.Int64("skill_id", id), zap.Int64("owner_id", actor.ID))
	return nil
}

func (s *Catalog) ListByOwner(ctx context.Context, ownerID int64) ([]domain.Skill, error) {
	out, err := s.skills.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []domain.Skill{}
	}
	return out, nil
}
