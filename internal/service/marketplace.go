package service

import (
	"context"
	"math"

	"skillswap/internal/core/cache"
	"skillswap/internal/domain"
)

// Marketplace 只读 join 层，不持有状态；被引用实体缺失时字段置空而不是报错
type Marketplace struct {
	store domain.Store
	opt   Options
}

func NewMarketplace(store domain.Store, opt Options) *Marketplace {
	return &Marketplace{store: store, opt: opt.normalize()}
}

// ListSkills 技能 + 老师（id/full_name/location），按创建顺序
func (m *Marketplace) ListSkills(ctx context.Context) (_ []domain.SkillView, err error) {
	ctx, span := startSpan(ctx, "marketplace.ListSkills")
	defer func() { endSpan(span, err) }()

	return cache.GetOrLoadJSON(m.opt.Cache, ctx, keySkillList, m.opt.ViewTTL, m.loadSkillViews)
}

func (m *Marketplace) loadSkillViews(ctx context.Context) ([]domain.SkillView, error) {
	skills, err := m.store.Skills().List(ctx)
	if err != nil {
		return nil, err
	}
	ids := make([]int64, 0, len(skills))
	for _, s := range skills {
		ids = append(ids, s.OwnerID)
	}
	owners, err := m.store.Users().FindByIDs(ctx, uniq(ids))
	if err != nil {
		return nil, err
	}
	out := make([]domain.SkillView, 0, len(skills))
	for _, s := range skills {
		v := domain.SkillView{
			ID:              s.ID,
			SkillName:       s.SkillName,
			Category:        s.Category,
			Description:     s.Description,
			HourlyRate:      s.HourlyRate,
			AcceptsExchange: s.AcceptsExchange,
		}
		if u, ok := owners[s.OwnerID]; ok {
			v.Teacher = domain.TeacherRef{ID: ptr(u.ID), FullName: ptr(u.FullName), Location: ptr(u.Location)}
		}
		out = append(out, v)
	}
	return out, nil
}

// ListSessions 当前用户作为 teacher 或 learner 的 session，带技能名
func (m *Marketplace) ListSessions(ctx context.Context, actor *domain.Actor) (_ []domain.SessionView, err error) {
	ctx, span := startSpan(ctx, "marketplace.ListSessions")
	defer func() { endSpan(span, err) }()

	if actor == nil {
		return nil, domain.ErrNotAuthenticated
	}
	sessions, err := m.store.Sessions().ListByParticipant(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	ids := make([]int64, 0, len(sessions))
	for _, s := range sessions {
		ids = append(ids, s.SkillID)
	}
	skills, err := m.store.Skills().FindByIDs(ctx, uniq(ids))
	if err != nil {
		return nil, err
	}
	out := make([]domain.SessionView, 0, len(sessions))
	for _, s := range sessions {
		v := domain.SessionView{
			ID:            s.ID,
			TeacherID:     s.TeacherID,
			LearnerID:     s.LearnerID,
			SessionDate:   s.SessionDate,
			DurationHours: s.DurationHours,
			Status:        s.Status,
		}
		if sk, ok := skills[s.SkillID]; ok {
			v.SkillName = ptr(sk.SkillName)
		}
		out = append(out, v)
	}
	return out, nil
}

// ListReviewsFor 被评价人为 userID 的评价，带评价人姓名
func (m *Marketplace) ListReviewsFor(ctx context.Context, userID int64) (_ []domain.ReviewView, err error) {
	ctx, span := startSpan(ctx, "marketplace.ListReviewsFor")
	defer func() { endSpan(span, err) }()

	reviews, err := m.store.Reviews().ListByReviewed(ctx, userID)
	if err != nil {
		return nil, err
	}
	ids := make([]int64, 0, len(reviews))
	for _, r := range reviews {
		ids = append(ids, r.ReviewerID)
	}
	reviewers, err := m.store.Users().FindByIDs(ctx, uniq(ids))
	if err != nil {
		return nil, err
	}
	out := make([]domain.ReviewView, 0, len(reviews))
	for _, r := range reviews {
		v := domain.ReviewView{ID: r.ID, Rating: r.Rating, Comment: r.Comment, CreatedAt: r.CreatedAt}
		if u, ok := reviewers[r.ReviewerID]; ok {
			v.Reviewer = ptr(u.FullName)
		}
		out = append(out, v)
	}
	return out, nil
}

// RatingSummary 平均分保留两位小数；无评价时为 0
func (m *Marketplace) RatingSummary(ctx context.Context, userID int64) (domain.RatingSummary, error) {
	reviews, err := m.store.Reviews().ListByReviewed(ctx, userID)
	if err != nil {
		return domain.RatingSummary{}, err
	}
	sum := domain.RatingSummary{UserID: userID, Count: len(reviews)}
	if len(reviews) == 0 {
		return sum, nil
	}
	total := 0.0
	for _, r := range reviews {
		total += r.Rating
	}
	sum.Average = math.Round(total/float64(len(reviews))*100) / 100
	return sum, nil
}

func ptr[T any](v T) *T { return &v }

func uniq(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
