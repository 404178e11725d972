package repo

import (
	"context"
	"fmt"
	"sync"
	"time"

	"skillswap/internal/domain"
)

// memTable 单集合内存表：每张表独立加锁，分配 ID 与插入在同一把锁内完成
type memTable[T any] struct {
	mu    sync.RWMutex
	next  int64
	rows  map[int64]*T
	order []int64 // 插入顺序
}

func newMemTable[T any]() *memTable[T] {
	return &memTable[T]{next: 1, rows: make(map[int64]*T)}
}

// insertLocked 调用方需持有写锁；分配 ID 与写入不可拆分
func (t *memTable[T]) insertLocked(v *T, setID func(*T, int64)) {
	id := t.next
	t.next++
	setID(v, id)
	cp := *v
	t.rows[id] = &cp
	t.order = append(t.order, id)
}

func (t *memTable[T]) get(id int64) (*T, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	v, ok := t.rows[id]
	if !ok {
		return nil, false
	}
	cp := *v
	return &cp, true
}

// filter 按插入顺序返回副本
func (t *memTable[T]) filter(keep func(*T) bool) []T {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]T, 0, len(t.order))
	for _, id := range t.order {
		v := t.rows[id]
		if keep == nil || keep(v) {
			out = append(out, *v)
		}
	}
	return out
}

func (t *memTable[T]) removeLocked(id int64) {
	delete(t.rows, id)
	for i, oid := range t.order {
		if oid == id {
			t.order = append(t.order[:i], t.order[i+1:]...)
			break
		}
	}
}

// MemStore 进程内存储，进程退出即丢失
type MemStore struct {
	users    *memTable[domain.User]
	skills   *memTable[domain.Skill]
	sessions *memTable[domain.Session]
	reviews  *memTable[domain.Review]
}

func NewMemStore() *MemStore {
	return &MemStore{
		users:    newMemTable[domain.User](),
		skills:   newMemTable[domain.Skill](),
		sessions: newMemTable[domain.Session](),
		reviews:  newMemTable[domain.Review](),
	}
}

func (m *MemStore) Users() domain.UserRepository       { return memUsers{m.users} }
func (m *MemStore) Skills() domain.SkillRepository     { return memSkills{m.skills} }
func (m *MemStore) Sessions() domain.SessionRepository { return memSessions{m.sessions} }
func (m *MemStore) Reviews() domain.ReviewRepository   { return memReviews{m.reviews} }

func stamp(t *time.Time) {
	if t.IsZero() {
		*t = time.Now().UTC()
	}
}

// ---------- users ----------

type memUsers struct{ t *memTable[domain.User] }

func (r memUsers) Create(_ context.Context, u *domain.User) error {
	r.t.mu.Lock()
	defer r.t.mu.Unlock()
	for _, id := range r.t.order {
		if r.t.rows[id].Email == u.Email {
			return fmt.Errorf("email %q: %w", u.Email, domain.ErrConflict)
		}
	}
	stamp(&u.CreatedAt)
	r.t.insertLocked(u, func(v *domain.User, id int64) { v.ID = id })
	return nil
}

func (r memUsers) FindByID(_ context.Context, id int64) (*domain.User, error) {
	u, ok := r.t.get(id)
	if !ok {
		return nil, nil
	}
	return u, nil
}

func (r memUsers) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	us := r.t.filter(func(u *domain.User) bool { return u.Email == email })
	if len(us) == 0 {
		return nil, nil
	}
	return &us[0], nil
}

func (r memUsers) FindByIDs(_ context.Context, ids []int64) (map[int64]domain.User, error) {
	r.t.mu.RLock()
	defer r.t.mu.RUnlock()
	out := make(map[int64]domain.User, len(ids))
	for _, id := range ids {
		if u, ok := r.t.rows[id]; ok {
			out[id] = *u
		}
	}
	return out, nil
}

func (r memUsers) Update(_ context.Context, u *domain.User) error {
	r.t.mu.Lock()
	defer r.t.mu.Unlock()
	cur, ok := r.t.rows[u.ID]
	if !ok {
		return fmt.Errorf("user %d: %w", u.ID, domain.ErrNotFound)
	}
	cp := *u
	cp.CreatedAt = cur.CreatedAt
	r.t.rows[u.ID] = &cp
	return nil
}

// ---------- skills ----------

type memSkills struct{ t *memTable[domain.Skill] }

func (r memSkills) Create(_ context.Context, s *domain.Skill) error {
	stamp(&s.CreatedAt)
	r.t.mu.Lock()
	defer r.t.mu.Unlock()
	r.t.insertLocked(s, func(v *domain.Skill, id int64) { v.ID = id })
	return nil
}

func (r memSkills) FindByID(_ context.Context, id int64) (*domain.Skill, error) {
	s, ok := r.t.get(id)
	if !ok {
		return nil, nil
	}
	return s, nil
}

func (r memSkills) List(_ context.Context) ([]domain.Skill, error) {
	return r.t.filter(nil), nil
}

func (r memSkills) ListByOwner(_ context.Context, ownerID int64) ([]domain.Skill, error) {
	return r.t.filter(func(s *domain.Skill) bool { return s.OwnerID == ownerID }), nil
}

func (r memSkills) FindByIDs(_ context.Context, ids []int64) (map[int64]domain.Skill, error) {
	r.t.mu.RLock()
	defer r.t.mu.RUnlock()
	out := make(map[int64]domain.Skill, len(ids))
	for _, id := range ids {
		if s, ok := r.t.rows[id]; ok {
			out[id] = *s
		}
	}
	return out, nil
}

func (r memSkills) Delete(_ context.Context, id int64, check func(s *domain.Skill) error) error {
	r.t.mu.Lock()
	defer r.t.mu.Unlock()
	s, ok := r.t.rows[id]
	if !ok {
		return fmt.Errorf("skill %d: %w", id, domain.ErrNotFound)
	}
	if check != nil {
		cp := *s
		if err := check(&cp); err != nil {
			return err
		}
	}
	r.t.removeLocked(id)
	return nil
}

// ---------- sessions ----------

type memSessions struct{ t *memTable[domain.Session] }

func (r memSessions) Create(_ context.Context, s *domain.Session) error {
	stamp(&s.CreatedAt)
	r.t.mu.Lock()
	defer r.t.mu.Unlock()
	r.t.insertLocked(s, func(v *domain.Session, id int64) { v.ID = id })
	return nil
}

func (r memSessions) FindByID(_ context.Context, id int64) (*domain.Session, error) {
	s, ok := r.t.get(id)
	if !ok {
		return nil, nil
	}
	return s, nil
}

func (r memSessions) ListByParticipant(_ context.Context, userID int64) ([]domain.Session, error) {
	return r.t.filter(func(s *domain.Session) bool { return s.HasParticipant(userID) }), nil
}

func (r memSessions) Mutate(_ context.Context, id int64, fn func(s *domain.Session) error) (*domain.Session, error) {
	r.t.mu.Lock()
	defer r.t.mu.Unlock()
	cur, ok := r.t.rows[id]
	if !ok {
		return nil, fmt.Errorf("session %d: %w", id, domain.ErrNotFound)
	}
	next := *cur
	if err := fn(&next); err != nil {
		return nil, err
	}
	next.ID = id
	r.t.rows[id] = &next
	out := next
	return &out, nil
}

// ---------- reviews ----------

type memReviews struct{ t *memTable[domain.Review] }

func (r memReviews) Create(_ context.Context, rv *domain.Review) error {
	stamp(&rv.CreatedAt)
	r.t.mu.Lock()
	defer r.t.mu.Unlock()
	r.t.insertLocked(rv, func(v *domain.Review, id int64) { v.ID = id })
	return nil
}

func (r memReviews) ListByReviewed(_ context.Context, userID int64) ([]domain.Review, error) {
	return r.t.filter(func(rv *domain.Review) bool { return rv.ReviewedUserID == userID }), nil
}
