package repo

import (
	"context"
	"errors"
	"sync"
	"testing"

	"skillswap/internal/core/database"
	"skillswap/internal/domain"
)

type storeFactory func(t *testing.T) domain.Store

func memFactory(t *testing.T) domain.Store { return NewMemStore() }

func sqliteFactory(t *testing.T) domain.Store {
	t.Helper()
	db, err := database.NewGorm(database.Opts{Driver: "sqlite", DSN: ":memory:", LogLevel: "silent"})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	s := NewGormStore(db)
	if err := s.Migrate(); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return s
}

func forEachStore(t *testing.T, fn func(t *testing.T, s domain.Store)) {
	for name, f := range map[string]storeFactory{"memory": memFactory, "sqlite": sqliteFactory} {
		t.Run(name, func(t *testing.T) { fn(t, f(t)) })
	}
}

func TestStore_UserUniqueEmail(t *testing.T) {
	forEachStore(t, func(t *testing.T, s domain.Store) {
		ctx := context.Background()
		u1 := &domain.User{Email: "a@example.com", FullName: "Ann"}
		if err := s.Users().Create(ctx, u1); err != nil {
			t.Fatalf("create: %v", err)
		}
		if u1.ID <= 0 {
			t.Fatalf("id not assigned: %d", u1.ID)
		}
		err := s.Users().Create(ctx, &domain.User{Email: "a@example.com"})
		if !errors.Is(err, domain.ErrConflict) {
			t.Fatalf("expected ErrConflict, got %v", err)
		}
		got, err := s.Users().FindByEmail(ctx, "a@example.com")
		if err != nil || got == nil || got.ID != u1.ID {
			t.Fatalf("FindByEmail = %+v, %v", got, err)
		}
		missing, err := s.Users().FindByID(ctx, 999)
		if err != nil || missing != nil {
			t.Fatalf("FindByID(missing) = %+v, %v", missing, err)
		}
	})
}

// 两种后端都按字节比较 email；大小写归一在 Identity 里做
func TestStore_UserEmailExactMatch(t *testing.T) {
	forEachStore(t, func(t *testing.T, s domain.Store) {
		ctx := context.Background()
		if err := s.Users().Create(ctx, &domain.User{Email: "Ann@Example.com"}); err != nil {
			t.Fatalf("create: %v", err)
		}
		got, err := s.Users().FindByEmail(ctx, "ann@example.com")
		if err != nil || got != nil {
			t.Fatalf("FindByEmail(lower) = %+v, %v", got, err)
		}
		if err := s.Users().Create(ctx, &domain.User{Email: "ann@example.com"}); err != nil {
			t.Fatalf("create lower: %v", err)
		}
	})
}

func TestStore_UserUpdateAndBatchLookup(t *testing.T) {
	forEachStore(t, func(t *testing.T, s domain.Store) {
		ctx := context.Background()
		u := &domain.User{Email: "b@example.com", FullName: "Bo"}
		if err := s.Users().Create(ctx, u); err != nil {
			t.Fatalf("create: %v", err)
		}
		u.Bio = "drummer"
		u.Location = "Lisbon"
		if err := s.Users().Update(ctx, u); err != nil {
			t.Fatalf("update: %v", err)
		}
		m, err := s.Users().FindByIDs(ctx, []int64{u.ID, 12345})
		if err != nil {
			t.Fatalf("FindByIDs: %v", err)
		}
		if len(m) != 1 || m[u.ID].Bio != "drummer" || m[u.ID].Location != "Lisbon" {
			t.Fatalf("FindByIDs = %+v", m)
		}
		err = s.Users().Update(ctx, &domain.User{ID: 12345})
		if !errors.Is(err, domain.ErrNotFound) {
			t.Fatalf("update missing: %v", err)
		}
	})
}

func TestStore_SkillIDsIncreaseAndOrder(t *testing.T) {
	forEachStore(t, func(t *testing.T, s domain.Store) {
		ctx := context.Background()
		var last int64
		for i, owner := range []int64{1, 2, 1, 3} {
			sk := &domain.Skill{OwnerID: owner, SkillName: string(rune('a' + i))}
			if err := s.Skills().Create(ctx, sk); err != nil {
				t.Fatalf("create: %v", err)
			}
			if sk.ID <= last {
				t.Fatalf("id %d not greater than %d", sk.ID, last)
			}
			last = sk.ID
		}
		all, err := s.Skills().List(ctx)
		if err != nil || len(all) != 4 {
			t.Fatalf("List = %d, %v", len(all), err)
		}
		for i, want := range []string{"a", "b", "c", "d"} {
			if all[i].SkillName != want {
				t.Fatalf("order[%d] = %q, want %q", i, all[i].SkillName, want)
			}
		}
		mine, err := s.Skills().ListByOwner(ctx, 1)
		if err != nil || len(mine) != 2 || mine[0].SkillName != "a" || mine[1].SkillName != "c" {
			t.Fatalf("ListByOwner = %+v, %v", mine, err)
		}
	})
}

func TestStore_SkillDeleteCheck(t *testing.T) {
	forEachStore(t, func(t *testing.T, s domain.Store) {
		ctx := context.Background()
		sk := &domain.Skill{OwnerID: 1, SkillName: "chess"}
		if err := s.Skills().Create(ctx, sk); err != nil {
			t.Fatalf("create: %v", err)
		}
		denied := errors.New("denied")
		if err := s.Skills().Delete(ctx, sk.ID, func(*domain.Skill) error { return denied }); !errors.Is(err, denied) {
			t.Fatalf("expected check error, got %v", err)
		}
		if got, _ := s.Skills().FindByID(ctx, sk.ID); got == nil {
			t.Fatal("skill removed despite failed check")
		}
		if err := s.Skills().Delete(ctx, sk.ID, nil); err != nil {
			t.Fatalf("delete: %v", err)
		}
		if err := s.Skills().Delete(ctx, sk.ID, nil); !errors.Is(err, domain.ErrNotFound) {
			t.Fatalf("second delete: %v", err)
		}
		// 删除后 ID 不复用
		next := &domain.Skill{OwnerID: 1}
		if err := s.Skills().Create(ctx, next); err != nil {
			t.Fatalf("create: %v", err)
		}
		if next.ID <= sk.ID {
			t.Fatalf("id reused: %d <= %d", next.ID, sk.ID)
		}
	})
}

func TestStore_SessionParticipantsAndMutate(t *testing.T) {
	forEachStore(t, func(t *testing.T, s domain.Store) {
		ctx := context.Background()
		mk := func(teacher, learner int64) *domain.Session {
			ss := &domain.Session{TeacherID: teacher, LearnerID: learner, Status: domain.StatusPending, DurationHours: 1}
			if err := s.Sessions().Create(ctx, ss); err != nil {
				t.Fatalf("create: %v", err)
			}
			return ss
		}
		a := mk(1, 2)
		mk(3, 4)
		c := mk(5, 1)

		got, err := s.Sessions().ListByParticipant(ctx, 1)
		if err != nil || len(got) != 2 || got[0].ID != a.ID || got[1].ID != c.ID {
			t.Fatalf("ListByParticipant = %+v, %v", got, err)
		}

		updated, err := s.Sessions().Mutate(ctx, a.ID, func(ss *domain.Session) error {
			ss.Status = domain.StatusConfirmed
			return nil
		})
		if err != nil || updated.Status != domain.StatusConfirmed {
			t.Fatalf("Mutate = %+v, %v", updated, err)
		}
		stop := errors.New("stop")
		if _, err := s.Sessions().Mutate(ctx, a.ID, func(ss *domain.Session) error {
			ss.Status = "garbage"
			return stop
		}); !errors.Is(err, stop) {
			t.Fatalf("expected stop, got %v", err)
		}
		cur, _ := s.Sessions().FindByID(ctx, a.ID)
		if cur.Status != domain.StatusConfirmed {
			t.Fatalf("status = %q after failed mutate", cur.Status)
		}
		if _, err := s.Sessions().Mutate(ctx, 999, func(*domain.Session) error { return nil }); !errors.Is(err, domain.ErrNotFound) {
			t.Fatalf("mutate missing: %v", err)
		}
	})
}

func TestStore_ReviewsByReviewed(t *testing.T) {
	forEachStore(t, func(t *testing.T, s domain.Store) {
		ctx := context.Background()
		for i, target := range []int64{7, 8, 7} {
			if err := s.Reviews().Create(ctx, &domain.Review{ReviewerID: 1, ReviewedUserID: target, Rating: 4.5 - float64(i)}); err != nil {
				t.Fatalf("create: %v", err)
			}
		}
		got, err := s.Reviews().ListByReviewed(ctx, 7)
		if err != nil || len(got) != 2 {
			t.Fatalf("ListByReviewed = %+v, %v", got, err)
		}
		if got[0].Rating != 4.5 || got[1].Rating != 2.5 {
			t.Fatalf("ratings = %v, %v", got[0].Rating, got[1].Rating)
		}
		for _, r := range got {
			if r.ReviewedUserID != 7 {
				t.Fatalf("unexpected review %+v", r)
			}
		}
	})
}

func TestMemStore_ConcurrentCreatesGetUniqueIDs(t *testing.T) {
	s := NewMemStore()
	ctx := context.Background()
	const n = 200
	ids := make(chan int64, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			sk := &domain.Skill{OwnerID: 1}
			if err := s.Skills().Create(ctx, sk); err != nil {
				t.Error(err)
				return
			}
			ids <- sk.ID
		}()
	}
	wg.Wait()
	close(ids)
	seen := make(map[int64]bool, n)
	for id := range ids {
		if seen[id] {
			t.Fatalf("duplicate id %d", id)
		}
		seen[id] = true
	}
	if len(seen) != n {
		t.Fatalf("got %d ids, want %d", len(seen), n)
	}
}
