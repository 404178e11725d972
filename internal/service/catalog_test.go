package service

import (
	"context"
	"errors"
	"testing"

	"skillswap/internal/domain"
)

func TestCatalog_CreateDefaultsAndIncreasingIDs(t *testing.T) {
	f := newFixture(nil)
	ctx := context.Background()

	var last int64
	for i := 0; i < 5; i++ {
		id, err := f.catalog.Create(ctx, actor(1), domain.CreateSkillInput{SkillName: "Piano"})
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		if id <= last {
			t.Fatalf("id %d not greater than previous %d", id, last)
		}
		last = id
	}
	sk, _ := f.store.Skills().FindByID(ctx, last)
	if sk.OwnerID != 1 || sk.SkillType != domain.SkillTypeTeaching || sk.AcceptsExchange || sk.HourlyRate != nil {
		t.Fatalf("defaults not applied: %+v", sk)
	}
}

func TestCatalog_CreateExplicitFields(t *testing.T) {
	f := newFixture(nil)
	rate, yes, kind := 25.0, true, "mentoring"
	id, err := f.catalog.Create(context.Background(), actor(4), domain.CreateSkillInput{
		SkillName: "Go", Category: "Programming", Description: "idiomatic go",
		SkillType: &kind, HourlyRate: &rate, AcceptsExchange: &yes,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	sk, _ := f.store.Skills().FindByID(context.Background(), id)
	if sk.SkillType != "mentoring" || !sk.AcceptsExchange || sk.HourlyRate == nil || *sk.HourlyRate != 25 {
		t.Fatalf("fields = %+v", sk)
	}
}

func TestCatalog_CreateRequiresActor(t *testing.T) {
	f := newFixture(nil)
	if _, err := f.catalog.Create(context.Background(), nil, domain.CreateSkillInput{}); !errors.Is(err, domain.ErrNotAuthenticated) {
		t.Fatalf("err = %v", err)
	}
}

func TestCatalog_Delete(t *testing.T) {
	f := newFixture(nil)
	ctx := context.Background()
	id, _ := f.catalog.Create(ctx, actor(1), domain.CreateSkillInput{SkillName: "Chess"})

	if err := f.catalog.Delete(ctx, actor(2), id); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("non-owner delete: %v", err)
	}
	sk, _ := f.store.Skills().FindByID(ctx, id)
	if sk == nil || sk.SkillName != "Chess" {
		t.Fatalf("skill changed after failed delete: %+v", sk)
	}
	if err := f.catalog.Delete(ctx, actor(1), id); err != nil {
		t.Fatalf("owner delete: %v", err)
	}
	if err := f.catalog.Delete(ctx, actor(1), id); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("delete twice: %v", err)
	}
}

func TestCatalog_ListByOwner(t *testing.T) {
	f := newFixture(nil)
	ctx := context.Background()
	_, _ = f.catalog.Create(ctx, actor(1), domain.CreateSkillInput{SkillName: "a"})
	_, _ = f.catalog.Create(ctx, actor(2), domain.CreateSkillInput{SkillName: "b"})
	_, _ = f.catalog.Create(ctx, actor(1), domain.CreateSkillInput{SkillName: "c"})

	got, err := f.catalog.ListByOwner(ctx, 1)
	if err != nil || len(got) != 2 || got[0].SkillName != "a" || got[1].SkillName != "c" {
		t.Fatalf("ListByOwner = %+v, %v", got, err)
	}
	none, err := f.catalog.ListByOwner(ctx, 42)
	if err != nil || none == nil || len(none) != 0 {
		t.Fatalf("empty owner = %#v, %v", none, err)
	}
}
