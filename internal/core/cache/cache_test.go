package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

type item struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func TestGetOrLoadJSON_NilCacheLoadsDirectly(t *testing.T) {
	var c *Cache
	calls := 0
	got, err := GetOrLoadJSON(c, context.Background(), "k", time.Minute, func(context.Context) ([]item, error) {
		calls++
		return []item{{ID: 1, Name: "go"}}, nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 1 || len(got) != 1 || got[0].Name != "go" {
		t.Fatalf("got %+v after %d calls", got, calls)
	}
}

func TestGetOrLoadJSON_PropagatesLoadError(t *testing.T) {
	var c *Cache
	boom := errors.New("boom")
	_, err := GetOrLoadJSON(c, context.Background(), "k", time.Minute, func(context.Context) (item, error) {
		return item{}, boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
}

func TestGetOrLoad_UnreachableRedisFallsBack(t *testing.T) {
	// 端口 1 上没有 redis：读失败后回源，写失败被忽略
	c := New("127.0.0.1:1", "", 0)
	defer c.Close()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	b, err := c.GetOrLoad(ctx, "k", time.Minute, func(context.Context) ([]byte, error) {
		return []byte(`"v"`), nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(b) != `"v"` {
		t.Fatalf("got %q", b)
	}
}

func TestInvalidate_NilCache(t *testing.T) {
	var c *Cache
	if err := c.Invalidate(context.Background(), "a", "b"); err != nil {
		t.Fatalf("nil cache invalidate: %v", err)
	}
}

func newMini(t *testing.T) *Cache {
	t.Helper()
	mr := miniredis.RunT(t)
	c := &Cache{RDB: redis.NewClient(&redis.Options{Addr: mr.Addr()}), Prefix: "test:"}
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestGetOrLoad_HitAfterLoad(t *testing.T) {
	c := newMini(t)
	ctx := context.Background()
	calls := 0
	load := func(context.Context) ([]byte, error) { calls++; return []byte("v"), nil }
	for i := 0; i < 3; i++ {
		b, err := c.GetOrLoad(ctx, "skills", time.Minute, load)
		if err != nil || string(b) != "v" {
			t.Fatalf("get %d = %q, %v", i, b, err)
		}
	}
	if calls != 1 {
		t.Fatalf("load calls = %d, want 1", calls)
	}
	if err := c.Invalidate(ctx, "skills"); err != nil {
		t.Fatalf("invalidate: %v", err)
	}
	if _, err := c.GetOrLoad(ctx, "skills", time.Minute, load); err != nil || calls != 2 {
		t.Fatalf("after invalidate: calls = %d, err = %v", calls, err)
	}
}

// 回源期间发生写入：回源结果写回旧代，下一次读取拿到新数据
func TestGetOrLoad_InvalidateDuringLoad(t *testing.T) {
	c := newMini(t)
	ctx := context.Background()
	b, err := c.GetOrLoad(ctx, "skills", time.Minute, func(ctx context.Context) ([]byte, error) {
		if err := c.Invalidate(ctx, "skills"); err != nil {
			t.Errorf("invalidate: %v", err)
		}
		return []byte("stale"), nil
	})
	if err != nil || string(b) != "stale" {
		t.Fatalf("first get = %q, %v", b, err)
	}
	b, err = c.GetOrLoad(ctx, "skills", time.Minute, func(context.Context) ([]byte, error) {
		return []byte("fresh"), nil
	})
	if err != nil || string(b) != "fresh" {
		t.Fatalf("second get = %q, %v", b, err)
	}
}
