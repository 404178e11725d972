package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// GetOrLoadJSON 以 JSON 存取视图；未启用缓存时直接返回 load 的结果
func GetOrLoadJSON[T any](c *Cache, ctx context.Context, key string, ttl time.Duration, load func(context.Context) (T, error)) (T, error) {
	if c == nil {
		return load(ctx)
	}
	b, err := c.GetOrLoad(ctx, key, ttl, func(ctx context.Context) ([]byte, error) {
		v, err := load(ctx)
		if err != nil {
			return nil, err
		}
		return json.Marshal(v)
	})
	var out T
	if err != nil {
		return out, err
	}
	if err := json.Unmarshal(b, &out); err != nil {
		// 旧版本写入的结构不兼容：删掉后回源
		_ = c.Invalidate(ctx, key)
		v, lerr := load(ctx)
		if lerr != nil {
			return out, fmt.Errorf("decode cached %s: %v; reload: %w", key, err, lerr)
		}
		return v, nil
	}
	return out, nil
}
