package service

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"skillswap/internal/core/cache"
	"skillswap/internal/core/events"
	"skillswap/internal/core/sanitize"
)

var tracer = otel.Tracer("skillswap/service")

// Options 各服务共享的可选依赖，零值可用
type Options struct {
	Log     *zap.Logger
	Events  events.Publisher
	Cache   *cache.Cache // nil 表示不缓存
	ViewTTL time.Duration
	Text    sanitize.Sanitizer
}

func (o Options) normalize() Options {
	if o.Log == nil {
		o.Log = zap.NewNop()
	}
	if o.Events == nil {
		o.Events = events.Noop{}
	}
	if o.ViewTTL <= 0 {
		o.ViewTTL = 30 * time.Second
	}
	if o.Text == nil {
		o.Text = sanitize.Passthrough{}
	}
	return o
}

// publish 事件在写入成功之后发送；失败只告警，不回滚已提交的数据
func (o Options) publish(ctx context.Context, key string, payload any) {
	if err := o.Events.PublishJSON(ctx, key, payload); err != nil {
		o.Log.Warn("publish event failed", zap.String("key", key), zap.Error(err))
	}
}

// invalidate 缓存删除失败只会导致视图在 TTL 内陈旧
func (o Options) invalidate(ctx context.Context, keys ...string) {
	if err := o.Cache.Invalidate(ctx, keys...); err != nil {
		o.Log.Warn("cache invalidate failed", zap.Strings("keys", keys), zap.Error(err))
	}
}

func startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return tracer.Start(ctx, name)
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
