package router

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"skillswap/internal/core/config"
	"skillswap/internal/core/server"
	"skillswap/internal/transport/http/ez"
	mdw "skillswap/internal/transport/http/middleware"
	resp "skillswap/internal/transport/http/response"
)

// Deps 组装 API 引擎所需的依赖
type Deps struct {
	Service string
	Auth    mdw.Authenticator
	Modules *Registry
	Limits  config.Limits
	// Ping 健康检查时探测存储；nil 表示总是健康
	Ping func(ctx context.Context) error
}

func NewAPIEngine(l *zap.Logger, d Deps) *gin.Engine {
	if l == nil {
		l = zap.NewNop()
	}
	r := server.NewRouter(l, mdw.RecoverEnvelope)
	lim := d.Limits

	// 中间件
	r.Use(
		mdw.Trace(d.Service, "/health", "/metrics"),
		mdw.RequestID(),
		mdw.Metrics(),
		mdw.AccessLog(l, "/health", "/metrics"),
	)
	if lim.RPS > 0 {
		r.Use(mdw.RateLimit(rate.Limit(lim.RPS), lim.Burst))
	}
	if lim.PerIPRPS > 0 {
		r.Use(mdw.RateLimitPerIP(rate.Limit(lim.PerIPRPS), lim.PerIPBurst, 10*time.Minute))
	}
	if lim.Concurrency > 0 {
		r.Use(mdw.ConcurrencyLimit(lim.Concurrency, 2*time.Second))
	}
	if lim.MaxBodyMB > 0 {
		r.Use(mdw.MaxBodyBytes(lim.MaxBodyMB << 20))
	}
	if lim.TimeoutSec > 0 {
		r.Use(mdw.Timeout(time.Duration(lim.TimeoutSec) * time.Second))
	}

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		if d.Ping != nil {
			if err := d.Ping(c.Request.Context()); err != nil {
				l.Warn("health check failed", zap.Error(err))
				c.JSON(http.StatusOK, resp.Error(resp.CodeServerError, "store unavailable"))
				return
			}
		}
		c.JSON(http.StatusOK, resp.OK(gin.H{"ok": 1}))
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// 前缀
	api := r.Group("/api/v1")

	// 鉴权分组与公共分组同前缀，只多一层 AuthJWT
	authed := api.Group("")
	authed.Use(mdw.AuthJWT(d.Auth, l))

	if d.Modules != nil {
		d.Modules.MountAll(ez.Routes{
			Public: ez.New(api, l),
			Auth:   ez.New(authed, l),
		})
		l.Debug("api modules mounted", zap.Int("count", d.Modules.Len()))
	}
	return r
}
