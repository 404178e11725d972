// Package server 提供基础 gin 引擎与 http.Server 的构造
package server

import (
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"skillswap/internal/core/config"
)

const maxHeaderBytes = 1 << 20

// NewRouter 只装 panic 恢复与 CORS，其余中间件由 API 层追加
func NewRouter(l *zap.Logger, recovery gin.RecoveryFunc) *gin.Engine {
	r := gin.New()
	r.Use(
		ginzap.CustomRecoveryWithZap(l, true, recovery),
		cors.New(corsConfig()),
	)
	return r
}

// 前端带 Bearer token 跨域访问，不使用 cookie
func corsConfig() cors.Config {
	c := cors.DefaultConfig()
	c.AllowAllOrigins = true
	c.AllowMethods = []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions}
	c.AddAllowHeaders("Authorization", "X-Request-ID")
	c.ExposeHeaders = []string{"X-Request-ID"}
	c.MaxAge = 12 * time.Hour
	return c
}

// New 按配置构造 http.Server；超时为 0 表示不限制
func New(h config.HTTP, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:           Addr(h.Host, h.Port),
		Handler:        handler,
		ReadTimeout:    seconds(h.ReadTimeoutSec),
		WriteTimeout:   seconds(h.WriteTimeoutSec),
		IdleTimeout:    seconds(h.IdleTimeoutSec),
		MaxHeaderBytes: maxHeaderBytes,
	}
}

func Addr(host string, port int) string { return net.JoinHostPort(host, strconv.Itoa(port)) }

func seconds(n int) time.Duration { return time.Duration(n) * time.Second }
