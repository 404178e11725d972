package middleware

import (
	"slices"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

// Trace 按全局 propagator 提取上游 trace context，每个请求一个 server span
// skip 中的路由不建 span
func Trace(service string, skip ...string) gin.HandlerFunc {
	return otelgin.Middleware(service,
		otelgin.WithGinFilter(func(c *gin.Context) bool {
			return !slices.Contains(skip, c.FullPath())
		}),
	)
}
