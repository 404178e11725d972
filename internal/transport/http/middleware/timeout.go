package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	resp "skillswap/internal/transport/http/response"
)

// Timeout 下游通过 c.Request.Context() 感知截止时间
// 到期时若还没写出响应，补一个 504 信封
func Timeout(d time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), d)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)

		c.Next()

		if c.Writer.Written() || ctx.Err() != context.DeadlineExceeded {
			return
		}
		c.AbortWithStatusJSON(http.StatusOK, resp.Error(resp.CodeTimeout, "request timed out"))
	}
}
