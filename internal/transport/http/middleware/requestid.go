package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"skillswap/internal/transport/http/ez"
)

const HeaderRequestID = "X-Request-ID"

// RequestID 放在 Trace 之后，rid 会记到当前 server span 上
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.Request.Header.Get(HeaderRequestID)
		if rid == "" {
			rid = uuid.NewString()
		}
		c.Writer.Header().Set(HeaderRequestID, rid)
		c.Set(ez.KeyRequestID, rid)
		trace.SpanFromContext(c.Request.Context()).SetAttributes(attribute.String("request.id", rid))
		c.Next()
	}
}
