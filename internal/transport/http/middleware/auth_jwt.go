package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"skillswap/internal/core/auth"
	"skillswap/internal/domain"
	"skillswap/internal/transport/http/ez"
	resp "skillswap/internal/transport/http/response"
)

type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*domain.Actor, *auth.Claims, error)
}

// AuthJWT 校验 Bearer token，成功后写入 actor/claims/userId
func AuthJWT(a Authenticator, l *zap.Logger) gin.HandlerFunc {
	if l == nil {
		l = zap.NewNop()
	}
	return func(c *gin.Context) {
		ah := c.GetHeader("Authorization")
		if !strings.HasPrefix(ah, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusOK, resp.Error(resp.CodeUnauthorized, "missing token"))
			return
		}
		actor, claims, err := a.Authenticate(c.Request.Context(), strings.TrimPrefix(ah, "Bearer "))
		if err != nil {
			if errors.Is(err, domain.ErrNotAuthenticated) {
				c.AbortWithStatusJSON(http.StatusOK, resp.Error(resp.CodeUnauthorized, "invalid token"))
				return
			}
			// 注销表不可用时不能放行
			l.Error("authenticate failed", zap.String("rid", c.GetString(ez.KeyRequestID)), zap.Error(err))
			c.AbortWithStatusJSON(http.StatusOK, resp.Error(resp.CodeServerError, "internal error"))
			return
		}
		ez.SetActor(c, actor, claims)
		c.Next()
	}
}
