package ez

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"skillswap/internal/core/auth"
	"skillswap/internal/domain"
)

const (
	KeyActor     = "actor"
	KeyClaims    = "claims"
	KeyUserID    = "userId"
	KeyRequestID = "rid"
)

// SetActor 由鉴权中间件调用
func SetActor(c *gin.Context, a *domain.Actor, claims *auth.Claims) {
	c.Set(KeyActor, a)
	c.Set(KeyClaims, claims)
	c.Set(KeyUserID, strconv.FormatInt(a.ID, 10))
}

// Actor 当前登录用户；未登录为 nil
func Actor(c *gin.Context) *domain.Actor {
	v, ok := c.Get(KeyActor)
	if !ok {
		return nil
	}
	a, _ := v.(*domain.Actor)
	return a
}

func Claims(c *gin.Context) *auth.Claims {
	v, ok := c.Get(KeyClaims)
	if !ok {
		return nil
	}
	cl, _ := v.(*auth.Claims)
	return cl
}
