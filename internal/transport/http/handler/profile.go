package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"skillswap/internal/domain"
	"skillswap/internal/service"
	"skillswap/internal/transport/http/ez"
)

type Profile struct {
	Identity *service.Identity
}

func (Profile) Priority() int { return 20 }

func (h Profile) MountAPI(rt ez.Routes) {
	ez.RegisterAction(rt.Auth, ez.Action[struct{}, *domain.User]{
		Method: http.MethodGet,
		Path:   "/profile",
		Binder: ez.BindNone,
		Auth:   true,
		Handler: func(c *gin.Context, _ *struct{}) (*domain.User, error) {
			return h.Identity.Profile(c.Request.Context(), ez.Actor(c))
		},
	})

	// 只更新出现在 body 里的字段，返回更新后的资料
	ez.RegisterAction(rt.Auth, ez.Action[service.ProfileInput, *domain.User]{
		Method: http.MethodPut,
		Path:   "/profile",
		Binder: ez.BindJSON,
		Auth:   true,
		Handler: func(c *gin.Context, in *service.ProfileInput) (*domain.User, error) {
			ctx, me := c.Request.Context(), ez.Actor(c)
			if err := h.Identity.UpdateProfile(ctx, me, *in); err != nil {
				return nil, err
			}
			return h.Identity.Profile(ctx, me)
		},
	})
}
