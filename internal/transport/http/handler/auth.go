package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"skillswap/internal/domain"
	"skillswap/internal/service"
	"skillswap/internal/transport/http/ez"
)

// Auth /auth/*：注册、登录、注销、当前用户
type Auth struct {
	Identity *service.Identity
}

func (Auth) Priority() int { return 10 }

type registerReq struct {
	Email    string `json:"email"     binding:"required"`
	Password string `json:"password"  binding:"required"`
	FullName string `json:"full_name"`
	Location string `json:"location"`
}

type loginReq struct {
	Email    string `json:"email"    binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h Auth) MountAPI(rt ez.Routes) {
	ez.RegisterAction(rt.Public, ez.Action[registerReq, service.AuthResult]{
		Method: http.MethodPost,
		Path:   "/auth/register",
		Binder: ez.BindJSON,
		Handler: func(c *gin.Context, in *registerReq) (service.AuthResult, error) {
			return h.Identity.Register(c.Request.Context(), service.RegisterInput{
				Email: in.Email, Password: in.Password, FullName: in.FullName, Location: in.Location,
			})
		},
	})

	ez.RegisterAction(rt.Public, ez.Action[loginReq, service.AuthResult]{
		Method: http.MethodPost,
		Path:   "/auth/login",
		Binder: ez.BindJSON,
		Handler: func(c *gin.Context, in *loginReq) (service.AuthResult, error) {
			return h.Identity.Login(c.Request.Context(), in.Email, in.Password)
		},
	})

	ez.RegisterAction(rt.Auth, ez.Action[struct{}, struct{}]{
		Method: http.MethodPost,
		Path:   "/auth/logout",
		Binder: ez.BindNone,
		Auth:   true,
		Handler: func(c *gin.Context, _ *struct{}) (struct{}, error) {
			return struct{}{}, h.Identity.Logout(c.Request.Context(), ez.Claims(c))
		},
	})

	ez.RegisterAction(rt.Auth, ez.Action[struct{}, *domain.User]{
		Method: http.MethodGet,
		Path:   "/auth/me",
		Binder: ez.BindNone,
		Auth:   true,
		Handler: func(c *gin.Context, _ *struct{}) (*domain.User, error) {
			return h.Identity.Profile(c.Request.Context(), ez.Actor(c))
		},
	})
}
