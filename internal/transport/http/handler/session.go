package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"skillswap/internal/domain"
	"skillswap/internal/service"
	"skillswap/internal/transport/http/ez"
)

type Session struct {
	Booking *service.Booking
	Market  *service.Marketplace
}

func (Session) Priority() int { return 40 }

type statusReq struct {
	Status string `json:"status"`
}

type statusOut struct {
	ID     int64  `json:"id"`
	Status string `json:"status"`
}

func (h Session) MountAPI(rt ez.Routes) {
	ez.RegisterAction(rt.Auth, ez.Action[struct{}, []domain.SessionView]{
		Method: http.MethodGet,
		Path:   "/sessions",
		Binder: ez.BindNone,
		Auth:   true,
		Handler: func(c *gin.Context, _ *struct{}) ([]domain.SessionView, error) {
			return h.Market.ListSessions(c.Request.Context(), ez.Actor(c))
		},
	})

	ez.RegisterAction(rt.Auth, ez.Action[domain.CreateSessionInput, createdOut]{
		Method: http.MethodPost,
		Path:   "/sessions",
		Binder: ez.BindJSON,
		Auth:   true,
		// learner_id 即便传了也会被忽略
		Handler: func(c *gin.Context, in *domain.CreateSessionInput) (createdOut, error) {
			id, err := h.Booking.Create(c.Request.Context(), ez.Actor(c), *in)
			return createdOut{ID: id}, err
		},
	})

	ez.RegisterAction(rt.Auth, ez.Action[statusReq, statusOut]{
		Method: http.MethodPut,
		Path:   "/sessions/:id/status",
		Binder: ez.BindJSON,
		Auth:   true,
		Handler: func(c *gin.Context, in *statusReq) (statusOut, error) {
			id, err := ez.ParamID(c, "id")
			if err != nil {
				return statusOut{}, err
			}
			if err := h.Booking.UpdateStatus(c.Request.Context(), ez.Actor(c), id, in.Status); err != nil {
				return statusOut{}, err
			}
			return statusOut{ID: id, Status: in.Status}, nil
		},
	})
}
