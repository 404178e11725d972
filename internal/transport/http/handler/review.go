package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"skillswap/internal/domain"
	"skillswap/internal/service"
	"skillswap/internal/transport/http/ez"
)

type Review struct {
	Reviews *service.Reviews
	Market  *service.Marketplace
}

func (Review) Priority() int { return 50 }

func (h Review) MountAPI(rt ez.Routes) {
	ez.RegisterAction(rt.Auth, ez.Action[domain.CreateReviewInput, createdOut]{
		Method: http.MethodPost,
		Path:   "/reviews",
		Binder: ez.BindJSON,
		Auth:   true,
		Handler: func(c *gin.Context, in *domain.CreateReviewInput) (createdOut, error) {
			id, err := h.Reviews.Create(c.Request.Context(), ez.Actor(c), *in)
			return createdOut{ID: id}, err
		},
	})

	ez.RegisterAction(rt.Public, ez.Action[struct{}, []domain.ReviewView]{
		Method: http.MethodGet,
		Path:   "/reviews/:user_id",
		Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) ([]domain.ReviewView, error) {
			uid, err := ez.ParamID(c, "user_id")
			if err != nil {
				return nil, err
			}
			return h.Market.ListReviewsFor(c.Request.Context(), uid)
		},
	})

	ez.RegisterAction(rt.Public, ez.Action[struct{}, domain.RatingSummary]{
		Method: http.MethodGet,
		Path:   "/reviews/:user_id/summary",
		Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (domain.RatingSummary, error) {
			uid, err := ez.ParamID(c, "user_id")
			if err != nil {
				return domain.RatingSummary{}, err
			}
			return h.Market.RatingSummary(c.Request.Context(), uid)
		},
	})
}
