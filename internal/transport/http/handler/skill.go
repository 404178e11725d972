package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"skillswap/internal/domain"
	"skillswap/internal/service"
	"skillswap/internal/transport/http/ez"
)

type Skill struct {
	Catalog *service.Catalog
	Market  *service.Marketplace
}

func (Skill) Priority() int { return 30 }

type createdOut struct {
	ID int64 `json:"id"`
}

func (h Skill) MountAPI(rt ez.Routes) {
	ez.RegisterAction(rt.Public, ez.Action[struct{}, []domain.SkillView]{
		Method: http.MethodGet,
		Path:   "/skills",
		Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) ([]domain.SkillView, error) {
			return h.Market.ListSkills(c.Request.Context())
		},
	})

	ez.RegisterAction(rt.Auth, ez.Action[domain.CreateSkillInput, createdOut]{
		Method: http.MethodPost,
		Path:   "/skills",
		Binder: ez.BindJSON,
		Auth:   true,
		Handler: func(c *gin.Context, in *domain.CreateSkillInput) (createdOut, error) {
			id, err := h.Catalog.Create(c.Request.Context(), ez.Actor(c), *in)
			return createdOut{ID: id}, err
		},
	})

	ez.RegisterAction(rt.Auth, ez.Action[struct{}, createdOut]{
		Method: http.MethodDelete,
		Path:   "/skills/:id",
		Binder: ez.BindNone,
		Auth:   true,
		Handler: func(c *gin.Context, _ *struct{}) (createdOut, error) {
			id, err := ez.ParamID(c, "id")
			if err != nil {
				return createdOut{}, err
			}
			return createdOut{ID: id}, h.Catalog.Delete(c.Request.Context(), ez.Actor(c), id)
		},
	})

	ez.RegisterAction(rt.Public, ez.Action[struct{}, []domain.Skill]{
		Method: http.MethodGet,
		Path:   "/skills/user/:user_id",
		Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) ([]domain.Skill, error) {
			uid, err := ez.ParamID(c, "user_id")
			if err != nil {
				return nil, err
			}
			return h.Catalog.ListByOwner(c.Request.Context(), uid)
		},
	})
}
