// Package dashboard serves the admin landing page with content counts.
package dashboard

import (
	"github.com/flipperhq/flipper-backend/internal/models"
	"github.com/flipperhq/flipper-backend/internal/pkg/flash"
	"github.com/flipperhq/flipper-backend/internal/pkg/response"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type countsView struct {
	Projects    int64 `json:"projects"`
	Clients     int64 `json:"clients"`
	Contacts    int64 `json:"contacts"`
	Subscribers int64 `json:"subscribers"`
}

type Service struct{ db *gorm.DB }

func NewService(db *gorm.DB) *Service { return &Service{db: db} }

func (s *Service) Counts() (countsView, error) {
	var out countsView
	for _, row := range []struct {
		model interface{}
		dst   *int64
	}{
		{&models.ProjectModel{}, &out.Projects},
		{&models.ClientModel{}, &out.Clients},
		{&models.ContactMessageModel{}, &out.Contacts},
		{&models.SubscriberModel{}, &out.Subscribers},
	} {
		if err := s.db.Model(row.model).Count(row.dst).Error; err != nil {
			return countsView{}, err
		}
	}
	return out, nil
}

type Handler struct{ svc *Service }

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	rg.GET("/admin", authMW, h.index)
}

func (h *Handler) index(c *gin.Context) {
	counts, err := h.svc.Counts()
	if err != nil {
		response.InternalError(c, err)
		return
	}
	body := gin.H{"page": "admin_dashboard", "counts": counts}
	if msg, ok := flash.Take(c); ok {
		body["flash"] = msg
	}
	response.OK(c, body)
}
