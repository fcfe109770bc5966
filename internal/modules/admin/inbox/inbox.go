// Package inbox gives admins read-only views over contact messages and
// newsletter subscribers.
package inbox

import (
	"time"

	"github.com/flipperhq/flipper-backend/internal/models"
	"github.com/flipperhq/flipper-backend/internal/pkg/response"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type contactView struct {
	ID       uint      `json:"id"`
	FullName string    `json:"full_name"`
	Email    string    `json:"email"`
	Mobile   string    `json:"mobile"`
	City     string    `json:"city"`
	Created  time.Time `json:"created"`
}

type subscriberView struct {
	ID      uint      `json:"id"`
	Email   string    `json:"email"`
	Created time.Time `json:"created"`
}

type Service struct{ db *gorm.DB }

func NewService(db *gorm.DB) *Service { return &Service{db: db} }

func (s *Service) ListContacts() ([]models.ContactMessageModel, error) {
	var items []models.ContactMessageModel
	err := s.db.Order("created_at DESC").Find(&items).Error
	return items, err
}

func (s *Service) ListSubscribers() ([]models.SubscriberModel, error) {
	var items []models.SubscriberModel
	err := s.db.Order("created_at DESC").Find(&items).Error
	return items, err
}

type Handler struct{ svc *Service }

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/admin", authMW)
	g.GET("/contacts", h.contacts)
	g.GET("/subscribers", h.subscribers)
}

func (h *Handler) contacts(c *gin.Context) {
	items, err := h.svc.ListContacts()
	if err != nil {
		response.InternalError(c, err)
		return
	}
	out := make([]contactView, len(items))
	for i, m := range items {
		out[i] = contactView{
			ID: m.ID, FullName: m.FullName, Email: m.Email,
			Mobile: m.Mobile, City: m.City, Created: m.CreatedAt,
		}
	}
	response.OK(c, gin.H{"page": "admin_contacts", "contacts": out})
}

func (h *Handler) subscribers(c *gin.Context) {
	items, err := h.svc.ListSubscribers()
	if err != nil {
		response.InternalError(c, err)
		return
	}
	out := make([]subscriberView, len(items))
	for i, sub := range items {
		out[i] = subscriberView{ID: sub.ID, Email: sub.Email, Created: sub.CreatedAt}
	}
	response.OK(c, gin.H{"page": "admin_subscribers", "subscribers": out})
}
