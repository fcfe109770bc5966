// Package site serves the public marketing pages: home, project and
// client listings, the contact form, and newsletter signup.
package site

import (
	"time"

	"github.com/flipperhq/flipper-backend/internal/models"
	"github.com/flipperhq/flipper-backend/internal/pkg/flash"
	"github.com/flipperhq/flipper-backend/internal/pkg/response"
	"github.com/flipperhq/flipper-backend/internal/store"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ContactDTO struct {
	FullName string `form:"full_name" binding:"required"`
	Email    string `form:"email"     binding:"required,email"`
	Mobile   string `form:"mobile"`
	City     string `form:"city"`
}

type SubscribeDTO struct {
	Email string `form:"email" binding:"required,email"`
}

type projectView struct {
	ID          uint      `json:"id"`
	Image       *string   `json:"image"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Created     time.Time `json:"created"`
}

type clientView struct {
	ID          uint      `json:"id"`
	Image       *string   `json:"image"`
	Name        string    `json:"name"`
	Designation string    `json:"designation"`
	Description string    `json:"description"`
	Created     time.Time `json:"created"`
}

func toProjectView(p *models.ProjectModel) projectView {
	return projectView{
		ID: p.ID, Image: p.Image, Name: p.Name,
		Description: p.Description, Created: p.CreatedAt,
	}
}

func toClientView(cl *models.ClientModel) clientView {
	return clientView{
		ID: cl.ID, Image: cl.Image, Name: cl.Name,
		Designation: cl.Designation, Description: cl.Description,
		Created: cl.CreatedAt,
	}
}

type Service struct{ db *gorm.DB }

func NewService(db *gorm.DB) *Service { return &Service{db: db} }

func (s *Service) ListProjects() ([]models.ProjectModel, error) {
	var items []models.ProjectModel
	err := s.db.Order("created_at DESC").Find(&items).Error
	return items, err
}

func (s *Service) ListClients() ([]models.ClientModel, error) {
	var items []models.ClientModel
	err := s.db.Order("created_at DESC").Find(&items).Error
	return items, err
}

func (s *Service) SaveContact(dto *ContactDTO) error {
	msg := models.ContactMessageModel{
		FullName: dto.FullName,
		Email:    dto.Email,
		Mobile:   dto.Mobile,
		City:     dto.City,
	}
	return store.Translate(s.db.Create(&msg).Error)
}

// Subscribe records a newsletter signup. A repeat signup surfaces as
// store.ErrConflict so the caller can tell it apart from a new one.
func (s *Service) Subscribe(email string) error {
	sub := models.SubscriberModel{Email: email}
	return store.Translate(s.db.Create(&sub).Error)
}

type Handler struct{ svc *Service }

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/", h.home)
	rg.GET("/projects", h.projects)
	rg.GET("/clients", h.clients)
	rg.GET("/contact", h.contactForm)
	rg.POST("/contact", h.contactSubmit)
	rg.POST("/subscribe", h.subscribe)
}

func (h *Handler) home(c *gin.Context) {
	projects, err := h.svc.ListProjects()
	if err != nil {
		response.InternalError(c, err)
		return
	}
	clients, err := h.svc.ListClients()
	if err != nil {
		response.InternalError(c, err)
		return
	}

	pv := make([]projectView, len(projects))
	for i, p := range projects {
		pv[i] = toProjectView(&p)
	}
	cv := make([]clientView, len(clients))
	for i, cl := range clients {
		cv[i] = toClientView(&cl)
	}

	body := gin.H{"page": "home", "projects": pv, "clients": cv}
	if msg, ok := flash.Take(c); ok {
		body["flash"] = msg
	}
	response.OK(c, body)
}

func (h *Handler) projects(c *gin.Context) {
	items, err := h.svc.ListProjects()
	if err != nil {
		response.InternalError(c, err)
		return
	}
	out := make([]projectView, len(items))
	for i, p := range items {
		out[i] = toProjectView(&p)
	}
	response.OK(c, out)
}

func (h *Handler) clients(c *gin.Context) {
	items, err := h.svc.ListClients()
	if err != nil {
		response.InternalError(c, err)
		return
	}
	out := make([]clientView, len(items))
	for i, cl := range items {
		out[i] = toClientView(&cl)
	}
	response.OK(c, out)
}

func (h *Handler) contactForm(c *gin.Context) {
	body := gin.H{"page": "contact"}
	if msg, ok := flash.Take(c); ok {
		body["flash"] = msg
	}
	response.OK(c, body)
}

func (h *Handler) contactSubmit(c *gin.Context) {
	var dto ContactDTO
	if err := c.ShouldBind(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if err := h.svc.SaveContact(&dto); err != nil {
		response.InternalError(c, err)
		return
	}
	flash.Set(c, "Thank you for reaching out. We will get back to you soon.")
	response.SeeOther(c, "/contact")
}

func (h *Handler) subscribe(c *gin.Context) {
	var dto SubscribeDTO
	if err := c.ShouldBind(&dto); err != nil {
		flash.Set(c, "Please enter a valid email address.")
		response.SeeOther(c, "/")
		return
	}
	switch err := h.svc.Subscribe(dto.Email); {
	case err == nil:
		flash.Set(c, "Thanks for subscribing!")
	case store.IsConflict(err):
		flash.Set(c, "You are already subscribed.")
	default:
		response.InternalError(c, err)
		return
	}
	response.SeeOther(c, "/")
}
