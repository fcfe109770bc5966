// Package client implements the admin CRUD panel for client testimonials.
package client

import (
	"fmt"
	"mime/multipart"
	"strconv"
	"time"

	"github.com/flipperhq/flipper-backend/internal/models"
	"github.com/flipperhq/flipper-backend/internal/pkg/flash"
	"github.com/flipperhq/flipper-backend/internal/pkg/response"
	"github.com/flipperhq/flipper-backend/internal/pkg/upload"
	"github.com/flipperhq/flipper-backend/internal/store"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Only the name is mandatory; designation, description, and image are
// all optional on the client form.
type ClientFormDTO struct {
	Name        string                `form:"name" binding:"required"`
	Designation string                `form:"designation"`
	Description string                `form:"description"`
	Image       *multipart.FileHeader `form:"image"`
}

type clientView struct {
	ID          uint      `json:"id"`
	Image       *string   `json:"image"`
	Name        string    `json:"name"`
	Designation string    `json:"designation"`
	Description string    `json:"description"`
	Created     time.Time `json:"created"`
	Modified    time.Time `json:"modified"`
}

func toView(cl *models.ClientModel) clientView {
	return clientView{
		ID: cl.ID, Image: cl.Image, Name: cl.Name,
		Designation: cl.Designation, Description: cl.Description,
		Created: cl.CreatedAt, Modified: cl.UpdatedAt,
	}
}

type Service struct {
	db      *gorm.DB
	uploads *upload.Store
}

func NewService(db *gorm.DB, uploads *upload.Store) *Service {
	return &Service{db: db, uploads: uploads}
}

func (s *Service) ListAll() ([]models.ClientModel, error) {
	var items []models.ClientModel
	err := s.db.Order("created_at DESC").Find(&items).Error
	return items, err
}

func (s *Service) GetByID(id uint) (*models.ClientModel, error) {
	var cl models.ClientModel
	if err := s.db.First(&cl, "id = ?", id).Error; err != nil {
		return nil, store.Translate(err)
	}
	return &cl, nil
}

func (s *Service) Create(dto *ClientFormDTO) (*models.ClientModel, error) {
	name, err := s.uploads.SaveImage(dto.Image)
	if err != nil {
		return nil, err
	}

	cl := models.ClientModel{
		Name:        dto.Name,
		Designation: dto.Designation,
		Description: dto.Description,
	}
	if name != "" {
		cl.Image = &name
	}
	if err := s.db.Create(&cl).Error; err != nil {
		return nil, store.Translate(err)
	}
	return &cl, nil
}

// Update overwrites the text fields; the stored image is replaced only
// when the form carries a new file.
func (s *Service) Update(id uint, dto *ClientFormDTO) (*models.ClientModel, error) {
	cl, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	name, err := s.uploads.SaveImage(dto.Image)
	if err != nil {
		return nil, err
	}

	cl.Name = dto.Name
	cl.Designation = dto.Designation
	cl.Description = dto.Description
	if name != "" {
		cl.Image = &name
	}
	if err := s.db.Save(cl).Error; err != nil {
		return nil, store.Translate(err)
	}
	return cl, nil
}

func (s *Service) Delete(id uint) error {
	res := s.db.Delete(&models.ClientModel{}, "id = ?", id)
	if res.Error != nil {
		return store.Translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}

type Handler struct{ svc *Service }

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/admin/clients", authMW)
	g.GET("", h.list)
	g.GET("/new", h.newForm)
	g.POST("/new", h.create)
	g.GET("/:id/edit", h.editForm)
	g.POST("/:id/edit", h.update)
	g.POST("/:id/delete", h.delete)
}

func (h *Handler) list(c *gin.Context) {
	items, err := h.svc.ListAll()
	if err != nil {
		response.InternalError(c, err)
		return
	}
	out := make([]clientView, len(items))
	for i, cl := range items {
		out[i] = toView(&cl)
	}
	body := gin.H{"page": "admin_clients", "clients": out}
	if msg, ok := flash.Take(c); ok {
		body["flash"] = msg
	}
	response.OK(c, body)
}

// The client form views carry form_action so the shared template posts
// back to the right URL for both the new and edit flows.
func (h *Handler) newForm(c *gin.Context) {
	response.OK(c, gin.H{
		"page":        "admin_client_form",
		"form_action": "/admin/clients/new",
	})
}

func (h *Handler) create(c *gin.Context) {
	var dto ClientFormDTO
	if err := c.ShouldBind(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if _, err := h.svc.Create(&dto); err != nil {
		response.InternalError(c, err)
		return
	}
	flash.Set(c, "Client created.")
	response.SeeOther(c, "/admin/clients")
}

func (h *Handler) editForm(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	cl, err := h.svc.GetByID(id)
	if err != nil {
		if store.IsNotFound(err) {
			response.NotFound(c)
			return
		}
		response.InternalError(c, err)
		return
	}
	response.OK(c, gin.H{
		"page":        "admin_client_form",
		"form_action": fmt.Sprintf("/admin/clients/%d/edit", cl.ID),
		"client":      toView(cl),
	})
}

func (h *Handler) update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var dto ClientFormDTO
	if err := c.ShouldBind(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if _, err := h.svc.Update(id, &dto); err != nil {
		if store.IsNotFound(err) {
			response.NotFound(c)
			return
		}
		response.InternalError(c, err)
		return
	}
	flash.Set(c, "Client updated.")
	response.SeeOther(c, "/admin/clients")
}

func (h *Handler) delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.svc.Delete(id); err != nil {
		if store.IsNotFound(err) {
			response.NotFound(c)
			return
		}
		response.InternalError(c, err)
		return
	}
	flash.Set(c, "Client deleted.")
	response.SeeOther(c, "/admin/clients")
}

func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		response.NotFound(c)
		return 0, false
	}
	return uint(id), true
}
