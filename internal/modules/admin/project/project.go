// Package project implements the admin CRUD panel for portfolio projects.
package project

import (
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

type ProjectFormDTO struct {
	Name        string                `form:"name"        binding:"required"`
	Description string                `form:"description" binding:"required"`
	Image       *multipart.FileHeader `form:"image"`
}

type projectView struct {
	ID          uint      `json:"id"`
	Image       *string   `json:"image"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Created     time.Time `json:"created"`
	Modified    time.Time `json:"modified"`
}

func toView(p *models.ProjectModel) projectView {
	return projectView{
		ID: p.ID, Image: p.Image, Name: p.Name, Description: p.Description,
		Created: p.CreatedAt, Modified: p.UpdatedAt,
	}
}

type Service struct {
	db      *gorm.DB
	uploads *upload.Store
}

func NewService(db *gorm.DB, uploads *upload.Store) *Service {
	return &Service{db: db, uploads: uploads}
}

func (s *Service) ListAll() ([]models.ProjectModel, error) {
	var items []models.ProjectModel
	err := s.db.Order("created_at DESC").Find(&items).Error
	return items, err
}

func (s *Service) GetByID(id uint) (*models.ProjectModel, error) {
	var p models.ProjectModel
	if err := s.db.First(&p, "id = ?", id).Error; err != nil {
		return nil, store.Translate(err)
	}
	return &p, nil
}

func (s *Service) Create(dto *ProjectFormDTO) (*models.ProjectModel, error) {
	name, err := s.uploads.SaveImage(dto.Image)
	if err != nil {
		return nil, err
	}

	p := models.ProjectModel{Name: dto.Name, Description: dto.Description}
	if name != "" {
		p.Image = &name
	}
	if err := s.db.Create(&p).Error; err != nil {
		return nil, store.Translate(err)
	}
	return &p, nil
}

// Update overwrites name and description; the stored image is replaced
// only when the form carries a new file.
func (s *Service) Update(id uint, dto *ProjectFormDTO) (*models.ProjectModel, error) {
	p, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	name, err := s.uploads.SaveImage(dto.Image)
	if err != nil {
		return nil, err
	}

	p.Name = dto.Name
	p.Description = dto.Description
	if name != "" {
		p.Image = &name
	}
	if err := s.db.Save(p).Error; err != nil {
		return nil, store.Translate(err)
	}
	return p, nil
}

func (s *Service) Delete(id uint) error {
	res := s.db.Delete(&models.ProjectModel{}, "id = ?", id)
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
	g := rg.Group("/admin/projects", authMW)
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
	out := make([]projectView, len(items))
	for i, p := range items {
		out[i] = toView(&p)
	}
	body := gin.H{"page": "admin_projects", "projects": out}
	if msg, ok := flash.Take(c); ok {
		body["flash"] = msg
	}
	response.OK(c, body)
}

func (h *Handler) newForm(c *gin.Context) {
	response.OK(c, gin.H{"page": "admin_project_form"})
}

func (h *Handler) create(c *gin.Context) {
	var dto ProjectFormDTO
	if err := c.ShouldBind(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if _, err := h.svc.Create(&dto); err != nil {
		response.InternalError(c, err)
		return
	}
	flash.Set(c, "Project created.")
	response.SeeOther(c, "/admin/projects")
}

func (h *Handler) editForm(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	p, err := h.svc.GetByID(id)
	if err != nil {
		if store.IsNotFound(err) {
			response.NotFound(c)
			return
		}
		response.InternalError(c, err)
		return
	}
	response.OK(c, gin.H{"page": "admin_project_form", "project": toView(p)})
}

func (h *Handler) update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var dto ProjectFormDTO
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
	flash.Set(c, "Project updated.")
	response.SeeOther(c, "/admin/projects")
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
	flash.Set(c, "Project deleted.")
	response.SeeOther(c, "/admin/projects")
}

func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		response.NotFound(c)
		return 0, false
	}
	return uint(id), true
}
