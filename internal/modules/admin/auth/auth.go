// Package auth implements the admin login and logout flow.
package auth

import (
	"errors"
	"time"

	"github.com/flipperhq/flipper-backend/internal/middleware"
	"github.com/flipperhq/flipper-backend/internal/models"
	"github.com/flipperhq/flipper-backend/internal/pkg/flash"
	"github.com/flipperhq/flipper-backend/internal/pkg/password"
	"github.com/flipperhq/flipper-backend/internal/pkg/response"
	sessionpkg "github.com/flipperhq/flipper-backend/internal/pkg/session"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// failureDelay slows down credential guessing on failed logins.
var failureDelay = 3 * time.Second

var errInvalidCredentials = errors.New("invalid credentials")

type LoginDTO struct {
	Username string `form:"username" binding:"required"`
	Password string `form:"password" binding:"required"`
}

type Service struct{ db *gorm.DB }

func NewService(db *gorm.DB) *Service { return &Service{db: db} }

// Login checks credentials and issues a session-bound JWT. Unknown
// usernames and wrong passwords both come back as errInvalidCredentials.
func (s *Service) Login(dto *LoginDTO, ip, ua string) (string, error) {
	var u models.AdminUserModel
	err := s.db.Select("id, password").
		Where("username = ?", dto.Username).First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", errInvalidCredentials
		}
		return "", err
	}
	if !password.Verify(u.Password, dto.Password) {
		return "", errInvalidCredentials
	}

	token, _, err := sessionpkg.Issue(s.db, u.ID, ip, ua, sessionpkg.DefaultTTL)
	return token, err
}

func (s *Service) Logout(userID, sessionID uint) error {
	err := sessionpkg.Revoke(s.db, userID, sessionID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	return err
}

type Handler struct{ svc *Service }

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	rg.GET("/admin/login", h.loginForm)
	rg.POST("/admin/login", h.login)
	rg.POST("/admin/logout", authMW, h.logout)
}

func (h *Handler) loginForm(c *gin.Context) {
	body := gin.H{"page": "admin_login"}
	if msg, ok := flash.Take(c); ok {
		body["flash"] = msg
	}
	response.OK(c, body)
}

func (h *Handler) login(c *gin.Context) {
	var dto LoginDTO
	if err := c.ShouldBind(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	token, err := h.svc.Login(&dto, c.ClientIP(), c.Request.UserAgent())
	if err != nil {
		if errors.Is(err, errInvalidCredentials) {
			time.Sleep(failureDelay)
			response.Unauthorized(c, "Invalid credentials")
			return
		}
		response.InternalError(c, err)
		return
	}

	c.SetCookie(middleware.TokenCookieName, token,
		int(sessionpkg.DefaultTTL.Seconds()), "/", "", false, true)
	flash.Set(c, "Welcome back!")
	response.SeeOther(c, "/admin")
}

func (h *Handler) logout(c *gin.Context) {
	if err := h.svc.Logout(middleware.CurrentUserID(c), middleware.CurrentSessionID(c)); err != nil {
		response.InternalError(c, err)
		return
	}
	c.SetCookie(middleware.TokenCookieName, "", -1, "/", "", false, true)
	flash.Set(c, "You have been logged out.")
	response.SeeOther(c, middleware.LoginPath)
}
