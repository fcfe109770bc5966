package app

import (
	"net/http"

	"github.com/flipperhq/flipper-backend/internal/middleware"
	adminauth "github.com/flipperhq/flipper-backend/internal/modules/admin/auth"
	"github.com/flipperhq/flipper-backend/internal/modules/admin/client"
	"github.com/flipperhq/flipper-backend/internal/modules/admin/dashboard"
	"github.com/flipperhq/flipper-backend/internal/modules/admin/inbox"
	"github.com/flipperhq/flipper-backend/internal/modules/admin/project"
	"github.com/flipperhq/flipper-backend/internal/modules/site"
	"github.com/flipperhq/flipper-backend/internal/pkg/response"
	"github.com/flipperhq/flipper-backend/internal/pkg/upload"
	"github.com/gin-gonic/gin"
)

const uploadsURLPrefix = "/static/uploads"

func (a *App) registerRoutes() {
	r := a.router
	db := a.db
	authMW := middleware.RequireAdmin(db)

	r.NoRoute(func(c *gin.Context) {
		response.NotFound(c)
	})
	r.NoMethod(func(c *gin.Context) {
		response.MethodNotAllowed(c)
	})

	r.GET("/health", a.health)
	r.Static(uploadsURLPrefix, a.cfg.UploadDir())

	uploads := upload.NewStore(a.cfg.UploadDir())

	root := r.Group("")
	site.NewHandler(site.NewService(db)).RegisterRoutes(root)
	adminauth.NewHandler(adminauth.NewService(db)).RegisterRoutes(root, authMW)
	dashboard.NewHandler(dashboard.NewService(db)).RegisterRoutes(root, authMW)
	project.NewHandler(project.NewService(db, uploads)).RegisterRoutes(root, authMW)
	client.NewHandler(client.NewService(db, uploads)).RegisterRoutes(root, authMW)
	inbox.NewHandler(inbox.NewService(db)).RegisterRoutes(root, authMW)
}

func (a *App) health(c *gin.Context) {
	sqlDB, err := a.db.DB()
	if err == nil {
		err = sqlDB.Ping()
	}
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "database": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
