package http

import (
	"github.com/gin-gonic/gin"

	"github.com/mrlokans/catalog/internal/auth"
	"github.com/mrlokans/catalog/internal/config"
	"github.com/mrlokans/catalog/internal/logger"
)

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	log := cfg.Logger
	if log == nil {
		log = logger.Nop()
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestID())
	router.Use(RequestLogger(log))
	router.Use(auth.SecurityHeadersMiddleware())

	authMiddleware := cfg.AuthMiddleware
	if authMiddleware == nil {
		authMiddleware = auth.NewMiddleware(nil, config.Auth{Mode: config.AuthModeNone}, log)
	}
	router.Use(authMiddleware.Handler())

	if cfg.DemoMiddleware != nil && cfg.DemoMiddleware.IsEnabled() {
		router.Use(cfg.DemoMiddleware.InjectContext())
		router.Use(cfg.DemoMiddleware.Handler())
	}

	// Health endpoints
	health := NewHealthController(cfg.Database, cfg.Version)
	router.GET("/health", health.Status)
	router.GET("/ping", health.Ping)

	api := router.Group("/api")

	libraryController := NewLibraryController(cfg.Library, cfg.Bookmarks, cfg.Importer, cfg.Reorganizer, log)
	api.GET("/library", libraryController.ListAll)
	api.GET("/library/:id", libraryController.Get)
	api.GET("/self/library", libraryController.ListSelf)
	api.POST("/self/library", libraryController.Create)
	api.POST("/self/library/import_bookmarks", libraryController.ImportBookmarks)
	api.PUT("/self/library/update_all", libraryController.UpdateAll)

	accessControlController := NewAccessControlController(cfg.AccessControl, log)
	api.GET("/access_control", accessControlController.List)
	api.GET("/access_control/:title", accessControlController.Get)

	if cfg.Audit != nil {
		auditController := NewAuditController(cfg.Audit, log)
		api.GET("/self/audit", auditController.GetAuditEvents)
	}

	if cfg.Tasks != nil {
		tasksController := NewTasksController(cfg.Tasks, log)
		api.POST("/self/library/warm", tasksController.WarmLibrary)
		api.GET("/tasks/:id", tasksController.GetTaskStatus)
	}

	if cfg.Listings != nil {
		iwcController := NewIWCController(cfg.Listings, cfg.Version, log)
		iwc := router.Group("/iwc")
		iwc.GET("/application", iwcController.ListApplications)
		iwc.GET("/application/:id", iwcController.GetApplication)
		iwc.GET("/system", iwcController.System)
	}

	return router
}
