// Package entrypoint wires the catalog service together and runs it.
package entrypoint

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/catalog/internal/accesscontrol"
	"github.com/mrlokans/catalog/internal/audit"
	"github.com/mrlokans/catalog/internal/auth"
	"github.com/mrlokans/catalog/internal/cache"
	"github.com/mrlokans/catalog/internal/config"
	"github.com/mrlokans/catalog/internal/database"
	acrepo "github.com/mrlokans/catalog/internal/database/accesscontrol"
	auditrepo "github.com/mrlokans/catalog/internal/database/audit"
	librarydb "github.com/mrlokans/catalog/internal/database/library"
	"github.com/mrlokans/catalog/internal/database/listings"
	"github.com/mrlokans/catalog/internal/database/notifications"
	"github.com/mrlokans/catalog/internal/database/profiles"
	"github.com/mrlokans/catalog/internal/demo"
	http_controllers "github.com/mrlokans/catalog/internal/http"
	"github.com/mrlokans/catalog/internal/library"
	"github.com/mrlokans/catalog/internal/logger"
	"github.com/mrlokans/catalog/internal/scheduler"
	"github.com/mrlokans/catalog/internal/tasks"
)

// App holds every wired component. Build creates it, Close releases it.
type App struct {
	Config *config.Config
	Log    logger.Logger

	DB    *database.Database
	Cache cache.Store
	Audit *audit.Service
	Tasks *tasks.Client // nil when TASKS_ENABLED=false
	Auth  *auth.Service

	Listings      *listings.Repository
	Library       *library.ReadCache
	Bookmarks     *library.EntryFactory
	Importer      *library.Importer
	Reorganizer   *library.Reorganizer
	AccessControl *accesscontrol.ReadCache
}

// Build opens the database and cache and wires the library services.
func Build(cfg *config.Config, log logger.Logger) (*App, error) {
	db, err := database.NewDatabase(cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	store, err := cache.New(cfg, log)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize cache: %w", err)
	}

	app := &App{
		Config: cfg,
		Log:    log,
		DB:     db,
		Cache:  store,
		Audit:  audit.NewService(auditrepo.NewRepository(db.DB), log.With(logger.String("component", "audit"))),
	}

	if cfg.Tasks.Enabled {
		app.Tasks, err = tasks.NewClient(cfg.Database.Path, tasks.FromConfig(cfg.Tasks), log.With(logger.String("component", "tasks")))
		if err != nil {
			app.Close()
			return nil, fmt.Errorf("failed to initialize task queue: %w", err)
		}
	}

	entries := librarydb.NewRepository(db.DB)
	listingsRepo := listings.NewRepository(db.DB)
	profilesRepo := profiles.NewRepository(db.DB)
	libraryLog := log.With(logger.String("component", "library"))

	var invalidator library.Invalidator = library.KeepCached{}
	if cfg.Cache.InvalidateOnWrite {
		var warmer library.Warmer
		if app.Tasks != nil {
			warmer = app.Tasks
		}
		invalidator = library.NewPurgeOnWrite(store, warmer, libraryLog)
		log.Info("Library writes purge cached reads")
	}

	opts := []library.Option{
		library.WithRecorder(app.Audit),
		library.WithInvalidator(invalidator),
	}

	app.Listings = listingsRepo
	app.Library = library.NewReadCache(store, entries, libraryLog)
	app.Bookmarks = library.NewEntryFactory(listingsRepo, profilesRepo, entries, libraryLog, opts...)
	app.Importer = library.NewImporter(app.Bookmarks, notifications.NewRepository(db.DB), libraryLog)
	app.Reorganizer = library.NewReorganizer(listingsRepo, entries, opts...)
	app.AccessControl = accesscontrol.NewReadCache(store, acrepo.NewRepository(db.DB), log)
	app.Auth = auth.NewService(profilesRepo, cfg.Auth)

	if app.Tasks != nil {
		taskLog := log.With(logger.String("component", "tasks"))
		app.Tasks.Register(
			tasks.NewWarmLibraryQueue(app.Library, app.Audit, taskLog),
			tasks.NewCleanupAuditEventsQueue(app.Audit, taskLog),
		)
	}

	return app, nil
}

// Close waits for pending audit writes, then releases the task queue, the
// cache and the database.
func (a *App) Close() {
	a.Audit.Wait()

	if a.Tasks != nil {
		if err := a.Tasks.Close(); err != nil {
			a.Log.Error("Error closing task client", logger.Error(err))
		}
	}
	if err := a.Cache.Close(); err != nil {
		a.Log.Error("Error closing cache", logger.Error(err))
	}
	if err := a.DB.Close(); err != nil {
		a.Log.Error("Error closing database", logger.Error(err))
	}
}

// Router builds the HTTP router over the wired services.
func (a *App) Router(version string) *gin.Engine {
	routerCfg := http_controllers.RouterConfig{
		Library:        a.Library,
		Bookmarks:      a.Bookmarks,
		Importer:       a.Importer,
		Reorganizer:    a.Reorganizer,
		AccessControl:  a.AccessControl,
		Audit:          a.Audit,
		Listings:       a.Listings,
		AuthMiddleware: auth.NewMiddleware(a.Auth, a.Config.Auth, a.Log.With(logger.String("component", "auth"))),
		DemoMiddleware: demo.NewMiddleware(a.Config.Demo.Enabled),
		Database:       a.DB,
		Version:        version,
		Logger:         a.Log.With(logger.String("component", "http")),
	}
	if a.Tasks != nil {
		routerCfg.Tasks = a.Tasks
	}
	return http_controllers.NewRouter(routerCfg)
}

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

// Serve runs the HTTP server until SIGINT or SIGTERM.
func Serve(router *gin.Engine, cfg *config.Config, log logger.Logger, onShutdown ShutdownFunc) error {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("Starting server", logger.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
	case err := <-errCh:
		return fmt.Errorf("listen: %w", err)
	}
	log.Info("Shutting down server", logger.Duration("timeout", timeout))

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	// Stop background work first so it does not outlive the server.
	if onShutdown != nil {
		onShutdown(ctx)
	}

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	log.Info("Server exiting")
	return nil
}

// Run builds the app and serves HTTP until interrupted.
func Run(cfg *config.Config, version string, log logger.Logger) error {
	log.Info("Starting catalog",
		logger.String("version", version),
		logger.String("auth_mode", string(cfg.Auth.Mode)),
		logger.String("cache_backend", string(cfg.Cache.Backend)))

	app, err := Build(cfg, log)
	if err != nil {
		return err
	}
	defer app.Close()

	if cfg.Demo.Enabled {
		log.Info("Demo mode enabled - write operations will be blocked")
	}

	bgCtx, cancelBackground := context.WithCancel(context.Background())
	defer cancelBackground()

	if app.Tasks != nil {
		go app.Tasks.Start(bgCtx)
	}

	var maintenance *scheduler.MaintenanceScheduler
	if cfg.Maintenance.Enabled && app.Tasks != nil {
		maintenance = scheduler.NewMaintenanceScheduler(app.Tasks, cfg.Maintenance.Schedule, cfg.Audit.RetentionDays,
			log.With(logger.String("component", "scheduler")))
		if err := maintenance.Start(bgCtx); err != nil {
			return err
		}
	}

	onShutdown := func(ctx context.Context) {
		if maintenance != nil {
			maintenance.Stop()
		}
		if app.Tasks != nil {
			app.Tasks.Stop(ctx)
		}
		cancelBackground()
	}

	return Serve(app.Router(version), cfg, log, onShutdown)
}
