package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/cors"
	"golang.org/x/sync/errgroup"

	"github.com/aussiebroadwan/roster/internal/roster/avatar"
	httpapi "github.com/aussiebroadwan/roster/internal/roster/http"
	"github.com/aussiebroadwan/roster/internal/roster/service"
	"github.com/aussiebroadwan/roster/internal/roster/store"
	"github.com/aussiebroadwan/roster/internal/roster/store/drivers/sqlite"
	"github.com/aussiebroadwan/roster/pkg/cryptox"
	"github.com/aussiebroadwan/roster/pkg/jwtx"
	"github.com/aussiebroadwan/roster/pkg/slogx"
)

// ServiceName tags logs and traces.
const ServiceName = "roster"

// BuildVersion is overridden at build time via -ldflags "-X".
var BuildVersion = "v0.1.0"

// Application owns the roster service and its dependencies.
type Application struct {
	cfg    Config
	logger *slog.Logger

	db            store.Store
	avatars       avatar.Storage
	keyManager    *jwtx.KeyManager
	shutdownTrace func(context.Context) error

	versioningService   *service.VersioningService
	authService         *service.AuthService
	userService         *service.UserService
	historyService      *service.HistoryService
	avatarService       *service.AvatarService
	mfaService          *service.MFAService
	bootstrapService    *service.BootstrapService
	housekeepingService *service.HousekeepingService

	server *http.Server
	router *httpapi.Router
}

// New builds the application. Nothing listens until Run.
func New(ctx context.Context, cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: ServiceName,
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.Log.Level,
			Format:  cfg.Log.Format,
		}),
	}

	cryptox.SetPepperPath(cfg.Keys.PepperFile)
	if err := cryptox.LoadPepper(); err != nil {
		return nil, fmt.Errorf("failed to load pepper: %w", err)
	}

	shutdownTrace, err := InitTracing(ctx, app.logger, ServiceName, cfg.Env)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize tracing: %w", err)
	}
	app.shutdownTrace = shutdownTrace

	if err := app.initDatabase(); err != nil {
		return nil, err
	}
	if err := app.initAvatars(ctx); err != nil {
		_ = app.db.Close()
		return nil, err
	}

	keyManager, err := InitKeys(cfg, app.logger)
	if err != nil {
		_ = app.db.Close()
		return nil, err
	}
	app.keyManager = keyManager

	app.initServices()
	app.initHTTP()

	return app, nil
}

// Handler is the fully wrapped HTTP handler.
func (app *Application) Handler() http.Handler {
	return app.server.Handler
}

// Run serves until ctx is cancelled or SIGINT/SIGTERM arrives, then shuts
// down gracefully.
func (app *Application) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	app.housekeepingService.Start()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		app.logger.Info("roster starting", "addr", app.cfg.Addr, "version", BuildVersion)
		if err := app.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		app.logger.Info("shutdown requested")
		return app.Shutdown()
	})
	return g.Wait()
}

// Shutdown drains in-flight requests, stops background work and closes
// the database.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down roster...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	app.housekeepingService.Stop()

	if err := app.shutdownTrace(ctx); err != nil {
		app.logger.Warn("error flushing traces", "error", err)
	}

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("roster stopped")
	return nil
}

func (app *Application) initDatabase() error {
	db, err := sqlite.NewStore(sqlite.DSN(app.cfg.DB.Path))
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully", "path", app.cfg.DB.Path)
	return nil
}

func (app *Application) initAvatars(ctx context.Context) error {
	switch app.cfg.Avatar.Backend {
	case AvatarBackendS3:
		s3, err := avatar.NewS3(ctx, avatar.S3Config{
			Endpoint:  app.cfg.S3.Endpoint,
			AccessKey: app.cfg.S3.AccessKey,
			SecretKey: app.cfg.S3.SecretKey,
			Bucket:    app.cfg.S3.Bucket,
			UseSSL:    app.cfg.S3.UseSSL,
		})
		if err != nil {
			return fmt.Errorf("failed to initialize s3 avatar storage: %w", err)
		}
		app.avatars = s3
		app.logger.Info("avatar storage ready", "backend", AvatarBackendS3, "bucket", app.cfg.S3.Bucket)
	default:
		fs, err := avatar.NewFS(app.cfg.Avatar.Dir)
		if err != nil {
			return fmt.Errorf("failed to initialize avatar directory: %w", err)
		}
		app.avatars = fs
		app.logger.Info("avatar storage ready", "backend", AvatarBackendFS, "dir", app.cfg.Avatar.Dir)
	}
	return nil
}

func (app *Application) initServices() {
	app.versioningService = &service.VersioningService{}

	app.authService = &service.AuthService{
		Store:      app.db,
		Versioning: app.versioningService,
		Signer:     app.keyManager.Signer,
		Issuer:     app.cfg.Issuer,
		Audience:   app.cfg.Audience,
		TTL:        app.cfg.TokenTTL,
	}
	app.userService = &service.UserService{
		Store:      app.db,
		Versioning: app.versioningService,
		Avatars:    app.avatars,
	}
	app.historyService = &service.HistoryService{
		Store:      app.db,
		Versioning: app.versioningService,
	}
	app.avatarService = &service.AvatarService{
		Store:      app.db,
		Versioning: app.versioningService,
		Storage:    app.avatars,
		MaxBytes:   app.cfg.Avatar.MaxBytes,
	}
	app.mfaService = &service.MFAService{
		Store:      app.db,
		Versioning: app.versioningService,
		Issuer:     app.cfg.Issuer,
	}
	app.bootstrapService = &service.BootstrapService{
		Store:      app.db,
		Versioning: app.versioningService,
		Token:      app.cfg.BootstrapToken,
	}

	app.housekeepingService = service.NewHousekeepingService(
		app.db,
		app.logger,
		app.cfg.Housekeeping.Interval,
	)
}

func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		app.keyManager.KeySet,
		app.keyManager.Verifier,
		BuildVersion,
		app.db,
		app.avatars,
		app.logger,
	)

	router.AuthService = app.authService
	router.UserService = app.userService
	router.HistoryService = app.historyService
	router.AvatarService = app.avatarService
	router.MFAService = app.mfaService
	router.BootstrapService = app.bootstrapService

	router.Use(cors.New(cors.Options{
		AllowedOrigins:   app.cfg.CORS.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization", "X-Bootstrap-Token", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Total-Count", "X-Request-ID", "Content-Disposition"},
		AllowCredentials: true,
	}).Handler)
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              app.cfg.Addr,
		Handler:           tracingMiddleware(router),
		ReadHeaderTimeout: 3 * time.Second,
	}
}
