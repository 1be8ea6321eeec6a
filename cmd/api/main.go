package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"gedo/internal/audit"
	"gedo/internal/auth"
	"gedo/internal/config"
	"gedo/internal/database"
	"gedo/internal/database/migration"
	handlers "gedo/internal/http/handler"
	"gedo/internal/http/middleware"
	"gedo/internal/logging"
	"gedo/internal/metrics"
	"gedo/internal/otel"
	"gedo/internal/repository/postgres"
	"gedo/internal/security"
	"gedo/internal/service"
	"gedo/internal/storage"
	"gedo/internal/upload"
)

// @title GEDO API
// @version 1.0
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()

	loc := logging.LoadLocation(cfg.Location)
	logger := logging.New(os.Stdout, cfg.LogLevel, loc)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("server stopped with error", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.AppConfig, logger *slog.Logger) error {
	shutdownTracing, err := otel.Init(ctx, logger)
	if err != nil {
		return err
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(sctx); err != nil {
			logger.Error("tracing shutdown failed", "error", err)
		}
	}()

	db, err := database.NewPostgres(ctx, cfg.Database, logger)
	if err != nil {
		return err
	}
	defer db.Close()

	if cfg.Database.AutoMigrate {
		if err := migration.EnsureMigrated(ctx, db, logger, cfg.Database.Host); err != nil {
			return err
		}
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewDBStatsCollector(db, cfg.Database.Name),
	)
	mt, err := metrics.New(reg)
	if err != nil {
		return err
	}
	promMiddleware, err := middleware.NewPrometheusMiddleware(reg)
	if err != nil {
		return err
	}

	primary, err := newPrimaryStorage(cfg, logger)
	if err != nil {
		return err
	}
	local, err := storage.NewLocal(cfg.Upload.Folder)
	if err != nil {
		return err
	}
	store := storage.NewFallback(primary, local, logger, mt)
	pipeline := upload.NewPipeline(store, cfg.Upload, logger, mt)

	lockStore, closeLockStore, err := newLockoutStore(ctx, cfg.Security)
	if err != nil {
		return err
	}
	defer closeLockStore()
	lockout := security.NewManager(lockStore, logger, security.WithMetrics(mt))

	tokens, err := auth.NewTokens(cfg.Security.JWTSecret, cfg.Security.JWTTTL)
	if err != nil {
		return err
	}

	registroRepo := postgres.NewRegistroPostgres(db)
	userRepo := postgres.NewUserPostgres(db)
	obraRepo := postgres.NewObraPostgres(db)
	auditor := audit.New(logger, postgres.NewAuditPostgres(db))

	registroSvc := service.NewRegistroService(registroRepo, obraRepo, pipeline, store, auditor, logger)
	authSvc := service.NewAuthService(userRepo, lockout, tokens, auditor, logger)
	obraSvc := service.NewObraService(obraRepo, auditor)
	userSvc := service.NewUserService(userRepo, obraRepo, auditor, logger)
	tipoSvc := service.NewTipoRegistroService(postgres.NewTipoRegistroPostgres(db), auditor)
	dashboardSvc := service.NewDashboardService(postgres.NewDashboardPostgres(db))

	if err := bootstrapAdmin(ctx, userSvc, cfg.Admin, logger); err != nil {
		return err
	}

	app := fiber.New(handlers.AppConfig(cfg))

	app.Use(otelfiber.Middleware())
	// RequestID middleware adds/propagates X-Request-ID and stores it in context
	app.Use(middleware.RequestID())
	app.Use(middleware.AuditClient())
	app.Use(middleware.Logger(logger))
	app.Use(promMiddleware.Handler())

	handlers.RegisterRoutes(app, handlers.Dependencies{
		DB:        db,
		Auth:      authSvc,
		Registros: registroSvc,
		Obras:     obraSvc,
		Accounts:  userSvc,
		Tipos:     tipoSvc,
		Dashboard: dashboardSvc,
		Tokens:    tokens,
		Users:     userRepo,
		Gatherer:  reg,
	})

	errCh := make(chan error, 1)
	go func() {
		addr := ":" + cfg.Port
		logger.Info("server listening",
			"addr", addr,
			"storage_backend", cfg.Storage.Backend,
			"lockout_store", cfg.Security.LockoutStore,
			"trusted_proxies", len(cfg.TrustedProxies),
		)
		errCh <- app.Listen(addr)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	return app.ShutdownWithTimeout(10 * time.Second)
}

// newPrimaryStorage returns the remote backend selected by STORAGE_BACKEND.
// A missing configuration leaves local disk as the only backend.
func newPrimaryStorage(cfg *config.AppConfig, logger *slog.Logger) (storage.Storage, error) {
	var (
		s   storage.Storage
		err error
	)
	switch cfg.Storage.Backend {
	case "local":
		return nil, nil
	case "minio":
		s, err = storage.NewMinIO(cfg.Storage.MinIO, cfg.Storage.Blob.Folder)
	default:
		s, err = storage.NewBlob(cfg.Storage.Blob, logger)
	}
	if errors.Is(err, storage.ErrNotConfigured) {
		logger.Warn("remote storage not configured, attachments stored on local disk", "backend", cfg.Storage.Backend)
		return nil, nil
	}
	return s, err
}

func newLockoutStore(ctx context.Context, cfg config.SecurityConfig) (security.Store, func(), error) {
	if cfg.LockoutStore != "redis" {
		return security.NewMemoryStore(), func() {}, nil
	}
	rs, err := security.NewRedisStore(ctx, cfg.RedisURL)
	if err != nil {
		return nil, nil, err
	}
	return rs, func() { _ = rs.Close() }, nil
}

// bootstrapAdmin creates the first administrator from ADMIN_EMAIL and
// ADMIN_PASSWORD. Without them an empty database has no account to log in with.
func bootstrapAdmin(ctx context.Context, users service.UserService, cfg config.AdminConfig, logger *slog.Logger) error {
	if cfg.Email == "" || cfg.Password == "" {
		logger.Warn("ADMIN_EMAIL or ADMIN_PASSWORD not set, skipping administrator bootstrap")
		return nil
	}
	created, err := users.EnsureAdmin(ctx, cfg.Username, cfg.Email, cfg.Password)
	if err != nil {
		return fmt.Errorf("bootstrap administrator: %w", err)
	}
	if !created {
		logger.Debug("administrator already present", "email", cfg.Email)
	}
	return nil
}
