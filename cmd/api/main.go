package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"sitecms/docs"
	"sitecms/internal/captcha"
	"sitecms/internal/config"
	"sitecms/internal/database"
	"sitecms/internal/database/migration"
	handlers "sitecms/internal/http/handler"
	"sitecms/internal/http/middleware"
	"sitecms/internal/logger"
	"sitecms/internal/metrics"
	"sitecms/internal/notify"
	"sitecms/internal/otel"
	"sitecms/internal/repository/postgres"
	"sitecms/internal/service"
	"sitecms/internal/storage"
)

// Multipart bodies carry at most one CV (10 MiB) plus form fields.
const bodyLimit = 12 << 20

const shutdownTimeout = 15 * time.Second

// @title sitecms API
// @version 1.0
// @BasePath /
// @securityDefinitions.apikey AdminKey
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(cfg.Log)

	if err := run(cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func run(cfg *config.AppConfig, log zerolog.Logger) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := otel.Init(ctx, log)
	if err != nil {
		return fmt.Errorf("init tracing: %w", err)
	}

	// Initialize PostgreSQL connection (with pooling via database/sql)
	db, err := database.NewPostgres(ctx, cfg.Database, log)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close()

	if err := migration.EnsureMigrated(ctx, db, log, cfg.Database.Host); err != nil {
		return err
	}

	store, err := newStorage(ctx, cfg)
	if err != nil {
		return fmt.Errorf("init storage: %w", err)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m, err := metrics.New(reg)
	if err != nil {
		return err
	}
	prom, err := middleware.NewPrometheusMiddleware(reg)
	if err != nil {
		return err
	}

	intake, deps := buildServices(cfg, db, store, log, m)

	appCfg := handlers.NewAppConfig(log, cfg.Intake.TrustedProxies)
	appCfg.BodyLimit = bodyLimit
	app := fiber.New(appCfg)

	// RequestID first so every later layer sees it; prometheus sits outside
	// the logger so it records the status the logger resolved.
	app.Use(middleware.RequestID())
	app.Use(otelfiber.Middleware())
	app.Use(prom.Handler())
	app.Use(middleware.Logger(log))
	app.Use(recover.New())

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})))

	// Swagger UI with dynamic host and scheme
	app.Get("/swagger/*", func(c *fiber.Ctx) error {
		scheme := c.Protocol()
		if proto := c.Get("X-Forwarded-Proto"); proto != "" {
			scheme = strings.TrimSpace(strings.Split(proto, ",")[0])
		}

		docs.SwaggerInfo.Host = c.Get("Host")
		docs.SwaggerInfo.Schemes = []string{scheme}

		return swagger.HandlerDefault(c)
	})

	handlers.RegisterRoutes(app, deps)

	if cfg.Admin.APIKey == "" {
		log.Warn().Msg("ADMIN_API_KEY is empty; admin API rejects every request")
	}

	serveErr := make(chan error, 1)
	go func() {
		addr := ":" + cfg.Port
		log.Info().Str("addr", addr).Str("storage", cfg.Storage.Driver).Msg("server listening")
		serveErr <- app.Listen(addr)
	}()

	select {
	case err := <-serveErr:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	var errs []error
	if err := app.ShutdownWithContext(sctx); err != nil {
		errs = append(errs, fmt.Errorf("http shutdown: %w", err))
	}
	// Notifications still in flight finish before the process exits.
	intake.Wait()
	if err := shutdownTracing(sctx); err != nil {
		errs = append(errs, fmt.Errorf("tracing shutdown: %w", err))
	}
	return errors.Join(errs...)
}

func newStorage(ctx context.Context, cfg *config.AppConfig) (storage.Storage, error) {
	switch cfg.Storage.Driver {
	case "minio":
		return storage.NewMinIO(ctx, cfg.MinIO)
	case "memory":
		return storage.NewMemory(), nil
	default:
		return storage.NewLocal(cfg.Storage.LocalDir)
	}
}

func buildServices(cfg *config.AppConfig, db *sql.DB, store storage.Storage, log zerolog.Logger, m *metrics.Metrics) (*service.IntakeService, handlers.Deps) {
	assets := service.NewAssetService(store, log, m)
	audit := service.NewAuditService(postgres.NewAccessLogPostgres(db), log, m)
	content := service.NewSingletonService(postgres.NewSingletonPostgres(db), assets, log)
	clients := service.NewClientService(postgres.NewClientPostgres(db), assets)

	intake := service.NewIntakeService(service.IntakeDeps{
		Contacts:     postgres.NewContactMessagePostgres(db),
		Applications: postgres.NewJobApplicationPostgres(db),
		Assets:       assets,
		Audit:        audit,
		Content:      content,
		Verifier:     captcha.New(cfg.Captcha),
		Notifier:     notify.New(cfg.SMTP),
		Log:          log,
		Metrics:      m,
	}, service.IntakeOptions{
		DevBypass:     cfg.Captcha.DevBypass,
		NotifyTimeout: cfg.Intake.NotifyTimeout,
		Recipient:     cfg.SMTP.Recipient,
	})

	return intake, handlers.Deps{
		DB:          db,
		Content:     content,
		Intake:      intake,
		Clients:     clients,
		Audit:       audit,
		Assets:      assets,
		AdminAPIKey: cfg.Admin.APIKey,
		RateLimit:   cfg.Intake.RateLimit,
		RateWindow:  cfg.Intake.RateWindow,
	}
}
