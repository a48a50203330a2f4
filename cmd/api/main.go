package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"docportal/docs"
	"docportal/internal/config"
	"docportal/internal/database"
	"docportal/internal/database/migration"
	"docportal/internal/events"
	handlers "docportal/internal/http/handler"
	"docportal/internal/http/middleware"
	"docportal/internal/logger"
	"docportal/internal/otel"
	"docportal/internal/repository"
	"docportal/internal/repository/memory"
	"docportal/internal/repository/postgres"
	"docportal/internal/service"
	"docportal/internal/storage"
)

const shutdownTimeout = 10 * time.Second

// @title Document Portal API
// @version 1.0
// @BasePath /
func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()

	zl, err := logger.New(cfg.LogLevel, cfg.Location())
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	if err := run(cfg, zl); err != nil {
		zl.Error("server stopped", zap.Error(err))
		_ = zl.Sync()
		os.Exit(1)
	}
}

type stores struct {
	docs    repository.DocumentRepository
	notes   repository.NotificationRepository
	reviews repository.ReviewRepository
	db      *sql.DB
}

func openStores(ctx context.Context, cfg *config.AppConfig, zl *zap.Logger) (*stores, error) {
	switch cfg.StoreDriver {
	case config.StoreDriverMemory:
		zl.Warn("using in-memory store; data is lost on restart")
		docs, notes := memory.NewDocumentMemory(), memory.NewNotificationMemory()
		return &stores{docs: docs, notes: notes, reviews: memory.NewReviewMemory(docs, notes)}, nil
	case config.StoreDriverPostgres:
		db, err := database.NewPostgres(ctx, cfg.Database, zl)
		if err != nil {
			return nil, fmt.Errorf("connect database: %w", err)
		}
		if err := migration.EnsureMigrated(ctx, db, zl, cfg.Database.Host); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("migrate database: %w", err)
		}
		return &stores{
			docs:    postgres.NewDocumentPostgres(db),
			notes:   postgres.NewNotificationPostgres(db),
			reviews: postgres.NewReviewPostgres(db),
			db:      db,
		}, nil
	default:
		return nil, fmt.Errorf("unknown STORE_DRIVER %q", cfg.StoreDriver)
	}
}

func run(cfg *config.AppConfig, zl *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := otel.Init(ctx, zl)
	if err != nil {
		return fmt.Errorf("init tracing: %w", err)
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := shutdownTracing(sctx); err != nil {
			zl.Error("tracing shutdown failed", zap.Error(err))
		}
	}()

	st, err := openStores(ctx, cfg, zl)
	if err != nil {
		return err
	}
	if st.db != nil {
		defer st.db.Close()
	}

	// Object storage is optional; without it uploads are refused and locations carry no URL.
	var objStore storage.Storage
	if cfg.MinIO.Endpoint != "" {
		objStore, err = storage.NewMinIO(ctx, cfg.MinIO, zl)
		if err != nil {
			return fmt.Errorf("init object storage: %w", err)
		}
	} else {
		zl.Warn("MINIO_ENDPOINT not set; file uploads are disabled")
	}

	var publisher events.Publisher = events.Noop{}
	if len(cfg.Kafka.Brokers) > 0 {
		kp, err := events.NewKafkaPublisher(cfg.Kafka.Brokers, cfg.Kafka.NotificationTopic)
		if err != nil {
			return fmt.Errorf("init kafka publisher: %w", err)
		}
		publisher = kp
		zl.Info("publishing notification events",
			zap.Strings("brokers", cfg.Kafka.Brokers),
			zap.String("topic", cfg.Kafka.NotificationTopic),
		)
	}
	defer func() {
		if err := publisher.Close(); err != nil {
			zl.Error("close publisher failed", zap.Error(err))
		}
	}()

	notifier := service.NewNotificationService(st.notes, publisher, zl)
	review := service.NewReviewService(st.docs, st.reviews, publisher, zl)
	svc := handlers.Services{
		Documents: service.NewDocumentService(service.DocumentDeps{
			Repo:          st.docs,
			Store:         objStore,
			Review:        review,
			Notifier:      notifier,
			Rules:         service.UploadRules{MaxBytes: cfg.Upload.MaxBytes, AllowedTypes: cfg.Upload.AllowedTypes},
			PresignExpiry: cfg.MinIO.PresignExpiry(),
			Log:           zl,
		}),
		Review:        review,
		Notifications: notifier,
		Analytics:     service.NewAnalyticsService(st.docs, cfg.RecentWindow()),
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	promMiddleware, err := middleware.NewPrometheusMiddleware(reg)
	if err != nil {
		return fmt.Errorf("register metrics: %w", err)
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(),
		// Values read from the request outlive it in the stores.
		Immutable: true,
		// Multipart framing adds a little on top of the file itself.
		BodyLimit: int(cfg.Upload.MaxBytes) + 1<<20,
	})

	app.Use(otelfiber.Middleware())
	app.Use(middleware.RequestID())
	app.Use(middleware.Identity())
	app.Use(middleware.Logger(zl))
	app.Use(promMiddleware.Handler())

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))
	handlers.RegisterRoutes(app, st.db, svc)

	// Swagger UI with dynamic host and scheme
	app.Get("/swagger/*", func(c *fiber.Ctx) error {
		scheme := c.Protocol()
		if proto := c.Get("X-Forwarded-Proto"); proto != "" {
			scheme = strings.Split(proto, ",")[0]
		}

		docs.SwaggerInfo.Host = c.Get("Host")
		docs.SwaggerInfo.Schemes = []string{scheme}

		return swagger.HandlerDefault(c)
	})

	addr := ":" + cfg.Port
	errCh := make(chan error, 1)
	go func() {
		zl.Info("http server listening", zap.String("addr", addr), zap.String("store", cfg.StoreDriver))
		errCh <- app.Listen(addr)
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
		zl.Info("shutting down")
		return app.ShutdownWithTimeout(shutdownTimeout)
	}
}
