package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/hms/hms/internal/config"
	"github.com/hms/hms/internal/domain/billing"
	"github.com/hms/hms/internal/domain/diagnostics"
	"github.com/hms/hms/internal/domain/inventory"
	"github.com/hms/hms/internal/domain/patient"
	"github.com/hms/hms/internal/domain/prescription"
	"github.com/hms/hms/internal/domain/surgery"
	"github.com/hms/hms/internal/platform/cache"
	"github.com/hms/hms/internal/platform/db"
	"github.com/hms/hms/internal/platform/metrics"
	"github.com/hms/hms/internal/platform/middleware"
	"github.com/hms/hms/internal/platform/realtime"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "hms-server",
		Short: "Hospital Management API Server",
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HMS API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
	}

	upCmd := &cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("dir")

			cfg, err := config.Load()
			if err != nil {
				return err
			}

			ctx := context.Background()
			pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
			if err != nil {
				return err
			}
			defer pool.Close()

			migrator := db.NewMigrator(pool, dir)
			count, err := migrator.Up(ctx)
			if err != nil {
				return fmt.Errorf("migration failed: %w", err)
			}

			fmt.Printf("Applied %d migration(s) successfully.\n", count)
			return nil
		},
	}
	upCmd.Flags().String("dir", "./migrations", "Path to migrations directory")
	cmd.AddCommand(upCmd)

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show migration status",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("dir")

			cfg, err := config.Load()
			if err != nil {
				return err
			}

			ctx := context.Background()
			pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
			if err != nil {
				return err
			}
			defer pool.Close()

			migrator := db.NewMigrator(pool, dir)
			statuses, err := migrator.Status(ctx)
			if err != nil {
				return fmt.Errorf("failed to get migration status: %w", err)
			}

			fmt.Printf("%-10s %-40s %-10s %s\n", "VERSION", "NAME", "STATUS", "APPLIED AT")
			fmt.Println("---------- ---------------------------------------- ---------- --------------------")
			for _, s := range statuses {
				status := "pending"
				appliedAt := ""
				if s.Applied {
					status = "applied"
					if s.AppliedAt != nil {
						appliedAt = s.AppliedAt.Format("2006-01-02 15:04:05")
					}
				}
				fmt.Printf("%-10d %-40s %-10s %s\n", s.Version, s.Name, status, appliedAt)
			}
			return nil
		},
	}
	statusCmd.Flags().String("dir", "./migrations", "Path to migrations directory")
	cmd.AddCommand(statusCmd)

	return cmd
}

// meteredPublisher counts every broadcast event alongside delivery.
type meteredPublisher struct {
	hub *realtime.Hub
	m   *metrics.Metrics
}

func (p *meteredPublisher) Publish(ctx context.Context, event realtime.Event) error {
	p.m.EventPublished(event.Type)
	return p.hub.Publish(ctx, event)
}

func runServer() error {
	// Logger
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if os.Getenv("ENV") == "development" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}

	// Config
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}

	// Database
	ctx := context.Background()
	pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()
	logger.Info().Msg("connected to database")

	// Bed stats cache (optional; disabled when REDIS_URL is empty)
	statsCache, err := cache.New(cfg.RedisURL, cfg.StatsCacheTTL)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to redis")
	}
	if statsCache != nil {
		defer statsCache.Close()
		logger.Info().Msg("connected to redis")
	}

	// Metrics
	m := metrics.New("hms")

	// Realtime hub
	hub := realtime.NewHub()
	publisher := &meteredPublisher{hub: hub, m: m}

	// Echo server
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Global middleware
	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))
	e.Use(m.Middleware())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete},
		AllowHeaders: []string{"Authorization", "Content-Type", "X-Request-ID"},
	}))

	// API group
	apiV1 := e.Group("/api/v1")

	rateLimitCfg := middleware.RateLimitConfig{
		RequestsPerSecond: cfg.RateLimitRPS,
		BurstSize:         cfg.RateLimitBurst,
	}
	if rateLimitCfg.RequestsPerSecond <= 0 {
		rateLimitCfg = middleware.DefaultRateLimitConfig()
	}
	apiV1.Use(middleware.RateLimit(rateLimitCfg))

	// Domain services
	inventorySvc := inventory.NewService(
		inventory.NewWardRepoPG(pool),
		inventory.NewBedRepoPG(pool),
		pool, publisher, statsCache, logger,
	)
	inventory.NewHandler(inventorySvc).RegisterRoutes(apiV1.Group("/beds"))

	patientSvc := patient.NewService(patient.NewRepoPG(pool), publisher, logger)
	patient.NewHandler(patientSvc).RegisterRoutes(apiV1)

	surgerySvc := surgery.NewService(surgery.NewRepoPG(pool), publisher, logger)
	surgery.NewHandler(surgerySvc).RegisterRoutes(apiV1)

	diagnosticsSvc := diagnostics.NewService(
		diagnostics.NewLabOrderRepoPG(pool),
		diagnostics.NewImagingStudyRepoPG(pool),
		publisher, logger,
	)
	diagnostics.NewHandler(diagnosticsSvc).RegisterRoutes(apiV1)

	prescriptionSvc := prescription.NewService(prescription.NewRepoPG(pool), publisher, logger)
	prescription.NewHandler(prescriptionSvc).RegisterRoutes(apiV1)

	billingSvc := billing.NewService(billing.NewRepoPG(pool), publisher, logger)
	billing.NewHandler(billingSvc).RegisterRoutes(apiV1)

	// Websocket subscriptions
	realtime.NewHandler(hub).RegisterRoutes(apiV1)

	// Health and metrics
	e.GET("/health", db.HealthHandler(pool))
	e.GET("/metrics", m.Handler())

	// Graceful shutdown
	go func() {
		addr := ":" + cfg.Port
		logger.Info().Str("addr", addr).Msg("starting server")
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Fatal().Err(err).Msg("server shutdown failed")
	}
	logger.Info().Msg("server stopped")
	return nil
}
