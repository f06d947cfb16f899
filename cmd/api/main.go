package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/brandmetro/transit-ads-platform/cmd/mainconfig"
	"github.com/brandmetro/transit-ads-platform/internal/api/router"
	"github.com/brandmetro/transit-ads-platform/internal/auth"
	appconfig "github.com/brandmetro/transit-ads-platform/internal/config"
	"github.com/brandmetro/transit-ads-platform/internal/contact"
	"github.com/brandmetro/transit-ads-platform/internal/leads"
	"github.com/brandmetro/transit-ads-platform/internal/masterdata"
	"github.com/brandmetro/transit-ads-platform/internal/notify"
	"github.com/brandmetro/transit-ads-platform/internal/observability/metrics"
	"github.com/brandmetro/transit-ads-platform/internal/products"
	"github.com/brandmetro/transit-ads-platform/internal/stations"
	"github.com/brandmetro/transit-ads-platform/pkg/logging"
)

func main() {
	_ = godotenv.Load()

	cfg := appconfig.Load()
	logger := logging.New(cfg.LogLevel)
	logger.Info("starting transit-ads-platform API server",
		"env", cfg.Env,
		"port", cfg.Port,
	)

	if cfg.DatabaseURL == "" {
		logger.Error("DATABASE_URL is required")
		os.Exit(1)
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error("failed to create database pool", "error", err)
		os.Exit(1)
	}
	defer pool.Close()
	if err := pool.Ping(ctx); err != nil {
		logger.Error("database unreachable", "error", err)
		os.Exit(1)
	}

	leadMetrics := metrics.NewLeadMetrics(prometheus.DefaultRegisterer)
	importMetrics := metrics.NewImportMetrics(prometheus.DefaultRegisterer)

	// Repositories
	stationRepo := stations.NewRepository(pool)
	lineRepo := masterdata.NewLineRepository(pool)
	audienceRepo := masterdata.NewAudienceRepository(pool)
	typeRepo := masterdata.NewTypeRepository(pool)
	productRepo := products.NewRepository(pool)
	leadRepo := leads.NewRepository(pool)
	contactRepo := contact.NewRepository(pool)
	authRepo := auth.NewRepository(pool)

	// Outbound email
	sender := buildEmailSender(ctx, cfg, logger)
	notifier := notify.NewService(stationRepo, productRepo, sender, notify.Config{
		BrandName:  "BrandMetro",
		AdminEmail: cfg.AdminEmail,
	}, leadMetrics, logger)

	// Handlers
	routerCfg := &router.Config{
		Logger:    logger,
		Stations:  stations.NewHandler(stationRepo, cfg.ImportMaxRows, importMetrics, logger),
		Lines:     masterdata.NewLinesHandler(lineRepo, logger),
		Audiences: masterdata.NewNameTableHandler(audienceRepo, "audience", logger),
		Types:     masterdata.NewNameTableHandler(typeRepo, "type", logger),
		Products:  products.NewHandler(productRepo, logger),
		Leads:     leads.NewHandler(leadRepo, stationRepo, productRepo, notifier, leadMetrics, logger),
		Contact:   contact.NewHandler(contactRepo, logger),
		Auth: auth.NewHandler(authRepo, auth.BootstrapCredentials{
			Username: cfg.CMSUsername,
			Password: cfg.CMSPassword,
		}, cfg.SessionCookieTTL, logger),

		MetricsHandler: promhttp.Handler(),
		DB:             pool,

		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		FormRateLimit:      cfg.FormRateLimit,
		FormRateBurst:      cfg.FormRateBurst,
	}
	r := router.New(routerCfg)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
}

// buildEmailSender picks the provider from config; anything unconfigured
// falls back to the logging stub so lead capture keeps working.
func buildEmailSender(ctx context.Context, cfg *appconfig.Config, logger *logging.Logger) notify.EmailSender {
	switch cfg.EmailProvider {
	case "sendgrid":
		if s := notify.NewSendGridSender(notify.SendGridConfig{
			APIKey:    cfg.SendGridAPIKey,
			FromEmail: cfg.SendGridFromEmail,
			FromName:  cfg.SendGridFromName,
		}, logger); s != nil {
			return s
		}
		logger.Warn("sendgrid not configured, using stub email sender")
	case "ses":
		awsCfg, err := mainconfig.LoadAWSConfig(ctx, cfg)
		if err != nil {
			logger.Error("failed to load AWS config, using stub email sender", "error", err)
			break
		}
		if s := notify.NewSESSender(sesv2.NewFromConfig(awsCfg), notify.SESConfig{
			FromEmail: cfg.SESFromEmail,
			FromName:  cfg.SESFromName,
		}, logger); s != nil {
			return s
		}
	case "stub":
	default:
		logger.Warn("unknown email provider, using stub email sender", "provider", cfg.EmailProvider)
	}
	return notify.NewStubEmailSender(logger)
}
