package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jkengne/boutique-pos-backend/api/routes"
	authsvc "github.com/jkengne/boutique-pos-backend/internal/auth"
	cartsvc "github.com/jkengne/boutique-pos-backend/internal/cart"
	"github.com/jkengne/boutique-pos-backend/internal/catalog"
	checkoutsvc "github.com/jkengne/boutique-pos-backend/internal/checkout"
	reportsvc "github.com/jkengne/boutique-pos-backend/internal/reports"
	salessvc "github.com/jkengne/boutique-pos-backend/internal/sales"
	"github.com/jkengne/boutique-pos-backend/internal/scan"
	settingssvc "github.com/jkengne/boutique-pos-backend/internal/settings"
	"github.com/jkengne/boutique-pos-backend/internal/users"
	"github.com/jkengne/boutique-pos-backend/pkg/auth/session"
	"github.com/jkengne/boutique-pos-backend/pkg/config"
	"github.com/jkengne/boutique-pos-backend/pkg/db"
	"github.com/jkengne/boutique-pos-backend/pkg/logger"
	"github.com/jkengne/boutique-pos-backend/pkg/metrics"
	"github.com/jkengne/boutique-pos-backend/pkg/migrate"
	"github.com/jkengne/boutique-pos-backend/pkg/redis"
)

const shutdownTimeout = 15 * time.Second

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	posMetrics := metrics.NewPOSMetrics(registry)

	catalogService, err := catalog.NewService(catalog.NewRepository(dbClient.DB()), catalog.NewSampleStore())
	if err != nil {
		logg.Error(context.Background(), "failed to create catalog service", err)
		os.Exit(1)
	}

	scanService, err := scan.NewService(catalogService, posMetrics)
	if err != nil {
		logg.Error(context.Background(), "failed to create scan service", err)
		os.Exit(1)
	}

	cartSessions := cartsvc.NewSessionStore()
	cartService, err := cartsvc.NewService(cartSessions, catalogService)
	if err != nil {
		logg.Error(context.Background(), "failed to create cart service", err)
		os.Exit(1)
	}

	salesService, err := salessvc.NewService(salessvc.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(context.Background(), "failed to create sales service", err)
		os.Exit(1)
	}

	checkoutService, err := checkoutsvc.NewService(cartSessions, catalogService, salesService, posMetrics)
	if err != nil {
		logg.Error(context.Background(), "failed to create checkout service", err)
		os.Exit(1)
	}

	settingsService, err := settingssvc.NewService(settingssvc.NewRepository(dbClient.DB()), cfg.Shop)
	if err != nil {
		logg.Error(context.Background(), "failed to create settings service", err)
		os.Exit(1)
	}

	reportsService, err := reportsvc.NewService(catalogService, salesService, settingsService)
	if err != nil {
		logg.Error(context.Background(), "failed to create reports service", err)
		os.Exit(1)
	}

	authService, err := authsvc.NewService(
		users.NewRepository(dbClient.DB()),
		sessionManager,
		logg,
		cfg.JWT,
		cfg.Password,
		users.NormalizeEmail,
	)
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	handler := routes.NewRouter(routes.Deps{
		Config:         cfg,
		Logger:         logg,
		DB:             dbClient,
		Redis:          redisClient,
		Sessions:       sessionManager,
		AuthService:    authService,
		CatalogService: catalogService,
		ScanService:    scanService,
		CartService:    cartService,
		CheckoutSvc:    checkoutService,
		SalesService:   salesService,
		SettingsSvc:    settingsService,
		ReportsService: reportsService,
		Metrics:        promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port

	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr:    addr,
		Handler: handler,
	}

	stopCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-stopCtx.Done():
		logg.Info(ctx, "shutting down api server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(ctx, "graceful shutdown failed", err)
			os.Exit(1)
		}
	}
}
