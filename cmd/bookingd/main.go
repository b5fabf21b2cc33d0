package main

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

	"github.com/example/gym-class-booking/internal/application"
	"github.com/example/gym-class-booking/internal/config"
	httptransport "github.com/example/gym-class-booking/internal/http"
	"github.com/example/gym-class-booking/internal/upstream"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(os.Getenv("BOOKING_CONFIG"))
	if err != nil {
		logger.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}
	location := cfg.Location()

	backendClient := &http.Client{Timeout: cfg.UpstreamTimeout}
	client, err := upstream.NewClient(cfg.UpstreamBaseURL, backendClient, logger)
	if err != nil {
		logger.Error("failed to configure upstream client", "error", err)
		os.Exit(1)
	}

	cache := application.NewResultCache(cfg.CacheTTL, 0, time.Now)

	catalogService := application.NewCatalogServiceWithLogger(client, cache, application.CatalogSettings{
		Location:  location,
		Now:       time.Now,
		BatchSize: cfg.FilterBatchSize,
		Prefetch:  cfg.PrefetchEnabled,
	}, logger)
	reservationService := application.NewReservationServiceWithLogger(client, cache, logger)
	dashboardService := application.NewDashboardServiceWithLogger(client, cache, logger)
	refreshController := application.NewRefreshController(cfg.RefreshInterval, location, time.Now)

	router := httptransport.NewRouter(httptransport.RouterConfig{
		Catalog:      httptransport.NewCatalogHandler(catalogService, refreshController, logger),
		Reservations: httptransport.NewReservationHandler(reservationService, logger),
		Dashboard:    httptransport.NewDashboardHandler(dashboardService, logger),
		Middleware:   []func(http.Handler) http.Handler{httptransport.RequestLogger(logger)},
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("failed to shutdown server", "error", err)
		}
	}()

	logger.Info("booking API listening", "addr", server.Addr, "upstream", cfg.UpstreamBaseURL)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server encountered error", "error", err)
		os.Exit(1)
	}
}
