package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/atlasiq/atlasiq-gateway/internal/application/service"
	"github.com/atlasiq/atlasiq-gateway/internal/domain/entity"
	"github.com/atlasiq/atlasiq-gateway/internal/infrastructure/api"
	"github.com/atlasiq/atlasiq-gateway/internal/infrastructure/cache"
	"github.com/atlasiq/atlasiq-gateway/internal/infrastructure/config"
	"github.com/atlasiq/atlasiq-gateway/internal/infrastructure/db"
	"github.com/atlasiq/atlasiq-gateway/internal/infrastructure/handler"
	"github.com/atlasiq/atlasiq-gateway/internal/infrastructure/logger"
	"github.com/atlasiq/atlasiq-gateway/internal/infrastructure/middleware"
	"github.com/atlasiq/atlasiq-gateway/internal/infrastructure/session"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	bootLog := logger.NewJSONLogger(os.Stdout, logger.InfoLevel)

	cfg, err := config.Load()
	if err != nil {
		bootLog.Fatal("Failed to load configuration", map[string]interface{}{"error": err.Error()})
	}

	level, err := logger.ParseLevel(cfg.Log.Level)
	if err != nil {
		bootLog.Warn("Unknown log level, using info", map[string]interface{}{"level": cfg.Log.Level})
		level = logger.InfoLevel
	}
	log := logger.NewJSONLogger(os.Stdout, level).WithField("service", "atlasiq-gateway")
	logger.SetDefaultLogger(log)

	log.Info("Starting AtlasIQ gateway", map[string]interface{}{
		"api_base_url": cfg.API.BaseURL,
		"port":         cfg.HTTPServer.Port,
		"token_store":  cfg.TokenStore.Backend,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Token store and session
	store, closeStore, err := db.OpenTokenStore(ctx, cfg.TokenStore, log)
	if err != nil {
		log.Fatal("Failed to open token store", map[string]interface{}{"error": err.Error()})
	}
	defer func() {
		if err := closeStore(); err != nil {
			log.Error("Error closing token store", map[string]interface{}{"error": err.Error()})
		}
	}()

	sess := session.New(store, log)
	if err := sess.Load(ctx); err != nil {
		log.Warn("Starting without stored credentials", map[string]interface{}{"error": err.Error()})
	}

	// Metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	// Backend client
	client := api.NewClient(cfg.API.BaseURL, sess, &http.Client{Timeout: cfg.API.Timeout}, log).
		WithMetrics(api.NewMetrics(registry))

	// Services
	authService := service.NewAuthService(client, sess, log)
	seriesCache := cache.NewSeriesCache(cfg.Cache.TTL)
	go seriesCache.Run(ctx, cfg.Cache.TTL)

	macroService := service.NewMacroService(client, seriesCache, log).
		WithDefaults(entity.MacroQuery{
			Countries: cfg.DashboardCountries(),
			StartYear: cfg.Dashboard.StartYear,
			EndYear:   cfg.Dashboard.EndYear,
		})
	dashboardService := service.NewDashboardService(client, macroService, log)
	sess.OnReset(macroService.ClearCache)

	// Router
	router := mux.NewRouter()
	router.Use(middleware.RequestIDMiddleware)
	router.Use(middleware.LoggingMiddleware(log))
	router.Use(middleware.NewHTTPMetrics(registry).Middleware)

	handler.NewHealthHandler(authService.IsAuthenticated, log).RegisterRoutes(router)
	handler.NewAuthHandler(authService, log).RegisterRoutes(router)
	handler.NewMacroHandler(macroService, log).RegisterRoutes(router)
	handler.NewDashboardHandler(dashboardService, log).RegisterRoutes(router)
	router.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{})).Methods("GET")

	server := &http.Server{
		Addr:         ":" + cfg.HTTPServer.Port,
		Handler:      router,
		ReadTimeout:  cfg.HTTPServer.Timeout,
		WriteTimeout: cfg.HTTPServer.Timeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	go func() {
		log.Info("Server listening", map[string]interface{}{"addr": server.Addr})
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("Server failed", map[string]interface{}{"error": err.Error()})
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down", nil)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Graceful shutdown failed", map[string]interface{}{"error": err.Error()})
	}
}
