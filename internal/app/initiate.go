package app

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"github.com/shandysiswandi/gocsv/internal/pkg/pkgconfig"
	"github.com/shandysiswandi/gocsv/internal/pkg/pkglog"
	"github.com/shandysiswandi/gocsv/internal/pkg/pkgrouter"
	"github.com/shandysiswandi/gocsv/internal/pkg/pkgroutine"
	"github.com/shandysiswandi/gocsv/internal/pkg/pkguid"
)

func (a *App) initConfig() {
	// Real environment variables win over .env entries.
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file found, using environment variables")
	}

	path := "/config/config.yaml"
	if os.Getenv("LOCAL") == "true" {
		path = "./config/config.yaml"
	}

	cfg, err := pkgconfig.NewViper(path)
	if err != nil {
		slog.Error("failed to init config", "error", err)
		os.Exit(1)
	}

	cfg.SetDefault("tz", "UTC")
	cfg.SetDefault("log.level", "info")
	cfg.SetDefault("server.address.http", ":5000")
	cfg.SetDefault("modules.dataset.enabled", true)
	cfg.SetDefault("auth.header", pkgrouter.HeaderAPIKey)
	cfg.SetDefault("cors.allowed_origins", "*")
	cfg.SetDefault("upload.max_bytes", 32<<20)
	cfg.SetDefault("analysis.endpoint", "https://openrouter.ai/api/v1/chat/completions")
	cfg.SetDefault("analysis.model", "deepseek/deepseek-r1:free")
	cfg.SetDefault("analysis.timeout", "60s")

	bindings := map[string][]string{
		"auth.api_key":   {"AUTH_API_KEY", "API_KEY"},
		"analysis.token": {"ANALYSIS_TOKEN", "DEEPSEEK_API_KEY"},
	}
	for key, envs := range bindings {
		if err := cfg.BindEnv(key, envs...); err != nil {
			slog.Error("failed to bind env", "key", key, "error", err)
			os.Exit(1)
		}
	}

	//nolint:errcheck,gosec // ignore error
	os.Setenv("TZ", cfg.GetString("tz"))
	pkglog.SetLevel(cfg.GetString("log.level"))

	a.config = cfg
}

func (a *App) initLibraries() {
	a.goroutine = pkgroutine.NewManager(100)
	a.uuid = pkguid.NewUUID()

	sf, err := pkguid.NewSnowflake()
	if err != nil {
		slog.Error("failed to init snowflake", "error", err)
		os.Exit(1)
	}
	a.snowflake = sf

	a.registry = prometheus.NewRegistry()
	a.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
}

func (a *App) initHTTPServer() {
	a.router = pkgrouter.NewRouter(a.uuid)
	a.router.Handle(http.MethodGet, "/metrics", promhttp.HandlerFor(a.registry, promhttp.HandlerOpts{}))
	a.router.Use(pkgrouter.MiddlewareMetrics(a.registry))

	corsHandler := cors.New(cors.Options{
		AllowedOrigins: a.config.GetArray("cors.allowed_origins"),
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodOptions,
		},
		AllowedHeaders: []string{"*"},
	})

	a.httpServer = &http.Server{
		Addr:              a.config.GetString("server.address.http"),
		Handler:           corsHandler.Handler(a.router),
		ReadHeaderTimeout: 10 * time.Second,
	}
}

func (a *App) initClosers() {
	if a.closerFn == nil {
		a.closerFn = map[string]func(context.Context) error{}
	}

	a.closerFn["Config"] = func(context.Context) error {
		return a.config.Close()
	}
}
