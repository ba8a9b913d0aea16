package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/connectin/connectin/internal/ai"
	"github.com/connectin/connectin/internal/config"
	"github.com/connectin/connectin/internal/db"
	connectinhttp "github.com/connectin/connectin/internal/http"
	"github.com/connectin/connectin/internal/http/handlers"
	"github.com/connectin/connectin/internal/http/middlewares"
	"github.com/connectin/connectin/internal/observability"
	"github.com/connectin/connectin/internal/providers/github"
	"github.com/connectin/connectin/internal/providers/linkedin"
	"github.com/connectin/connectin/internal/repo/memory"
	"github.com/connectin/connectin/internal/repo/postgres"
	"github.com/connectin/connectin/internal/session"
)

type accountsRepo interface {
	handlers.AccountStore
	middlewares.AccountReader
}

type profilesRepo interface {
	handlers.ProfileStore
	handlers.ProfileSearcher
}

func main() {
	cfg := config.Load()
	log := observability.NewLogger(cfg.Env)

	if cfg.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.OTLPEndpoint != "" {
		shutdownTracer, err := observability.InitTracer(ctx, "connectin-api", cfg.OTLPEndpoint)

		if err != nil {
			log.Error("failed to init tracer", "error", err)
			os.Exit(1)
		}

		defer func() {
			shutdownCtx, cancel := config.WithTimeout(5 * time.Second)
			defer cancel()

			if err := shutdownTracer(shutdownCtx); err != nil {
				log.Error("tracer shutdown failed", "error", err)
			}
		}()
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	prom := observability.NewProm(registry)

	var (
		accounts accountsRepo
		profiles profilesRepo
		ping     func(context.Context) error
	)

	switch cfg.StoreDriver {
	case "postgres":
		pool, err := db.NewPool(cfg.DBURL)

		if err != nil {
			log.Error("failed to connect to postgres", "error", err)
			os.Exit(1)
		}

		defer pool.Close()

		schemaCtx, cancel := config.WithTimeout(10 * time.Second)
		err = postgres.EnsureSchema(schemaCtx, pool)
		cancel()

		if err != nil {
			log.Error("failed to ensure schema", "error", err)
			os.Exit(1)
		}

		accounts = postgres.NewAccountsRepo(pool, prom)
		profiles = postgres.NewProfilesRepo(pool, prom)
		ping = pool.Ping
	case "memory":
		accounts = memory.NewAccountsRepo()
		profiles = memory.NewProfilesRepo()
	default:
		log.Error("unknown store driver", "driver", cfg.StoreDriver)
		os.Exit(1)
	}

	var sessionStore session.Store

	switch cfg.SessionStore {
	case "redis":
		rs := session.NewRedisStore(session.RedisConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})

		pingCtx, cancel := config.WithTimeout(2 * time.Second)
		err := rs.Ping(pingCtx)
		cancel()

		if err != nil {
			log.Error("failed to connect to redis", "error", err)
			os.Exit(1)
		}

		defer rs.Close()

		sessionStore = rs
	case "memory":
		sessionStore = session.NewMemoryStore()
	default:
		log.Error("unknown session store", "store", cfg.SessionStore)
		os.Exit(1)
	}

	sessions := session.NewManager(sessionStore, cfg.SessionTTL)

	seedCtx, cancel := config.WithTimeout(5 * time.Second)
	err := db.EnsureSeedAccount(seedCtx, accounts, cfg)
	cancel()

	if err != nil {
		log.Error("failed to seed bootstrap account", "error", err)
		os.Exit(1)
	}

	githubClient := github.NewClient(cfg.GitHubClientID, cfg.GitHubClientSecret, prom)
	linkedinClient := linkedin.NewClient(cfg.LinkedInClientID, cfg.LinkedInSecret, cfg.LinkedInRedirectURI, prom)
	assessments := ai.NewService(ai.NewGeminiClient(cfg.GeminiAPIKey, cfg.GeminiModel, prom))

	router := connectinhttp.NewRouter(connectinhttp.RouterDeps{
		Log:      log,
		Prom:     prom,
		Registry: registry,

		Auth:        handlers.NewAuthHandler(accounts, sessions, log),
		Profiles:    handlers.NewProfilesHandler(profiles, log),
		Search:      handlers.NewSearchHandler(profiles, log),
		OAuth:       handlers.NewOAuthHandler(githubClient, linkedinClient, log),
		Assessments: handlers.NewAssessmentsHandler(assessments, log),
		Health:      handlers.NewHealthHandler(ping),

		AuthMW: middlewares.NewAuthMiddleware(sessions, accounts),

		AllowedOrigins: cfg.AllowedOrigins,
		MaxBodyBytes:   cfg.MaxBodyBytes,
		RateLimiter:    middlewares.NewRateLimiter(cfg.RateLimit, cfg.RateWindow),
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info("server listening", "addr", srv.Addr, "store", cfg.StoreDriver, "sessions", cfg.SessionStore)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := config.WithTimeout(10 * time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
	}

	log.Info("server stopped")
}
