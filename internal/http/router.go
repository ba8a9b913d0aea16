package http

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/connectin/connectin/internal/http/handlers"
	"github.com/connectin/connectin/internal/http/middlewares"
	"github.com/connectin/connectin/internal/observability"
)

const serviceName = "connectin-api"

// RouterDeps bundles everything the route table needs. main wires the
// concrete implementations; tests hand in fakes.
type RouterDeps struct {
	Log      *slog.Logger
	Prom     *observability.Prom
	Registry *prometheus.Registry

	Auth        *handlers.AuthHandler
	Profiles    *handlers.ProfilesHandler
	Search      *handlers.SearchHandler
	OAuth       *handlers.OAuthHandler
	Assessments *handlers.AssessmentsHandler
	Health      *handlers.HealthHandler

	AuthMW *middlewares.AuthMiddleware

	AllowedOrigins []string
	MaxBodyBytes   int64
	RateLimiter    *middlewares.RateLimiter
}

func NewRouter(deps RouterDeps) *gin.Engine {
	router := gin.New()

	router.Use(
		gin.Recovery(),
		middlewares.RequestID(),
		middlewares.RequestLogger(deps.Log),
		middlewares.SecurityHeaders(),
		middlewares.CORSMiddleware(deps.AllowedOrigins),
		otelgin.Middleware(serviceName),
		deps.Prom.GinHandleMiddleware(),
		middlewares.MaxBodyBytes(deps.MaxBodyBytes),
		middlewares.RequireJSON(),
	)

	router.GET("/healthz", deps.Health.Healthz)
	router.GET("/readyz", deps.Health.Readyz)
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{})))

	requireSession := deps.AuthMW.RequireSession()

	auth := router.Group("/auth")
	auth.Use(deps.RateLimiter.Middleware(middlewares.KeyByIP))
	{
		auth.POST("/signup", deps.Auth.SignUp)
		auth.POST("/login", deps.Auth.Login)
		auth.POST("/logout", requireSession, deps.Auth.Logout)
	}

	profile := router.Group("/profile", requireSession)
	{
		profile.POST("/create", deps.Profiles.Create)
		profile.GET("/me", deps.Profiles.Me)
		profile.PUT("/update", deps.Profiles.Update)
	}

	// public, no session required
	profiles := router.Group("/profiles")
	{
		profiles.POST("/search", deps.Search.Search)
		profiles.POST("/public", deps.Search.PublicByBody)
		profiles.GET("/public/:name", deps.Search.PublicByPath)
	}

	oauth := router.Group("/oauth")
	{
		oauth.POST("/github/access-token", deps.OAuth.GitHubAccessToken)
		oauth.POST("/github/user", deps.OAuth.GitHubUserData)
		oauth.POST("/linkedin/access-token", deps.OAuth.LinkedInAccessToken)
		oauth.POST("/linkedin/user", deps.OAuth.LinkedInUserData)
		oauth.POST("/linkedin/profile", deps.OAuth.LinkedInProfileDetails)
	}

	// legacy route names kept for older frontend builds
	router.POST("/getAccessToken", deps.OAuth.GitHubAccessToken)
	router.POST("/getUserData", deps.OAuth.GitHubUserData)
	router.POST("/getLinkedInAccessToken", deps.OAuth.LinkedInAccessToken)
	router.POST("/getLinkedInUserData", deps.OAuth.LinkedInUserData)
	router.POST("/getLinkedInProfileDetails", deps.OAuth.LinkedInProfileDetails)

	// AI-backed routes are limited per account rather than per address
	limitByAccount := deps.RateLimiter.Middleware(middlewares.KeyByAccountOrIP)

	assessments := router.Group("/assessments", requireSession, limitByAccount)
	{
		assessments.POST("/generate", deps.Assessments.Generate)
		assessments.POST("/evaluate", deps.Assessments.Evaluate)
	}

	router.POST("/reputation/score", requireSession, limitByAccount, deps.Assessments.Reputation)

	return router
}
