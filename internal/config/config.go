package config

import (
	"context"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Env  string
	Port int

	// storage selection: "memory" (default) or "postgres"
	StoreDriver string
	DBURL       string

	// session token handling
	SessionStore  string // "memory" (default) or "redis"
	SessionTTL    time.Duration
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	AllowedOrigins []string
	MaxBodyBytes   int64
	RateLimit      int
	RateWindow     time.Duration

	// OAuth provider credentials for the token-exchange proxies
	GitHubClientID      string
	GitHubClientSecret  string
	LinkedInClientID    string
	LinkedInSecret      string
	LinkedInRedirectURI string

	// generative model used by the assessment/reputation pipeline
	GeminiAPIKey string
	GeminiModel  string

	OTLPEndpoint string

	// optional bootstrap account
	SeedEmail     string
	SeedPassword  string
	SeedRole      string
	SeedFirstName string
	SeedLastName  string
}

func Load() Config {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	return Config{
		Env:  getEnv("APP_ENV", "dev"),
		Port: getEnvInt("PORT", 8080),

		StoreDriver: getEnv("STORE_DRIVER", "memory"),
		DBURL:       buildDBURL(),

		SessionStore:  getEnv("SESSION_STORE", "memory"),
		SessionTTL:    getEnvDuration("SESSION_TTL", 24*time.Hour),
		RedisAddr:     getEnv("REDIS_ADDR", "127.0.0.1:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvInt("REDIS_DB", 0),

		AllowedOrigins: splitCSV(getEnv("ALLOWED_ORIGINS", "http://localhost:5173")),
		MaxBodyBytes:   int64(getEnvInt("MAX_BODY_BYTES", 1<<20)),
		RateLimit:      getEnvInt("RATE_LIMIT", 30),
		RateWindow:     getEnvDuration("RATE_WINDOW", time.Minute),

		GitHubClientID:      getEnv("GITHUB_CLIENT_ID", ""),
		GitHubClientSecret:  getEnv("GITHUB_CLIENT_SECRET", ""),
		LinkedInClientID:    getEnv("LINKEDIN_CLIENT_ID", ""),
		LinkedInSecret:      getEnv("LINKEDIN_CLIENT_SECRET", ""),
		LinkedInRedirectURI: getEnv("LINKEDIN_REDIRECT_URI", "http://localhost:5173/auth/linkedin/callback"),

		GeminiAPIKey: getEnv("GEMINI_API_KEY", ""),
		GeminiModel:  getEnv("GEMINI_MODEL", "gemini-2.0-flash"),

		OTLPEndpoint: getEnv("OTLP_ENDPOINT", ""),

		SeedEmail:     getEnv("SEED_EMAIL", ""),
		SeedPassword:  getEnv("SEED_PASSWORD", ""),
		SeedRole:      getEnv("SEED_ROLE", "developer"),
		SeedFirstName: getEnv("SEED_FIRST_NAME", "ConnectIn"),
		SeedLastName:  getEnv("SEED_LAST_NAME", "Admin"),
	}
}

func buildDBURL() string {
	if url := os.Getenv("DATABASE_URL"); url != "" {
		return url
	}

	host := getEnv("DB_HOST", "127.0.0.1")
	port := getEnv("DB_PORT", "5432")
	user := getEnv("DB_USER", "connectin")
	pass := getEnv("DB_PASSWORD", "connectin")
	name := getEnv("DB_NAME", "connectin")
	ssl := getEnv("DB_SSLMODE", "disable")

	return "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=" + ssl
}

func WithTimeout(duration time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), duration)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		num, err := strconv.Atoi(v)

		if err != nil {
			return fallback
		}

		return num
	}

	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		d, err := time.ParseDuration(v)

		if err != nil {
			return fallback
		}

		return d
	}

	return fallback
}

func splitCSV(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))

	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}

	return out
}
