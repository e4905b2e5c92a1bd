package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// AppConfig holds the service configuration read from the environment
type AppConfig struct {
	Port     string
	BasePath string
	LogLevel string

	// Public URL of the request platform, used for absolute links
	SiteURL string
	// Path (or URL) of the platform's "make a request" form
	MakeRequestURL string
	StaticURL      string

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	PageCacheTTL  time.Duration

	GeoIPCityDB string

	JWTSecret string

	RabbitMQURL   string
	RequestQueue  string
	SentryDSN     string
	EnableSwagger bool
}

// Load returns configuration from environment variables
func Load() *AppConfig {
	redisDB, _ := strconv.Atoi(getEnv("REDIS_DB", "0"))

	cacheTTL, err := time.ParseDuration(getEnv("PAGE_CACHE_TTL", "15m"))
	if err != nil {
		cacheTTL = 15 * time.Minute
	}

	return &AppConfig{
		Port:           getEnv("PORT", "8080"),
		BasePath:       strings.TrimSuffix(getEnv("BASE_PATH", ""), "/"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		SiteURL:        strings.TrimSuffix(getEnv("SITE_URL", "http://localhost:8000"), "/"),
		MakeRequestURL: getEnv("MAKE_REQUEST_URL", "/make-request/"),
		StaticURL:      getEnv("STATIC_URL", "/static/"),
		RedisAddr:      getEnv("REDIS_ADDR", ""),
		RedisPassword:  getEnv("REDIS_PASSWORD", ""),
		RedisDB:        redisDB,
		PageCacheTTL:   cacheTTL,
		GeoIPCityDB:    getEnv("GEOIP_CITY_DB", ""),
		JWTSecret:      getEnv("JWT_SECRET", ""),
		RabbitMQURL:    rabbitMQURL(),
		RequestQueue:   getEnv("REQUEST_EVENT_QUEUE", "foirequest_created"),
		SentryDSN:      getEnv("SENTRY_DSN", ""),
		EnableSwagger:  getEnv("ENABLE_SWAGGER", "true") == "true",
	}
}

// rabbitMQURL builds the AMQP url; empty host disables the consumer
func rabbitMQURL() string {
	host := getEnv("RABBITMQ_HOST", "")
	if host == "" {
		return ""
	}
	port := getEnv("RABBITMQ_PORT", "5672")
	user := getEnv("RABBITMQ_USER", "guest")
	pass := getEnv("RABBITMQ_PASS", "guest")
	return "amqp://" + user + ":" + pass + "@" + host + ":" + port + "/"
}

// getEnv gets environment variable with fallback default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
