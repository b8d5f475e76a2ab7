package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config aggregates runtime configuration for the gateway.
type Config struct {
	App          AppConfig
	Backend      BackendConfig
	Postgres     PostgresConfig
	Redis        RedisConfig
	Logger       LoggerConfig
	Auth         AuthConfig
	Notification NotificationConfig
	Reconcile    ReconcileConfig
	Worker       WorkerConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name                  string
	Env                   string
	Host                  string
	Port                  string
	Version               string
	RequestTimeoutSeconds int
}

// BackendConfig points at the EV rental platform REST API.
type BackendConfig struct {
	BaseURL        string
	TimeoutSeconds int
}

// PostgresConfig holds connection values for the submission audit log.
// Empty DSN disables auditing entirely.
type PostgresConfig struct {
	DSN            string
	MaxConns       int32
	MinConns       int32
	RunMigrations  bool
	ConnMaxIdleSec int32
	ConnMaxLifeSec int32
}

// RedisConfig holds Redis connection values for the response cache.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// AuthConfig defines token validation parameters. The secret is shared with
// the platform backend, which issues the tokens.
type AuthConfig struct {
	JWTSecret             string
	AccessTokenTTLMinutes int
}

// NotificationConfig holds the ops webhook endpoint for admin events.
type NotificationConfig struct {
	WebhookURL string
}

// ReconcileConfig tunes the staff-creation reconciliation delays.
type ReconcileConfig struct {
	DuplicateDelayMillis int
	AmbiguousDelayMillis int
	TransportDelayMillis int
}

// WorkerConfig tunes the analytics cache warmer.
type WorkerConfig struct {
	AnalyticsWarmIntervalSeconds int
}

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	cfg := &Config{
		App: AppConfig{
			Name:                  getEnv("APP_NAME", "ev-admin-gateway"),
			Env:                   getEnv("APP_ENV", "development"),
			Host:                  getEnv("APP_HOST", "0.0.0.0"),
			Port:                  getEnv("APP_PORT", "8081"),
			Version:               getEnv("APP_VERSION", "dev"),
			RequestTimeoutSeconds: getEnvAsInt("HTTP_REQUEST_TIMEOUT_SECONDS", 30),
		},
		Backend: BackendConfig{
			BaseURL:        getEnv("BACKEND_BASE_URL", "http://localhost:8080"),
			TimeoutSeconds: getEnvAsInt("BACKEND_TIMEOUT_SECONDS", 10),
		},
		Postgres: PostgresConfig{
			DSN:            os.Getenv("POSTGRES_DSN"),
			MaxConns:       int32(getEnvAsInt("POSTGRES_MAX_CONNS", 10)),
			MinConns:       int32(getEnvAsInt("POSTGRES_MIN_CONNS", 2)),
			RunMigrations:  getEnvAsBool("POSTGRES_RUN_MIGRATIONS", true),
			ConnMaxIdleSec: int32(getEnvAsInt("POSTGRES_CONN_MAX_IDLE_SECONDS", 30)),
			ConnMaxLifeSec: int32(getEnvAsInt("POSTGRES_CONN_MAX_LIFE_SECONDS", 300)),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "127.0.0.1:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Auth: AuthConfig{
			JWTSecret:             getEnv("AUTH_JWT_SECRET", "dev-secret"),
			AccessTokenTTLMinutes: getEnvAsInt("AUTH_ACCESS_TOKEN_TTL_MINUTES", 60),
		},
		Notification: NotificationConfig{
			WebhookURL: getEnv("NOTIFY_WEBHOOK_URL", ""),
		},
		Reconcile: ReconcileConfig{
			DuplicateDelayMillis: getEnvAsInt("RECONCILE_DUPLICATE_DELAY_MS", 1000),
			AmbiguousDelayMillis: getEnvAsInt("RECONCILE_AMBIGUOUS_DELAY_MS", 1000),
			TransportDelayMillis: getEnvAsInt("RECONCILE_TRANSPORT_DELAY_MS", 2000),
		},
		Worker: WorkerConfig{
			AnalyticsWarmIntervalSeconds: getEnvAsInt("ANALYTICS_WARM_INTERVAL_SECONDS", 300),
		},
	}

	return cfg, nil
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// RequestTimeout returns the configured request timeout duration.
func (a AppConfig) RequestTimeout() time.Duration {
	if a.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.RequestTimeoutSeconds) * time.Second
}

// Timeout returns the backend client timeout duration.
func (b BackendConfig) Timeout() time.Duration {
	if b.TimeoutSeconds <= 0 {
		return 10 * time.Second
	}
	return time.Duration(b.TimeoutSeconds) * time.Second
}

// DuplicateDelay is the wait before verifying a likely-duplicate failure.
func (r ReconcileConfig) DuplicateDelay() time.Duration {
	return time.Duration(r.DuplicateDelayMillis) * time.Millisecond
}

// AmbiguousDelay is the wait before verifying a validation/unknown failure.
func (r ReconcileConfig) AmbiguousDelay() time.Duration {
	return time.Duration(r.AmbiguousDelayMillis) * time.Millisecond
}

// TransportDelay is the longer wait before verifying a timeout/network
// failure, since the backend may still be processing the write.
func (r ReconcileConfig) TransportDelay() time.Duration {
	return time.Duration(r.TransportDelayMillis) * time.Millisecond
}

// AnalyticsWarmInterval returns the cache warmer period.
func (w WorkerConfig) AnalyticsWarmInterval() time.Duration {
	if w.AnalyticsWarmIntervalSeconds <= 0 {
		return 5 * time.Minute
	}
	return time.Duration(w.AnalyticsWarmIntervalSeconds) * time.Second
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsBool(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return parsed
}
