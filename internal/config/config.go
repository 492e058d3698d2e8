package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Config is the full runtime configuration, read once at startup.
type Config struct {
	App          AppConfig
	Postgres     PostgresConfig
	Redis        RedisConfig
	Logger       LoggerConfig
	Pagination   PaginationConfig
	Notification NotificationConfig
}

// AppConfig controls the HTTP server.
type AppConfig struct {
	Name    string `validate:"required"`
	Env     string
	Host    string
	Port    int `validate:"gt=0,lte=65535"`
	Version string
	// RequestTimeout bounds store calls of a single request; zero disables it.
	RequestTimeout time.Duration `validate:"gte=0"`
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return net.JoinHostPort(a.Host, strconv.Itoa(a.Port))
}

// PostgresConfig holds pool settings. An empty DSN selects the in-memory store.
type PostgresConfig struct {
	DSN             string
	MaxConns        int32 `validate:"gte=0"`
	MinConns        int32 `validate:"gte=0,ltefield=MaxConns"`
	ConnMaxIdle     time.Duration
	ConnMaxLifetime time.Duration
	RunMigrations   bool
	TraceQueries    bool
}

// RedisConfig holds Redis connection values. An empty Addr disables Redis.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int `validate:"gte=0"`
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// PaginationConfig bounds list requests.
type PaginationConfig struct {
	DefaultSize int `validate:"gt=0,ltefield=MaxSize"`
	MaxSize     int `validate:"gt=0"`
}

// NotificationConfig names the pub/sub channel department events go to.
type NotificationConfig struct {
	Channel string `validate:"required"`
}

// Load reads an optional .env file, then the environment, and validates the result.
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisCfg, err := loadRedis()
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		App:      loadApp(),
		Postgres: loadPostgres(),
		Redis:    redisCfg,
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Pagination: PaginationConfig{
			DefaultSize: getEnvAsInt("PAGE_DEFAULT_SIZE", 20),
			MaxSize:     getEnvAsInt("PAGE_MAX_SIZE", 2000),
		},
		Notification: NotificationConfig{
			Channel: getEnv("NOTIFY_CHANNEL", "department-events"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the struct-tag constraints of every block.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

func loadApp() AppConfig {
	return AppConfig{
		Name:           getEnv("APP_NAME", "reference-data-service"),
		Env:            getEnv("APP_ENV", "development"),
		Host:           getEnv("APP_HOST", "0.0.0.0"),
		Port:           getEnvAsInt("APP_PORT", 8080),
		Version:        getEnv("APP_VERSION", "dev"),
		RequestTimeout: getEnvAsSeconds("HTTP_REQUEST_TIMEOUT_SECONDS", 30),
	}
}

func loadPostgres() PostgresConfig {
	return PostgresConfig{
		DSN:             os.Getenv("POSTGRES_DSN"),
		MaxConns:        int32(getEnvAsInt("POSTGRES_MAX_CONNS", 10)),
		MinConns:        int32(getEnvAsInt("POSTGRES_MIN_CONNS", 2)),
		ConnMaxIdle:     getEnvAsSeconds("POSTGRES_CONN_MAX_IDLE_SECONDS", 30),
		ConnMaxLifetime: getEnvAsSeconds("POSTGRES_CONN_MAX_LIFE_SECONDS", 300),
		RunMigrations:   getEnvAsBool("POSTGRES_RUN_MIGRATIONS", true),
		TraceQueries:    getEnvAsBool("POSTGRES_TRACE_QUERIES", false),
	}
}

// loadRedis fails on a malformed REDIS_DB instead of falling back.
func loadRedis() (RedisConfig, error) {
	db, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return RedisConfig{}, fmt.Errorf("invalid REDIS_DB: %w", err)
	}
	return RedisConfig{
		Addr:     os.Getenv("REDIS_ADDR"),
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       db,
	}, nil
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	parsed, err := strconv.Atoi(getEnv(key, ""))
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsSeconds(key string, fallback int) time.Duration {
	return time.Duration(getEnvAsInt(key, fallback)) * time.Second
}

func getEnvAsBool(key string, fallback bool) bool {
	parsed, err := strconv.ParseBool(getEnv(key, ""))
	if err != nil {
		return fallback
	}
	return parsed
}
