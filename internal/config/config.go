package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config aggregates all runtime settings required by the application.
type Config struct {
	AppName     string
	Environment string
	HTTP        HTTPConfig
	Auth        AuthConfig
	Database    DatabaseConfig
	Redis       RedisConfig
	State       StateConfig
	Outbox      OutboxConfig
	Context     ContextConfig
	Logger      LoggerConfig
	Migrations  MigrationsConfig
}

type HTTPConfig struct {
	Host         string
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
	MaxConn      int
}

type AuthConfig struct {
	Pepper          string
	SessionDuration time.Duration
	CookieName      string
	CookieDays      int
	LoginDelay      time.Duration
	LoginPath       string
}

// DatabaseConfig is optional: when URL is empty the service runs with the
// built-in user directory instead of Postgres.
type DatabaseConfig struct {
	URL             string
	MaxOpenConns    int
	MaxConnLifetime time.Duration
}

// RedisConfig is optional: when URL is empty client state lives in BoltDB.
type RedisConfig struct {
	URL      string
	Password string
	DB       int
}

type StateConfig struct {
	Path string
}

type OutboxConfig struct {
	Path           string
	DrainInterval  time.Duration
	BatchSize      int
	MaxRetries     int
	RetentionHours int
}

type ContextConfig struct {
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
}

type LoggerConfig struct {
	Level    string
	Encoding string
}

type MigrationsConfig struct {
	Enabled bool
	Path    string
}

// Load reads configuration from environment variables (optionally .env)
// and applies sane defaults so the service can boot in any environment.
func Load() (*Config, error) {
	_ = godotenv.Load(".env")

	cfg := &Config{
		AppName:     getString("APP_NAME", "todoflow"),
		Environment: getString("APP_ENV", "development"),
		HTTP: HTTPConfig{
			Host:         getString("SERVER_HOST", "0.0.0.0"),
			Port:         getString("SERVER_PORT", "8080"),
			ReadTimeout:  getDuration("SERVER_READ_TIMEOUT", 10*time.Second),
			WriteTimeout: getDuration("SERVER_WRITE_TIMEOUT", 10*time.Second),
			IdleTimeout:  getDuration("SERVER_IDLE_TIMEOUT", 120*time.Second),
			MaxConn:      getInt("SERVER_MAX_CONN", 0),
		},
		Auth: AuthConfig{
			Pepper:          getString("AUTH_PEPPER", "Lekker2345Pepper467543"),
			SessionDuration: getDuration("SESSION_DURATION", 24*time.Hour),
			CookieName:      getString("SESSION_COOKIE_NAME", "todolist_session"),
			CookieDays:      getInt("SESSION_COOKIE_DAYS", 1),
			LoginDelay:      getDuration("LOGIN_DELAY", 800*time.Millisecond),
			LoginPath:       getString("LOGIN_PATH", "/login"),
		},
		Database: DatabaseConfig{
			URL:             os.Getenv("DATABASE_URL"),
			MaxOpenConns:    getInt("DB_MAX_OPEN_CONNS", 25),
			MaxConnLifetime: getDuration("DB_CONN_LIFETIME", time.Hour),
		},
		Redis: RedisConfig{
			URL:      os.Getenv("REDIS_URL"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       getInt("REDIS_DB", 0),
		},
		State: StateConfig{
			Path: getString("STATE_PATH", "./data/state.db"),
		},
		Outbox: OutboxConfig{
			Path:           getString("OUTBOX_PATH", "./data/outbox.db"),
			DrainInterval:  getDuration("OUTBOX_DRAIN_INTERVAL", 30*time.Second),
			BatchSize:      getInt("OUTBOX_BATCH_SIZE", 100),
			MaxRetries:     getInt("OUTBOX_MAX_RETRIES", 3),
			RetentionHours: getInt("OUTBOX_RETENTION_HOURS", 24),
		},
		Context: ContextConfig{
			RequestTimeout:  getDuration("REQUEST_TIMEOUT_SECONDS", 5*time.Second),
			ShutdownTimeout: getDuration("SHUTDOWN_TIMEOUT_SECONDS", 15*time.Second),
		},
		Logger: LoggerConfig{
			Level:    getString("LOG_LEVEL", "info"),
			Encoding: getString("LOG_ENCODING", "json"),
		},
		Migrations: MigrationsConfig{
			Enabled: getBool("RUN_MIGRATIONS", true),
			Path:    getString("MIGRATIONS_PATH", "./assets/migrations"),
		},
	}

	return cfg, nil
}

// Address returns the host:port pair the HTTP server binds to.
func (c *Config) Address() string {
	return c.HTTP.Host + ":" + c.HTTP.Port
}

// MustLoad panics if configuration cannot be loaded.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}

func getString(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			return parsed
		}
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.ParseBool(val); err == nil {
			return parsed
		}
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if parsed, err := time.ParseDuration(val); err == nil {
			return parsed
		}
	}
	return fallback
}
