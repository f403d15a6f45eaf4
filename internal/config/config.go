package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	CartBackendRedis = "redis"
	CartBackendMongo = "mongo"
)

type Config struct {
	HTTPPort string
	Env      string
	LogLevel string

	DBDriver        string
	DatabaseURL     string
	SQLitePath      string
	MigrationsPath  string
	AuthDatabaseURL string

	RedisAddr         string
	RedisPassword     string
	CartBackend       string
	MongoURI          string
	MongoDBName       string
	CartIdleTTL       time.Duration
	CartSweepInterval time.Duration

	KafkaBrokers     []string
	OrderEventsTopic string

	JWTSecret  string
	SessionTTL time.Duration

	PaymentSuccessRate float64
	PaymentDelay       time.Duration

	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration

	// AllowedOrigins may open the cart stream from a browser besides the
	// server's own origin.
	AllowedOrigins []string
}

// LoadDotEnv preloads .env.local and .env when present. Variables already set
// in the environment win.
func LoadDotEnv() error {
	for _, name := range []string{".env.local", ".env"} {
		if _, err := os.Stat(name); err != nil {
			continue
		}
		if err := godotenv.Load(name); err != nil {
			return fmt.Errorf("load %s: %w", name, err)
		}
	}
	return nil
}

func Load() (Config, error) {
	var errs []error

	cfg := Config{
		HTTPPort: getEnv("HTTP_PORT", "8080"),
		Env:      getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		AuthDatabaseURL: getEnv("AUTH_DATABASE_URL", ""),

		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		CartBackend:   strings.ToLower(getEnv("CART_BACKEND", CartBackendRedis)),
		MongoURI:      getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDBName:   getEnv("MONGO_DB_NAME", "storefront"),

		KafkaBrokers:     splitList(getEnv("KAFKA_BROKERS", "")),
		OrderEventsTopic: getEnv("ORDER_EVENTS_TOPIC", "order-events"),

		JWTSecret: getEnv("JWT_SECRET", ""),

		AllowedOrigins: splitList(getEnv("ALLOWED_ORIGINS", "")),
	}

	db, err := LoadDatabase()
	if err != nil {
		errs = append(errs, err)
	}
	cfg.DBDriver = db.Driver
	cfg.DatabaseURL = db.URL
	cfg.SQLitePath = db.SQLitePath
	cfg.MigrationsPath = db.MigrationsPath

	cfg.SessionTTL = getDuration("SESSION_TTL", 7*24*time.Hour, &errs)
	cfg.PaymentDelay = getDuration("PAYMENT_DELAY", 2*time.Second, &errs)
	cfg.RequestTimeout = getDuration("REQUEST_TIMEOUT", 30*time.Second, &errs)
	cfg.ShutdownTimeout = getDuration("SHUTDOWN_TIMEOUT", 10*time.Second, &errs)
	cfg.CartIdleTTL = getDuration("CART_IDLE_TTL", 30*time.Minute, &errs)
	cfg.CartSweepInterval = getDuration("CART_SWEEP_INTERVAL", time.Minute, &errs)

	rate, err := strconv.ParseFloat(getEnv("PAYMENT_SUCCESS_RATE", "0.9"), 64)
	if err != nil || rate < 0 || rate > 1 {
		errs = append(errs, errors.New("PAYMENT_SUCCESS_RATE must be a number between 0 and 1"))
	}
	cfg.PaymentSuccessRate = rate

	if cfg.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET is required"))
	}
	if cfg.AuthDatabaseURL == "" {
		cfg.AuthDatabaseURL = cfg.DatabaseURL
	}
	if cfg.AuthDatabaseURL == "" {
		errs = append(errs, errors.New("AUTH_DATABASE_URL is required"))
	}
	switch cfg.CartBackend {
	case CartBackendRedis, CartBackendMongo:
	default:
		errs = append(errs, fmt.Errorf("unknown CART_BACKEND %q", cfg.CartBackend))
	}

	if err := errors.Join(errs...); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Database is the subset of the configuration the maintenance commands need.
type Database struct {
	Driver         string
	URL            string
	SQLitePath     string
	MigrationsPath string
}

func LoadDatabase() (Database, error) {
	db := Database{
		Driver:         strings.ToLower(getEnv("DB_DRIVER", "sqlite")),
		URL:            getEnv("DATABASE_URL", ""),
		SQLitePath:     getEnv("SQLITE_PATH", "./storefront.db"),
		MigrationsPath: getEnv("MIGRATIONS_PATH", "./internal/repository/migrations"),
	}
	switch db.Driver {
	case "postgres":
		if db.URL == "" {
			return db, errors.New("DATABASE_URL is required when DB_DRIVER=postgres")
		}
	case "sqlite":
	default:
		return db, fmt.Errorf("unknown DB_DRIVER %q", db.Driver)
	}
	return db, nil
}

func (c Config) IsProduction() bool {
	return c.Env == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration, errs *[]error) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: %w", key, err))
		return defaultValue
	}
	return d
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
