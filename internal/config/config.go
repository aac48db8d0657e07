// Package config loads the server configuration from environment variables.
package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"
)

// MinBcryptCost is the lowest work factor accepted for password hashes.
const MinBcryptCost = 8

// TokenTTL is the lifetime of an issued access token.
const TokenTTL = 24 * time.Hour

// ErrMissingJWTSecret is returned by Validate when JWT_SECRET is empty.
var ErrMissingJWTSecret = errors.New("JWT_SECRET is not set")

// Config holds every setting the server reads at startup.
type Config struct {
	AppEnv string
	Port   string

	JWTSecret  string
	BcryptCost int

	DB DBConfig

	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int

	RateLimitMax    int
	RateLimitWindow time.Duration

	CORSAllowedOrigins []string
	ShutdownTimeout    time.Duration
}

// DBConfig selects and addresses the relational store.
type DBConfig struct {
	Driver         string // "postgres" or "sqlite"
	URL            string // full DSN; overrides the discrete fields
	Host           string
	Port           string
	User           string
	Password       string
	Name           string
	SSLMode        string
	SQLitePath     string
	ConnectTimeout time.Duration
	RunMigrations  bool
}

// Load reads the configuration from the environment, applying defaults.
func Load() Config {
	cost := getint("BCRYPT_COST", 10)
	if cost < MinBcryptCost {
		cost = MinBcryptCost
	}

	return Config{
		AppEnv: getenv("APP_ENV", "development"),
		Port:   getenv("PORT", "8080"),

		JWTSecret:  os.Getenv("JWT_SECRET"),
		BcryptCost: cost,

		DB: DBConfig{
			Driver:         strings.ToLower(getenv("DB_DRIVER", "postgres")),
			URL:            os.Getenv("DATABASE_URL"),
			Host:           getenv("DB_HOST", "localhost"),
			Port:           getenv("DB_PORT", "5432"),
			User:           getenv("DB_USER", "postgres"),
			Password:       os.Getenv("DB_PASSWORD"),
			Name:           getenv("DB_NAME", "taskhive"),
			SSLMode:        getenv("DB_SSLMODE", "disable"),
			SQLitePath:     getenv("SQLITE_PATH", "./taskhive.db"),
			ConnectTimeout: getdur("DB_CONNECT_TIMEOUT", 60*time.Second),
			RunMigrations:  getbool("RUN_MIGRATIONS", true),
		},

		RedisHost:     os.Getenv("REDIS_HOST"),
		RedisPort:     getenv("REDIS_PORT", "6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       getint("REDIS_DB", 0),

		RateLimitMax:    getint("RATE_LIMIT_MAX", 20),
		RateLimitWindow: getdur("RATE_LIMIT_WINDOW", time.Minute),

		CORSAllowedOrigins: splitList(getenv("CORS_ALLOWED_ORIGINS", "http://localhost:3000")),
		ShutdownTimeout:    getdur("SHUTDOWN_TIMEOUT", 10*time.Second),
	}
}

// Validate reports settings the server cannot start without.
func (c Config) Validate() error {
	if c.JWTSecret == "" {
		return ErrMissingJWTSecret
	}
	return nil
}

// IsProduction reports whether APP_ENV is "production".
func (c Config) IsProduction() bool {
	return strings.EqualFold(c.AppEnv, "production")
}

// RedisEnabled reports whether a Redis host was configured.
func (c Config) RedisEnabled() bool {
	return c.RedisHost != ""
}

func getenv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func getbool(key string, def bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

func getint(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return i
}

func getdur(key string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}

func splitList(v string) []string {
	var out []string
	for _, p := range strings.Split(v, ",") {
		if s := strings.TrimRight(strings.TrimSpace(p), "/"); s != "" {
			out = append(out, s)
		}
	}
	return out
}
