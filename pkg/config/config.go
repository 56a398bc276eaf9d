package config

import (
	"errors"
	"fmt"
	"io/fs"
	"slices"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds every runtime setting of the API process.
type Config struct {
	AppEnv string
	Port   string

	JWTSecret string
	JWTTTL    time.Duration
	JWTIssuer string

	DBDriver string
	DBDSN    string

	CacheDriver   string
	CacheMaxItems int
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// TokenGateEnabled turns the revocation gate off for isolated test runs.
	TokenGateEnabled     bool
	StoreFailurePolicy   string
	SessionWatchInterval time.Duration

	CORSOrigins []string

	RateLimitWindowSeconds int
	RateLimitCapacity      int

	LogLevel          string
	LogPretty         bool
	LogFile           string
	LogFileMaxSizeMB  int
	LogFileMaxBackups int
	LogFileMaxAgeDays int
}

var (
	validEnvs     = []string{"development", "test", "staging", "production"}
	validDrivers  = []string{"sqlite", "mysql", "postgres"}
	validCaches   = []string{"memory", "redis"}
	validPolicies = []string{"fail_closed", "fail_open"}
)

// loadDotEnv only reads .env files outside production.
// A missing file is fine: the host environment may already carry everything.
func loadDotEnv(appEnv string, files ...string) error {
	if appEnv == "production" {
		return nil
	}
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("config: load env file: %w", err)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app_env", "development")
	v.SetDefault("port", "5000")

	v.SetDefault("jwt_secret_key", "")
	v.SetDefault("jwt_ttl", "168h")
	v.SetDefault("jwt_issuer", "expense-tracker")

	v.SetDefault("db_driver", "sqlite")
	v.SetDefault("db_dsn", "app.db")

	v.SetDefault("cache_driver", "memory")
	v.SetDefault("cache_max_items", 0)
	v.SetDefault("redis_addr", "localhost:6379")
	v.SetDefault("redis_password", "")
	v.SetDefault("redis_db", 0)

	v.SetDefault("token_gate_enabled", true)
	v.SetDefault("token_store_failure_policy", "fail_closed")
	v.SetDefault("session_watch_interval", "15s")

	v.SetDefault("cors_origins", "http://localhost:3000,http://127.0.0.1:3000")

	v.SetDefault("rate_limit_window_seconds", 10)
	v.SetDefault("rate_limit_capacity", 5)

	v.SetDefault("log_level", "info")
	v.SetDefault("log_pretty", false)
	v.SetDefault("log_file", "")
	v.SetDefault("log_file_max_size_mb", 100)
	v.SetDefault("log_file_max_backups", 5)
	v.SetDefault("log_file_max_age_days", 30)
}

// Load reads optional .env files and then the process environment.
// Environment variables use the upper-case form of the keys above, e.g. JWT_TTL.
func Load(envFiles ...string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	if err := loadDotEnv(v.GetString("app_env"), envFiles...); err != nil {
		return nil, err
	}

	cfg := &Config{
		AppEnv: strings.ToLower(strings.TrimSpace(v.GetString("app_env"))),
		Port:   v.GetString("port"),

		JWTSecret: v.GetString("jwt_secret_key"),
		JWTTTL:    v.GetDuration("jwt_ttl"),
		JWTIssuer: v.GetString("jwt_issuer"),

		DBDriver: strings.ToLower(v.GetString("db_driver")),
		DBDSN:    v.GetString("db_dsn"),

		CacheDriver:   strings.ToLower(v.GetString("cache_driver")),
		CacheMaxItems: v.GetInt("cache_max_items"),
		RedisAddr:     v.GetString("redis_addr"),
		RedisPassword: v.GetString("redis_password"),
		RedisDB:       v.GetInt("redis_db"),

		TokenGateEnabled:     v.GetBool("token_gate_enabled"),
		StoreFailurePolicy:   strings.ToLower(v.GetString("token_store_failure_policy")),
		SessionWatchInterval: v.GetDuration("session_watch_interval"),

		CORSOrigins: splitList(v.GetString("cors_origins")),

		RateLimitWindowSeconds: v.GetInt("rate_limit_window_seconds"),
		RateLimitCapacity:      v.GetInt("rate_limit_capacity"),

		LogLevel:          strings.ToLower(v.GetString("log_level")),
		LogPretty:         v.GetBool("log_pretty"),
		LogFile:           v.GetString("log_file"),
		LogFileMaxSizeMB:  v.GetInt("log_file_max_size_mb"),
		LogFileMaxBackups: v.GetInt("log_file_max_backups"),
		LogFileMaxAgeDays: v.GetInt("log_file_max_age_days"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings the process cannot start with.
func (c *Config) Validate() error {
	if !slices.Contains(validEnvs, c.AppEnv) {
		return fmt.Errorf("config: APP_ENV must be one of %v, got %q", validEnvs, c.AppEnv)
	}
	if !slices.Contains(validDrivers, c.DBDriver) {
		return fmt.Errorf("config: unsupported DB_DRIVER %q", c.DBDriver)
	}
	if !slices.Contains(validCaches, c.CacheDriver) {
		return fmt.Errorf("config: unsupported CACHE_DRIVER %q", c.CacheDriver)
	}
	if !slices.Contains(validPolicies, c.StoreFailurePolicy) {
		return fmt.Errorf("config: TOKEN_STORE_FAILURE_POLICY must be one of %v, got %q", validPolicies, c.StoreFailurePolicy)
	}
	if c.JWTTTL <= 0 {
		return errors.New("config: JWT_TTL must be positive")
	}
	if c.IsProduction() && c.JWTSecret == "" {
		return errors.New("config: JWT_SECRET_KEY must be set in production")
	}
	if c.JWTSecret == "" {
		// dev and test only; production was rejected above
		c.JWTSecret = "dev-secret-change-me"
	}
	if c.SessionWatchInterval <= 0 {
		c.SessionWatchInterval = 15 * time.Second
	}
	return nil
}

func (c *Config) IsProduction() bool { return c.AppEnv == "production" }

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string { return ":" + c.Port }

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
