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

type Config struct {
	App        AppConfig
	Database   DatabaseConfig
	JWT        JWTConfig
	Redis      RedisConfig
	LLM        LLMConfig
	Google     GoogleOAuthConfig
	Migrations MigrationsConfig
}

type AppConfig struct {
	AppName     string
	Environment string
	HTTPPort    string
	FrontendURL string
}

type DatabaseConfig struct {
	DBHost     string
	DBPort     string
	DBName     string
	DBUser     string
	DBPassword string
	DBSSLMode  string

	ConnectTimeout        time.Duration
	PoolMaxConns          int32
	PoolMinConns          int32
	PoolMaxConnLifetime   time.Duration
	PoolMaxConnIdleTime   time.Duration
	PoolHealthCheckPeriod time.Duration
}

type JWTConfig struct {
	AccessSecret     string
	RefreshSecret    string
	AccessExpiresIn  time.Duration
	RefreshExpiresIn time.Duration
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	TTL      time.Duration
}

type LLMConfig struct {
	APIKey   string
	BaseURL  string
	Model    string
	DocsPath string
	Timeout  time.Duration
}

type GoogleOAuthConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
}

func (g GoogleOAuthConfig) Enabled() bool {
	return g.ClientID != "" && g.ClientSecret != "" && g.RedirectURL != ""
}

type MigrationsConfig struct {
	Dir string
}

var errMissingRequiredEnv = errors.New("missing required environment variables")

func Load() (Config, error) {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := Config{}

	var missing []string
	req := func(key string) string {
		v := strings.TrimSpace(os.Getenv(key))
		if v == "" {
			missing = append(missing, key)
		}
		return v
	}
	opt := func(key string) string {
		return strings.TrimSpace(os.Getenv(key))
	}

	cfg.App = AppConfig{
		AppName:     req("APP_NAME"),
		Environment: req("APP_ENV"),
		HTTPPort:    req("HTTP_PORT"),
		FrontendURL: strings.TrimRight(stringOrDefault(opt("FRONTEND_URL"), "http://localhost:5173"), "/"),
	}

	cfg.Database = DatabaseConfig{
		DBHost:     opt("DB_HOST"),
		DBPort:     opt("DB_PORT"),
		DBName:     opt("DB_NAME"),
		DBUser:     opt("DB_USER"),
		DBPassword: opt("DB_PASSWORD"),
		DBSSLMode:  stringOrDefault(opt("DB_SSL_MODE"), "disable"),

		ConnectTimeout:        durationSeconds(opt("DB_CONNECT_TIMEOUT"), 5*time.Second),
		PoolMaxConns:          int32(intOrDefault(opt("DB_POOL_MAX_CONNS"), 10)),
		PoolMinConns:          int32(intOrDefault(opt("DB_POOL_MIN_CONNS"), 0)),
		PoolMaxConnLifetime:   durationSeconds(opt("DB_POOL_MAX_CONN_LIFETIME"), time.Hour),
		PoolMaxConnIdleTime:   durationSeconds(opt("DB_POOL_MAX_CONN_IDLE_TIME"), 30*time.Minute),
		PoolHealthCheckPeriod: durationSeconds(opt("DB_POOL_HEALTH_CHECK_PERIOD"), time.Minute),
	}

	cfg.JWT = JWTConfig{
		AccessSecret:     req("JWT_ACCESS_SECRET"),
		RefreshSecret:    req("JWT_REFRESH_SECRET"),
		AccessExpiresIn:  durationSeconds(opt("JWT_ACCESS_EXPIRES_IN"), 24*time.Hour),
		RefreshExpiresIn: durationSeconds(opt("JWT_REFRESH_EXPIRES_IN"), 7*24*time.Hour),
	}

	cfg.Redis = RedisConfig{
		Host:     stringOrDefault(opt("REDIS_HOST"), "localhost"),
		Port:     stringOrDefault(opt("REDIS_PORT"), "6379"),
		Password: opt("REDIS_PASSWORD"),
		TTL:      durationSeconds(opt("REDIS_TTL"), 600*time.Second),
	}

	cfg.LLM = LLMConfig{
		APIKey:   opt("OPENAI_API_KEY"),
		BaseURL:  opt("OPENAI_BASE_URL"),
		Model:    stringOrDefault(opt("OPENAI_MODEL"), "gpt-4o-mini"),
		DocsPath: opt("CHATBOT_DOCS_PATH"),
		Timeout:  durationSeconds(opt("OPENAI_TIMEOUT"), 30*time.Second),
	}

	cfg.Google = GoogleOAuthConfig{
		ClientID:     opt("GOOGLE_CLIENT_ID"),
		ClientSecret: opt("GOOGLE_CLIENT_SECRET"),
		RedirectURL:  opt("GOOGLE_CALLBACK_URL"),
	}

	cfg.Migrations = MigrationsConfig{
		Dir: stringOrDefault(opt("MIGRATIONS_DIR"), "migrations"),
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errMissingRequiredEnv, strings.Join(missing, ", "))
	}

	return cfg, nil
}

func stringOrDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

func intOrDefault(raw string, def int) int {
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return def
	}
	return v
}

// durationSeconds accepts either a Go duration ("15m") or a bare number of seconds.
func durationSeconds(raw string, def time.Duration) time.Duration {
	if raw == "" {
		return def
	}
	if d, err := time.ParseDuration(raw); err == nil && d > 0 {
		return d
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		return def
	}
	return time.Duration(v) * time.Second
}
