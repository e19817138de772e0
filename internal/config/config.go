package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"uasz.sn/utilisateursapi/pkg/database"
)

type Config struct {
	AppEnv         string
	Port           string
	AllowedOrigins []string
	LogLevel       string
	SeedData       bool

	DBHost    string
	DBPort    string
	DBUser    string
	DBPass    string
	DBName    string
	DBSSLMode string
	RedisURL  string

	MeiliSearchHost string
	MeiliMasterKey  string

	CloudinaryURL          string
	CloudinaryUploadFolder string

	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration

	RateLimitWrites int64
	RateLimitWindow time.Duration
}

func Load() (*Config, error) {
	// Don't fail if .env doesn't exist (might be prod env vars)
	_ = godotenv.Load()

	appEnv := getEnv("APP_ENV", "development")
	cfg := &Config{
		AppEnv:         appEnv,
		Port:           getEnv("PORT", "8080"),
		AllowedOrigins: splitList(getEnv("ALLOWED_ORIGINS", "http://localhost:3000")),
		LogLevel:       getEnv("LOG_LEVEL", "info"),

		DBHost:    getEnv("DB_HOST", "localhost"),
		DBPort:    getEnv("DB_PORT", "5432"),
		DBUser:    getEnv("DB_USER", "postgres"),
		DBPass:    os.Getenv("DB_PASS"),
		DBName:    getEnv("DB_NAME", "utilisateurs"),
		DBSSLMode: getEnv("DB_SSLMODE", "disable"),
		RedisURL:  os.Getenv("REDIS_URL"),

		MeiliSearchHost: os.Getenv("MEILISEARCH_HOST"),
		MeiliMasterKey:  os.Getenv("MEILI_MASTER_KEY"),

		CloudinaryURL:          os.Getenv("CLOUDINARY_URL"),
		CloudinaryUploadFolder: getEnv("CLOUDINARY_UPLOAD_FOLDER", "etudiants"),
	}

	var err error
	if cfg.SeedData, err = strconv.ParseBool(getEnv("SEED_DATA", strconv.FormatBool(appEnv == "development"))); err != nil {
		return nil, fmt.Errorf("invalid SEED_DATA: %w", err)
	}
	if cfg.RequestTimeout, err = time.ParseDuration(getEnv("REQUEST_TIMEOUT", "15s")); err != nil {
		return nil, fmt.Errorf("invalid REQUEST_TIMEOUT: %w", err)
	}
	if cfg.ShutdownTimeout, err = time.ParseDuration(getEnv("SHUTDOWN_TIMEOUT", "10s")); err != nil {
		return nil, fmt.Errorf("invalid SHUTDOWN_TIMEOUT: %w", err)
	}
	if cfg.RateLimitWrites, err = strconv.ParseInt(getEnv("RATE_LIMIT_WRITES", "60"), 10, 64); err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_WRITES: %w", err)
	}
	if cfg.RateLimitWindow, err = time.ParseDuration(getEnv("RATE_LIMIT_WINDOW", "1m")); err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_WINDOW: %w", err)
	}

	return cfg, nil
}

func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

// Database returns the connection settings for pkg/database.
func (c *Config) Database() database.Options {
	return database.Options{
		Host:     c.DBHost,
		Port:     c.DBPort,
		User:     c.DBUser,
		Password: c.DBPass,
		Name:     c.DBName,
		SSLMode:  c.DBSSLMode,
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
