package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/joho/godotenv"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Config holds everything the console and the local fake backend read from
// the environment.
type Config struct {
	Port        string
	GinMode     string
	BackendURL  string
	SessionDB   string
	HTTPTimeout time.Duration
	Currency    string
	LogLevel    slog.Level
	FakeAPIPort string
	JWTSecret   []byte
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// Load reads .env (if present) and the process environment.
func Load() Config {
	_ = godotenv.Load()

	timeout, err := time.ParseDuration(getEnv("HTTP_TIMEOUT", "10s"))
	if err != nil || timeout <= 0 {
		timeout = 10 * time.Second
	}

	return Config{
		Port:        getEnv("PORT", "8080"),
		GinMode:     os.Getenv("GIN_MODE"),
		BackendURL:  strings.TrimRight(getEnv("BACKEND_URL", "http://localhost:3000"), "/"),
		SessionDB:   getEnv("SESSION_DB", "admin_session.db"),
		HTTPTimeout: timeout,
		Currency:    getEnv("CURRENCY", "TND"),
		LogLevel:    parseLevel(os.Getenv("LOG_LEVEL")),
		FakeAPIPort: getEnv("FAKEAPI_PORT", "3000"),
		JWTSecret:   []byte(getEnv("JWT_SECRET", "food_delivery_super_secret_2024")),
	}
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	if n, err := strconv.Atoi(s); err == nil {
		return slog.Level(n)
	}
	return slog.LevelInfo
}

// OpenDB opens a sqlite database through gorm and auto-migrates tables.
func OpenDB(dsn string, tables ...any) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", dsn, err)
	}
	if len(tables) > 0 {
		if err := db.AutoMigrate(tables...); err != nil {
			return nil, fmt.Errorf("migrate %s: %w", dsn, err)
		}
	}
	return db, nil
}
