package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Config holds the runtime settings for the server binary. Every field has a
// default so a bare environment still boots.
type Config struct {
	// Addr is the listen address for the HTTP/websocket server.
	Addr string
	// JWTSecret signs room tokens. Override it outside local development.
	JWTSecret string
	// TurnTimer bounds how long a player may hold the turn before the server
	// plays for them. Zero disables forced moves.
	TurnTimer time.Duration
	// LogLevel is a logrus level name (debug, info, warn, error).
	LogLevel logrus.Level
}

// Load reads .env if present, then the process environment.
func Load() Config {
	_ = godotenv.Load()

	cfg := Config{
		Addr:      getEnv("WIZARD_ADDR", ":8080"),
		JWTSecret: getEnv("WIZARD_JWT_SECRET", "dev-secret-change-me"),
		TurnTimer: time.Duration(getEnvInt("WIZARD_TURN_TIMER_SEC", 30)) * time.Second,
		LogLevel:  logrus.InfoLevel,
	}

	if raw := os.Getenv("WIZARD_LOG_LEVEL"); raw != "" {
		if lvl, err := logrus.ParseLevel(raw); err == nil {
			cfg.LogLevel = lvl
		}
	}
	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
