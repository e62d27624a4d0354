package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Config keeps runtime settings for the server.
type Config struct {
	Addr            string
	DatabaseURL     string
	JWTSecret       string
	RefreshSecret   string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
	CleanupInterval time.Duration
}

// Load reads configuration from environment variables with sane defaults.
func Load() (Config, error) {
	cfg := Config{
		Addr:            strings.TrimSpace(os.Getenv("ADDR")),
		DatabaseURL:     strings.TrimSpace(os.Getenv("DATABASE_URL")),
		JWTSecret:       strings.TrimSpace(os.Getenv("JWT_SECRET")),
		RefreshSecret:   strings.TrimSpace(os.Getenv("REFRESH_TOKEN_SECRET")),
		AccessTokenTTL:  parseDuration(os.Getenv("ACCESS_TOKEN_TTL"), time.Hour),
		RefreshTokenTTL: parseDuration(os.Getenv("REFRESH_TOKEN_TTL"), 7*24*time.Hour),
		CleanupInterval: parseDuration(os.Getenv("TOKEN_CLEANUP_INTERVAL"), 12*time.Hour),
	}

	if cfg.Addr == "" {
		if port := strings.TrimSpace(os.Getenv("PORT")); port != "" {
			cfg.Addr = ":" + port
		} else {
			cfg.Addr = ":3001"
		}
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = "habit_tracker.db"
	}

	if cfg.JWTSecret == "" {
		return cfg, fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.RefreshSecret == "" {
		return cfg, fmt.Errorf("REFRESH_TOKEN_SECRET is required")
	}

	return cfg, nil
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}
