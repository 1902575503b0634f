package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
)

// Config is read from the environment once at startup.
type Config struct {
	Addr   string
	WebDir string

	StoreDriver   string
	SQLitePath    string
	DatabaseURL   string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	KeyPrefix     string

	PasscodeHash string

	OIDCIssuer         string
	OIDCClientID       string
	OIDCClientSecret   string
	OIDCRedirectURL    string
	OIDCAllowedSubject string
}

func loadConfig() (Config, error) {
	cfg := Config{
		Addr:               env("ADDR", ":8080"),
		WebDir:             os.Getenv("WEB_DIR"),
		StoreDriver:        env("STORE_DRIVER", "sqlite"),
		SQLitePath:         env("SQLITE_PATH", "scaleshift.db"),
		DatabaseURL:        os.Getenv("DATABASE_URL"),
		RedisAddr:          env("REDIS_ADDR", "localhost:6379"),
		RedisPassword:      os.Getenv("REDIS_PASSWORD"),
		KeyPrefix:          os.Getenv("KEY_PREFIX"),
		PasscodeHash:       os.Getenv("PASSCODE_HASH"),
		OIDCIssuer:         os.Getenv("OIDC_ISSUER"),
		OIDCClientID:       os.Getenv("OIDC_CLIENT_ID"),
		OIDCClientSecret:   os.Getenv("OIDC_CLIENT_SECRET"),
		OIDCRedirectURL:    os.Getenv("OIDC_REDIRECT_URL"),
		OIDCAllowedSubject: os.Getenv("OIDC_ALLOWED_SUBJECT"),
	}

	dbIndex, err := strconv.Atoi(env("REDIS_DB", "0"))
	if err != nil {
		return Config{}, fmt.Errorf("REDIS_DB: %w", err)
	}
	cfg.RedisDB = dbIndex

	switch cfg.StoreDriver {
	case "memory", "sqlite", "redis":
	case "postgres":
		if cfg.DatabaseURL == "" {
			return Config{}, errors.New("DATABASE_URL is required for STORE_DRIVER=postgres")
		}
	default:
		return Config{}, fmt.Errorf("unknown STORE_DRIVER %q", cfg.StoreDriver)
	}

	if cfg.OIDCIssuer != "" && cfg.OIDCAllowedSubject == "" {
		return Config{}, errors.New("OIDC_ALLOWED_SUBJECT is required when OIDC_ISSUER is set")
	}
	if cfg.OIDCAllowedSubject != "" && cfg.OIDCIssuer == "" {
		return Config{}, errors.New("OIDC_ISSUER is required when OIDC_ALLOWED_SUBJECT is set")
	}
	return cfg, nil
}

func env(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
