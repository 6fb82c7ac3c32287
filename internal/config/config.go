package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"
)

const (
	defaultDatabaseURL    = "pokedex.db"
	defaultHTTPAddr       = ":8080"
	defaultJWTTTL         = "24h"
	defaultJWTSecret      = "change-me-jwt-secret"
	defaultPokeAPIBaseURL = "https://pokeapi.co/api/v2"
	defaultPokeAPITimeout = "10s"
)

type Config struct {
	AppEnv         string
	DatabaseURL    string
	HTTPAddr       string
	JWTSecret      string
	JWTTTL         time.Duration
	PokeAPIBaseURL string
	PokeAPITimeout time.Duration
}

func Load() (*Config, error) {
	cfg := &Config{
		AppEnv:         strings.ToLower(getenv("APP_ENV", "dev")),
		DatabaseURL:    getenv("DATABASE_URL", defaultDatabaseURL),
		HTTPAddr:       getenv("HTTP_ADDR", defaultHTTPAddr),
		JWTSecret:      getenv("JWT_SECRET", defaultJWTSecret),
		PokeAPIBaseURL: strings.TrimRight(getenv("POKEAPI_BASE_URL", defaultPokeAPIBaseURL), "/"),
	}

	ttl, err := time.ParseDuration(getenv("JWT_TTL", defaultJWTTTL))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_TTL: %w", err)
	}
	cfg.JWTTTL = ttl

	timeout, err := time.ParseDuration(getenv("POKEAPI_TIMEOUT", defaultPokeAPITimeout))
	if err != nil {
		return nil, fmt.Errorf("invalid POKEAPI_TIMEOUT: %w", err)
	}
	cfg.PokeAPITimeout = timeout

	if cfg.JWTSecret == defaultJWTSecret {
		if cfg.AppEnv != "dev" {
			return nil, fmt.Errorf("JWT_SECRET must be set when APP_ENV=%s", cfg.AppEnv)
		}
		log.Println("WARNING: JWT_SECRET not set, using insecure dev default")
	}

	return cfg, nil
}

func getenv(key, fallback string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	return v
}
