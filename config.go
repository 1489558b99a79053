package main

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config aggregates runtime configuration read from the environment.
type Config struct {
	Addr        string
	DBDSN       string
	AutoMigrate bool
	JWTSecret   []byte
	LogLevel    string
}

func loadConfig() Config {
	// Best effort; a missing .env just means everything comes from the
	// real environment.
	_ = godotenv.Load()

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "dev-insecure-secret-change" // development fallback
	}

	cfg := Config{
		Addr:        getenv("LISTEN_ADDR", ":8081"),
		DBDSN:       os.Getenv("DB_DSN"),
		AutoMigrate: true,
		JWTSecret:   []byte(secret),
		LogLevel:    getenv("LOG_LEVEL", "info"),
	}
	switch strings.ToLower(os.Getenv("DB_AUTO_MIGRATE")) {
	case "false", "0", "no":
		cfg.AutoMigrate = false
	}
	return cfg
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
