package common

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// AppConfig is loaded from the environment, with a .env file picked up
// for local development.
type AppConfig struct {
	Host         string
	Port         string
	Mode         string
	DatabaseDSN  string
	JwtSecret    string
	MaxIdleConns int
	MaxOpenConns int
}

func NewAppConfig() (*AppConfig, error) {
	// missing .env is fine, production injects real env vars
	_ = godotenv.Load()

	cfg := &AppConfig{
		Host:         os.Getenv("HOST"),
		Port:         envDefault("PORT", "8081"),
		Mode:         envDefault("APP_MODE", "debug"),
		DatabaseDSN:  os.Getenv("DATABASE_DSN"),
		JwtSecret:    os.Getenv("JWT_SECRET"),
		MaxIdleConns: envInt("DB_MAX_IDLE_CONNS", 5),
		MaxOpenConns: envInt("DB_MAX_OPEN_CONNS", 20),
	}

	return cfg, nil
}

func envDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
