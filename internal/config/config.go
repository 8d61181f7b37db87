// Package config collects process configuration into one explicitly injected
// struct. Nothing below main reads the environment directly.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

type Config struct {
	ListenAddr         string
	DatabaseURL        string
	AccessTokenSecret  string
	RefreshTokenSecret string
	RapidAPIKey        string
	RapidAPIHost       string
	AllowedOrigins     []string
}

// Load builds a Config from the environment. The two JWT secrets are
// mandatory and must differ; leaking one class of token must not allow
// forging the other.
func Load() (*Config, error) {
	cfg := &Config{
		ListenAddr:         getEnv("LISTEN_ADDR", "0.0.0.0:8080"),
		DatabaseURL:        dbConnString(),
		AccessTokenSecret:  os.Getenv("JWT_ACCESS_SECRET"),
		RefreshTokenSecret: os.Getenv("JWT_REFRESH_SECRET"),
		RapidAPIKey:        os.Getenv("RAPIDAPI_KEY"),
		RapidAPIHost:       getEnv("RAPIDAPI_HOST", "exercisedb.p.rapidapi.com"),
		AllowedOrigins:     strings.Split(getEnv("ALLOWED_ORIGINS", "*"), ","),
	}

	if cfg.AccessTokenSecret == "" || cfg.RefreshTokenSecret == "" {
		return nil, errors.New("JWT_ACCESS_SECRET and JWT_REFRESH_SECRET must be set")
	}
	if cfg.AccessTokenSecret == cfg.RefreshTokenSecret {
		return nil, errors.New("JWT_ACCESS_SECRET and JWT_REFRESH_SECRET must differ")
	}

	return cfg, nil
}

// DatabaseURL resolves the connection string alone, for tools that talk to
// the database without needing the full validated Config.
func DatabaseURL() string {
	return dbConnString()
}

func dbConnString() string {
	if url := os.Getenv("DATABASE_URL"); url != "" {
		return url
	}
	dbName, user, password, host, port := dbConfig()
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", user, password, host, port, dbName)
}

func dbConfig() (dbName string, user string, password string, host string, port string) {
	dbName = os.Getenv("POSTGRES_DB")
	user = os.Getenv("POSTGRES_USER")
	password = os.Getenv("POSTGRES_PASSWORD")
	host = os.Getenv("POSTGRES_HOST")
	port = os.Getenv("POSTGRES_PORT")
	return
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
