package config

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	DBDSN          string
	GoogleClientID string
	ListenAddr     string
	Environment    string
	MigrationsPath string
	FrontendURLs   []string
}

func Load() (*Config, error) {
	// .env is optional; environment variables win either way.
	if err := godotenv.Load(".env"); err != nil {
		log.Println("no .env file found, using environment variables")
	}

	cfg := &Config{
		DBDSN:          os.Getenv("DB_DSN"),
		GoogleClientID: os.Getenv("GOOGLE_CLIENT_ID"),
		ListenAddr:     os.Getenv("LISTEN_ADDR"),
		Environment:    os.Getenv("ENV"),
		MigrationsPath: os.Getenv("MIGRATIONS_PATH"),
		FrontendURLs:   splitURLs(os.Getenv("FRONTEND_URLS")),
	}

	if cfg.Environment == "" {
		cfg.Environment = "development"
	}
	if cfg.ListenAddr == "" {
		cfg.ListenAddr = ":8000"
	}
	if cfg.MigrationsPath == "" {
		cfg.MigrationsPath = "migrations"
	}

	// An empty DSN falls back to the in-memory store, which only makes
	// sense for local development.
	if cfg.DBDSN == "" && cfg.Environment == "production" {
		return nil, fmt.Errorf("DB_DSN is required in production")
	}

	return cfg, nil
}

// InMemory reports whether the service should run against the in-memory
// store instead of Postgres.
func (c *Config) InMemory() bool {
	return c.DBDSN == "" || c.DBDSN == "inmem"
}

// splitURLs accepts comma or whitespace separated origin lists.
func splitURLs(s string) []string {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n'
	})
	urls := make([]string, 0, len(fields))
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			urls = append(urls, f)
		}
	}
	return urls
}
