package postgres

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Connection holds the PostgreSQL connection parameters.
type Connection struct {
	Host     string `yaml:"host" env:"POSTGRES_HOST"`
	Port     string `yaml:"port" env:"POSTGRES_PORT"`
	User     string `yaml:"user" env:"POSTGRES_USER"`
	Password string `yaml:"password" env:"POSTGRES_PASSWORD"`
	DbName   string `yaml:"db_name" env:"POSTGRES_DB"`
	SSLMode  string `yaml:"ssl_mode" env:"POSTGRES_SSL_MODE"`
}

// ConnectionDetails holds the connection pool settings.
type ConnectionDetails struct {
	MaxOpenConns    int           `yaml:"max_open_conns" env:"POSTGRES_MAX_OPEN_CONNS"`
	MaxIdleConns    int           `yaml:"max_idle_conns" env:"POSTGRES_MAX_IDLE_CONNS"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime" env:"POSTGRES_CONN_MAX_LIFETIME"`
}

// Config holds the full PostgreSQL client configuration.
type Config struct {
	Connection        Connection
	ConnectionDetails ConnectionDetails
}

// NewConfig reads the PostgreSQL configuration from environment variables.
func NewConfig() Config {
	cfg := Config{
		Connection: Connection{
			Host:     envOr("POSTGRES_HOST", "localhost"),
			Port:     envOr("POSTGRES_PORT", "5432"),
			User:     envOr("POSTGRES_USER", "melodia"),
			Password: os.Getenv("POSTGRES_PASSWORD"),
			DbName:   envOr("POSTGRES_DB", "melodia"),
			SSLMode:  envOr("POSTGRES_SSL_MODE", "disable"),
		},
	}

	if v := os.Getenv("POSTGRES_MAX_OPEN_CONNS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.ConnectionDetails.MaxOpenConns = n
		}
	}
	if v := os.Getenv("POSTGRES_MAX_IDLE_CONNS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.ConnectionDetails.MaxIdleConns = n
		}
	}

	return cfg
}

// Validate ensures required fields are present.
func (c Config) Validate() error {
	if c.Connection.Host == "" {
		return fmt.Errorf("postgres: missing POSTGRES_HOST")
	}
	if c.Connection.DbName == "" {
		return fmt.Errorf("postgres: missing POSTGRES_DB")
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
