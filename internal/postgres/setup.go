package postgres

import (
	"context"
	"fmt"
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Postgres is a wrapper around gorm.DB that provides connection setup,
// transaction scoping, and graceful shutdown.
//
// Returns *Postgres concrete type (following Go best practice: "accept
// interfaces, return structs"). Repositories should depend on the Client
// interface defined in interface.go.
type Postgres struct {
	cfg    Config
	client *gorm.DB
}

// NewPostgres creates a new Postgres instance with the provided configuration.
// It establishes the initial database connection and configures the pool.
func NewPostgres(cfg Config) (*Postgres, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	conn, err := connectToPostgres(cfg)
	if err != nil {
		return nil, fmt.Errorf("error in connecting to postgres: %w", err)
	}

	return &Postgres{cfg: cfg, client: conn}, nil
}

// connectToPostgres establishes a connection to the PostgreSQL database using the
// provided configuration, opens the connection with GORM, and configures the
// connection pool.
func connectToPostgres(cfg Config) (*gorm.DB, error) {
	pgConnStr := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.Connection.Host,
		cfg.Connection.Port,
		cfg.Connection.User,
		cfg.Connection.Password,
		cfg.Connection.DbName,
		cfg.Connection.SSLMode)

	database, err := gorm.Open(
		postgres.Open(pgConnStr),
		&gorm.Config{
			TranslateError: true,
		})

	if err != nil {
		return nil, fmt.Errorf("failed to connect to PostgreSQL database: %w", err)
	}

	databaseInstance, err := database.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get PostgreSQL database instance: %w", err)
	}

	// Pool defaults apply when config fields are zero.
	maxOpen := cfg.ConnectionDetails.MaxOpenConns
	if maxOpen == 0 {
		maxOpen = 50
	}
	maxIdle := cfg.ConnectionDetails.MaxIdleConns
	if maxIdle == 0 {
		maxIdle = 25
	}
	maxLifetime := cfg.ConnectionDetails.ConnMaxLifetime
	if maxLifetime == 0 {
		maxLifetime = 1 * time.Minute
	}

	databaseInstance.SetMaxOpenConns(maxOpen)
	databaseInstance.SetMaxIdleConns(maxIdle)
	databaseInstance.SetConnMaxLifetime(maxLifetime)

	log.Println("INFO: Successfully connected to PostgreSQL database")

	return database, nil
}

// DB returns the underlying GORM database handle.
func (p *Postgres) DB() *gorm.DB {
	return p.client
}

// HealthCheck pings the database to verify connectivity.
func (p *Postgres) HealthCheck(ctx context.Context) error {
	db, err := p.client.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance during health check: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("database ping failed during health check: %w", err)
	}
	return nil
}

// GracefulShutdown closes the underlying connection pool.
func (p *Postgres) GracefulShutdown() error {
	db, err := p.client.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance during shutdown: %w", err)
	}
	return db.Close()
}
