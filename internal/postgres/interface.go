// Package postgres provides the PostgreSQL client used by the relational
// repositories (catalog, preferences, recommendation cache).
//
// The Postgres type implements the Client interface; repositories should
// depend on Client so they can be exercised against any GORM-backed database
// in tests.
package postgres

import (
	"context"

	"gorm.io/gorm"
)

// Client is the interface repositories depend on for relational access.
type Client interface {
	// DB returns the underlying GORM handle for query building.
	DB() *gorm.DB

	// Transaction runs fn inside a single database transaction.
	Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error

	// HealthCheck verifies connectivity.
	HealthCheck(ctx context.Context) error

	// GracefulShutdown closes the connection pool.
	GracefulShutdown() error
}
