package postgres

import (
	"context"
	"log"

	"go.uber.org/fx"
)

// FXModule provides the PostgreSQL client via dependency injection.
var FXModule = fx.Module("postgres",
	fx.Provide(
		NewConfig,
		NewPostgres,
		func(p *Postgres) Client { return p },
	),
	fx.Invoke(RegisterPostgresLifecycle),
)

// RegisterPostgresLifecycle registers the database client with the fx lifecycle
// system to ensure a graceful shutdown.
func RegisterPostgresLifecycle(lc fx.Lifecycle, pg *Postgres) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return pg.HealthCheck(ctx)
		},
		OnStop: func(ctx context.Context) error {
			log.Println("INFO: Shutting down database client")
			return pg.GracefulShutdown()
		},
	})
}
