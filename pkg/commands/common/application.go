// Package common bootstraps the application for CLI commands: a connected
// pool, an event bus, and every module registered.
package common

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/alphaholdings/entity-registry/pkg/application"
	"github.com/alphaholdings/entity-registry/pkg/configuration"
	"github.com/alphaholdings/entity-registry/pkg/eventbus"
)

// GetDatabasePool connects a pgx pool. An empty dsn falls back to the
// configured database options.
func GetDatabasePool(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	if dsn == "" {
		dsn = configuration.Use().Database.Opts
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create database pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, errors.Wrap(err, "failed to connect to database")
	}
	return pool, nil
}

// NewApplicationWithDefaults builds an application on the configured database
// and registers the given modules. The caller owns the returned pool.
func NewApplicationWithDefaults(mods ...application.Module) (application.Application, *pgxpool.Pool, error) {
	conf := configuration.Use()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	pool, err := GetDatabasePool(ctx, "")
	if err != nil {
		return nil, nil, err
	}

	app := application.New(&application.ApplicationOptions{
		Pool:     pool,
		EventBus: eventbus.NewEventPublisher(conf.Logger()),
		Logger:   conf.Logger(),
	})
	for _, m := range mods {
		if err := m.Register(app); err != nil {
			pool.Close()
			return nil, nil, errors.Wrapf(err, "failed to register module %s", m.Name())
		}
	}
	return app, pool, nil
}
