// Package store persists repository metadata and file contents in Postgres,
// keyed by repository + path.
package store

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	maxRetries    = 10
	retryBaseWait = 1 * time.Second
	retryMaxWait  = 10 * time.Second
)

// requiredTables that must exist for the service to function.
var requiredTables = []string{
	"repositories",
	"repo_files",
	"users",
}

// Connect creates a pgx connection pool with retry logic.
// It retries up to maxRetries times with exponential backoff.
func Connect(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database URL: %w", err)
	}

	config.MaxConns = 10
	config.MinConns = 1
	config.MaxConnLifetime = 30 * time.Minute
	config.MaxConnIdleTime = 5 * time.Minute

	var pool *pgxpool.Pool
	wait := retryBaseWait

	for attempt := 1; attempt <= maxRetries; attempt++ {
		pool, err = pgxpool.NewWithConfig(ctx, config)
		if err == nil {
			if pingErr := pool.Ping(ctx); pingErr == nil {
				slog.Info("database connected", "attempt", attempt)
				return pool, nil
			} else {
				err = pingErr
				pool.Close()
			}
		}

		if attempt == maxRetries {
			return nil, fmt.Errorf("database connection failed after %d attempts: %w", maxRetries, err)
		}

		slog.Warn("database connection failed, retrying",
			"attempt", attempt,
			"max_retries", maxRetries,
			"wait", wait.String(),
			"error", err,
		)

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("context cancelled during DB connect: %w", ctx.Err())
		case <-time.After(wait):
		}

		wait = wait * 2
		if wait > retryMaxWait {
			wait = retryMaxWait
		}
	}

	return nil, fmt.Errorf("database connection failed: %w", err)
}

// StartupChecks verifies that all required tables exist.
func StartupChecks(ctx context.Context, pool *pgxpool.Pool) error {
	slog.Info("running startup checks...")

	for _, table := range requiredTables {
		var exists bool
		err := pool.QueryRow(ctx,
			"SELECT EXISTS(SELECT 1 FROM information_schema.tables WHERE table_name = $1)", table,
		).Scan(&exists)
		if err != nil {
			return fmt.Errorf("check table %q: %w", table, err)
		}
		if !exists {
			return fmt.Errorf("required table %q does not exist — run migrations first", table)
		}
		slog.Debug("table check passed", "table", table)
	}

	slog.Info("all required tables present")
	return nil
}
