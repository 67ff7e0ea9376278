package store

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
)

// MarkStaleClones marks repositories stuck in status cloning as failed on
// startup. A clone runs synchronously inside one process, so a row still
// cloning after staleMin minutes belongs to a process that died mid-clone.
func MarkStaleClones(ctx context.Context, pool *pgxpool.Pool, staleMin int) error {
	tag, err := pool.Exec(ctx,
		`UPDATE repositories
		 SET status = 'failed',
		     error = 'interrupted: clone did not finish (service restarted)',
		     updated_at = now()
		 WHERE status = 'cloning'
		   AND updated_at < now() - make_interval(mins => $1)`,
		staleMin,
	)
	if err != nil {
		return fmt.Errorf("mark stale clones: %w", err)
	}
	if tag.RowsAffected() > 0 {
		slog.Warn("marked stale cloning repositories as failed",
			"count", tag.RowsAffected(),
			"stale_minutes", staleMin,
		)
	}
	return nil
}
