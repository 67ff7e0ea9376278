package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/repochat/repochat/internal/model"
)

// Store wraps the connection pool with repository/file operations.
type Store struct {
	pool *pgxpool.Pool
}

// New creates a Store backed by pool.
func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// Pool exposes the underlying pool for health checks.
func (s *Store) Pool() *pgxpool.Pool {
	return s.pool
}

// CreateRepo inserts a repository row in status cloning and returns it.
// A repeated clone of the same full name reuses the existing row.
func (s *Store) CreateRepo(ctx context.Context, fullName, url string) (*model.Repo, error) {
	repoID := uuid.NewString()

	row := s.pool.QueryRow(ctx,
		`INSERT INTO repositories (repo_id, full_name, url, status, error, file_count, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, '', 0, now(), now())
		 ON CONFLICT (full_name) DO UPDATE
		   SET url = EXCLUDED.url, status = EXCLUDED.status, error = '', updated_at = now()
		 RETURNING repo_id, full_name, url, status, error, file_count, created_at, updated_at`,
		repoID, fullName, url, model.RepoStatusCloning,
	)
	return scanRepo(row)
}

// SetRepoStatus updates a repository's status, error text, and file count.
func (s *Store) SetRepoStatus(ctx context.Context, repoID, status, errText string, fileCount int) error {
	_, err := s.pool.Exec(ctx,
		`UPDATE repositories
		 SET status = $2, error = $3, file_count = $4, updated_at = now()
		 WHERE repo_id = $1`,
		repoID, status, errText, fileCount,
	)
	if err != nil {
		return fmt.Errorf("update repo status: %w", err)
	}
	return nil
}

// UpsertFileContent stores content for (repoID, path), replacing any
// previous value. Sentinel placeholders are stored like any other string.
func (s *Store) UpsertFileContent(ctx context.Context, repoID, path, content string) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO repo_files (repo_id, path, content)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (repo_id, path) DO UPDATE SET content = EXCLUDED.content`,
		repoID, path, content,
	)
	if err != nil {
		return fmt.Errorf("upsert file %s: %w", path, err)
	}
	return nil
}

// FileContent returns the stored content for (repoID, path). ok is false
// when the store holds nothing for the path.
func (s *Store) FileContent(ctx context.Context, repoID, path string) (string, bool, error) {
	var content string
	err := s.pool.QueryRow(ctx,
		`SELECT content FROM repo_files WHERE repo_id = $1 AND path = $2`,
		repoID, path,
	).Scan(&content)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("read file %s: %w", path, err)
	}
	return content, true, nil
}

// ListFiles returns all stored paths for a repository, ordered by path so
// enumeration order is stable across calls.
func (s *Store) ListFiles(ctx context.Context, repoID string) ([]string, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT path FROM repo_files WHERE repo_id = $1 ORDER BY path`,
		repoID,
	)
	if err != nil {
		return nil, fmt.Errorf("list files: %w", err)
	}
	defer rows.Close()

	var paths []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, fmt.Errorf("scan file row: %w", err)
		}
		paths = append(paths, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("file rows iteration: %w", err)
	}
	return paths, nil
}

// RepoByID returns a repository by id, or ok=false when absent.
func (s *Store) RepoByID(ctx context.Context, repoID string) (*model.Repo, bool, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT repo_id, full_name, url, status, error, file_count, created_at, updated_at
		 FROM repositories WHERE repo_id = $1`,
		repoID,
	)
	repo, err := scanRepo(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return repo, true, nil
}

// RepoByFullName returns a repository by owner/name, or ok=false when absent.
func (s *Store) RepoByFullName(ctx context.Context, fullName string) (*model.Repo, bool, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT repo_id, full_name, url, status, error, file_count, created_at, updated_at
		 FROM repositories WHERE full_name = $1`,
		fullName,
	)
	repo, err := scanRepo(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return repo, true, nil
}

// ListRepos returns all repositories, newest first.
func (s *Store) ListRepos(ctx context.Context) ([]model.Repo, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT repo_id, full_name, url, status, error, file_count, created_at, updated_at
		 FROM repositories ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list repos: %w", err)
	}
	defer rows.Close()

	repos := make([]model.Repo, 0)
	for rows.Next() {
		repo, err := scanRepo(rows)
		if err != nil {
			return nil, err
		}
		repos = append(repos, *repo)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo rows iteration: %w", err)
	}
	return repos, nil
}

// DeleteRepo removes a repository row and all of its stored files.
func (s *Store) DeleteRepo(ctx context.Context, repoID string) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin delete: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM repo_files WHERE repo_id = $1`, repoID); err != nil {
		return fmt.Errorf("delete repo files: %w", err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM repositories WHERE repo_id = $1`, repoID); err != nil {
		return fmt.Errorf("delete repo: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit delete: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRepo(row rowScanner) (*model.Repo, error) {
	var r model.Repo
	err := row.Scan(
		&r.RepoID, &r.FullName, &r.URL, &r.Status, &r.Error,
		&r.FileCount, &r.CreatedAt, &r.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &r, nil
}
