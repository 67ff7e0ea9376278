package service

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/repochat/repochat/internal/gitrepo"
	"github.com/repochat/repochat/internal/model"
	"github.com/repochat/repochat/internal/store"
)

// IngestService clones a repository and persists its file contents.
type IngestService struct {
	store     *store.Store
	cloneBase string
}

// NewIngestService creates an IngestService cloning under cloneBase.
func NewIngestService(st *store.Store, cloneBase string) *IngestService {
	return &IngestService{store: st, cloneBase: cloneBase}
}

// WorkingTree returns the clone directory used for a repository.
func (s *IngestService) WorkingTree(repoID string) string {
	return filepath.Join(s.cloneBase, repoID)
}

// CloneAndStore clones url, walks the working tree, and stores every file's
// content (sentinels applied at read time). The repository row moves
// cloning → ready, or → failed with the error recorded.
func (s *IngestService) CloneAndStore(ctx context.Context, url string, ignore []string) (*model.Repo, error) {
	fullName, err := FullNameFromURL(url)
	if err != nil {
		return nil, err
	}

	repo, err := s.store.CreateRepo(ctx, fullName, url)
	if err != nil {
		return nil, fmt.Errorf("create repo: %w", err)
	}

	start := time.Now()
	dir := s.WorkingTree(repo.RepoID)

	fail := func(cause error) (*model.Repo, error) {
		if stErr := s.store.SetRepoStatus(ctx, repo.RepoID, model.RepoStatusFailed, cause.Error(), 0); stErr != nil {
			slog.Error("failed to record clone failure", "repo_id", repo.RepoID, "error", stErr)
		}
		return nil, cause
	}

	// A re-clone of a known repo reuses its row and directory; go-git
	// refuses to clone into a non-empty dir, so start clean.
	if err := os.RemoveAll(dir); err != nil {
		return fail(fmt.Errorf("reset working tree: %w", err))
	}
	if err := gitrepo.Clone(ctx, url, dir); err != nil {
		return fail(err)
	}

	files, err := gitrepo.ListFiles(dir, ignore)
	if err != nil {
		return fail(err)
	}

	for _, path := range files {
		content := gitrepo.ReadFile(dir, path)
		if err := s.store.UpsertFileContent(ctx, repo.RepoID, path, content); err != nil {
			return fail(err)
		}
	}

	if err := s.store.SetRepoStatus(ctx, repo.RepoID, model.RepoStatusReady, "", len(files)); err != nil {
		return nil, fmt.Errorf("mark repo ready: %w", err)
	}

	repo.Status = model.RepoStatusReady
	repo.FileCount = len(files)

	slog.Info("repository ingested",
		"repo_id", repo.RepoID,
		"full_name", fullName,
		"files", len(files),
		"latency_ms", time.Since(start).Milliseconds(),
	)
	return repo, nil
}

// FullNameFromURL derives "owner/repo" from a clone URL. Works for https,
// ssh, and scp-style URLs; the trailing .git suffix is dropped.
func FullNameFromURL(url string) (string, error) {
	trimmed := strings.TrimSuffix(strings.TrimRight(url, "/"), ".git")

	// scp-style: git@host:owner/repo
	if !strings.Contains(trimmed, "://") {
		if i := strings.Index(trimmed, ":"); i >= 0 {
			trimmed = trimmed[i+1:]
		}
	}

	parts := strings.Split(trimmed, "/")
	if len(parts) < 2 {
		return "", fmt.Errorf("cannot derive repository name from %q", url)
	}
	owner := parts[len(parts)-2]
	name := parts[len(parts)-1]
	if owner == "" || name == "" {
		return "", fmt.Errorf("cannot derive repository name from %q", url)
	}
	return owner + "/" + name, nil
}
