package store

import "context"

// RepoReader binds a Store to one repository, satisfying the selector's
// ContentReader capability.
type RepoReader struct {
	store  *Store
	repoID string
}

// NewRepoReader creates a reader over one repository's stored files.
func NewRepoReader(s *Store, repoID string) *RepoReader {
	return &RepoReader{store: s, repoID: repoID}
}

// ReadFile returns the stored content for path within the bound repository.
func (r *RepoReader) ReadFile(ctx context.Context, path string) (string, bool, error) {
	return r.store.FileContent(ctx, r.repoID, path)
}
