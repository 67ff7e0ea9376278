package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/repochat/repochat/internal/gitrepo"
	"github.com/repochat/repochat/internal/model"
	"github.com/repochat/repochat/internal/selector"
	"github.com/repochat/repochat/internal/service"
	"github.com/repochat/repochat/internal/store"
)

// ReposHandler handles the repository CRUD endpoints.
type ReposHandler struct {
	store  *store.Store
	ingest *service.IngestService
}

// NewReposHandler creates a new ReposHandler.
func NewReposHandler(st *store.Store, ingest *service.IngestService) *ReposHandler {
	return &ReposHandler{store: st, ingest: ingest}
}

// Clone handles POST /v1/repos. The clone and ingest run synchronously;
// the response carries the final repository state.
func (h *ReposHandler) Clone(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req model.CloneRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "invalid JSON: "+err.Error())
		return
	}
	if req.URL == "" {
		writeError(w, http.StatusBadRequest, "bad_request", "url is required")
		return
	}

	repo, err := h.ingest.CloneAndStore(ctx, req.URL, req.Ignore)
	if err != nil {
		slog.Error("clone failed", "url", req.URL, "error", err)
		writeError(w, http.StatusBadGateway, "clone_failed", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, repo)
}

// List handles GET /v1/repos.
func (h *ReposHandler) List(w http.ResponseWriter, r *http.Request) {
	repos, err := h.store.ListRepos(r.Context())
	if err != nil {
		slog.Error("list repos failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal", "failed to list repositories")
		return
	}
	writeJSON(w, http.StatusOK, repos)
}

// Get handles GET /v1/repos/{id}.
func (h *ReposHandler) Get(w http.ResponseWriter, r *http.Request) {
	repoID := chi.URLParam(r, "id")

	repo, ok, err := h.store.RepoByID(r.Context(), repoID)
	if err != nil {
		slog.Error("get repo failed", "repo_id", repoID, "error", err)
		writeError(w, http.StatusInternalServerError, "internal", "failed to load repository")
		return
	}
	if !ok {
		writeError(w, http.StatusNotFound, "not_found", "repository not found")
		return
	}
	writeJSON(w, http.StatusOK, repo)
}

// Files handles GET /v1/repos/{id}/files. Each entry carries the token
// estimate used for context budgeting and whether the stored content is a
// placeholder rather than real file text.
func (h *ReposHandler) Files(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	repoID := chi.URLParam(r, "id")

	if _, ok, err := h.store.RepoByID(ctx, repoID); err != nil {
		slog.Error("get repo failed", "repo_id", repoID, "error", err)
		writeError(w, http.StatusInternalServerError, "internal", "failed to load repository")
		return
	} else if !ok {
		writeError(w, http.StatusNotFound, "not_found", "repository not found")
		return
	}

	paths, err := h.store.ListFiles(ctx, repoID)
	if err != nil {
		slog.Error("list files failed", "repo_id", repoID, "error", err)
		writeError(w, http.StatusInternalServerError, "internal", "failed to list files")
		return
	}

	infos := make([]model.FileInfo, 0, len(paths))
	for _, p := range paths {
		content, ok, err := h.store.FileContent(ctx, repoID, p)
		if err != nil {
			slog.Error("read file failed", "repo_id", repoID, "path", p, "error", err)
			writeError(w, http.StatusInternalServerError, "internal", "failed to read files")
			return
		}
		if !ok {
			continue
		}
		infos = append(infos, model.FileInfo{
			Path:     p,
			Tokens:   selector.EstimateTokens(content),
			Sentinel: gitrepo.IsSentinel(content),
		})
	}

	writeJSON(w, http.StatusOK, infos)
}

// Delete handles DELETE /v1/repos/{id}. Removes the stored rows and the
// clone working tree.
func (h *ReposHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	repoID := chi.URLParam(r, "id")

	_, ok, err := h.store.RepoByID(ctx, repoID)
	if err != nil {
		slog.Error("get repo failed", "repo_id", repoID, "error", err)
		writeError(w, http.StatusInternalServerError, "internal", "failed to load repository")
		return
	}
	if !ok {
		writeError(w, http.StatusNotFound, "not_found", "repository not found")
		return
	}

	if err := h.store.DeleteRepo(ctx, repoID); err != nil {
		slog.Error("delete repo failed", "repo_id", repoID, "error", err)
		writeError(w, http.StatusInternalServerError, "internal", "failed to delete repository")
		return
	}

	if dir := h.ingest.WorkingTree(repoID); dir != "" {
		if err := os.RemoveAll(dir); err != nil {
			slog.Warn("failed to remove working tree", "repo_id", repoID, "dir", dir, "error", err)
		}
	}

	slog.Info("repository deleted", "repo_id", repoID)
	w.WriteHeader(http.StatusNoContent)
}
