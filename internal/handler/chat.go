package handler

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/repochat/repochat/internal/config"
	"github.com/repochat/repochat/internal/model"
	"github.com/repochat/repochat/internal/selector"
	"github.com/repochat/repochat/internal/service"
	"github.com/repochat/repochat/internal/store"
)

// ChatHandler handles POST /v1/repos/{id}/chat requests.
type ChatHandler struct {
	cfg   *config.Config
	store *store.Store
	llm   *service.LLMService
}

// NewChatHandler creates a new ChatHandler.
func NewChatHandler(cfg *config.Config, st *store.Store, llm *service.LLMService) *ChatHandler {
	return &ChatHandler{
		cfg:   cfg,
		store: st,
		llm:   llm,
	}
}

// Handle processes a chat request through the pipeline:
// load repo → list files → select context files → build prompt → LLM → response.
func (h *ChatHandler) Handle(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	totalStart := time.Now()

	requestID := chimw.GetReqID(ctx)
	repoID := chi.URLParam(r, "id")

	var req model.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "invalid JSON: "+err.Error())
		return
	}

	if req.Question == "" {
		writeError(w, http.StatusBadRequest, "bad_request", "question is required")
		return
	}
	if req.MaxFiles <= 0 {
		req.MaxFiles = h.cfg.MaxContextFiles
	}
	if req.MaxContextTokens <= 0 {
		req.MaxContextTokens = h.cfg.MaxContextTokens
	}

	clog := &model.ChatLog{
		Timestamp:    time.Now().UTC(),
		RepoID:       repoID,
		RequestID:    requestID,
		QuestionHash: hashQuestion(req.Question),
		LLMModel:     h.llm.Model(),
	}
	if req.Model != "" {
		clog.LLMModel = req.Model
	}

	repo, ok, err := h.store.RepoByID(ctx, repoID)
	if err != nil {
		slog.Error("load repo failed", "repo_id", repoID, "error", err, "request_id", requestID)
		writeError(w, http.StatusInternalServerError, "internal", "failed to load repository")
		h.emitChatLog(clog, http.StatusInternalServerError, totalStart)
		return
	}
	if !ok {
		writeError(w, http.StatusNotFound, "not_found", "repository not found")
		h.emitChatLog(clog, http.StatusNotFound, totalStart)
		return
	}
	if repo.Status != model.RepoStatusReady {
		writeError(w, http.StatusConflict, "repo_not_ready", "repository status is "+repo.Status)
		h.emitChatLog(clog, http.StatusConflict, totalStart)
		return
	}

	// ── Stage 1: enumerate stored files ──────────────────
	allFiles, err := h.store.ListFiles(ctx, repoID)
	if err != nil {
		slog.Error("list files failed", "repo_id", repoID, "error", err, "request_id", requestID)
		writeError(w, http.StatusInternalServerError, "internal", "failed to list files")
		h.emitChatLog(clog, http.StatusInternalServerError, totalStart)
		return
	}
	clog.NumFilesTotal = len(allFiles)

	// ── Stage 2: relevance selection ─────────────────────
	selectStart := time.Now()
	sel := selector.New(store.NewRepoReader(h.store, repoID))
	result, err := sel.Select(ctx, req.Question, allFiles, req.MaxFiles, req.MaxContextTokens)
	clog.LatencyMSSelect = time.Since(selectStart).Milliseconds()
	if err != nil {
		slog.Error("file selection failed", "repo_id", repoID, "error", err, "request_id", requestID)
		writeError(w, http.StatusInternalServerError, "internal", "file selection failed")
		h.emitChatLog(clog, http.StatusInternalServerError, totalStart)
		return
	}
	clog.NumSelected = len(result.Files)
	clog.ContextTokensEst = result.TotalTokens

	// ── Stage 3: no relevant files → answer without LLM ──
	if len(result.Files) == 0 {
		slog.Info("no relevant files for question", "repo_id", repoID, "request_id", requestID)
		clog.NoRelevantFiles = true
		resp := &model.ChatResponse{
			Answer:          "No relevant files were found in the repository for this question.",
			Files:           []model.ContextFile{},
			NoRelevantFiles: true,
		}
		if req.Debug {
			resp.Debug = &model.DebugInfo{
				Keywords:   result.Keywords,
				TotalFiles: len(allFiles),
			}
		}
		writeJSON(w, http.StatusOK, resp)
		h.emitChatLog(clog, http.StatusOK, totalStart)
		return
	}

	// ── Stage 4: build prompt + call LLM ─────────────────
	systemPrompt := service.BuildSystemPrompt(result.Files)

	llmStart := time.Now()
	llmResp, err := h.llm.Generate(ctx, req.Model, 0, systemPrompt, req.Question)
	clog.LatencyMSLLM = time.Since(llmStart).Milliseconds()

	if err != nil {
		slog.Error("LLM call failed", "error", err, "request_id", requestID)
		writeError(w, http.StatusBadGateway, "llm_unavailable", "LLM service unavailable")
		h.emitChatLog(clog, http.StatusBadGateway, totalStart)
		return
	}

	clog.PromptTokens = llmResp.PromptTokens
	clog.CompletionTokens = llmResp.CompletionTokens

	// ── Stage 5: build response ──────────────────────────
	files := make([]model.ContextFile, 0, len(result.Files))
	for _, f := range result.Files {
		files = append(files, model.ContextFile{
			Path:   f.Path,
			Tokens: f.Tokens,
			Score:  f.Score,
			Reason: f.Reason,
		})
	}

	resp := &model.ChatResponse{
		Answer:           llmResp.Text,
		Files:            files,
		ContextTokensEst: result.TotalTokens,
	}

	if req.Debug {
		resp.Debug = &model.DebugInfo{
			Keywords:         result.Keywords,
			TotalFiles:       len(allFiles),
			SelectedFiles:    len(result.Files),
			ContextTokensEst: result.TotalTokens,
			PromptTokens:     llmResp.PromptTokens,
			CompletionTokens: llmResp.CompletionTokens,
		}
	}

	writeJSON(w, http.StatusOK, resp)
	h.emitChatLog(clog, http.StatusOK, totalStart)
}

// emitChatLog writes the structured per-chat log line.
func (h *ChatHandler) emitChatLog(clog *model.ChatLog, httpStatus int, totalStart time.Time) {
	clog.HTTPStatus = httpStatus
	clog.LatencyMSTotal = time.Since(totalStart).Milliseconds()

	slog.Info("chat",
		"ts", clog.Timestamp.Format(time.RFC3339),
		"repo_id", clog.RepoID,
		"request_id", clog.RequestID,
		"question_hash", clog.QuestionHash,
		"num_files_total", clog.NumFilesTotal,
		"num_selected", clog.NumSelected,
		"context_tokens_est", clog.ContextTokensEst,
		"no_relevant_files", clog.NoRelevantFiles,
		"latency_ms_select", clog.LatencyMSSelect,
		"latency_ms_llm", clog.LatencyMSLLM,
		"latency_ms_total", clog.LatencyMSTotal,
		"llm_model", clog.LLMModel,
		"llm_prompt_tokens", clog.PromptTokens,
		"llm_completion_tokens", clog.CompletionTokens,
		"http_status", clog.HTTPStatus,
	)
}

// hashQuestion returns SHA-256 hex of the question text.
func hashQuestion(question string) string {
	h := sha256.Sum256([]byte(question))
	return fmt.Sprintf("%x", h)
}
