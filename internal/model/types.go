// Package model defines the domain types for the repochat API.
package model

import "time"

// Repo is a stored repository and its ingestion state.
type Repo struct {
	RepoID    string    `json:"repo_id"`
	FullName  string    `json:"full_name"`
	URL       string    `json:"url"`
	Status    string    `json:"status"` // cloning | ready | failed
	Error     string    `json:"error,omitempty"`
	FileCount int       `json:"file_count"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Repo statuses.
const (
	RepoStatusCloning = "cloning"
	RepoStatusReady   = "ready"
	RepoStatusFailed  = "failed"
)

// CloneRequest is the POST /v1/repos request body.
type CloneRequest struct {
	URL    string   `json:"url"`
	Ignore []string `json:"ignore,omitempty"`
}

// ChatRequest is the POST /v1/repos/{id}/chat request body.
type ChatRequest struct {
	Question         string `json:"question"`
	MaxFiles         int    `json:"max_files"`
	MaxContextTokens int    `json:"max_context_tokens"`
	Model            string `json:"model,omitempty"`
	Debug            bool   `json:"debug"`
}

// ContextFile describes one file that was placed in the LLM context.
type ContextFile struct {
	Path   string  `json:"path"`
	Tokens int     `json:"tokens"`
	Score  float64 `json:"score,omitempty"`
	Reason string  `json:"reason"`
}

// ChatResponse is the POST /v1/repos/{id}/chat response body.
type ChatResponse struct {
	Answer           string        `json:"answer"`
	Files            []ContextFile `json:"files"`
	ContextTokensEst int           `json:"context_tokens_est"`
	NoRelevantFiles  bool          `json:"no_relevant_files"`
	Debug            *DebugInfo    `json:"debug,omitempty"`
}

// DebugInfo is attached to a chat response when debug=true.
type DebugInfo struct {
	Keywords         []string `json:"keywords"`
	TotalFiles       int      `json:"total_files"`
	SelectedFiles    int      `json:"selected_files"`
	ContextTokensEst int      `json:"context_tokens_est"`
	PromptTokens     int      `json:"prompt_tokens,omitempty"`
	CompletionTokens int      `json:"completion_tokens,omitempty"`
}

// FileInfo describes one stored file in a repo listing.
type FileInfo struct {
	Path     string `json:"path"`
	Tokens   int    `json:"tokens"`
	Sentinel bool   `json:"sentinel"`
}

// ErrorResponse is the standard error response body.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// ChatLog holds the fields of the structured per-chat log line.
type ChatLog struct {
	Timestamp        time.Time
	RepoID           string
	RequestID        string
	QuestionHash     string
	NumFilesTotal    int
	NumSelected      int
	ContextTokensEst int
	NoRelevantFiles  bool
	LatencyMSSelect  int64
	LatencyMSLLM     int64
	LatencyMSTotal   int64
	LLMModel         string
	PromptTokens     int
	CompletionTokens int
	HTTPStatus       int
}
