package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

// ── Clone handler validation tests ───────────────────────

func TestClone_InvalidJSON(t *testing.T) {
	h := NewReposHandler(nil, nil)

	req := httptest.NewRequest(http.MethodPost, "/v1/repos", bytes.NewBufferString("{not json"))
	rr := httptest.NewRecorder()
	h.Clone(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rr.Code)
	}
}

func TestClone_MissingURL(t *testing.T) {
	h := NewReposHandler(nil, nil)

	body, _ := json.Marshal(map[string]any{"ignore": []string{"vendor"}})
	req := httptest.NewRequest(http.MethodPost, "/v1/repos", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	h.Clone(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rr.Code)
	}

	var errResp map[string]string
	json.NewDecoder(rr.Body).Decode(&errResp)
	if errResp["message"] != "url is required" {
		t.Errorf("message: got %q", errResp["message"])
	}
}
