package service

import (
	"strings"
	"testing"

	"github.com/repochat/repochat/internal/selector"
)

func TestBuildSystemPrompt_ListsFilesAndContents(t *testing.T) {
	files := []selector.SelectedFile{
		{Path: "README.md", Content: "# demo"},
		{Path: "src/app.py", Content: "print('hi')"},
	}

	got := BuildSystemPrompt(files)

	if !strings.Contains(got, "- README.md\n") || !strings.Contains(got, "- src/app.py\n") {
		t.Errorf("file list missing from prompt:\n%s", got)
	}
	if !strings.Contains(got, "--- README.md ---\n# demo\n") {
		t.Errorf("README content block missing:\n%s", got)
	}
	if !strings.Contains(got, "--- src/app.py ---\nprint('hi')\n") {
		t.Errorf("app.py content block missing:\n%s", got)
	}
}

func TestBuildSystemPrompt_PreservesInclusionOrder(t *testing.T) {
	files := []selector.SelectedFile{
		{Path: "b.go", Content: "b"},
		{Path: "a.go", Content: "a"},
	}

	got := BuildSystemPrompt(files)
	if strings.Index(got, "--- b.go ---") > strings.Index(got, "--- a.go ---") {
		t.Error("content blocks must follow inclusion order, not path order")
	}
}

func TestBuildSystemPrompt_SentinelPassesThrough(t *testing.T) {
	files := []selector.SelectedFile{
		{Path: "big.bin", Content: "[Large file: 2000000 bytes - content omitted]"},
	}

	got := BuildSystemPrompt(files)
	if !strings.Contains(got, "--- big.bin ---\n[Large file: 2000000 bytes - content omitted]\n") {
		t.Errorf("sentinel content must pass through verbatim:\n%s", got)
	}
}

func TestBuildSystemPrompt_IncludesGuidelines(t *testing.T) {
	got := BuildSystemPrompt(nil)
	if !strings.Contains(got, "When answering questions:") {
		t.Errorf("answer guidelines missing:\n%s", got)
	}
}
