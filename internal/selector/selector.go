package selector

import (
	"context"
	"sort"
	"strings"
)

// ContentReader is the selector's single external capability: fetch the
// stored content for a repository-relative path. ok is false when the store
// holds nothing for the path. Content may be real file text or a sentinel
// placeholder (oversized/binary/read-error); sentinels are ordinary strings
// here, never errors.
type ContentReader interface {
	ReadFile(ctx context.Context, filePath string) (content string, ok bool, err error)
}

// Inclusion reasons recorded per selected file.
const (
	ReasonTechnology = "technology"
	ReasonScore      = "score"
	ReasonPinned     = "pinned"
)

// SelectedFile is one entry of a selection result, in inclusion order.
type SelectedFile struct {
	Path    string
	Content string
	Tokens  int
	Score   float64 // populated for score-phase inclusions only
	Reason  string
}

// Result is the outcome of one Select call.
type Result struct {
	Files       []SelectedFile
	TotalTokens int
	Keywords    []string
}

// Content returns the selected content for a path, preserving nothing about
// order; use Files for ordered iteration.
func (r *Result) Content(filePath string) (string, bool) {
	for _, f := range r.Files {
		if f.Path == filePath {
			return f.Content, true
		}
	}
	return "", false
}

// EstimateTokens approximates the LLM token cost of content at four
// characters per token.
func EstimateTokens(content string) int {
	return len(content) / 4
}

// Selector picks the most relevant files for a query under budgets.
type Selector struct {
	reader ContentReader
}

// New creates a Selector reading content through reader.
func New(reader ContentReader) *Selector {
	return &Selector{reader: reader}
}

// Select returns up to maxFiles files whose token estimates sum to at most
// maxTokens, ordered by inclusion. Three phases run in strict order, each
// skipping already-selected paths: technology-pattern matches in file-list
// order, then all remaining candidates by descending score (ties keep
// file-list order), then pinned README/manifest files. A candidate whose
// content would exceed the remaining token budget is skipped, not
// truncated, and later smaller candidates may still fit.
//
// Content is fetched at most once per path per call. The call is
// deterministic: identical inputs against an unchanged store yield an
// identical Result.
func (s *Selector) Select(ctx context.Context, query string, allFiles []string, maxFiles, maxTokens int) (*Result, error) {
	keywords := ExtractKeywords(query)

	res := &Result{Keywords: keywords}
	selected := make(map[string]struct{}, maxFiles)

	contents := make(map[string]string, len(allFiles))
	present := make(map[string]bool, len(allFiles))
	fetch := func(filePath string) (string, bool, error) {
		if ok, cached := present[filePath]; cached {
			return contents[filePath], ok, nil
		}
		content, ok, err := s.reader.ReadFile(ctx, filePath)
		if err != nil {
			return "", false, err
		}
		contents[filePath] = content
		present[filePath] = ok
		return content, ok, nil
	}

	include := func(filePath, content, reason string, score float64) {
		tokens := EstimateTokens(content)
		if res.TotalTokens+tokens > maxTokens {
			return
		}
		res.Files = append(res.Files, SelectedFile{
			Path:    filePath,
			Content: content,
			Tokens:  tokens,
			Score:   score,
			Reason:  reason,
		})
		res.TotalTokens += tokens
		selected[filePath] = struct{}{}
	}

	// Phase 1: technology-specific matches, in file-list order.
	for _, fp := range MatchTechnologyFiles(query, allFiles) {
		if len(res.Files) >= maxFiles {
			break
		}
		if _, done := selected[fp]; done {
			continue
		}
		content, ok, err := fetch(fp)
		if err != nil {
			return nil, err
		}
		if !ok || content == "" {
			continue
		}
		include(fp, content, ReasonTechnology, 0)
	}

	// Phase 2: score everything still eligible, best first. Stable sort
	// keeps file-list order among equal scores.
	type candidate struct {
		path    string
		content string
		score   float64
	}
	var candidates []candidate
	for _, fp := range allFiles {
		if _, done := selected[fp]; done {
			continue
		}
		if !Scorable(fp) {
			continue
		}
		content, ok, err := fetch(fp)
		if err != nil {
			return nil, err
		}
		if !ok || content == "" || len(content) > maxScorableBytes {
			continue
		}
		candidates = append(candidates, candidate{
			path:    fp,
			content: content,
			score:   ScoreFile(fp, content, keywords),
		})
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})
	for _, c := range candidates {
		if len(res.Files) >= maxFiles {
			break
		}
		include(c.path, c.content, ReasonScore, c.score)
	}

	// Phase 3: pinned files, always attempted when budget remains.
	for _, fp := range allFiles {
		if len(res.Files) >= maxFiles {
			break
		}
		if _, done := selected[fp]; done {
			continue
		}
		if !pinned(fp) {
			continue
		}
		content, ok, err := fetch(fp)
		if err != nil {
			return nil, err
		}
		if !ok || content == "" {
			continue
		}
		include(fp, content, ReasonPinned, 0)
	}

	return res, nil
}

// pinned reports whether a path is included regardless of score: README
// files and the primary dependency manifests.
func pinned(filePath string) bool {
	lower := strings.ToLower(filePath)
	return strings.HasSuffix(lower, "readme.md") ||
		lower == "package.json" ||
		lower == "requirements.txt"
}
