package selector

import (
	"context"
	"reflect"
	"strings"
	"testing"
)

// fakeReader serves content from a map, counting reads per path.
type fakeReader struct {
	files map[string]string
	reads map[string]int
}

func newFakeReader(files map[string]string) *fakeReader {
	return &fakeReader{files: files, reads: make(map[string]int)}
}

func (r *fakeReader) ReadFile(_ context.Context, filePath string) (string, bool, error) {
	r.reads[filePath]++
	content, ok := r.files[filePath]
	return content, ok, nil
}

func paths(res *Result) []string {
	out := make([]string, len(res.Files))
	for i, f := range res.Files {
		out[i] = f.Path
	}
	return out
}

func TestSelect_MongoScenario(t *testing.T) {
	files := map[string]string{
		"README.md":           "# Demo app\nSee the docs for setup.",
		"config/database.php": "<?php return ['mongodb' => ['uri' => env('MONGO_URI')]];",
		".env":                "MONGO_URI=mongodb://localhost:27017\nAPP_ENV=local",
		"src/app.py":          "print('hello world')",
		"image.png":           "\x89PNG binary bytes",
	}
	allFiles := []string{"README.md", "config/database.php", ".env", "src/app.py", "image.png"}

	sel := New(newFakeReader(files))
	res, err := sel.Select(context.Background(), "how do I connect to mongodb", allFiles, 5, 100000)
	if err != nil {
		t.Fatalf("Select: %v", err)
	}

	for _, kw := range []string{"mongodb", "mongo", "database", "connect", "config"} {
		if !contains(res.Keywords, kw) {
			t.Errorf("expected keyword %q, got %v", kw, res.Keywords)
		}
	}

	got := paths(res)
	for _, want := range []string{".env", "config/database.php", "README.md"} {
		if !contains(got, want) {
			t.Errorf("expected %q selected, got %v", want, got)
		}
	}
	if contains(got, "image.png") {
		t.Errorf("blocked image.png must never be selected, got %v", got)
	}

	// Config files arrive in the technology phase, before the scored app
	// code.
	idx := func(p string) int {
		for i, v := range got {
			if v == p {
				return i
			}
		}
		return -1
	}
	if appIdx := idx("src/app.py"); appIdx >= 0 {
		if idx(".env") > appIdx || idx("config/database.php") > appIdx {
			t.Errorf("config files should precede src/app.py, got order %v", got)
		}
	}
}

func TestSelect_RespectsMaxFiles(t *testing.T) {
	files := map[string]string{
		"a.go": "package a",
		"b.go": "package b",
		"c.go": "package c",
		"d.go": "package d",
	}
	sel := New(newFakeReader(files))

	res, err := sel.Select(context.Background(), "golang refactor", []string{"a.go", "b.go", "c.go", "d.go"}, 2, 100000)
	if err != nil {
		t.Fatalf("Select: %v", err)
	}
	if len(res.Files) > 2 {
		t.Errorf("expected at most 2 files, got %d", len(res.Files))
	}
}

func TestSelect_RespectsTokenBudget(t *testing.T) {
	files := map[string]string{
		"big.md":   strings.Repeat("a", 4000), // 1000 tokens
		"small.md": strings.Repeat("b", 200),  // 50 tokens
	}
	sel := New(newFakeReader(files))

	res, err := sel.Select(context.Background(), "anything at all", []string{"big.md", "small.md"}, 10, 100)
	if err != nil {
		t.Fatalf("Select: %v", err)
	}

	if res.TotalTokens > 100 {
		t.Errorf("token budget exceeded: %d > 100", res.TotalTokens)
	}
	got := paths(res)
	if contains(got, "big.md") {
		t.Errorf("big.md exceeds budget and must be skipped, got %v", got)
	}
	// A smaller later candidate still fits after a skip.
	if !contains(got, "small.md") {
		t.Errorf("small.md fits the budget and should be selected, got %v", got)
	}

	sum := 0
	for _, f := range res.Files {
		sum += f.Tokens
	}
	if sum != res.TotalTokens {
		t.Errorf("per-file tokens sum %d != TotalTokens %d", sum, res.TotalTokens)
	}
}

func TestSelect_BudgetBelowEveryFile(t *testing.T) {
	files := map[string]string{
		"a.md": strings.Repeat("a", 400),
	}
	sel := New(newFakeReader(files))

	res, err := sel.Select(context.Background(), "query", []string{"a.md"}, 5, 10)
	if err != nil {
		t.Fatalf("Select: %v", err)
	}
	if len(res.Files) != 0 || res.TotalTokens != 0 {
		t.Errorf("expected empty result under tiny budget, got %d files, %d tokens", len(res.Files), res.TotalTokens)
	}
}

func TestSelect_PinnedReadmeAlwaysIncluded(t *testing.T) {
	files := map[string]string{
		"README.md": "# hello",
		"zzz.bin":   "binary-ish",
	}
	sel := New(newFakeReader(files))

	// Query shares zero keywords with any content.
	res, err := sel.Select(context.Background(), "qqqqqq wwwwww", []string{"zzz.bin", "README.md"}, 5, 100000)
	if err != nil {
		t.Fatalf("Select: %v", err)
	}
	if !contains(paths(res), "README.md") {
		t.Errorf("README.md must be pinned, got %v", paths(res))
	}
}

func TestSelect_Idempotent(t *testing.T) {
	files := map[string]string{
		"README.md":        "# app using redis and kafka",
		"cache/redis.go":   "package cache // redis client",
		"queue/kafka.go":   "package queue // kafka producer",
		"requirements.txt": "redis==5.0",
	}
	allFiles := []string{"README.md", "cache/redis.go", "queue/kafka.go", "requirements.txt"}

	sel := New(newFakeReader(files))
	first, err := sel.Select(context.Background(), "how is redis wired up", allFiles, 3, 100000)
	if err != nil {
		t.Fatalf("Select: %v", err)
	}
	second, err := sel.Select(context.Background(), "how is redis wired up", allFiles, 3, 100000)
	if err != nil {
		t.Fatalf("Select: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Errorf("selection not idempotent:\n%v\n%v", paths(first), paths(second))
	}
}

func TestSelect_FetchesEachPathOnce(t *testing.T) {
	files := map[string]string{
		"README.md": "# readme mentions mongo",
		".env":      "MONGO_URI=x",
	}
	reader := newFakeReader(files)
	sel := New(reader)

	// README matches pinned AND scores; .env matches technology AND the
	// always-important list. Each must still be read exactly once.
	if _, err := sel.Select(context.Background(), "mongodb connect", []string{"README.md", ".env"}, 5, 100000); err != nil {
		t.Fatalf("Select: %v", err)
	}
	for fp, n := range reader.reads {
		if n != 1 {
			t.Errorf("%s read %d times, want 1", fp, n)
		}
	}
}

func TestSelect_SentinelContentIncludedVerbatim(t *testing.T) {
	const sentinel = "[Binary file or unsupported encoding]"
	files := map[string]string{
		"data/blob.dat": sentinel,
		"README.md":     "# readme",
	}
	sel := New(newFakeReader(files))

	res, err := sel.Select(context.Background(), "analyze the blob data", []string{"data/blob.dat", "README.md"}, 5, 100000)
	if err != nil {
		t.Fatalf("Select: %v", err)
	}
	if content, ok := res.Content("data/blob.dat"); ok && content != sentinel {
		t.Errorf("sentinel content must pass through verbatim, got %q", content)
	}
}

func TestSelect_MissingFilesSkipped(t *testing.T) {
	files := map[string]string{
		"README.md": "# here",
	}
	sel := New(newFakeReader(files))

	res, err := sel.Select(context.Background(), "readme", []string{"gone.md", "README.md"}, 5, 100000)
	if err != nil {
		t.Fatalf("Select: %v", err)
	}
	if contains(paths(res), "gone.md") {
		t.Errorf("absent file must not be selected, got %v", paths(res))
	}
}

func TestSelect_EmptyInputs(t *testing.T) {
	sel := New(newFakeReader(nil))

	res, err := sel.Select(context.Background(), "anything", nil, 5, 1000)
	if err != nil {
		t.Fatalf("Select: %v", err)
	}
	if len(res.Files) != 0 {
		t.Errorf("expected no files, got %v", paths(res))
	}
}

func TestEstimateTokens(t *testing.T) {
	if got := EstimateTokens(strings.Repeat("x", 403)); got != 100 {
		t.Errorf("expected 100 tokens for 403 chars, got %d", got)
	}
	if got := EstimateTokens(""); got != 0 {
		t.Errorf("expected 0 tokens for empty content, got %d", got)
	}
}
