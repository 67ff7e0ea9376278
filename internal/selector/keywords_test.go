package selector

import (
	"reflect"
	"testing"
)

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func TestExtractKeywords_DropsStopWordsAndShortTokens(t *testing.T) {
	got := ExtractKeywords("how do I fix the broken parser")

	for _, stop := range []string{"how", "the", "do", "i"} {
		if contains(got, stop) {
			t.Errorf("stop/short word %q should be dropped, got %v", stop, got)
		}
	}
	if !contains(got, "fix") || !contains(got, "broken") || !contains(got, "parser") {
		t.Errorf("expected content words kept, got %v", got)
	}
}

func TestExtractKeywords_StripsPunctuation(t *testing.T) {
	got := ExtractKeywords("what's inside parser.go, exactly?")

	if !contains(got, "parser") {
		t.Errorf("expected 'parser' from 'parser.go', got %v", got)
	}
	if !contains(got, "exactly") {
		t.Errorf("expected 'exactly' without trailing '?', got %v", got)
	}
}

func TestExtractKeywords_TechTermsFromRawQuery(t *testing.T) {
	// "c#" only survives when scanning the raw lowercased query, since
	// tokenization turns '#' into a space.
	got := ExtractKeywords("migrate the c# service")
	if !contains(got, "c#") {
		t.Errorf("expected tech term 'c#', got %v", got)
	}

	got = ExtractKeywords("port this to react-native please")
	if !contains(got, "react-native") {
		t.Errorf("expected tech term 'react-native', got %v", got)
	}
	// Substring scan also picks up "react".
	if !contains(got, "react") {
		t.Errorf("expected substring tech term 'react', got %v", got)
	}
}

func TestExtractKeywords_MongoExpansion(t *testing.T) {
	got := ExtractKeywords("how do I connect to mongodb")

	for _, want := range []string{"mongodb", "mongo", "database", "db", "connect", "connection", "config", "nosql"} {
		if !contains(got, want) {
			t.Errorf("expected expansion term %q, got %v", want, got)
		}
	}
}

func TestExtractKeywords_LaravelExpansion(t *testing.T) {
	got := ExtractKeywords("laravel routing")

	for _, want := range []string{"php", "framework", "config", "env", "database", "db"} {
		if !contains(got, want) {
			t.Errorf("expected laravel expansion term %q, got %v", want, got)
		}
	}
}

func TestExtractKeywords_SetupExpansion(t *testing.T) {
	got := ExtractKeywords("setup instructions")

	for _, want := range []string{"config", "configuration", "env", "environment", "variable", "setting"} {
		if !contains(got, want) {
			t.Errorf("expected setup expansion term %q, got %v", want, got)
		}
	}
}

func TestExtractKeywords_Deduplicates(t *testing.T) {
	got := ExtractKeywords("database database config database")

	seen := make(map[string]int)
	for _, kw := range got {
		seen[kw]++
		if seen[kw] > 1 {
			t.Errorf("keyword %q appears more than once in %v", kw, got)
		}
	}
}

func TestExtractKeywords_Deterministic(t *testing.T) {
	const q = "how do I connect a laravel app to mongodb on aws"
	first := ExtractKeywords(q)
	second := ExtractKeywords(q)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("extraction not deterministic:\n%v\n%v", first, second)
	}
}

func TestExtractKeywords_EmptyQuery(t *testing.T) {
	if got := ExtractKeywords(""); len(got) != 0 {
		t.Errorf("expected no keywords for empty query, got %v", got)
	}
}
