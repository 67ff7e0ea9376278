// Package selector ranks repository files by relevance to a question and
// picks the subset that fits a file-count and token budget.
package selector

import (
	"strings"
	"unicode"
)

// stopWords are dropped from the tokenized query. Articles, conjunctions,
// common prepositions, auxiliaries.
var stopWords = map[string]struct{}{
	"a": {}, "an": {}, "the": {}, "and": {}, "or": {}, "but": {}, "if": {},
	"because": {}, "as": {}, "what": {}, "which": {}, "this": {}, "that": {},
	"these": {}, "those": {}, "then": {}, "just": {}, "so": {}, "than": {},
	"such": {}, "both": {}, "through": {}, "about": {}, "for": {}, "is": {},
	"of": {}, "while": {}, "during": {}, "to": {}, "from": {}, "in": {},
	"out": {}, "on": {}, "off": {}, "over": {}, "under": {}, "again": {},
	"once": {}, "here": {}, "there": {}, "when": {}, "where": {}, "why": {},
	"how": {}, "all": {}, "any": {}, "each": {}, "few": {}, "more": {},
	"most": {}, "other": {}, "some": {}, "no": {}, "nor": {}, "not": {},
	"only": {}, "own": {}, "same": {}, "too": {}, "very": {}, "s": {},
	"t": {}, "can": {}, "will": {}, "don": {}, "should": {}, "now": {},
	"using": {}, "use": {}, "used": {}, "uses": {},
}

// techTerms is scanned against the lowercased query as substrings. Ordered
// slice, not a map: matches are appended in first-seen order so extraction
// is deterministic across runs.
var techTerms = []string{
	"react", "vue", "angular", "node", "express", "django", "flask",
	"python", "javascript", "typescript", "java", "kotlin", "swift",
	"go", "rust", "c#", "csharp", "dotnet", "php", "laravel", "ruby",
	"rails", "mongodb", "mongo", "mysql", "postgresql", "firebase", "aws",
	"azure", "gcp", "docker", "kubernetes", "graphql", "rest", "api",
	"redux", "vuex", "mobx", "tensorflow", "pytorch", "keras",
	"scikit", "pandas", "numpy", "matplotlib", "seaborn", "dask",
	"spark", "hadoop", "kafka", "rabbitmq", "redis", "elasticsearch",
	"webpack", "babel", "vite", "rollup", "jest", "mocha", "chai",
	"cypress", "selenium", "puppeteer", "storybook", "tailwind",
	"bootstrap", "material", "sass", "less", "styled", "emotion",
	"nextjs", "nuxt", "gatsby", "svelte", "flutter", "react-native",
	"ionic", "electron", "pwa", "webassembly", "wasm", "deno", "bun",
	"groq", "mistral", "llama", "claude", "gpt", "openai", "huggingface",
	"transformers", "bert", "llm", "rag", "langchain", "pinecone",
	"database", "db", "connect", "connection", "config", "configuration",
	"setup", "install", "env", "environment", "variable",
}

// Related-term expansions. A query that mentions a database family or a
// connection verb is almost always answered by config files, so those
// terms are pulled in even when the user never typed them.
var (
	mongoRelated   = []string{"database", "db", "connect", "connection", "config", "nosql"}
	laravelRelated = []string{"php", "framework", "config", "env", "database", "db"}
	connectRelated = []string{"config", "configuration", "env", "environment", "variable", "setting"}
)

// ExtractKeywords derives the keyword set for a query: lowercased tokens
// minus stop words and tokens of length <= 2, plus technology terms found
// as substrings of the query, plus fixed related-term expansions.
// Pure function; the returned slice is deduplicated in first-seen order.
func ExtractKeywords(query string) []string {
	lower := strings.ToLower(query)

	// Replace punctuation with spaces so word boundaries survive.
	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || unicode.IsSpace(r) {
			return r
		}
		return ' '
	}, lower)

	seen := make(map[string]struct{})
	var keywords []string
	add := func(word string) {
		if _, ok := seen[word]; ok {
			return
		}
		seen[word] = struct{}{}
		keywords = append(keywords, word)
	}

	for _, word := range strings.Fields(cleaned) {
		if _, stop := stopWords[word]; stop || len(word) <= 2 {
			continue
		}
		add(word)
	}

	// Technology terms match the raw lowercased query, not the token list,
	// so multi-word and punctuated names ("c#", "react-native") still hit.
	for _, tech := range techTerms {
		if strings.Contains(lower, tech) {
			add(tech)
		}
	}

	if strings.Contains(lower, "mongo") {
		for _, kw := range mongoRelated {
			add(kw)
		}
	}
	if strings.Contains(lower, "laravel") {
		for _, kw := range laravelRelated {
			add(kw)
		}
	}
	if strings.Contains(lower, "connect") || strings.Contains(lower, "setup") {
		for _, kw := range connectRelated {
			add(kw)
		}
	}

	return keywords
}
