package selector

import (
	"reflect"
	"testing"
)

func TestMatchTechnologyFiles_MongoQuery(t *testing.T) {
	files := []string{
		"src/app.py",
		"config/database.php",
		".env",
		"docs/guide.md",
		"image.png",
	}

	got := MatchTechnologyFiles("how do I connect to mongodb", files)

	for _, want := range []string{"config/database.php", ".env"} {
		if !contains(got, want) {
			t.Errorf("expected %q in matches, got %v", want, got)
		}
	}
	if contains(got, "image.png") {
		t.Errorf("image.png should not match, got %v", got)
	}
}

func TestMatchTechnologyFiles_AlwaysIncludesConfigFiles(t *testing.T) {
	files := []string{"lib/util.rb", ".env.example", "composer.json", "config/app.php"}

	// Query with no technology mention at all.
	got := MatchTechnologyFiles("tell me a story", files)

	for _, want := range []string{".env.example", "composer.json", "config/app.php"} {
		if !contains(got, want) {
			t.Errorf("expected always-important file %q, got %v", want, got)
		}
	}
	if contains(got, "lib/util.rb") {
		t.Errorf("lib/util.rb should not match, got %v", got)
	}
}

func TestMatchTechnologyFiles_PreservesInputOrder(t *testing.T) {
	files := []string{"z/mongo.go", "a/database.yml", "m/config.json"}

	got := MatchTechnologyFiles("mongodb connection", files)

	want := []string{"z/mongo.go", "a/database.yml", "m/config.json"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected input order preserved: got %v, want %v", got, want)
	}
}

func TestMatchTechnologyFiles_NoDuplicates(t *testing.T) {
	// database.php matches both the mongodb patterns and the
	// always-important list.
	files := []string{"config/database.php"}

	got := MatchTechnologyFiles("mongodb setup", files)
	if len(got) != 1 {
		t.Errorf("expected 1 deduplicated match, got %v", got)
	}
}

func TestMatchTechnologyFiles_SetupTriggersConnectPatterns(t *testing.T) {
	files := []string{"setup.sh", "src/handler.rb"}

	got := MatchTechnologyFiles("setup the project", files)
	if !contains(got, "setup.sh") {
		t.Errorf("expected setup.sh via connect trigger aliases, got %v", got)
	}
}

func TestMatchTechnologyFiles_EmptyFileList(t *testing.T) {
	if got := MatchTechnologyFiles("mongodb", nil); len(got) != 0 {
		t.Errorf("expected empty result, got %v", got)
	}
}
