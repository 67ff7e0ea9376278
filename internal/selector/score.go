package selector

import (
	"math"
	"path"
	"strings"
)

// maxScorableBytes is the content-size ceiling: anything larger is excluded
// from scoring entirely rather than dampened.
const maxScorableBytes = 1_000_000

// blockedExtensions are binary and media formats that are never scored and
// never selected through the score phase.
var blockedExtensions = map[string]struct{}{
	".png": {}, ".jpg": {}, ".jpeg": {}, ".gif": {}, ".ico": {}, ".svg": {},
	".woff": {}, ".woff2": {}, ".ttf": {}, ".eot": {},
	".mp3": {}, ".mp4": {}, ".avi": {}, ".mov": {},
	".pdf": {}, ".zip": {}, ".tar": {}, ".gz": {}, ".rar": {}, ".7z": {},
	".bin": {}, ".exe": {}, ".dll": {}, ".so": {}, ".dylib": {},
	".class": {}, ".pyc": {}, ".pyd": {}, ".pyo": {},
}

var codeExtensions = map[string]struct{}{
	".py": {}, ".js": {}, ".jsx": {}, ".ts": {}, ".tsx": {}, ".java": {},
	".kt": {}, ".swift": {}, ".go": {}, ".rs": {}, ".cs": {}, ".php": {},
	".rb": {}, ".c": {}, ".cpp": {}, ".h": {}, ".hpp": {},
}

var configExtensions = map[string]struct{}{
	".json": {}, ".yml": {}, ".yaml": {}, ".toml": {}, ".ini": {},
	".cfg": {}, ".conf": {},
}

var docExtensions = map[string]struct{}{
	".md": {}, ".txt": {}, ".rst": {}, ".adoc": {},
}

// manifestNames are dependency manifests across ecosystems.
var manifestNames = map[string]struct{}{
	"package.json": {}, "requirements.txt": {}, "pyproject.toml": {},
	"setup.py": {}, "pom.xml": {}, "build.gradle": {}, "gemfile": {},
}

// entryPointNames are conventional application entry files.
var entryPointNames = map[string]struct{}{
	"main.py": {}, "index.js": {}, "app.py": {}, "server.js": {},
	"index.ts": {}, "app.js": {},
}

// Scorable reports whether a path is eligible for the score phase at all.
// Blocked extensions are rejected before any content read.
func Scorable(filePath string) bool {
	ext := strings.ToLower(path.Ext(filePath))
	_, blocked := blockedExtensions[ext]
	return !blocked
}

// ScoreFile computes the relevance score of one file against the keyword
// set. Deterministic; higher is more relevant.
//
// The keyword term-frequency contribution is ln(count+1)*1.5 so a keyword
// repeated hundreds of times cannot dominate, and the final score is
// divided by sqrt(ln(len+1)) so large files do not win purely on bulk.
// Both formulas are fixed policy: downstream ordering depends on them.
func ScoreFile(filePath, content string, keywords []string) float64 {
	if len(content) > maxScorableBytes || !Scorable(filePath) {
		return 0
	}

	contentLower := strings.ToLower(content)
	name := strings.ToLower(path.Base(filePath))
	ext := strings.ToLower(path.Ext(filePath))

	score := 0.0

	if _, ok := codeExtensions[ext]; ok {
		score += 2.0
	} else if _, ok := configExtensions[ext]; ok {
		score += 1.5
	} else if _, ok := docExtensions[ext]; ok {
		score += 1.0
	}

	if strings.Contains(name, "readme") {
		score += 3.0
	}
	if _, ok := manifestNames[name]; ok {
		score += 2.5
	}
	if _, ok := entryPointNames[name]; ok {
		score += 2.0
	}

	for _, kw := range keywords {
		if strings.Contains(name, kw) {
			score += 3.0
		}
		if count := strings.Count(contentLower, kw); count > 0 {
			score += math.Log(float64(count+1)) * 1.5
		}
	}

	if sizeFactor := math.Log(float64(len(content) + 1)); sizeFactor > 0 {
		score /= math.Sqrt(sizeFactor)
	}

	return score
}
