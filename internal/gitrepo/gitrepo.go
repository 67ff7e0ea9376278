// Package gitrepo clones repositories and reads their working trees.
// Unreadable content is represented as sentinel strings, never errors:
// callers display why a file was omitted instead of losing it.
package gitrepo

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"

	git "github.com/go-git/go-git/v5"
)

// maxFileBytes is the size ceiling above which content is replaced by the
// oversized sentinel.
const maxFileBytes = 1_000_000

// Sentinel prefixes. The exact text is a display contract with callers.
const (
	largeFilePrefix  = "[Large file"
	binaryFilePrefix = "[Binary file"
	readErrorPrefix  = "[Error reading file"
)

// binarySentinel replaces content that is not valid UTF-8.
const binarySentinel = "[Binary file or unsupported encoding]"

// defaultIgnores are always skipped when listing files.
var defaultIgnores = []string{
	".git", "__pycache__", ".pyc", ".pyo", ".pyd", ".DS_Store",
}

// Clone performs a shallow clone of url into dir.
func Clone(ctx context.Context, url, dir string) error {
	_, err := git.PlainCloneContext(ctx, dir, false, &git.CloneOptions{
		URL:   url,
		Depth: 1,
	})
	if err != nil {
		return fmt.Errorf("clone %s: %w", url, err)
	}
	return nil
}

// ListFiles walks the working tree under root and returns repo-relative,
// forward-slash paths, sorted for a stable enumeration order. Paths
// containing any default or caller-supplied ignore substring are skipped.
func ListFiles(root string, ignore []string) ([]string, error) {
	patterns := append(append([]string{}, defaultIgnores...), ignore...)

	var files []string
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if d.Name() == ".git" {
				return filepath.SkipDir
			}
			return nil
		}
		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		for _, pat := range patterns {
			if strings.Contains(rel, pat) {
				return nil
			}
		}
		files = append(files, rel)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}

	sort.Strings(files)
	return files, nil
}

// ReadFile returns the text of the file at relPath under root, or a
// sentinel string when the file is oversized, not valid UTF-8, or
// unreadable. It never returns an error: selection treats sentinels as
// first-class content.
func ReadFile(root, relPath string) string {
	full := filepath.Join(root, filepath.FromSlash(relPath))

	if info, err := os.Stat(full); err == nil && info.Size() > maxFileBytes {
		return fmt.Sprintf("[Large file: %d bytes - content omitted]", info.Size())
	}

	data, err := os.ReadFile(full)
	if err != nil {
		return fmt.Sprintf("[Error reading file: %v]", err)
	}
	if !utf8.Valid(data) {
		return binarySentinel
	}
	return string(data)
}

// IsSentinel reports whether content is one of the placeholder strings
// produced in place of real file text.
func IsSentinel(content string) bool {
	return strings.HasPrefix(content, largeFilePrefix) ||
		strings.HasPrefix(content, binaryFilePrefix) ||
		strings.HasPrefix(content, readErrorPrefix)
}
