package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/repochat/repochat/internal/config"
	"github.com/repochat/repochat/internal/model"
	"github.com/repochat/repochat/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "repochat",
	Short: "Chat with a Git repository using Claude",
	Long: `repochat clones a Git repository, stores its files, and answers
questions about the codebase. Only the files most relevant to each
question are placed in the LLM context window.`,
	Version:       "0.1.0",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.AddCommand(newCloneCommand())
	rootCmd.AddCommand(newChatCommand())
	rootCmd.AddCommand(newAnalyzeCommand())
	rootCmd.AddCommand(newListFilesCommand())
	rootCmd.AddCommand(newClearCommand())
}

// withStore loads config, connects the pool, and runs fn with a Store.
func withStore(ctx context.Context, fn func(cfg *config.Config, st *store.Store) error) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	pool, err := store.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	return fn(cfg, store.New(pool))
}

// resolveRepo returns the repo selected by --repo (id or owner/name), or the
// one remembered from the last clone when the flag is empty.
func resolveRepo(ctx context.Context, st *store.Store, repoFlag string) (*model.Repo, error) {
	ref := repoFlag
	if ref == "" {
		ref = loadLastRepo()
	}
	if ref == "" {
		return nil, fmt.Errorf("no repository selected: pass --repo or run `repochat clone` first")
	}

	if strings.Contains(ref, "/") {
		repo, ok, err := st.RepoByFullName(ctx, ref)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, fmt.Errorf("repository %q not found", ref)
		}
		return repo, nil
	}

	repo, ok, err := st.RepoByID(ctx, ref)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("repository %q not found", ref)
	}
	return repo, nil
}

// lastRepoFile is where the most recently cloned repo id is remembered so
// follow-up commands don't need --repo.
func lastRepoFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".repochat", "last_repo")
}

func saveLastRepo(repoID string) {
	path := lastRepoFile()
	if path == "" {
		return
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return
	}
	_ = os.WriteFile(path, []byte(repoID), 0o644)
}

func loadLastRepo() string {
	path := lastRepoFile()
	if path == "" {
		return ""
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

// Colored output helpers.

func successf(format string, args ...any) {
	color.New(color.FgGreen).Printf("✔ "+format+"\n", args...)
}

func infof(format string, args ...any) {
	color.New(color.FgBlue).Printf("ℹ "+format+"\n", args...)
}

func errorf(format string, args ...any) {
	color.New(color.FgRed).Fprintf(os.Stderr, "✗ "+format+"\n", args...)
}
