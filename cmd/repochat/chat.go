package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/repochat/repochat/internal/config"
	"github.com/repochat/repochat/internal/model"
	"github.com/repochat/repochat/internal/selector"
	"github.com/repochat/repochat/internal/service"
	"github.com/repochat/repochat/internal/store"
)

// chatOptions are the shared flags of `chat` and `analyze`.
type chatOptions struct {
	repo       string
	maxFiles   int
	maxContext int
	maxTokens  int
	model      string
	ignore     []string
	showFiles  bool
}

func (o *chatOptions) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.repo, "repo", "", "Repository id or owner/name (defaults to the last cloned repo)")
	cmd.Flags().IntVar(&o.maxFiles, "max-files", 0, "Maximum number of files placed in context (0 = server default)")
	cmd.Flags().IntVar(&o.maxContext, "max-context", 0, "Context token budget (0 = server default)")
	cmd.Flags().IntVar(&o.maxTokens, "max-tokens", 0, "Maximum response tokens (0 = default)")
	cmd.Flags().StringVar(&o.model, "model", "", "Override the LLM model")
	cmd.Flags().StringSliceVar(&o.ignore, "ignore", nil, "Path substrings excluded from selection (repeatable)")
	cmd.Flags().BoolVar(&o.showFiles, "show-files", false, "Print the files used as context")
}

func newChatCommand() *cobra.Command {
	opts := &chatOptions{}

	cmd := &cobra.Command{
		Use:   "chat <question>",
		Short: "Ask a question about the repository",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChat(cmd.Context(), opts, args[0])
		},
	}

	opts.register(cmd)
	return cmd
}

func newAnalyzeCommand() *cobra.Command {
	opts := &chatOptions{}

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Print a high-level analysis of the repository",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChat(cmd.Context(), opts, service.AnalysisQuestion)
		},
	}

	opts.register(cmd)
	return cmd
}

func runChat(ctx context.Context, opts *chatOptions, question string) error {
	return withStore(ctx, func(cfg *config.Config, st *store.Store) error {
		repo, err := resolveRepo(ctx, st, opts.repo)
		if err != nil {
			return err
		}
		if repo.Status != model.RepoStatusReady {
			return fmt.Errorf("repository %s is %s", repo.FullName, repo.Status)
		}

		maxFiles := opts.maxFiles
		if maxFiles <= 0 {
			maxFiles = cfg.MaxContextFiles
		}
		maxContext := opts.maxContext
		if maxContext <= 0 {
			maxContext = cfg.MaxContextTokens
		}

		allFiles, err := st.ListFiles(ctx, repo.RepoID)
		if err != nil {
			return err
		}
		allFiles = filterIgnored(allFiles, opts.ignore)

		sel := selector.New(store.NewRepoReader(st, repo.RepoID))
		result, err := sel.Select(ctx, question, allFiles, maxFiles, maxContext)
		if err != nil {
			return err
		}

		if len(result.Files) == 0 {
			infof("no relevant files found for this question")
			return nil
		}

		if opts.showFiles {
			infof("context files (%d, ~%d tokens):", len(result.Files), result.TotalTokens)
			for _, f := range result.Files {
				fmt.Printf("  %-10s %6d  %s\n", f.Reason, f.Tokens, f.Path)
			}
		}

		llm := service.NewLLMService(cfg.LLMProvider, cfg.LLMModel, cfg.AnthropicAPIKey, cfg.LLMMaxTokens)
		systemPrompt := service.BuildSystemPrompt(result.Files)

		infof("asking %s ...", llm.Model())
		resp, err := llm.Generate(ctx, opts.model, opts.maxTokens, systemPrompt, question)
		if err != nil {
			return err
		}

		fmt.Println()
		fmt.Println(resp.Text)
		return nil
	})
}

func filterIgnored(paths, ignore []string) []string {
	if len(ignore) == 0 {
		return paths
	}
	kept := make([]string, 0, len(paths))
	for _, p := range paths {
		skip := false
		for _, pat := range ignore {
			if pat != "" && strings.Contains(p, pat) {
				skip = true
				break
			}
		}
		if !skip {
			kept = append(kept, p)
		}
	}
	return kept
}
