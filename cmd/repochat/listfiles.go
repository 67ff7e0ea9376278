package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/repochat/repochat/internal/config"
	"github.com/repochat/repochat/internal/gitrepo"
	"github.com/repochat/repochat/internal/selector"
	"github.com/repochat/repochat/internal/store"
)

func newListFilesCommand() *cobra.Command {
	var repoFlag string

	cmd := &cobra.Command{
		Use:   "list-files",
		Short: "List the stored files of a repository",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			return withStore(ctx, func(cfg *config.Config, st *store.Store) error {
				repo, err := resolveRepo(ctx, st, repoFlag)
				if err != nil {
					return err
				}

				paths, err := st.ListFiles(ctx, repo.RepoID)
				if err != nil {
					return err
				}

				totalTokens := 0
				for _, p := range paths {
					content, ok, err := st.FileContent(ctx, repo.RepoID, p)
					if err != nil {
						return err
					}
					if !ok {
						continue
					}
					tokens := selector.EstimateTokens(content)
					totalTokens += tokens

					marker := " "
					if gitrepo.IsSentinel(content) {
						marker = "!"
					}
					fmt.Printf("%s %6d  %s\n", marker, tokens, p)
				}

				infof("%d files, ~%d tokens total (! = placeholder content)", len(paths), totalTokens)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&repoFlag, "repo", "", "Repository id or owner/name (defaults to the last cloned repo)")

	return cmd
}
