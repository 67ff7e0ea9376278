package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/repochat/repochat/internal/config"
	"github.com/repochat/repochat/internal/service"
	"github.com/repochat/repochat/internal/store"
)

func newClearCommand() *cobra.Command {
	var repoFlag string
	var deleteTree bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete a repository's stored files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			return withStore(ctx, func(cfg *config.Config, st *store.Store) error {
				repo, err := resolveRepo(ctx, st, repoFlag)
				if err != nil {
					return err
				}

				if err := st.DeleteRepo(ctx, repo.RepoID); err != nil {
					return err
				}

				if deleteTree {
					ingest := service.NewIngestService(st, cfg.CloneBasePath)
					if err := os.RemoveAll(ingest.WorkingTree(repo.RepoID)); err != nil {
						errorf("could not remove working tree: %v", err)
					}
				}

				if loadLastRepo() == repo.RepoID {
					_ = os.Remove(lastRepoFile())
				}

				successf("deleted %s", repo.FullName)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&repoFlag, "repo", "", "Repository id or owner/name (defaults to the last cloned repo)")
	cmd.Flags().BoolVar(&deleteTree, "delete", false, "Also remove the clone working tree from disk")

	return cmd
}
