package main

import (
	"github.com/spf13/cobra"

	"github.com/repochat/repochat/internal/config"
	"github.com/repochat/repochat/internal/service"
	"github.com/repochat/repochat/internal/store"
)

func newCloneCommand() *cobra.Command {
	var ignore []string

	cmd := &cobra.Command{
		Use:   "clone <url>",
		Short: "Clone a repository and store its files",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			url := args[0]
			ctx := cmd.Context()

			return withStore(ctx, func(cfg *config.Config, st *store.Store) error {
				infof("cloning %s ...", url)

				ingest := service.NewIngestService(st, cfg.CloneBasePath)
				repo, err := ingest.CloneAndStore(ctx, url, ignore)
				if err != nil {
					return err
				}

				saveLastRepo(repo.RepoID)
				successf("cloned %s (%d files)", repo.FullName, repo.FileCount)
				infof("repo id: %s", repo.RepoID)
				return nil
			})
		},
	}

	cmd.Flags().StringSliceVar(&ignore, "ignore", nil, "Path substrings to skip while ingesting (repeatable)")

	return cmd
}
