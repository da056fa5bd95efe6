package cli

import (
	"context"
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gots/slice"
	"github.com/secmon-lab/surch/pkg/cli/config"
	"github.com/secmon-lab/surch/pkg/domain/model"
	"github.com/secmon-lab/surch/pkg/domain/types"
	"github.com/secmon-lab/surch/pkg/infra"
	"github.com/secmon-lab/surch/pkg/usecase"
	"github.com/secmon-lab/surch/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

func repoCommand(logCfg *config.Logging) *cli.Command {
	var (
		search  = config.NewSearch(false)
		commits []string
	)

	return &cli.Command{
		Name:      "repo",
		Usage:     "Search history of a single repository",
		ArgsUsage: "[repo_url]",
		Flags: slice.Flatten(search.Flags(), []cli.Flag{
			&cli.StringSliceFlag{
				Name:        "commit",
				Aliases:     []string{"m"},
				Usage:       "Commit hash to scan, all history is scanned if not given (repeatable)",
				Destination: &commits,
			},
		}),
		Action: func(ctx context.Context, c *cli.Command) error {
			var cfg *model.Config
			if path := search.ConfigFile(); path != "" {
				loaded, err := model.LoadConfigFile(path)
				if err != nil {
					return err
				}
				cfg = loaded
			} else {
				cfg = &model.Config{
					RepoURL: c.Args().First(),
					Commits: commits,
				}
				search.Apply(cfg)
			}

			if cfg.RepoURL == "" {
				url, err := OriginURL(ctx, ".")
				if err != nil {
					return goerr.Wrap(types.ErrConfig, "repository URL is required, and it can not be detected from current directory",
						goerr.V("error", err.Error()),
					)
				}
				logging.From(ctx).Info("Repository URL is detected from origin", slog.String("url", url))
				cfg.RepoURL = url
			}

			if cfg.Verbose {
				if err := logCfg.Configure(true); err != nil {
					return err
				}
				ctx = withRunLogger(ctx)
			}

			input, err := cfg.RepositoryInput()
			if err != nil {
				return err
			}

			uc := usecase.New(infra.New())
			summary, err := uc.SearchRepository(ctx, input)
			if err != nil {
				return err
			}

			return report(ctx, cfg, summary)
		},
	}
}
