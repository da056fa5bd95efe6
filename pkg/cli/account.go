package cli

import (
	"context"

	"github.com/m-mizutani/gots/slice"
	"github.com/secmon-lab/surch/pkg/cli/config"
	"github.com/secmon-lab/surch/pkg/domain/model"
	"github.com/secmon-lab/surch/pkg/domain/types"
	"github.com/secmon-lab/surch/pkg/infra"
	"github.com/secmon-lab/surch/pkg/infra/ghapi"
	"github.com/secmon-lab/surch/pkg/usecase"
	"github.com/urfave/cli/v3"
)

type accountMode struct {
	name  string
	usage string
	kind  types.AccountKind
}

var (
	accountOrg = accountMode{
		name:  "org",
		usage: "Search history of all repositories of an organization",
		kind:  types.AccountOrganization,
	}
	accountUser = accountMode{
		name:  "user",
		usage: "Search history of all repositories of a user",
		kind:  types.AccountUser,
	}
)

func accountCommand(logCfg *config.Logging, mode accountMode) *cli.Command {
	var (
		search = config.NewSearch(true)
		github config.GitHub
		app    config.GitHubApp
	)

	return &cli.Command{
		Name:      mode.name,
		Usage:     mode.usage,
		ArgsUsage: "[" + mode.name + "_name]",
		Flags:     slice.Flatten(search.Flags(), github.Flags(), app.Flags()),
		Action: func(ctx context.Context, c *cli.Command) error {
			var cfg *model.Config
			if path := search.ConfigFile(); path != "" {
				loaded, err := model.LoadConfigFile(path)
				if err != nil {
					return err
				}
				cfg = loaded
			} else {
				cfg = &model.Config{Organization: c.Args().First()}
				search.Apply(cfg)
				github.Apply(cfg)
				app.Apply(cfg)
			}

			if cfg.Verbose {
				if err := logCfg.Configure(true); err != nil {
					return err
				}
				ctx = withRunLogger(ctx)
			}

			input, err := cfg.AccountInput(mode.kind)
			if err != nil {
				return err
			}
			appOpts, err := appClientOptions(cfg)
			if err != nil {
				return err
			}

			dir, err := ghapi.New(
				ghapi.WithBaseURL(cfg.GitHubAPIURL),
				ghapi.WithRateLimit(cfg.RateLimit),
			)
			if err != nil {
				return err
			}

			uc := usecase.New(infra.New(append(appOpts, infra.WithDirectory(dir))...))
			summary, err := uc.SearchAccount(ctx, input)
			if err != nil {
				return err
			}

			return report(ctx, cfg, summary)
		},
	}
}
