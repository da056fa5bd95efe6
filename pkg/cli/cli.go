package cli

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/m-mizutani/gots/slice"
	"github.com/secmon-lab/surch/pkg/cli/config"
	"github.com/secmon-lab/surch/pkg/utils/errutil"
	"github.com/secmon-lab/surch/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

type CLI struct {
}

func New() *CLI {
	return &CLI{}
}

func (x *CLI) Run(argv []string) error {
	var (
		logCfg    config.Logging
		sentryCfg config.Sentry
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	_, ctx = logging.CtxRunID(ctx)

	app := &cli.Command{
		Name:  "surch",
		Usage: "Search git history of GitHub repositories for leaked strings",
		Flags: slice.Flatten(logCfg.Flags(), sentryCfg.Flags()),
		Commands: []*cli.Command{
			repoCommand(&logCfg),
			accountCommand(&logCfg, accountOrg),
			accountCommand(&logCfg, accountUser),
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			if err := logCfg.Configure(false); err != nil {
				return ctx, err
			}
			if err := sentryCfg.Configure(ctx); err != nil {
				return ctx, err
			}
			return withRunLogger(ctx), nil
		},
	}

	if err := app.Run(ctx, argv); err != nil {
		errutil.HandleError(withRunLogger(ctx), "fatal error", err)
		return err
	}

	return nil
}

// withRunLogger attaches the default logger with run ID to ctx
func withRunLogger(ctx context.Context) context.Context {
	runID, ctx := logging.CtxRunID(ctx)
	return logging.With(ctx, logging.Default().With(slog.String("run_id", runID.String())))
}
