package config

import (
	"context"
	"errors"
	"log/slog"

	"github.com/getsentry/sentry-go"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/surch/pkg/domain/types"
	"github.com/secmon-lab/surch/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

// Sentry is a flag group for error reporting. It is not related to the sentry
// sink plugin.
type Sentry struct {
	dsn         string
	environment string
}

func (x *Sentry) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "sentry-dsn",
			Usage:       "Sentry DSN for error reporting",
			Category:    "Sentry",
			Destination: &x.dsn,
			Sources:     cli.EnvVars("SURCH_SENTRY_DSN"),
		},
		&cli.StringFlag{
			Name:        "sentry-env",
			Usage:       "Sentry environment",
			Category:    "Sentry",
			Destination: &x.environment,
			Sources:     cli.EnvVars("SURCH_SENTRY_ENV"),
		},
	}
}

// Reportable returns false for errors caused by command line or config file.
// They are shown to the user and not sent to Sentry.
func Reportable(err error) bool {
	switch {
	case errors.Is(err, types.ErrConfig),
		errors.Is(err, types.ErrInvalidOption),
		errors.Is(err, types.ErrPluginNotFound):
		return false
	default:
		return true
	}
}

func beforeSend(event *sentry.Event, hint *sentry.EventHint) *sentry.Event {
	if hint != nil && hint.OriginalException != nil && !Reportable(hint.OriginalException) {
		return nil
	}
	return event
}

func (x *Sentry) Configure(ctx context.Context) error {
	if x.dsn == "" {
		logging.From(ctx).Debug("sentry is not configured")
		return nil
	}

	if err := sentry.Init(sentry.ClientOptions{
		Dsn:         x.dsn,
		Environment: x.environment,
		BeforeSend:  beforeSend,
	}); err != nil {
		return goerr.Wrap(types.ErrInvalidOption, "failed to initialize sentry", goerr.V("error", err.Error()))
	}

	logging.From(ctx).Debug("sentry is configured", slog.Any("sentry", x))
	return nil
}

func (x *Sentry) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("DSN.len", len(x.dsn)),
		slog.String("Environment", x.environment),
	)
}
