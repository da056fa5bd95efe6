package sentryalert

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/surch/pkg/domain/interfaces"
	"github.com/secmon-lab/surch/pkg/domain/model"
	"github.com/secmon-lab/surch/pkg/domain/types"
	"github.com/secmon-lab/surch/pkg/infra/results"
	"github.com/secmon-lab/surch/pkg/utils/logging"
)

const flushTimeout = 10 * time.Second

// Config is `plugins.sentry` section of config file
type Config struct {
	DSN         string `yaml:"dsn" masq:"secret"`
	Environment string `yaml:"environment"`
	Level       string `yaml:"level"`
}

func (x *Config) level() (sentry.Level, error) {
	switch sentry.Level(x.Level) {
	case "":
		return sentry.LevelWarning, nil
	case sentry.LevelDebug, sentry.LevelInfo, sentry.LevelWarning, sentry.LevelError, sentry.LevelFatal:
		return sentry.Level(x.Level), nil
	default:
		return "", goerr.Wrap(types.ErrConfig, "invalid sentry level", goerr.V("level", x.Level))
	}
}

// Client sends a Sentry message event when a run found any match. It has own
// hub and does not share the one used for error reporting.
type Client struct {
	hub   *sentry.Hub
	level sentry.Level
}

var _ interfaces.ResultSink = (*Client)(nil)

type Option func(*sentry.ClientOptions)

// WithTransport replaces transport of Sentry client
func WithTransport(tr sentry.Transport) Option {
	return func(opts *sentry.ClientOptions) {
		opts.Transport = tr
	}
}

func New(cfg *Config, options ...Option) (*Client, error) {
	if cfg.DSN == "" {
		return nil, goerr.Wrap(types.ErrConfig, "sentry dsn is required")
	}
	level, err := cfg.level()
	if err != nil {
		return nil, err
	}

	clientOpts := sentry.ClientOptions{
		Dsn:         cfg.DSN,
		Environment: cfg.Environment,
	}
	for _, opt := range options {
		opt(&clientOpts)
	}

	client, err := sentry.NewClient(clientOpts)
	if err != nil {
		return nil, goerr.Wrap(types.ErrConfig, "failed to create sentry client", goerr.V("error", err.Error()))
	}

	return &Client{
		hub:   sentry.NewHub(client, sentry.NewScope()),
		level: level,
	}, nil
}

// Notify implements interfaces.ResultSink.
func (x *Client) Notify(ctx context.Context, artifactPath string) error {
	records, err := results.ReadRecords(artifactPath)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		logging.From(ctx).Debug("No match, skip Sentry notification")
		return nil
	}

	runID, _ := logging.CtxRunID(ctx)
	digest := model.Digest(records)

	var evID *sentry.EventID
	x.hub.WithScope(func(scope *sentry.Scope) {
		scope.SetLevel(x.level)
		scope.SetTag("run_id", runID.String())
		scope.SetExtra("results_path", artifactPath)
		scope.SetExtra("repositories", digest.Repositories)
		scope.SetExtra("search_terms", digest.SearchTerms)
		scope.SetExtra("matches", digest.Matches)
		evID = x.hub.CaptureMessage(fmt.Sprintf("surch found %d matches in %d repositories", digest.Matches, len(digest.Repositories)))
	})

	if !x.hub.Flush(flushTimeout) {
		return goerr.New("failed to flush sentry events", goerr.V("results_path", artifactPath))
	}

	logging.From(ctx).Info("Sent Sentry event", slog.Any("event_id", evID))
	return nil
}
