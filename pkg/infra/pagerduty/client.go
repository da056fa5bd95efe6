package pagerduty

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/PagerDuty/go-pagerduty"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/surch/pkg/domain/interfaces"
	"github.com/secmon-lab/surch/pkg/domain/model"
	"github.com/secmon-lab/surch/pkg/domain/types"
	"github.com/secmon-lab/surch/pkg/infra/results"
	"github.com/secmon-lab/surch/pkg/utils/logging"
)

const (
	defaultSeverity = "critical"
	defaultSource   = "surch"
)

// Config is `plugins.pagerduty` section of config file
type Config struct {
	RoutingKey types.PagerDutyRoutingKey `yaml:"routing_key"`
	Severity   string                    `yaml:"severity"`
	Source     string                    `yaml:"source"`
	Endpoint   string                    `yaml:"endpoint"`
}

func (x *Config) Validate() error {
	if x.RoutingKey == "" {
		return goerr.Wrap(types.ErrConfig, "pagerduty routing_key is required")
	}
	switch x.Severity {
	case "", "critical", "error", "warning", "info":
	default:
		return goerr.Wrap(types.ErrConfig, "invalid pagerduty severity", goerr.V("severity", x.Severity))
	}
	return nil
}

// Client triggers a PagerDuty incident via Events API v2 when a run found
// any match.
type Client struct {
	client     *pagerduty.Client
	routingKey types.PagerDutyRoutingKey
	severity   string
	source     string
}

var _ interfaces.ResultSink = (*Client)(nil)

func New(cfg *Config) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var opts []pagerduty.ClientOptions
	if cfg.Endpoint != "" {
		opts = append(opts, pagerduty.WithV2EventsAPIEndpoint(cfg.Endpoint))
	}

	client := &Client{
		client:     pagerduty.NewClient("", opts...),
		routingKey: cfg.RoutingKey,
		severity:   cfg.Severity,
		source:     cfg.Source,
	}
	if client.severity == "" {
		client.severity = defaultSeverity
	}
	if client.source == "" {
		client.source = defaultSource
	}

	return client, nil
}

// Notify implements interfaces.ResultSink.
func (x *Client) Notify(ctx context.Context, artifactPath string) error {
	records, err := results.ReadRecords(artifactPath)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		logging.From(ctx).Debug("No match, skip PagerDuty notification")
		return nil
	}

	runID, _ := logging.CtxRunID(ctx)
	digest := model.Digest(records)

	event := &pagerduty.V2Event{
		RoutingKey: string(x.routingKey),
		Action:     "trigger",
		DedupKey:   runID.String(),
		Payload: &pagerduty.V2Payload{
			Summary:   fmt.Sprintf("surch found %d matches in %d repositories", len(records), len(digest.Repositories)),
			Source:    x.source,
			Severity:  x.severity,
			Timestamp: logging.CtxTime(ctx).UTC().Format(time.RFC3339),
			Component: "surch",
			Details: map[string]any{
				"run_id":       runID,
				"results_path": artifactPath,
				"repositories": digest.Repositories,
				"search_terms": digest.SearchTerms,
				"matches":      digest.Matches,
			},
		},
	}

	resp, err := x.client.ManageEventWithContext(ctx, event)
	if err != nil {
		return goerr.Wrap(err, "failed to trigger PagerDuty event", goerr.V("results_path", artifactPath))
	}

	logging.From(ctx).Info("Triggered PagerDuty event",
		slog.String("dedup_key", resp.DedupKey),
		slog.Int("matches", len(records)),
	)
	return nil
}
