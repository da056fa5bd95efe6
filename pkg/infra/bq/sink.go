package bq

import (
	"context"
	"log/slog"

	"cloud.google.com/go/bigquery"
	"github.com/m-mizutani/bqs"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/surch/pkg/domain/interfaces"
	"github.com/secmon-lab/surch/pkg/domain/model"
	"github.com/secmon-lab/surch/pkg/domain/types"
	"github.com/secmon-lab/surch/pkg/infra/results"
	"github.com/secmon-lab/surch/pkg/utils/logging"
	"google.golang.org/api/option"
)

// Config is `plugins.bigquery` section of config file
type Config struct {
	ProjectID       types.GoogleProjectID `yaml:"project_id"`
	DatasetID       types.BQDatasetID     `yaml:"dataset_id"`
	TableID         types.BQTableID       `yaml:"table_id"`
	CredentialsFile string                `yaml:"credentials_file"`
}

func (x *Config) Validate() error {
	if x.ProjectID == "" {
		return goerr.Wrap(types.ErrConfig, "bigquery project_id is required")
	}
	if x.DatasetID == "" {
		return goerr.Wrap(types.ErrConfig, "bigquery dataset_id is required")
	}
	if x.TableID == "" {
		return goerr.Wrap(types.ErrConfig, "bigquery table_id is required")
	}
	return nil
}

// NewFromConfig creates BigQuery client from plugin config
func NewFromConfig(ctx context.Context, cfg *Config) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var opts []option.ClientOption
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(model.ExpandHome(cfg.CredentialsFile)))
	}

	return New(ctx, cfg.ProjectID, cfg.DatasetID, cfg.TableID, opts...)
}

// Sink inserts one row per match record into a BigQuery table. The table is
// created or its schema is merged before insertion.
type Sink struct {
	client interfaces.BigQuery
}

var _ interfaces.ResultSink = (*Sink)(nil)

func NewSink(client interfaces.BigQuery) *Sink {
	return &Sink{client: client}
}

// matchRow is BigQuery representation of model.Match. Timestamp is sent as
// microseconds because the storage write API accepts TIMESTAMP as int64.
type matchRow struct {
	RunID       string `json:"run_id"`
	Repository  string `json:"repository"`
	URL         string `json:"url"`
	Commit      string `json:"commit"`
	Author      string `json:"author"`
	Email       string `json:"email"`
	CommittedAt int64  `json:"committed_at"`
	Path        string `json:"path"`
	Line        int    `json:"line"`
	SearchTerm  string `json:"search_term"`
}

func newMatchRow(m *model.Match) *matchRow {
	return &matchRow{
		RunID:       m.RunID.String(),
		Repository:  m.Repository,
		URL:         m.URL,
		Commit:      string(m.Commit),
		Author:      m.Author,
		Email:       m.Email,
		CommittedAt: m.CommittedAt.UnixMicro(),
		Path:        m.Path,
		Line:        m.Line,
		SearchTerm:  m.SearchTerm,
	}
}

// Notify implements interfaces.ResultSink.
func (x *Sink) Notify(ctx context.Context, artifactPath string) error {
	records, err := results.ReadRecords(artifactPath)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		logging.From(ctx).Debug("No match, skip BigQuery insertion")
		return nil
	}

	schema, err := createOrUpdateTable(ctx, x.client)
	if err != nil {
		return err
	}

	rows := make([]any, len(records))
	for i, r := range records {
		rows[i] = newMatchRow(r)
	}

	if err := x.client.Insert(ctx, schema, rows); err != nil {
		return goerr.Wrap(err, "failed to insert match records", goerr.V("rows", len(rows)))
	}

	logging.From(ctx).Info("Inserted match records to BigQuery", slog.Int("rows", len(rows)))
	return nil
}

func createOrUpdateTable(ctx context.Context, client interfaces.BigQuery) (bigquery.Schema, error) {
	schema, err := bigquery.InferSchema(model.Match{})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to infer match schema")
	}

	metaData, err := client.GetMetadata(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get BigQuery table metadata")
	}
	if metaData == nil {
		if err := client.CreateTable(ctx, &bigquery.TableMetadata{
			Schema: schema,
			TimePartitioning: &bigquery.TimePartitioning{
				Field: "committed_at",
			},
		}); err != nil {
			return nil, goerr.Wrap(err, "failed to create BigQuery table")
		}
		return schema, nil
	}

	if bqs.Equal(metaData.Schema, schema) {
		return schema, nil
	}

	mergedSchema, err := bqs.Merge(metaData.Schema, schema)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to merge BigQuery schema")
	}
	if err := client.UpdateTable(ctx, bigquery.TableMetadataToUpdate{
		Schema: mergedSchema,
	}, metaData.ETag); err != nil {
		return nil, goerr.Wrap(err, "failed to update BigQuery table")
	}

	return mergedSchema, nil
}
