package gcs

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"cloud.google.com/go/storage"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/surch/pkg/domain/interfaces"
	"github.com/secmon-lab/surch/pkg/domain/model"
	"github.com/secmon-lab/surch/pkg/domain/types"
	"github.com/secmon-lab/surch/pkg/utils/logging"
	"github.com/secmon-lab/surch/pkg/utils/safe"
	"google.golang.org/api/option"
)

// Config is `plugins.gcs` section of config file
type Config struct {
	Bucket          types.GCSBucket `yaml:"bucket"`
	Prefix          string          `yaml:"prefix"`
	CredentialsFile string          `yaml:"credentials_file"`
}

func (x *Config) Validate() error {
	if x.Bucket == "" {
		return goerr.Wrap(types.ErrConfig, "gcs bucket is required")
	}
	return nil
}

// Client archives results artifact of every run to Cloud Storage as
// `{prefix}{run_id}.jsonl`, including runs without match.
type Client struct {
	client *storage.Client
	bucket types.GCSBucket
	prefix string
}

var _ interfaces.ResultSink = (*Client)(nil)

func New(ctx context.Context, cfg *Config, options ...option.ClientOption) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if cfg.CredentialsFile != "" {
		options = append(options, option.WithCredentialsFile(model.ExpandHome(cfg.CredentialsFile)))
	}

	client, err := storage.NewClient(ctx, options...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create Cloud Storage client", goerr.V("bucket", cfg.Bucket))
	}

	return &Client{
		client: client,
		bucket: cfg.Bucket,
		prefix: cfg.Prefix,
	}, nil
}

// ObjectName returns object name of the artifact of the run
func (x *Client) ObjectName(runID types.RunID) string {
	return x.prefix + runID.String() + ".jsonl"
}

// Notify implements interfaces.ResultSink.
func (x *Client) Notify(ctx context.Context, artifactPath string) error {
	runID, _ := logging.CtxRunID(ctx)
	objName := x.ObjectName(runID)

	fd, err := os.Open(filepath.Clean(artifactPath))
	if err != nil {
		return goerr.Wrap(err, "failed to open results artifact", goerr.V("path", artifactPath))
	}
	defer safe.Close(fd)

	w := x.client.Bucket(x.bucket.String()).Object(objName).NewWriter(ctx)
	w.ContentType = "application/x-ndjson"
	w.Metadata = map[string]string{
		"run_id": runID.String(),
	}

	if _, err := io.Copy(w, fd); err != nil {
		_ = w.Close()
		return goerr.Wrap(err, "failed to upload results artifact",
			goerr.V("bucket", x.bucket),
			goerr.V("object", objName),
		)
	}
	if err := w.Close(); err != nil {
		return goerr.Wrap(err, "failed to finish upload of results artifact",
			goerr.V("bucket", x.bucket),
			goerr.V("object", objName),
		)
	}

	logging.From(ctx).Info("Archived results artifact",
		slog.String("bucket", x.bucket.String()),
		slog.String("object", objName),
	)
	return nil
}
