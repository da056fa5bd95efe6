package history

import (
	"context"
	"errors"
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/surch/pkg/domain/interfaces"
	"github.com/secmon-lab/surch/pkg/domain/model"
	"github.com/secmon-lab/surch/pkg/domain/types"
	"github.com/secmon-lab/surch/pkg/infra/results"
	"github.com/secmon-lab/surch/pkg/repository"
	"github.com/secmon-lab/surch/pkg/repository/firestore"
	"github.com/secmon-lab/surch/pkg/utils/logging"
	"google.golang.org/api/option"
)

// Config is `plugins.firestore` section of config file
type Config struct {
	ProjectID       types.GoogleProjectID `yaml:"project_id"`
	DatabaseID      string                `yaml:"database_id"`
	Collection      string                `yaml:"collection"`
	CredentialsFile string                `yaml:"credentials_file"`
}

func (x *Config) Validate() error {
	if x.ProjectID == "" {
		return goerr.Wrap(types.ErrConfig, "firestore project_id is required")
	}
	return nil
}

// NewFromConfig creates a sink backed by Firestore
func NewFromConfig(ctx context.Context, cfg *Config) (*Sink, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var opts []option.ClientOption
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(model.ExpandHome(cfg.CredentialsFile)))
	}

	repo, err := firestore.New(ctx, cfg.ProjectID.String(), cfg.DatabaseID, cfg.Collection, opts...)
	if err != nil {
		return nil, err
	}
	return NewSink(repo), nil
}

// Sink records findings of every run into a finding repository and reports
// how many of them are seen for the first time.
type Sink struct {
	repo interfaces.FindingRepository
}

var _ interfaces.ResultSink = (*Sink)(nil)

func NewSink(repo interfaces.FindingRepository) *Sink {
	return &Sink{repo: repo}
}

// Notify implements interfaces.ResultSink.
func (x *Sink) Notify(ctx context.Context, artifactPath string) error {
	_, err := x.Record(ctx, artifactPath)
	return err
}

// Record stores findings of the artifact and returns findings seen for the
// first time.
func (x *Sink) Record(ctx context.Context, artifactPath string) ([]*model.Finding, error) {
	records, err := results.ReadRecords(artifactPath)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		logging.From(ctx).Debug("No match, skip recording findings")
		return nil, nil
	}

	now := logging.CtxTime(ctx).UTC()

	var repoNames []string
	byRepo := map[string][]*model.Finding{}
	for _, r := range records {
		if _, ok := byRepo[r.Repository]; !ok {
			repoNames = append(repoNames, r.Repository)
		}
		byRepo[r.Repository] = append(byRepo[r.Repository], model.NewFinding(r, now))
	}

	var newFindings []*model.Finding
	for _, name := range repoNames {
		var updates []*model.Finding
		seen := map[string]bool{}

		for _, finding := range byRepo[name] {
			if seen[finding.ID] {
				continue
			}
			seen[finding.ID] = true

			stored, err := x.repo.GetFinding(ctx, name, finding.ID)
			switch {
			case errors.Is(err, repository.ErrNotFound):
				newFindings = append(newFindings, finding)
				updates = append(updates, finding)
			case err != nil:
				return nil, goerr.Wrap(err, "failed to get finding", goerr.V("repo", name))
			default:
				stored.SeenAgain(finding)
				updates = append(updates, stored)
			}
		}

		if err := x.repo.PutFindings(ctx, name, updates); err != nil {
			return nil, err
		}
	}

	logging.From(ctx).Info("Recorded findings",
		slog.Int("records", len(records)),
		slog.Int("new", len(newFindings)),
	)

	return newFindings, nil
}
