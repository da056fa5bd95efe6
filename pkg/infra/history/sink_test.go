package history_test

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/surch/pkg/domain/mock"
	"github.com/secmon-lab/surch/pkg/domain/model"
	"github.com/secmon-lab/surch/pkg/domain/types"
	"github.com/secmon-lab/surch/pkg/infra/history"
	"github.com/secmon-lab/surch/pkg/repository"
	"github.com/secmon-lab/surch/pkg/repository/memory"
	"github.com/secmon-lab/surch/pkg/utils/logging"
)

func writeArtifact(t *testing.T, records ...*model.Match) string {
	path := filepath.Join(t.TempDir(), "acme.jsonl")
	var body []byte
	for _, r := range records {
		raw := gt.R1(json.Marshal(r)).NoError(t)
		body = append(append(body, raw...), '\n')
	}
	gt.NoError(t, os.WriteFile(path, body, 0o600))
	return path
}

func match(runID types.RunID, repo, path string, line int) *model.Match {
	return &model.Match{
		RunID:      runID,
		Repository: repo,
		Commit:     "0123456789abcdef0123456789abcdef01234567",
		Path:       path,
		Line:       line,
		SearchTerm: "AKIA",
	}
}

func TestRecord(t *testing.T) {
	repo := memory.New()
	sink := history.NewSink(repo)

	first := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	ctx := logging.CtxWithTime(context.Background(), func() time.Time { return first })

	newFindings := gt.R1(sink.Record(ctx, writeArtifact(t,
		match("run-1", "api", "config.yaml", 1),
		match("run-1", "api", "config.yaml", 1),
		match("run-1", "web", "main.go", 10),
	))).NoError(t)
	gt.A(t, newFindings).Length(2)

	t.Run("seen again is not new", func(t *testing.T) {
		second := first.Add(24 * time.Hour)
		ctx := logging.CtxWithTime(context.Background(), func() time.Time { return second })

		newFindings := gt.R1(sink.Record(ctx, writeArtifact(t,
			match("run-2", "api", "config.yaml", 1),
			match("run-2", "api", "config.yaml", 2),
		))).NoError(t)
		gt.A(t, newFindings).Length(1)
		gt.Equal(t, newFindings[0].Line, 2)

		stored := gt.R1(repo.ListFindings(ctx, "api")).NoError(t)
		gt.A(t, stored).Length(2)
		for _, f := range stored {
			gt.Equal(t, f.LastSeenRunID, "run-2")
			if f.Line == 1 {
				gt.Equal(t, f.FirstSeenRunID, "run-1")
				gt.Equal(t, f.FirstSeenAt, first)
			}
		}
	})

	t.Run("empty artifact", func(t *testing.T) {
		gt.NoError(t, sink.Notify(ctx, writeArtifact(t)))
	})

	t.Run("missing artifact", func(t *testing.T) {
		gt.Error(t, sink.Notify(ctx, filepath.Join(t.TempDir(), "none.jsonl")))
	})
}

func TestRecord_RepositoryError(t *testing.T) {
	ctx := context.Background()
	path := writeArtifact(t, match("run-1", "api", "config.yaml", 1))

	t.Run("get failure stops recording", func(t *testing.T) {
		repo := &mock.FindingRepositoryMock{
			GetFindingFunc: func(ctx context.Context, name string, id string) (*model.Finding, error) {
				return nil, errors.New("unavailable")
			},
			PutFindingsFunc: func(ctx context.Context, name string, findings []*model.Finding) error {
				return nil
			},
		}
		_, err := history.NewSink(repo).Record(ctx, path)
		gt.Error(t, err)
		gt.A(t, repo.PutFindingsCalls()).Length(0)
	})

	t.Run("put failure is returned", func(t *testing.T) {
		repo := &mock.FindingRepositoryMock{
			GetFindingFunc: func(ctx context.Context, name string, id string) (*model.Finding, error) {
				return nil, repository.ErrNotFound
			},
			PutFindingsFunc: func(ctx context.Context, name string, findings []*model.Finding) error {
				return errors.New("quota exceeded")
			},
		}
		gt.Error(t, history.NewSink(repo).Notify(ctx, path))
		gt.A(t, repo.PutFindingsCalls()).Length(1)
		gt.Equal(t, repo.PutFindingsCalls()[0].Repository, "api")
	})
}

func TestConfigValidate(t *testing.T) {
	cfg := history.Config{}
	gt.True(t, errors.Is(cfg.Validate(), types.ErrConfig))

	cfg.ProjectID = "my-project"
	gt.NoError(t, cfg.Validate())
}
