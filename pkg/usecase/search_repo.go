package usecase

import (
	"context"
	"log/slog"
	"path/filepath"

	"github.com/secmon-lab/surch/pkg/domain/model"
	"github.com/secmon-lab/surch/pkg/infra/results"
	"github.com/secmon-lab/surch/pkg/utils/logging"
	"github.com/secmon-lab/surch/pkg/utils/safe"
)

// SearchRepository scans a single repository. The repository owns its
// artifact, {ResultsDir}/{repo}.jsonl, and truncates it on every invocation.
func (x *UseCase) SearchRepository(ctx context.Context, input *model.SearchRepositoryInput) (*model.ScanSummary, error) {
	runID, ctx := logging.CtxRunID(ctx)
	logger := logging.From(ctx)

	handler, terms, err := x.preparePlugins(ctx, &input.SearchOptions)
	if err != nil {
		return nil, err
	}

	repo := model.RepositoryRef{
		Name: model.RepoNameFromURL(input.URL),
		URL:  input.URL,
	}

	artifact, err := results.Prepare(filepath.Join(input.ResultsDir, repo.Name+".jsonl"))
	if err != nil {
		return nil, err
	}
	defer safe.Close(artifact)

	if err := safe.MkdirAll(input.CloneRoot); err != nil {
		return nil, err
	}

	var repos model.RepositorySet
	if terms.Len() > 0 {
		repos = model.RepositorySet{repo}
		logger.Info("Searching repository",
			slog.String("repo", repo.Name),
			slog.Int("commits", len(input.Commits)),
		)
	}

	dispatched := dispatch(ctx, x.clients.Scanner(), &dispatchInput{
		Repos:       repos,
		Terms:       terms,
		CloneRoot:   input.CloneRoot,
		Out:         artifact,
		Commits:     input.Commits,
		Credentials: input.Credentials,
		Verbose:     input.Verbose,
		Remove:      input.Remove,
		Jobs:        1,
	})

	summary := &model.ScanSummary{
		RunID:    runID,
		Total:    len(repos),
		Scanned:  dispatched.Scanned,
		Failures: dispatched.Failures,
	}
	finish(ctx, handler, artifact, summary)

	logger.Info("Completed repository search", slog.Any("summary", summary))
	return summary, nil
}
