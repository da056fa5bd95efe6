package usecase

import (
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"sync"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/surch/pkg/domain/interfaces"
	"github.com/secmon-lab/surch/pkg/domain/model"
	"github.com/secmon-lab/surch/pkg/domain/types"
	"github.com/secmon-lab/surch/pkg/utils/logging"
	"golang.org/x/sync/errgroup"
)

type dispatchInput struct {
	Repos       model.RepositorySet
	Terms       model.SearchTermSet
	CloneRoot   string
	Out         interfaces.ResultWriter
	Consolidate bool
	Commits     []string
	Credentials *model.Credentials
	Verbose     bool
	Remove      bool
	Jobs        int
}

type dispatchResult struct {
	Scanned  int
	Failures []model.ScanFailure
}

// dispatch scans repositories with at most Jobs concurrent scans. With Jobs=1
// repositories are scanned one by one in the given order. Each repository is
// cloned into {CloneRoot}/{name}. A failed repository is recorded and does not
// stop the others.
func dispatch(ctx context.Context, scanner interfaces.RepositoryScanner, input *dispatchInput) *dispatchResult {
	logger := logging.From(ctx)
	result := &dispatchResult{}
	var mutex sync.Mutex

	jobs := input.Jobs
	if jobs < 1 {
		jobs = 1
	}

	var eg errgroup.Group
	eg.SetLimit(jobs)

	for i, repo := range input.Repos {
		if ctx.Err() != nil {
			logger.Warn("Dispatching is canceled",
				slog.Int("dispatched", i),
				slog.Int("total", len(input.Repos)),
			)
			break
		}

		req := &model.ScanRequest{
			Repository:  repo,
			SearchTerms: input.Terms,
			CloneDir:    filepath.Join(input.CloneRoot, repo.Name),
			ResultsPath: input.Out.Path(),
			Consolidate: input.Consolidate,
			Commits:     input.Commits,
			Credentials: input.Credentials,
			Verbose:     input.Verbose,
			Remove:      input.Remove,
		}

		eg.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			logger.Info("Scanning repository",
				slog.Int("progress", i+1),
				slog.Int("total", len(input.Repos)),
				slog.String("repo", repo.Name),
			)

			report, err := scanner.Scan(ctx, req, input.Out)

			mutex.Lock()
			defer mutex.Unlock()

			if err != nil {
				if !errors.Is(err, types.ErrRepositoryScan) {
					err = goerr.Wrap(types.ErrRepositoryScan, err.Error(), goerr.V("repository", repo.Name))
				}
				logger.Warn("Failed to scan repository",
					slog.String("repo", repo.Name),
					slog.Any("error", err),
				)
				result.Failures = append(result.Failures, model.ScanFailure{
					Repository: repo.Name,
					Error:      err.Error(),
				})
				return nil
			}

			result.Scanned++
			logger.Info("Successfully scanned repository",
				slog.String("repo", repo.Name),
				slog.Int("commits", report.Commits),
				slog.Int("blobs", report.Blobs),
				slog.Int("matches", report.Matches),
			)
			return nil
		})
	}

	// scan errors are recorded in result, never returned
	_ = eg.Wait()

	return result
}
