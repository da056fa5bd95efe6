package usecase

import (
	"context"
	"log/slog"
	"path/filepath"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/surch/pkg/domain/model"
	"github.com/secmon-lab/surch/pkg/domain/types"
	"github.com/secmon-lab/surch/pkg/infra/results"
	"github.com/secmon-lab/surch/pkg/plugin"
	"github.com/secmon-lab/surch/pkg/utils/logging"
	"github.com/secmon-lab/surch/pkg/utils/safe"
)

// preparePlugins resolves declared plugins and merges search terms. It fails
// before any directory or scan activity. An empty term set is not an error
// because source plugins may fail or have nothing to contribute.
func (x *UseCase) preparePlugins(ctx context.Context, opts *model.SearchOptions) (*plugin.Handler, model.SearchTermSet, error) {
	handler, err := x.clients.Plugins().Build(ctx, opts.Sources, opts.Sinks, opts.Plugins)
	if err != nil {
		return nil, nil, err
	}

	terms := handler.MergeSearchTerms(ctx, opts.SearchTerms)
	if terms.Len() == 0 {
		logging.From(ctx).Warn("No search term is available, skip scanning",
			slog.Int("literal", len(opts.SearchTerms)),
			slog.Any("sources", opts.Sources),
		)
	}

	return handler, terms, nil
}

// finish closes the artifact, notifies sinks and completes the summary
func finish(ctx context.Context, handler *plugin.Handler, artifact *results.Artifact, summary *model.ScanSummary) {
	summary.Matches = artifact.Count()
	summary.ResultsPath = artifact.Path()

	// sinks read the finalized artifact
	safe.Close(artifact)
	summary.SinkFailures = len(handler.DispatchSinks(ctx, artifact.Path()))
}

// SearchAccount scans all selected repositories of an organization or user
// and writes matches into one consolidated artifact,
// {ResultsDir}/{account}.jsonl.
func (x *UseCase) SearchAccount(ctx context.Context, input *model.SearchAccountInput) (*model.ScanSummary, error) {
	runID, ctx := logging.CtxRunID(ctx)
	logger := logging.From(ctx)

	if x.clients.Directory() == nil {
		return nil, goerr.Wrap(types.ErrInvalidOption, "repository directory client is not configured")
	}

	handler, terms, err := x.preparePlugins(ctx, &input.SearchOptions)
	if err != nil {
		return nil, err
	}

	account := input.Account
	var repos model.RepositorySet
	if terms.Len() > 0 {
		if provider := x.clients.CredentialProvider(); provider != nil {
			creds, err := provider.AccountCredentials(ctx, &account)
			if err != nil {
				return nil, goerr.Wrap(err, "failed to get account credentials", goerr.V("account", account.Name))
			}
			account.Credentials = creds
		}

		logger.Info("Listing repositories",
			slog.String("account", account.Name),
			slog.Any("kind", account.Kind),
			slog.Any("type", input.Listing.RepositoryType),
		)

		listed, err := x.clients.Directory().ListRepositories(ctx, &account, input.Listing)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to list repositories", goerr.V("account", account.Name))
		}
		repos = listed.Select(input.Skip, input.Include)

		logger.Info("Selected repositories",
			slog.String("account", account.Name),
			slog.Int("listed", len(listed)),
			slog.Int("selected", len(repos)),
		)
	}

	artifact, err := results.Prepare(filepath.Join(input.ResultsDir, account.Name+".jsonl"))
	if err != nil {
		return nil, err
	}
	defer safe.Close(artifact)

	cloneRoot := filepath.Join(input.CloneRoot, account.Name)
	if err := safe.MkdirAll(cloneRoot); err != nil {
		return nil, err
	}

	dispatched := dispatch(ctx, x.clients.Scanner(), &dispatchInput{
		Repos:       repos,
		Terms:       terms,
		CloneRoot:   cloneRoot,
		Out:         artifact,
		Consolidate: true,
		Credentials: account.Credentials,
		Verbose:     input.Verbose,
		Remove:      input.Remove,
		Jobs:        input.Jobs,
	})

	summary := &model.ScanSummary{
		RunID:    runID,
		Total:    len(repos),
		Scanned:  dispatched.Scanned,
		Failures: dispatched.Failures,
	}
	finish(ctx, handler, artifact, summary)

	logger.Info("Completed account search", slog.Any("summary", summary))
	return summary, nil
}
