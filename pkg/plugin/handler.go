package plugin

import (
	"context"
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/surch/pkg/domain/interfaces"
	"github.com/secmon-lab/surch/pkg/domain/model"
	"github.com/secmon-lab/surch/pkg/domain/types"
	"github.com/secmon-lab/surch/pkg/utils/logging"
)

type namedSource struct {
	id     types.PluginID
	source interfaces.SearchTermSource
}

type namedSink struct {
	id   types.PluginID
	sink interfaces.ResultSink
}

// Handler runs plugins of a run. Plugins never see output of each other.
type Handler struct {
	sources []namedSource
	sinks   []namedSink
}

// MergeSearchTerms runs source plugins in declaration order and returns union
// of their terms and literal terms. A failed source contributes nothing.
func (x *Handler) MergeSearchTerms(ctx context.Context, literal []string) model.SearchTermSet {
	terms := model.NewSearchTermSet(literal...)

	for _, src := range x.sources {
		got, err := src.source.SearchTerms(ctx)
		if err != nil {
			logging.From(ctx).Warn("Source plugin failed, skip it",
				slog.Any("plugin", src.id),
				slog.Any("error", goerr.Wrap(types.ErrPluginExecution, err.Error(), goerr.V("plugin", src.id))),
			)
			continue
		}

		terms = terms.Union(model.NewSearchTermSet(got...))
		logging.From(ctx).Info("Merged search terms from source plugin",
			slog.Any("plugin", src.id),
			slog.Int("terms", len(got)),
		)
	}

	return terms
}

// DispatchSinks passes the finalized artifact to every sink plugin. Failures
// are logged and returned for the summary, but never stop other sinks.
func (x *Handler) DispatchSinks(ctx context.Context, artifactPath string) []error {
	var errs []error
	for _, s := range x.sinks {
		if err := s.sink.Notify(ctx, artifactPath); err != nil {
			wrapped := goerr.Wrap(types.ErrPluginExecution, err.Error(), goerr.V("plugin", s.id))
			logging.From(ctx).Warn("Sink plugin failed", slog.Any("plugin", s.id), slog.Any("error", wrapped))
			errs = append(errs, wrapped)
			continue
		}
		logging.From(ctx).Debug("Sink plugin done", slog.Any("plugin", s.id))
	}
	return errs
}
