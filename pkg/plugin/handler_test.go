package plugin_test

import (
	"context"
	"errors"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/surch/pkg/domain/interfaces"
	"github.com/secmon-lab/surch/pkg/domain/mock"
	"github.com/secmon-lab/surch/pkg/domain/model"
	"github.com/secmon-lab/surch/pkg/domain/types"
	"github.com/secmon-lab/surch/pkg/plugin"
)

func sourceFactory(id types.PluginID, src interfaces.SearchTermSource) *plugin.Factory {
	return &plugin.Factory{
		ID: id,
		NewSource: func(ctx context.Context, fn model.DecodeFunc) (interfaces.SearchTermSource, error) {
			return src, nil
		},
	}
}

func sinkFactory(id types.PluginID, sink interfaces.ResultSink) *plugin.Factory {
	return &plugin.Factory{
		ID: id,
		NewSink: func(ctx context.Context, fn model.DecodeFunc) (interfaces.ResultSink, error) {
			return sink, nil
		},
	}
}

func TestMergeSearchTerms(t *testing.T) {
	ctx := context.Background()

	first := &mock.SearchTermSourceMock{
		SearchTermsFunc: func(ctx context.Context) ([]string, error) {
			return []string{"AKIA0001", "shared"}, nil
		},
	}
	second := &mock.SearchTermSourceMock{
		SearchTermsFunc: func(ctx context.Context) ([]string, error) {
			return []string{"shared", "ghp_token", ""}, nil
		},
	}
	broken := &mock.SearchTermSourceMock{
		SearchTermsFunc: func(ctx context.Context) ([]string, error) {
			return nil, errors.New("connection refused")
		},
	}

	reg := plugin.NewRegistry(
		sourceFactory("first", first),
		sourceFactory("second", second),
		sourceFactory("broken", broken),
	)

	build := func(ids ...types.PluginID) *plugin.Handler {
		return gt.R1(reg.Build(ctx, ids, nil, nil)).NoError(t)
	}

	t.Run("union of literal and sources", func(t *testing.T) {
		terms := build("first", "broken", "second").MergeSearchTerms(ctx, []string{"literal", "shared"})
		gt.A(t, terms.Slice()).Equal([]string{"AKIA0001", "ghp_token", "literal", "shared"})
	})

	t.Run("deterministic regardless of declaration order", func(t *testing.T) {
		a := build("first", "second").MergeSearchTerms(ctx, []string{"literal"})
		b := build("second", "first").MergeSearchTerms(ctx, []string{"literal"})
		gt.A(t, a.Slice()).Equal(b.Slice())
	})

	t.Run("failed source contributes nothing", func(t *testing.T) {
		terms := build("broken").MergeSearchTerms(ctx, nil)
		gt.Equal(t, terms.Len(), 0)
	})
}

func TestDispatchSinks(t *testing.T) {
	ctx := context.Background()
	var order []string

	ok1 := &mock.ResultSinkMock{
		NotifyFunc: func(ctx context.Context, artifactPath string) error {
			order = append(order, "ok1:"+artifactPath)
			return nil
		},
	}
	failed := &mock.ResultSinkMock{
		NotifyFunc: func(ctx context.Context, artifactPath string) error {
			order = append(order, "failed")
			return errors.New("500 internal server error")
		},
	}
	ok2 := &mock.ResultSinkMock{
		NotifyFunc: func(ctx context.Context, artifactPath string) error {
			order = append(order, "ok2:"+artifactPath)
			return nil
		},
	}

	reg := plugin.NewRegistry(
		sinkFactory("ok1", ok1),
		sinkFactory("failed", failed),
		sinkFactory("ok2", ok2),
	)
	h := gt.R1(reg.Build(ctx, nil, []types.PluginID{"ok1", "failed", "ok2"}, nil)).NoError(t)

	errs := h.DispatchSinks(ctx, "/tmp/results/acme.jsonl")
	gt.A(t, errs).Length(1)
	gt.True(t, errors.Is(errs[0], types.ErrPluginExecution))
	gt.A(t, order).Equal([]string{
		"ok1:/tmp/results/acme.jsonl",
		"failed",
		"ok2:/tmp/results/acme.jsonl",
	})
	gt.A(t, ok2.NotifyCalls()).Length(1)
}
