package plugin

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/surch/pkg/domain/interfaces"
	"github.com/secmon-lab/surch/pkg/domain/model"
	"github.com/secmon-lab/surch/pkg/domain/types"
	"github.com/secmon-lab/surch/pkg/infra/bq"
	"github.com/secmon-lab/surch/pkg/infra/gcs"
	"github.com/secmon-lab/surch/pkg/infra/history"
	"github.com/secmon-lab/surch/pkg/infra/pagerduty"
	"github.com/secmon-lab/surch/pkg/infra/sentryalert"
	"github.com/secmon-lab/surch/pkg/infra/vault"
)

func decode(id types.PluginID, fn model.DecodeFunc, v any) error {
	if err := fn(v); err != nil {
		return goerr.Wrap(types.ErrConfig, "invalid plugin section",
			goerr.V("plugin", id),
			goerr.V("error", err.Error()),
		)
	}
	return nil
}

// Builtin returns registry of all plugins shipped with surch
func Builtin() *Registry {
	return NewRegistry(
		&Factory{
			ID: types.PluginVault,
			NewSource: func(ctx context.Context, fn model.DecodeFunc) (interfaces.SearchTermSource, error) {
				var cfg vault.Config
				if err := decode(types.PluginVault, fn, &cfg); err != nil {
					return nil, err
				}
				return vault.New(&cfg)
			},
		},
		&Factory{
			ID: types.PluginPagerDuty,
			NewSink: func(ctx context.Context, fn model.DecodeFunc) (interfaces.ResultSink, error) {
				var cfg pagerduty.Config
				if err := decode(types.PluginPagerDuty, fn, &cfg); err != nil {
					return nil, err
				}
				return pagerduty.New(&cfg)
			},
		},
		&Factory{
			ID: types.PluginSentry,
			NewSink: func(ctx context.Context, fn model.DecodeFunc) (interfaces.ResultSink, error) {
				var cfg sentryalert.Config
				if err := decode(types.PluginSentry, fn, &cfg); err != nil {
					return nil, err
				}
				return sentryalert.New(&cfg)
			},
		},
		&Factory{
			ID: types.PluginBigQuery,
			NewSink: func(ctx context.Context, fn model.DecodeFunc) (interfaces.ResultSink, error) {
				var cfg bq.Config
				if err := decode(types.PluginBigQuery, fn, &cfg); err != nil {
					return nil, err
				}
				client, err := bq.NewFromConfig(ctx, &cfg)
				if err != nil {
					return nil, err
				}
				return bq.NewSink(client), nil
			},
		},
		&Factory{
			ID: types.PluginGCS,
			NewSink: func(ctx context.Context, fn model.DecodeFunc) (interfaces.ResultSink, error) {
				var cfg gcs.Config
				if err := decode(types.PluginGCS, fn, &cfg); err != nil {
					return nil, err
				}
				return gcs.New(ctx, &cfg)
			},
		},
		&Factory{
			ID: types.PluginFirestore,
			NewSink: func(ctx context.Context, fn model.DecodeFunc) (interfaces.ResultSink, error) {
				var cfg history.Config
				if err := decode(types.PluginFirestore, fn, &cfg); err != nil {
					return nil, err
				}
				return history.NewFromConfig(ctx, &cfg)
			},
		},
	)
}
