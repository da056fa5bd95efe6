package plugin

import (
	"context"
	"slices"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/surch/pkg/domain/interfaces"
	"github.com/secmon-lab/surch/pkg/domain/model"
	"github.com/secmon-lab/surch/pkg/domain/types"
)

type (
	SourceFactory func(ctx context.Context, decode model.DecodeFunc) (interfaces.SearchTermSource, error)
	SinkFactory   func(ctx context.Context, decode model.DecodeFunc) (interfaces.ResultSink, error)
)

// Factory declares a plugin and its capabilities. A nil factory means the
// plugin does not support the role.
type Factory struct {
	ID        types.PluginID
	NewSource SourceFactory
	NewSink   SinkFactory
}

func (x *Factory) supports(role types.PluginRole) bool {
	switch role {
	case types.PluginSource:
		return x.NewSource != nil
	case types.PluginSink:
		return x.NewSink != nil
	}
	return false
}

// Registry is a closed set of plugins. Plugins are never loaded dynamically.
type Registry struct {
	factories map[types.PluginID]*Factory
}

func NewRegistry(factories ...*Factory) *Registry {
	reg := &Registry{
		factories: make(map[types.PluginID]*Factory, len(factories)),
	}
	for _, f := range factories {
		reg.factories[f.ID] = f
	}
	return reg
}

// IDs returns registered plugin IDs in sorted order
func (x *Registry) IDs() []types.PluginID {
	ids := make([]types.PluginID, 0, len(x.factories))
	for id := range x.factories {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Resolve checks that every declared plugin exists and supports the declared
// role. It does not access network.
func (x *Registry) Resolve(sources, sinks []types.PluginID, sections model.PluginSections) ([]model.PluginDescriptor, error) {
	var descs []model.PluginDescriptor

	declared := []struct {
		role types.PluginRole
		ids  []types.PluginID
	}{
		{role: types.PluginSource, ids: sources},
		{role: types.PluginSink, ids: sinks},
	}

	for _, d := range declared {
		for _, id := range d.ids {
			factory, ok := x.factories[id]
			if !ok {
				return nil, goerr.Wrap(types.ErrPluginNotFound, "unknown plugin",
					goerr.V("plugin", id),
					goerr.V("available", x.IDs()),
				)
			}
			if !factory.supports(d.role) {
				return nil, goerr.Wrap(types.ErrPluginNotFound, "plugin does not support the role",
					goerr.V("plugin", id),
					goerr.V("role", d.role),
				)
			}

			descs = append(descs, model.PluginDescriptor{
				ID:     id,
				Role:   d.role,
				Decode: sections.Decoder(id),
			})
		}
	}

	return descs, nil
}

// Build resolves declared plugins and creates their instances. A broken
// plugin section fails here, before any scan.
func (x *Registry) Build(ctx context.Context, sources, sinks []types.PluginID, sections model.PluginSections) (*Handler, error) {
	descs, err := x.Resolve(sources, sinks, sections)
	if err != nil {
		return nil, err
	}

	handler := &Handler{}
	for _, desc := range descs {
		factory := x.factories[desc.ID]

		switch desc.Role {
		case types.PluginSource:
			src, err := factory.NewSource(ctx, desc.Decode)
			if err != nil {
				return nil, goerr.Wrap(err, "failed to set up source plugin", goerr.V("plugin", desc.ID))
			}
			handler.sources = append(handler.sources, namedSource{id: desc.ID, source: src})

		case types.PluginSink:
			sink, err := factory.NewSink(ctx, desc.Decode)
			if err != nil {
				return nil, goerr.Wrap(err, "failed to set up sink plugin", goerr.V("plugin", desc.ID))
			}
			handler.sinks = append(handler.sinks, namedSink{id: desc.ID, sink: sink})
		}
	}

	return handler, nil
}
