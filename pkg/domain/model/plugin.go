package model

import (
	"github.com/secmon-lab/surch/pkg/domain/types"
	"gopkg.in/yaml.v3"
)

// PluginSections holds configuration blocks of plugins keyed by plugin ID
type PluginSections map[types.PluginID]yaml.Node

// DecodeFunc decodes a plugin configuration block into v
type DecodeFunc func(v any) error

// Decoder returns DecodeFunc for the plugin. If the plugin has no section, the
// function leaves v untouched.
func (x PluginSections) Decoder(id types.PluginID) DecodeFunc {
	node, ok := x[id]
	if !ok {
		return func(v any) error { return nil }
	}
	return func(v any) error {
		return node.Decode(v)
	}
}

// PluginDescriptor is a declared plugin with its role and own configuration
type PluginDescriptor struct {
	ID     types.PluginID
	Role   types.PluginRole
	Decode DecodeFunc
}
