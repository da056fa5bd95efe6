package model

import (
	"github.com/secmon-lab/surch/pkg/domain/types"
)

// SearchOptions are shared options of account and repository search
type SearchOptions struct {
	SearchTerms []string
	CloneRoot   string
	ResultsDir  string
	Remove      bool
	Verbose     bool

	Sources []types.PluginID
	Sinks   []types.PluginID
	Plugins PluginSections
}

// ListOptions controls the repository directory listing
type ListOptions struct {
	PageSize       int
	RepositoryType types.RepositoryType
	URLKey         types.URLKey
}

// SearchAccountInput is a validated input to scan repositories of an
// organization or user.
type SearchAccountInput struct {
	Account Account
	Skip    []string
	Include []string
	Jobs    int
	Listing ListOptions
	SearchOptions
}

// SearchRepositoryInput is a validated input to scan a single repository
type SearchRepositoryInput struct {
	URL         string
	Commits     []string
	Credentials *Credentials
	SearchOptions
}
