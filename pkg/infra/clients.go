package infra

import (
	"github.com/secmon-lab/surch/pkg/domain/interfaces"
	"github.com/secmon-lab/surch/pkg/infra/gitscan"
	"github.com/secmon-lab/surch/pkg/plugin"
)

type Clients struct {
	directory interfaces.Directory
	scanner   interfaces.RepositoryScanner
	plugins   *plugin.Registry
	creds     interfaces.CredentialProvider
}

type Option func(*Clients)

func New(options ...Option) *Clients {
	client := &Clients{
		scanner: gitscan.New(),
		plugins: plugin.Builtin(),
	}

	for _, opt := range options {
		opt(client)
	}

	return client
}

func (x *Clients) Directory() interfaces.Directory {
	return x.directory
}
func (x *Clients) Scanner() interfaces.RepositoryScanner {
	return x.scanner
}
func (x *Clients) Plugins() *plugin.Registry {
	return x.plugins
}

// CredentialProvider returns nil if credentials are given by user and
// password, or not given at all.
func (x *Clients) CredentialProvider() interfaces.CredentialProvider {
	return x.creds
}

func WithDirectory(client interfaces.Directory) Option {
	return func(x *Clients) {
		x.directory = client
	}
}

func WithScanner(scanner interfaces.RepositoryScanner) Option {
	return func(x *Clients) {
		x.scanner = scanner
	}
}

func WithPlugins(reg *plugin.Registry) Option {
	return func(x *Clients) {
		x.plugins = reg
	}
}

func WithCredentialProvider(provider interfaces.CredentialProvider) Option {
	return func(x *Clients) {
		x.creds = provider
	}
}
