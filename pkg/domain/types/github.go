package types

import (
	"log/slog"

	"github.com/google/uuid"
)

type (
	GitHubUser     string
	GitHubPassword string
	GitHubAPIURL   string
	CommitSHA      string
	RunID          string
)

// AccountKind is a discriminator of GitHub account. The value is also the path
// segment of the REST API ("orgs" or "users").
type AccountKind string

const (
	AccountOrganization AccountKind = "organization"
	AccountUser         AccountKind = "user"
)

// APIPath returns the REST API collection name of the account kind
func (x AccountKind) APIPath() string {
	switch x {
	case AccountOrganization:
		return "orgs"
	case AccountUser:
		return "users"
	default:
		return ""
	}
}

// URLKey is a field name of repository entry in the listing API response that
// is used as clone URL.
type URLKey string

const (
	URLKeyClone URLKey = "clone_url"
	URLKeySSH   URLKey = "ssh_url"
	URLKeyGit   URLKey = "git_url"
	URLKeySVN   URLKey = "svn_url"
	URLKeyHTML  URLKey = "html_url"
)

func (x URLKey) Valid() bool {
	switch x {
	case URLKeyClone, URLKeySSH, URLKeyGit, URLKeySVN, URLKeyHTML:
		return true
	}
	return false
}

// RepositoryType is a value of `type` query parameter of the listing API. It
// also decides the count field of the account metadata, `{type}_repos`.
type RepositoryType string

const (
	RepositoryPublic  RepositoryType = "public"
	RepositoryPrivate RepositoryType = "private"
	RepositoryAll     RepositoryType = "all"
	RepositoryOwner   RepositoryType = "owner"
	RepositoryMember  RepositoryType = "member"
	RepositorySources RepositoryType = "sources"
	RepositoryForks   RepositoryType = "forks"
)

func (x RepositoryType) Valid() bool {
	switch x {
	case RepositoryPublic, RepositoryPrivate, RepositoryAll, RepositoryOwner,
		RepositoryMember, RepositorySources, RepositoryForks:
		return true
	}
	return false
}

// CountField returns the field name of account metadata holding the number of
// repositories of the type.
func (x RepositoryType) CountField() string {
	return string(x) + "_repos"
}

func NewRunID() RunID {
	return RunID(uuid.NewString())
}

func (x RunID) String() string {
	return string(x)
}

func (x GitHubPassword) LogValue() slog.Value {
	return slog.StringValue("***********")
}

func (x GitHubPassword) String() string {
	return "***********"
}

type (
	GitHubAppID         int64
	GitHubAppInstallID  int64
	GitHubAppPrivateKey string
)

func (x GitHubAppPrivateKey) LogValue() slog.Value {
	return slog.StringValue("***********")
}

func (x GitHubAppPrivateKey) String() string {
	return "***********"
}
