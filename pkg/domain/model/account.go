package model

import (
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/surch/pkg/domain/types"
)

// Credentials is a pair of GitHub user name and password (or personal access
// token) for basic authentication.
type Credentials struct {
	User     types.GitHubUser
	Password types.GitHubPassword
}

// Available returns true only if both of user and password are set
func (x *Credentials) Available() bool {
	return x != nil && x.User != "" && x.Password != ""
}

func (x *Credentials) LogValue() slog.Value {
	if x == nil {
		return slog.StringValue("(none)")
	}
	return slog.GroupValue(
		slog.String("user", string(x.User)),
		slog.Int("password.len", len(x.Password)),
	)
}

// Account is a GitHub organization or user whose repositories are scanned
type Account struct {
	Name        string
	Kind        types.AccountKind
	Credentials *Credentials
}

func (x *Account) Validate() error {
	if x.Name == "" {
		return goerr.Wrap(types.ErrConfig, "account name is required")
	}
	if x.Kind.APIPath() == "" {
		return goerr.Wrap(types.ErrConfig, "invalid account kind", goerr.V("kind", x.Kind))
	}
	if x.Credentials != nil && (x.Credentials.User == "") != (x.Credentials.Password == "") {
		return goerr.Wrap(types.ErrConfig, "both of git user and password are required for authentication",
			goerr.V("user", x.Credentials.User),
		)
	}
	return nil
}
