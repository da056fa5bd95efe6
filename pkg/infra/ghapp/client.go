package ghapp

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/bradleyfalzon/ghinstallation/v2"
	"github.com/google/go-github/v53/github"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/surch/pkg/domain/interfaces"
	"github.com/secmon-lab/surch/pkg/domain/model"
	"github.com/secmon-lab/surch/pkg/domain/types"
	"github.com/secmon-lab/surch/pkg/utils/logging"
)

// accessTokenUser is user name of basic authentication with installation
// access token, both for REST API and git over HTTPS.
const accessTokenUser = "x-access-token"

// Client issues installation access tokens of a GitHub App. The token is used
// as credentials of directory listing and cloning.
type Client struct {
	appID     types.GitHubAppID
	pem       types.GitHubAppPrivateKey
	baseURL   string
	installID types.GitHubAppInstallID
}

var _ interfaces.CredentialProvider = (*Client)(nil)

type Option func(*Client)

// WithBaseURL sets API endpoint, e.g. for GitHub Enterprise Server
func WithBaseURL(baseURL types.GitHubAPIURL) Option {
	return func(x *Client) {
		if baseURL != "" {
			x.baseURL = strings.TrimRight(string(baseURL), "/")
		}
	}
}

// WithInstallationID skips installation lookup by account name
func WithInstallationID(installID types.GitHubAppInstallID) Option {
	return func(x *Client) {
		x.installID = installID
	}
}

func New(appID types.GitHubAppID, pem types.GitHubAppPrivateKey, options ...Option) (*Client, error) {
	if appID == 0 {
		return nil, goerr.Wrap(types.ErrInvalidOption, "appID is empty")
	}
	if pem == "" {
		return nil, goerr.Wrap(types.ErrInvalidOption, "pem is empty")
	}

	client := &Client{
		appID:   appID,
		pem:     pem,
		baseURL: strings.TrimRight(model.DefaultGitHubAPIURL, "/"),
	}
	for _, opt := range options {
		opt(client)
	}

	return client, nil
}

func (x *Client) buildInstallationTransport(installID types.GitHubAppInstallID) (*ghinstallation.Transport, error) {
	itr, err := ghinstallation.New(http.DefaultTransport, int64(x.appID), int64(installID), []byte(x.pem))
	if err != nil {
		return nil, goerr.Wrap(types.ErrInvalidOption, "failed to create GitHub App installation transport",
			goerr.V("appID", x.appID),
			goerr.V("error", err.Error()),
		)
	}
	itr.BaseURL = x.baseURL
	return itr, nil
}

func (x *Client) buildAppClient() (*github.Client, error) {
	atr, err := ghinstallation.NewAppsTransport(http.DefaultTransport, int64(x.appID), []byte(x.pem))
	if err != nil {
		return nil, goerr.Wrap(types.ErrInvalidOption, "failed to create GitHub App transport",
			goerr.V("appID", x.appID),
			goerr.V("error", err.Error()),
		)
	}
	atr.BaseURL = x.baseURL

	client := github.NewClient(&http.Client{Transport: atr})
	base, err := client.BaseURL.Parse(x.baseURL + "/")
	if err != nil {
		return nil, goerr.Wrap(err, "invalid GitHub API URL", goerr.V("url", x.baseURL))
	}
	client.BaseURL = base
	return client, nil
}

// FindInstallation looks up installation of the app on the account
func (x *Client) FindInstallation(ctx context.Context, account *model.Account) (types.GitHubAppInstallID, error) {
	client, err := x.buildAppClient()
	if err != nil {
		return 0, err
	}

	var installation *github.Installation
	switch account.Kind {
	case types.AccountOrganization:
		installation, _, err = client.Apps.FindOrganizationInstallation(ctx, account.Name)
	case types.AccountUser:
		installation, _, err = client.Apps.FindUserInstallation(ctx, account.Name)
	default:
		return 0, goerr.Wrap(types.ErrConfig, "invalid account kind", goerr.V("kind", account.Kind))
	}
	if err != nil {
		return 0, goerr.Wrap(types.ErrAuthRequired, "failed to find GitHub App installation",
			goerr.V("account", account.Name),
			goerr.V("error", err.Error()),
		)
	}

	logging.From(ctx).Info("Found GitHub App installation",
		slog.String("account", account.Name),
		slog.Int64("installID", installation.GetID()),
	)
	return types.GitHubAppInstallID(installation.GetID()), nil
}

// Credentials issues an installation access token and returns it as basic
// authentication credentials.
func (x *Client) Credentials(ctx context.Context, installID types.GitHubAppInstallID) (*model.Credentials, error) {
	itr, err := x.buildInstallationTransport(installID)
	if err != nil {
		return nil, err
	}

	token, err := itr.Token(ctx)
	if err != nil {
		return nil, goerr.Wrap(types.ErrAuthRequired, "failed to issue installation access token",
			goerr.V("installID", installID),
			goerr.V("error", err.Error()),
		)
	}

	return &model.Credentials{
		User:     accessTokenUser,
		Password: types.GitHubPassword(token),
	}, nil
}

// AccountCredentials implements interfaces.CredentialProvider. The
// installation is looked up by the account unless given by option.
func (x *Client) AccountCredentials(ctx context.Context, account *model.Account) (*model.Credentials, error) {
	installID := x.installID
	if installID == 0 {
		found, err := x.FindInstallation(ctx, account)
		if err != nil {
			return nil, err
		}
		installID = found
	}

	logging.From(ctx).Debug("Use GitHub App installation token",
		slog.Int64("appID", int64(x.appID)),
		slog.Int64("installID", int64(installID)),
	)
	return x.Credentials(ctx, installID)
}
