package config

import (
	"log/slog"

	"github.com/secmon-lab/surch/pkg/domain/model"
	"github.com/secmon-lab/surch/pkg/domain/types"
	"github.com/urfave/cli/v3"
)

// GitHubApp is a flag group to access repositories with installation token of
// GitHub App instead of user and password.
type GitHubApp struct {
	id         types.GitHubAppID
	installID  types.GitHubAppInstallID
	privateKey types.GitHubAppPrivateKey `masq:"secret"`
}

func (x *GitHubApp) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.Int64Flag{
			Name:        "github-app-id",
			Usage:       "GitHub App ID",
			Category:    "GitHub App",
			Destination: (*int64)(&x.id),
			Sources:     cli.EnvVars("SURCH_GITHUB_APP_ID"),
		},
		&cli.Int64Flag{
			Name:        "github-app-installation-id",
			Usage:       "GitHub App installation ID, looked up by account name if not set",
			Category:    "GitHub App",
			Destination: (*int64)(&x.installID),
			Sources:     cli.EnvVars("SURCH_GITHUB_APP_INSTALLATION_ID"),
		},
		&cli.StringFlag{
			Name:        "github-app-private-key",
			Usage:       "GitHub App private key (PEM or path to PEM file)",
			Category:    "GitHub App",
			Destination: (*string)(&x.privateKey),
			Sources:     cli.EnvVars("SURCH_GITHUB_APP_PRIVATE_KEY"),
		},
	}
}

// Apply copies flag values into cfg
func (x *GitHubApp) Apply(cfg *model.Config) {
	cfg.GitHubAppID = x.id
	cfg.GitHubAppInstallID = x.installID
	cfg.GitHubAppPrivateKey = x.privateKey
}

func (x GitHubApp) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int64("ID", int64(x.id)),
		slog.Int64("installID", int64(x.installID)),
		slog.Int("privateKey.len", len(x.privateKey)),
	)
}
