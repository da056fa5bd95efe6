package cli

import (
	"github.com/secmon-lab/surch/pkg/domain/model"
	"github.com/secmon-lab/surch/pkg/infra"
	"github.com/secmon-lab/surch/pkg/infra/ghapp"
)

// appClientOptions returns infra option to issue installation tokens of
// GitHub App when it is configured. No request is sent here; tokens are
// issued by the usecase after plugins are resolved.
func appClientOptions(cfg *model.Config) ([]infra.Option, error) {
	if !cfg.UseGitHubApp() {
		return nil, nil
	}

	pem, err := cfg.GitHubAppKey()
	if err != nil {
		return nil, err
	}

	client, err := ghapp.New(cfg.GitHubAppID, pem,
		ghapp.WithBaseURL(cfg.GitHubAPIURL),
		ghapp.WithInstallationID(cfg.GitHubAppInstallID),
	)
	if err != nil {
		return nil, err
	}

	return []infra.Option{infra.WithCredentialProvider(client)}, nil
}
