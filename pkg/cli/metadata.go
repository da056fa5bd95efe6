package cli

import (
	"context"
	"log/slog"

	"github.com/go-git/go-git/v5"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/surch/pkg/domain/model"
	"github.com/secmon-lab/surch/pkg/utils/logging"
)

// OriginURL detects URL of the `origin` remote of git repository in dir. It
// is used when repository URL is not given to repo command.
func OriginURL(ctx context.Context, dir string) (string, error) {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return "", goerr.Wrap(err, "failed to open git repository", goerr.V("dir", dir))
	}

	remote, err := repo.Remote("origin")
	if err != nil {
		return "", goerr.Wrap(err, "failed to get remote origin")
	}

	if len(remote.Config().URLs) == 0 {
		return "", goerr.New("no remote URL found")
	}

	url := remote.Config().URLs[0]
	if model.RepoNameFromURL(url) == "" {
		return "", goerr.New("failed to parse repository name from git remote URL", goerr.V("url", url))
	}

	logging.From(ctx).Debug("Detected origin URL", slog.String("url", url))
	return url, nil
}
