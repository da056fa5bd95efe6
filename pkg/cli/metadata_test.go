package cli_test

import (
	"context"
	"testing"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/surch/pkg/cli"
	"github.com/secmon-lab/surch/pkg/utils/testutil"
)

func TestOriginURL(t *testing.T) {
	ctx := context.Background()

	t.Run("detect origin of repository", func(t *testing.T) {
		dir, _ := testutil.NewGitRepo(t, testutil.GitCommit{
			Message: "init",
			Files:   map[string]string{"README.md": "hello\n"},
		})
		repo := gt.R1(git.PlainOpen(dir)).NoError(t)
		gt.R1(repo.CreateRemote(&config.RemoteConfig{
			Name: "origin",
			URLs: []string{"git@github.com:secmon-lab/surch.git"},
		})).NoError(t)

		url := gt.R1(cli.OriginURL(ctx, dir)).NoError(t)
		gt.Equal(t, url, "git@github.com:secmon-lab/surch.git")
	})

	t.Run("no origin remote", func(t *testing.T) {
		dir, _ := testutil.NewGitRepo(t, testutil.GitCommit{
			Message: "init",
			Files:   map[string]string{"README.md": "hello\n"},
		})
		_, err := cli.OriginURL(ctx, dir)
		gt.Error(t, err)
	})

	t.Run("not a git repository", func(t *testing.T) {
		_, err := cli.OriginURL(ctx, t.TempDir())
		gt.Error(t, err)
	})
}
