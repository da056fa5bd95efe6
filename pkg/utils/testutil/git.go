package testutil

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/m-mizutani/gt"
)

// GitCommit is a commit to be created by NewGitRepo. Files are written
// (overwritten) in the work tree before committing.
type GitCommit struct {
	Message string
	Author  string
	Email   string
	Files   map[string]string
}

// NewGitRepo creates a local git repository in a temporary directory and
// returns its path and commit hashes in creation order. The path can be used
// as clone URL.
func NewGitRepo(t *testing.T, commits ...GitCommit) (string, []string) {
	t.Helper()

	dir := t.TempDir()
	repo := gt.R1(git.PlainInit(dir, false)).NoError(t)
	wt := gt.R1(repo.Worktree()).NoError(t)

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	var hashes []string
	for i, c := range commits {
		for name, content := range c.Files {
			path := filepath.Join(dir, name)
			gt.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
			gt.NoError(t, os.WriteFile(path, []byte(content), 0o600))
			gt.R1(wt.Add(name)).NoError(t)
		}

		author, email := c.Author, c.Email
		if author == "" {
			author, email = "blue", "blue@example.com"
		}
		hash := gt.R1(wt.Commit(c.Message, &git.CommitOptions{
			Author: &object.Signature{
				Name:  author,
				Email: email,
				When:  base.Add(time.Duration(i) * time.Hour),
			},
		})).NoError(t)
		hashes = append(hashes, hash.String())
	}

	return dir, hashes
}
