package gitscan

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"
	"github.com/go-git/go-git/v5/plumbing/transport"
	githttp "github.com/go-git/go-git/v5/plumbing/transport/http"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/surch/pkg/domain/interfaces"
	"github.com/secmon-lab/surch/pkg/domain/model"
	"github.com/secmon-lab/surch/pkg/domain/types"
	"github.com/secmon-lab/surch/pkg/utils/logging"
	"github.com/secmon-lab/surch/pkg/utils/safe"
)

// Scanner searches git history of a repository with go-git. Repositories are
// cloned as bare repositories because only objects are read.
type Scanner struct{}

var _ interfaces.RepositoryScanner = (*Scanner)(nil)

func New() *Scanner {
	return &Scanner{}
}

// Scan implements interfaces.RepositoryScanner.
func (x *Scanner) Scan(ctx context.Context, req *model.ScanRequest, out interfaces.ResultWriter) (*model.ScanReport, error) {
	logger := logging.From(ctx).With(slog.String("repository", req.Repository.Name))

	if req.Remove {
		defer safe.RemoveAll(req.CloneDir)
	}

	repo, err := openOrClone(ctx, req)
	if err != nil {
		return nil, goerr.Wrap(types.ErrRepositoryScan, "failed to prepare repository",
			goerr.V("repository", req.Repository.Name),
			goerr.V("url", req.Repository.URL),
			goerr.V("error", err.Error()),
		)
	}

	commits, err := targetCommits(repo, req.Commits)
	if err != nil {
		return nil, goerr.Wrap(types.ErrRepositoryScan, "failed to resolve commits",
			goerr.V("repository", req.Repository.Name),
			goerr.V("error", err.Error()),
		)
	}
	defer commits.Close()

	runID, _ := logging.CtxRunID(ctx)
	terms := req.SearchTerms.Slice()
	report := &model.ScanReport{}
	scanned := map[blobKey]struct{}{}

	err = commits.ForEach(func(commit *object.Commit) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		report.Commits++

		files, err := commit.Files()
		if err != nil {
			return goerr.Wrap(err, "failed to read tree", goerr.V("commit", commit.Hash.String()))
		}

		return files.ForEach(func(file *object.File) error {
			key := blobKey{hash: file.Hash, path: file.Name}
			if _, ok := scanned[key]; ok {
				return nil
			}
			scanned[key] = struct{}{}

			if isBin, err := file.IsBinary(); err != nil || isBin {
				return nil
			}
			report.Blobs++

			lines, err := file.Lines()
			if err != nil {
				return goerr.Wrap(err, "failed to read blob", goerr.V("path", file.Name))
			}

			for i, line := range lines {
				for _, term := range terms {
					if !strings.Contains(line, term) {
						continue
					}

					match := &model.Match{
						RunID:       runID,
						Repository:  req.Repository.Name,
						URL:         req.Repository.URL,
						Commit:      types.CommitSHA(commit.Hash.String()),
						Author:      commit.Author.Name,
						Email:       commit.Author.Email,
						CommittedAt: commit.Author.When.UTC(),
						Path:        file.Name,
						Line:        i + 1,
						SearchTerm:  term,
					}
					if err := out.Append(ctx, match); err != nil {
						return err
					}
					report.Matches++

					if req.Verbose {
						logger.Info("Found search term",
							slog.String("term", term),
							slog.String("path", file.Name),
							slog.Int("line", i+1),
							slog.String("commit", commit.Hash.String()),
						)
					}
				}
			}
			return nil
		})
	})
	if err != nil {
		return nil, goerr.Wrap(types.ErrRepositoryScan, "failed to scan history",
			goerr.V("repository", req.Repository.Name),
			goerr.V("error", err.Error()),
		)
	}

	logger.Debug("Scanned repository",
		slog.Int("commits", report.Commits),
		slog.Int("blobs", report.Blobs),
		slog.Int("matches", report.Matches),
	)

	return report, nil
}

// blobKey identifies a file version. The same content at another path is
// another leak location and is scanned again.
type blobKey struct {
	hash plumbing.Hash
	path string
}

func openOrClone(ctx context.Context, req *model.ScanRequest) (*git.Repository, error) {
	auth := authMethod(req.Repository.URL, req.Credentials)

	if _, err := os.Stat(req.CloneDir); err == nil {
		repo, err := git.PlainOpen(req.CloneDir)
		if err == nil {
			logging.From(ctx).Debug("Fetching existing clone", slog.String("dir", req.CloneDir))
			err := repo.FetchContext(ctx, &git.FetchOptions{
				Auth:  auth,
				Tags:  git.AllTags,
				Force: true,
			})
			if err != nil && !errors.Is(err, git.NoErrAlreadyUpToDate) && !errors.Is(err, git.ErrRemoteNotFound) {
				return nil, goerr.Wrap(err, "failed to fetch repository", goerr.V("dir", req.CloneDir))
			}
			return repo, nil
		}

		// Not a repository, e.g. partially cloned. Clone again from scratch.
		safe.RemoveAll(req.CloneDir)
	}

	if err := safe.MkdirAll(filepath.Dir(req.CloneDir)); err != nil {
		return nil, err
	}

	logging.From(ctx).Debug("Cloning repository", slog.String("url", req.Repository.URL), slog.String("dir", req.CloneDir))
	repo, err := git.PlainCloneContext(ctx, req.CloneDir, true, &git.CloneOptions{
		URL:  req.Repository.URL,
		Auth: auth,
		Tags: git.AllTags,
	})
	if err != nil {
		safe.RemoveAll(req.CloneDir)
		return nil, goerr.Wrap(err, "failed to clone repository", goerr.V("url", req.Repository.URL))
	}

	return repo, nil
}

func authMethod(url string, cred *model.Credentials) transport.AuthMethod {
	if !cred.Available() {
		return nil
	}
	if !strings.HasPrefix(url, "https://") && !strings.HasPrefix(url, "http://") {
		return nil
	}
	return &githttp.BasicAuth{
		Username: string(cred.User),
		Password: string(cred.Password),
	}
}

func targetCommits(repo *git.Repository, commits []string) (object.CommitIter, error) {
	if len(commits) == 0 {
		iter, err := repo.Log(&git.LogOptions{All: true})
		if err != nil {
			return nil, goerr.Wrap(err, "failed to walk history")
		}
		return iter, nil
	}

	objects := make([]*object.Commit, 0, len(commits))
	for _, rev := range commits {
		hash, err := repo.ResolveRevision(plumbing.Revision(rev))
		if err != nil {
			return nil, goerr.Wrap(err, "commit not found", goerr.V("commit", rev))
		}
		commit, err := repo.CommitObject(*hash)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to read commit", goerr.V("commit", rev))
		}
		objects = append(objects, commit)
	}

	return &commitSlice{commits: objects}, nil
}

// commitSlice is object.CommitIter over explicitly given commits
type commitSlice struct {
	commits []*object.Commit
	pos     int
}

func (x *commitSlice) Next() (*object.Commit, error) {
	if x.pos >= len(x.commits) {
		return nil, io.EOF
	}
	c := x.commits[x.pos]
	x.pos++
	return c, nil
}

func (x *commitSlice) ForEach(cb func(*object.Commit) error) error {
	for {
		c, err := x.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err := cb(c); err != nil {
			if errors.Is(err, storer.ErrStop) {
				return nil
			}
			return err
		}
	}
}

func (x *commitSlice) Close() {}
