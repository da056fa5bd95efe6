package ghapi_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/surch/pkg/domain/model"
	"github.com/secmon-lab/surch/pkg/domain/types"
	"github.com/secmon-lab/surch/pkg/infra/ghapi"
	"gopkg.in/h2non/gock.v1"
)

func TestMain(m *testing.M) {
	gock.DisableNetworking()
	os.Exit(m.Run())
}

func repoPage(owner string, start, count int) []map[string]any {
	page := make([]map[string]any, count)
	for i := range count {
		name := fmt.Sprintf("repo%d", start+i)
		page[i] = map[string]any{
			"name":      name,
			"full_name": owner + "/" + name,
			"clone_url": fmt.Sprintf("https://github.com/%s/%s.git", owner, name),
			"ssh_url":   fmt.Sprintf("git@github.com:%s/%s.git", owner, name),
		}
	}
	return page
}

func newClient(t *testing.T, opts ...ghapi.Option) *ghapi.Client {
	opts = append([]ghapi.Option{ghapi.WithRetry(time.Millisecond, 50*time.Millisecond)}, opts...)
	return gt.R1(ghapi.New(opts...)).NoError(t)
}

var defaultListing = model.ListOptions{
	PageSize:       100,
	RepositoryType: types.RepositoryPublic,
	URLKey:         types.URLKeyClone,
}

func TestListRepositoriesPagination(t *testing.T) {
	testCases := map[string]struct {
		total    int
		pageSize int
		pages    int
	}{
		"exact one page":      {total: 100, pageSize: 100, pages: 1},
		"two pages":           {total: 150, pageSize: 100, pages: 2},
		"small pages":         {total: 7, pageSize: 3, pages: 3},
		"no repository":       {total: 0, pageSize: 100, pages: 0},
		"single entry":        {total: 1, pageSize: 100, pages: 1},
		"exact multiple page": {total: 200, pageSize: 50, pages: 4},
	}

	for title, tc := range testCases {
		t.Run(title, func(t *testing.T) {
			t.Cleanup(gock.Off)

			gock.New("https://api.github.com").
				Get("/orgs/acme").
				Reply(200).
				JSON(map[string]any{"login": "acme", "public_repos": tc.total})

			for page := 1; page <= tc.pages; page++ {
				count := min(tc.pageSize, tc.total-(page-1)*tc.pageSize)
				gock.New("https://api.github.com").
					Get("/orgs/acme/repos").
					MatchParam("type", "public").
					MatchParam("per_page", fmt.Sprintf("%d", tc.pageSize)).
					MatchParam("page", fmt.Sprintf("%d", page)).
					Reply(200).
					JSON(repoPage("acme", (page-1)*tc.pageSize, count))
			}

			client := newClient(t)
			account := &model.Account{Name: "acme", Kind: types.AccountOrganization}
			opts := defaultListing
			opts.PageSize = tc.pageSize

			repos := gt.R1(client.ListRepositories(context.Background(), account, opts)).NoError(t)
			gt.A(t, repos).Length(tc.total)
			gt.True(t, gock.IsDone())
		})
	}
}

func TestListRepositoriesUserAccount(t *testing.T) {
	t.Cleanup(gock.Off)

	gock.New("https://api.github.com").
		Get("/users/blue").
		Reply(200).
		JSON(map[string]any{"login": "blue", "public_repos": 2})
	gock.New("https://api.github.com").
		Get("/users/blue/repos").
		MatchParam("page", "1").
		Reply(200).
		JSON(repoPage("blue", 0, 2))

	client := newClient(t)
	account := &model.Account{Name: "blue", Kind: types.AccountUser}
	opts := defaultListing
	opts.URLKey = types.URLKeySSH

	repos := gt.R1(client.ListRepositories(context.Background(), account, opts)).NoError(t)
	gt.A(t, repos).Length(2)
	gt.V(t, repos[0]).Equal(model.RepositoryRef{Name: "repo0", URL: "git@github.com:blue/repo0.git"})
	gt.V(t, repos[1].Name).Equal("repo1")
}

func TestListRepositoriesDeduplicate(t *testing.T) {
	t.Cleanup(gock.Off)

	gock.New("https://api.github.com").
		Get("/orgs/acme").
		Reply(200).
		JSON(map[string]any{"public_repos": 4})
	gock.New("https://api.github.com").
		Get("/orgs/acme/repos").
		MatchParam("page", "1").
		Reply(200).
		JSON(repoPage("acme", 0, 2))
	// listing shifted while paging, repo1 appears again
	gock.New("https://api.github.com").
		Get("/orgs/acme/repos").
		MatchParam("page", "2").
		Reply(200).
		JSON(repoPage("acme", 1, 2))

	client := newClient(t)
	account := &model.Account{Name: "acme", Kind: types.AccountOrganization}
	opts := defaultListing
	opts.PageSize = 2

	repos := gt.R1(client.ListRepositories(context.Background(), account, opts)).NoError(t)
	gt.V(t, repos.Names()).Equal([]string{"repo0", "repo1", "repo2"})
}

func TestListRepositoriesBasicAuth(t *testing.T) {
	t.Cleanup(gock.Off)

	gock.New("https://api.github.com").
		Get("/orgs/acme").
		MatchHeader("Authorization", "^Basic ").
		Reply(200).
		JSON(map[string]any{"private_repos": 1})
	gock.New("https://api.github.com").
		Get("/orgs/acme/repos").
		MatchHeader("Authorization", "^Basic ").
		MatchParam("type", "private").
		Reply(200).
		JSON(repoPage("acme", 0, 1))

	client := newClient(t)
	account := &model.Account{
		Name: "acme",
		Kind: types.AccountOrganization,
		Credentials: &model.Credentials{
			User:     "bot",
			Password: "ghp_xxxxxxxx",
		},
	}
	opts := defaultListing
	opts.RepositoryType = types.RepositoryPrivate

	repos := gt.R1(client.ListRepositories(context.Background(), account, opts)).NoError(t)
	gt.A(t, repos).Length(1)
	gt.True(t, gock.IsDone())
}

func TestListRepositoriesEnterprise(t *testing.T) {
	t.Cleanup(gock.Off)

	gock.New("https://ghe.example.com").
		Get("/api/v3/orgs/acme").
		Reply(200).
		JSON(map[string]any{"public_repos": 1})
	gock.New("https://ghe.example.com").
		Get("/api/v3/orgs/acme/repos").
		Reply(200).
		JSON(repoPage("acme", 0, 1))

	client := newClient(t, ghapi.WithBaseURL("https://ghe.example.com/api/v3"))
	account := &model.Account{Name: "acme", Kind: types.AccountOrganization}

	repos := gt.R1(client.ListRepositories(context.Background(), account, defaultListing)).NoError(t)
	gt.A(t, repos).Length(1)
}

func TestListRepositoriesErrors(t *testing.T) {
	account := &model.Account{Name: "acme", Kind: types.AccountOrganization}

	t.Run("rate limited", func(t *testing.T) {
		t.Cleanup(gock.Off)
		gock.New("https://api.github.com").
			Get("/orgs/acme").
			Reply(403).
			SetHeader("X-RateLimit-Limit", "60").
			SetHeader("X-RateLimit-Remaining", "0").
			SetHeader("X-RateLimit-Reset", fmt.Sprintf("%d", time.Now().Add(time.Hour).Unix())).
			JSON(map[string]any{"message": "API rate limit exceeded"})

		_, err := newClient(t).ListRepositories(context.Background(), account, defaultListing)
		gt.Error(t, err)
		gt.True(t, errors.Is(err, types.ErrRateLimited))
		gt.True(t, errors.Is(err, types.ErrDirectoryFetch))
	})

	t.Run("bad credentials", func(t *testing.T) {
		t.Cleanup(gock.Off)
		gock.New("https://api.github.com").
			Get("/orgs/acme").
			Reply(401).
			JSON(map[string]any{"message": "Bad credentials"})

		_, err := newClient(t).ListRepositories(context.Background(), account, defaultListing)
		gt.True(t, errors.Is(err, types.ErrAuthRequired))
		gt.True(t, errors.Is(err, types.ErrDirectoryFetch))
		gt.False(t, errors.Is(err, types.ErrRateLimited))
	})

	t.Run("account not found", func(t *testing.T) {
		t.Cleanup(gock.Off)
		gock.New("https://api.github.com").
			Get("/orgs/acme").
			Reply(404).
			JSON(map[string]any{"message": "Not Found"})

		_, err := newClient(t).ListRepositories(context.Background(), account, defaultListing)
		gt.True(t, errors.Is(err, types.ErrDirectoryFetch))
	})

	t.Run("page failure is not partial", func(t *testing.T) {
		t.Cleanup(gock.Off)
		gock.New("https://api.github.com").
			Get("/orgs/acme").
			Reply(200).
			JSON(map[string]any{"public_repos": 3})
		gock.New("https://api.github.com").
			Get("/orgs/acme/repos").
			MatchParam("page", "1").
			Reply(200).
			JSON(repoPage("acme", 0, 2))
		gock.New("https://api.github.com").
			Get("/orgs/acme/repos").
			MatchParam("page", "2").
			Reply(404).
			JSON(map[string]any{"message": "Not Found"})

		opts := defaultListing
		opts.PageSize = 2
		repos, err := newClient(t).ListRepositories(context.Background(), account, opts)
		gt.True(t, errors.Is(err, types.ErrDirectoryFetch))
		gt.A(t, repos).Length(0)
	})

	t.Run("entry without url key", func(t *testing.T) {
		t.Cleanup(gock.Off)
		gock.New("https://api.github.com").
			Get("/orgs/acme").
			Reply(200).
			JSON(map[string]any{"public_repos": 1})
		gock.New("https://api.github.com").
			Get("/orgs/acme/repos").
			Reply(200).
			JSON([]map[string]any{{"name": "api"}})

		_, err := newClient(t).ListRepositories(context.Background(), account, defaultListing)
		gt.True(t, errors.Is(err, types.ErrDirectoryFetch))
	})

	t.Run("count field is missing", func(t *testing.T) {
		t.Cleanup(gock.Off)
		gock.New("https://api.github.com").
			Get("/orgs/acme").
			Reply(200).
			JSON(map[string]any{"login": "acme"})

		_, err := newClient(t).ListRepositories(context.Background(), account, defaultListing)
		gt.True(t, errors.Is(err, types.ErrDirectoryFetch))
	})
}

func TestListRepositoriesRetry(t *testing.T) {
	t.Cleanup(gock.Off)

	gock.New("https://api.github.com").
		Get("/orgs/acme").
		Reply(502)
	gock.New("https://api.github.com").
		Get("/orgs/acme").
		Reply(200).
		JSON(map[string]any{"public_repos": 1})
	gock.New("https://api.github.com").
		Get("/orgs/acme/repos").
		Reply(200).
		JSON(repoPage("acme", 0, 1))

	client := newClient(t, ghapi.WithRetry(time.Millisecond, time.Second))
	account := &model.Account{Name: "acme", Kind: types.AccountOrganization}

	repos := gt.R1(client.ListRepositories(context.Background(), account, defaultListing)).NoError(t)
	gt.A(t, repos).Length(1)
	gt.True(t, gock.IsDone())
}

func TestNew(t *testing.T) {
	t.Run("invalid base URL", func(t *testing.T) {
		_, err := ghapi.New(ghapi.WithBaseURL("not a url"))
		gt.True(t, errors.Is(err, types.ErrInvalidOption))
	})

	t.Run("negative rate limit", func(t *testing.T) {
		_, err := ghapi.New(ghapi.WithRateLimit(-1))
		gt.True(t, errors.Is(err, types.ErrInvalidOption))
	})

	t.Run("rate limit", func(t *testing.T) {
		gt.R1(ghapi.New(ghapi.WithRateLimit(10))).NoError(t)
	})
}
