package ghapi

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/cenkalti/backoff"
	"github.com/google/go-github/v53/github"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/surch/pkg/domain/interfaces"
	"github.com/secmon-lab/surch/pkg/domain/model"
	"github.com/secmon-lab/surch/pkg/domain/types"
	"github.com/secmon-lab/surch/pkg/utils/logging"
	"golang.org/x/time/rate"
)

// Client is a repository directory of GitHub REST API. It reads account
// metadata to know number of repositories and then fetches exactly required
// pages of the repository listing.
type Client struct {
	baseURL      *url.URL
	limiter      *rate.Limiter
	retryInitial time.Duration
	retryMax     time.Duration
}

var _ interfaces.Directory = (*Client)(nil)

type Option func(*Client) error

// WithBaseURL sets API endpoint, e.g. for GitHub Enterprise Server
func WithBaseURL(baseURL types.GitHubAPIURL) Option {
	return func(x *Client) error {
		if baseURL == "" {
			return nil
		}
		raw := string(baseURL)
		if !strings.HasSuffix(raw, "/") {
			raw += "/"
		}
		u, err := url.Parse(raw)
		if err != nil {
			return goerr.Wrap(types.ErrInvalidOption, "invalid GitHub API URL",
				goerr.V("url", baseURL),
				goerr.V("error", err.Error()),
			)
		}
		if u.Scheme == "" || u.Host == "" {
			return goerr.Wrap(types.ErrInvalidOption, "GitHub API URL must be absolute", goerr.V("url", baseURL))
		}
		x.baseURL = u
		return nil
	}
}

// WithRateLimit paces API requests to rps requests per second. Zero disables pacing.
func WithRateLimit(rps float64) Option {
	return func(x *Client) error {
		if rps < 0 {
			return goerr.Wrap(types.ErrInvalidOption, "rate limit must not be negative", goerr.V("rate_limit", rps))
		}
		if rps > 0 {
			x.limiter = rate.NewLimiter(rate.Limit(rps), 1)
		}
		return nil
	}
}

// WithRetry configures retry of transient failures (5xx and network errors)
func WithRetry(initialInterval, maxElapsedTime time.Duration) Option {
	return func(x *Client) error {
		x.retryInitial = initialInterval
		x.retryMax = maxElapsedTime
		return nil
	}
}

func New(options ...Option) (*Client, error) {
	base, err := url.Parse(model.DefaultGitHubAPIURL)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to parse default GitHub API URL")
	}

	client := &Client{
		baseURL:      base,
		retryInitial: time.Second,
		retryMax:     time.Minute,
	}
	for _, opt := range options {
		if err := opt(client); err != nil {
			return nil, err
		}
	}

	return client, nil
}

func (x *Client) buildGithubClient(cred *model.Credentials) *github.Client {
	var httpClient *http.Client
	if cred.Available() {
		tr := &github.BasicAuthTransport{
			Username: string(cred.User),
			Password: string(cred.Password),
		}
		httpClient = tr.Client()
	}

	client := github.NewClient(httpClient)
	client.BaseURL = x.baseURL
	return client
}

// ListRepositories implements interfaces.Directory.
func (x *Client) ListRepositories(ctx context.Context, account *model.Account, opts model.ListOptions) (model.RepositorySet, error) {
	if err := account.Validate(); err != nil {
		return nil, err
	}
	if opts.PageSize <= 0 {
		return nil, goerr.Wrap(types.ErrInvalidOption, "page size must be positive", goerr.V("page_size", opts.PageSize))
	}
	if opts.RepositoryType == "" {
		opts.RepositoryType = types.RepositoryPublic
	}
	if opts.URLKey == "" {
		opts.URLKey = types.URLKeyClone
	}

	logger := logging.From(ctx).With(slog.String("account", account.Name), slog.Any("kind", account.Kind))
	if !account.Credentials.Available() {
		logger.Warn("No credentials for GitHub API, requests are limited to 60 per hour")
	}

	client := x.buildGithubClient(account.Credentials)
	accountPath := fmt.Sprintf("%s/%s", account.Kind.APIPath(), url.PathEscape(account.Name))

	var meta map[string]any
	if err := x.get(ctx, client, accountPath, &meta); err != nil {
		return nil, goerr.Wrap(err, "failed to get account metadata", goerr.V("account", account.Name))
	}

	total, err := repositoryCount(meta, opts.RepositoryType)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read number of repositories", goerr.V("account", account.Name))
	}

	pages := (total + opts.PageSize - 1) / opts.PageSize
	logger.Info("Listing repositories",
		slog.Int("total", total),
		slog.Int("pages", pages),
		slog.Any("type", opts.RepositoryType),
	)

	var repos model.RepositorySet
	for page := 1; page <= pages; page++ {
		query := url.Values{}
		query.Set("type", string(opts.RepositoryType))
		query.Set("per_page", strconv.Itoa(opts.PageSize))
		query.Set("page", strconv.Itoa(page))

		var entries []map[string]any
		if err := x.get(ctx, client, accountPath+"/repos?"+query.Encode(), &entries); err != nil {
			return nil, goerr.Wrap(err, "failed to get repository listing page",
				goerr.V("account", account.Name),
				goerr.V("page", page),
			)
		}

		for _, entry := range entries {
			repo, err := toRepositoryRef(entry, opts.URLKey)
			if err != nil {
				return nil, goerr.Wrap(err, "inconsistent repository listing", goerr.V("page", page))
			}
			repos = append(repos, *repo)
		}

		logger.Debug("Fetched repository listing page", slog.Int("page", page), slog.Int("entries", len(entries)))
	}

	return repos.Dedupe(), nil
}

func (x *Client) get(ctx context.Context, client *github.Client, path string, v any) error {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = x.retryInitial
	b.MaxElapsedTime = x.retryMax

	operation := func() error {
		if x.limiter != nil {
			if err := x.limiter.Wait(ctx); err != nil {
				return backoff.Permanent(goerr.Wrap(err, "interrupted while waiting rate limiter"))
			}
		}

		req, err := client.NewRequest(http.MethodGet, path, nil)
		if err != nil {
			return backoff.Permanent(goerr.Wrap(err, "failed to build request", goerr.V("path", path)))
		}

		resp, err := client.Do(ctx, req, v)
		if err == nil {
			return nil
		}

		retryable, classified := classifyError(err, resp)
		if !retryable || ctx.Err() != nil {
			return backoff.Permanent(classified)
		}
		logging.From(ctx).Warn("Transient GitHub API error, will retry", slog.String("path", path), slog.Any("error", err))
		return classified
	}

	if err := backoff.Retry(operation, backoff.WithContext(b, ctx)); err != nil {
		return err
	}
	return nil
}

func classifyError(err error, resp *github.Response) (bool, error) {
	var rateErr *github.RateLimitError
	var abuseErr *github.AbuseRateLimitError
	if errors.As(err, &rateErr) || errors.As(err, &abuseErr) {
		return false, goerr.Wrap(types.ErrRateLimited, err.Error())
	}

	if resp == nil || resp.Response == nil {
		return true, goerr.Wrap(types.ErrDirectoryFetch, "GitHub API request failed", goerr.V("error", err.Error()))
	}

	status := resp.StatusCode
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		if resp.Header.Get("X-RateLimit-Remaining") == "0" {
			return false, goerr.Wrap(types.ErrRateLimited, "GitHub API quota exhausted", goerr.V("status", status))
		}
		return false, goerr.Wrap(types.ErrAuthRequired, err.Error(), goerr.V("status", status))
	case status >= 500:
		return true, goerr.Wrap(types.ErrDirectoryFetch, "GitHub API server error",
			goerr.V("status", status),
			goerr.V("error", err.Error()),
		)
	default:
		return false, goerr.Wrap(types.ErrDirectoryFetch, "GitHub API request failed",
			goerr.V("status", status),
			goerr.V("error", err.Error()),
		)
	}
}

// repositoryCount reads `{type}_repos` field of account metadata. Only
// public_repos and total_private_repos exist for most types, so the sum of
// them is used as upper bound when the type specific field is absent.
func repositoryCount(meta map[string]any, repoType types.RepositoryType) (int, error) {
	if n, ok := intField(meta, repoType.CountField()); ok {
		return n, nil
	}

	public, hasPublic := intField(meta, "public_repos")
	private, hasPrivate := intField(meta, "total_private_repos")
	if repoType == types.RepositoryPrivate && hasPrivate {
		return private, nil
	}
	if repoType != types.RepositoryPublic && repoType != types.RepositoryPrivate && (hasPublic || hasPrivate) {
		return public + private, nil
	}

	return 0, goerr.Wrap(types.ErrDirectoryFetch, "repository count field not found",
		goerr.V("field", repoType.CountField()),
	)
}

func intField(meta map[string]any, key string) (int, bool) {
	v, ok := meta[key].(float64)
	if !ok || v < 0 {
		return 0, false
	}
	return int(v), true
}

func toRepositoryRef(entry map[string]any, key types.URLKey) (*model.RepositoryRef, error) {
	name, _ := entry["name"].(string)
	if name == "" {
		return nil, goerr.Wrap(types.ErrDirectoryFetch, "repository entry has no name")
	}
	cloneURL, _ := entry[string(key)].(string)
	if cloneURL == "" {
		return nil, goerr.Wrap(types.ErrDirectoryFetch, "repository entry has no URL field",
			goerr.V("repository", name),
			goerr.V("url_type", key),
		)
	}
	return &model.RepositoryRef{Name: name, URL: cloneURL}, nil
}
