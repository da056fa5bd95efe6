package config

import (
	"github.com/secmon-lab/surch/pkg/domain/model"
	"github.com/secmon-lab/surch/pkg/domain/types"
	"github.com/urfave/cli/v3"
)

// GitHub is a flag group of account mode to list repositories via GitHub API
type GitHub struct {
	user      string
	password  string
	skip      []string
	repos     []string
	jobs      int
	pageSize  int
	urlType   string
	repoType  string
	apiURL    string
	rateLimit float64
}

func (x *GitHub) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "user",
			Aliases:     []string{"U"},
			Usage:       "GitHub user name for basic authentication",
			Category:    "GitHub",
			Sources:     cli.EnvVars("SURCH_GITHUB_USER"),
			Destination: &x.user,
		},
		&cli.StringFlag{
			Name:        "password",
			Aliases:     []string{"P"},
			Usage:       "GitHub password or personal access token",
			Category:    "GitHub",
			Sources:     cli.EnvVars("SURCH_GITHUB_PASSWORD"),
			Destination: &x.password,
		},
		&cli.StringSliceFlag{
			Name:        "skip",
			Usage:       "Repository name to skip (repeatable)",
			Category:    "GitHub",
			Destination: &x.skip,
		},
		&cli.StringSliceFlag{
			Name:        "repos",
			Usage:       "Repository name to scan, other repositories are ignored (repeatable)",
			Category:    "GitHub",
			Destination: &x.repos,
		},
		&cli.IntFlag{
			Name:        "jobs",
			Aliases:     []string{"j"},
			Usage:       "Number of concurrent repository scans",
			Category:    "GitHub",
			Sources:     cli.EnvVars("SURCH_JOBS"),
			Value:       model.DefaultJobs,
			Destination: &x.jobs,
		},
		&cli.IntFlag{
			Name:        "page-size",
			Usage:       "Page size of repository listing",
			Category:    "GitHub",
			Value:       model.DefaultPageSize,
			Destination: &x.pageSize,
		},
		&cli.StringFlag{
			Name:        "url-type",
			Usage:       "URL field of repository [clone_url|ssh_url|git_url|svn_url|html_url]",
			Category:    "GitHub",
			Value:       string(types.URLKeyClone),
			Destination: &x.urlType,
		},
		&cli.StringFlag{
			Name:        "repository-type",
			Usage:       "Repository type [public|private|all|owner|member|sources|forks]",
			Category:    "GitHub",
			Value:       string(types.RepositoryPublic),
			Destination: &x.repoType,
		},
		&cli.StringFlag{
			Name:        "github-api-url",
			Usage:       "GitHub API base URL, e.g. for GitHub Enterprise",
			Category:    "GitHub",
			Sources:     cli.EnvVars("SURCH_GITHUB_API_URL"),
			Value:       model.DefaultGitHubAPIURL,
			Destination: &x.apiURL,
		},
		&cli.FloatFlag{
			Name:        "rate-limit",
			Usage:       "Max GitHub API requests per second (0 means unlimited)",
			Category:    "GitHub",
			Sources:     cli.EnvVars("SURCH_RATE_LIMIT"),
			Destination: &x.rateLimit,
		},
	}
}

// Apply copies flag values into cfg
func (x *GitHub) Apply(cfg *model.Config) {
	cfg.GitUser = types.GitHubUser(x.user)
	cfg.GitPassword = types.GitHubPassword(x.password)
	cfg.ReposToSkip = x.skip
	cfg.ReposToCheck = x.repos
	cfg.Jobs = x.jobs
	cfg.PageSize = x.pageSize
	cfg.URLType = types.URLKey(x.urlType)
	cfg.RepositoryType = types.RepositoryType(x.repoType)
	cfg.GitHubAPIURL = types.GitHubAPIURL(x.apiURL)
	cfg.RateLimit = x.rateLimit
}
