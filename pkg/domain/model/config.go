package model

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/surch/pkg/domain/types"
	"gopkg.in/yaml.v3"
)

const (
	DefaultPageSize     = 100
	MaxPageSize         = 100
	DefaultJobs         = 1
	MaxJobs             = 32
	DefaultClonedPath   = "~/.surch/repos"
	DefaultResultsDir   = "~/.surch/results"
	DefaultGitHubAPIURL = "https://api.github.com/"
)

// Config is a set of options given by config file or command line. A config
// file is used in place of command line options, they are never merged.
type Config struct {
	Organization     string               `yaml:"organization"`
	OrganizationFlag *bool                `yaml:"organization_flag"`
	RepoURL          string               `yaml:"repo_url"`
	GitUser          types.GitHubUser     `yaml:"git_user"`
	GitPassword      types.GitHubPassword `yaml:"git_password" masq:"secret"`
	SearchList       []string             `yaml:"search_list"`
	ReposToSkip      []string             `yaml:"repos_to_skip"`
	ReposToCheck     []string             `yaml:"repos_to_check"`
	Commits          []string             `yaml:"commits"`
	ClonedReposPath  string               `yaml:"cloned_repos_path"`
	ResultsDir       string               `yaml:"results_dir"`
	RemoveClonedDir  bool                 `yaml:"remove_cloned_dir"`
	PrintResult      bool                 `yaml:"print_result"`
	Verbose          bool                 `yaml:"verbose"`

	Jobs           int                  `yaml:"jobs"`
	PageSize       int                  `yaml:"page_size"`
	URLType        types.URLKey         `yaml:"url_type"`
	RepositoryType types.RepositoryType `yaml:"repository_type"`
	GitHubAPIURL   types.GitHubAPIURL   `yaml:"github_api_url"`
	RateLimit      float64              `yaml:"rate_limit"`

	GitHubAppID         types.GitHubAppID         `yaml:"github_app_id"`
	GitHubAppInstallID  types.GitHubAppInstallID  `yaml:"github_app_installation_id"`
	GitHubAppPrivateKey types.GitHubAppPrivateKey `yaml:"github_app_private_key" masq:"secret"`

	Source  []types.PluginID `yaml:"source"`
	Sink    []types.PluginID `yaml:"sink"`
	Plugins PluginSections   `yaml:"plugins"`
}

// LoadConfigFile reads YAML config file
func LoadConfigFile(path string) (*Config, error) {
	raw, err := os.ReadFile(filepath.Clean(ExpandHome(path)))
	if err != nil {
		return nil, goerr.Wrap(types.ErrConfig, "failed to read config file",
			goerr.V("path", path),
			goerr.V("error", err.Error()),
		)
	}

	cfg, err := ParseConfig(raw)
	if err != nil {
		return nil, goerr.Wrap(err, "invalid config file", goerr.V("path", path))
	}
	return cfg, nil
}

func ParseConfig(raw []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, goerr.Wrap(types.ErrConfig, "failed to parse config",
			goerr.V("error", err.Error()),
		)
	}
	return &cfg, nil
}

// AccountInput validates the config for account mode and builds usecase input.
// kind is used when organization_flag is not set in the config.
func (x *Config) AccountInput(kind types.AccountKind) (*SearchAccountInput, error) {
	if x.OrganizationFlag != nil {
		kind = types.AccountUser
		if *x.OrganizationFlag {
			kind = types.AccountOrganization
		}
	}

	input := &SearchAccountInput{
		Account: Account{
			Name: x.Organization,
			Kind: kind,
		},
		Skip:    x.ReposToSkip,
		Include: x.ReposToCheck,
		Jobs:    x.Jobs,
		Listing: ListOptions{
			PageSize:       x.PageSize,
			RepositoryType: x.RepositoryType,
			URLKey:         x.URLType,
		},
	}
	if x.GitUser != "" || x.GitPassword != "" {
		input.Account.Credentials = &Credentials{User: x.GitUser, Password: x.GitPassword}
	}

	if input.Jobs == 0 {
		input.Jobs = DefaultJobs
	}
	if input.Listing.PageSize == 0 {
		input.Listing.PageSize = DefaultPageSize
	}
	if input.Listing.RepositoryType == "" {
		input.Listing.RepositoryType = types.RepositoryPublic
	}
	if input.Listing.URLKey == "" {
		input.Listing.URLKey = types.URLKeyClone
	}

	if err := input.Account.Validate(); err != nil {
		return nil, err
	}
	if err := x.validateGitHubApp(); err != nil {
		return nil, err
	}
	if input.Jobs < 1 || input.Jobs > MaxJobs {
		return nil, goerr.Wrap(types.ErrConfig, "jobs is out of range", goerr.V("jobs", input.Jobs), goerr.V("max", MaxJobs))
	}
	if input.Listing.PageSize < 1 || input.Listing.PageSize > MaxPageSize {
		return nil, goerr.Wrap(types.ErrConfig, "page size is out of range", goerr.V("page_size", input.Listing.PageSize))
	}
	if !input.Listing.RepositoryType.Valid() {
		return nil, goerr.Wrap(types.ErrConfig, "invalid repository type", goerr.V("repository_type", input.Listing.RepositoryType))
	}
	if !input.Listing.URLKey.Valid() {
		return nil, goerr.Wrap(types.ErrConfig, "invalid url type", goerr.V("url_type", input.Listing.URLKey))
	}

	opts, err := x.searchOptions()
	if err != nil {
		return nil, err
	}
	input.SearchOptions = *opts

	return input, nil
}

// RepositoryInput validates the config for single repository mode
func (x *Config) RepositoryInput() (*SearchRepositoryInput, error) {
	if x.RepoURL == "" {
		return nil, goerr.Wrap(types.ErrConfig, "repository URL is required")
	}
	if RepoNameFromURL(x.RepoURL) == "" {
		return nil, goerr.Wrap(types.ErrConfig, "repository name can not be derived from URL", goerr.V("url", x.RepoURL))
	}

	input := &SearchRepositoryInput{
		URL:     x.RepoURL,
		Commits: x.Commits,
	}
	if x.GitUser != "" || x.GitPassword != "" {
		input.Credentials = &Credentials{User: x.GitUser, Password: x.GitPassword}
		if !input.Credentials.Available() {
			return nil, goerr.Wrap(types.ErrConfig, "both of git user and password are required for authentication")
		}
	}

	opts, err := x.searchOptions()
	if err != nil {
		return nil, err
	}
	input.SearchOptions = *opts

	return input, nil
}

func (x *Config) searchOptions() (*SearchOptions, error) {
	opts := &SearchOptions{
		SearchTerms: x.SearchList,
		CloneRoot:   ExpandHome(x.ClonedReposPath),
		ResultsDir:  ExpandHome(x.ResultsDir),
		Remove:      x.RemoveClonedDir,
		Verbose:     x.Verbose,
		Sources:     x.Source,
		Sinks:       x.Sink,
		Plugins:     x.Plugins,
	}
	if opts.CloneRoot == "" {
		opts.CloneRoot = ExpandHome(DefaultClonedPath)
	}
	if opts.ResultsDir == "" {
		opts.ResultsDir = ExpandHome(DefaultResultsDir)
	}

	if len(opts.SearchTerms) == 0 && len(opts.Sources) == 0 {
		return nil, goerr.Wrap(types.ErrConfig, "at least one search string or source plugin is required")
	}

	for _, id := range append(append([]types.PluginID{}, opts.Sources...), opts.Sinks...) {
		if id == "" {
			return nil, goerr.Wrap(types.ErrConfig, "empty plugin name")
		}
	}

	return opts, nil
}

// UseGitHubApp returns true if repositories are accessed with installation
// token of GitHub App instead of basic authentication.
func (x *Config) UseGitHubApp() bool {
	return x.GitHubAppID != 0
}

func (x *Config) validateGitHubApp() error {
	if !x.UseGitHubApp() {
		if x.GitHubAppInstallID != 0 || x.GitHubAppPrivateKey != "" {
			return goerr.Wrap(types.ErrConfig, "github_app_id is required for GitHub App authentication")
		}
		return nil
	}
	if x.GitHubAppPrivateKey == "" {
		return goerr.Wrap(types.ErrConfig, "GitHub App private key is required", goerr.V("app_id", x.GitHubAppID))
	}
	if x.GitUser != "" || x.GitPassword != "" {
		return goerr.Wrap(types.ErrConfig, "GitHub App and basic authentication can not be used together")
	}
	return nil
}

// GitHubAppKey returns PEM of the GitHub App private key. The configured value
// is either PEM itself or path to a PEM file.
func (x *Config) GitHubAppKey() (types.GitHubAppPrivateKey, error) {
	if strings.HasPrefix(strings.TrimSpace(string(x.GitHubAppPrivateKey)), "-----BEGIN") {
		return x.GitHubAppPrivateKey, nil
	}

	path := ExpandHome(string(x.GitHubAppPrivateKey))
	raw, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return "", goerr.Wrap(types.ErrConfig, "failed to read GitHub App private key file",
			goerr.V("path", path),
			goerr.V("error", err.Error()),
		)
	}
	return types.GitHubAppPrivateKey(raw), nil
}

// ExpandHome replaces leading "~" with home directory of current user
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
