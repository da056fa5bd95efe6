package types

import "github.com/m-mizutani/goerr/v2"

var (
	// ErrInvalidOption is returned for a bad flag or option value
	ErrInvalidOption = goerr.New("invalid option")

	// ErrConfig is returned when the config file is missing, broken or
	// contradictory. It is always fatal and raised before any network access.
	ErrConfig = goerr.New("configuration error")

	// ErrDirectoryFetch is returned when the repository listing of an account
	// can not be retrieved completely.
	ErrDirectoryFetch = goerr.New("failed to fetch repository directory")
	ErrRateLimited    = goerr.Wrap(ErrDirectoryFetch, "GitHub API rate limit exceeded")
	ErrAuthRequired   = goerr.Wrap(ErrDirectoryFetch, "GitHub API requires authentication")

	ErrPluginNotFound  = goerr.New("plugin not found")
	ErrPluginExecution = goerr.New("plugin execution failed")

	ErrRepositoryScan = goerr.New("repository scan failed")
)
