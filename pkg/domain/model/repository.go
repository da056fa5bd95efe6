package model

import (
	"path"
	"slices"
	"strings"
)

// RepositoryRef is an entry of repository directory of an account
type RepositoryRef struct {
	Name string
	URL  string
}

// RepositorySet is an ordered list of repositories. Order is the directory
// listing order and is kept by all operations.
type RepositorySet []RepositoryRef

// Dedupe removes entries that have the same name as a former entry
func (x RepositorySet) Dedupe() RepositorySet {
	seen := make(map[string]bool, len(x))
	result := make(RepositorySet, 0, len(x))
	for _, repo := range x {
		if seen[repo.Name] {
			continue
		}
		seen[repo.Name] = true
		result = append(result, repo)
	}
	return result
}

// Select reduces the set to repositories to be scanned. If include is not
// empty, only repositories named in include are returned and skip is ignored.
// Otherwise repositories named in skip are removed. Names are matched exactly
// and unknown names are ignored.
func (x RepositorySet) Select(skip, include []string) RepositorySet {
	result := make(RepositorySet, 0, len(x))

	if len(include) > 0 {
		for _, repo := range x {
			if slices.Contains(include, repo.Name) {
				result = append(result, repo)
			}
		}
		return result
	}

	for _, repo := range x {
		if !slices.Contains(skip, repo.Name) {
			result = append(result, repo)
		}
	}
	return result
}

func (x RepositorySet) Names() []string {
	names := make([]string, len(x))
	for i, repo := range x {
		names[i] = repo.Name
	}
	return names
}

// RepoNameFromURL extracts repository name from clone URL, such as
// https://github.com/acme/api.git or git@github.com:acme/api.git
func RepoNameFromURL(url string) string {
	url = strings.TrimSuffix(strings.TrimRight(url, "/"), ".git")
	if idx := strings.LastIndex(url, ":"); idx >= 0 && !strings.Contains(url[idx:], "/") {
		url = url[idx+1:]
	}
	name := path.Base(url)
	if name == "." || name == "/" {
		return ""
	}
	return name
}
