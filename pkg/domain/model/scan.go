package model

import (
	"log/slog"
	"slices"
	"time"

	"github.com/secmon-lab/surch/pkg/domain/types"
)

// ScanRequest is an unit of work for a repository scanner. It is created for
// each repository by dispatcher.
type ScanRequest struct {
	Repository  RepositoryRef
	SearchTerms SearchTermSet
	CloneDir    string
	ResultsPath string
	Consolidate bool
	Commits     []string
	Credentials *Credentials
	Verbose     bool
	Remove      bool
}

// ScanReport is statistics of a repository scan
type ScanReport struct {
	Commits int
	Blobs   int
	Matches int
}

// Match is a record of results artifact. One line of the artifact is one JSON
// encoded Match.
type Match struct {
	RunID       types.RunID     `bigquery:"run_id" json:"run_id"`
	Repository  string          `bigquery:"repository" json:"repository"`
	URL         string          `bigquery:"url" json:"url"`
	Commit      types.CommitSHA `bigquery:"commit" json:"commit"`
	Author      string          `bigquery:"author" json:"author"`
	Email       string          `bigquery:"email" json:"email"`
	CommittedAt time.Time       `bigquery:"committed_at" json:"committed_at"`
	Path        string          `bigquery:"path" json:"path"`
	Line        int             `bigquery:"line" json:"line"`
	SearchTerm  string          `bigquery:"search_term" json:"search_term"`
}

// ScanFailure is a repository that could not be scanned in a run
type ScanFailure struct {
	Repository string
	Error      string
}

// ScanSummary is the outcome of a run
type ScanSummary struct {
	RunID       types.RunID
	Total       int
	Scanned     int
	Failures    []ScanFailure
	Matches     int
	ResultsPath string

	// SinkFailures is number of sink plugins that failed to deliver
	SinkFailures int
}

func (x *ScanSummary) Failed() int {
	return len(x.Failures)
}

func (x *ScanSummary) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("run_id", x.RunID.String()),
		slog.Int("total", x.Total),
		slog.Int("scanned", x.Scanned),
		slog.Int("failed", x.Failed()),
		slog.Int("matches", x.Matches),
		slog.String("results", x.ResultsPath),
		slog.Int("sink_failures", x.SinkFailures),
	)
}

// MatchDigest is a summary of match records to be sent outside. It does not
// contain matched search terms themselves because they are secrets.
type MatchDigest struct {
	Repositories []string
	SearchTerms  int
	Matches      int
}

func Digest(records []*Match) *MatchDigest {
	repos := map[string]struct{}{}
	terms := map[string]struct{}{}
	for _, r := range records {
		repos[r.Repository] = struct{}{}
		terms[r.SearchTerm] = struct{}{}
	}

	digest := &MatchDigest{
		Repositories: make([]string, 0, len(repos)),
		SearchTerms:  len(terms),
		Matches:      len(records),
	}
	for repo := range repos {
		digest.Repositories = append(digest.Repositories, repo)
	}
	slices.Sort(digest.Repositories)

	return digest
}
