package interfaces

//go:generate moq -out ../mock/infra.go -pkg mock . Directory RepositoryScanner SearchTermSource ResultSink BigQuery FindingRepository CredentialProvider

import (
	"context"

	"cloud.google.com/go/bigquery"

	"github.com/secmon-lab/surch/pkg/domain/model"
)

// Directory lists repositories of a GitHub account
type Directory interface {
	ListRepositories(ctx context.Context, account *model.Account, opts model.ListOptions) (model.RepositorySet, error)
}

// RepositoryScanner searches history of a repository for search terms and
// writes every match to out. A returned error means the repository could not
// be scanned, which is distinguishable from zero matches.
type RepositoryScanner interface {
	Scan(ctx context.Context, req *model.ScanRequest, out ResultWriter) (*model.ScanReport, error)
}

// ResultWriter appends match records to a results artifact. It must be safe
// for concurrent use.
type ResultWriter interface {
	Append(ctx context.Context, match *model.Match) error
	Path() string
}

// SearchTermSource is a source plugin instance
type SearchTermSource interface {
	SearchTerms(ctx context.Context) ([]string, error)
}

// ResultSink is a sink plugin instance. Notify is called once per run with
// the finalized artifact path.
type ResultSink interface {
	Notify(ctx context.Context, artifactPath string) error
}

type BigQuery interface {
	Insert(ctx context.Context, schema bigquery.Schema, rows []any) error

	GetMetadata(ctx context.Context) (*bigquery.TableMetadata, error)
	UpdateTable(ctx context.Context, md bigquery.TableMetadataToUpdate, eTag string) error
	CreateTable(ctx context.Context, md *bigquery.TableMetadata) error
}

// FindingRepository stores findings per repository across runs
type FindingRepository interface {
	GetFinding(ctx context.Context, repository, id string) (*model.Finding, error)
	ListFindings(ctx context.Context, repository string) ([]*model.Finding, error)
	PutFindings(ctx context.Context, repository string, findings []*model.Finding) error
}

// CredentialProvider issues credentials of an account, used both for
// repository listing and cloning.
type CredentialProvider interface {
	AccountCredentials(ctx context.Context, account *model.Account) (*model.Credentials, error)
}
