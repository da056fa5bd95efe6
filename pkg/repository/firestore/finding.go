package firestore

import (
	"context"
	"strings"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/surch/pkg/domain/model"
	"github.com/secmon-lab/surch/pkg/repository"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	collectionFinding = "finding"
	batchSize         = 500
)

type findingRepository struct {
	client     *firestore.Client
	collection string
}

// ToFirestoreID validates repository name as a Firestore document ID.
// GitHub repository names never contain "/".
func ToFirestoreID(repo string) (string, error) {
	if repo == "" || repo == "." || repo == ".." {
		return "", goerr.Wrap(repository.ErrInvalidInput, "invalid repository name", goerr.V("repo", repo))
	}
	if strings.Contains(repo, "/") {
		return "", goerr.Wrap(repository.ErrInvalidInput, "repository name contains invalid character '/'", goerr.V("repo", repo))
	}
	if strings.HasPrefix(repo, "__") && strings.HasSuffix(repo, "__") {
		return "", goerr.Wrap(repository.ErrInvalidInput, "repository name is reserved by Firestore", goerr.V("repo", repo))
	}
	return repo, nil
}

func (r *findingRepository) findings(repo string) (*firestore.CollectionRef, error) {
	docID, err := ToFirestoreID(repo)
	if err != nil {
		return nil, err
	}
	return r.client.Collection(r.collection).Doc(docID).Collection(collectionFinding), nil
}

func (r *findingRepository) GetFinding(ctx context.Context, repo, id string) (*model.Finding, error) {
	col, err := r.findings(repo)
	if err != nil {
		return nil, err
	}

	snap, err := col.Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(repository.ErrNotFound, "finding not found",
				goerr.V("repo", repo),
				goerr.V("id", id),
			)
		}
		return nil, goerr.Wrap(err, "failed to get finding",
			goerr.V("repo", repo),
			goerr.V("id", id),
		)
	}

	var finding model.Finding
	if err := snap.DataTo(&finding); err != nil {
		return nil, goerr.Wrap(err, "failed to decode finding", goerr.V("id", id))
	}

	return &finding, nil
}

func (r *findingRepository) ListFindings(ctx context.Context, repo string) ([]*model.Finding, error) {
	col, err := r.findings(repo)
	if err != nil {
		return nil, err
	}

	iter := col.Documents(ctx)
	defer iter.Stop()

	var findings []*model.Finding
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate findings", goerr.V("repo", repo))
		}

		var finding model.Finding
		if err := snap.DataTo(&finding); err != nil {
			return nil, goerr.Wrap(err, "failed to decode finding")
		}

		findings = append(findings, &finding)
	}

	return findings, nil
}

func (r *findingRepository) PutFindings(ctx context.Context, repo string, findings []*model.Finding) error {
	col, err := r.findings(repo)
	if err != nil {
		return err
	}

	// Process in batches of 500 (Firestore limit)
	for i := 0; i < len(findings); i += batchSize {
		end := min(i+batchSize, len(findings))

		batch := r.client.Batch()
		for _, finding := range findings[i:end] {
			batch.Set(col.Doc(finding.ID), finding)
		}

		if _, err := batch.Commit(ctx); err != nil {
			return goerr.Wrap(err, "failed to put findings",
				goerr.V("repo", repo),
				goerr.V("batchStart", i),
				goerr.V("batchEnd", end),
			)
		}
	}

	return nil
}
