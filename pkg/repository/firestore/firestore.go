package firestore

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/surch/pkg/domain/interfaces"
	"google.golang.org/api/option"
)

const defaultCollection = "surch"

// New creates a new Firestore-based finding repository. Findings are stored
// under {collection}/{repository}/finding/{id}.
func New(ctx context.Context, projectID, databaseID, collection string, options ...option.ClientOption) (interfaces.FindingRepository, error) {
	var client *firestore.Client
	var err error

	if databaseID != "" {
		client, err = firestore.NewClientWithDatabase(ctx, projectID, databaseID, options...)
	} else {
		client, err = firestore.NewClient(ctx, projectID, options...)
	}

	if err != nil {
		return nil, goerr.Wrap(err, "failed to create Firestore client",
			goerr.V("projectID", projectID),
			goerr.V("databaseID", databaseID),
		)
	}

	if collection == "" {
		collection = defaultCollection
	}

	return &findingRepository{
		client:     client,
		collection: collection,
	}, nil
}
