package firestore_test

import (
	"context"
	"errors"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/surch/pkg/repository"
	"github.com/secmon-lab/surch/pkg/repository/firestore"
	"github.com/secmon-lab/surch/pkg/repository/testhelper"
	"github.com/secmon-lab/surch/pkg/utils/testutil"
)

func TestFirestoreFindingRepository(t *testing.T) {
	projectID := testutil.GetEnvOrSkip(t, "TEST_FIRESTORE_PROJECT_ID")
	databaseID := testutil.GetEnvOrSkip(t, "TEST_FIRESTORE_DATABASE_ID")

	ctx := context.Background()
	repo, err := firestore.New(ctx, projectID, databaseID, "surch-test")
	gt.NoError(t, err)

	testhelper.TestAll(t, repo)
}

func TestToFirestoreID(t *testing.T) {
	id, err := firestore.ToFirestoreID("api")
	gt.NoError(t, err)
	gt.V(t, id).Equal("api")

	id, err = firestore.ToFirestoreID("my.repo-1")
	gt.NoError(t, err)
	gt.V(t, id).Equal("my.repo-1")

	for _, name := range []string{"", ".", "..", "acme/api", "__api__"} {
		_, err = firestore.ToFirestoreID(name)
		gt.True(t, errors.Is(err, repository.ErrInvalidInput))
	}
}
