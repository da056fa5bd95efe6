package testhelper

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/surch/pkg/domain/interfaces"
	"github.com/secmon-lab/surch/pkg/domain/model"
	"github.com/secmon-lab/surch/pkg/domain/types"
	"github.com/secmon-lab/surch/pkg/repository"
)

// TestAll runs all test cases for FindingRepository
// This is the main entry point for testing any FindingRepository implementation
func TestAll(t *testing.T, repo interfaces.FindingRepository) {
	t.Run("FindingPutAndGet", func(t *testing.T) {
		TestFindingPutAndGet(t, repo)
	})
	t.Run("FindingUpdate", func(t *testing.T) {
		TestFindingUpdate(t, repo)
	})
	t.Run("FindingBatch", func(t *testing.T) {
		TestFindingBatch(t, repo)
	})
	t.Run("FindingNotFound", func(t *testing.T) {
		TestFindingNotFound(t, repo)
	})
}

func newFinding(repoName string, line int, runID types.RunID, at time.Time) *model.Finding {
	return model.NewFinding(&model.Match{
		RunID:      runID,
		Repository: repoName,
		URL:        "https://github.com/acme/" + repoName + ".git",
		Commit:     "0123456789abcdef0123456789abcdef01234567",
		Path:       "config.yaml",
		Line:       line,
		SearchTerm: "AKIA",
	}, at)
}

// uniqueRepo returns a repository name that is not used by other test runs
func uniqueRepo() string {
	return fmt.Sprintf("repo-%s", uuid.New().String()[:8])
}

// TestFindingPutAndGet tests basic put and get of a finding
func TestFindingPutAndGet(t *testing.T, repo interfaces.FindingRepository) {
	ctx := context.Background()
	repoName := uniqueRepo()
	now := time.Now().UTC().Truncate(time.Millisecond)

	finding := newFinding(repoName, 1, types.NewRunID(), now)
	gt.NoError(t, repo.PutFindings(ctx, repoName, []*model.Finding{finding}))

	retrieved, err := repo.GetFinding(ctx, repoName, finding.ID)
	gt.NoError(t, err)
	gt.V(t, retrieved.ID).Equal(finding.ID)
	gt.V(t, retrieved.Repository).Equal(repoName)
	gt.V(t, retrieved.Path).Equal("config.yaml")
	gt.V(t, retrieved.Line).Equal(1)
	gt.V(t, retrieved.TermHash).Equal(finding.TermHash)
	gt.V(t, retrieved.FirstSeenRunID).Equal(finding.FirstSeenRunID)
	gt.True(t, retrieved.FirstSeenAt.Equal(now))

	// Returned finding must be a copy
	retrieved.Line = 999
	again, err := repo.GetFinding(ctx, repoName, finding.ID)
	gt.NoError(t, err)
	gt.V(t, again.Line).Equal(1)
}

// TestFindingUpdate tests that put overwrites the finding with the same ID
func TestFindingUpdate(t *testing.T, repo interfaces.FindingRepository) {
	ctx := context.Background()
	repoName := uniqueRepo()
	first := time.Now().UTC().Truncate(time.Millisecond)
	firstRun := types.NewRunID()

	finding := newFinding(repoName, 1, firstRun, first)
	gt.NoError(t, repo.PutFindings(ctx, repoName, []*model.Finding{finding}))

	secondRun := types.NewRunID()
	finding.SeenAgain(newFinding(repoName, 1, secondRun, first.Add(time.Hour)))
	gt.NoError(t, repo.PutFindings(ctx, repoName, []*model.Finding{finding}))

	findings, err := repo.ListFindings(ctx, repoName)
	gt.NoError(t, err)
	gt.A(t, findings).Length(1)
	gt.V(t, findings[0].FirstSeenRunID).Equal(firstRun)
	gt.V(t, findings[0].LastSeenRunID).Equal(secondRun)
	gt.True(t, findings[0].LastSeenAt.Equal(first.Add(time.Hour)))
}

// TestFindingBatch tests putting more findings than one Firestore batch
func TestFindingBatch(t *testing.T, repo interfaces.FindingRepository) {
	ctx := context.Background()
	repoName := uniqueRepo()
	runID := types.NewRunID()
	now := time.Now().UTC()

	var findings []*model.Finding
	for i := range 520 {
		findings = append(findings, newFinding(repoName, i+1, runID, now))
	}
	gt.NoError(t, repo.PutFindings(ctx, repoName, findings))

	listed, err := repo.ListFindings(ctx, repoName)
	gt.NoError(t, err)
	gt.A(t, listed).Length(520)

	// Other repository is not affected
	others, err := repo.ListFindings(ctx, uniqueRepo())
	gt.NoError(t, err)
	gt.A(t, others).Length(0)
}

// TestFindingNotFound tests error of missing finding
func TestFindingNotFound(t *testing.T, repo interfaces.FindingRepository) {
	ctx := context.Background()

	_, err := repo.GetFinding(ctx, uniqueRepo(), "no-such-finding")
	gt.True(t, errors.Is(err, repository.ErrNotFound))
}
