package model_test

import (
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/surch/pkg/domain/model"
)

func TestNewFinding(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	m := &model.Match{
		RunID:      "run-1",
		Repository: "api",
		Commit:     "0123456789abcdef0123456789abcdef01234567",
		Path:       "config.yaml",
		Line:       3,
		SearchTerm: "hunter2",
	}

	f1 := model.NewFinding(m, now)
	gt.Equal(t, f1.FirstSeenRunID, "run-1")
	gt.Equal(t, f1.LastSeenAt, now)
	gt.V(t, f1.TermHash).NotEqual("hunter2")
	gt.Equal(t, len(f1.TermHash), 64)

	t.Run("same location and term has same ID", func(t *testing.T) {
		other := *m
		other.RunID = "run-2"
		gt.Equal(t, model.NewFinding(&other, now.Add(time.Hour)).ID, f1.ID)
	})

	t.Run("different term has different ID", func(t *testing.T) {
		other := *m
		other.SearchTerm = "AKIA"
		gt.V(t, model.NewFinding(&other, now).ID).NotEqual(f1.ID)
	})

	t.Run("seen again", func(t *testing.T) {
		other := *m
		other.RunID = "run-2"
		later := now.Add(time.Hour)

		f := *f1
		f.SeenAgain(model.NewFinding(&other, later))
		gt.Equal(t, f.FirstSeenRunID, "run-1")
		gt.Equal(t, f.FirstSeenAt, now)
		gt.Equal(t, f.LastSeenRunID, "run-2")
		gt.Equal(t, f.LastSeenAt, later)
	})
}
