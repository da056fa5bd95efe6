package model

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/secmon-lab/surch/pkg/domain/types"
)

// Finding is a match tracked across runs. The matched search term is kept
// only as hash because it is a secret.
type Finding struct {
	ID             string          `firestore:"id" json:"id"`
	Repository     string          `firestore:"repository" json:"repository"`
	URL            string          `firestore:"url" json:"url"`
	Commit         types.CommitSHA `firestore:"commit" json:"commit"`
	Path           string          `firestore:"path" json:"path"`
	Line           int             `firestore:"line" json:"line"`
	TermHash       string          `firestore:"term_hash" json:"term_hash"`
	FirstSeenRunID types.RunID     `firestore:"first_seen_run_id" json:"first_seen_run_id"`
	FirstSeenAt    time.Time       `firestore:"first_seen_at" json:"first_seen_at"`
	LastSeenRunID  types.RunID     `firestore:"last_seen_run_id" json:"last_seen_run_id"`
	LastSeenAt     time.Time       `firestore:"last_seen_at" json:"last_seen_at"`
}

func hashString(s string) string {
	h := sha256.Sum256([]byte(s))
	return hex.EncodeToString(h[:])
}

// NewFinding creates a finding first seen in the run of the match
func NewFinding(m *Match, seenAt time.Time) *Finding {
	termHash := hashString(m.SearchTerm)
	return &Finding{
		ID:             hashString(fmt.Sprintf("%s\n%s\n%s\n%d\n%s", m.Repository, m.Commit, m.Path, m.Line, termHash)),
		Repository:     m.Repository,
		URL:            m.URL,
		Commit:         m.Commit,
		Path:           m.Path,
		Line:           m.Line,
		TermHash:       termHash,
		FirstSeenRunID: m.RunID,
		FirstSeenAt:    seenAt,
		LastSeenRunID:  m.RunID,
		LastSeenAt:     seenAt,
	}
}

// SeenAgain updates last seen fields by a newer observation
func (x *Finding) SeenAgain(newer *Finding) {
	x.URL = newer.URL
	x.LastSeenRunID = newer.LastSeenRunID
	x.LastSeenAt = newer.LastSeenAt
}
