package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/surch/pkg/domain/model"
	"github.com/secmon-lab/surch/pkg/repository"
)

type findingRepository struct {
	mu    sync.RWMutex
	repos map[string]map[string]*model.Finding
}

func (r *findingRepository) GetFinding(ctx context.Context, repo, id string) (*model.Finding, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	finding, exists := r.repos[repo][id]
	if !exists {
		return nil, goerr.Wrap(repository.ErrNotFound, "finding not found",
			goerr.V("repo", repo),
			goerr.V("id", id),
		)
	}

	return copyFinding(finding), nil
}

func (r *findingRepository) ListFindings(ctx context.Context, repo string) ([]*model.Finding, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var findings []*model.Finding
	for _, finding := range r.repos[repo] {
		findings = append(findings, copyFinding(finding))
	}
	sort.Slice(findings, func(i, j int) bool { return findings[i].ID < findings[j].ID })

	return findings, nil
}

func (r *findingRepository) PutFindings(ctx context.Context, repo string, findings []*model.Finding) error {
	if repo == "" {
		return goerr.Wrap(repository.ErrInvalidInput, "repository name is empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.repos[repo]; !exists {
		r.repos[repo] = make(map[string]*model.Finding)
	}
	for _, finding := range findings {
		r.repos[repo][finding.ID] = copyFinding(finding)
	}

	return nil
}

func copyFinding(finding *model.Finding) *model.Finding {
	copied := *finding
	return &copied
}
