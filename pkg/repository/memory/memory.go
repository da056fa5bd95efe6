package memory

import (
	"github.com/secmon-lab/surch/pkg/domain/interfaces"
	"github.com/secmon-lab/surch/pkg/domain/model"
)

// New creates a new in-memory finding repository
func New() interfaces.FindingRepository {
	return &findingRepository{
		repos: make(map[string]map[string]*model.Finding),
	}
}
