package interfaces

//go:generate moq -out ../mock/usecase.go -pkg mock . UseCase

import (
	"context"

	"github.com/secmon-lab/surch/pkg/domain/model"
)

type UseCase interface {
	SearchAccount(ctx context.Context, input *model.SearchAccountInput) (*model.ScanSummary, error)
	SearchRepository(ctx context.Context, input *model.SearchRepositoryInput) (*model.ScanSummary, error)
}
