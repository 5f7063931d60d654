package ports

import (
	"context"

	"github.com/bnema/halo-bridge/internal/domain"
)

type ClassRepository interface {
	List(ctx context.Context) ([]domain.Class, error)
	ReplaceAll(ctx context.Context, classes []domain.Class) error
}
