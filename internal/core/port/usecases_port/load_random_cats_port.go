package usecases_port

import (
	"cat-gallery-service/internal/core/domain"
	"context"
)

// LoadRandomCatsUseCase - workflow загрузки случайной ленты котов.
type LoadRandomCatsUseCase interface {
	Execute(ctx context.Context, limit int) ([]domain.CatEntity, error)
}
