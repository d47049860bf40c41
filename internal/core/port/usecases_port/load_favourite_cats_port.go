package usecases_port

import (
	"cat-gallery-service/internal/core/domain"
	"context"
)

// LoadFavouriteCatsUseCase - workflow загрузки коллекции избранного.
type LoadFavouriteCatsUseCase interface {
	Execute(ctx context.Context) ([]domain.CatEntity, error)
}
