package usecases_port

import (
	"cat-gallery-service/internal/core/domain"
	"context"
)

// DeleteFavouriteCatUseCase - workflow удаления кота из избранного.
type DeleteFavouriteCatUseCase interface {
	Execute(ctx context.Context, cat domain.CatEntity) error
}
