package usecases_port

import (
	"cat-gallery-service/internal/core/domain"
	"context"
)

// SaveFavouriteCatUseCase - workflow сохранения кота в избранное.
// Возвращает id созданной записи избранного.
type SaveFavouriteCatUseCase interface {
	Execute(ctx context.Context, cat domain.CatEntity) (int64, error)
}
