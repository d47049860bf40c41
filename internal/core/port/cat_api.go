package port

import (
	"cat-gallery-service/internal/core/domain"
	"context"
)

// CatAPIPort объединяет все операции с удаленным сервисом котов.
// Адаптер за этим портом - единственный слой, который знает и про сырые
// DTO внешнего API, и про доменные сущности.
type CatAPIPort interface {
	// GetRandomCats возвращает нормализованный список случайных котов.
	GetRandomCats(ctx context.Context, limit int) ([]domain.CatEntity, error)

	// GetFavouriteCats возвращает нормализованный список избранного аккаунта.
	GetFavouriteCats(ctx context.Context) ([]domain.CatEntity, error)

	// SaveFavourite создает запись избранного для изображения
	// и возвращает id новой записи (id записи, не изображения).
	SaveFavourite(ctx context.Context, imageID string) (int64, error)

	// DeleteFavourite удаляет запись избранного по id записи.
	DeleteFavourite(ctx context.Context, favouriteID int64) error
}
