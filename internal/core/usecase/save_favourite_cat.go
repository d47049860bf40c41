package usecase

import (
	"context"
	"fmt"

	"cat-gallery-service/internal/contextkeys"
	"cat-gallery-service/internal/core/domain"
	"cat-gallery-service/internal/core/port"
)

// SaveFavouriteCatUseCase - workflow сохранения кота в избранное.
// На входе сущность из случайной ленты (favouriteId у нее nil).
// fulfilled: копия сущности с новым favouriteId добавляется в конец
// favourites; из random ничего не удаляется - то же изображение продолжает
// появляться в ленте, меняется лишь его статус, вычисляемый потребителем.
type SaveFavouriteCatUseCase struct {
	catAPI port.CatAPIPort
	state  port.CollectionsStatePort
}

// NewSaveFavouriteCatUseCase создает новый экземпляр SaveFavouriteCatUseCase
func NewSaveFavouriteCatUseCase(catAPI port.CatAPIPort, state port.CollectionsStatePort) *SaveFavouriteCatUseCase {
	return &SaveFavouriteCatUseCase{
		catAPI: catAPI,
		state:  state,
	}
}

// Execute сохраняет кота. Guard от дубликата - жесткий инвариант: если
// изображение с таким id уже в избранном, API не вызывается вообще.
func (uc *SaveFavouriteCatUseCase) Execute(ctx context.Context, cat domain.CatEntity) (int64, error) {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case": "SaveFavouriteCat",
		"image_id": cat.ID,
	})

	if uc.state.IsFavourite(cat.ID) {
		logger.Warn("Duplicate favourite rejected before network call", nil)
		return 0, domain.ErrAlreadyFavourite
	}

	logger.Debug("Save favourite cat pending", nil)
	uc.state.SetLoading(domain.OpSaving, true)

	favouriteID, err := uc.catAPI.SaveFavourite(ctx, cat.ID)
	if err != nil {
		uc.state.SetError(err.Error())
		uc.state.SetLoading(domain.OpSaving, false)
		logger.Error("Save favourite cat rejected", err, nil)
		return 0, fmt.Errorf("use case: failed to save favourite cat: %w", err)
	}

	saved := cat
	saved.FavouriteID = &favouriteID
	uc.state.AppendFavourite(saved)
	uc.state.SetLoading(domain.OpSaving, false)
	logger.Info("Save favourite cat fulfilled", port.Fields{"favourite_id": favouriteID})

	return favouriteID, nil
}
