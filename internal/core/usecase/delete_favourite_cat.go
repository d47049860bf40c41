package usecase

import (
	"context"
	"fmt"

	"cat-gallery-service/internal/contextkeys"
	"cat-gallery-service/internal/core/domain"
	"cat-gallery-service/internal/core/port"
)

// DeleteFavouriteCatUseCase - workflow удаления из избранного.
// На входе сущность из коллекции избранного (favouriteId не nil по инварианту).
// Удаление не оптимистичное: локальное зеркало мутируется только после
// подтверждения сервера.
type DeleteFavouriteCatUseCase struct {
	catAPI port.CatAPIPort
	state  port.CollectionsStatePort
}

// NewDeleteFavouriteCatUseCase создает новый экземпляр DeleteFavouriteCatUseCase
func NewDeleteFavouriteCatUseCase(catAPI port.CatAPIPort, state port.CollectionsStatePort) *DeleteFavouriteCatUseCase {
	return &DeleteFavouriteCatUseCase{
		catAPI: catAPI,
		state:  state,
	}
}

// Execute удаляет запись избранного.
func (uc *DeleteFavouriteCatUseCase) Execute(ctx context.Context, cat domain.CatEntity) error {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case": "DeleteFavouriteCat",
		"image_id": cat.ID,
	})

	if cat.FavouriteID == nil {
		logger.Warn("Delete requested for entity without favourite record id", nil)
		return domain.ErrNotFavourite
	}

	logger.Debug("Delete favourite cat pending", port.Fields{"favourite_id": *cat.FavouriteID})
	uc.state.SetLoading(domain.OpDeleting, true)

	if err := uc.catAPI.DeleteFavourite(ctx, *cat.FavouriteID); err != nil {
		uc.state.SetError(err.Error())
		uc.state.SetLoading(domain.OpDeleting, false)
		logger.Error("Delete favourite cat rejected", err, nil)
		return fmt.Errorf("use case: failed to delete favourite cat: %w", err)
	}

	uc.state.RemoveFavourite(*cat.FavouriteID)
	uc.state.SetLoading(domain.OpDeleting, false)
	logger.Info("Delete favourite cat fulfilled", port.Fields{"favourite_id": *cat.FavouriteID})

	return nil
}
