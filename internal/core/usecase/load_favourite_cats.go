package usecase

import (
	"context"
	"fmt"

	"cat-gallery-service/internal/contextkeys"
	"cat-gallery-service/internal/core/domain"
	"cat-gallery-service/internal/core/port"
)

// LoadFavouriteCatsUseCase - workflow загрузки избранного.
// Та же форма, что у загрузки ленты, но заменяется коллекция favourites.
// Это единственный путь (вместе с retry), который перечитывает избранное
// целиком - save/delete мутируют локальное зеркало инкрементально.
type LoadFavouriteCatsUseCase struct {
	catAPI port.CatAPIPort
	state  port.CollectionsStatePort
}

// NewLoadFavouriteCatsUseCase создает новый экземпляр LoadFavouriteCatsUseCase
func NewLoadFavouriteCatsUseCase(catAPI port.CatAPIPort, state port.CollectionsStatePort) *LoadFavouriteCatsUseCase {
	return &LoadFavouriteCatsUseCase{
		catAPI: catAPI,
		state:  state,
	}
}

// Execute запускает загрузку избранного.
func (uc *LoadFavouriteCatsUseCase) Execute(ctx context.Context) ([]domain.CatEntity, error) {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case": "LoadFavouriteCats",
	})

	logger.Debug("Load favourite cats pending", nil)
	uc.state.SetLoading(domain.OpLoadFavourites, true)
	uc.state.ClearError()

	cats, err := uc.catAPI.GetFavouriteCats(ctx)
	if err != nil {
		uc.state.SetError(err.Error())
		uc.state.SetLoading(domain.OpLoadFavourites, false)
		logger.Error("Load favourite cats rejected", err, nil)
		return nil, fmt.Errorf("use case: failed to load favourite cats: %w", err)
	}

	uc.state.SetFavourites(cats)
	uc.state.SetLoading(domain.OpLoadFavourites, false)
	logger.Info("Load favourite cats fulfilled", port.Fields{"favourites_count": len(cats)})

	return cats, nil
}
