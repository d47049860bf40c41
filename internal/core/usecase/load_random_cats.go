package usecase

import (
	"context"
	"fmt"

	"cat-gallery-service/internal/contextkeys"
	"cat-gallery-service/internal/core/domain"
	"cat-gallery-service/internal/core/port"
)

// LoadRandomCatsUseCase - workflow загрузки случайной ленты.
// pending: loading.random = true, ошибка очищается.
// fulfilled: коллекция random заменяется целиком.
// rejected: прежняя random не трогается, сообщение ошибки попадает в состояние.
type LoadRandomCatsUseCase struct {
	catAPI port.CatAPIPort
	state  port.CollectionsStatePort
}

// NewLoadRandomCatsUseCase создает новый экземпляр LoadRandomCatsUseCase
func NewLoadRandomCatsUseCase(catAPI port.CatAPIPort, state port.CollectionsStatePort) *LoadRandomCatsUseCase {
	return &LoadRandomCatsUseCase{
		catAPI: catAPI,
		state:  state,
	}
}

// Execute запускает загрузку. Ошибка не выбрасывается дальше workflow-границы
// в состояние - она записывается туда сообщением, но возвращается вызывающему
// фасаду для точной атрибуции.
func (uc *LoadRandomCatsUseCase) Execute(ctx context.Context, limit int) ([]domain.CatEntity, error) {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case": "LoadRandomCats",
		"limit":    limit,
	})

	logger.Debug("Load random cats pending", nil)
	uc.state.SetLoading(domain.OpLoadRandom, true)
	uc.state.ClearError()

	cats, err := uc.catAPI.GetRandomCats(ctx, limit)
	if err != nil {
		uc.state.SetError(err.Error())
		uc.state.SetLoading(domain.OpLoadRandom, false)
		logger.Error("Load random cats rejected", err, nil)
		return nil, fmt.Errorf("use case: failed to load random cats: %w", err)
	}

	uc.state.SetRandom(cats)
	uc.state.SetLoading(domain.OpLoadRandom, false)
	logger.Info("Load random cats fulfilled", port.Fields{"cats_count": len(cats)})

	return cats, nil
}
