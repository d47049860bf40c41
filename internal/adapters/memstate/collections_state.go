package memstate

import (
	"sync"

	"cat-gallery-service/internal/core/domain"
)

// CollectionsState - единственное разделяемое состояние приложения.
// Создается один раз на старте с пустыми коллекциями и опущенными флагами,
// никуда не персистится: перезапуск процесса означает две свежие загрузки.
//
// Мьютекс сериализует отдельные мутации; порядок завершения конкурентных
// workflow'ов по-прежнему определяет итог (last-write-wins на уровне
// коллекции, как и в исходном дизайне).
type CollectionsState struct {
	mu sync.RWMutex

	random     []domain.CatEntity
	favourites []domain.CatEntity
	loading    domain.LoadingFlags
	lastError  *string

	// favouriteImageIDs - индекс по id изображения (не по id записи!),
	// перестраивается при каждой мутации favourites. Дает O(1) проверку
	// статуса избранного для сущностей из случайной ленты.
	favouriteImageIDs map[string]struct{}
}

// NewCollectionsState создает пустое состояние.
func NewCollectionsState() *CollectionsState {
	return &CollectionsState{
		random:            []domain.CatEntity{},
		favourites:        []domain.CatEntity{},
		favouriteImageIDs: make(map[string]struct{}),
	}
}

// Snapshot возвращает консистентную копию состояния. Коллекции копируются,
// чтобы читатели не видели последующих мутаций.
func (s *CollectionsState) Snapshot() domain.CollectionsSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	random := make([]domain.CatEntity, len(s.random))
	copy(random, s.random)

	favourites := make([]domain.CatEntity, len(s.favourites))
	copy(favourites, s.favourites)

	var lastError *string
	if s.lastError != nil {
		msg := *s.lastError
		lastError = &msg
	}

	return domain.CollectionsSnapshot{
		Random:     random,
		Favourites: favourites,
		Loading:    s.loading,
		Error:      lastError,
	}
}

// SetRandom заменяет случайную коллекцию целиком (порядок - порядок ответа сервера).
func (s *CollectionsState) SetRandom(cats []domain.CatEntity) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.random = cats
}

// SetFavourites заменяет коллекцию избранного целиком и перестраивает индекс.
func (s *CollectionsState) SetFavourites(cats []domain.CatEntity) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.favourites = cats
	s.favouriteImageIDs = make(map[string]struct{}, len(cats))
	for _, cat := range cats {
		s.favouriteImageIDs[cat.ID] = struct{}{}
	}
}

// AppendFavourite добавляет запись в конец коллекции избранного.
func (s *CollectionsState) AppendFavourite(cat domain.CatEntity) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.favourites = append(s.favourites, cat)
	s.favouriteImageIDs[cat.ID] = struct{}{}
}

// RemoveFavourite удаляет запись с данным favouriteId, не трогая порядок остальных.
func (s *CollectionsState) RemoveFavourite(favouriteID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := make([]domain.CatEntity, 0, len(s.favourites))
	for _, cat := range s.favourites {
		if cat.FavouriteID != nil && *cat.FavouriteID == favouriteID {
			delete(s.favouriteImageIDs, cat.ID)
			continue
		}
		kept = append(kept, cat)
	}
	s.favourites = kept
}

// SetLoading выставляет флаг конкретного семейства операций.
// Флаги независимы, поэтому трогаем ровно один.
func (s *CollectionsState) SetLoading(op domain.Operation, inFlight bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch op {
	case domain.OpLoadRandom:
		s.loading.Random = inFlight
	case domain.OpLoadFavourites:
		s.loading.Favourites = inFlight
	case domain.OpSaving:
		s.loading.Saving = inFlight
	case domain.OpDeleting:
		s.loading.Deleting = inFlight
	}
}

// SetError записывает сообщение последней ошибки любой операции.
func (s *CollectionsState) SetError(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastError = &msg
}

// ClearError очищает поле ошибки (вызывается в начале fetch-операций).
func (s *CollectionsState) ClearError() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastError = nil
}

// IsFavourite проверяет по индексу, есть ли изображение в избранном.
func (s *CollectionsState) IsFavourite(imageID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.favouriteImageIDs[imageID]
	return ok
}
