package port

import "cat-gallery-service/internal/core/domain"

// CollectionsStatePort - контракт единственного разделяемого состояния
// приложения. Мутации выполняются только из workflow'ов use case'ов,
// прямого внешнего доступа к полям нет.
type CollectionsStatePort interface {
	// Snapshot возвращает консистентную копию текущего состояния.
	Snapshot() domain.CollectionsSnapshot

	// SetRandom заменяет случайную коллекцию целиком.
	SetRandom(cats []domain.CatEntity)

	// SetFavourites заменяет коллекцию избранного целиком.
	SetFavourites(cats []domain.CatEntity)

	// AppendFavourite добавляет запись в конец коллекции избранного.
	AppendFavourite(cat domain.CatEntity)

	// RemoveFavourite удаляет запись, чей favouriteId равен переданному.
	// Остальные записи сохраняют идентичность и порядок.
	RemoveFavourite(favouriteID int64)

	// SetLoading выставляет флаг загрузки конкретного семейства операций,
	// не трогая остальные флаги.
	SetLoading(op domain.Operation, inFlight bool)

	// SetError записывает сообщение последней ошибки (перезаписывает предыдущее).
	SetError(msg string)

	// ClearError очищает поле ошибки.
	ClearError()

	// IsFavourite - проверка статуса избранного за O(1) по id изображения
	// (не по id записи избранного).
	IsFavourite(imageID string) bool
}
