package domain

// CatEntity - нормализованное доменное представление изображения кота.
// Это единственная форма, с которой работают use case'ы и фасад,
// независимо от того, из какого эндпоинта пришли данные.
type CatEntity struct {
	// ID - идентификатор самого изображения. Он общий для случайной ленты
	// и для записи в избранном, которая оборачивает это изображение.
	ID string `json:"id"`

	// URL - ссылка на изображение.
	URL string `json:"url"`

	// FavouriteID - идентификатор записи избранного (не изображения!).
	// Не nil тогда и только тогда, когда сущность получена из коллекции
	// избранного или успешно в нее добавлена.
	FavouriteID *int64 `json:"favouriteId"`
}

// IsFavourite сообщает, представляет ли сущность сохраненную запись избранного.
func (c CatEntity) IsFavourite() bool {
	return c.FavouriteID != nil
}

// NotificationType - тип пользовательского уведомления.
type NotificationType string

const (
	NotificationSuccess NotificationType = "success"
	NotificationError   NotificationType = "error"
)

// Notification - транзиентное уведомление для пользователя (аналог toast).
// Ядро только формирует их, канал доставки - внешний коллаборатор.
type Notification struct {
	Type    NotificationType `json:"type"`
	Message string           `json:"message"`
}
