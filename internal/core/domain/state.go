package domain

// Operation - семейство асинхронных операций, у каждого свой независимый
// флаг загрузки. Флаги не взаимоисключающие: сохранение может выполняться
// одновременно с загрузкой ленты.
type Operation string

const (
	OpLoadRandom     Operation = "random"
	OpLoadFavourites Operation = "favourites"
	OpSaving         Operation = "saving"
	OpDeleting       Operation = "deleting"
)

// LoadingFlags - по одному флагу на каждое семейство операций.
type LoadingFlags struct {
	Random     bool `json:"random"`
	Favourites bool `json:"favourites"`
	Saving     bool `json:"saving"`
	Deleting   bool `json:"deleting"`
}

// CollectionsSnapshot - консистентный снимок состояния двух коллекций.
// Random заменяется целиком при каждой загрузке; Favourites - локальное
// зеркало серверного избранного, мутируется инкрементально (append при
// сохранении, remove при удалении), поэтому порядок после первой мутации
// не обязан совпадать с серверным.
type CollectionsSnapshot struct {
	Random     []CatEntity  `json:"random"`
	Favourites []CatEntity  `json:"favourites"`
	Loading    LoadingFlags `json:"loading"`

	// Error - сообщение последней неудавшейся операции любого типа.
	// Перезаписывается любой новой ошибкой, очищается в начале fetch-операций
	// (но не в начале save/delete).
	Error *string `json:"error"`
}
