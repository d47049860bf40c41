package rest

// SaveFavouriteRequestDTO - тело POST-запроса на сохранение кота в избранное.
// Это сущность из случайной ленты, favouriteId у нее отсутствует по определению.
type SaveFavouriteRequestDTO struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// SaveFavouriteResponseDTO - ответ с id созданной записи избранного.
type SaveFavouriteResponseDTO struct {
	FavouriteID int64 `json:"favouriteId"`
}

// FavouriteStatusResponseDTO - результат O(1) проверки статуса избранного.
type FavouriteStatusResponseDTO struct {
	ImageID     string `json:"imageId"`
	IsFavourite bool   `json:"isFavourite"`
}
