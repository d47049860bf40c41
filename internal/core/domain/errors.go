package domain

import "errors"

var (
	// ErrAlreadyFavourite возвращается guard'ом от повторного сохранения:
	// изображение с таким id уже есть в избранном, сетевой вызов не выполняется.
	ErrAlreadyFavourite = errors.New("cat is already in favourites")

	// ErrNotFavourite возвращается при попытке удалить сущность,
	// у которой нет идентификатора записи избранного.
	ErrNotFavourite = errors.New("cat is not a favourite record")
)
