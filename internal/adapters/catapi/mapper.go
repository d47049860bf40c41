package catapi

import "cat-gallery-service/internal/core/domain"

// MapToCatEntity нормализует сырой элемент в доменную сущность.
// Единственная ветка всей доменной трансляции: если есть вложенный image,
// это запись избранного (id и url берем из вложенного объекта, favouriteId -
// это id самой записи), иначе - обычный результат поиска без favouriteId.
func MapToCatEntity(raw RawCatDTO) domain.CatEntity {
	if raw.Image != nil {
		favouriteID := raw.RecordID
		return domain.CatEntity{
			ID:          raw.Image.ID,
			URL:         raw.Image.URL,
			FavouriteID: &favouriteID,
		}
	}

	return domain.CatEntity{
		ID:          raw.SearchID,
		URL:         raw.URL,
		FavouriteID: nil,
	}
}

// MapToCatEntities нормализует список, сохраняя порядок сервера.
// Для nil-входа возвращает пустой список - это защитный default, не ошибка.
func MapToCatEntities(raws []RawCatDTO) []domain.CatEntity {
	entities := make([]domain.CatEntity, 0, len(raws))
	for _, raw := range raws {
		entities = append(entities, MapToCatEntity(raw))
	}
	return entities
}
