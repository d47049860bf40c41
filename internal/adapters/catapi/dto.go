package catapi

import (
	"encoding/json"
	"fmt"
)

// RawCatDTO покрывает обе сырые формы внешнего API: элемент ответа
// GET /images/search и запись GET /favourites с вложенным изображением.
// Поле "id" у них разного типа (строка у изображения, число у записи
// избранного), поэтому парсим его вручную в зависимости от формы.
type RawCatDTO struct {
	// SearchID - "id" элемента, когда он пришел из /images/search (id изображения).
	SearchID string
	// URL изображения для формы /images/search.
	URL string
	// RecordID - "id" элемента, когда это запись избранного (id записи, не изображения).
	RecordID int64
	// Image - вложенный объект изображения. Присутствует только у записи избранного.
	Image *RawImageDTO
}

// RawImageDTO - вложенный объект изображения внутри записи избранного.
type RawImageDTO struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// UnmarshalJSON различает две формы по наличию вложенного image.
func (r *RawCatDTO) UnmarshalJSON(data []byte) error {
	var probe struct {
		ID    json.RawMessage `json:"id"`
		URL   string          `json:"url"`
		Image *RawImageDTO    `json:"image"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return err
	}

	r.URL = probe.URL
	r.Image = probe.Image

	if len(probe.ID) == 0 {
		return nil
	}
	if probe.Image != nil {
		if err := json.Unmarshal(probe.ID, &r.RecordID); err != nil {
			return fmt.Errorf("favourite record id is not a number: %w", err)
		}
	} else {
		if err := json.Unmarshal(probe.ID, &r.SearchID); err != nil {
			return fmt.Errorf("image id is not a string: %w", err)
		}
	}
	return nil
}

// PostFavouriteRequestDTO - тело POST /favourites.
type PostFavouriteRequestDTO struct {
	ImageID string `json:"image_id"`
}

// PostFavouriteResponseDTO - ответ POST /favourites с id созданной записи.
type PostFavouriteResponseDTO struct {
	ID      int64  `json:"id"`
	Message string `json:"message"`
}

// DeleteFavouriteResponseDTO - ответ DELETE /favourites/{id}.
type DeleteFavouriteResponseDTO struct {
	Message string `json:"message"`
}
