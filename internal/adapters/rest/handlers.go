package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"cat-gallery-service/internal/contextkeys"
	"cat-gallery-service/internal/core/domain"
	"cat-gallery-service/internal/core/port"
	"cat-gallery-service/internal/core/port/usecases_port"

	"github.com/go-chi/chi/v5"
)

// CatHandlers - фасад над workflow'ами коллекций. Оборачивает мутации
// пользовательскими уведомлениями, наружу отдает снимки состояния.
type CatHandlers struct {
	loadRandomUC      usecases_port.LoadRandomCatsUseCase
	loadFavouritesUC  usecases_port.LoadFavouriteCatsUseCase
	saveFavouriteUC   usecases_port.SaveFavouriteCatUseCase
	deleteFavouriteUC usecases_port.DeleteFavouriteCatUseCase

	state    port.CollectionsStatePort
	notifier port.NotifierPort

	// defaultLimit - сколько случайных котов запрашивать, если лимит не передан.
	defaultLimit int
}

// NewCatHandlers - конструктор для наших обработчиков.
func NewCatHandlers(
	loadRandomUC usecases_port.LoadRandomCatsUseCase,
	loadFavouritesUC usecases_port.LoadFavouriteCatsUseCase,
	saveFavouriteUC usecases_port.SaveFavouriteCatUseCase,
	deleteFavouriteUC usecases_port.DeleteFavouriteCatUseCase,
	state port.CollectionsStatePort,
	notifier port.NotifierPort,
	defaultLimit int,
) *CatHandlers {
	return &CatHandlers{
		loadRandomUC:      loadRandomUC,
		loadFavouritesUC:  loadFavouritesUC,
		saveFavouriteUC:   saveFavouriteUC,
		deleteFavouriteUC: deleteFavouriteUC,
		state:             state,
		notifier:          notifier,
		defaultLimit:      defaultLimit,
	}
}

// HandleGetState - обработчик для GET /api/v1/cats/state.
// Частичный отказ одного workflow не прячет данные остальных: ошибка лежит
// в снимке рядом с коллекциями, а не вместо них.
func (h *CatHandlers) HandleGetState(w http.ResponseWriter, r *http.Request) {
	RespondWithJSON(w, http.StatusOK, h.state.Snapshot())
}

// HandleRefreshRandom - обработчик для POST /api/v1/cats/random/refresh
func (h *CatHandlers) HandleRefreshRandom(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "HandleRefreshRandom"})

	limit := h.defaultLimit
	if rawLimit := r.URL.Query().Get("limit"); rawLimit != "" {
		parsed, err := strconv.Atoi(rawLimit)
		if err != nil || parsed <= 0 {
			WriteJSONError(w, http.StatusBadRequest, "Query parameter 'limit' must be a positive number")
			return
		}
		limit = parsed
	}

	logger.Info("Received request to refresh random cats", port.Fields{"limit": limit})

	cats, err := h.loadRandomUC.Execute(r.Context(), limit)
	if err != nil {
		logger.Error("Use case execution failed", err, nil)
		WriteJSONError(w, http.StatusBadGateway, "Failed to load random cats")
		return
	}

	RespondWithJSON(w, http.StatusOK, cats)
}

// HandleRefreshFavourites - обработчик для POST /api/v1/cats/favourites/refresh
func (h *CatHandlers) HandleRefreshFavourites(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "HandleRefreshFavourites"})

	logger.Info("Received request to refresh favourite cats", nil)

	cats, err := h.loadFavouritesUC.Execute(r.Context())
	if err != nil {
		logger.Error("Use case execution failed", err, nil)
		WriteJSONError(w, http.StatusBadGateway, "Failed to load favourite cats")
		return
	}

	RespondWithJSON(w, http.StatusOK, cats)
}

// HandleSaveFavourite - обработчик для POST /api/v1/cats/favourites
func (h *CatHandlers) HandleSaveFavourite(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "HandleSaveFavourite"})

	var reqDTO SaveFavouriteRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&reqDTO); err != nil {
		if err == io.EOF { // Если тело запроса пустое
			logger.Error("Failed to decode request body", err, nil)
			WriteJSONError(w, http.StatusBadRequest, "Request body is empty")
			return
		}
		WriteJSONError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	if reqDTO.ID == "" {
		WriteJSONError(w, http.StatusBadRequest, "Field 'id' is required")
		return
	}

	logger.Info("Received request to save favourite cat", port.Fields{"image_id": reqDTO.ID})

	// Сущность из случайной ленты: favouriteId всегда nil на входе.
	cat := domain.CatEntity{ID: reqDTO.ID, URL: reqDTO.URL}

	favouriteID, err := h.saveFavouriteUC.Execute(r.Context(), cat)
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyFavourite) {
			logger.Warn("Duplicate favourite save attempt", port.Fields{"image_id": reqDTO.ID})
			WriteJSONError(w, http.StatusConflict, "Cat is already in favourites")
			return
		}
		logger.Error("Use case execution failed", err, nil)
		h.notifier.Notify(domain.Notification{
			Type:    domain.NotificationError,
			Message: fmt.Sprintf("Failed to save: %v", err),
		})
		WriteJSONError(w, http.StatusBadGateway, "Failed to save favourite cat")
		return
	}

	h.notifier.Notify(domain.Notification{
		Type:    domain.NotificationSuccess,
		Message: "Cat saved to favourites!",
	})

	logger.Info("Favourite cat saved", port.Fields{"favourite_id": favouriteID})
	RespondWithJSON(w, http.StatusCreated, SaveFavouriteResponseDTO{FavouriteID: favouriteID})
}

// HandleDeleteFavourite - обработчик для DELETE /api/v1/cats/favourites/{favouriteId}
func (h *CatHandlers) HandleDeleteFavourite(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "HandleDeleteFavourite"})

	rawID := chi.URLParam(r, "favouriteId")
	favouriteID, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Path parameter 'favouriteId' must be a number")
		return
	}

	logger.Info("Received request to delete favourite cat", port.Fields{"favourite_id": favouriteID})

	// Находим сущность в текущем зеркале избранного: удалять можно только то,
	// что там реально есть.
	var target *domain.CatEntity
	for _, cat := range h.state.Snapshot().Favourites {
		if cat.FavouriteID != nil && *cat.FavouriteID == favouriteID {
			found := cat
			target = &found
			break
		}
	}
	if target == nil {
		WriteJSONError(w, http.StatusNotFound, "Favourite record not found")
		return
	}

	if err := h.deleteFavouriteUC.Execute(r.Context(), *target); err != nil {
		logger.Error("Use case execution failed", err, nil)
		h.notifier.Notify(domain.Notification{
			Type:    domain.NotificationError,
			Message: fmt.Sprintf("Failed to delete: %v", err),
		})
		WriteJSONError(w, http.StatusBadGateway, "Failed to delete favourite cat")
		return
	}

	h.notifier.Notify(domain.Notification{
		Type:    domain.NotificationSuccess,
		Message: "Cat removed from favourites!",
	})

	logger.Info("Favourite cat deleted", port.Fields{"favourite_id": favouriteID})
	RespondWithJSON(w, http.StatusOK, map[string]string{"message": "deleted"})
}

// HandleRetry - обработчик для POST /api/v1/cats/retry.
// Явное действие из баннера ошибки: перезапускает обе загрузки. Это
// единственный путь, который после мутаций перечитывает избранное целиком.
func (h *CatHandlers) HandleRetry(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "HandleRetry"})

	logger.Info("Received retry request, re-running both loads", nil)

	_, randomErr := h.loadRandomUC.Execute(r.Context(), h.defaultLimit)
	_, favouritesErr := h.loadFavouritesUC.Execute(r.Context())

	// Частичный отказ не прячет удавшуюся часть: отдаем снимок как есть.
	if randomErr != nil || favouritesErr != nil {
		logger.Warn("Retry finished with errors", port.Fields{
			"random_failed":     randomErr != nil,
			"favourites_failed": favouritesErr != nil,
		})
	}

	RespondWithJSON(w, http.StatusOK, h.state.Snapshot())
}

// HandleFavouriteStatus - обработчик для GET /api/v1/cats/{imageId}/favourite-status
func (h *CatHandlers) HandleFavouriteStatus(w http.ResponseWriter, r *http.Request) {
	imageID := chi.URLParam(r, "imageId")
	if imageID == "" {
		WriteJSONError(w, http.StatusBadRequest, "Path parameter 'imageId' is required")
		return
	}

	RespondWithJSON(w, http.StatusOK, FavouriteStatusResponseDTO{
		ImageID:     imageID,
		IsFavourite: h.state.IsFavourite(imageID),
	})
}
