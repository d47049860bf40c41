package catapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"cat-gallery-service/internal/contextkeys"
	"cat-gallery-service/internal/contracts"
	"cat-gallery-service/internal/core/domain"
	"cat-gallery-service/internal/core/port"
)

// Client отвечает за все взаимодействия с внешним Cat API.
// Тонкая обертка над HTTP: фиксированный базовый URL, API-ключ в заголовке,
// ограниченный таймаут на запрос. Без ретраев, кэширования и дедупликации -
// каждый вызов независим, конкурентностью управляет вызывающая сторона.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient - конструктор
func NewClient(baseURL, apiKey string, timeout time.Duration) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("catapi: base URL is required")
	}
	if apiKey == "" {
		return nil, fmt.Errorf("catapi: api key is required")
	}

	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

// doRequest - внутренний хелпер для выполнения запросов
func (c *Client) doRequest(ctx context.Context, method, url string, body io.Reader) (*http.Response, error) {
	traceID := contextkeys.TraceIDFromContext(ctx)

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	// Статический API-ключ на каждом запросе. Никаких токенов и сессий.
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	if traceID != "" {
		req.Header.Set("X-Trace-ID", traceID)
	}

	return c.httpClient.Do(req)
}

// readSuccessBody проверяет статус-код и возвращает тело ответа.
// Любой не-2xx превращается в HTTPError с телом ответа внутри.
func readSuccessBody(resp *http.Response) ([]byte, error) {
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &HTTPError{StatusCode: resp.StatusCode, Body: string(bodyBytes)}
	}

	return bodyBytes, nil
}

// GetRandomCats запрашивает случайные изображения и нормализует их в доменные сущности.
func (c *Client) GetRandomCats(ctx context.Context, limit int) ([]domain.CatEntity, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	clientLogger := logger.WithFields(port.Fields{
		"component": "CatAPIClient",
		"method":    "GetRandomCats",
	})

	url := fmt.Sprintf("%s/images/search?limit=%d", c.baseURL, limit)
	clientLogger.Debug("Sending request to cat api", port.Fields{"url": url})

	resp, err := c.doRequest(ctx, http.MethodGet, url, nil)
	if err != nil {
		clientLogger.Error("Failed to perform request to cat api", err, nil)
		return nil, err
	}

	bodyBytes, err := readSuccessBody(resp)
	if err != nil {
		clientLogger.Error("Received error response from cat api", err, port.Fields{"status_code": resp.StatusCode})
		return nil, err
	}

	// Валидируем сырое тело по схеме контракта до маппинга. Fail closed:
	// сломанная форма ответа - это ошибка операции, а не пустой список.
	if err := contracts.ValidatePayload(contracts.SearchImagesContract, bodyBytes); err != nil {
		clientLogger.Error("Cat api payload failed contract validation", err, nil)
		return nil, fmt.Errorf("invalid search images payload: %w", err)
	}

	var raws []RawCatDTO
	if err := json.Unmarshal(bodyBytes, &raws); err != nil {
		clientLogger.Error("Failed to decode response from cat api", err, nil)
		return nil, err
	}

	clientLogger.Info("Successfully received and decoded response", port.Fields{"images_count": len(raws)})

	return MapToCatEntities(raws), nil
}

// GetFavouriteCats запрашивает все избранное аккаунта и нормализует его.
func (c *Client) GetFavouriteCats(ctx context.Context) ([]domain.CatEntity, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	clientLogger := logger.WithFields(port.Fields{
		"component": "CatAPIClient",
		"method":    "GetFavouriteCats",
	})

	url := fmt.Sprintf("%s/favourites", c.baseURL)
	clientLogger.Debug("Sending request to cat api", port.Fields{"url": url})

	resp, err := c.doRequest(ctx, http.MethodGet, url, nil)
	if err != nil {
		clientLogger.Error("Failed to perform request to cat api", err, nil)
		return nil, err
	}

	bodyBytes, err := readSuccessBody(resp)
	if err != nil {
		clientLogger.Error("Received error response from cat api", err, port.Fields{"status_code": resp.StatusCode})
		return nil, err
	}

	if err := contracts.ValidatePayload(contracts.FavouriteRecordsContract, bodyBytes); err != nil {
		clientLogger.Error("Cat api payload failed contract validation", err, nil)
		return nil, fmt.Errorf("invalid favourite records payload: %w", err)
	}

	var raws []RawCatDTO
	if err := json.Unmarshal(bodyBytes, &raws); err != nil {
		clientLogger.Error("Failed to decode response from cat api", err, nil)
		return nil, err
	}

	clientLogger.Info("Successfully received and decoded response", port.Fields{"favourites_count": len(raws)})

	return MapToCatEntities(raws), nil
}

// SaveFavourite создает запись избранного и возвращает id новой записи.
func (c *Client) SaveFavourite(ctx context.Context, imageID string) (int64, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	clientLogger := logger.WithFields(port.Fields{
		"component": "CatAPIClient",
		"method":    "SaveFavourite",
		"image_id":  imageID,
	})

	reqBody, err := json.Marshal(PostFavouriteRequestDTO{ImageID: imageID})
	if err != nil {
		return 0, fmt.Errorf("failed to marshal request body: %w", err)
	}

	url := fmt.Sprintf("%s/favourites", c.baseURL)
	clientLogger.Debug("Sending request to cat api", port.Fields{"url": url})

	resp, err := c.doRequest(ctx, http.MethodPost, url, bytes.NewReader(reqBody))
	if err != nil {
		clientLogger.Error("Failed to perform request to cat api", err, nil)
		return 0, err
	}

	bodyBytes, err := readSuccessBody(resp)
	if err != nil {
		clientLogger.Error("Received error response from cat api", err, port.Fields{"status_code": resp.StatusCode})
		return 0, err
	}

	var created PostFavouriteResponseDTO
	if err := json.Unmarshal(bodyBytes, &created); err != nil {
		clientLogger.Error("Failed to decode response from cat api", err, nil)
		return 0, err
	}

	clientLogger.Info("Favourite record created", port.Fields{"favourite_id": created.ID})

	return created.ID, nil
}

// DeleteFavourite удаляет запись избранного по id записи (не изображения).
func (c *Client) DeleteFavourite(ctx context.Context, favouriteID int64) error {
	logger := contextkeys.LoggerFromContext(ctx)
	clientLogger := logger.WithFields(port.Fields{
		"component":    "CatAPIClient",
		"method":       "DeleteFavourite",
		"favourite_id": favouriteID,
	})

	url := fmt.Sprintf("%s/favourites/%d", c.baseURL, favouriteID)
	clientLogger.Debug("Sending request to cat api", port.Fields{"url": url})

	resp, err := c.doRequest(ctx, http.MethodDelete, url, nil)
	if err != nil {
		clientLogger.Error("Failed to perform request to cat api", err, nil)
		return err
	}

	if _, err := readSuccessBody(resp); err != nil {
		clientLogger.Error("Received error response from cat api", err, port.Fields{"status_code": resp.StatusCode})
		return err
	}

	clientLogger.Info("Favourite record deleted", nil)

	return nil
}
