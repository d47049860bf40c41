package catapi

import "fmt"

// HTTPError - ответ сервера с не-2xx статусом. Все статусы трактуются
// одинаково, без спецобработки 404/409 и т.п.
type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("cat api returned non-success status code %d: %s", e.StatusCode, e.Body)
}
