package notify

import (
	"sync"

	"cat-gallery-service/internal/core/domain"
	"cat-gallery-service/internal/core/port"
)

// Hub - внутрипроцессный канал уведомлений. Фасад публикует сюда
// success/error сообщения по итогам save/delete, а SSE-эндпоинт раздает их
// подписчикам. Доставка best-effort: медленный подписчик теряет сообщение,
// а не блокирует публикацию.
type Hub struct {
	mu          sync.Mutex
	subscribers map[chan domain.Notification]struct{}
	logger      port.LoggerPort
}

// NewHub создает новый экземпляр Hub
func NewHub(logger port.LoggerPort) *Hub {
	return &Hub{
		subscribers: make(map[chan domain.Notification]struct{}),
		logger:      logger.WithFields(port.Fields{"component": "notify_hub"}),
	}
}

// Notify рассылает уведомление всем текущим подписчикам.
func (h *Hub) Notify(notification domain.Notification) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.logger.Debug("Publishing notification", port.Fields{
		"type":        string(notification.Type),
		"subscribers": len(h.subscribers),
	})

	for ch := range h.subscribers {
		select {
		case ch <- notification:
		default:
			// Буфер подписчика переполнен - пропускаем, уведомления транзиентные.
		}
	}
}

// Subscribe регистрирует подписчика. Возвращенную функцию нужно вызвать
// при отключении клиента, иначе канал останется в реестре.
func (h *Hub) Subscribe() (<-chan domain.Notification, func()) {
	ch := make(chan domain.Notification, 8)

	h.mu.Lock()
	h.subscribers[ch] = struct{}{}
	h.mu.Unlock()

	unsubscribe := func() {
		h.mu.Lock()
		delete(h.subscribers, ch)
		h.mu.Unlock()
		close(ch)
	}

	return ch, unsubscribe
}
