package rest

import (
	"encoding/json"
	"fmt"
	"net/http"

	"cat-gallery-service/internal/adapters/notify"
	"cat-gallery-service/internal/contextkeys"
	"cat-gallery-service/internal/core/port"
)

// NotificationsHandler раздает транзиентные уведомления (аналог toast)
// подписчикам по Server-Sent Events.
type NotificationsHandler struct {
	hub *notify.Hub
}

// NewNotificationsHandler создает новый экземпляр NotificationsHandler
func NewNotificationsHandler(hub *notify.Hub) *NotificationsHandler {
	return &NotificationsHandler{hub: hub}
}

// HandleSubscribe - обработчик для GET /api/v1/notifications/subscribe
func (h *NotificationsHandler) HandleSubscribe(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "HandleSubscribe"})

	flusher, ok := w.(http.Flusher)
	if !ok {
		WriteJSONError(w, http.StatusInternalServerError, "Streaming is not supported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	notifications, unsubscribe := h.hub.Subscribe()
	defer unsubscribe()

	logger.Info("Notification subscriber connected", nil)

	for {
		select {
		case <-r.Context().Done():
			logger.Debug("Notification subscriber disconnected", nil)
			return
		case notification, ok := <-notifications:
			if !ok {
				return
			}
			payload, err := json.Marshal(notification)
			if err != nil {
				logger.Error("Failed to marshal notification", err, nil)
				continue
			}
			fmt.Fprintf(w, "data: %s\n\n", payload)
			flusher.Flush()
		}
	}
}
