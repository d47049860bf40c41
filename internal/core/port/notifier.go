package port

import "cat-gallery-service/internal/core/domain"

// NotifierPort - канал транзиентных уведомлений для пользователя.
// Сама доставка (SSE, toast и т.п.) - забота внешнего адаптера,
// ядру важен только факт успеха/ошибки и текст сообщения.
type NotifierPort interface {
	Notify(notification domain.Notification)
}
