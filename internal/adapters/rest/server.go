package rest

import (
	"context"
	"fmt"
	"net/http"

	core_ports "cat-gallery-service/internal/core/port"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

type Server struct {
	httpServer *http.Server
	logger     core_ports.LoggerPort
}

// NewServer создает и настраивает главный роутер и HTTP-сервер.
func NewServer(port string, allowedOrigins []string, handlers *CatHandlers, notifications *NotificationsHandler, baseLogger core_ports.LoggerPort) *Server {
	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(LoggerMiddleware(baseLogger)) // Логирует каждый запрос (метод, путь, время выполнения)
	r.Use(middleware.Recoverer)         // Перехватывает паники и возвращает 500 ошибку, чтобы сервер не упал

	r.Use(cors.Handler(cors.Options{
		// AllowedOrigins - домены SPA, с которых разрешены запросы
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Trace-ID"},
		AllowCredentials: true,
		// На сколько секунд браузер может кэшировать результат preflight-запроса
		MaxAge: 300,
	}))

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/cats", func(r chi.Router) {
			r.Get("/state", handlers.HandleGetState)
			r.Post("/random/refresh", handlers.HandleRefreshRandom)
			r.Post("/favourites/refresh", handlers.HandleRefreshFavourites)
			r.Post("/favourites", handlers.HandleSaveFavourite)
			r.Delete("/favourites/{favouriteId}", handlers.HandleDeleteFavourite)
			r.Post("/retry", handlers.HandleRetry)
			r.Get("/{imageId}/favourite-status", handlers.HandleFavouriteStatus)
		})

		r.Get("/notifications/subscribe", notifications.HandleSubscribe)
	})

	return &Server{
		httpServer: &http.Server{
			Addr:    ":" + port,
			Handler: r,
		},
		logger: baseLogger,
	}
}

// Start запускает HTTP-сервер
func (s *Server) Start() error {
	s.logger.Info("Starting REST API server", core_ports.Fields{"address": s.httpServer.Addr})
	// ListenAndServe будет работать, пока не получит ошибку или команду Shutdown
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		s.logger.Error("Could not start server", err, nil)
		return fmt.Errorf("could not start server: %w", err)
	}
	return nil
}

// Stop корректно останавливает сервер
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Stopping REST API server...", nil)
	return s.httpServer.Shutdown(ctx)
}
