package internal

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"cat-gallery-service/internal/adapters/catapi"
	logger_adapter "cat-gallery-service/internal/adapters/logger"
	"cat-gallery-service/internal/adapters/memstate"
	"cat-gallery-service/internal/adapters/notify"
	"cat-gallery-service/internal/adapters/rest"
	"cat-gallery-service/internal/configs"
	"cat-gallery-service/internal/contextkeys"
	"cat-gallery-service/internal/core/port"
	"cat-gallery-service/internal/core/usecase"

	"github.com/fluent/fluent-logger-golang/fluent"
)

// App – структура приложения
type App struct {
	config       *configs.AppConfig
	server       *rest.Server
	logger       port.LoggerPort
	baseLogger   port.LoggerPort
	fluentClient *fluent.Fluent

	loadRandomUC     *usecase.LoadRandomCatsUseCase
	loadFavouritesUC *usecase.LoadFavouriteCatsUseCase
}

// NewApp создает новый экземпляр приложения.
// Это "Composition Root", где все зависимости создаются и связываются.
func NewApp() (*App, error) {
	appConfig, err := configs.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("error loading application configuration: %w", err)
	}

	// --- 1. ИНИЦИАЛИЗАЦИЯ ЛОГГЕРОВ ---
	var activeLoggers []port.LoggerPort

	slogCfg := logger_adapter.SlogConfig{
		Level:    parseLogLevel(appConfig.StdoutLogger.Level),
		IsJSON:   false, // текстовый формат
		UseColor: true,
	}
	stdoutLogger := logger_adapter.NewSlogAdapter(slogCfg)
	activeLoggers = append(activeLoggers, stdoutLogger)

	// Добавляем Fluent Bit логгер, если он включен в конфигурации
	var fluentClient *fluent.Fluent
	if appConfig.FluentBit.Enabled {
		fluentClient, err = logger_adapter.NewFluentClient(logger_adapter.FluentConfig{
			Host:      appConfig.FluentBit.Host,
			Port:      appConfig.FluentBit.Port,
			TagPrefix: appConfig.AppName,
		})
		if err != nil {
			stdoutLogger.Error("Failed to create fluentbit client", err, nil)
			return nil, fmt.Errorf("failed to create fluentbit client: %w", err)
		}

		fluentAdapter, err := logger_adapter.NewFluentLoggerAdapter(fluentClient, parseLogLevel(appConfig.FluentBit.Level))
		if err != nil {
			stdoutLogger.Error("Failed to create fluentbit adapter", err, nil)
			fluentClient.Close()
			return nil, err
		}
		activeLoggers = append(activeLoggers, fluentAdapter)
	}

	// Создаем наш композитный логгер
	multiLogger, err := logger_adapter.NewMultiloggerAdapter(activeLoggers...)
	if err != nil {
		return nil, fmt.Errorf("failed to create multi-logger: %w", err)
	}

	// --- 2. БАЗОВЫЙ ЛОГГЕР ПРИЛОЖЕНИЯ С КОНТЕКСТОМ ---
	baseLogger := multiLogger.WithFields(port.Fields{
		"service_name": appConfig.AppName,
	})

	appLogger := baseLogger.WithFields(port.Fields{"component": "app"})
	appLogger.Info("Logger system initialized", port.Fields{
		"active_loggers": len(activeLoggers), "fluent_enabled": appConfig.FluentBit.Enabled,
	})

	// --- 3. ИСХОДЯЩИЕ АДАПТЕРЫ ---
	catAPIClient, err := catapi.NewClient(
		appConfig.CatAPI.BaseURL,
		appConfig.CatAPI.APIKey,
		time.Duration(appConfig.CatAPI.TimeoutMS)*time.Millisecond,
	)
	if err != nil {
		appLogger.Error("Failed to create Cat API client", err, nil)
		return nil, fmt.Errorf("failed to initialize cat api client: %w", err)
	}
	appLogger.Info("Cat API client initialized.", port.Fields{"base_url": appConfig.CatAPI.BaseURL})

	// --- 4. СОСТОЯНИЕ ---
	// Создается один раз, пустое; живет только в памяти процесса.
	collectionsState := memstate.NewCollectionsState()

	// --- 5. USE CASES (ядро бизнес-логики) ---
	loadRandomUC := usecase.NewLoadRandomCatsUseCase(catAPIClient, collectionsState)
	loadFavouritesUC := usecase.NewLoadFavouriteCatsUseCase(catAPIClient, collectionsState)
	saveFavouriteUC := usecase.NewSaveFavouriteCatUseCase(catAPIClient, collectionsState)
	deleteFavouriteUC := usecase.NewDeleteFavouriteCatUseCase(catAPIClient, collectionsState)
	appLogger.Info("All use cases initialized.", nil)

	// --- 6. ВХОДЯЩИЕ АДАПТЕРЫ ---
	notificationHub := notify.NewHub(baseLogger)
	catHandlers := rest.NewCatHandlers(
		loadRandomUC,
		loadFavouritesUC,
		saveFavouriteUC,
		deleteFavouriteUC,
		collectionsState,
		notificationHub,
		appConfig.CatAPI.RandomLimit,
	)
	notificationsHandler := rest.NewNotificationsHandler(notificationHub)

	server := rest.NewServer(appConfig.Server.Port, appConfig.Server.AllowedOrigins, catHandlers, notificationsHandler, baseLogger)

	return &App{
		config:           appConfig,
		server:           server,
		logger:           appLogger,
		baseLogger:       baseLogger,
		fluentClient:     fluentClient,
		loadRandomUC:     loadRandomUC,
		loadFavouritesUC: loadFavouritesUC,
	}, nil
}

// preloadCollections запускает обе стартовые загрузки конкурентно.
// Они независимы: отказ одной не мешает другой заполнить свою коллекцию.
func (a *App) preloadCollections(ctx context.Context) {
	preloadLogger := a.baseLogger.WithFields(port.Fields{"component": "preload"})
	ctx = contextkeys.ContextWithLogger(ctx, preloadLogger)

	go func() {
		if _, err := a.loadRandomUC.Execute(ctx, a.config.CatAPI.RandomLimit); err != nil {
			preloadLogger.Warn("Initial random cats load failed", port.Fields{"error": err.Error()})
		}
	}()

	go func() {
		if _, err := a.loadFavouritesUC.Execute(ctx); err != nil {
			preloadLogger.Warn("Initial favourite cats load failed", port.Fields{"error": err.Error()})
		}
	}()
}

// Run запускает приложение и управляет его жизненным циклом
func (a *App) Run() error {
	serverErrors := make(chan error, 1)

	go func() {
		if err := a.server.Start(); err != nil {
			serverErrors <- err
		}
	}()

	// Стартовый прогрев: обе коллекции начинают загружаться сразу,
	// не дожидаясь первого запроса фасада.
	a.preloadCollections(context.Background())

	// Настройка Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	a.logger.Info("Application running. Waiting for signals or server error...", nil)
	select {
	case sig := <-quit:
		a.logger.Warn("Received signal, shutting down", port.Fields{"signal": sig.String()})
	case err := <-serverErrors:
		a.logger.Error("HTTP server failed, shutting down", err, nil)
	}

	// Создаем контекст с таймаутом для завершения
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.server.Stop(ctx); err != nil {
		a.logger.Error("Server shutdown failed", err, nil)
		return err
	}

	a.logger.Info("Application shut down gracefully.", nil)

	if a.fluentClient != nil {
		if err := a.fluentClient.Close(); err != nil {
			log.Printf("App: Error closing fluent client: %v\n", err)
		}
	}

	return nil
}

func parseLogLevel(levelStr string) slog.Level {
	switch strings.ToLower(levelStr) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		// Возвращаем безопасное значение по умолчанию и логируем предупреждение
		log.Printf("Warning: Unknown log level '%s'. Defaulting to 'info'.", levelStr)
		return slog.LevelInfo
	}
}
