package configs

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// CatAPIConfig хранит конфигурацию клиента внешнего Cat API.
type CatAPIConfig struct {
	BaseURL     string
	APIKey      string
	TimeoutMS   int
	RandomLimit int
}

// ServerConfig хранит конфигурацию HTTP-сервера фасада.
type ServerConfig struct {
	Port           string
	AllowedOrigins []string
}

type StdoutLogConfig struct {
	Level string // По умолчанию debug
}

type FluentBitConfig struct {
	Host    string
	Port    int
	Enabled bool
	Level   string // По умолчанию info
}

// AppConfig хранит всю конфигурацию приложения
type AppConfig struct {
	AppName      string
	CatAPI       CatAPIConfig
	Server       ServerConfig
	FluentBit    FluentBitConfig
	StdoutLogger StdoutLogConfig
}

// LoadConfig загружает конфигурацию из переменных окружения.
// Отсутствие CAT_API_BASE_URL или CAT_API_KEY - конфигурационная ошибка,
// падаем громко на старте, а не деградируем молча.
func LoadConfig(envPath ...string) (*AppConfig, error) {
	var err error
	if len(envPath) > 0 {
		err = godotenv.Load(envPath[0])
	} else {
		err = godotenv.Load()
	}
	if err != nil {
		// .env опционален: в контейнере конфигурация приходит через окружение
		log.Printf("Info: Could not load .env file (path: %v): %v.\n", envPath, err)
	}

	cfg := &AppConfig{}

	cfg.AppName = getEnvAsString("APP_NAME", "cat-gallery-service")

	cfg.CatAPI.BaseURL = os.Getenv("CAT_API_BASE_URL")
	if cfg.CatAPI.BaseURL == "" {
		return nil, fmt.Errorf("CAT_API_BASE_URL environment variable is required")
	}

	cfg.CatAPI.APIKey = os.Getenv("CAT_API_KEY")
	if cfg.CatAPI.APIKey == "" {
		return nil, fmt.Errorf("CAT_API_KEY environment variable is required")
	}

	cfg.CatAPI.TimeoutMS = getEnvAsInt("CAT_API_TIMEOUT_MS", 5000)
	cfg.CatAPI.RandomLimit = getEnvAsInt("RANDOM_CATS_LIMIT", 10)

	cfg.Server.Port = getEnvAsString("PORT", "8080")
	cfg.Server.AllowedOrigins = strings.Split(getEnvAsString("ALLOWED_ORIGINS", "http://localhost:5173"), ",")

	cfg.FluentBit.Enabled = getEnvAsBool("FLUENTBIT_ENABLED", false)
	if cfg.FluentBit.Enabled {
		cfg.FluentBit.Host = os.Getenv("FLUENTBIT_HOST")
		if cfg.FluentBit.Host == "" {
			log.Println("WARNING: FLUENTBIT_ENABLED is true, but FLUENTBIT_HOST is not set. Disabling Fluent Bit.")
			cfg.FluentBit.Enabled = false
		}

		cfg.FluentBit.Port = getEnvAsInt("FLUENTBIT_PORT", 24224)
		cfg.FluentBit.Level = getEnvAsString("FLUENTBIT_LOG_LEVEL", "info")
	}

	cfg.StdoutLogger.Level = getEnvAsString("STDOUT_LOG_LEVEL", "debug")

	return cfg, nil
}

// getEnvAsString читает переменную окружения как строку или возвращает значение по умолчанию
func getEnvAsString(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt читает переменную окружения как int или возвращает значение по умолчанию.
// Логирует ошибку, если переменная есть, но не может быть преобразована в int
func getEnvAsInt(key string, defaultValue int) int {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}

	valueInt, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: Environment variable %s (value: %s) could not be parsed as int: %v. Using default value: %d\n", key, valueStr, err, defaultValue)
		return defaultValue
	}
	return valueInt
}

// getEnvAsBool читает переменную окружения как bool или возвращает значение по умолчанию
func getEnvAsBool(key string, defaultValue bool) bool {
	valStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	valBool, err := strconv.ParseBool(valStr)
	if err != nil {
		log.Printf("Warning: Environment variable %s (value: %s) could not be parsed as bool: %v. Using default value: %t\n", key, valStr, err, defaultValue)
		return defaultValue
	}
	return valBool
}
