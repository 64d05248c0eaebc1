package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// AppConfig содержит конфигурацию приложения
type AppConfig struct {
	ServerPort string
	GinMode    string
	DBPath     string
	MacrosPath string
	Serial     SerialConfig
	Logging    LoggerConfig
}

// SerialConfig содержит параметры последовательного порта и протокольные таймауты
type SerialConfig struct {
	Baud            int
	DetectTimeoutMs int // окно ожидания баннера GRBL
	PollIntervalMs  int // период запроса статуса '?'
	DispatchDelayMs int // пауза между командами после 'ok'
	JogRatePerSec   int // лимит команд джоггинга в секунду
}

// LoggerConfig содержит настройки логгера
type LoggerConfig struct {
	Enable     bool
	LogsDir    string
	Level      string
	SavingDays int
}

// LoadConfiguration загружает конфигурацию из .env файла или переменных окружения
func LoadConfiguration() (*AppConfig, error) {
	_ = godotenv.Load()

	config := &AppConfig{
		ServerPort: getEnv("APP_PORT", "8082"),
		GinMode:    getEnv("GIN_MODE", "debug"),
		DBPath:     getEnv("DB_PATH", "./grbl_jobs.db"),
		MacrosPath: getEnv("MACROS_PATH", "./macros.yaml"),
		Serial: SerialConfig{
			Baud:            getEnvAsInt("GRBL_BAUD", 115200),
			DetectTimeoutMs: getEnvAsInt("GRBL_DETECT_TIMEOUT_MS", 2000),
			PollIntervalMs:  getEnvAsInt("GRBL_POLL_INTERVAL_MS", 200),
			DispatchDelayMs: getEnvAsInt("GRBL_DISPATCH_DELAY_MS", 5),
			JogRatePerSec:   getEnvAsInt("GRBL_JOG_RATE_PER_SEC", 10),
		},
		Logging: LoggerConfig{
			Enable:     getEnvAsBool("LOGGER_ENABLE", true),
			LogsDir:    getEnv("LOGGER_LOGS_DIR", "./logs"),
			Level:      getEnv("LOGGER_LOG_LEVEL", "DEBUG"),
			SavingDays: getEnvAsInt("LOGGER_SAVING_DAYS", 7),
		},
	}

	return config, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvAsInt(name string, defaultValue int) int {
	valueStr := getEnv(name, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	val, _ := strconv.ParseBool(value)
	return val
}
