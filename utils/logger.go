package utils

import (
	"log"
	"os"
)

// LoggerConfig определяет конфигурацию для логгера
type LoggerConfig struct {
	// Формат логов (текст/json)
	Format string
	// Выходной поток (os.Stdout, файл и т.д.)
	Output *os.File
	// Включить/выключить цвета для консоли
	EnableColors bool
}

// InitLogger инициализирует и возвращает логгер
func InitLogger(config ...LoggerConfig) *log.Logger {
	var cfg LoggerConfig
	if len(config) > 0 {
		cfg = config[0]
	}

	// Установка вывода по умолчанию
	if cfg.Output == nil {
		cfg.Output = os.Stdout
	}

	// Создаем префикс для логов
	prefix := "[Study Desk] "

	// Настройка формата логов
	var logger *log.Logger
	if cfg.Format == "json" {
		logger = log.New(cfg.Output, prefix, log.LstdFlags|log.LUTC)
	} else {
		if cfg.EnableColors {
			prefix = "\033[36m" + prefix + "\033[0m" // Голубой цвет
		}
		logger = log.New(cfg.Output, prefix, log.LstdFlags|log.LUTC)
	}

	return logger
}

// StatusColor возвращает цвет для статуса ответа
func StatusColor(status int) string {
	switch {
	case status >= 500:
		return "\033[31m" // Красный
	case status >= 400:
		return "\033[33m" // Желтый
	case status >= 300:
		return "\033[36m" // Голубой
	case status >= 200:
		return "\033[32m" // Зеленый
	default:
		return "\033[37m" // Белый
	}
}

// MethodColor возвращает цвет для HTTP метода
func MethodColor(method string) string {
	switch method {
	case "GET":
		return "\033[34m" // Синий
	case "POST":
		return "\033[33m" // Желтый
	case "PUT":
		return "\033[36m" // Голубой
	case "DELETE":
		return "\033[31m" // Красный
	case "PATCH":
		return "\033[32m" // Зеленый
	default:
		return "\033[37m" // Белый
	}
}
