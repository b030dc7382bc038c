package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	APIBaseURL     string
	HTTPTimeout    time.Duration
	DownloadDir    string
	AutoCloseDelay time.Duration
	UseMock        bool
	LogColors      bool
}

func LoadConfig() (*Config, error) {
	err := godotenv.Load()
	if err != nil {
		log.Println("Error loading .env file, using environment variables")
	}

	return &Config{
		APIBaseURL:     getEnv("API_BASE_URL", "http://localhost:8000"),
		HTTPTimeout:    time.Duration(getEnvInt("HTTP_TIMEOUT_SECONDS", 30)) * time.Second,
		DownloadDir:    getEnv("DOWNLOAD_DIR", "."),
		AutoCloseDelay: time.Duration(getEnvInt("AUTO_CLOSE_MS", 1500)) * time.Millisecond,
		UseMock:        getEnv("USE_MOCK", "false") == "true",
		LogColors:      getEnv("LOG_COLORS", "true") == "true",
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if n, err := strconv.Atoi(value); err == nil && n > 0 {
			return n
		}
		log.Printf("Invalid value for %s, using default %d", key, defaultValue)
	}
	return defaultValue
}
