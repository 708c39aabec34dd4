// internal/config/config.go
package config

import (
	"log"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"stallpos/internal/logger"
)

// Settings shared across the app, populated by LoadEnv/ConfigurePaths.
var (
	dataDirectory string
	dbPath        string
	logsDirectory string

	SheetsWebhookURL string // Apps Script /exec URL; empty disables sync
	SheetsToken      string // optional shared secret sent with each order
	BootstrapPIN     string // seeds the manager PIN on first run, optional
)

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// LoadEnv reads the .env file, falling back to system environment variables.
func LoadEnv() {
	wd, err := os.Getwd()
	if err != nil {
		log.Printf("Could not determine working directory: %v", err)
	}

	if err := godotenv.Load(".env"); err != nil {
		log.Printf("No .env file found in %s. Using system environment variables.", wd)
	} else {
		log.Printf("Loaded environment variables from .env file in %s", wd)
	}

	SheetsWebhookURL = os.Getenv("SHEETS_WEBHOOK_URL")
	SheetsToken = os.Getenv("SHEETS_TOKEN")
	BootstrapPIN = os.Getenv("MANAGER_PIN")
}

// ConfigurePaths sets up the data and log directories.
func ConfigurePaths() {
	dataDirectory = getEnv("DATA_DIRECTORY", "./data")
	logsDirectory = getEnv("LOGS_DIRECTORY", "./logs")
	dbPath = getEnv("DB_PATH", filepath.Join(dataDirectory, "stallpos.db"))

	if err := os.MkdirAll(dataDirectory, 0775); err != nil {
		logger.LogFatal("Failed to create data directory %q: %v", dataDirectory, err)
	}
}

// LoggerConfig returns a logger.Config populated from environment.
func LoggerConfig() logger.Config {
	return logger.Config{
		LogsDirectory: getEnv("LOGS_DIRECTORY", "./logs"),
		LogFileFormat: getEnv("LOG_FILE_FORMAT", "stallpos_%s.log"),
		TimeZone:      getEnv("TIME_ZONE", "Local"),
	}
}

// ServerAddress builds the listen address from environment variables.
func ServerAddress() string {
	host := getEnv("SERVER_HOST", "127.0.0.1")
	port := getEnv("SERVER_PORT", "5052")
	return host + ":" + port
}

func DataDirectory() string {
	return dataDirectory
}

func DBPath() string {
	return dbPath
}

func LogsDirectory() string {
	return logsDirectory
}
