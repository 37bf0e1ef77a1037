package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/apex/log"
	"github.com/joho/godotenv"
)

// Источники справочника центров проверки
const (
	FacilitySourceStatic = "static"
	FacilitySourceAPI    = "api"
)

type Config struct {
	TelegramToken string

	AnalysisURL     string
	AnalysisToken   string
	AnalysisTimeout time.Duration

	HTTPAddr    string
	DatabaseDSN string

	FacilitySource string
	FacilitiesFile string
	FacilityLimit  int

	ReportFontPath string
	LogLevel       log.Level
}

func Load() (*Config, error) {
	// Загружаем .env файл (игнорируем ошибку если файла нет)
	_ = godotenv.Load()

	cfg := &Config{
		TelegramToken:  os.Getenv("TELEGRAM_TOKEN"),
		AnalysisURL:    os.Getenv("ANALYSIS_API_URL"),
		AnalysisToken:  os.Getenv("ANALYSIS_API_TOKEN"),
		HTTPAddr:       getenv("HTTP_ADDR", ":8080"),
		DatabaseDSN:    os.Getenv("DATABASE_DSN"),
		FacilitySource: getenv("FACILITY_SOURCE", FacilitySourceStatic),
		FacilitiesFile: os.Getenv("FACILITIES_FILE"),
		ReportFontPath: os.Getenv("REPORT_FONT_PATH"),
	}

	timeout, err := time.ParseDuration(getenv("ANALYSIS_TIMEOUT", "30s"))
	if err != nil {
		return nil, fmt.Errorf("ANALYSIS_TIMEOUT: %w", err)
	}
	cfg.AnalysisTimeout = timeout

	limit, err := strconv.Atoi(getenv("FACILITY_LIMIT", "5"))
	if err != nil {
		return nil, fmt.Errorf("FACILITY_LIMIT: %w", err)
	}
	cfg.FacilityLimit = limit

	level, err := log.ParseLevel(getenv("LOG_LEVEL", "info"))
	if err != nil {
		return nil, fmt.Errorf("LOG_LEVEL: %w", err)
	}
	cfg.LogLevel = level

	switch cfg.FacilitySource {
	case FacilitySourceStatic:
	case FacilitySourceAPI:
		if cfg.AnalysisURL == "" {
			return nil, fmt.Errorf("FACILITY_SOURCE=api requires ANALYSIS_API_URL")
		}
	default:
		return nil, fmt.Errorf("FACILITY_SOURCE: unknown source %q", cfg.FacilitySource)
	}

	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
