package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/xxxsen/common/logger"
)

type Config struct {
	Port          int               `json:"port"`
	CORSAllowlist []string          `json:"cors_allowlist"`
	LogConfig     logger.LogConfig  `json:"log_config"`
	Database      DatabaseConfig    `json:"database"`
	FileStore     FileStoreConfig   `json:"file_store"`
	OCR           OCRConfig         `json:"ocr"`
	Speech        SpeechConfig      `json:"speech"`
	Acquisition   AcquisitionConfig `json:"acquisition"`
}

type DatabaseConfig struct {
	DSN      string `json:"dsn"`
	Host     string `json:"host"`
	Port     int    `json:"port"`
	User     string `json:"user"`
	Password string `json:"password"`
	DBName   string `json:"dbname"`
	SSLMode  string `json:"sslmode"`
}

type FileStoreConfig struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

type OCRConfig struct {
	TessdataDir string `json:"tessdata_dir"`
}

type SpeechConfig struct {
	Gemini  GeminiConfig      `json:"gemini"`
	Whisper WhisperConfig     `json:"whisper"`
	Local   LocalSpeechConfig `json:"local"`
}

type GeminiConfig struct {
	APIKey string `json:"api_key"`
	Model  string `json:"model"`
}

type WhisperConfig struct {
	APIKey  string `json:"api_key"`
	BaseURL string `json:"base_url"`
	Model   string `json:"model"`
}

type LocalSpeechConfig struct {
	Binary string `json:"binary"`
	Model  string `json:"model"`
}

type AcquisitionConfig struct {
	SamplePages       int    `json:"sample_pages"`
	JobQueueSize      int    `json:"job_queue_size"`
	JobRetentionHours int    `json:"job_retention_hours"`
	CleanupSpec       string `json:"cleanup_spec"`
}

func Load(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	var cfg Config
	if err := json.NewDecoder(file).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if cfg.Port == 0 {
		return nil, fmt.Errorf("port is required")
	}
	if cfg.Database.DSN == "" && cfg.Database.Host == "" {
		return nil, fmt.Errorf("database.dsn or database.host is required")
	}
	if cfg.LogConfig.Level == "" {
		cfg.LogConfig.Level = "info"
	}
	if cfg.FileStore.Type == "" {
		cfg.FileStore.Type = "local"
	}
	if cfg.Speech.Gemini.Model == "" {
		cfg.Speech.Gemini.Model = "gemini-2.0-flash"
	}
	if cfg.Speech.Whisper.Model == "" {
		cfg.Speech.Whisper.Model = "whisper-1"
	}
	if cfg.Acquisition.SamplePages <= 0 {
		cfg.Acquisition.SamplePages = 3
	}
	if cfg.Acquisition.JobQueueSize <= 0 {
		cfg.Acquisition.JobQueueSize = 64
	}
	if cfg.Acquisition.JobRetentionHours <= 0 {
		cfg.Acquisition.JobRetentionHours = 24
	}
	if cfg.Acquisition.CleanupSpec == "" {
		cfg.Acquisition.CleanupSpec = "0 * * * *"
	}
	return &cfg, nil
}
