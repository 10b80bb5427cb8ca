package common

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration. It is constructed once at
// process start and passed explicitly into the engine; backend availability
// is a constructor-time decision, never a package-level flag.
type Config struct {
	OCR    OCRConfig
	Vision VisionConfig
	Engine EngineConfig
}

// OCRConfig holds settings for the local recognition backends.
type OCRConfig struct {
	Pdftotext string // binary name or absolute path; if empty -> "pdftotext"
	Pdftoppm  string // binary name or absolute path; if empty -> "pdftoppm"
	Tesseract string // binary name or absolute path; if empty -> "tesseract"

	TesseractLang string // default "deu"
	DPI           int    // rasterization DPI for scanned PDFs, default 300
	MaxPages      int    // 0 = no limit
	TessdataDir   string
}

// VisionConfig holds settings for the cloud vision backend.
type VisionConfig struct {
	APIKey  string // empty -> backend unavailable
	Model   string
	Timeout time.Duration
}

// EngineConfig holds orchestration settings.
type EngineConfig struct {
	// ConfidenceThreshold is the early-stop bound: once the running-best
	// analysis reaches it, remaining (costlier) backends are not invoked.
	ConfidenceThreshold float64
}

// LoadConfig loads configuration from environment variables.
func LoadConfig() *Config {
	return &Config{
		OCR: OCRConfig{
			Pdftotext:     getEnv("PDFTOTEXT_BIN", "pdftotext"),
			Pdftoppm:      getEnv("PDFTOPPM_BIN", "pdftoppm"),
			Tesseract:     getEnv("TESSERACT_BIN", "tesseract"),
			TesseractLang: getEnv("TESSERACT_LANG", "deu"),
			DPI:           getEnvAsInt("OCR_DPI", 300),
			MaxPages:      getEnvAsInt("OCR_MAX_PAGES", 0),
			TessdataDir:   getEnv("TESSDATA_PREFIX", ""),
		},
		Vision: VisionConfig{
			APIKey:  getEnv("GEMINI_API_KEY", ""),
			Model:   getEnv("GEMINI_MODEL", "gemini-2.0-flash"),
			Timeout: getEnvAsDuration("GEMINI_TIMEOUT", 45*time.Second),
		},
		Engine: EngineConfig{
			ConfidenceThreshold: getEnvAsFloat64("EXTRACT_CONFIDENCE_THRESHOLD", 2.0),
		},
	}
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsFloat64(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// Validate validates the loaded configuration.
func (c *Config) Validate() error {
	if c.OCR.DPI <= 0 {
		return NewAppError("CONFIG_ERROR", "OCR_DPI must be positive", ErrInvalidInput)
	}
	if c.OCR.MaxPages < 0 {
		return NewAppError("CONFIG_ERROR", "OCR_MAX_PAGES must not be negative", ErrInvalidInput)
	}
	if c.Engine.ConfidenceThreshold <= 0 {
		return NewAppError("CONFIG_ERROR", "EXTRACT_CONFIDENCE_THRESHOLD must be positive", ErrInvalidInput)
	}
	return nil
}
