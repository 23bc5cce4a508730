package config

import (
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/incomemap/dashboard/apps/api/internal/business/income"
)

// Dataset sources.
const (
	SourceFile      = "file"
	SourceURL       = "url"
	SourceKaggle    = "kaggle"
	SourceFirestore = "firestore"
)

// Config holds runtime configuration loaded from environment variables.
type Config struct {
	Port           string
	GinMode        string
	AllowedOrigins string

	DatasetSource   string
	DatasetPath     string
	DatasetURL      string
	DatasetStrict   bool
	DownloadTimeout time.Duration
	KaggleDataset   string
	KaggleFile      string
	KaggleUsername  string
	KaggleKey       string

	// IncomeBins overrides the default color scale, e.g. "0:#ff0000,25000:#00de9a".
	IncomeBins string

	FirebaseProjectID   string
	FirebaseCredsBase64 string
	FirebaseCredsFile   string
}

// Load reads environment variables into a Config with sensible defaults.
func Load() (Config, error) {
	cfg := Config{
		Port:                getEnv("PORT", "8080"),
		GinMode:             getEnv("GIN_MODE", "release"),
		AllowedOrigins:      strings.TrimSpace(os.Getenv("ALLOWED_ORIGINS")),
		DatasetSource:       strings.ToLower(getEnv("DATASET_SOURCE", SourceKaggle)),
		DatasetPath:         strings.TrimSpace(os.Getenv("DATASET_PATH")),
		DatasetURL:          strings.TrimSpace(os.Getenv("DATASET_URL")),
		KaggleDataset:       getEnv("KAGGLE_DATASET", "goldenoakresearch/us-household-income-stats-geo-locations"),
		KaggleFile:          getEnv("KAGGLE_FILE", "kaggle_income.csv"),
		KaggleUsername:      strings.TrimSpace(os.Getenv("KAGGLE_USERNAME")),
		KaggleKey:           strings.TrimSpace(os.Getenv("KAGGLE_KEY")),
		IncomeBins:          strings.TrimSpace(os.Getenv("INCOME_BINS")),
		FirebaseProjectID:   strings.TrimSpace(os.Getenv("FIREBASE_PROJECT_ID")),
		FirebaseCredsBase64: strings.TrimSpace(os.Getenv("FIREBASE_CREDS_BASE64")),
		FirebaseCredsFile:   strings.TrimSpace(os.Getenv("FIREBASE_CREDS_FILE")),
	}

	strict, err := parseBoolEnv("DATASET_STRICT", false)
	if err != nil {
		return Config{}, fmt.Errorf("parse DATASET_STRICT: %w", err)
	}
	cfg.DatasetStrict = strict

	timeout, err := parseDurationEnv("DOWNLOAD_TIMEOUT", 2*time.Minute)
	if err != nil {
		return Config{}, fmt.Errorf("parse DOWNLOAD_TIMEOUT: %w", err)
	}
	cfg.DownloadTimeout = timeout

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate ensures required fields are present for the selected dataset source.
func (c Config) Validate() error {
	if c.Port == "" {
		return errors.New("PORT is required")
	}
	switch c.DatasetSource {
	case SourceFile:
		if c.DatasetPath == "" {
			return errors.New("DATASET_PATH is required when DATASET_SOURCE=file")
		}
	case SourceURL:
		if c.DatasetURL == "" {
			return errors.New("DATASET_URL is required when DATASET_SOURCE=url")
		}
	case SourceKaggle:
		if c.KaggleUsername == "" || c.KaggleKey == "" {
			return errors.New("KAGGLE_USERNAME and KAGGLE_KEY are required when DATASET_SOURCE=kaggle")
		}
	case SourceFirestore:
		if err := c.ValidateFirestore(); err != nil {
			return err
		}
	default:
		return fmt.Errorf("DATASET_SOURCE must be one of: file, url, kaggle, firestore (got %q)", c.DatasetSource)
	}
	if c.DownloadTimeout <= 0 {
		return errors.New("DOWNLOAD_TIMEOUT must be positive")
	}
	return nil
}

// ValidateFirestore checks the settings needed to open a Firestore client.
func (c Config) ValidateFirestore() error {
	if c.FirebaseProjectID == "" {
		return errors.New("FIREBASE_PROJECT_ID is required")
	}
	if c.FirebaseCredsBase64 == "" && c.FirebaseCredsFile == "" {
		return errors.New("provide FIREBASE_CREDS_BASE64 or FIREBASE_CREDS_FILE for Firestore auth")
	}
	return nil
}

// BinTable returns the configured income color scale. A malformed INCOME_BINS is an error
// so the server refuses to start instead of coloring the map wrongly.
func (c Config) BinTable() (income.BinTable, error) {
	if c.IncomeBins == "" {
		return income.DefaultBinTable(), nil
	}
	table, err := income.ParseBinTable(c.IncomeBins)
	if err != nil {
		return income.BinTable{}, fmt.Errorf("parse INCOME_BINS: %w", err)
	}
	return table, nil
}

// FirebaseCredentialsJSON returns the service account JSON bytes and the source used.
func (c Config) FirebaseCredentialsJSON() ([]byte, string, error) {
	if c.FirebaseCredsBase64 != "" {
		decoded, err := base64.StdEncoding.DecodeString(c.FirebaseCredsBase64)
		if err != nil {
			return nil, "base64", fmt.Errorf("decode FIREBASE_CREDS_BASE64: %w", err)
		}
		return decoded, "base64", nil
	}
	if c.FirebaseCredsFile != "" {
		data, err := os.ReadFile(c.FirebaseCredsFile)
		if err != nil {
			return nil, "file", fmt.Errorf("read FIREBASE_CREDS_FILE: %w", err)
		}
		return data, "file", nil
	}
	return nil, "", errors.New("no firebase credentials found")
}

func getEnv(key, defaultVal string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return defaultVal
}

func parseBoolEnv(key string, defaultVal bool) (bool, error) {
	val := strings.TrimSpace(os.Getenv(key))
	if val == "" {
		return defaultVal, nil
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return false, err
	}
	return parsed, nil
}

func parseDurationEnv(key string, defaultVal time.Duration) (time.Duration, error) {
	val := strings.TrimSpace(os.Getenv(key))
	if val == "" {
		return defaultVal, nil
	}
	return time.ParseDuration(val)
}
