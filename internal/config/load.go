package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	defaultAPIVersion     = "2025-04"
	defaultBackupDir      = "price_backups"
	defaultTimeoutSeconds = 30
	defaultPacingDelayMs  = 500
	defaultPacingMode     = "fixed"
)

// fileConfig holds the non-secret knobs that may come from config.yaml.
type fileConfig struct {
	APIVersion string `yaml:"api_version"`
	BackupDir  string `yaml:"backup_dir"`
	Pacing     struct {
		Mode      string `yaml:"mode"`
		DelayMs   int    `yaml:"delay_ms"`
		PerMinute int    `yaml:"per_minute"`
	} `yaml:"pacing"`
}

// Load reads configuration from an optional config.yaml, a .env file and
// the environment. Environment variables win over the yaml file.
func Load() (*Config, error) {
	_ = godotenv.Load()

	fc, err := loadFile("config.yaml")
	if err != nil {
		return nil, err
	}

	shop, err := requiredString("SHOP_NAME")
	if err != nil {
		return nil, err
	}
	token, err := requiredString("ACCESS_TOKEN")
	if err != nil {
		return nil, err
	}

	timeoutSeconds, err := intWithDefault("HTTP_TIMEOUT_SECONDS", defaultTimeoutSeconds)
	if err != nil {
		return nil, err
	}

	apiVersion := stringWithDefault("API_VERSION", withDefault(fc.APIVersion, defaultAPIVersion))
	backupDir := stringWithDefault("BACKUP_DIR", withDefault(fc.BackupDir, defaultBackupDir))
	indexPath := stringWithDefault("INDEX_DB_PATH", filepath.Join(backupDir, "backups.db"))

	pacingMode := stringWithDefault("PACING_MODE", withDefault(fc.Pacing.Mode, defaultPacingMode))
	if pacingMode != "fixed" && pacingMode != "rate" {
		return nil, fmt.Errorf("invalid PACING_MODE %q (want fixed or rate)", pacingMode)
	}
	delayMs, err := intWithDefault("PACING_DELAY_MS", withDefaultInt(fc.Pacing.DelayMs, defaultPacingDelayMs))
	if err != nil {
		return nil, err
	}
	perMinute, err := intWithDefault("PACING_PER_MINUTE", withDefaultInt(fc.Pacing.PerMinute, 120))
	if err != nil {
		return nil, err
	}

	return &Config{
		Shopify: ShopifyConfig{
			ShopDomain: shop,
			Token:      token,
			APIVersion: apiVersion,
			Timeout:    time.Duration(timeoutSeconds) * time.Second,
		},
		Backup: BackupConfig{
			Dir:         backupDir,
			IndexDBPath: indexPath,
		},
		Pacing: PacingConfig{
			Mode:      pacingMode,
			Delay:     time.Duration(delayMs) * time.Millisecond,
			PerMinute: perMinute,
		},
		Telegram: TelegramBotConfig{
			ChatId: os.Getenv("TELEGRAM_CHAT_ID"),
			Token:  os.Getenv("TELEGRAM_BOT_TOKEN"),
		},
	}, nil
}

func loadFile(path string) (fileConfig, error) {
	var fc fileConfig
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fc, nil
		}
		return fc, fmt.Errorf("read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, &fc); err != nil {
		return fc, fmt.Errorf("parse %s: %w", path, err)
	}
	return fc, nil
}

func withDefault(value, def string) string {
	if value == "" {
		return def
	}
	return value
}

func withDefaultInt(value, def int) int {
	if value == 0 {
		return def
	}
	return value
}
