package config

import "time"

type Config struct {
	Shopify  ShopifyConfig
	Backup   BackupConfig
	Pacing   PacingConfig
	Telegram TelegramBotConfig
}

type ShopifyConfig struct {
	ShopDomain string
	Token      string
	APIVersion string
	Timeout    time.Duration
	// Mock short-circuits every mutation to a logged no-op. It is set per
	// operation from the menu, never globally.
	Mock bool
}

type BackupConfig struct {
	Dir         string
	IndexDBPath string
}

type PacingConfig struct {
	// Mode is "fixed" (constant delay between items) or "rate"
	// (token bucket).
	Mode      string
	Delay     time.Duration
	PerMinute int
}

type TelegramBotConfig struct {
	ChatId string
	Token  string
}
