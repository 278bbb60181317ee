package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("SHOP_NAME", "test-shop.myshopify.com")
	t.Setenv("ACCESS_TOKEN", "shpat_test")
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "test-shop.myshopify.com", cfg.Shopify.ShopDomain)
	assert.Equal(t, "shpat_test", cfg.Shopify.Token)
	assert.Equal(t, "2025-04", cfg.Shopify.APIVersion)
	assert.Equal(t, 30*time.Second, cfg.Shopify.Timeout)
	assert.False(t, cfg.Shopify.Mock)

	assert.Equal(t, "price_backups", cfg.Backup.Dir)
	assert.Equal(t, "price_backups/backups.db", cfg.Backup.IndexDBPath)

	assert.Equal(t, "fixed", cfg.Pacing.Mode)
	assert.Equal(t, 500*time.Millisecond, cfg.Pacing.Delay)
	assert.Equal(t, 120, cfg.Pacing.PerMinute)
}

func TestLoadEnvOverrides(t *testing.T) {
	setRequired(t)
	t.Setenv("API_VERSION", "2025-07")
	t.Setenv("BACKUP_DIR", "snapshots")
	t.Setenv("INDEX_DB_PATH", "/var/lib/pricer/index.db")
	t.Setenv("HTTP_TIMEOUT_SECONDS", "5")
	t.Setenv("PACING_MODE", "rate")
	t.Setenv("PACING_PER_MINUTE", "40")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "2025-07", cfg.Shopify.APIVersion)
	assert.Equal(t, "snapshots", cfg.Backup.Dir)
	assert.Equal(t, "/var/lib/pricer/index.db", cfg.Backup.IndexDBPath)
	assert.Equal(t, 5*time.Second, cfg.Shopify.Timeout)
	assert.Equal(t, "rate", cfg.Pacing.Mode)
	assert.Equal(t, 40, cfg.Pacing.PerMinute)
}

func TestLoadRequiresShopAndToken(t *testing.T) {
	t.Setenv("SHOP_NAME", "")
	t.Setenv("ACCESS_TOKEN", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SHOP_NAME")

	t.Setenv("SHOP_NAME", "test-shop.myshopify.com")
	_, err = Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ACCESS_TOKEN")
}

func TestLoadRejectsUnknownPacingMode(t *testing.T) {
	setRequired(t)
	t.Setenv("PACING_MODE", "burst")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadRejectsMalformedInt(t *testing.T) {
	setRequired(t)
	t.Setenv("PACING_DELAY_MS", "half-a-second")

	_, err := Load()
	assert.Error(t, err)
}
