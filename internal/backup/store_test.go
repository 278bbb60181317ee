package backup

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chsmth/shopify-price-manager-cli/internal/domain/model"
)

func sampleSnapshot() model.Snapshot {
	return model.Snapshot{
		"gid://shopify/Product/1": {
			Metadata: model.SnapshotMetadata{
				Timestamp:    "2026-09-01T10:00:00Z",
				Shop:         "demo.myshopify.com",
				ProductID:    "gid://shopify/Product/1",
				ProductTitle: "Shirt",
			},
			Product: model.Product{
				ID:     "gid://shopify/Product/1",
				Title:  "Shirt",
				Handle: "shirt",
				Variants: []model.Variant{
					{ID: "gid://shopify/ProductVariant/11", Title: "S", SKU: "SH-S", Price: "25.00", CompareAtPrice: "30.00"},
					{ID: "gid://shopify/ProductVariant/12", Title: "M", SKU: "SH-M", Price: "27.00"},
				},
			},
			MarketPrices: map[string]model.MarketPriceSet{
				"gid://shopify/PriceList/5": {
					Prices: []model.MarketPrice{
						{
							VariantID: "gid://shopify/ProductVariant/11",
							Price:     model.Money{Amount: "22.00", CurrencyCode: "EUR"},
						},
					},
					Currency: "EUR",
					Name:     "Europe",
				},
			},
		},
	}
}

func TestWriteAndLoadRoundTrip(t *testing.T) {
	store := NewStore(t.TempDir())

	path, err := store.Write(sampleSnapshot(), "test backup")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(filepath.Base(path), "test_backup_"))
	assert.True(t, strings.HasSuffix(path, ".json"))

	loaded, err := store.Load(path)
	require.NoError(t, err)
	assert.Equal(t, sampleSnapshot(), loaded)
}

func TestSnapshotSerializationIsStable(t *testing.T) {
	store := NewStore(t.TempDir())

	path, err := store.Write(sampleSnapshot(), "stability")
	require.NoError(t, err)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	loaded, err := store.Load(path)
	require.NoError(t, err)

	reencoded, err := json.MarshalIndent(loaded, "", "  ")
	require.NoError(t, err)
	assert.Equal(t, string(raw), string(reencoded))
}

func TestLoadRejectsInvalidSnapshot(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir)

	bad := filepath.Join(dir, "bad_20260901_100000.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"gid://shopify/Product/1":{"product":{"id":"gid://shopify/Product/1","variants":[{"id":"v","price":"-3"}]}}}`), 0o644))

	_, err := store.Load(bad)
	assert.Error(t, err)
}

func TestLoadRejectsMalformedJSON(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir)

	bad := filepath.Join(dir, "broken.json")
	require.NoError(t, os.WriteFile(bad, []byte("{"), 0o644))

	_, err := store.Load(bad)
	assert.Error(t, err)
}

func TestListNewestFirst(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir)

	older := filepath.Join(dir, "all_products_20260101_090000.json")
	newer := filepath.Join(dir, "all_products_20260901_090000.json")
	require.NoError(t, os.WriteFile(older, []byte(`{}`), 0o644))
	require.NoError(t, os.WriteFile(newer, []byte(`{}`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644))

	infos, err := store.List()
	require.NoError(t, err)
	require.Len(t, infos, 2)
	assert.Equal(t, filepath.Base(newer), infos[0].Name)
	assert.Equal(t, filepath.Base(older), infos[1].Name)
}

func TestListCountsProducts(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir)

	path, err := store.Write(sampleSnapshot(), "counted")
	require.NoError(t, err)

	infos, err := store.List()
	require.NoError(t, err)
	require.Len(t, infos, 1)
	assert.Equal(t, filepath.Base(path), infos[0].Name)
	assert.Equal(t, 1, infos[0].Products)
}

func TestListMissingDirIsEmpty(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "nope"))
	infos, err := store.List()
	require.NoError(t, err)
	assert.Empty(t, infos)
}

func TestSanitizeLabel(t *testing.T) {
	assert.Equal(t, "summer_sale", SanitizeLabel("Summer Sale"))
	assert.Equal(t, "summer_sale-2026", SanitizeLabel("  Summer Sale-2026! "))
	assert.Equal(t, "", SanitizeLabel("???"))
}
