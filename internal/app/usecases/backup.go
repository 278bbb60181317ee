package usecases

import (
	"context"
	"fmt"
	"sort"
	"time"

	adapters "github.com/chsmth/shopify-price-manager-cli/internal/adapters/shopify"
	"github.com/chsmth/shopify-price-manager-cli/internal/backup"
	"github.com/chsmth/shopify-price-manager-cli/internal/domain/model"
	"github.com/chsmth/shopify-price-manager-cli/internal/infra/sqlite"
	"github.com/chsmth/shopify-price-manager-cli/internal/logging"
	"github.com/chsmth/shopify-price-manager-cli/internal/pacing"
)

// Backup snapshots product prices, including per-market overrides, to a
// local JSON file.
type Backup struct {
	products adapters.ProductService
	prices   adapters.PriceService
	store    *backup.Store
	index    *sqlite.Index
	pacer    pacing.Pacer
	logger   logging.LoggerService
	shop     string
}

func NewBackup(products adapters.ProductService, prices adapters.PriceService, store *backup.Store, index *sqlite.Index, pacer pacing.Pacer, logger logging.LoggerService, shop string) *Backup {
	return &Backup{
		products: products,
		prices:   prices,
		store:    store,
		index:    index,
		pacer:    pacer,
		logger:   logger,
		shop:     shop,
	}
}

// One builds the snapshot entry for a single product. Price lists that
// signal an error or hold no overrides for the product are both omitted.
func (b *Backup) One(ctx context.Context, productID string) (*model.SnapshotEntry, error) {
	b.logger.Log(fmt.Sprintf("backing up prices for product %s", productID))

	product, err := b.products.FetchProduct(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("fetch product %s: %w", productID, err)
	}
	b.logger.Log(fmt.Sprintf("product: %s", product.Title))

	marketPrices := make(map[string]model.MarketPriceSet)
	for _, priceList := range b.allPriceLists(ctx) {
		set, err := b.prices.FetchMarketPrices(ctx, priceList.ID, product.ID)
		if err != nil {
			b.logger.LogError(fmt.Sprintf("skipping price list %s for product %s", priceList.Name, product.ID), err)
			continue
		}
		if len(set.Prices) > 0 {
			marketPrices[priceList.ID] = set
		}
	}

	return &model.SnapshotEntry{
		Metadata: model.SnapshotMetadata{
			Timestamp:    time.Now().Format(time.RFC3339),
			Shop:         b.shop,
			ProductID:    product.ID,
			ProductTitle: product.Title,
		},
		Product:      product,
		MarketPrices: marketPrices,
	}, nil
}

// Run backs up every product sequentially and writes one snapshot file.
// A single product's failure is counted, not fatal.
func (b *Backup) Run(ctx context.Context, products []model.Product, label string) (string, error) {
	b.logger.Log(fmt.Sprintf("starting backup of %d products", len(products)))

	snapshot := make(model.Snapshot)
	success, errCount := 0, 0
	for i, product := range products {
		b.logger.Log(fmt.Sprintf("[%d/%d] backing up: %s (%s)", i+1, len(products), product.Title, product.ID))

		entry, err := b.One(ctx, product.ID)
		if err != nil {
			b.logger.LogError(fmt.Sprintf("error backing up product %s", product.ID), err)
			errCount++
		} else {
			snapshot[product.ID] = *entry
			success++
		}

		if i < len(products)-1 {
			if err := b.pacer.Wait(ctx); err != nil {
				return "", err
			}
		}
	}

	path, err := b.store.Write(snapshot, label)
	if err != nil {
		return "", err
	}

	b.logger.Log(fmt.Sprintf("backup completed: %d products backed up successfully, %d errors", success, errCount))
	b.logger.Log(fmt.Sprintf("backup saved to: %s", path))
	recordRun(ctx, b.index, b.logger, sqlite.Run{
		Operation:  "backup",
		BackupFile: path,
		Products:   len(products),
		Success:    success,
		Errors:     errCount,
	})
	return path, nil
}

// allPriceLists fetches the full, unfiltered price list set. Re-fetched
// per backup run; the set is small.
func (b *Backup) allPriceLists(ctx context.Context) []model.PriceList {
	var (
		priceLists []model.PriceList
		cursor     string
	)
	for {
		page, next, err := b.prices.FetchPriceListsPage(ctx, cursor, 0)
		if err != nil {
			b.logger.LogError("error fetching price lists", err)
			break
		}
		priceLists = append(priceLists, page...)
		if next == "" {
			break
		}
		cursor = next
	}
	b.logger.Log(fmt.Sprintf("found %d price lists in the shop", len(priceLists)))
	return priceLists
}

func recordRun(ctx context.Context, index *sqlite.Index, logger logging.LoggerService, run sqlite.Run) {
	if index == nil {
		return
	}
	if err := index.RecordRun(ctx, run); err != nil && logger != nil {
		logger.LogWarning(fmt.Sprintf("could not record %s run in index: %v", run.Operation, err))
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
