package usecases

import (
	"context"
	"fmt"

	adapters "github.com/chsmth/shopify-price-manager-cli/internal/adapters/shopify"
	"github.com/chsmth/shopify-price-manager-cli/internal/backup"
	"github.com/chsmth/shopify-price-manager-cli/internal/domain/model"
	"github.com/chsmth/shopify-price-manager-cli/internal/infra/sqlite"
	"github.com/chsmth/shopify-price-manager-cli/internal/logging"
	"github.com/chsmth/shopify-price-manager-cli/internal/pacing"
)

// Restore replays a snapshot's stored prices verbatim, without
// recomputation.
type Restore struct {
	prices adapters.PriceService
	store  *backup.Store
	index  *sqlite.Index
	pacer  pacing.Pacer
	logger logging.LoggerService
}

func NewRestore(prices adapters.PriceService, store *backup.Store, index *sqlite.Index, pacer pacing.Pacer, logger logging.LoggerService) *Restore {
	return &Restore{
		prices: prices,
		store:  store,
		index:  index,
		pacer:  pacer,
		logger: logger,
	}
}

func (r *Restore) Run(ctx context.Context, backupFile string) (int, int, error) {
	snapshot, err := r.store.Load(backupFile)
	if err != nil {
		return 0, 0, err
	}

	total := len(snapshot)
	r.logger.Log(fmt.Sprintf("starting price restoration for %d products", total))

	success, errCount := 0, 0
	ids := sortedKeys(snapshot)
	for i, productID := range ids {
		entry := snapshot[productID]
		r.logger.Log(fmt.Sprintf("[%d/%d] restoring prices for: %s", i+1, total, entry.Product.Title))

		if err := r.restoreOne(ctx, entry); err != nil {
			r.logger.LogError(fmt.Sprintf("failed to restore prices for %s", entry.Product.Title), err)
			errCount++
		} else {
			r.logger.Log(fmt.Sprintf("successfully restored prices for %s", entry.Product.Title))
			success++
		}

		if i < total-1 {
			if err := r.pacer.Wait(ctx); err != nil {
				return success, errCount, err
			}
		}
	}

	r.logger.Log(fmt.Sprintf("price restoration completed: %d successful, %d errors", success, errCount))
	recordRun(ctx, r.index, r.logger, sqlite.Run{
		Operation:  "restore",
		BackupFile: backupFile,
		Products:   total,
		Success:    success,
		Errors:     errCount,
	})
	return success, errCount, nil
}

func (r *Restore) restoreOne(ctx context.Context, entry model.SnapshotEntry) error {
	updates := make([]adapters.VariantPriceUpdate, 0, len(entry.Product.Variants))
	for _, variant := range entry.Product.Variants {
		update := adapters.VariantPriceUpdate{
			VariantID:      variant.ID,
			Price:          variant.Price,
			CompareAtPrice: variant.CompareAtPrice,
		}
		updates = append(updates, update)

		if variant.CompareAtPrice != "" {
			r.logger.Log(fmt.Sprintf("variant %s: %s (compare-at: %s)", variant.Title, variant.Price, variant.CompareAtPrice))
		} else {
			r.logger.Log(fmt.Sprintf("variant %s: %s", variant.Title, variant.Price))
		}
	}

	if err := r.prices.UpdateVariantPrices(ctx, entry.Product.ID, updates); err != nil {
		return fmt.Errorf("restore base prices: %w", err)
	}

	// Same leniency as the discount path: market restores are logged on
	// failure but do not fail the product.
	for _, priceListID := range sortedKeys(entry.MarketPrices) {
		set := entry.MarketPrices[priceListID]
		r.logger.Log(fmt.Sprintf("processing price list: %s (%s)", set.Name, set.Currency))

		marketUpdates := make([]model.MarketPrice, 0, len(set.Prices))
		for _, mp := range set.Prices {
			if mp.Price.Amount == "" {
				continue
			}
			update := model.MarketPrice{
				VariantID: mp.VariantID,
				Price: model.Money{
					Amount:       mp.Price.Amount,
					CurrencyCode: set.Currency,
				},
			}
			if mp.CompareAtPrice != nil {
				// The list currency wins over whatever currency the
				// stored compare-at carries.
				update.CompareAtPrice = &model.Money{
					Amount:       mp.CompareAtPrice.Amount,
					CurrencyCode: set.Currency,
				}
			}
			marketUpdates = append(marketUpdates, update)
		}
		if len(marketUpdates) == 0 {
			continue
		}
		if err := r.prices.AddPriceListPrices(ctx, priceListID, marketUpdates); err != nil {
			r.logger.LogError(fmt.Sprintf("failed to restore market prices for %s", set.Name), err)
		}
	}

	return nil
}
