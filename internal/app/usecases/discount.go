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

// Discount applies a percentage discount to every product in a snapshot.
type Discount struct {
	prices adapters.PriceService
	store  *backup.Store
	index  *sqlite.Index
	pacer  pacing.Pacer
	logger logging.LoggerService
}

type DiscountOptions struct {
	Percentage   float64
	SetCompareAt bool
}

func NewDiscount(prices adapters.PriceService, store *backup.Store, index *sqlite.Index, pacer pacing.Pacer, logger logging.LoggerService) *Discount {
	return &Discount{
		prices: prices,
		store:  store,
		index:  index,
		pacer:  pacer,
		logger: logger,
	}
}

// Run discounts every product in the snapshot file sequentially and
// returns the success and error counts. One product's failure never
// aborts the batch.
func (d *Discount) Run(ctx context.Context, backupFile string, opts DiscountOptions) (int, int, error) {
	if opts.Percentage < 0 || opts.Percentage > 100 {
		return 0, 0, fmt.Errorf("discount percentage %.2f out of range", opts.Percentage)
	}

	snapshot, err := d.store.Load(backupFile)
	if err != nil {
		return 0, 0, err
	}

	total := len(snapshot)
	d.logger.Log(fmt.Sprintf("starting discount application for %d products", total))
	d.logger.Log(fmt.Sprintf("discount: %.2f%%, set compare-at prices: %t", opts.Percentage, opts.SetCompareAt))

	success, errCount := 0, 0
	ids := sortedKeys(snapshot)
	for i, productID := range ids {
		entry := snapshot[productID]
		d.logger.Log(fmt.Sprintf("[%d/%d] applying discount to: %s", i+1, total, entry.Product.Title))

		if err := d.applyOne(ctx, entry, opts); err != nil {
			d.logger.LogError(fmt.Sprintf("failed to apply discount to %s", entry.Product.Title), err)
			errCount++
		} else {
			d.logger.Log(fmt.Sprintf("successfully applied discount to %s", entry.Product.Title))
			success++
		}

		if i < total-1 {
			if err := d.pacer.Wait(ctx); err != nil {
				return success, errCount, err
			}
		}
	}

	d.logger.Log(fmt.Sprintf("discount application completed: %d successful, %d errors", success, errCount))
	recordRun(ctx, d.index, d.logger, sqlite.Run{
		Operation:  "discount",
		BackupFile: backupFile,
		Products:   total,
		Success:    success,
		Errors:     errCount,
	})
	return success, errCount, nil
}

func (d *Discount) applyOne(ctx context.Context, entry model.SnapshotEntry, opts DiscountOptions) error {
	updates := make([]adapters.VariantPriceUpdate, 0, len(entry.Product.Variants))
	for _, variant := range entry.Product.Variants {
		discounted, err := model.DiscountedAmount(variant.Price, opts.Percentage)
		if err != nil {
			return fmt.Errorf("variant %s: %w", variant.ID, err)
		}

		update := adapters.VariantPriceUpdate{
			VariantID: variant.ID,
			Price:     discounted,
		}
		// The pre-discount price becomes the "was" price, but only when
		// the variant does not already show one.
		if opts.SetCompareAt && variant.CompareAtPrice == "" {
			update.CompareAtPrice = variant.Price
		}
		updates = append(updates, update)

		d.logger.Log(fmt.Sprintf("variant %s: %s -> %s", variant.Title, variant.Price, discounted))
	}

	if err := d.prices.UpdateVariantPrices(ctx, entry.Product.ID, updates); err != nil {
		return fmt.Errorf("update base prices: %w", err)
	}

	// Market overrides are best effort: a failed price list update is
	// logged but does not fail the product.
	for _, priceListID := range sortedKeys(entry.MarketPrices) {
		set := entry.MarketPrices[priceListID]
		d.logger.Log(fmt.Sprintf("processing price list: %s (%s)", set.Name, set.Currency))

		marketUpdates := make([]model.MarketPrice, 0, len(set.Prices))
		for _, mp := range set.Prices {
			if mp.Price.Amount == "" {
				continue
			}
			discounted, err := model.DiscountedAmount(mp.Price.Amount, opts.Percentage)
			if err != nil {
				d.logger.LogWarning(fmt.Sprintf("skipping market price for variant %s: %v", mp.VariantID, err))
				continue
			}
			update := model.MarketPrice{
				VariantID: mp.VariantID,
				Price: model.Money{
					Amount:       discounted,
					CurrencyCode: set.Currency,
				},
			}
			if opts.SetCompareAt && mp.CompareAtPrice == nil {
				update.CompareAtPrice = &model.Money{
					Amount:       mp.Price.Amount,
					CurrencyCode: set.Currency,
				}
			}
			marketUpdates = append(marketUpdates, update)

			d.logger.Log(fmt.Sprintf("market variant %s: %s %s -> %s %s",
				model.NumericID(mp.VariantID), set.Currency, mp.Price.Amount, set.Currency, discounted))
		}
		if len(marketUpdates) == 0 {
			continue
		}
		if err := d.prices.AddPriceListPrices(ctx, priceListID, marketUpdates); err != nil {
			d.logger.LogError(fmt.Sprintf("failed to update market prices for %s", set.Name), err)
		}
	}

	return nil
}
