package usecases

import (
	"context"
	"fmt"

	adapters "github.com/chsmth/shopify-price-manager-cli/internal/adapters/shopify"
	"github.com/chsmth/shopify-price-manager-cli/internal/domain/model"
	"github.com/chsmth/shopify-price-manager-cli/internal/logging"
)

// checkpointEvery is how often the full-catalog walk pauses to let the
// operator decide whether to keep fetching.
const checkpointEvery = 200

// Catalog enumerates products and collections for the backup operations.
// A page error never raises: the walk stops and the partial set is
// returned, with a warning logged.
type Catalog struct {
	products adapters.ProductService
	logger   logging.LoggerService
}

func NewCatalog(products adapters.ProductService, logger logging.LoggerService) *Catalog {
	return &Catalog{
		products: products,
		logger:   logger,
	}
}

func (c *Catalog) Collections(ctx context.Context) []model.Collection {
	var (
		collections []model.Collection
		cursor      string
	)
	for {
		page, next, err := c.products.FetchCollectionsPage(ctx, cursor, 0)
		if err != nil {
			c.logger.LogWarning(fmt.Sprintf("collection fetch stopped early, keeping %d collections: %v", len(collections), err))
			break
		}
		collections = append(collections, page...)
		if next == "" {
			break
		}
		cursor = next
	}
	return collections
}

// AllProducts walks the whole catalog. checkpoint, when non-nil, is asked
// every checkpointEvery products whether to continue.
func (c *Catalog) AllProducts(ctx context.Context, checkpoint func(total int) bool) []model.Product {
	var (
		products []model.Product
		cursor   string
	)
	for {
		page, next, err := c.products.FetchProductsPage(ctx, cursor, 0)
		if err != nil {
			c.logger.LogWarning(fmt.Sprintf("product fetch stopped early, keeping %d products: %v", len(products), err))
			break
		}
		products = append(products, page...)
		c.logger.Log(fmt.Sprintf("fetched %d products (total: %d)", len(page), len(products)))

		if next == "" {
			break
		}
		cursor = next

		if checkpoint != nil && len(products) > 0 && len(products)%checkpointEvery == 0 {
			if !checkpoint(len(products)) {
				c.logger.Log("operator chose to stop fetching more products")
				break
			}
		}
	}
	return products
}

// CollectionProducts returns every product in the collection plus the
// collection title.
func (c *Catalog) CollectionProducts(ctx context.Context, collectionID string) ([]model.Product, string) {
	var (
		products []model.Product
		title    string
		cursor   string
	)
	for {
		page, pageTitle, next, err := c.products.FetchCollectionProductsPage(ctx, collectionID, cursor, 0)
		if err != nil {
			c.logger.LogWarning(fmt.Sprintf("collection product fetch stopped early, keeping %d products: %v", len(products), err))
			break
		}
		if pageTitle != "" {
			title = pageTitle
		}
		products = append(products, page...)
		c.logger.Log(fmt.Sprintf("fetched %d products (total: %d)", len(page), len(products)))
		if next == "" {
			break
		}
		cursor = next
	}
	return products, title
}
