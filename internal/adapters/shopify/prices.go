package shopify

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/chsmth/shopify-price-manager-cli/internal/adapters/shopify/dto"
	"github.com/chsmth/shopify-price-manager-cli/internal/domain/model"
)

const (
	defaultPriceListsPageSize = 20
	marketPricesPerQuery      = 250
)

// PriceService resolves market prices and mutates variant pricing.
type PriceService interface {
	FetchPriceListsPage(ctx context.Context, cursor string, pageSize int) ([]model.PriceList, string, error)
	FetchMarketPrices(ctx context.Context, priceListID, productID string) (model.MarketPriceSet, error)
	UpdateVariantPrices(ctx context.Context, productID string, updates []VariantPriceUpdate) error
	AddPriceListPrices(ctx context.Context, priceListID string, prices []model.MarketPrice) error
}

// VariantPriceUpdate is one variant's new base price. An empty
// CompareAtPrice leaves the stored compare-at untouched.
type VariantPriceUpdate struct {
	VariantID      string
	Price          string
	CompareAtPrice string
}

func (c *Client) FetchPriceListsPage(ctx context.Context, cursor string, pageSize int) ([]model.PriceList, string, error) {
	pageSize = clampPageSize(pageSize, defaultPriceListsPageSize)

	query := `
query GetPriceLists($cursor: String, $batchSize: Int!) {
	priceLists(first: $batchSize, after: $cursor) {
		nodes { id name currency }
		pageInfo { hasNextPage endCursor }
	}
}`

	variables := map[string]any{"batchSize": pageSize}
	if cursor != "" {
		variables["cursor"] = cursor
	}

	var data dto.PriceListsQueryData
	if err := c.graphqlRequest(ctx, query, variables, &data); err != nil {
		return nil, "", err
	}

	priceLists := make([]model.PriceList, 0, len(data.PriceLists.Nodes))
	for _, node := range data.PriceLists.Nodes {
		priceLists = append(priceLists, model.PriceList{
			ID:       node.ID,
			Name:     node.Name,
			Currency: node.Currency,
		})
	}
	return priceLists, nextCursor(data.PriceLists.PageInfo), nil
}

func (c *Client) fetchPriceList(ctx context.Context, priceListID string) (model.PriceList, error) {
	query := `
query GetPriceList($priceListId: ID!) {
	priceList(id: $priceListId) {
		id
		name
		currency
	}
}`

	var data dto.PriceListQueryData
	err := c.graphqlRequest(ctx, query, map[string]any{"priceListId": priceListID}, &data)
	if err != nil {
		return model.PriceList{}, err
	}
	if data.PriceList == nil {
		return model.PriceList{}, fmt.Errorf("shopify price list %s not found", priceListID)
	}
	return model.PriceList{
		ID:       data.PriceList.ID,
		Name:     data.PriceList.Name,
		Currency: data.PriceList.Currency,
	}, nil
}

// FetchMarketPrices resolves the per-variant overrides a price list holds
// for one product. A list with no overrides yields a set with an empty
// Prices slice, not an error.
func (c *Client) FetchMarketPrices(ctx context.Context, priceListID, productID string) (model.MarketPriceSet, error) {
	priceListID = strings.TrimSpace(priceListID)
	if priceListID == "" {
		return model.MarketPriceSet{}, errors.New("shopify price list id is required")
	}

	priceList, err := c.fetchPriceList(ctx, priceListID)
	if err != nil {
		return model.MarketPriceSet{}, err
	}

	product, err := c.FetchProduct(ctx, productID)
	if err != nil {
		return model.MarketPriceSet{}, err
	}

	set := model.MarketPriceSet{
		Prices:   []model.MarketPrice{},
		Currency: priceList.Currency,
		Name:     priceList.Name,
	}
	if len(product.Variants) == 0 {
		return set, nil
	}

	// The prices connection is filtered with the search syntax
	// "variant_id:N OR variant_id:M", built from the numeric GID suffixes.
	parts := make([]string, 0, len(product.Variants))
	for _, v := range product.Variants {
		parts = append(parts, "variant_id:"+model.NumericID(v.ID))
	}
	queryString := strings.Join(parts, " OR ")

	query := `
query GetPriceListPrices($priceListId: ID!, $queryString: String, $batchSize: Int!) {
	priceList(id: $priceListId) {
		id
		prices(first: $batchSize, query: $queryString) {
			nodes {
				price { amount currencyCode }
				compareAtPrice { amount currencyCode }
				variant { id }
			}
		}
	}
}`

	var data dto.PriceListPricesData
	err = c.graphqlRequest(ctx, query, map[string]any{
		"priceListId": priceListID,
		"queryString": queryString,
		"batchSize":   marketPricesPerQuery,
	}, &data)
	if err != nil {
		return model.MarketPriceSet{}, err
	}
	if data.PriceList == nil {
		return set, nil
	}

	for _, node := range data.PriceList.Prices.Nodes {
		mp := model.MarketPrice{
			VariantID: node.Variant.ID,
			Price: model.Money{
				Amount:       node.Price.Amount,
				CurrencyCode: node.Price.CurrencyCode,
			},
		}
		if node.CompareAtPrice != nil && node.CompareAtPrice.Amount != "" {
			mp.CompareAtPrice = &model.Money{
				Amount:       node.CompareAtPrice.Amount,
				CurrencyCode: node.CompareAtPrice.CurrencyCode,
			}
		}
		set.Prices = append(set.Prices, mp)
	}

	if len(set.Prices) > 0 && c.logger != nil {
		c.logger.Log(fmt.Sprintf("found %d prices for product in price list %s", len(set.Prices), priceList.Name))
	}
	return set, nil
}

func (c *Client) UpdateVariantPrices(ctx context.Context, productID string, updates []VariantPriceUpdate) error {
	productID = strings.TrimSpace(productID)
	if productID == "" {
		return errors.New("shopify product id is required")
	}
	if len(updates) == 0 {
		return nil
	}

	if c.config.Mock {
		c.logMock(fmt.Sprintf("MOCK: would update %d variant prices for product %s", len(updates), productID))
		return nil
	}

	variants := make([]map[string]any, 0, len(updates))
	for _, u := range updates {
		variant := map[string]any{
			"id":    u.VariantID,
			"price": u.Price,
		}
		if u.CompareAtPrice != "" {
			variant["compareAtPrice"] = u.CompareAtPrice
		}
		variants = append(variants, variant)
	}

	mutation := `
mutation productVariantsBulkUpdate($productId: ID!, $variants: [ProductVariantsBulkInput!]!) {
	productVariantsBulkUpdate(productId: $productId, variants: $variants) {
		productVariants { id }
		userErrors { field message }
	}
}`

	var data dto.ProductVariantsBulkUpdateData
	err := c.graphqlRequest(ctx, mutation, map[string]any{
		"productId": productID,
		"variants":  variants,
	}, &data)
	if err != nil {
		return err
	}
	return userErrorsToError("productVariantsBulkUpdate", data.ProductVariantsBulkUpdate.UserErrors)
}

func (c *Client) AddPriceListPrices(ctx context.Context, priceListID string, prices []model.MarketPrice) error {
	priceListID = strings.TrimSpace(priceListID)
	if priceListID == "" {
		return errors.New("shopify price list id is required")
	}

	// Entries without an amount are skipped, not treated as errors.
	apiPrices := make([]map[string]any, 0, len(prices))
	for _, p := range prices {
		if p.Price.Amount == "" {
			continue
		}
		apiPrice := map[string]any{
			"variantId": p.VariantID,
			"price": map[string]any{
				"amount":       p.Price.Amount,
				"currencyCode": p.Price.CurrencyCode,
			},
		}
		if p.CompareAtPrice != nil && p.CompareAtPrice.Amount != "" {
			apiPrice["compareAtPrice"] = map[string]any{
				"amount":       p.CompareAtPrice.Amount,
				"currencyCode": p.CompareAtPrice.CurrencyCode,
			}
		}
		apiPrices = append(apiPrices, apiPrice)
	}
	if len(apiPrices) == 0 {
		return nil
	}

	if c.config.Mock {
		c.logMock(fmt.Sprintf("MOCK: would update %d market prices for price list %s", len(apiPrices), priceListID))
		return nil
	}

	mutation := `
mutation priceListFixedPricesAdd($priceListId: ID!, $prices: [PriceListPriceInput!]!) {
	priceListFixedPricesAdd(priceListId: $priceListId, prices: $prices) {
		prices {
			price { amount currencyCode }
		}
		userErrors { field message }
	}
}`

	var data dto.PriceListFixedPricesAddData
	err := c.graphqlRequest(ctx, mutation, map[string]any{
		"priceListId": priceListID,
		"prices":      apiPrices,
	}, &data)
	if err != nil {
		return err
	}
	return userErrorsToError("priceListFixedPricesAdd", data.PriceListFixedPricesAdd.UserErrors)
}

func (c *Client) logMock(message string) {
	if c.logger != nil {
		c.logger.Log(message)
	}
}
