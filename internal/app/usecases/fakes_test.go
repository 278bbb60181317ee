package usecases

import (
	"context"
	"fmt"

	adapters "github.com/chsmth/shopify-price-manager-cli/internal/adapters/shopify"
	"github.com/chsmth/shopify-price-manager-cli/internal/domain/model"
)

type nopLogger struct{}

func (nopLogger) Log(string)             {}
func (nopLogger) LogWarning(string)      {}
func (nopLogger) LogError(string, error) {}
func (nopLogger) LogSuccess(string)      {}

type nopPacer struct{}

func (nopPacer) Wait(context.Context) error { return nil }

type variantCall struct {
	ProductID string
	Updates   []adapters.VariantPriceUpdate
}

type marketCall struct {
	PriceListID string
	Prices      []model.MarketPrice
}

// fakeAPI implements both adapter interfaces against canned data.
type fakeAPI struct {
	productPages [][]model.Product
	pageErrAt    int // 1-based page index that fails; 0 means no failure
	pageCalls    int

	products     map[string]model.Product
	priceLists   []model.PriceList
	marketPrices map[string]map[string]model.MarketPriceSet // priceListID -> productID
	marketErrs   map[string]error                           // priceListID

	variantCalls  []variantCall
	marketCalls   []marketCall
	variantErr    error
	marketCallErr error
}

func (f *fakeAPI) FetchProduct(_ context.Context, productID string) (model.Product, error) {
	product, ok := f.products[productID]
	if !ok {
		return model.Product{}, fmt.Errorf("product %s not found", productID)
	}
	return product, nil
}

func (f *fakeAPI) FetchProductsPage(_ context.Context, cursor string, _ int) ([]model.Product, string, error) {
	f.pageCalls++
	if f.pageErrAt > 0 && f.pageCalls == f.pageErrAt {
		return nil, "", fmt.Errorf("transport failure on page %d", f.pageCalls)
	}
	page := 0
	if cursor != "" {
		fmt.Sscanf(cursor, "page-%d", &page)
	}
	if page >= len(f.productPages) {
		return nil, "", nil
	}
	next := ""
	if page+1 < len(f.productPages) {
		next = fmt.Sprintf("page-%d", page+1)
	}
	return f.productPages[page], next, nil
}

func (f *fakeAPI) FetchCollectionProductsPage(ctx context.Context, _ string, cursor string, pageSize int) ([]model.Product, string, string, error) {
	products, next, err := f.FetchProductsPage(ctx, cursor, pageSize)
	return products, "Summer Sale", next, err
}

func (f *fakeAPI) FetchCollectionsPage(_ context.Context, _ string, _ int) ([]model.Collection, string, error) {
	return []model.Collection{{ID: "gid://shopify/Collection/1", Title: "Summer Sale", ProductsCount: 2}}, "", nil
}

func (f *fakeAPI) FetchPriceListsPage(_ context.Context, _ string, _ int) ([]model.PriceList, string, error) {
	return f.priceLists, "", nil
}

func (f *fakeAPI) FetchMarketPrices(_ context.Context, priceListID, productID string) (model.MarketPriceSet, error) {
	if err := f.marketErrs[priceListID]; err != nil {
		return model.MarketPriceSet{}, err
	}
	byProduct := f.marketPrices[priceListID]
	if set, ok := byProduct[productID]; ok {
		return set, nil
	}
	var name, currency string
	for _, pl := range f.priceLists {
		if pl.ID == priceListID {
			name, currency = pl.Name, pl.Currency
		}
	}
	return model.MarketPriceSet{Prices: []model.MarketPrice{}, Currency: currency, Name: name}, nil
}

func (f *fakeAPI) UpdateVariantPrices(_ context.Context, productID string, updates []adapters.VariantPriceUpdate) error {
	if f.variantErr != nil {
		return f.variantErr
	}
	f.variantCalls = append(f.variantCalls, variantCall{ProductID: productID, Updates: updates})
	return nil
}

func (f *fakeAPI) AddPriceListPrices(_ context.Context, priceListID string, prices []model.MarketPrice) error {
	if f.marketCallErr != nil {
		return f.marketCallErr
	}
	f.marketCalls = append(f.marketCalls, marketCall{PriceListID: priceListID, Prices: prices})
	return nil
}
