package usecases

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/chsmth/shopify-price-manager-cli/internal/domain/model"
)

func makeProducts(n, offset int) []model.Product {
	products := make([]model.Product, n)
	for i := range products {
		id := offset + i + 1
		products[i] = model.Product{
			ID:    fmt.Sprintf("gid://shopify/Product/%d", id),
			Title: fmt.Sprintf("Product %d", id),
		}
	}
	return products
}

func TestAllProductsWalksEveryPage(t *testing.T) {
	api := &fakeAPI{
		productPages: [][]model.Product{
			makeProducts(50, 0),
			makeProducts(50, 50),
			makeProducts(20, 100),
		},
	}
	catalog := NewCatalog(api, nopLogger{})

	products := catalog.AllProducts(context.Background(), nil)

	assert.Len(t, products, 120)
	assert.Equal(t, 3, api.pageCalls)

	seen := make(map[string]bool, len(products))
	for _, p := range products {
		assert.False(t, seen[p.ID], "duplicate product %s", p.ID)
		seen[p.ID] = true
	}
}

func TestAllProductsReturnsPartialSetOnPageError(t *testing.T) {
	api := &fakeAPI{
		productPages: [][]model.Product{
			makeProducts(50, 0),
			makeProducts(50, 50),
		},
		pageErrAt: 2,
	}
	catalog := NewCatalog(api, nopLogger{})

	products := catalog.AllProducts(context.Background(), nil)

	assert.Len(t, products, 50, "first page should be kept when the second fails")
}

func TestAllProductsChecksCheckpointEveryTwoHundred(t *testing.T) {
	pages := make([][]model.Product, 6)
	for i := range pages {
		pages[i] = makeProducts(100, i*100)
	}
	api := &fakeAPI{productPages: pages}
	catalog := NewCatalog(api, nopLogger{})

	var asked []int
	products := catalog.AllProducts(context.Background(), func(total int) bool {
		asked = append(asked, total)
		return total < 400
	})

	assert.Equal(t, []int{200, 400}, asked)
	assert.Len(t, products, 400, "walk should stop when the checkpoint declines")
}

func TestCollectionProductsCarriesTitle(t *testing.T) {
	api := &fakeAPI{
		productPages: [][]model.Product{makeProducts(3, 0)},
	}
	catalog := NewCatalog(api, nopLogger{})

	products, title := catalog.CollectionProducts(context.Background(), "gid://shopify/Collection/1")

	assert.Len(t, products, 3)
	assert.Equal(t, "Summer Sale", title)
}

func TestCollectionsReturnsShopCollections(t *testing.T) {
	catalog := NewCatalog(&fakeAPI{}, nopLogger{})

	collections := catalog.Collections(context.Background())

	assert.Len(t, collections, 1)
	assert.Equal(t, "Summer Sale", collections[0].Title)
}
