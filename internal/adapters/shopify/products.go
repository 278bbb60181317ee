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
	defaultProductsPageSize           = 50
	defaultCollectionProductsPageSize = 10
	defaultCollectionsPageSize        = 50
	variantsPerProduct                = 250
)

// ProductService enumerates the catalog. Every paginated call takes an
// opaque cursor ("" for the first page) and returns the next cursor, or
// "" when pagination is complete.
type ProductService interface {
	FetchProduct(ctx context.Context, productID string) (model.Product, error)
	FetchProductsPage(ctx context.Context, cursor string, pageSize int) ([]model.Product, string, error)
	FetchCollectionProductsPage(ctx context.Context, collectionID, cursor string, pageSize int) ([]model.Product, string, string, error)
	FetchCollectionsPage(ctx context.Context, cursor string, pageSize int) ([]model.Collection, string, error)
}

func (c *Client) FetchProduct(ctx context.Context, productID string) (model.Product, error) {
	productID = strings.TrimSpace(productID)
	if productID == "" {
		return model.Product{}, errors.New("shopify product id is required")
	}

	query := `
query GetProduct($productId: ID!, $variants: Int!) {
	product(id: $productId) {
		id
		title
		handle
		variants(first: $variants) {
			nodes { id title sku price compareAtPrice }
		}
	}
}`

	var data dto.ProductQueryData
	err := c.graphqlRequest(ctx, query, map[string]any{
		"productId": productID,
		"variants":  variantsPerProduct,
	}, &data)
	if err != nil {
		return model.Product{}, err
	}
	if data.Product == nil {
		return model.Product{}, fmt.Errorf("shopify product %s not found", productID)
	}
	return mapProduct(*data.Product), nil
}

func (c *Client) FetchProductsPage(ctx context.Context, cursor string, pageSize int) ([]model.Product, string, error) {
	pageSize = clampPageSize(pageSize, defaultProductsPageSize)

	query := `
query GetProducts($cursor: String, $batchSize: Int!, $variants: Int!) {
	products(first: $batchSize, after: $cursor) {
		nodes {
			id
			title
			handle
			variants(first: $variants) {
				nodes { id title sku price compareAtPrice }
			}
		}
		pageInfo { hasNextPage endCursor }
	}
}`

	variables := map[string]any{
		"batchSize": pageSize,
		"variants":  variantsPerProduct,
	}
	if cursor != "" {
		variables["cursor"] = cursor
	}

	var data dto.ProductsQueryData
	if err := c.graphqlRequest(ctx, query, variables, &data); err != nil {
		return nil, "", err
	}

	products := make([]model.Product, 0, len(data.Products.Nodes))
	for _, sp := range data.Products.Nodes {
		products = append(products, mapProduct(sp))
	}
	return products, nextCursor(data.Products.PageInfo), nil
}

func (c *Client) FetchCollectionProductsPage(ctx context.Context, collectionID, cursor string, pageSize int) ([]model.Product, string, string, error) {
	collectionID = strings.TrimSpace(collectionID)
	if collectionID == "" {
		return nil, "", "", errors.New("shopify collection id is required")
	}
	pageSize = clampPageSize(pageSize, defaultCollectionProductsPageSize)

	query := `
query GetProductsByCollection($collectionId: ID!, $cursor: String, $batchSize: Int!, $variants: Int!) {
	collection(id: $collectionId) {
		id
		title
		products(first: $batchSize, after: $cursor) {
			nodes {
				id
				title
				handle
				variants(first: $variants) {
					nodes { id title sku price compareAtPrice }
				}
			}
			pageInfo { hasNextPage endCursor }
		}
	}
}`

	variables := map[string]any{
		"collectionId": collectionID,
		"batchSize":    pageSize,
		"variants":     variantsPerProduct,
	}
	if cursor != "" {
		variables["cursor"] = cursor
	}

	var data dto.CollectionProductsData
	if err := c.graphqlRequest(ctx, query, variables, &data); err != nil {
		return nil, "", "", err
	}
	if data.Collection == nil {
		return nil, "", "", fmt.Errorf("shopify collection %s not found", collectionID)
	}

	products := make([]model.Product, 0, len(data.Collection.Products.Nodes))
	for _, sp := range data.Collection.Products.Nodes {
		products = append(products, mapProduct(sp))
	}
	return products, data.Collection.Title, nextCursor(data.Collection.Products.PageInfo), nil
}

func (c *Client) FetchCollectionsPage(ctx context.Context, cursor string, pageSize int) ([]model.Collection, string, error) {
	pageSize = clampPageSize(pageSize, defaultCollectionsPageSize)

	query := `
query GetCollections($cursor: String, $batchSize: Int!) {
	collections(first: $batchSize, after: $cursor) {
		nodes {
			id
			title
			productsCount { count }
		}
		pageInfo { hasNextPage endCursor }
	}
}`

	variables := map[string]any{"batchSize": pageSize}
	if cursor != "" {
		variables["cursor"] = cursor
	}

	var data dto.CollectionsQueryData
	if err := c.graphqlRequest(ctx, query, variables, &data); err != nil {
		return nil, "", err
	}

	collections := make([]model.Collection, 0, len(data.Collections.Nodes))
	for _, node := range data.Collections.Nodes {
		collections = append(collections, model.Collection{
			ID:            node.ID,
			Title:         node.Title,
			ProductsCount: node.ProductsCount.Count,
		})
	}
	return collections, nextCursor(data.Collections.PageInfo), nil
}

func nextCursor(info dto.ShopifyPageInfo) string {
	if !info.HasNextPage {
		return ""
	}
	return info.EndCursor
}

func mapProduct(sp dto.ShopifyProduct) model.Product {
	variants := make([]model.Variant, 0, len(sp.Variants.Nodes))
	for _, sv := range sp.Variants.Nodes {
		variants = append(variants, model.Variant{
			ID:             sv.ID,
			Title:          sv.Title,
			SKU:            sv.SKU,
			Price:          sv.Price,
			CompareAtPrice: sv.CompareAtPrice,
		})
	}
	return model.Product{
		ID:       sp.ID,
		Title:    sp.Title,
		Handle:   sp.Handle,
		Variants: variants,
	}
}
