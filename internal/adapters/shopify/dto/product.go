package dto

type ShopifyProduct struct {
	ID       string                   `json:"id,omitempty"`
	Title    string                   `json:"title,omitempty"`
	Handle   string                   `json:"handle,omitempty"`
	Variants ShopifyVariantConnection `json:"variants,omitempty"`
}

type ShopifyVariant struct {
	ID             string `json:"id,omitempty"`
	Title          string `json:"title,omitempty"`
	SKU            string `json:"sku,omitempty"`
	Price          string `json:"price,omitempty"`
	CompareAtPrice string `json:"compareAtPrice,omitempty"`
}

type ShopifyVariantConnection struct {
	Nodes    []ShopifyVariant `json:"nodes,omitempty"`
	PageInfo ShopifyPageInfo  `json:"pageInfo,omitempty"`
}

type ShopifyProductConnection struct {
	Nodes    []ShopifyProduct `json:"nodes,omitempty"`
	PageInfo ShopifyPageInfo  `json:"pageInfo,omitempty"`
}

type ProductQueryData struct {
	Product *ShopifyProduct `json:"product,omitempty"`
}

type ProductsQueryData struct {
	Products ShopifyProductConnection `json:"products"`
}

type ProductsCount struct {
	Count int `json:"count"`
}

type CollectionNode struct {
	ID            string        `json:"id,omitempty"`
	Title         string        `json:"title,omitempty"`
	ProductsCount ProductsCount `json:"productsCount,omitempty"`
}

type CollectionsQueryData struct {
	Collections struct {
		Nodes    []CollectionNode `json:"nodes,omitempty"`
		PageInfo ShopifyPageInfo  `json:"pageInfo,omitempty"`
	} `json:"collections"`
}

type CollectionProductsData struct {
	Collection *struct {
		ID       string                   `json:"id,omitempty"`
		Title    string                   `json:"title,omitempty"`
		Products ShopifyProductConnection `json:"products,omitempty"`
	} `json:"collection,omitempty"`
}
