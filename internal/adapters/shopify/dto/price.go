package dto

type MoneyV2 struct {
	Amount       string `json:"amount,omitempty"`
	CurrencyCode string `json:"currencyCode,omitempty"`
}

type PriceListNode struct {
	ID       string `json:"id,omitempty"`
	Name     string `json:"name,omitempty"`
	Currency string `json:"currency,omitempty"`
}

type PriceListsQueryData struct {
	PriceLists struct {
		Nodes    []PriceListNode `json:"nodes,omitempty"`
		PageInfo ShopifyPageInfo `json:"pageInfo,omitempty"`
	} `json:"priceLists"`
}

type PriceListQueryData struct {
	PriceList *PriceListNode `json:"priceList,omitempty"`
}

type PriceListPriceNode struct {
	Price          MoneyV2  `json:"price,omitempty"`
	CompareAtPrice *MoneyV2 `json:"compareAtPrice,omitempty"`
	Variant        struct {
		ID string `json:"id,omitempty"`
	} `json:"variant,omitempty"`
}

type PriceListPricesData struct {
	PriceList *struct {
		ID     string `json:"id,omitempty"`
		Prices struct {
			Nodes    []PriceListPriceNode `json:"nodes,omitempty"`
			PageInfo ShopifyPageInfo      `json:"pageInfo,omitempty"`
		} `json:"prices,omitempty"`
	} `json:"priceList,omitempty"`
}

type ProductVariantsBulkUpdateData struct {
	ProductVariantsBulkUpdate struct {
		ProductVariants []struct {
			ID string `json:"id,omitempty"`
		} `json:"productVariants,omitempty"`
		UserErrors []ShopifyUserError `json:"userErrors,omitempty"`
	} `json:"productVariantsBulkUpdate"`
}

type PriceListFixedPricesAddData struct {
	PriceListFixedPricesAdd struct {
		UserErrors []ShopifyUserError `json:"userErrors,omitempty"`
	} `json:"priceListFixedPricesAdd"`
}
