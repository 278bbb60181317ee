package model

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

type Product struct {
	ID       string    `json:"id"`
	Title    string    `json:"title"`
	Handle   string    `json:"handle,omitempty"`
	Variants []Variant `json:"variants"`
}

type Variant struct {
	ID             string `json:"id"`
	Title          string `json:"title,omitempty"`
	SKU            string `json:"sku,omitempty"`
	Price          string `json:"price"`
	CompareAtPrice string `json:"compareAtPrice,omitempty"`
}

type Collection struct {
	ID            string
	Title         string
	ProductsCount int
}

type PriceList struct {
	ID       string
	Name     string
	Currency string
}

type Money struct {
	Amount       string `json:"amount"`
	CurrencyCode string `json:"currencyCode"`
}

// MarketPrice is one variant's override inside a single price list.
type MarketPrice struct {
	VariantID      string `json:"variant_id"`
	Price          Money  `json:"price"`
	CompareAtPrice *Money `json:"compare_at_price,omitempty"`
}

type MarketPriceSet struct {
	Prices   []MarketPrice `json:"prices"`
	Currency string        `json:"currency"`
	Name     string        `json:"name"`
}

type SnapshotMetadata struct {
	Timestamp    string `json:"timestamp"`
	Shop         string `json:"shop"`
	ProductID    string `json:"product_id"`
	ProductTitle string `json:"product_title"`
}

type SnapshotEntry struct {
	Metadata     SnapshotMetadata          `json:"metadata"`
	Product      Product                   `json:"product"`
	MarketPrices map[string]MarketPriceSet `json:"market_prices"`
}

// Snapshot maps product id to its backed-up entry.
type Snapshot map[string]SnapshotEntry

func (p Product) Validate() error {
	if strings.TrimSpace(p.ID) == "" {
		return errors.New("product id is empty")
	}
	for _, v := range p.Variants {
		if strings.TrimSpace(v.ID) == "" {
			return fmt.Errorf("product %s has a variant with empty id", p.ID)
		}
		if err := ValidateAmount(v.Price); err != nil {
			return fmt.Errorf("variant %s: %w", v.ID, err)
		}
		if v.CompareAtPrice != "" {
			if err := ValidateAmount(v.CompareAtPrice); err != nil {
				return fmt.Errorf("variant %s compare-at: %w", v.ID, err)
			}
		}
	}
	return nil
}

func (e SnapshotEntry) Validate() error {
	if err := e.Product.Validate(); err != nil {
		return err
	}
	for priceListID, set := range e.MarketPrices {
		for _, mp := range set.Prices {
			if strings.TrimSpace(mp.VariantID) == "" {
				return fmt.Errorf("price list %s has a price with empty variant id", priceListID)
			}
			if mp.Price.Amount != "" {
				if err := ValidateAmount(mp.Price.Amount); err != nil {
					return fmt.Errorf("price list %s variant %s: %w", priceListID, mp.VariantID, err)
				}
			}
		}
	}
	return nil
}

func (s Snapshot) Validate() error {
	for productID, entry := range s {
		if err := entry.Validate(); err != nil {
			return fmt.Errorf("snapshot entry %s: %w", productID, err)
		}
	}
	return nil
}

// ValidateAmount checks that s is a non-negative decimal string.
func ValidateAmount(s string) error {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return fmt.Errorf("invalid price %q", s)
	}
	if v < 0 {
		return fmt.Errorf("negative price %q", s)
	}
	return nil
}

// FormatAmount renders an amount with trailing zeros trimmed while keeping
// at least one fractional digit, so 80 becomes "80.0" and 79.99 stays
// "79.99".
func FormatAmount(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// DiscountedAmount applies pct percent off a decimal amount string and
// rounds to two decimal places.
func DiscountedAmount(amount string, pct float64) (string, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(amount), 64)
	if err != nil {
		return "", fmt.Errorf("invalid price %q", amount)
	}
	d := math.Round(v*(1-pct/100)*100) / 100
	return FormatAmount(d), nil
}

// NumericID extracts the trailing numeric part of a Shopify GID, e.g.
// "gid://shopify/ProductVariant/42" yields "42".
func NumericID(gid string) string {
	if i := strings.LastIndex(gid, "/"); i >= 0 {
		return gid[i+1:]
	}
	return gid
}
