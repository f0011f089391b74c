package domain

import "github.com/shopspring/decimal"

// Product is the client's read-only copy of a catalog entry. The catalog
// service owns the record; JSON field names follow its wire format.
type Product struct {
	ID            int64           `json:"id"`
	SKU           string          `json:"skuCode"`
	Name          string          `json:"name"`
	Description   string          `json:"description,omitempty"`
	Brand         string          `json:"brand"`
	Category      string          `json:"category"`
	Price         decimal.Decimal `json:"price"`
	OriginalPrice decimal.Decimal `json:"originalPrice"`
	ImageURL      string          `json:"imageUrl,omitempty"`
	Rating        float64         `json:"rating,omitempty"`
	ReviewCount   int             `json:"reviewCount,omitempty"`
	Quantity      int             `json:"quantity"`
}
