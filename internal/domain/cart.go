package domain

// CartLine is one SKU and its requested quantity in the active cart.
// Quantity is always > 0 while the line exists.
type CartLine struct {
	SKU      string `json:"skuCode"`
	Quantity int    `json:"quantity"`
}
