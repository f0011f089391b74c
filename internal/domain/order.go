package domain

// OrderRequest is one order-creation call. A checkout issues one request per
// cart line, all sharing the same order number.
type OrderRequest struct {
	OrderNumber string `json:"orderNumber"`
	SKU         string `json:"skuCode"`
	Quantity    int    `json:"quantity"`
}
