package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/quantumstore/shopfront/internal/domain"
)

// PaymentClient talks to the payment service.
type PaymentClient struct {
	baseURL    string
	httpClient *http.Client
	token      string
}

func NewPaymentClient(baseURL string, client *http.Client, opts ...Option) *PaymentClient {
	o := applyOptions(opts)
	return &PaymentClient{
		baseURL:    baseURL,
		httpClient: client,
		token:      o.token,
	}
}

// Status queries the payment records for an order number. An empty result
// means the outcome is not yet known, not that payment failed.
func (c *PaymentClient) Status(ctx context.Context, orderNumber string) ([]domain.PaymentRecord, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/payments/"+orderNumber, nil)
	if err != nil {
		return nil, fmt.Errorf("create status request: %w", err)
	}
	authorize(req, c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("query payment status for order %s: %w", orderNumber, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("payment service returned status %d for order %s", resp.StatusCode, orderNumber)
	}

	var records []domain.PaymentRecord
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return nil, fmt.Errorf("decode payment records: %w", err)
	}
	return records, nil
}
