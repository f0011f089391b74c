package backend

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/quantumstore/shopfront/internal/domain"
)

// OrderClient talks to the order service.
type OrderClient struct {
	baseURL    string
	httpClient *http.Client
	token      string
}

func NewOrderClient(baseURL string, client *http.Client, opts ...Option) *OrderClient {
	o := applyOptions(opts)
	return &OrderClient{
		baseURL:    baseURL,
		httpClient: client,
		token:      o.token,
	}
}

// Place issues one order-creation call and returns the service's
// confirmation message. The order service responds with a plain string.
func (c *OrderClient) Place(ctx context.Context, order domain.OrderRequest) (string, error) {
	body, err := jsonBody(order)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/orders", body)
	if err != nil {
		return "", fmt.Errorf("create order request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	authorize(req, c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("place order for sku %s: %w", order.SKU, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("order service returned status %d for sku %s", resp.StatusCode, order.SKU)
	}

	confirmation, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read order confirmation: %w", err)
	}
	return strings.TrimSpace(string(confirmation)), nil
}
