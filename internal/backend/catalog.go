package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/quantumstore/shopfront/internal/domain"
)

// CatalogClient talks to the catalog service. List serves the shopper-facing
// snapshot; the remaining operations back the operator CRUD screens.
type CatalogClient struct {
	baseURL    string
	httpClient *http.Client
	token      string
}

func NewCatalogClient(baseURL string, client *http.Client, opts ...Option) *CatalogClient {
	o := applyOptions(opts)
	return &CatalogClient{
		baseURL:    baseURL,
		httpClient: client,
		token:      o.token,
	}
}

// List fetches the full product list. No pagination: the snapshot is always
// replaced wholesale.
func (c *CatalogClient) List(ctx context.Context) ([]domain.Product, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/inventory", nil)
	if err != nil {
		return nil, fmt.Errorf("create list request: %w", err)
	}
	authorize(req, c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("catalog service returned status %d", resp.StatusCode)
	}

	var products []domain.Product
	if err := json.NewDecoder(resp.Body).Decode(&products); err != nil {
		return nil, fmt.Errorf("decode product list: %w", err)
	}
	return products, nil
}

// Get fetches a single product by SKU. It returns nil when the SKU is
// unknown to the catalog service.
func (c *CatalogClient) Get(ctx context.Context, sku string) (*domain.Product, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/inventory/"+sku, nil)
	if err != nil {
		return nil, fmt.Errorf("create get request: %w", err)
	}
	authorize(req, c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("get product %s: %w", sku, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("catalog service returned status %d for sku %s", resp.StatusCode, sku)
	}

	var product domain.Product
	if err := json.NewDecoder(resp.Body).Decode(&product); err != nil {
		return nil, fmt.Errorf("decode product: %w", err)
	}
	return &product, nil
}

// Create adds a new product to the catalog.
func (c *CatalogClient) Create(ctx context.Context, product domain.Product) (*domain.Product, error) {
	body, err := jsonBody(product)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/inventory", body)
	if err != nil {
		return nil, fmt.Errorf("create create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	authorize(req, c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("create product %s: %w", product.SKU, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("catalog service returned status %d", resp.StatusCode)
	}

	var created domain.Product
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return nil, fmt.Errorf("decode created product: %w", err)
	}
	return &created, nil
}

// Update replaces the product identified by the catalog id.
func (c *CatalogClient) Update(ctx context.Context, id int64, product domain.Product) (*domain.Product, error) {
	body, err := jsonBody(product)
	if err != nil {
		return nil, err
	}

	url := c.baseURL + "/api/inventory/" + strconv.FormatInt(id, 10)
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, body)
	if err != nil {
		return nil, fmt.Errorf("create update request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	authorize(req, c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("update product %d: %w", id, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("catalog service returned status %d for id %d", resp.StatusCode, id)
	}

	var updated domain.Product
	if err := json.NewDecoder(resp.Body).Decode(&updated); err != nil {
		return nil, fmt.Errorf("decode updated product: %w", err)
	}
	return &updated, nil
}

// Delete removes the product identified by the catalog id.
func (c *CatalogClient) Delete(ctx context.Context, id int64) error {
	url := c.baseURL + "/api/inventory/" + strconv.FormatInt(id, 10)
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, url, nil)
	if err != nil {
		return fmt.Errorf("create delete request: %w", err)
	}
	authorize(req, c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("delete product %d: %w", id, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusNoContent && resp.StatusCode != http.StatusOK {
		return fmt.Errorf("catalog service returned status %d for id %d", resp.StatusCode, id)
	}
	return nil
}
