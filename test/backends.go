// Package test hosts the integration suite's fake backend services. The
// shopfront consumes three independent HTTP services; the fakes reproduce
// their wire formats so the full orchestration flow can run in-process.
package test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"

	"github.com/quantumstore/shopfront/internal/domain"
)

// CatalogBackend is a fake catalog service with CRUD support.
type CatalogBackend struct {
	Server *httptest.Server

	mu       sync.Mutex
	nextID   int64
	products []domain.Product
	listCnt  int
}

func NewCatalogBackend(t *testing.T, seed []domain.Product) *CatalogBackend {
	t.Helper()

	b := &CatalogBackend{nextID: int64(len(seed)) + 1}
	for i, p := range seed {
		p.ID = int64(i) + 1
		b.products = append(b.products, p)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/inventory", b.handleList)
	mux.HandleFunc("POST /api/inventory", b.handleCreate)
	mux.HandleFunc("PUT /api/inventory/{id}", b.handleUpdate)
	mux.HandleFunc("DELETE /api/inventory/{id}", b.handleDelete)

	b.Server = httptest.NewServer(mux)
	t.Cleanup(b.Server.Close)
	return b
}

func (b *CatalogBackend) ListCalls() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.listCnt
}

func (b *CatalogBackend) SetStock(sku string, quantity int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := range b.products {
		if b.products[i].SKU == sku {
			b.products[i].Quantity = quantity
		}
	}
}

func (b *CatalogBackend) handleList(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.listCnt++
	writeJSON(w, http.StatusOK, b.products)
}

func (b *CatalogBackend) handleCreate(w http.ResponseWriter, r *http.Request) {
	var product domain.Product
	if err := json.NewDecoder(r.Body).Decode(&product); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	product.ID = b.nextID
	b.nextID++
	b.products = append(b.products, product)
	writeJSON(w, http.StatusCreated, product)
}

func (b *CatalogBackend) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	var product domain.Product
	if err := json.NewDecoder(r.Body).Decode(&product); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	for i := range b.products {
		if b.products[i].ID == id {
			product.ID = id
			b.products[i] = product
			writeJSON(w, http.StatusOK, product)
			return
		}
	}
	w.WriteHeader(http.StatusNotFound)
}

func (b *CatalogBackend) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	for i := range b.products {
		if b.products[i].ID == id {
			b.products = append(b.products[:i], b.products[i+1:]...)
			w.WriteHeader(http.StatusNoContent)
			return
		}
	}
	w.WriteHeader(http.StatusNotFound)
}

// OrderBackend is a fake order service recording every order-creation call
// in arrival order.
type OrderBackend struct {
	Server *httptest.Server

	mu     sync.Mutex
	orders []domain.OrderRequest
	fail   bool
}

func NewOrderBackend(t *testing.T) *OrderBackend {
	t.Helper()

	b := &OrderBackend{}
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/orders", b.handlePlace)

	b.Server = httptest.NewServer(mux)
	t.Cleanup(b.Server.Close)
	return b
}

func (b *OrderBackend) Orders() []domain.OrderRequest {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]domain.OrderRequest, len(b.orders))
	copy(out, b.orders)
	return out
}

func (b *OrderBackend) FailNext(fail bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.fail = fail
}

func (b *OrderBackend) handlePlace(w http.ResponseWriter, r *http.Request) {
	var order domain.OrderRequest
	if err := json.NewDecoder(r.Body).Decode(&order); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.fail {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}

	b.orders = append(b.orders, order)
	w.WriteHeader(http.StatusCreated)
	_, _ = w.Write([]byte("Order Placed Successfully. Order Number: " + order.OrderNumber))
}

// PaymentBackend is a fake payment service. Records appear only after
// Publish, mirroring the asynchronous payment pipeline.
type PaymentBackend struct {
	Server *httptest.Server

	mu      sync.Mutex
	records map[string][]domain.PaymentRecord
}

func NewPaymentBackend(t *testing.T) *PaymentBackend {
	t.Helper()

	b := &PaymentBackend{records: make(map[string][]domain.PaymentRecord)}
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/payments/{orderNumber}", b.handleStatus)

	b.Server = httptest.NewServer(mux)
	t.Cleanup(b.Server.Close)
	return b
}

// Publish makes a payment record visible to subsequent status queries.
func (b *PaymentBackend) Publish(record domain.PaymentRecord) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.records[record.OrderNumber] = append(b.records[record.OrderNumber], record)
}

func (b *PaymentBackend) handleStatus(w http.ResponseWriter, r *http.Request) {
	orderNumber := r.PathValue("orderNumber")

	b.mu.Lock()
	records := b.records[orderNumber]
	b.mu.Unlock()

	if records == nil {
		records = []domain.PaymentRecord{}
	}
	writeJSON(w, http.StatusOK, records)
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}
