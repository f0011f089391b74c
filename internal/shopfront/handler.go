package shopfront

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/quantumstore/shopfront/internal/backend"
	"github.com/quantumstore/shopfront/internal/checkout"
	"github.com/quantumstore/shopfront/internal/domain"
)

// Handler exposes the shopfront core over HTTP: the shopper surface (catalog
// browsing, cart, checkout, status) and the operator surface (catalog CRUD,
// passed through to the catalog service followed by a snapshot refresh).
type Handler struct {
	service *Service
	catalog *backend.CatalogClient
	logger  *slog.Logger
}

func NewHandler(service *Service, catalog *backend.CatalogClient, logger *slog.Logger) *Handler {
	return &Handler{
		service: service,
		catalog: catalog,
		logger:  logger,
	}
}

func (h *Handler) HandleListProducts(w http.ResponseWriter, r *http.Request) {
	search := r.URL.Query().Get("search")
	category := r.URL.Query().Get("category")

	products := h.service.Products(search, category)

	h.logger.Info("catalog listed", "count", len(products), "search", search, "category", category)
	h.writeJSON(w, http.StatusOK, products)
}

func (h *Handler) HandleGetCart(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.service.Cart())
}

type addItemRequest struct {
	SKU string `json:"skuCode"`
}

func (h *Handler) HandleAddItem(w http.ResponseWriter, r *http.Request) {
	var req addItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.SKU == "" {
		h.writeError(w, http.StatusBadRequest, "missing sku")
		return
	}

	h.service.AddToCart(req.SKU)

	h.logger.Info("item added to cart", "sku", req.SKU)
	h.writeJSON(w, http.StatusOK, h.service.Cart())
}

type updateQuantityRequest struct {
	Delta int `json:"delta"`
}

func (h *Handler) HandleUpdateQuantity(w http.ResponseWriter, r *http.Request) {
	sku := r.PathValue("sku")
	if sku == "" {
		h.writeError(w, http.StatusBadRequest, "missing sku")
		return
	}

	var req updateQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	h.service.UpdateQuantity(sku, req.Delta)

	h.logger.Info("cart quantity updated", "sku", sku, "delta", req.Delta)
	h.writeJSON(w, http.StatusOK, h.service.Cart())
}

type checkoutResponse struct {
	OrderNumber string `json:"orderNumber"`
}

func (h *Handler) HandleCheckout(w http.ResponseWriter, r *http.Request) {
	orderNumber, err := h.service.Checkout(r.Context())
	if err != nil {
		switch {
		case errors.Is(err, checkout.ErrEmptyCart):
			h.writeError(w, http.StatusBadRequest, "cart is empty")
		case errors.Is(err, ErrCheckoutInProgress):
			h.writeError(w, http.StatusConflict, "checkout already in progress")
		default:
			h.logger.Error("checkout failed", "error", err)
			h.writeError(w, http.StatusBadGateway, "order submission failed")
		}
		return
	}

	h.logger.Info("checkout accepted", "order_number", orderNumber)
	h.writeJSON(w, http.StatusAccepted, checkoutResponse{OrderNumber: orderNumber})
}

func (h *Handler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.service.Status())
}

func (h *Handler) HandleGetProduct(w http.ResponseWriter, r *http.Request) {
	sku := r.PathValue("sku")
	if sku == "" {
		h.writeError(w, http.StatusBadRequest, "missing sku")
		return
	}

	product, err := h.catalog.Get(r.Context(), sku)
	if err != nil {
		h.logger.Error("failed to get product", "error", err, "sku", sku)
		h.writeError(w, http.StatusBadGateway, "catalog service unavailable")
		return
	}
	if product == nil {
		h.writeError(w, http.StatusNotFound, "product not found")
		return
	}

	h.writeJSON(w, http.StatusOK, product)
}

func (h *Handler) HandleCreateProduct(w http.ResponseWriter, r *http.Request) {
	var product domain.Product
	if err := json.NewDecoder(r.Body).Decode(&product); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if product.SKU == "" {
		h.writeError(w, http.StatusBadRequest, "missing sku")
		return
	}

	created, err := h.catalog.Create(r.Context(), product)
	if err != nil {
		h.logger.Error("failed to create product", "error", err, "sku", product.SKU)
		h.writeError(w, http.StatusBadGateway, "catalog service unavailable")
		return
	}

	h.service.LoadCatalog(r.Context())

	h.logger.Info("product created", "sku", created.SKU, "id", created.ID)
	h.writeJSON(w, http.StatusCreated, created)
}

func (h *Handler) HandleUpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	var product domain.Product
	if err := json.NewDecoder(r.Body).Decode(&product); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	updated, err := h.catalog.Update(r.Context(), id, product)
	if err != nil {
		h.logger.Error("failed to update product", "error", err, "id", id)
		h.writeError(w, http.StatusBadGateway, "catalog service unavailable")
		return
	}

	h.service.LoadCatalog(r.Context())

	h.logger.Info("product updated", "id", id)
	h.writeJSON(w, http.StatusOK, updated)
}

func (h *Handler) HandleDeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	if err := h.catalog.Delete(r.Context(), id); err != nil {
		h.logger.Error("failed to delete product", "error", err, "id", id)
		h.writeError(w, http.StatusBadGateway, "catalog service unavailable")
		return
	}

	h.service.LoadCatalog(r.Context())

	h.logger.Info("product deleted", "id", id)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]string{"error": message})
}
