package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/quantumstore/shopfront/internal/backend"
	"github.com/quantumstore/shopfront/internal/cart"
	"github.com/quantumstore/shopfront/internal/catalog"
	"github.com/quantumstore/shopfront/internal/checkout"
	"github.com/quantumstore/shopfront/internal/shopfront"
	"github.com/quantumstore/shopfront/internal/telemetry"
)

func main() {
	ctx := context.Background()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	shutdownTracer, err := telemetry.InitTracerProvider(ctx, "shopfront", "0.1.0")
	if err != nil {
		logger.Error("failed to initialize tracer", "error", err)
		os.Exit(1)
	}
	defer func() { _ = shutdownTracer(ctx) }()

	metricsHandler, shutdownMeter, err := telemetry.InitMeterProvider("shopfront", "0.1.0")
	if err != nil {
		logger.Error("failed to initialize meter", "error", err)
		os.Exit(1)
	}
	defer func() { _ = shutdownMeter(ctx) }()

	catalogServiceURL := os.Getenv("CATALOG_SERVICE_URL")
	if catalogServiceURL == "" {
		logger.Error("CATALOG_SERVICE_URL is required")
		os.Exit(1)
	}

	orderServiceURL := os.Getenv("ORDER_SERVICE_URL")
	if orderServiceURL == "" {
		logger.Error("ORDER_SERVICE_URL is required")
		os.Exit(1)
	}

	paymentServiceURL := os.Getenv("PAYMENT_SERVICE_URL")
	if paymentServiceURL == "" {
		logger.Error("PAYMENT_SERVICE_URL is required")
		os.Exit(1)
	}

	var clientOpts []backend.Option
	if token := os.Getenv("SHOP_API_TOKEN"); token != "" {
		clientOpts = append(clientOpts, backend.WithBearerToken(token))
	}

	httpClient := &http.Client{
		Timeout:   10 * time.Second,
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}

	catalogClient := backend.NewCatalogClient(catalogServiceURL, httpClient, clientOpts...)
	orderClient := backend.NewOrderClient(orderServiceURL, httpClient, clientOpts...)
	paymentClient := backend.NewPaymentClient(paymentServiceURL, httpClient, clientOpts...)

	metrics, err := telemetry.NewCheckoutMetrics()
	if err != nil {
		logger.Error("failed to create checkout metrics", "error", err)
		os.Exit(1)
	}

	snapshot := catalog.NewSnapshot()
	refresher := catalog.NewRefresher(catalogClient, snapshot, logger)
	submitter := checkout.NewSubmitter(orderClient, logger, metrics)

	var pollOpts []checkout.PollerOption
	if os.Getenv("POLL_WAIT_FOR_TERMINAL") == "true" {
		pollOpts = append(pollOpts, checkout.WithWaitForTerminal())
	}
	poller := checkout.NewPoller(paymentClient, logger, metrics, pollOpts...)

	service := shopfront.NewService(cart.NewStore(), snapshot, refresher, submitter, poller, logger)
	defer service.Close()

	service.LoadCatalog(ctx)

	handler := shopfront.NewHandler(service, catalogClient, logger)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/catalog", telemetry.WithHTTPRoute(handler.HandleListProducts))
	mux.HandleFunc("GET /api/cart", telemetry.WithHTTPRoute(handler.HandleGetCart))
	mux.HandleFunc("POST /api/cart/items", telemetry.WithHTTPRoute(handler.HandleAddItem))
	mux.HandleFunc("PATCH /api/cart/items/{sku}", telemetry.WithHTTPRoute(handler.HandleUpdateQuantity))
	mux.HandleFunc("POST /api/checkout", telemetry.WithHTTPRoute(handler.HandleCheckout))
	mux.HandleFunc("GET /api/status", telemetry.WithHTTPRoute(handler.HandleStatus))
	mux.HandleFunc("GET /api/admin/products/{sku}", telemetry.WithHTTPRoute(handler.HandleGetProduct))
	mux.HandleFunc("POST /api/admin/products", telemetry.WithHTTPRoute(handler.HandleCreateProduct))
	mux.HandleFunc("PUT /api/admin/products/{id}", telemetry.WithHTTPRoute(handler.HandleUpdateProduct))
	mux.HandleFunc("DELETE /api/admin/products/{id}", telemetry.WithHTTPRoute(handler.HandleDeleteProduct))
	mux.Handle("GET /metrics", metricsHandler)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	server := &http.Server{
		Addr: ":" + port,
		Handler: otelhttp.NewHandler(mux, "shopfront",
			otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
				if r.Pattern != "" {
					return r.Pattern
				}
				return r.Method + " " + r.URL.Path
			}),
		),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("starting shopfront", "port", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "error", err)
		os.Exit(1)
	}
}
