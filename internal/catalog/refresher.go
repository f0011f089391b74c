package catalog

import (
	"context"
	"log/slog"

	"golang.org/x/sync/singleflight"

	"github.com/quantumstore/shopfront/internal/domain"
)

// Lister fetches the full product list from the catalog service.
type Lister interface {
	List(ctx context.Context) ([]domain.Product, error)
}

// Refresher re-fetches the catalog snapshot wholesale. A failed fetch leaves
// the previous snapshot in place and is logged, never surfaced as a blocking
// error. Concurrent refreshes (startup vs poller-triggered) are collapsed
// into a single fetch.
type Refresher struct {
	client   Lister
	snapshot *Snapshot
	logger   *slog.Logger
	sfg      singleflight.Group
}

func NewRefresher(client Lister, snapshot *Snapshot, logger *slog.Logger) *Refresher {
	return &Refresher{
		client:   client,
		snapshot: snapshot,
		logger:   logger,
	}
}

// Refresh fetches the product list and replaces the snapshot. It returns the
// fetch error for callers that want to observe it, but the snapshot itself is
// never invalidated by a failure.
func (r *Refresher) Refresh(ctx context.Context) error {
	_, err, _ := r.sfg.Do("catalog", func() (any, error) {
		products, err := r.client.List(ctx)
		if err != nil {
			r.logger.Error("failed to refresh catalog", "error", err)
			return nil, err
		}

		r.snapshot.Replace(products)
		r.logger.Info("catalog refreshed", "count", len(products))
		return nil, nil
	})
	return err
}
