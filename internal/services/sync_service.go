// internal/services/sync_service.go
package services

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/storelabs/orders-backend/internal/cache"
	"github.com/storelabs/orders-backend/internal/repository"
)

// SyncService rebuilds cache state from the database. Both routines read only
// from the database and overwrite the cache; they assume no concurrent writer
// is mutating the same keys mid-rebuild.
type SyncService struct {
	repo  repository.OrderRepository
	store cache.Store
}

func NewSyncService(repo repository.OrderRepository, store cache.Store) *SyncService {
	return &SyncService{
		repo:  repo,
		store: store,
	}
}

// SyncOrders bulk-loads order summaries into the cache, but only when the
// cache holds no order records at all. This is an all-or-nothing guard, not a
// per-row diff: one surviving summary means the cache counts as synced.
// Returns the number of summaries now present.
func (s *SyncService) SyncOrders(ctx context.Context) (int, error) {
	existing, err := s.store.ListOrderIDs(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to inspect cache: %w", err)
	}

	if len(existing) > 0 {
		logrus.WithField("orders", len(existing)).Info("Cache already contains orders, no need to sync")
		return len(existing), nil
	}

	orders, err := s.repo.ListOrders(ctx, 0)
	if err != nil {
		return 0, fmt.Errorf("failed to load orders from database: %w", err)
	}

	for _, order := range orders {
		summary := cache.OrderSummary{
			ID:          order.ID,
			UserID:      order.UserID,
			TotalAmount: order.TotalAmount,
			CreatedAt:   order.CreatedAt.Format(time.RFC3339),
		}
		if err := s.store.SetOrderSummary(ctx, summary); err != nil {
			return 0, fmt.Errorf("failed to write order summary %d: %w", order.ID, err)
		}
	}

	logrus.WithField("orders", len(orders)).Info("Order summaries synced to cache")
	return len(orders), nil
}

// SyncProductCounters rebuilds every product sold-unit counter from scratch:
// all existing counters are deleted, then every order item is re-summed with
// its truncated quantity. No prior counter state survives, so running it
// twice yields the same values. This is the repair path for drift left by
// the best-effort write projection and by deletions.
func (s *SyncService) SyncProductCounters(ctx context.Context) error {
	if err := s.store.DeleteProductCounters(ctx); err != nil {
		return fmt.Errorf("failed to clear product counters: %w", err)
	}

	items, err := s.repo.ListOrderItems(ctx)
	if err != nil {
		return fmt.Errorf("failed to load order items from database: %w", err)
	}

	for _, item := range items {
		if _, err := s.store.IncrProductCounter(ctx, item.ProductID, int64(item.Quantity)); err != nil {
			return fmt.Errorf("failed to rebuild counter for product %d: %w", item.ProductID, err)
		}
	}

	logrus.WithField("order_items", len(items)).Info("Product counters resynchronized")
	return nil
}
