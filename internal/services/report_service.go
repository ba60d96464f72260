// internal/services/report_service.go
package services

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/storelabs/orders-backend/internal/cache"
	"github.com/storelabs/orders-backend/internal/repository"
)

// ReportService aggregates cached order data for the storefront reports.
// These are presentation-layer views; none of them define new invariants.
type ReportService struct {
	store    cache.Store
	users    repository.UserRepository
	products repository.ProductRepository
}

type UserSpending struct {
	UserID int64   `json:"user_id"`
	Name   string  `json:"name"`
	Total  float64 `json:"total"`
}

// PriceBucket is a row of the legacy best-sellers report: all units matched
// to one unit price, reconstructed by dividing order totals.
type PriceBucket struct {
	UnitPrice float64 `json:"unit_price"`
	Count     int64   `json:"count"`
}

func NewReportService(store cache.Store, users repository.UserRepository, products repository.ProductRepository) *ReportService {
	return &ReportService{
		store:    store,
		users:    users,
		products: products,
	}
}

// HighestSpendingUsers groups the cached order summaries by user and sorts by
// amount spent, descending.
func (s *ReportService) HighestSpendingUsers(ctx context.Context) ([]UserSpending, error) {
	summaries, err := s.listSummaries(ctx)
	if err != nil {
		return nil, err
	}

	totals := make(map[int64]float64)
	for _, summary := range summaries {
		totals[summary.UserID] += summary.TotalAmount
	}

	users, err := s.users.ListUsers(ctx, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve user names: %w", err)
	}
	names := make(map[int64]string, len(users))
	for _, user := range users {
		names[user.ID] = user.Name
	}

	report := make([]UserSpending, 0, len(totals))
	for userID, total := range totals {
		report = append(report, UserSpending{
			UserID: userID,
			Name:   names[userID],
			Total:  total,
		})
	}

	sort.Slice(report, func(i, j int) bool { return report[i].Total > report[j].Total })
	return report, nil
}

// HighestSoldItems reconstructs unit counts by dividing each cached order
// total by the known product prices, first near-exact division wins. This is
// a legacy heuristic kept for comparison: it miscounts any order that mixes
// products with different prices. Use HighestSoldItemsFromCache for real
// numbers.
func (s *ReportService) HighestSoldItems(ctx context.Context) ([]PriceBucket, error) {
	summaries, err := s.listSummaries(ctx)
	if err != nil {
		return nil, err
	}

	products, err := s.products.ListProducts(ctx, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to load known prices: %w", err)
	}

	buckets := make(map[float64]int64)
	for _, summary := range summaries {
		for _, product := range products {
			if product.Price <= 0 {
				continue
			}
			count := math.Floor(summary.TotalAmount / product.Price)
			rest := math.Mod(summary.TotalAmount, product.Price)
			if math.Abs(rest) < 1e-2 {
				buckets[product.Price] += int64(count)
				break
			}
		}
	}

	report := make([]PriceBucket, 0, len(buckets))
	for price, count := range buckets {
		report = append(report, PriceBucket{UnitPrice: price, Count: count})
	}

	sort.Slice(report, func(i, j int) bool { return report[i].Count > report[j].Count })
	return report, nil
}

// HighestSoldItemsFromCache reads the product sold-unit counters directly.
// This is the authoritative best-sellers report.
func (s *ReportService) HighestSoldItemsFromCache(ctx context.Context) ([]cache.ProductCount, error) {
	counters, err := s.store.ListProductCounters(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read product counters: %w", err)
	}

	sort.Slice(counters, func(i, j int) bool { return counters[i].Count > counters[j].Count })
	return counters, nil
}

// ListRecentOrders returns the newest cached order summaries, id descending.
func (s *ReportService) ListRecentOrders(ctx context.Context, limit int) ([]cache.OrderSummary, error) {
	ids, err := s.store.ListOrderIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list cached orders: %w", err)
	}

	sort.Slice(ids, func(i, j int) bool { return ids[i] > ids[j] })
	if limit > 0 && len(ids) > limit {
		ids = ids[:limit]
	}

	summaries := make([]cache.OrderSummary, 0, len(ids))
	for _, id := range ids {
		summary, found, err := s.store.GetOrderSummary(ctx, id)
		if err != nil {
			return nil, err
		}
		if !found {
			// deleted between the key listing and the read
			continue
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

func (s *ReportService) listSummaries(ctx context.Context) ([]cache.OrderSummary, error) {
	ids, err := s.store.ListOrderIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list cached orders: %w", err)
	}

	summaries := make([]cache.OrderSummary, 0, len(ids))
	for _, id := range ids {
		summary, found, err := s.store.GetOrderSummary(ctx, id)
		if err != nil {
			return nil, err
		}
		if !found {
			continue
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}
