// internal/cache/store.go
package cache

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/redis/go-redis/v9"
)

const (
	orderKeyPrefix   = "order:"
	productKeyPrefix = "product:"
)

// OrderSummary is the denormalized order projection kept in Redis. It mirrors
// the order row for every order that has been created and not yet deleted;
// it may be stale or absent if a cache write failed after the database commit,
// until a sync rebuilds it.
type OrderSummary struct {
	ID          int64   `json:"id"`
	UserID      int64   `json:"user_id"`
	TotalAmount float64 `json:"total_amount"`
	CreatedAt   string  `json:"created_at"` // ISO-8601
}

// ProductCount pairs a product with its cumulative sold-unit counter.
type ProductCount struct {
	ProductID int64 `json:"product_id"`
	Count     int64 `json:"count"`
}

// Store is the cache collaborator the order write path and the sync routines
// depend on. The Redis implementation lives in this package; tests substitute
// in-memory fakes.
type Store interface {
	SetOrderSummary(ctx context.Context, summary OrderSummary) error
	GetOrderSummary(ctx context.Context, orderID int64) (OrderSummary, bool, error)
	DeleteOrderSummary(ctx context.Context, orderID int64) error
	ListOrderIDs(ctx context.Context) ([]int64, error)
	IncrProductCounter(ctx context.Context, productID int64, amount int64) (int64, error)
	ListProductCounters(ctx context.Context) ([]ProductCount, error)
	DeleteProductCounters(ctx context.Context) error
}

type redisStore struct {
	client *redis.Client
}

func NewStore(client *redis.Client) Store {
	return &redisStore{client: client}
}

func OrderKey(orderID int64) string {
	return orderKeyPrefix + strconv.FormatInt(orderID, 10)
}

func ProductKey(productID int64) string {
	return productKeyPrefix + strconv.FormatInt(productID, 10)
}

func (s *redisStore) SetOrderSummary(ctx context.Context, summary OrderSummary) error {
	fields := map[string]interface{}{
		"id":           summary.ID,
		"user_id":      summary.UserID,
		"total_amount": summary.TotalAmount,
		"created_at":   summary.CreatedAt,
	}

	if err := s.client.HSet(ctx, OrderKey(summary.ID), fields).Err(); err != nil {
		return fmt.Errorf("failed to set order summary %d: %w", summary.ID, err)
	}
	return nil
}

func (s *redisStore) GetOrderSummary(ctx context.Context, orderID int64) (OrderSummary, bool, error) {
	fields, err := s.client.HGetAll(ctx, OrderKey(orderID)).Result()
	if err != nil {
		return OrderSummary{}, false, fmt.Errorf("failed to get order summary %d: %w", orderID, err)
	}
	if len(fields) == 0 {
		return OrderSummary{}, false, nil
	}

	summary, err := summaryFromFields(fields)
	if err != nil {
		return OrderSummary{}, false, err
	}
	return summary, true, nil
}

func (s *redisStore) DeleteOrderSummary(ctx context.Context, orderID int64) error {
	if err := s.client.Del(ctx, OrderKey(orderID)).Err(); err != nil {
		return fmt.Errorf("failed to delete order summary %d: %w", orderID, err)
	}
	return nil
}

func (s *redisStore) ListOrderIDs(ctx context.Context) ([]int64, error) {
	keys, err := s.client.Keys(ctx, orderKeyPrefix+"*").Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list order keys: %w", err)
	}

	ids := make([]int64, 0, len(keys))
	for _, key := range keys {
		id, err := strconv.ParseInt(strings.TrimPrefix(key, orderKeyPrefix), 10, 64)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func (s *redisStore) IncrProductCounter(ctx context.Context, productID int64, amount int64) (int64, error) {
	value, err := s.client.IncrBy(ctx, ProductKey(productID), amount).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to increment product counter %d: %w", productID, err)
	}
	return value, nil
}

func (s *redisStore) ListProductCounters(ctx context.Context) ([]ProductCount, error) {
	keys, err := s.client.Keys(ctx, productKeyPrefix+"*").Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list product keys: %w", err)
	}

	counters := make([]ProductCount, 0, len(keys))
	for _, key := range keys {
		productID, err := strconv.ParseInt(strings.TrimPrefix(key, productKeyPrefix), 10, 64)
		if err != nil {
			continue
		}

		raw, err := s.client.Get(ctx, key).Result()
		if err == redis.Nil {
			// expired or deleted between KEYS and GET
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read product counter %d: %w", productID, err)
		}

		count, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("product counter %d holds a non-integer value %q", productID, raw)
		}
		counters = append(counters, ProductCount{ProductID: productID, Count: count})
	}
	return counters, nil
}

func (s *redisStore) DeleteProductCounters(ctx context.Context) error {
	keys, err := s.client.Keys(ctx, productKeyPrefix+"*").Result()
	if err != nil {
		return fmt.Errorf("failed to list product keys: %w", err)
	}
	if len(keys) == 0 {
		return nil
	}

	if err := s.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("failed to delete product counters: %w", err)
	}
	return nil
}

func summaryFromFields(fields map[string]string) (OrderSummary, error) {
	id, err := strconv.ParseInt(fields["id"], 10, 64)
	if err != nil {
		return OrderSummary{}, fmt.Errorf("order summary has a malformed id %q", fields["id"])
	}

	userID, err := strconv.ParseInt(fields["user_id"], 10, 64)
	if err != nil {
		return OrderSummary{}, fmt.Errorf("order summary %d has a malformed user_id %q", id, fields["user_id"])
	}

	totalAmount, err := strconv.ParseFloat(fields["total_amount"], 64)
	if err != nil {
		return OrderSummary{}, fmt.Errorf("order summary %d has a malformed total_amount %q", id, fields["total_amount"])
	}

	return OrderSummary{
		ID:          id,
		UserID:      userID,
		TotalAmount: totalAmount,
		CreatedAt:   fields["created_at"],
	}, nil
}
