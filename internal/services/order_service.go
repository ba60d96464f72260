// internal/services/order_service.go
package services

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/storelabs/orders-backend/internal/cache"
	"github.com/storelabs/orders-backend/internal/i18n"
	"github.com/storelabs/orders-backend/internal/models"
	"github.com/storelabs/orders-backend/internal/repository"
)

type OrderService struct {
	repo  repository.OrderRepository
	store cache.Store
}

// OrderItemRequest carries the raw form values for one order line. Both
// fields arrive as strings and are parsed here, so a bad value can be echoed
// back to the caller verbatim.
type OrderItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  string `json:"quantity" validate:"required"`
}

type CreateOrderRequest struct {
	UserID int64              `json:"user_id" validate:"required,gt=0"`
	Items  []OrderItemRequest `json:"items" validate:"required,min=1,dive"`
}

// CreateOrderResult reports the outcome of a create. The order is committed
// whenever OrderID is set; ProjectionErr records a cache write failure that
// happened after the commit. The database is never rolled back for a cache
// failure; the sync routines repair the cache later.
type CreateOrderResult struct {
	OrderID       int64   `json:"order_id"`
	TotalAmount   float64 `json:"total_amount"`
	ProjectionErr error   `json:"-"`
}

func NewOrderService(repo repository.OrderRepository, store cache.Store) *OrderService {
	return &OrderService{
		repo:  repo,
		store: store,
	}
}

// CreateOrder validates the request, resolves unit prices from the products
// table, inserts the order and its items in one transaction and then projects
// the result into the cache.
func (s *OrderService) CreateOrder(ctx context.Context, req *CreateOrderRequest) (*CreateOrderResult, error) {
	if req == nil || req.UserID <= 0 || len(req.Items) == 0 {
		return nil, newValidationError(i18n.KeyOrderEmptyRequest,
			"you must provide at least 1 user and 1 item per order")
	}

	productIDs := make([]int64, 0, len(req.Items))
	for _, item := range req.Items {
		pid, err := strconv.ParseInt(item.ProductID, 10, 64)
		if err != nil {
			return nil, newValidationError(i18n.KeyOrderInvalidProductID,
				"the product ID is not valid: %v", item.ProductID)
		}
		productIDs = append(productIDs, pid)
	}

	products, err := s.repo.FindProductsByIDs(ctx, productIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve product prices: %w", err)
	}

	// Unit prices come from the products table, never from the caller.
	priceMap := make(map[int64]float64, len(products))
	for _, product := range products {
		priceMap[product.ID] = product.Price
	}

	var totalAmount float64
	orderItems := make([]models.OrderItem, 0, len(req.Items))

	for i, item := range req.Items {
		pid := productIDs[i]

		quantity, err := strconv.ParseFloat(item.Quantity, 64)
		if err != nil || quantity <= 0 {
			return nil, newValidationError(i18n.KeyOrderInvalidQuantity,
				"you must provide a quantity greater than zero")
		}

		unitPrice, ok := priceMap[pid]
		if !ok {
			return nil, newValidationError(i18n.KeyOrderUnknownProduct,
				"product ID %d is not in the database", pid)
		}

		totalAmount += unitPrice * quantity
		orderItems = append(orderItems, models.OrderItem{
			ProductID: pid,
			Quantity:  quantity,
			UnitPrice: unitPrice,
		})
	}

	order := &models.Order{
		UserID:      req.UserID,
		TotalAmount: totalAmount,
		CreatedAt:   time.Now(),
	}

	orderID, err := s.repo.CreateOrderWithItems(ctx, order, orderItems)
	if err != nil {
		return nil, fmt.Errorf("failed to persist order: %w", err)
	}

	result := &CreateOrderResult{
		OrderID:     orderID,
		TotalAmount: totalAmount,
	}

	// The order is committed at this point. A cache failure is surfaced in
	// the result instead of undoing the commit.
	if err := s.projectOrder(ctx, order, orderItems); err != nil {
		logrus.WithFields(logrus.Fields{
			"order_id": orderID,
		}).WithError(err).Warn("Order committed but cache projection failed")
		result.ProjectionErr = err
	}

	return result, nil
}

// DeleteOrder removes the order (items cascade) and its cache summary.
// A missing order is a "not found" outcome, not an error. Product counters
// are left untouched: they count units ever sold, cancellations included.
func (s *OrderService) DeleteOrder(ctx context.Context, orderID int64) (bool, error) {
	_, err := s.repo.FindOrderByID(ctx, orderID)
	if err != nil {
		if err == repository.ErrNotFound {
			return false, nil
		}
		return false, fmt.Errorf("failed to look up order %d: %w", orderID, err)
	}

	if err := s.repo.DeleteOrder(ctx, orderID); err != nil {
		return false, fmt.Errorf("failed to delete order %d: %w", orderID, err)
	}

	if err := s.store.DeleteOrderSummary(ctx, orderID); err != nil {
		// Same policy as create: the database delete already committed.
		logrus.WithFields(logrus.Fields{
			"order_id": orderID,
		}).WithError(err).Warn("Order deleted but cache summary removal failed")
	}

	return true, nil
}

func (s *OrderService) projectOrder(ctx context.Context, order *models.Order, items []models.OrderItem) error {
	summary := cache.OrderSummary{
		ID:          order.ID,
		UserID:      order.UserID,
		TotalAmount: order.TotalAmount,
		CreatedAt:   order.CreatedAt.Format(time.RFC3339),
	}

	if err := s.store.SetOrderSummary(ctx, summary); err != nil {
		return err
	}

	for _, item := range items {
		// Fractional quantities truncate; a quantity under 1 contributes
		// nothing to the counter.
		quantity := int64(item.Quantity)
		if quantity <= 0 {
			continue
		}
		if _, err := s.store.IncrProductCounter(ctx, item.ProductID, quantity); err != nil {
			return err
		}
	}

	return nil
}
