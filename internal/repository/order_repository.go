// internal/repository/order_repository.go
package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/storelabs/orders-backend/internal/models"
)

type gormOrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &gormOrderRepository{db: db}
}

func (r *gormOrderRepository) FindProductsByIDs(ctx context.Context, ids []int64) ([]models.Product, error) {
	var products []models.Product
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to load products: %w", err)
	}
	return products, nil
}

// CreateOrderWithItems inserts the order and its items in a single
// transaction. Nothing is committed if any insert fails.
func (r *gormOrderRepository) CreateOrderWithItems(ctx context.Context, order *models.Order, items []models.OrderItem) (int64, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(order).Error; err != nil {
			return fmt.Errorf("failed to insert order: %w", err)
		}

		for i := range items {
			items[i].OrderID = order.ID
		}

		if err := tx.Create(&items).Error; err != nil {
			return fmt.Errorf("failed to insert order items: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return order.ID, nil
}

func (r *gormOrderRepository) FindOrderByID(ctx context.Context, orderID int64) (models.Order, error) {
	var order models.Order
	if err := r.db.WithContext(ctx).First(&order, orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Order{}, ErrNotFound
		}
		return models.Order{}, fmt.Errorf("failed to load order %d: %w", orderID, err)
	}
	return order, nil
}

// DeleteOrder removes the order and its items in a single transaction.
func (r *gormOrderRepository) DeleteOrder(ctx context.Context, orderID int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", orderID).Delete(&models.OrderItem{}).Error; err != nil {
			return fmt.Errorf("failed to delete order items: %w", err)
		}
		if err := tx.Delete(&models.Order{}, orderID).Error; err != nil {
			return fmt.Errorf("failed to delete order %d: %w", orderID, err)
		}
		return nil
	})
}

func (r *gormOrderRepository) ListOrders(ctx context.Context, limit int) ([]models.Order, error) {
	var orders []models.Order
	query := r.db.WithContext(ctx).Order("id DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

func (r *gormOrderRepository) ListOrderItems(ctx context.Context) ([]models.OrderItem, error) {
	var items []models.OrderItem
	if err := r.db.WithContext(ctx).Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to list order items: %w", err)
	}
	return items, nil
}
