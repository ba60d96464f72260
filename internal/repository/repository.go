// internal/repository/repository.go
package repository

import (
	"context"
	"errors"

	"github.com/storelabs/orders-backend/internal/models"
)

// ErrNotFound is returned when a looked-up record does not exist.
var ErrNotFound = errors.New("record not found")

// OrderRepository is the relational collaborator of the order write path and
// the cache sync routines. The database remains the source of truth; cache
// state is always rebuildable through these reads.
type OrderRepository interface {
	FindProductsByIDs(ctx context.Context, ids []int64) ([]models.Product, error)
	CreateOrderWithItems(ctx context.Context, order *models.Order, items []models.OrderItem) (int64, error)
	FindOrderByID(ctx context.Context, orderID int64) (models.Order, error)
	DeleteOrder(ctx context.Context, orderID int64) error
	ListOrders(ctx context.Context, limit int) ([]models.Order, error)
	ListOrderItems(ctx context.Context) ([]models.OrderItem, error)
}

type ProductRepository interface {
	ListProducts(ctx context.Context, limit int) ([]models.Product, error)
}

type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User) error
	FindUserByEmail(ctx context.Context, email string) (models.User, error)
	ListUsers(ctx context.Context, limit int) ([]models.User, error)
}
