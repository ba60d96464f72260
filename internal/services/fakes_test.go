// internal/services/fakes_test.go
package services

import (
	"context"
	"sort"

	"github.com/storelabs/orders-backend/internal/cache"
	"github.com/storelabs/orders-backend/internal/models"
	"github.com/storelabs/orders-backend/internal/repository"
)

// fakeOrderRepo is an in-memory stand-in for the gorm-backed repository.
type fakeOrderRepo struct {
	products map[int64]models.Product
	orders   map[int64]models.Order
	items    map[int64][]models.OrderItem
	nextID   int64

	createErr error
	listErr   error
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{
		products: make(map[int64]models.Product),
		orders:   make(map[int64]models.Order),
		items:    make(map[int64][]models.OrderItem),
	}
}

func (f *fakeOrderRepo) addProduct(id int64, name string, price float64) {
	f.products[id] = models.Product{BaseModel: models.BaseModel{ID: id}, Name: name, Price: price}
}

func (f *fakeOrderRepo) orderCount() int {
	return len(f.orders)
}

func (f *fakeOrderRepo) itemCount() int {
	n := 0
	for _, items := range f.items {
		n += len(items)
	}
	return n
}

func (f *fakeOrderRepo) FindProductsByIDs(ctx context.Context, ids []int64) ([]models.Product, error) {
	var products []models.Product
	seen := make(map[int64]bool)
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		if product, ok := f.products[id]; ok {
			products = append(products, product)
		}
	}
	return products, nil
}

func (f *fakeOrderRepo) CreateOrderWithItems(ctx context.Context, order *models.Order, items []models.OrderItem) (int64, error) {
	if f.createErr != nil {
		return 0, f.createErr
	}
	f.nextID++
	order.ID = f.nextID
	f.orders[order.ID] = *order
	for i := range items {
		items[i].OrderID = order.ID
	}
	f.items[order.ID] = append([]models.OrderItem(nil), items...)
	return order.ID, nil
}

func (f *fakeOrderRepo) FindOrderByID(ctx context.Context, orderID int64) (models.Order, error) {
	order, ok := f.orders[orderID]
	if !ok {
		return models.Order{}, repository.ErrNotFound
	}
	return order, nil
}

func (f *fakeOrderRepo) DeleteOrder(ctx context.Context, orderID int64) error {
	delete(f.orders, orderID)
	delete(f.items, orderID)
	return nil
}

func (f *fakeOrderRepo) ListOrders(ctx context.Context, limit int) ([]models.Order, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	ids := make([]int64, 0, len(f.orders))
	for id := range f.orders {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] > ids[j] })
	if limit > 0 && len(ids) > limit {
		ids = ids[:limit]
	}
	orders := make([]models.Order, 0, len(ids))
	for _, id := range ids {
		orders = append(orders, f.orders[id])
	}
	return orders, nil
}

func (f *fakeOrderRepo) ListOrderItems(ctx context.Context) ([]models.OrderItem, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	var all []models.OrderItem
	for _, items := range f.items {
		all = append(all, items...)
	}
	return all, nil
}

// fakeStore is an in-memory stand-in for the Redis-backed cache store.
type fakeStore struct {
	summaries map[int64]cache.OrderSummary
	counters  map[int64]int64

	setErr  error
	incrErr error
	listErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		summaries: make(map[int64]cache.OrderSummary),
		counters:  make(map[int64]int64),
	}
}

func (f *fakeStore) SetOrderSummary(ctx context.Context, summary cache.OrderSummary) error {
	if f.setErr != nil {
		return f.setErr
	}
	f.summaries[summary.ID] = summary
	return nil
}

func (f *fakeStore) GetOrderSummary(ctx context.Context, orderID int64) (cache.OrderSummary, bool, error) {
	summary, ok := f.summaries[orderID]
	return summary, ok, nil
}

func (f *fakeStore) DeleteOrderSummary(ctx context.Context, orderID int64) error {
	delete(f.summaries, orderID)
	return nil
}

func (f *fakeStore) ListOrderIDs(ctx context.Context) ([]int64, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	ids := make([]int64, 0, len(f.summaries))
	for id := range f.summaries {
		ids = append(ids, id)
	}
	return ids, nil
}

func (f *fakeStore) IncrProductCounter(ctx context.Context, productID int64, amount int64) (int64, error) {
	if f.incrErr != nil {
		return 0, f.incrErr
	}
	f.counters[productID] += amount
	return f.counters[productID], nil
}

func (f *fakeStore) ListProductCounters(ctx context.Context) ([]cache.ProductCount, error) {
	counters := make([]cache.ProductCount, 0, len(f.counters))
	for id, count := range f.counters {
		counters = append(counters, cache.ProductCount{ProductID: id, Count: count})
	}
	return counters, nil
}

func (f *fakeStore) DeleteProductCounters(ctx context.Context) error {
	f.counters = make(map[int64]int64)
	return nil
}

// fakeUserRepo backs auth and report tests.
type fakeUserRepo struct {
	users  map[int64]models.User
	nextID int64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[int64]models.User)}
}

func (f *fakeUserRepo) addUser(id int64, name string) {
	f.users[id] = models.User{BaseModel: models.BaseModel{ID: id}, Name: name}
	if id > f.nextID {
		f.nextID = id
	}
}

func (f *fakeUserRepo) CreateUser(ctx context.Context, user *models.User) error {
	f.nextID++
	user.ID = f.nextID
	f.users[user.ID] = *user
	return nil
}

func (f *fakeUserRepo) FindUserByEmail(ctx context.Context, email string) (models.User, error) {
	for _, user := range f.users {
		if user.Email == email {
			return user, nil
		}
	}
	return models.User{}, repository.ErrNotFound
}

func (f *fakeUserRepo) ListUsers(ctx context.Context, limit int) ([]models.User, error) {
	ids := make([]int64, 0, len(f.users))
	for id := range f.users {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	users := make([]models.User, 0, len(ids))
	for _, id := range ids {
		users = append(users, f.users[id])
	}
	return users, nil
}

type fakeProductRepo struct {
	products []models.Product
}

func (f *fakeProductRepo) ListProducts(ctx context.Context, limit int) ([]models.Product, error) {
	return f.products, nil
}
