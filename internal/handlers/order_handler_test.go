// internal/handlers/order_handler_test.go
package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"github.com/storelabs/orders-backend/internal/cache"
	"github.com/storelabs/orders-backend/internal/models"
	"github.com/storelabs/orders-backend/internal/repository"
	"github.com/storelabs/orders-backend/internal/services"
)

// memOrderRepo is an in-memory repository.OrderRepository for route tests.
type memOrderRepo struct {
	products map[int64]models.Product
	orders   map[int64]models.Order
	items    map[int64][]models.OrderItem
	nextID   int64
}

func newMemOrderRepo() *memOrderRepo {
	return &memOrderRepo{
		products: make(map[int64]models.Product),
		orders:   make(map[int64]models.Order),
		items:    make(map[int64][]models.OrderItem),
	}
}

func (r *memOrderRepo) FindProductsByIDs(ctx context.Context, ids []int64) ([]models.Product, error) {
	found := make([]models.Product, 0, len(ids))
	for _, id := range ids {
		if product, ok := r.products[id]; ok {
			found = append(found, product)
		}
	}
	return found, nil
}

func (r *memOrderRepo) CreateOrderWithItems(ctx context.Context, order *models.Order, items []models.OrderItem) (int64, error) {
	r.nextID++
	order.ID = r.nextID
	r.orders[order.ID] = *order
	for i := range items {
		items[i].OrderID = order.ID
	}
	r.items[order.ID] = items
	return order.ID, nil
}

func (r *memOrderRepo) FindOrderByID(ctx context.Context, orderID int64) (models.Order, error) {
	order, ok := r.orders[orderID]
	if !ok {
		return models.Order{}, repository.ErrNotFound
	}
	return order, nil
}

func (r *memOrderRepo) DeleteOrder(ctx context.Context, orderID int64) error {
	delete(r.orders, orderID)
	delete(r.items, orderID)
	return nil
}

func (r *memOrderRepo) ListOrders(ctx context.Context, limit int) ([]models.Order, error) {
	ids := make([]int64, 0, len(r.orders))
	for id := range r.orders {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] > ids[j] })
	if limit > 0 && len(ids) > limit {
		ids = ids[:limit]
	}
	orders := make([]models.Order, 0, len(ids))
	for _, id := range ids {
		orders = append(orders, r.orders[id])
	}
	return orders, nil
}

func (r *memOrderRepo) ListOrderItems(ctx context.Context) ([]models.OrderItem, error) {
	var all []models.OrderItem
	for _, items := range r.items {
		all = append(all, items...)
	}
	return all, nil
}

// memStore is an in-memory cache.Store for route tests.
type memStore struct {
	summaries map[int64]cache.OrderSummary
	counters  map[int64]int64
}

func newMemStore() *memStore {
	return &memStore{
		summaries: make(map[int64]cache.OrderSummary),
		counters:  make(map[int64]int64),
	}
}

func (s *memStore) SetOrderSummary(ctx context.Context, summary cache.OrderSummary) error {
	s.summaries[summary.ID] = summary
	return nil
}

func (s *memStore) GetOrderSummary(ctx context.Context, orderID int64) (cache.OrderSummary, bool, error) {
	summary, ok := s.summaries[orderID]
	return summary, ok, nil
}

func (s *memStore) DeleteOrderSummary(ctx context.Context, orderID int64) error {
	delete(s.summaries, orderID)
	return nil
}

func (s *memStore) ListOrderIDs(ctx context.Context) ([]int64, error) {
	ids := make([]int64, 0, len(s.summaries))
	for id := range s.summaries {
		ids = append(ids, id)
	}
	return ids, nil
}

func (s *memStore) IncrProductCounter(ctx context.Context, productID int64, amount int64) (int64, error) {
	s.counters[productID] += amount
	return s.counters[productID], nil
}

func (s *memStore) ListProductCounters(ctx context.Context) ([]cache.ProductCount, error) {
	counters := make([]cache.ProductCount, 0, len(s.counters))
	for id, count := range s.counters {
		counters = append(counters, cache.ProductCount{ProductID: id, Count: count})
	}
	return counters, nil
}

func (s *memStore) DeleteProductCounters(ctx context.Context) error {
	s.counters = make(map[int64]int64)
	return nil
}

type memUserRepo struct{ users []models.User }

func (r *memUserRepo) CreateUser(ctx context.Context, user *models.User) error {
	user.ID = int64(len(r.users) + 1)
	r.users = append(r.users, *user)
	return nil
}

func (r *memUserRepo) FindUserByEmail(ctx context.Context, email string) (models.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			return user, nil
		}
	}
	return models.User{}, repository.ErrNotFound
}

func (r *memUserRepo) ListUsers(ctx context.Context, limit int) ([]models.User, error) {
	return r.users, nil
}

type memProductRepo struct{ products []models.Product }

func (r *memProductRepo) ListProducts(ctx context.Context, limit int) ([]models.Product, error) {
	return r.products, nil
}

type OrderRoutesTestSuite struct {
	suite.Suite
	router *gin.Engine
	repo   *memOrderRepo
	store  *memStore
}

func (suite *OrderRoutesTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)

	suite.repo = newMemOrderRepo()
	suite.repo.products = map[int64]models.Product{
		1: {BaseModel: models.BaseModel{ID: 1}, Name: "Laptop", Price: 1999.99},
		2: {BaseModel: models.BaseModel{ID: 2}, Name: "Coffee Mug", Price: 5.75},
	}
	suite.store = newMemStore()

	users := &memUserRepo{}
	products := &memProductRepo{}

	orderService := services.NewOrderService(suite.repo, suite.store)
	reportService := services.NewReportService(suite.store, users, products)
	syncService := services.NewSyncService(suite.repo, suite.store)

	orderHandler := NewOrderHandler(orderService, reportService)
	syncHandler := NewSyncHandler(syncService)

	suite.router = gin.New()
	v1 := suite.router.Group("/v1")
	{
		v1.GET("/orders", orderHandler.ListOrders)
		v1.POST("/orders", orderHandler.CreateOrder)
		v1.DELETE("/orders/:id", orderHandler.DeleteOrder)
		v1.POST("/admin/sync/orders", syncHandler.SyncOrders)
		v1.POST("/admin/sync/products", syncHandler.SyncProducts)
	}
}

func (suite *OrderRoutesTestSuite) postJSON(path string, body interface{}) *httptest.ResponseRecorder {
	jsonData, err := json.Marshal(body)
	suite.Require().NoError(err)

	req, _ := http.NewRequest("POST", path, bytes.NewBuffer(jsonData))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *OrderRoutesTestSuite) decode(w *httptest.ResponseRecorder) map[string]interface{} {
	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	suite.Require().NoError(err)
	return response
}

func (suite *OrderRoutesTestSuite) TestCreateOrder() {
	w := suite.postJSON("/v1/orders", map[string]interface{}{
		"user_id": 1,
		"items": []map[string]string{
			{"product_id": "2", "quantity": "2"},
		},
	})

	assert.Equal(suite.T(), http.StatusCreated, w.Code)

	response := suite.decode(w)
	assert.True(suite.T(), response["success"].(bool))

	data := response["data"].(map[string]interface{})
	assert.Equal(suite.T(), float64(1), data["order_id"])
	assert.InDelta(suite.T(), 11.50, data["total_amount"].(float64), 1e-9)
	assert.True(suite.T(), data["cache_synced"].(bool))

	assert.Len(suite.T(), suite.store.summaries, 1)
	assert.Equal(suite.T(), int64(2), suite.store.counters[2])
}

func (suite *OrderRoutesTestSuite) TestCreateOrder_InvalidProductID() {
	w := suite.postJSON("/v1/orders", map[string]interface{}{
		"user_id": 1,
		"items": []map[string]string{
			{"product_id": "abc", "quantity": "1"},
		},
	})

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)

	response := suite.decode(w)
	assert.False(suite.T(), response["success"].(bool))
	assert.Empty(suite.T(), suite.repo.orders)
}

func (suite *OrderRoutesTestSuite) TestCreateOrder_MissingItems() {
	w := suite.postJSON("/v1/orders", map[string]interface{}{"user_id": 1})

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)

	response := suite.decode(w)
	assert.False(suite.T(), response["success"].(bool))
	errObj := response["error"].(map[string]interface{})
	assert.Equal(suite.T(), "VALIDATION_ERROR", errObj["code"])
}

func (suite *OrderRoutesTestSuite) TestDeleteOrder() {
	created := suite.postJSON("/v1/orders", map[string]interface{}{
		"user_id": 1,
		"items": []map[string]string{
			{"product_id": "1", "quantity": "1"},
		},
	})
	suite.Require().Equal(http.StatusCreated, created.Code)

	req, _ := http.NewRequest("DELETE", "/v1/orders/1", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	assert.Equal(suite.T(), http.StatusOK, w.Code)
	assert.Empty(suite.T(), suite.repo.orders)
	assert.Empty(suite.T(), suite.store.summaries)
	// sold-unit counters survive the delete
	assert.Equal(suite.T(), int64(1), suite.store.counters[1])
}

func (suite *OrderRoutesTestSuite) TestDeleteOrder_NotFound() {
	req, _ := http.NewRequest("DELETE", "/v1/orders/42", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	assert.Equal(suite.T(), http.StatusNotFound, w.Code)

	response := suite.decode(w)
	errObj := response["error"].(map[string]interface{})
	assert.Equal(suite.T(), "NOT_FOUND", errObj["code"])
}

func (suite *OrderRoutesTestSuite) TestListOrders() {
	for i := 0; i < 3; i++ {
		w := suite.postJSON("/v1/orders", map[string]interface{}{
			"user_id": 1,
			"items": []map[string]string{
				{"product_id": "2", "quantity": "1"},
			},
		})
		suite.Require().Equal(http.StatusCreated, w.Code)
	}

	req, _ := http.NewRequest("GET", "/v1/orders?limit=2", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	response := suite.decode(w)
	data := response["data"].([]interface{})
	assert.Len(suite.T(), data, 2)
	first := data[0].(map[string]interface{})
	assert.Equal(suite.T(), float64(3), first["id"])
}

func (suite *OrderRoutesTestSuite) TestSyncOrders_SkipsWhenCachePopulated() {
	created := suite.postJSON("/v1/orders", map[string]interface{}{
		"user_id": 1,
		"items": []map[string]string{
			{"product_id": "2", "quantity": "1"},
		},
	})
	suite.Require().Equal(http.StatusCreated, created.Code)

	w := suite.postJSON("/v1/admin/sync/orders", nil)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	response := suite.decode(w)
	data := response["data"].(map[string]interface{})
	assert.Equal(suite.T(), float64(1), data["orders"])
}

func (suite *OrderRoutesTestSuite) TestSyncProducts_RebuildsCounters() {
	created := suite.postJSON("/v1/orders", map[string]interface{}{
		"user_id": 1,
		"items": []map[string]string{
			{"product_id": "2", "quantity": "3"},
		},
	})
	suite.Require().Equal(http.StatusCreated, created.Code)

	// drift the counter, then rebuild from the database
	suite.store.counters[2] = 99

	w := suite.postJSON("/v1/admin/sync/products", nil)

	assert.Equal(suite.T(), http.StatusOK, w.Code)
	assert.Equal(suite.T(), int64(3), suite.store.counters[2])
}

func TestOrderRoutesSuite(t *testing.T) {
	suite.Run(t, new(OrderRoutesTestSuite))
}
