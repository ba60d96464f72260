// internal/handlers/catalog.go
package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/storelabs/orders-backend/internal/repository"
	"github.com/storelabs/orders-backend/internal/utils"
)

// CatalogHandler exposes the product and user listings the order form needs.
type CatalogHandler struct {
	products repository.ProductRepository
	users    repository.UserRepository
}

func NewCatalogHandler(products repository.ProductRepository, users repository.UserRepository) *CatalogHandler {
	return &CatalogHandler{
		products: products,
		users:    users,
	}
}

// GET /products
func (h *CatalogHandler) ListProducts(c *gin.Context) {
	limit := listLimit(c)

	products, err := h.products.ListProducts(c.Request.Context(), limit)
	if err != nil {
		utils.InternalErrorResponse(c, "")
		return
	}

	utils.SuccessResponse(c, products)
}

// GET /users
func (h *CatalogHandler) ListUsers(c *gin.Context) {
	limit := listLimit(c)

	users, err := h.users.ListUsers(c.Request.Context(), limit)
	if err != nil {
		utils.InternalErrorResponse(c, "")
		return
	}

	utils.SuccessResponse(c, users)
}

func listLimit(c *gin.Context) int {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "99"))
	if err != nil || limit < 1 {
		return 99
	}
	return limit
}
