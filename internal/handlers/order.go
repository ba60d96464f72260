// internal/handlers/order.go
package handlers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/storelabs/orders-backend/internal/i18n"
	"github.com/storelabs/orders-backend/internal/services"
	"github.com/storelabs/orders-backend/internal/utils"
)

type OrderHandler struct {
	orderService  *services.OrderService
	reportService *services.ReportService
}

func NewOrderHandler(orderService *services.OrderService, reportService *services.ReportService) *OrderHandler {
	return &OrderHandler{
		orderService:  orderService,
		reportService: reportService,
	}
}

// POST /orders
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req services.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	result, err := h.orderService.CreateOrder(c.Request.Context(), &req)
	if err != nil {
		var vErr *services.ValidationError
		if errors.As(err, &vErr) {
			utils.BadRequestResponse(c, i18n.T(lang, vErr.Key, vErr.Args...), nil)
			return
		}
		utils.InternalErrorResponse(c, i18n.T(lang, i18n.KeyOrderCreateFailed))
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message":      i18n.T(lang, i18n.KeyOrderCreated, result.OrderID),
		"order_id":     result.OrderID,
		"total_amount": result.TotalAmount,
		"cache_synced": result.ProjectionErr == nil,
	})
}

// DELETE /orders/:id
func (h *OrderHandler) DeleteOrder(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	orderID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "id"), nil)
		return
	}

	deleted, err := h.orderService.DeleteOrder(c.Request.Context(), orderID)
	if err != nil {
		utils.InternalErrorResponse(c, i18n.T(lang, i18n.KeyOrderDeleteFailed))
		return
	}

	if !deleted {
		utils.NotFoundResponse(c, "order")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message":  i18n.T(lang, i18n.KeyOrderDeleted, orderID),
		"order_id": orderID,
	})
}

// GET /orders
func (h *OrderHandler) ListOrders(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil || limit < 1 {
		limit = 10
	}

	orders, err := h.reportService.ListRecentOrders(c.Request.Context(), limit)
	if err != nil {
		utils.InternalErrorResponse(c, "")
		return
	}

	utils.SuccessResponse(c, orders)
}
