// internal/handlers/sync.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/storelabs/orders-backend/internal/i18n"
	"github.com/storelabs/orders-backend/internal/services"
	"github.com/storelabs/orders-backend/internal/utils"
)

type SyncHandler struct {
	syncService *services.SyncService
}

func NewSyncHandler(syncService *services.SyncService) *SyncHandler {
	return &SyncHandler{
		syncService: syncService,
	}
}

// POST /admin/sync/orders
func (h *SyncHandler) SyncOrders(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	count, err := h.syncService.SyncOrders(c.Request.Context())
	if err != nil {
		utils.InternalErrorResponse(c, i18n.T(lang, i18n.KeySyncFailed))
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeySyncOrdersCompleted, count),
		"orders":  count,
	})
}

// POST /admin/sync/products
func (h *SyncHandler) SyncProducts(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	if err := h.syncService.SyncProductCounters(c.Request.Context()); err != nil {
		utils.InternalErrorResponse(c, i18n.T(lang, i18n.KeySyncFailed))
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeySyncProductsCompleted),
	})
}
