// internal/handlers/report.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/storelabs/orders-backend/internal/services"
	"github.com/storelabs/orders-backend/internal/utils"
)

type ReportHandler struct {
	reportService *services.ReportService
}

func NewReportHandler(reportService *services.ReportService) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
	}
}

// GET /reports/top-spenders
func (h *ReportHandler) TopSpenders(c *gin.Context) {
	report, err := h.reportService.HighestSpendingUsers(c.Request.Context())
	if err != nil {
		utils.InternalErrorResponse(c, "")
		return
	}

	utils.SuccessResponse(c, report)
}

// GET /reports/best-sellers
//
// Legacy heuristic report reconstructed from order totals; kept for
// comparison with the counter-based report below.
func (h *ReportHandler) BestSellers(c *gin.Context) {
	report, err := h.reportService.HighestSoldItems(c.Request.Context())
	if err != nil {
		utils.InternalErrorResponse(c, "")
		return
	}

	utils.SuccessResponse(c, report)
}

// GET /reports/best-sellers/cache
func (h *ReportHandler) BestSellersFromCache(c *gin.Context) {
	report, err := h.reportService.HighestSoldItemsFromCache(c.Request.Context())
	if err != nil {
		utils.InternalErrorResponse(c, "")
		return
	}

	utils.SuccessResponse(c, report)
}
