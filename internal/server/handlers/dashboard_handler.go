package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/farmdesk/internal/server/middleware"
	"github.com/mamadbah2/farmdesk/internal/service/reporting"
)

// DashboardHandler exposes the derived-statistics endpoints consumed by the
// client dashboards.
type DashboardHandler struct {
	svc    *reporting.Service
	logger *zap.Logger
}

// NewDashboardHandler constructs the HTTP handler adapter.
func NewDashboardHandler(svc *reporting.Service, logger *zap.Logger) *DashboardHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardHandler{svc: svc, logger: logger}
}

// Summary returns the headline numbers.
func (h *DashboardHandler) Summary(c *gin.Context) {
	out, err := h.svc.Summary(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// SalesByProduct returns per-product sale aggregates.
func (h *DashboardHandler) SalesByProduct(c *gin.Context) {
	out, err := h.svc.SalesByProduct(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// ProductionByStatus returns per-status production aggregates.
func (h *DashboardHandler) ProductionByStatus(c *gin.Context) {
	out, err := h.svc.ProductionByStatus(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// History returns the caller's daily snapshots.
func (h *DashboardHandler) History(c *gin.Context) {
	out, err := h.svc.History(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// Export appends the caller's current summary to the configured spreadsheet.
func (h *DashboardHandler) Export(c *gin.Context) {
	if err := h.svc.ExportSummary(c.Request.Context(), middleware.UserID(c)); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusAccepted)
}
