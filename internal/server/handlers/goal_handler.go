package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/farmdesk/internal/domain/models"
	"github.com/mamadbah2/farmdesk/internal/server/middleware"
	"github.com/mamadbah2/farmdesk/internal/service/goals"
)

// GoalHandler exposes the goal endpoints. The notified flag is read-only
// here; it belongs to the goal notifier.
type GoalHandler struct {
	svc    *goals.Service
	logger *zap.Logger
}

// NewGoalHandler constructs the HTTP handler adapter.
func NewGoalHandler(svc *goals.Service, logger *zap.Logger) *GoalHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GoalHandler{svc: svc, logger: logger}
}

// List returns the caller's goals; ?progress=true annotates each with its
// current cumulative quantity.
func (h *GoalHandler) List(c *gin.Context) {
	userID := middleware.UserID(c)

	if c.Query("progress") == "true" {
		out, err := h.svc.ListWithProgress(c.Request.Context(), userID)
		if err != nil {
			respondError(c, h.logger, err)
			return
		}
		c.JSON(http.StatusOK, out)
		return
	}

	out, err := h.svc.List(c.Request.Context(), userID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// Get returns one goal.
func (h *GoalHandler) Get(c *gin.Context) {
	goal, err := h.svc.Get(c.Request.Context(), c.Param("id"), middleware.UserID(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, goal)
}

type goalRequest struct {
	Type           models.GoalType `json:"type" binding:"required,oneof=sale production"`
	ProductID      string          `json:"product_id" binding:"required"`
	TargetQuantity float64         `json:"target_quantity" binding:"required,gt=0"`
	StartDate      time.Time       `json:"start_date" binding:"required"`
	EndDate        time.Time       `json:"end_date" binding:"required"`
}

// Create registers a goal.
func (h *GoalHandler) Create(c *gin.Context) {
	var req goalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	id, err := h.svc.Create(c.Request.Context(), models.Goal{
		Type:           req.Type,
		ProductID:      req.ProductID,
		TargetQuantity: req.TargetQuantity,
		StartDate:      req.StartDate,
		EndDate:        req.EndDate,
	}, middleware.UserID(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

type goalUpdateRequest struct {
	TargetQuantity *float64   `json:"target_quantity" binding:"omitempty,gt=0"`
	StartDate      *time.Time `json:"start_date"`
	EndDate        *time.Time `json:"end_date"`
}

// Update applies a partial goal update.
func (h *GoalHandler) Update(c *gin.Context) {
	var req goalUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	err := h.svc.Update(c.Request.Context(), c.Param("id"), middleware.UserID(c), goals.GoalUpdate{
		TargetQuantity: req.TargetQuantity,
		StartDate:      req.StartDate,
		EndDate:        req.EndDate,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Delete removes a goal.
func (h *GoalHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id"), middleware.UserID(c)); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}
