package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/farmdesk/internal/domain/models"
	"github.com/mamadbah2/farmdesk/internal/server/middleware"
)

// NotificationStore defines the notification reads and acknowledgements
// exposed over HTTP. Creation is reserved for the goal notifier.
type NotificationStore interface {
	ListForUser(ctx context.Context, userID string) ([]models.Notification, error)
	MarkRead(ctx context.Context, id string, userID string) error
}

// NotificationHandler exposes the notification endpoints.
type NotificationHandler struct {
	store  NotificationStore
	logger *zap.Logger
}

// NewNotificationHandler constructs the HTTP handler adapter.
func NewNotificationHandler(store NotificationStore, logger *zap.Logger) *NotificationHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NotificationHandler{store: store, logger: logger}
}

// List returns the caller's notifications, newest first.
func (h *NotificationHandler) List(c *gin.Context) {
	out, err := h.store.ListForUser(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// MarkRead acknowledges one notification.
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	if err := h.store.MarkRead(c.Request.Context(), c.Param("id"), middleware.UserID(c)); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}
