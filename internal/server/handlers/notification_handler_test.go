package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/mamadbah2/farmdesk/internal/domain/models"
	"github.com/mamadbah2/farmdesk/internal/repository/mongodb"
	"github.com/mamadbah2/farmdesk/internal/server/middleware"
)

type fakeNotificationStore struct {
	byUser map[string][]models.Notification
	read   []string
}

func (f *fakeNotificationStore) ListForUser(_ context.Context, userID string) ([]models.Notification, error) {
	return f.byUser[userID], nil
}

func (f *fakeNotificationStore) MarkRead(_ context.Context, id string, userID string) error {
	for _, n := range f.byUser[userID] {
		if n.ID.Hex() == id {
			f.read = append(f.read, id)
			return nil
		}
	}
	return mongodb.ErrNotFound
}

func newNotificationEngine(store *fakeNotificationStore, userID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewNotificationHandler(store, nil)

	r := gin.New()
	authed := r.Group("", middleware.Auth(&stubParser{userID: userID}))
	authed.GET("/notifications", h.List)
	authed.POST("/notifications/:id/read", h.MarkRead)
	return r
}

func TestNotificationListIsUserScoped(t *testing.T) {
	store := &fakeNotificationStore{byUser: map[string][]models.Notification{
		"u1": {{UserID: "u1", Message: "Sales goal reached: product P1 hit 10 of 10.", CreatedAt: time.Now().UTC()}},
		"u2": {{UserID: "u2", Message: "someone else's"}},
	}}
	r := newNotificationEngine(store, "u1")

	w := doJSON(r, http.MethodGet, "/notifications", "")
	require.Equal(t, http.StatusOK, w.Code)

	var out []models.Notification
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	require.Len(t, out, 1)
	assert.Equal(t, "u1", out[0].UserID)
}

func TestNotificationMarkRead(t *testing.T) {
	mine := models.Notification{ID: primitive.NewObjectID(), UserID: "u1", Message: "hello"}
	store := &fakeNotificationStore{byUser: map[string][]models.Notification{"u1": {mine}}}
	r := newNotificationEngine(store, "u1")

	w := doJSON(r, http.MethodPost, "/notifications/"+mine.ID.Hex()+"/read", "")
	assert.Equal(t, http.StatusNoContent, w.Code)

	// Unknown (or foreign) ids surface as not found.
	w = doJSON(r, http.MethodPost, "/notifications/ffffffffffffffffffffffff/read", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
