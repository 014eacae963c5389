package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/mamadbah2/farmdesk/internal/domain/models"
)

// NotificationRepository stores in-app notifications. Notifications are
// scoped by recipient rather than the usual owner field: only the goal
// notifier creates them, and users may only read and acknowledge their own.
type NotificationRepository struct {
	coll   *mongo.Collection
	logger *zap.Logger
}

// NewNotificationRepository builds the notifications access layer.
func NewNotificationRepository(store *Store, logger *zap.Logger) *NotificationRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NotificationRepository{coll: store.Collection(CollNotifications), logger: logger}
}

// Create inserts a notification and returns the store-assigned id.
func (r *NotificationRepository) Create(ctx context.Context, n models.Notification) (string, error) {
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now().UTC()
	}
	if err := models.Validate(n); err != nil {
		return "", err
	}

	res, err := r.coll.InsertOne(ctx, n)
	if err != nil {
		return "", fmt.Errorf("insert notification: %w", err)
	}

	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("insert notification: unexpected id type %T", res.InsertedID)
	}
	return oid.Hex(), nil
}

// ListForUser returns the user's notifications, newest first.
func (r *NotificationRepository) ListForUser(ctx context.Context, userID string) ([]models.Notification, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	defer cursor.Close(ctx)

	var out []models.Notification
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode notifications: %w", err)
	}
	return out, nil
}

// MarkRead acknowledges a notification on behalf of its recipient.
func (r *NotificationRepository) MarkRead(ctx context.Context, id string, userID string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": oid, "user_id": userID},
		bson.M{"$set": bson.M{"read": true}})
	if err != nil {
		return fmt.Errorf("mark notification %s read: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
