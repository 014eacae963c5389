package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/mamadbah2/farmdesk/internal/domain/models"
)

// GoalRepository provides ownership-checked CRUD over goals plus the open-goal
// queries and the conditional notified transition used by the goal notifier.
type GoalRepository struct {
	*Collection[models.Goal]
}

// NewGoalRepository builds the goals access layer.
func NewGoalRepository(store *Store, logger *zap.Logger) *GoalRepository {
	return &GoalRepository{Collection: NewCollection[models.Goal](store, CollGoals, logger)}
}

// ListOpenByTarget returns the user's un-notified goals matching one
// (type, product) pair.
func (r *GoalRepository) ListOpenByTarget(ctx context.Context, userID string, goalType models.GoalType, productID string) ([]models.Goal, error) {
	return r.ListOwned(ctx, userID, bson.M{
		"notified":   false,
		"type":       goalType,
		"product_id": productID,
	})
}

// ListAllOpen returns every un-notified goal across all users. Used by the
// periodic sweep.
func (r *GoalRepository) ListAllOpen(ctx context.Context) ([]models.Goal, error) {
	cursor, err := r.coll.Find(ctx, bson.M{"notified": false})
	if err != nil {
		return nil, fmt.Errorf("list open goals: %w", err)
	}
	defer cursor.Close(ctx)

	var goals []models.Goal
	if err := cursor.All(ctx, &goals); err != nil {
		return nil, fmt.Errorf("decode open goals: %w", err)
	}
	return goals, nil
}

// MarkNotified flips a goal's notified flag from false to true with a single
// conditional update. The returned bool reports whether this call performed
// the transition; a false result means another evaluation already claimed the
// crossing, so the caller must not emit a notification.
func (r *GoalRepository) MarkNotified(ctx context.Context, goalID primitive.ObjectID, userID string) (bool, error) {
	filter := bson.M{"_id": goalID, ownerField: userID, "notified": false}
	res, err := r.coll.UpdateOne(ctx, filter, bson.M{"$set": bson.M{"notified": true}})
	if err != nil {
		return false, fmt.Errorf("mark goal %s notified: %w", goalID.Hex(), err)
	}
	return res.ModifiedCount == 1, nil
}
