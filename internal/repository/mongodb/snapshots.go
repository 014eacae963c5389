package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mamadbah2/farmdesk/internal/domain/models"
)

// SnapshotRepository persists daily per-user activity snapshots.
type SnapshotRepository struct {
	coll string
	s    *Store
}

// NewSnapshotRepository builds the snapshot store.
func NewSnapshotRepository(store *Store) *SnapshotRepository {
	return &SnapshotRepository{s: store, coll: CollDailyReports}
}

// SaveDailySnapshot upserts the snapshot for (user, date) so a rerun of the
// scheduler overwrites instead of duplicating.
func (r *SnapshotRepository) SaveDailySnapshot(ctx context.Context, snapshot models.DailySnapshot) error {
	filter := bson.M{"user_id": snapshot.UserID, "date": snapshot.Date}
	_, err := r.s.Collection(r.coll).ReplaceOne(ctx, filter, snapshot, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to save daily snapshot: %w", err)
	}
	return nil
}

// ListForUser returns the user's snapshots ordered by date ascending.
func (r *SnapshotRepository) ListForUser(ctx context.Context, userID string) ([]models.DailySnapshot, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}})
	cursor, err := r.s.Collection(r.coll).Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("list daily snapshots: %w", err)
	}
	defer cursor.Close(ctx)

	var out []models.DailySnapshot
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode daily snapshots: %w", err)
	}
	return out, nil
}
