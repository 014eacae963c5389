package mongodb

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/mamadbah2/farmdesk/internal/domain/models"
)

func rawDoc(t *testing.T, doc bson.M) bson.Raw {
	t.Helper()
	raw, err := bson.Marshal(doc)
	require.NoError(t, err)
	return raw
}

func TestCheckOwner(t *testing.T) {
	tests := []struct {
		name   string
		doc    bson.M
		userID string
		err    error
	}{
		{
			name:   "matching owner passes",
			doc:    bson.M{"owner_id": "u1", "name": "Maize"},
			userID: "u1",
		},
		{
			name:   "foreign owner denied",
			doc:    bson.M{"owner_id": "u1"},
			userID: "u2",
			err:    ErrAccessDenied,
		},
		{
			name:   "missing owner field denied",
			doc:    bson.M{"name": "Maize"},
			userID: "u1",
			err:    ErrAccessDenied,
		},
		{
			name:   "non-string owner field denied",
			doc:    bson.M{"owner_id": 42},
			userID: "u1",
			err:    ErrAccessDenied,
		},
		{
			name:   "empty caller never matches a stamped owner",
			doc:    bson.M{"owner_id": "u1"},
			userID: "",
			err:    ErrAccessDenied,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := checkOwner(rawDoc(t, tc.doc), tc.userID)
			if tc.err != nil {
				assert.ErrorIs(t, err, tc.err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

// roundTrip pushes a document through the insert-side field map and back
// through the read-side decode, mirroring CreateOwned then GetOwned.
func roundTrip[T any](t *testing.T, doc T, userID string) T {
	t.Helper()

	fields, err := encodeOwned(doc, userID)
	require.NoError(t, err)
	assert.NotContains(t, fields, "_id")
	assert.Equal(t, userID, fields[ownerField])

	raw, err := bson.Marshal(fields)
	require.NoError(t, err)

	var got T
	require.NoError(t, bson.Unmarshal(raw, &got))
	require.NoError(t, models.Validate(got))
	return got
}

func TestStoredDocumentsRoundTrip(t *testing.T) {
	// BSON datetimes carry millisecond precision.
	now := time.Now().UTC().Truncate(time.Millisecond)

	t.Run("product", func(t *testing.T) {
		in := models.Product{Name: "Maize", Category: "cereal", UnitPrice: 12, CostPrice: 8, CreatedAt: now}
		want := in
		want.OwnerID = "u1"
		assert.Equal(t, want, roundTrip(t, in, "u1"))
	})

	t.Run("sale with location", func(t *testing.T) {
		in := models.Sale{
			ProductID:  "P1",
			Quantity:   3,
			TotalPrice: 36,
			ClientName: "Moussa",
			Location:   &models.GeoPoint{Latitude: 9.5, Longitude: -13.7},
			SaleDate:   now,
		}
		want := in
		want.OwnerID = "u1"
		assert.Equal(t, want, roundTrip(t, in, "u1"))
	})

	t.Run("production without harvest date", func(t *testing.T) {
		in := models.Production{ProductID: "P1", Status: models.ProductionAwaiting, Quantity: 20, StartDate: now}
		want := in
		want.OwnerID = "u1"
		got := roundTrip(t, in, "u1")
		assert.Nil(t, got.HarvestDate)
		assert.Equal(t, want, got)
	})

	t.Run("goal", func(t *testing.T) {
		in := models.Goal{Type: models.GoalSale, ProductID: "P1", TargetQuantity: 10, StartDate: now, EndDate: now.Add(24 * time.Hour)}
		want := in
		want.OwnerID = "u1"
		assert.Equal(t, want, roundTrip(t, in, "u1"))
	})

	t.Run("stock", func(t *testing.T) {
		in := models.Stock{ProductID: "P1", AvailableQuantity: 7, LastUpdated: now}
		want := in
		want.OwnerID = "u1"
		assert.Equal(t, want, roundTrip(t, in, "u1"))
	})
}

func TestEncodeOwnedOverridesClientFields(t *testing.T) {
	in := models.Product{
		ID:       primitive.NewObjectID(),
		Name:     "Maize",
		Category: "cereal",
		OwnerID:  "intruder",
	}

	fields, err := encodeOwned(in, "u1")
	require.NoError(t, err)

	// The store assigns ids; a submitted one never survives the insert.
	assert.NotContains(t, fields, "_id")
	assert.Equal(t, "u1", fields[ownerField])
}

func TestWatcherPauseHonorsContext(t *testing.T) {
	w := &Watcher{retryDelay: time.Millisecond}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.False(t, w.pause(ctx))

	start := time.Now()
	assert.True(t, w.pause(context.Background()))
	assert.Less(t, time.Since(start), time.Second)
}

func TestChangeKindMapping(t *testing.T) {
	tests := []struct {
		op   string
		kind ChangeKind
		ok   bool
	}{
		{"insert", ChangeAdded, true},
		{"update", ChangeModified, true},
		{"replace", ChangeModified, true},
		{"delete", ChangeRemoved, true},
		{"invalidate", "", false},
		{"drop", "", false},
	}

	for _, tc := range tests {
		kind, ok := changeKind(tc.op)
		assert.Equal(t, tc.ok, ok, tc.op)
		assert.Equal(t, tc.kind, kind, tc.op)
	}
}
