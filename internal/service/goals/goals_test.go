package goals

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

type fakeGoalStore struct {
	goals   []models.Goal
	created []models.Goal
	sets    map[string]bson.M
}

func (f *fakeGoalStore) ListOwned(_ context.Context, userID string, _ bson.M) ([]models.Goal, error) {
	var out []models.Goal
	for _, g := range f.goals {
		if g.OwnerID == userID {
			out = append(out, g)
		}
	}
	return out, nil
}

func (f *fakeGoalStore) GetOwned(_ context.Context, id string, _ string) (*models.Goal, error) {
	for _, g := range f.goals {
		if g.ID.Hex() == id {
			goal := g
			return &goal, nil
		}
	}
	return nil, nil
}

func (f *fakeGoalStore) CreateOwned(_ context.Context, doc models.Goal, userID string) (string, error) {
	doc.OwnerID = userID
	f.created = append(f.created, doc)
	return primitive.NewObjectID().Hex(), nil
}

func (f *fakeGoalStore) UpdateOwned(_ context.Context, id string, _ string, set bson.M) error {
	if f.sets == nil {
		f.sets = make(map[string]bson.M)
	}
	f.sets[id] = set
	return nil
}

func (f *fakeGoalStore) DeleteOwned(context.Context, string, string) error { return nil }

type fixedSummer struct {
	sums map[string]float64
}

func (f *fixedSummer) SumQuantityByProduct(_ context.Context, userID, productID string) (float64, error) {
	return f.sums[userID+"|"+productID], nil
}

func newGoal(userID string, goalType models.GoalType, productID string, target float64) models.Goal {
	now := time.Now().UTC()
	return models.Goal{
		ID:             primitive.NewObjectID(),
		Type:           goalType,
		ProductID:      productID,
		TargetQuantity: target,
		StartDate:      now,
		EndDate:        now.Add(24 * time.Hour),
		OwnerID:        userID,
	}
}

func TestCreateAlwaysStartsOpen(t *testing.T) {
	store := &fakeGoalStore{}
	svc := NewService(store, &fixedSummer{}, &fixedSummer{}, nil)

	goal := newGoal("u1", models.GoalSale, "P1", 10)
	goal.Notified = true // a client cannot pre-close a goal

	_, err := svc.Create(context.Background(), goal, "u1")
	require.NoError(t, err)
	require.Len(t, store.created, 1)
	assert.False(t, store.created[0].Notified)
}

func TestUpdateNeverTouchesNotified(t *testing.T) {
	store := &fakeGoalStore{}
	svc := NewService(store, &fixedSummer{}, &fixedSummer{}, nil)

	target := 25.0
	end := time.Now().UTC().Add(48 * time.Hour)
	require.NoError(t, svc.Update(context.Background(), "g1", "u1", GoalUpdate{
		TargetQuantity: &target,
		EndDate:        &end,
	}))

	set := store.sets["g1"]
	require.NotNil(t, set)
	assert.Equal(t, target, set["target_quantity"])
	assert.Equal(t, end, set["end_date"])
	assert.NotContains(t, set, "notified")
	assert.NotContains(t, set, "start_date")
}

func TestListWithProgress(t *testing.T) {
	saleGoal := newGoal("u1", models.GoalSale, "P1", 10)
	prodGoal := newGoal("u1", models.GoalProduction, "P2", 50)
	overGoal := newGoal("u1", models.GoalSale, "P3", 4)

	store := &fakeGoalStore{goals: []models.Goal{saleGoal, prodGoal, overGoal}}
	sales := &fixedSummer{sums: map[string]float64{"u1|P1": 5, "u1|P3": 9}}
	productions := &fixedSummer{sums: map[string]float64{"u1|P2": 50}}

	svc := NewService(store, sales, productions, nil)

	progress, err := svc.ListWithProgress(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, progress, 3)

	byProduct := make(map[string]Progress)
	for _, p := range progress {
		byProduct[p.Goal.ProductID] = p
	}

	assert.InDelta(t, 5, byProduct["P1"].Current, 1e-9)
	assert.InDelta(t, 0.5, byProduct["P1"].Ratio, 1e-9)

	// Production goals read the production aggregate, not the sale one.
	assert.InDelta(t, 50, byProduct["P2"].Current, 1e-9)
	assert.InDelta(t, 1, byProduct["P2"].Ratio, 1e-9)

	// Ratio is capped at 1 once the target is exceeded.
	assert.InDelta(t, 9, byProduct["P3"].Current, 1e-9)
	assert.InDelta(t, 1, byProduct["P3"].Ratio, 1e-9)
}
