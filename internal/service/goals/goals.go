// Package goals implements goal CRUD and progress computation. The notified
// flag is owned exclusively by the goal notifier; nothing here ever writes it.
package goals

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"

	"github.com/mamadbah2/farmdesk/internal/domain/models"
)

// GoalStore defines the goal operations the service needs.
type GoalStore interface {
	ListOwned(ctx context.Context, userID string, extra bson.M) ([]models.Goal, error)
	GetOwned(ctx context.Context, id string, userID string) (*models.Goal, error)
	CreateOwned(ctx context.Context, doc models.Goal, userID string) (string, error)
	UpdateOwned(ctx context.Context, id string, userID string, set bson.M) error
	DeleteOwned(ctx context.Context, id string, userID string) error
}

// QuantitySummer aggregates the cumulative record quantity for one
// (user, product) pair.
type QuantitySummer interface {
	SumQuantityByProduct(ctx context.Context, userID string, productID string) (float64, error)
}

// Progress pairs a goal with its current cumulative quantity for dashboards.
type Progress struct {
	Goal    models.Goal `json:"goal"`
	Current float64     `json:"current"`
	Ratio   float64     `json:"ratio"`
}

// GoalUpdate carries the updatable goal fields. The notified flag is not
// client-updatable.
type GoalUpdate struct {
	TargetQuantity *float64
	StartDate      *time.Time
	EndDate        *time.Time
}

// Service exposes goal CRUD and progress reads.
type Service struct {
	goals       GoalStore
	sales       QuantitySummer
	productions QuantitySummer
	logger      *zap.Logger
}

// NewService wires a goal service instance.
func NewService(goals GoalStore, sales, productions QuantitySummer, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{goals: goals, sales: sales, productions: productions, logger: logger}
}

// List returns all goals owned by the user.
func (s *Service) List(ctx context.Context, userID string) ([]models.Goal, error) {
	return s.goals.ListOwned(ctx, userID, nil)
}

// Get returns one goal owned by the user.
func (s *Service) Get(ctx context.Context, id string, userID string) (*models.Goal, error) {
	return s.goals.GetOwned(ctx, id, userID)
}

// Create registers a goal. Goals always start open regardless of the
// submitted payload.
func (s *Service) Create(ctx context.Context, goal models.Goal, userID string) (string, error) {
	goal.Notified = false
	return s.goals.CreateOwned(ctx, goal, userID)
}

// Update applies a partial update to a goal owned by the user. Editing an
// open goal only changes the threshold checked at the next evaluation; it
// never reopens a notified goal.
func (s *Service) Update(ctx context.Context, id string, userID string, upd GoalUpdate) error {
	set := bson.M{}
	if upd.TargetQuantity != nil {
		set["target_quantity"] = *upd.TargetQuantity
	}
	if upd.StartDate != nil {
		set["start_date"] = *upd.StartDate
	}
	if upd.EndDate != nil {
		set["end_date"] = *upd.EndDate
	}
	return s.goals.UpdateOwned(ctx, id, userID, set)
}

// Delete removes a goal owned by the user.
func (s *Service) Delete(ctx context.Context, id string, userID string) error {
	return s.goals.DeleteOwned(ctx, id, userID)
}

// ListWithProgress returns the user's goals annotated with their current
// cumulative quantity.
func (s *Service) ListWithProgress(ctx context.Context, userID string) ([]Progress, error) {
	userGoals, err := s.goals.ListOwned(ctx, userID, nil)
	if err != nil {
		return nil, err
	}

	out := make([]Progress, 0, len(userGoals))
	for _, goal := range userGoals {
		summer := s.sales
		if goal.Type == models.GoalProduction {
			summer = s.productions
		}

		current, err := summer.SumQuantityByProduct(ctx, userID, goal.ProductID)
		if err != nil {
			return nil, err
		}

		ratio := 0.0
		if goal.TargetQuantity > 0 {
			ratio = current / goal.TargetQuantity
			if ratio > 1 {
				ratio = 1
			}
		}
		out = append(out, Progress{Goal: goal, Current: current, Ratio: ratio})
	}
	return out, nil
}
