package farm

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/mamadbah2/farmdesk/internal/domain/models"
)

// ProductionUpdate carries the updatable production fields.
type ProductionUpdate struct {
	Status   *models.ProductionStatus
	Quantity *float64
}

// ListProductions returns all production batches owned by the user.
func (s *Service) ListProductions(ctx context.Context, userID string) ([]models.Production, error) {
	return s.productions.ListOwned(ctx, userID, nil)
}

// GetProduction returns one production batch owned by the user.
func (s *Service) GetProduction(ctx context.Context, id string, userID string) (*models.Production, error) {
	return s.productions.GetOwned(ctx, id, userID)
}

// CreateProduction starts a production batch. New batches always begin
// awaiting with no harvest date.
func (s *Service) CreateProduction(ctx context.Context, production models.Production, userID string) (string, error) {
	if production.Status == "" {
		production.Status = models.ProductionAwaiting
	}
	production.HarvestDate = nil
	return s.productions.CreateOwned(ctx, production, userID)
}

// UpdateProduction applies a partial update to a production batch. Moving a
// batch to harvested stamps the harvest date.
func (s *Service) UpdateProduction(ctx context.Context, id string, userID string, upd ProductionUpdate) error {
	set := bson.M{}
	if upd.Quantity != nil {
		set["quantity"] = *upd.Quantity
	}
	if upd.Status != nil {
		set["status"] = *upd.Status
		if *upd.Status == models.ProductionHarvested {
			set["harvest_date"] = time.Now().UTC()
		}
	}
	return s.productions.UpdateOwned(ctx, id, userID, set)
}

// DeleteProduction removes a production batch owned by the user.
func (s *Service) DeleteProduction(ctx context.Context, id string, userID string) error {
	return s.productions.DeleteOwned(ctx, id, userID)
}
