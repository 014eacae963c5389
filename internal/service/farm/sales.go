package farm

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/mamadbah2/farmdesk/internal/domain/models"
)

// SaleUpdate carries the updatable sale fields.
type SaleUpdate struct {
	Quantity   *float64
	TotalPrice *float64
	ClientName *string
	Location   *models.GeoPoint
}

// ListSales returns all sales owned by the user, optionally filtered to one
// product.
func (s *Service) ListSales(ctx context.Context, userID string, productID string) ([]models.Sale, error) {
	var extra bson.M
	if productID != "" {
		extra = bson.M{"product_id": productID}
	}
	return s.sales.ListOwned(ctx, userID, extra)
}

// GetSale returns one sale owned by the user.
func (s *Service) GetSale(ctx context.Context, id string, userID string) (*models.Sale, error) {
	return s.sales.GetOwned(ctx, id, userID)
}

// CreateSale records a sale and returns its id. The product reference is not
// checked against the products collection.
func (s *Service) CreateSale(ctx context.Context, sale models.Sale, userID string) (string, error) {
	return s.sales.CreateOwned(ctx, sale, userID)
}

// UpdateSale applies a partial update to a sale owned by the user.
func (s *Service) UpdateSale(ctx context.Context, id string, userID string, upd SaleUpdate) error {
	set := bson.M{}
	if upd.Quantity != nil {
		set["quantity"] = *upd.Quantity
	}
	if upd.TotalPrice != nil {
		set["total_price"] = *upd.TotalPrice
	}
	if upd.ClientName != nil {
		set["client_name"] = *upd.ClientName
	}
	if upd.Location != nil {
		set["location"] = *upd.Location
	}
	return s.sales.UpdateOwned(ctx, id, userID, set)
}

// DeleteSale removes a sale owned by the user.
func (s *Service) DeleteSale(ctx context.Context, id string, userID string) error {
	return s.sales.DeleteOwned(ctx, id, userID)
}
