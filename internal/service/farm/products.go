package farm

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/mamadbah2/farmdesk/internal/domain/models"
)

// ProductUpdate carries the updatable product fields. Nil pointers leave the
// stored value untouched.
type ProductUpdate struct {
	Name      *string
	Category  *string
	UnitPrice *float64
	CostPrice *float64
}

// ListProducts returns all products owned by the user.
func (s *Service) ListProducts(ctx context.Context, userID string) ([]models.Product, error) {
	return s.products.ListOwned(ctx, userID, nil)
}

// GetProduct returns one product owned by the user.
func (s *Service) GetProduct(ctx context.Context, id string, userID string) (*models.Product, error) {
	return s.products.GetOwned(ctx, id, userID)
}

// CreateProduct registers a product and returns its id.
func (s *Service) CreateProduct(ctx context.Context, product models.Product, userID string) (string, error) {
	product.CreatedAt = time.Now().UTC()
	return s.products.CreateOwned(ctx, product, userID)
}

// UpdateProduct applies a partial update to a product owned by the user.
func (s *Service) UpdateProduct(ctx context.Context, id string, userID string, upd ProductUpdate) error {
	set := bson.M{}
	if upd.Name != nil {
		set["name"] = *upd.Name
	}
	if upd.Category != nil {
		set["category"] = *upd.Category
	}
	if upd.UnitPrice != nil {
		set["unit_price"] = *upd.UnitPrice
	}
	if upd.CostPrice != nil {
		set["cost_price"] = *upd.CostPrice
	}
	return s.products.UpdateOwned(ctx, id, userID, set)
}

// DeleteProduct removes a product owned by the user. Sales, productions and
// goals referencing it keep their now-dangling product id; references are
// unchecked by the store.
func (s *Service) DeleteProduct(ctx context.Context, id string, userID string) error {
	return s.products.DeleteOwned(ctx, id, userID)
}
