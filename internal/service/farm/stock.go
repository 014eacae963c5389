package farm

import (
	"context"

	"github.com/mamadbah2/farmdesk/internal/domain/models"
)

// ListStock returns the user's stock levels. Stock reads are always scoped to
// the owner, same as every other record kind.
func (s *Service) ListStock(ctx context.Context, userID string) ([]models.Stock, error) {
	return s.stock.ListOwned(ctx, userID, nil)
}

// GetStock returns one stock entry owned by the user.
func (s *Service) GetStock(ctx context.Context, id string, userID string) (*models.Stock, error) {
	return s.stock.GetOwned(ctx, id, userID)
}

// SetStock records the current available quantity for one of the user's
// products, creating the stock entry when missing.
func (s *Service) SetStock(ctx context.Context, userID string, productID string, quantity float64) error {
	if productID == "" {
		return models.ErrInvalidDocument
	}
	if quantity < 0 {
		return models.ErrInvalidDocument
	}
	return s.stock.SetQuantity(ctx, userID, productID, quantity)
}
