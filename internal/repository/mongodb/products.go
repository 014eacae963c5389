package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/mamadbah2/farmdesk/internal/domain/models"
)

// ProductRepository provides ownership-checked CRUD over products.
type ProductRepository struct {
	*Collection[models.Product]
}

// NewProductRepository builds the products access layer.
func NewProductRepository(store *Store, logger *zap.Logger) *ProductRepository {
	return &ProductRepository{Collection: NewCollection[models.Product](store, CollProducts, logger)}
}

// StockRepository provides ownership-checked access to per-product stock levels.
type StockRepository struct {
	*Collection[models.Stock]
}

// NewStockRepository builds the stock access layer.
func NewStockRepository(store *Store, logger *zap.Logger) *StockRepository {
	return &StockRepository{Collection: NewCollection[models.Stock](store, CollStock, logger)}
}

// SetQuantity upserts the stock level for one of the user's products.
func (r *StockRepository) SetQuantity(ctx context.Context, userID string, productID string, quantity float64) error {
	filter := bson.M{ownerField: userID, "product_id": productID}
	update := bson.M{"$set": bson.M{
		"available_quantity": quantity,
		"last_updated":       time.Now().UTC(),
	}}

	if _, err := r.coll.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true)); err != nil {
		return fmt.Errorf("upsert stock for product %s: %w", productID, err)
	}
	return nil
}
