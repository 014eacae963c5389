package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/mamadbah2/farmdesk/internal/domain/models"
)

// SaleRepository provides ownership-checked CRUD over sales plus the
// aggregate reads the goal notifier depends on.
type SaleRepository struct {
	*Collection[models.Sale]
}

// NewSaleRepository builds the sales access layer.
func NewSaleRepository(store *Store, logger *zap.Logger) *SaleRepository {
	return &SaleRepository{Collection: NewCollection[models.Sale](store, CollSales, logger)}
}

// SumQuantityByProduct returns the cumulative sale quantity for one of the
// user's products. Records without a numeric quantity contribute zero.
func (r *SaleRepository) SumQuantityByProduct(ctx context.Context, userID string, productID string) (float64, error) {
	return sumQuantity(ctx, r.coll, userID, productID)
}

// ProductionRepository provides ownership-checked CRUD over production
// batches plus the aggregate reads the goal notifier depends on.
type ProductionRepository struct {
	*Collection[models.Production]
}

// NewProductionRepository builds the productions access layer.
func NewProductionRepository(store *Store, logger *zap.Logger) *ProductionRepository {
	return &ProductionRepository{Collection: NewCollection[models.Production](store, CollProductions, logger)}
}

// SumQuantityByProduct returns the cumulative production quantity for one of
// the user's products. Records without a numeric quantity contribute zero.
func (r *ProductionRepository) SumQuantityByProduct(ctx context.Context, userID string, productID string) (float64, error) {
	return sumQuantity(ctx, r.coll, userID, productID)
}

func sumQuantity(ctx context.Context, coll *mongo.Collection, userID string, productID string) (float64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{ownerField: userID, "product_id": productID}}},
		{{Key: "$group", Value: bson.M{"_id": nil, "total": bson.M{"$sum": "$quantity"}}}},
	}

	cursor, err := coll.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, fmt.Errorf("sum %s quantity for product %s: %w", coll.Name(), productID, err)
	}
	defer cursor.Close(ctx)

	var result struct {
		Total float64 `bson:"total"`
	}
	if cursor.Next(ctx) {
		if err := cursor.Decode(&result); err != nil {
			return 0, fmt.Errorf("decode %s quantity sum: %w", coll.Name(), err)
		}
	}
	if err := cursor.Err(); err != nil {
		return 0, fmt.Errorf("sum %s quantity for product %s: %w", coll.Name(), productID, err)
	}

	return result.Total, nil
}
