// Package farm implements the record-keeping operations behind the product,
// sale, production and stock screens.
package farm

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"

	"github.com/mamadbah2/farmdesk/internal/domain/models"
)

// ProductStore defines the product operations the service needs.
type ProductStore interface {
	ListOwned(ctx context.Context, userID string, extra bson.M) ([]models.Product, error)
	GetOwned(ctx context.Context, id string, userID string) (*models.Product, error)
	CreateOwned(ctx context.Context, doc models.Product, userID string) (string, error)
	UpdateOwned(ctx context.Context, id string, userID string, set bson.M) error
	DeleteOwned(ctx context.Context, id string, userID string) error
}

// SaleStore defines the sale operations the service needs.
type SaleStore interface {
	ListOwned(ctx context.Context, userID string, extra bson.M) ([]models.Sale, error)
	GetOwned(ctx context.Context, id string, userID string) (*models.Sale, error)
	CreateOwned(ctx context.Context, doc models.Sale, userID string) (string, error)
	UpdateOwned(ctx context.Context, id string, userID string, set bson.M) error
	DeleteOwned(ctx context.Context, id string, userID string) error
}

// ProductionStore defines the production operations the service needs.
type ProductionStore interface {
	ListOwned(ctx context.Context, userID string, extra bson.M) ([]models.Production, error)
	GetOwned(ctx context.Context, id string, userID string) (*models.Production, error)
	CreateOwned(ctx context.Context, doc models.Production, userID string) (string, error)
	UpdateOwned(ctx context.Context, id string, userID string, set bson.M) error
	DeleteOwned(ctx context.Context, id string, userID string) error
}

// StockStore defines the stock operations the service needs.
type StockStore interface {
	ListOwned(ctx context.Context, userID string, extra bson.M) ([]models.Stock, error)
	GetOwned(ctx context.Context, id string, userID string) (*models.Stock, error)
	SetQuantity(ctx context.Context, userID string, productID string, quantity float64) error
}

// Service exposes CRUD over the user's farm records.
type Service struct {
	products    ProductStore
	sales       SaleStore
	productions ProductionStore
	stock       StockStore
	logger      *zap.Logger
}

// NewService wires a farm record service instance.
func NewService(products ProductStore, sales SaleStore, productions ProductionStore, stock StockStore, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		products:    products,
		sales:       sales,
		productions: productions,
		stock:       stock,
		logger:      logger,
	}
}
