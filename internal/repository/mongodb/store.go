package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names used by the application.
const (
	CollProducts      = "products"
	CollSales         = "sales"
	CollProductions   = "productions"
	CollStock         = "stock"
	CollGoals         = "goals"
	CollNotifications = "notifications"
	CollUsers         = "users"
	CollDailyReports  = "daily_reports"
)

// Sentinel errors surfaced by the collection access layer.
var (
	ErrNotFound     = errors.New("document not found")
	ErrAccessDenied = errors.New("access denied")
)

// Store holds the shared MongoDB connection. It is constructed once in main
// and injected into every repository.
type Store struct {
	client *mongo.Client
	db     *mongo.Database
}

// NewStore connects to MongoDB and verifies the connection with a ping.
func NewStore(ctx context.Context, uri string, dbName string) (*Store, error) {
	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return &Store{
		client: client,
		db:     client.Database(dbName),
	}, nil
}

// Collection returns a handle for the named collection.
func (s *Store) Collection(name string) *mongo.Collection {
	return s.db.Collection(name)
}

// Close closes the MongoDB connection.
func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
