package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/mamadbah2/farmdesk/internal/domain/models"
)

// UserRepository stores user accounts. Users are the one collection not
// scoped by an owner field.
type UserRepository struct {
	coll   *mongo.Collection
	logger *zap.Logger
}

// NewUserRepository builds the users access layer.
func NewUserRepository(store *Store, logger *zap.Logger) *UserRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UserRepository{coll: store.Collection(CollUsers), logger: logger}
}

// Create inserts a user account and returns the store-assigned id.
func (r *UserRepository) Create(ctx context.Context, user models.User) (string, error) {
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}
	if err := models.Validate(user); err != nil {
		return "", err
	}

	res, err := r.coll.InsertOne(ctx, user)
	if err != nil {
		return "", fmt.Errorf("insert user: %w", err)
	}

	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("insert user: unexpected id type %T", res.InsertedID)
	}
	return oid.Hex(), nil
}

// FindByEmail returns the account registered under email, or nil when none
// exists.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	return &user, nil
}

// ListAll returns every registered account. Used by the daily snapshot job.
func (r *UserRepository) ListAll(ctx context.Context) ([]models.User, error) {
	cursor, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer cursor.Close(ctx)

	var out []models.User
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode users: %w", err)
	}
	return out, nil
}

// SetPushToken stores the device push token for a user. An empty token
// clears it.
func (r *UserRepository) SetPushToken(ctx context.Context, id string, token string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{"push_token": token}})
	if err != nil {
		return fmt.Errorf("set push token for user %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// FindByID returns the account with the given id.
func (r *UserRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	var user models.User
	err = r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find user %s: %w", id, err)
	}
	return &user, nil
}
