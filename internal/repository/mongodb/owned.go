package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/mamadbah2/farmdesk/internal/domain/models"
)

const ownerField = "owner_id"

// Collection provides ownership-checked CRUD over one collection of T
// documents. Every read and mutation is scoped to the acting user: list
// queries filter on the owner field, and by-id operations fetch the document
// first and refuse to proceed when the stored owner differs.
//
// The fetch-check-mutate sequence in Update/Delete is not atomic with respect
// to the store. The owner field is immutable once stamped by Create, so no
// normal flow can change ownership between the check and the write.
type Collection[T any] struct {
	coll   *mongo.Collection
	logger *zap.Logger
}

// NewCollection builds the access layer for one collection.
func NewCollection[T any](store *Store, name string, logger *zap.Logger) *Collection[T] {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Collection[T]{coll: store.Collection(name), logger: logger}
}

// ListOwned returns every document owned by userID that also matches the
// optional extra equality filters. Documents failing schema validation are
// logged and dropped from the result rather than failing the whole read.
func (c *Collection[T]) ListOwned(ctx context.Context, userID string, extra bson.M) ([]T, error) {
	filter := bson.M{ownerField: userID}
	for k, v := range extra {
		filter[k] = v
	}

	cursor, err := c.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", c.coll.Name(), err)
	}
	defer cursor.Close(ctx)

	var out []T
	for cursor.Next(ctx) {
		var doc T
		if err := cursor.Decode(&doc); err != nil {
			c.logger.Warn("skip undecodable document", zap.String("collection", c.coll.Name()), zap.Error(err))
			continue
		}
		if err := models.Validate(doc); err != nil {
			c.logger.Warn("skip invalid document", zap.String("collection", c.coll.Name()), zap.Error(err))
			continue
		}
		out = append(out, doc)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("list %s: %w", c.coll.Name(), err)
	}

	return out, nil
}

// GetOwned fetches a document by id and verifies the acting user owns it.
// Returns ErrNotFound when absent, ErrAccessDenied on owner mismatch and a
// models.ErrInvalidDocument wrap when the stored document fails validation.
func (c *Collection[T]) GetOwned(ctx context.Context, id string, userID string) (*T, error) {
	raw, _, err := c.fetchOwned(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	var doc T
	if err := bson.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode %s document: %w", c.coll.Name(), err)
	}
	if err := models.Validate(doc); err != nil {
		return nil, err
	}

	return &doc, nil
}

// CreateOwned stamps the owner field onto the document and inserts it,
// returning the store-assigned id as a hex string.
func (c *Collection[T]) CreateOwned(ctx context.Context, doc T, userID string) (string, error) {
	if err := models.Validate(doc); err != nil {
		return "", err
	}

	fields, err := encodeOwned(doc, userID)
	if err != nil {
		return "", fmt.Errorf("encode %s document: %w", c.coll.Name(), err)
	}

	res, err := c.coll.InsertOne(ctx, fields)
	if err != nil {
		return "", fmt.Errorf("insert into %s: %w", c.coll.Name(), err)
	}

	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("insert into %s: unexpected id type %T", c.coll.Name(), res.InsertedID)
	}
	return oid.Hex(), nil
}

// UpdateOwned applies a partial $set update after verifying ownership.
// The owner field itself is never updatable.
func (c *Collection[T]) UpdateOwned(ctx context.Context, id string, userID string, set bson.M) error {
	_, oid, err := c.fetchOwned(ctx, id, userID)
	if err != nil {
		return err
	}

	delete(set, ownerField)
	if len(set) == 0 {
		return nil
	}

	if _, err := c.coll.UpdateByID(ctx, oid, bson.M{"$set": set}); err != nil {
		return fmt.Errorf("update %s/%s: %w", c.coll.Name(), id, err)
	}
	return nil
}

// DeleteOwned removes a document after verifying ownership.
func (c *Collection[T]) DeleteOwned(ctx context.Context, id string, userID string) error {
	_, oid, err := c.fetchOwned(ctx, id, userID)
	if err != nil {
		return err
	}

	if _, err := c.coll.DeleteOne(ctx, bson.M{"_id": oid}); err != nil {
		return fmt.Errorf("delete %s/%s: %w", c.coll.Name(), id, err)
	}
	return nil
}

func (c *Collection[T]) fetchOwned(ctx context.Context, id string, userID string) (bson.Raw, primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, primitive.NilObjectID, ErrNotFound
	}

	raw, err := c.coll.FindOne(ctx, bson.M{"_id": oid}).Raw()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, primitive.NilObjectID, ErrNotFound
	}
	if err != nil {
		return nil, primitive.NilObjectID, fmt.Errorf("fetch %s/%s: %w", c.coll.Name(), id, err)
	}

	if err := checkOwner(raw, userID); err != nil {
		return nil, primitive.NilObjectID, err
	}
	return raw, oid, nil
}

// encodeOwned flattens a document into its stored field map, dropping any
// client-supplied id and stamping the acting user as owner.
func encodeOwned(doc any, userID string) (bson.M, error) {
	data, err := bson.Marshal(doc)
	if err != nil {
		return nil, err
	}

	var fields bson.M
	if err := bson.Unmarshal(data, &fields); err != nil {
		return nil, err
	}
	delete(fields, "_id")
	fields[ownerField] = userID
	return fields, nil
}

// checkOwner enforces the ownership invariant on a fetched document.
func checkOwner(raw bson.Raw, userID string) error {
	val, err := raw.LookupErr(ownerField)
	if err != nil {
		return ErrAccessDenied
	}
	owner, ok := val.StringValueOK()
	if !ok || owner != userID {
		return ErrAccessDenied
	}
	return nil
}
