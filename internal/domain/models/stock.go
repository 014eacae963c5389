package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Stock holds the current available quantity for one product.
type Stock struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ProductID         string             `bson:"product_id" json:"product_id" validate:"required"`
	AvailableQuantity float64            `bson:"available_quantity" json:"available_quantity" validate:"gte=0"`
	LastUpdated       time.Time          `bson:"last_updated" json:"last_updated"`
	OwnerID           string             `bson:"owner_id" json:"owner_id"`
}
