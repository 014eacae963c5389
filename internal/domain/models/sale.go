package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// GeoPoint locates where a sale happened. Optional on every sale.
type GeoPoint struct {
	Latitude  float64 `bson:"latitude" json:"latitude" validate:"gte=-90,lte=90"`
	Longitude float64 `bson:"longitude" json:"longitude" validate:"gte=-180,lte=180"`
}

// Sale records one sale transaction. ProductID is an unchecked reference;
// the store enforces no foreign keys.
type Sale struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ProductID  string             `bson:"product_id" json:"product_id" validate:"required"`
	Quantity   float64            `bson:"quantity" json:"quantity" validate:"gt=0"`
	TotalPrice float64            `bson:"total_price" json:"total_price" validate:"gte=0"`
	ClientName string             `bson:"client_name" json:"client_name"`
	Location   *GeoPoint          `bson:"location,omitempty" json:"location,omitempty"`
	SaleDate   time.Time          `bson:"sale_date" json:"sale_date" validate:"required"`
	OwnerID    string             `bson:"owner_id" json:"owner_id"`
}
