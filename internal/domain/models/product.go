package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Product is a sellable or producible farm item registered by a user.
// Margin is derived from the two prices and never stored.
type Product struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name" json:"name" validate:"required"`
	Category  string             `bson:"category" json:"category" validate:"required"`
	UnitPrice float64            `bson:"unit_price" json:"unit_price" validate:"gte=0"`
	CostPrice float64            `bson:"cost_price" json:"cost_price" validate:"gte=0"`
	OwnerID   string             `bson:"owner_id" json:"owner_id"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}

// Margin returns the per-unit profit margin.
func (p Product) Margin() float64 {
	return p.UnitPrice - p.CostPrice
}
