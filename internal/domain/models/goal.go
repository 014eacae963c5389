package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// GoalType enumerates the record kinds a goal can target.
type GoalType string

const (
	GoalSale       GoalType = "sale"
	GoalProduction GoalType = "production"
)

// Goal is a cumulative quantity target over a user's sales or productions of
// one product. Notified starts false and flips to true exactly once, when the
// cumulative matching quantity first reaches TargetQuantity; it never flips
// back. Only the goal notifier writes Notified.
type Goal struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Type           GoalType           `bson:"type" json:"type" validate:"required,oneof=sale production"`
	ProductID      string             `bson:"product_id" json:"product_id" validate:"required"`
	TargetQuantity float64            `bson:"target_quantity" json:"target_quantity" validate:"gt=0"`
	StartDate      time.Time          `bson:"start_date" json:"start_date" validate:"required"`
	EndDate        time.Time          `bson:"end_date" json:"end_date" validate:"required"`
	Notified       bool               `bson:"notified" json:"notified"`
	OwnerID        string             `bson:"owner_id" json:"owner_id"`
}
