package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProductionStatus enumerates the three-state production lifecycle.
type ProductionStatus string

const (
	ProductionAwaiting   ProductionStatus = "awaiting"
	ProductionInProgress ProductionStatus = "in_progress"
	ProductionHarvested  ProductionStatus = "harvested"
)

// Production tracks one production batch from planting to harvest.
// HarvestDate stays nil until the batch reaches the harvested status.
type Production struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ProductID   string             `bson:"product_id" json:"product_id" validate:"required"`
	Status      ProductionStatus   `bson:"status" json:"status" validate:"required,oneof=awaiting in_progress harvested"`
	Quantity    float64            `bson:"quantity" json:"quantity" validate:"gte=0"`
	StartDate   time.Time          `bson:"start_date" json:"start_date" validate:"required"`
	HarvestDate *time.Time         `bson:"harvest_date,omitempty" json:"harvest_date,omitempty"`
	OwnerID     string             `bson:"owner_id" json:"owner_id"`
}
