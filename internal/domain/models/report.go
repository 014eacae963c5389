package models

import "time"

// DailySnapshot represents one user's aggregated day of activity, persisted
// by the scheduler so dashboards can chart history without rescanning raw
// records.
type DailySnapshot struct {
	UserID          string    `bson:"user_id" json:"user_id"`
	Date            time.Time `bson:"date" json:"date"`
	SalesCount      int       `bson:"sales_count" json:"sales_count"`
	SalesRevenue    float64   `bson:"sales_revenue" json:"sales_revenue"`
	QuantitySold    float64   `bson:"quantity_sold" json:"quantity_sold"`
	QuantityHarvest float64   `bson:"quantity_harvested" json:"quantity_harvested"`
	OpenGoals       int       `bson:"open_goals" json:"open_goals"`
	CreatedAt       time.Time `bson:"created_at" json:"created_at"`
}
