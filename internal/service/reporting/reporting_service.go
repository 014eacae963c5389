package reporting

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"

	"github.com/mamadbah2/farmdesk/internal/domain/models"
	"github.com/mamadbah2/farmdesk/internal/repository/sheets"
)

const (
	dateLayout       = "2006-01-02"
	exportSheetRange = "Reports!A:H"
)

// ErrExportDisabled is returned when no spreadsheet is configured.
var ErrExportDisabled = errors.New("sheets export is not configured")

// SaleReader lists a user's sales.
type SaleReader interface {
	ListOwned(ctx context.Context, userID string, extra bson.M) ([]models.Sale, error)
}

// ProductReader lists a user's products.
type ProductReader interface {
	ListOwned(ctx context.Context, userID string, extra bson.M) ([]models.Product, error)
}

// ProductionReader lists a user's production batches.
type ProductionReader interface {
	ListOwned(ctx context.Context, userID string, extra bson.M) ([]models.Production, error)
}

// StockReader lists a user's stock levels.
type StockReader interface {
	ListOwned(ctx context.Context, userID string, extra bson.M) ([]models.Stock, error)
}

// GoalReader lists a user's goals.
type GoalReader interface {
	ListOwned(ctx context.Context, userID string, extra bson.M) ([]models.Goal, error)
}

// SnapshotStore persists and reads daily activity snapshots.
type SnapshotStore interface {
	SaveDailySnapshot(ctx context.Context, snapshot models.DailySnapshot) error
	ListForUser(ctx context.Context, userID string) ([]models.DailySnapshot, error)
}

// Summary is the dashboard headline block.
type Summary struct {
	ProductCount     int     `json:"product_count"`
	SalesCount       int     `json:"sales_count"`
	SalesRevenue     float64 `json:"sales_revenue"`
	QuantitySold     float64 `json:"quantity_sold"`
	EstimatedMargin  float64 `json:"estimated_margin"`
	StockOnHand      float64 `json:"stock_on_hand"`
	OpenGoals        int     `json:"open_goals"`
	CompletedGoals   int     `json:"completed_goals"`
	ActiveBatches    int     `json:"active_batches"`
	HarvestedTotal   float64 `json:"harvested_quantity"`
}

// ProductSales aggregates sales per product for the dashboard chart.
type ProductSales struct {
	ProductID   string  `json:"product_id"`
	ProductName string  `json:"product_name"`
	Quantity    float64 `json:"quantity"`
	Revenue     float64 `json:"revenue"`
}

// StatusTotal aggregates production quantity per lifecycle status.
type StatusTotal struct {
	Status   models.ProductionStatus `json:"status"`
	Count    int                     `json:"count"`
	Quantity float64                 `json:"quantity"`
}

// Service computes dashboard aggregates from the user's records. All
// statistics are derived on read; nothing here mutates farm data.
type Service struct {
	salesr      SaleReader
	products    ProductReader
	productions ProductionReader
	stock       StockReader
	goals       GoalReader
	snapshots   SnapshotStore
	exporter    sheets.Repository
	logger      *zap.Logger
}

// NewService wires a reporting service. exporter may be nil, which disables
// spreadsheet export.
func NewService(salesr SaleReader, products ProductReader, productions ProductionReader, stock StockReader, goals GoalReader, snapshots SnapshotStore, exporter sheets.Repository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		salesr:      salesr,
		products:    products,
		productions: productions,
		stock:       stock,
		goals:       goals,
		snapshots:   snapshots,
		exporter:    exporter,
		logger:      logger,
	}
}

// Summary computes the dashboard headline numbers for one user.
func (s *Service) Summary(ctx context.Context, userID string) (Summary, error) {
	var out Summary

	products, err := s.products.ListOwned(ctx, userID, nil)
	if err != nil {
		return out, fmt.Errorf("load products: %w", err)
	}
	byID := make(map[string]models.Product, len(products))
	for _, p := range products {
		byID[p.ID.Hex()] = p
	}
	out.ProductCount = len(products)

	sales, err := s.salesr.ListOwned(ctx, userID, nil)
	if err != nil {
		return out, fmt.Errorf("load sales: %w", err)
	}
	for _, sale := range sales {
		out.SalesCount++
		out.SalesRevenue += sale.TotalPrice
		out.QuantitySold += sale.Quantity
		if product, ok := byID[sale.ProductID]; ok {
			out.EstimatedMargin += sale.Quantity * product.Margin()
		}
	}

	productions, err := s.productions.ListOwned(ctx, userID, nil)
	if err != nil {
		return out, fmt.Errorf("load productions: %w", err)
	}
	for _, batch := range productions {
		switch batch.Status {
		case models.ProductionHarvested:
			out.HarvestedTotal += batch.Quantity
		default:
			out.ActiveBatches++
		}
	}

	stock, err := s.stock.ListOwned(ctx, userID, nil)
	if err != nil {
		return out, fmt.Errorf("load stock: %w", err)
	}
	for _, entry := range stock {
		out.StockOnHand += entry.AvailableQuantity
	}

	goals, err := s.goals.ListOwned(ctx, userID, nil)
	if err != nil {
		return out, fmt.Errorf("load goals: %w", err)
	}
	for _, goal := range goals {
		if goal.Notified {
			out.CompletedGoals++
		} else {
			out.OpenGoals++
		}
	}

	return out, nil
}

// SalesByProduct aggregates the user's sales per product.
func (s *Service) SalesByProduct(ctx context.Context, userID string) ([]ProductSales, error) {
	products, err := s.products.ListOwned(ctx, userID, nil)
	if err != nil {
		return nil, fmt.Errorf("load products: %w", err)
	}
	names := make(map[string]string, len(products))
	for _, p := range products {
		names[p.ID.Hex()] = p.Name
	}

	sales, err := s.salesr.ListOwned(ctx, userID, nil)
	if err != nil {
		return nil, fmt.Errorf("load sales: %w", err)
	}

	totals := make(map[string]*ProductSales)
	order := make([]string, 0)
	for _, sale := range sales {
		entry, ok := totals[sale.ProductID]
		if !ok {
			entry = &ProductSales{ProductID: sale.ProductID, ProductName: names[sale.ProductID]}
			totals[sale.ProductID] = entry
			order = append(order, sale.ProductID)
		}
		entry.Quantity += sale.Quantity
		entry.Revenue += sale.TotalPrice
	}

	out := make([]ProductSales, 0, len(order))
	for _, id := range order {
		out = append(out, *totals[id])
	}
	return out, nil
}

// ProductionByStatus aggregates the user's production batches per status.
func (s *Service) ProductionByStatus(ctx context.Context, userID string) ([]StatusTotal, error) {
	productions, err := s.productions.ListOwned(ctx, userID, nil)
	if err != nil {
		return nil, fmt.Errorf("load productions: %w", err)
	}

	statuses := []models.ProductionStatus{models.ProductionAwaiting, models.ProductionInProgress, models.ProductionHarvested}
	out := make([]StatusTotal, len(statuses))
	for i, status := range statuses {
		out[i].Status = status
	}

	for _, batch := range productions {
		for i, status := range statuses {
			if batch.Status == status {
				out[i].Count++
				out[i].Quantity += batch.Quantity
			}
		}
	}
	return out, nil
}

// History returns the user's persisted daily snapshots.
func (s *Service) History(ctx context.Context, userID string) ([]models.DailySnapshot, error) {
	return s.snapshots.ListForUser(ctx, userID)
}

// SaveDailySnapshot aggregates one user's activity for a day and persists it.
func (s *Service) SaveDailySnapshot(ctx context.Context, userID string, day time.Time) error {
	day = day.UTC().Truncate(24 * time.Hour)
	next := day.Add(24 * time.Hour)

	sales, err := s.salesr.ListOwned(ctx, userID, nil)
	if err != nil {
		return fmt.Errorf("load sales: %w", err)
	}

	snapshot := models.DailySnapshot{
		UserID:    userID,
		Date:      day,
		CreatedAt: time.Now().UTC(),
	}
	for _, sale := range sales {
		if sale.SaleDate.Before(day) || !sale.SaleDate.Before(next) {
			continue
		}
		snapshot.SalesCount++
		snapshot.SalesRevenue += sale.TotalPrice
		snapshot.QuantitySold += sale.Quantity
	}

	productions, err := s.productions.ListOwned(ctx, userID, nil)
	if err != nil {
		return fmt.Errorf("load productions: %w", err)
	}
	for _, batch := range productions {
		if batch.Status != models.ProductionHarvested || batch.HarvestDate == nil {
			continue
		}
		if batch.HarvestDate.Before(day) || !batch.HarvestDate.Before(next) {
			continue
		}
		snapshot.QuantityHarvest += batch.Quantity
	}

	goals, err := s.goals.ListOwned(ctx, userID, bson.M{"notified": false})
	if err != nil {
		return fmt.Errorf("load goals: %w", err)
	}
	snapshot.OpenGoals = len(goals)

	return s.snapshots.SaveDailySnapshot(ctx, snapshot)
}

// ExportSummary appends the user's current summary as one spreadsheet row.
func (s *Service) ExportSummary(ctx context.Context, userID string) error {
	if s.exporter == nil {
		return ErrExportDisabled
	}

	summary, err := s.Summary(ctx, userID)
	if err != nil {
		return err
	}

	existing, err := s.exporter.ReadRange(ctx, exportSheetRange)
	if err != nil {
		return fmt.Errorf("read export sheet: %w", err)
	}
	if len(existing) == 0 {
		header := []interface{}{"date", "user_id", "sales_count", "sales_revenue", "quantity_sold", "estimated_margin", "stock_on_hand", "open_goals"}
		if err := s.exporter.AppendRow(ctx, exportSheetRange, header); err != nil {
			return fmt.Errorf("write export header: %w", err)
		}
	}

	row := []interface{}{
		time.Now().UTC().Format(dateLayout),
		userID,
		summary.SalesCount,
		summary.SalesRevenue,
		summary.QuantitySold,
		summary.EstimatedMargin,
		summary.StockOnHand,
		summary.OpenGoals,
	}
	if err := s.exporter.AppendRow(ctx, exportSheetRange, row); err != nil {
		return fmt.Errorf("export summary: %w", err)
	}

	s.logger.Info("summary exported", zap.String("user_id", userID))
	return nil
}
