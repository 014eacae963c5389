package reporting

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/mamadbah2/farmdesk/internal/domain/models"
)

type fixedSales struct{ sales []models.Sale }

func (f *fixedSales) ListOwned(context.Context, string, bson.M) ([]models.Sale, error) {
	return f.sales, nil
}

type fixedProducts struct{ products []models.Product }

func (f *fixedProducts) ListOwned(context.Context, string, bson.M) ([]models.Product, error) {
	return f.products, nil
}

type fixedProductions struct{ productions []models.Production }

func (f *fixedProductions) ListOwned(context.Context, string, bson.M) ([]models.Production, error) {
	return f.productions, nil
}

type fixedStock struct{ stock []models.Stock }

func (f *fixedStock) ListOwned(context.Context, string, bson.M) ([]models.Stock, error) {
	return f.stock, nil
}

type fixedGoals struct{ goals []models.Goal }

func (f *fixedGoals) ListOwned(_ context.Context, _ string, extra bson.M) ([]models.Goal, error) {
	if open, ok := extra["notified"]; ok && open == false {
		var out []models.Goal
		for _, g := range f.goals {
			if !g.Notified {
				out = append(out, g)
			}
		}
		return out, nil
	}
	return f.goals, nil
}

type fakeSnapshots struct {
	saved  []models.DailySnapshot
	stored []models.DailySnapshot
}

func (f *fakeSnapshots) SaveDailySnapshot(_ context.Context, snapshot models.DailySnapshot) error {
	f.saved = append(f.saved, snapshot)
	return nil
}

func (f *fakeSnapshots) ListForUser(context.Context, string) ([]models.DailySnapshot, error) {
	return f.stored, nil
}

type fakeExporter struct {
	ranges []string
	rows   [][]interface{}
}

func (f *fakeExporter) AppendRow(_ context.Context, sheetRange string, values []interface{}) error {
	f.ranges = append(f.ranges, sheetRange)
	f.rows = append(f.rows, values)
	return nil
}

func (f *fakeExporter) ReadRange(context.Context, string) ([][]interface{}, error) {
	return f.rows, nil
}

func harvestedAt(ts time.Time) *time.Time { return &ts }

func TestSummary(t *testing.T) {
	maize := models.Product{ID: primitive.NewObjectID(), Name: "Maize", UnitPrice: 10, CostPrice: 6}
	rice := models.Product{ID: primitive.NewObjectID(), Name: "Rice", UnitPrice: 20, CostPrice: 15}
	now := time.Now().UTC()

	svc := NewService(
		&fixedSales{sales: []models.Sale{
			{ProductID: maize.ID.Hex(), Quantity: 3, TotalPrice: 30, SaleDate: now},
			{ProductID: rice.ID.Hex(), Quantity: 2, TotalPrice: 40, SaleDate: now},
			{ProductID: "deleted-product", Quantity: 1, TotalPrice: 9, SaleDate: now},
		}},
		&fixedProducts{products: []models.Product{maize, rice}},
		&fixedProductions{productions: []models.Production{
			{ProductID: maize.ID.Hex(), Status: models.ProductionAwaiting, Quantity: 5},
			{ProductID: maize.ID.Hex(), Status: models.ProductionInProgress, Quantity: 7},
			{ProductID: rice.ID.Hex(), Status: models.ProductionHarvested, Quantity: 11},
		}},
		&fixedStock{stock: []models.Stock{
			{ProductID: maize.ID.Hex(), AvailableQuantity: 4},
			{ProductID: rice.ID.Hex(), AvailableQuantity: 6},
		}},
		&fixedGoals{goals: []models.Goal{
			{Type: models.GoalSale, ProductID: maize.ID.Hex(), TargetQuantity: 10},
			{Type: models.GoalSale, ProductID: rice.ID.Hex(), TargetQuantity: 5, Notified: true},
		}},
		&fakeSnapshots{}, nil, nil,
	)

	summary, err := svc.Summary(context.Background(), "u1")
	require.NoError(t, err)

	assert.Equal(t, 2, summary.ProductCount)
	assert.Equal(t, 3, summary.SalesCount)
	assert.InDelta(t, 79, summary.SalesRevenue, 1e-9)
	assert.InDelta(t, 6, summary.QuantitySold, 1e-9)
	// Margin counts only sales whose product still exists: 3*4 + 2*5.
	assert.InDelta(t, 22, summary.EstimatedMargin, 1e-9)
	assert.InDelta(t, 10, summary.StockOnHand, 1e-9)
	assert.Equal(t, 1, summary.OpenGoals)
	assert.Equal(t, 1, summary.CompletedGoals)
	assert.Equal(t, 2, summary.ActiveBatches)
	assert.InDelta(t, 11, summary.HarvestedTotal, 1e-9)
}

func TestSalesByProductKeepsFirstSeenOrder(t *testing.T) {
	maize := models.Product{ID: primitive.NewObjectID(), Name: "Maize"}
	now := time.Now().UTC()

	svc := NewService(
		&fixedSales{sales: []models.Sale{
			{ProductID: "unknown", Quantity: 1, TotalPrice: 5, SaleDate: now},
			{ProductID: maize.ID.Hex(), Quantity: 3, TotalPrice: 30, SaleDate: now},
			{ProductID: maize.ID.Hex(), Quantity: 2, TotalPrice: 20, SaleDate: now},
		}},
		&fixedProducts{products: []models.Product{maize}},
		&fixedProductions{}, &fixedStock{}, &fixedGoals{}, &fakeSnapshots{}, nil, nil,
	)

	out, err := svc.SalesByProduct(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, out, 2)

	assert.Equal(t, "unknown", out[0].ProductID)
	assert.Empty(t, out[0].ProductName)

	assert.Equal(t, maize.ID.Hex(), out[1].ProductID)
	assert.Equal(t, "Maize", out[1].ProductName)
	assert.InDelta(t, 5, out[1].Quantity, 1e-9)
	assert.InDelta(t, 50, out[1].Revenue, 1e-9)
}

func TestProductionByStatusAlwaysReportsThreeStatuses(t *testing.T) {
	svc := NewService(
		&fixedSales{}, &fixedProducts{},
		&fixedProductions{productions: []models.Production{
			{ProductID: "P1", Status: models.ProductionHarvested, Quantity: 8},
			{ProductID: "P1", Status: models.ProductionHarvested, Quantity: 2},
		}},
		&fixedStock{}, &fixedGoals{}, &fakeSnapshots{}, nil, nil,
	)

	out, err := svc.ProductionByStatus(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, out, 3)

	assert.Equal(t, models.ProductionAwaiting, out[0].Status)
	assert.Zero(t, out[0].Count)
	assert.Equal(t, models.ProductionInProgress, out[1].Status)
	assert.Zero(t, out[1].Count)
	assert.Equal(t, models.ProductionHarvested, out[2].Status)
	assert.Equal(t, 2, out[2].Count)
	assert.InDelta(t, 10, out[2].Quantity, 1e-9)
}

func TestSaveDailySnapshotFiltersToTheDay(t *testing.T) {
	day := time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC)
	inside := day.Add(10 * time.Hour)
	before := day.Add(-1 * time.Hour)
	after := day.Add(25 * time.Hour)

	snapshots := &fakeSnapshots{}
	svc := NewService(
		&fixedSales{sales: []models.Sale{
			{ProductID: "P1", Quantity: 2, TotalPrice: 20, SaleDate: inside},
			{ProductID: "P1", Quantity: 5, TotalPrice: 50, SaleDate: before},
			{ProductID: "P1", Quantity: 7, TotalPrice: 70, SaleDate: after},
		}},
		&fixedProducts{},
		&fixedProductions{productions: []models.Production{
			{ProductID: "P1", Status: models.ProductionHarvested, Quantity: 4, HarvestDate: harvestedAt(inside)},
			{ProductID: "P1", Status: models.ProductionHarvested, Quantity: 9, HarvestDate: harvestedAt(before)},
			{ProductID: "P1", Status: models.ProductionInProgress, Quantity: 3},
		}},
		&fixedStock{},
		&fixedGoals{goals: []models.Goal{
			{Type: models.GoalSale, ProductID: "P1", TargetQuantity: 10},
			{Type: models.GoalSale, ProductID: "P2", TargetQuantity: 10, Notified: true},
		}},
		snapshots, nil, nil,
	)

	require.NoError(t, svc.SaveDailySnapshot(context.Background(), "u1", day.Add(13*time.Hour)))
	require.Len(t, snapshots.saved, 1)

	got := snapshots.saved[0]
	assert.Equal(t, "u1", got.UserID)
	assert.Equal(t, day, got.Date)
	assert.Equal(t, 1, got.SalesCount)
	assert.InDelta(t, 20, got.SalesRevenue, 1e-9)
	assert.InDelta(t, 2, got.QuantitySold, 1e-9)
	assert.InDelta(t, 4, got.QuantityHarvest, 1e-9)
	assert.Equal(t, 1, got.OpenGoals)
}

func TestExportSummary(t *testing.T) {
	svc := NewService(&fixedSales{}, &fixedProducts{}, &fixedProductions{}, &fixedStock{}, &fixedGoals{}, &fakeSnapshots{}, nil, nil)
	assert.ErrorIs(t, svc.ExportSummary(context.Background(), "u1"), ErrExportDisabled)

	exporter := &fakeExporter{}
	svc = NewService(
		&fixedSales{sales: []models.Sale{{ProductID: "P1", Quantity: 2, TotalPrice: 20, SaleDate: time.Now().UTC()}}},
		&fixedProducts{}, &fixedProductions{}, &fixedStock{}, &fixedGoals{}, &fakeSnapshots{},
		exporter, nil,
	)

	// First export against an empty sheet writes the header then the data row.
	require.NoError(t, svc.ExportSummary(context.Background(), "u1"))
	require.Len(t, exporter.rows, 2)
	assert.Equal(t, "Reports!A:H", exporter.ranges[0])
	assert.Equal(t, "date", exporter.rows[0][0])
	require.Len(t, exporter.rows[1], 8)
	assert.Equal(t, "u1", exporter.rows[1][1])
	assert.Equal(t, 1, exporter.rows[1][2])
	assert.Equal(t, 20.0, exporter.rows[1][3])

	// Later exports append only data rows.
	require.NoError(t, svc.ExportSummary(context.Background(), "u1"))
	require.Len(t, exporter.rows, 3)
	assert.Equal(t, "u1", exporter.rows[2][1])
}
