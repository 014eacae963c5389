package farm

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

type capturingStore[T any] struct {
	listExtra bson.M
	created   []T
	sets      map[string]bson.M
}

func (c *capturingStore[T]) ListOwned(_ context.Context, _ string, extra bson.M) ([]T, error) {
	c.listExtra = extra
	return nil, nil
}

func (c *capturingStore[T]) GetOwned(context.Context, string, string) (*T, error) {
	return nil, nil
}

func (c *capturingStore[T]) CreateOwned(_ context.Context, doc T, _ string) (string, error) {
	c.created = append(c.created, doc)
	return primitive.NewObjectID().Hex(), nil
}

func (c *capturingStore[T]) UpdateOwned(_ context.Context, id string, _ string, set bson.M) error {
	if c.sets == nil {
		c.sets = make(map[string]bson.M)
	}
	c.sets[id] = set
	return nil
}

func (c *capturingStore[T]) DeleteOwned(context.Context, string, string) error { return nil }

type capturingStockStore struct {
	capturingStore[models.Stock]
	setUser    string
	setProduct string
	setQty     float64
}

func (c *capturingStockStore) SetQuantity(_ context.Context, userID, productID string, quantity float64) error {
	c.setUser, c.setProduct, c.setQty = userID, productID, quantity
	return nil
}

func newTestService() (*Service, *capturingStore[models.Product], *capturingStore[models.Sale], *capturingStore[models.Production], *capturingStockStore) {
	products := &capturingStore[models.Product]{}
	sales := &capturingStore[models.Sale]{}
	productions := &capturingStore[models.Production]{}
	stock := &capturingStockStore{}
	return NewService(products, sales, productions, stock, nil), products, sales, productions, stock
}

func TestCreateProductStampsCreatedAt(t *testing.T) {
	svc, products, _, _, _ := newTestService()

	_, err := svc.CreateProduct(context.Background(), models.Product{Name: "Maize", Category: "cereal"}, "u1")
	require.NoError(t, err)
	require.Len(t, products.created, 1)
	assert.WithinDuration(t, time.Now().UTC(), products.created[0].CreatedAt, 5*time.Second)
}

func TestUpdateProductOnlySetsProvidedFields(t *testing.T) {
	svc, products, _, _, _ := newTestService()

	name := "Rice"
	price := 14.0
	require.NoError(t, svc.UpdateProduct(context.Background(), "p1", "u1", ProductUpdate{
		Name:      &name,
		UnitPrice: &price,
	}))

	set := products.sets["p1"]
	require.NotNil(t, set)
	assert.Equal(t, bson.M{"name": "Rice", "unit_price": 14.0}, set)
}

func TestListSalesFiltersByProduct(t *testing.T) {
	svc, _, sales, _, _ := newTestService()
	ctx := context.Background()

	_, err := svc.ListSales(ctx, "u1", "")
	require.NoError(t, err)
	assert.Nil(t, sales.listExtra)

	_, err = svc.ListSales(ctx, "u1", "P1")
	require.NoError(t, err)
	assert.Equal(t, bson.M{"product_id": "P1"}, sales.listExtra)
}

func TestCreateProductionDefaults(t *testing.T) {
	svc, _, _, productions, _ := newTestService()
	harvested := time.Now().UTC()

	_, err := svc.CreateProduction(context.Background(), models.Production{
		ProductID:   "P1",
		Quantity:    20,
		StartDate:   time.Now().UTC(),
		HarvestDate: &harvested, // clients cannot pre-date a harvest
	}, "u1")
	require.NoError(t, err)

	require.Len(t, productions.created, 1)
	assert.Equal(t, models.ProductionAwaiting, productions.created[0].Status)
	assert.Nil(t, productions.created[0].HarvestDate)
}

func TestUpdateProductionHarvestStampsDate(t *testing.T) {
	svc, _, _, productions, _ := newTestService()

	inProgress := models.ProductionInProgress
	require.NoError(t, svc.UpdateProduction(context.Background(), "b1", "u1", ProductionUpdate{Status: &inProgress}))
	assert.NotContains(t, productions.sets["b1"], "harvest_date")

	harvestedStatus := models.ProductionHarvested
	qty := 18.0
	require.NoError(t, svc.UpdateProduction(context.Background(), "b2", "u1", ProductionUpdate{
		Status:   &harvestedStatus,
		Quantity: &qty,
	}))

	set := productions.sets["b2"]
	require.NotNil(t, set)
	assert.Equal(t, models.ProductionHarvested, set["status"])
	assert.Equal(t, 18.0, set["quantity"])
	stamped, ok := set["harvest_date"].(time.Time)
	require.True(t, ok)
	assert.WithinDuration(t, time.Now().UTC(), stamped, 5*time.Second)
}

func TestSetStockValidatesInput(t *testing.T) {
	svc, _, _, _, stock := newTestService()
	ctx := context.Background()

	assert.ErrorIs(t, svc.SetStock(ctx, "u1", "", 5), models.ErrInvalidDocument)
	assert.ErrorIs(t, svc.SetStock(ctx, "u1", "P1", -1), models.ErrInvalidDocument)

	require.NoError(t, svc.SetStock(ctx, "u1", "P1", 0))
	assert.Equal(t, "u1", stock.setUser)
	assert.Equal(t, "P1", stock.setProduct)
	assert.Zero(t, stock.setQty)
}
