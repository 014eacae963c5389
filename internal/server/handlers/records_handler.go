package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/farmdesk/internal/domain/models"
	"github.com/mamadbah2/farmdesk/internal/server/middleware"
	"github.com/mamadbah2/farmdesk/internal/service/farm"
)

// RecordsHandler exposes the product, sale, production and stock endpoints.
type RecordsHandler struct {
	svc    *farm.Service
	logger *zap.Logger
}

// NewRecordsHandler constructs the HTTP handler adapter.
func NewRecordsHandler(svc *farm.Service, logger *zap.Logger) *RecordsHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RecordsHandler{svc: svc, logger: logger}
}

// --- products ---

type productRequest struct {
	Name      string  `json:"name" binding:"required"`
	Category  string  `json:"category" binding:"required"`
	UnitPrice float64 `json:"unit_price" binding:"gte=0"`
	CostPrice float64 `json:"cost_price" binding:"gte=0"`
}

// ListProducts returns the caller's products.
func (h *RecordsHandler) ListProducts(c *gin.Context) {
	products, err := h.svc.ListProducts(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

// GetProduct returns one product.
func (h *RecordsHandler) GetProduct(c *gin.Context) {
	product, err := h.svc.GetProduct(c.Request.Context(), c.Param("id"), middleware.UserID(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

// CreateProduct registers a product.
func (h *RecordsHandler) CreateProduct(c *gin.Context) {
	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	id, err := h.svc.CreateProduct(c.Request.Context(), models.Product{
		Name:      req.Name,
		Category:  req.Category,
		UnitPrice: req.UnitPrice,
		CostPrice: req.CostPrice,
	}, middleware.UserID(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

type productUpdateRequest struct {
	Name      *string  `json:"name"`
	Category  *string  `json:"category"`
	UnitPrice *float64 `json:"unit_price" binding:"omitempty,gte=0"`
	CostPrice *float64 `json:"cost_price" binding:"omitempty,gte=0"`
}

// UpdateProduct applies a partial product update.
func (h *RecordsHandler) UpdateProduct(c *gin.Context) {
	var req productUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	err := h.svc.UpdateProduct(c.Request.Context(), c.Param("id"), middleware.UserID(c), farm.ProductUpdate{
		Name:      req.Name,
		Category:  req.Category,
		UnitPrice: req.UnitPrice,
		CostPrice: req.CostPrice,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// DeleteProduct removes a product.
func (h *RecordsHandler) DeleteProduct(c *gin.Context) {
	if err := h.svc.DeleteProduct(c.Request.Context(), c.Param("id"), middleware.UserID(c)); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// --- sales ---

type saleRequest struct {
	ProductID  string           `json:"product_id" binding:"required"`
	Quantity   float64          `json:"quantity" binding:"required,gt=0"`
	TotalPrice float64          `json:"total_price" binding:"gte=0"`
	ClientName string           `json:"client_name"`
	Location   *models.GeoPoint `json:"location"`
	SaleDate   time.Time        `json:"sale_date" binding:"required"`
}

// ListSales returns the caller's sales, optionally filtered by product.
func (h *RecordsHandler) ListSales(c *gin.Context) {
	sales, err := h.svc.ListSales(c.Request.Context(), middleware.UserID(c), c.Query("product_id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, sales)
}

// GetSale returns one sale.
func (h *RecordsHandler) GetSale(c *gin.Context) {
	sale, err := h.svc.GetSale(c.Request.Context(), c.Param("id"), middleware.UserID(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, sale)
}

// CreateSale records a sale.
func (h *RecordsHandler) CreateSale(c *gin.Context) {
	var req saleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	id, err := h.svc.CreateSale(c.Request.Context(), models.Sale{
		ProductID:  req.ProductID,
		Quantity:   req.Quantity,
		TotalPrice: req.TotalPrice,
		ClientName: req.ClientName,
		Location:   req.Location,
		SaleDate:   req.SaleDate,
	}, middleware.UserID(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

type saleUpdateRequest struct {
	Quantity   *float64         `json:"quantity" binding:"omitempty,gt=0"`
	TotalPrice *float64         `json:"total_price" binding:"omitempty,gte=0"`
	ClientName *string          `json:"client_name"`
	Location   *models.GeoPoint `json:"location"`
}

// UpdateSale applies a partial sale update.
func (h *RecordsHandler) UpdateSale(c *gin.Context) {
	var req saleUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	err := h.svc.UpdateSale(c.Request.Context(), c.Param("id"), middleware.UserID(c), farm.SaleUpdate{
		Quantity:   req.Quantity,
		TotalPrice: req.TotalPrice,
		ClientName: req.ClientName,
		Location:   req.Location,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// DeleteSale removes a sale.
func (h *RecordsHandler) DeleteSale(c *gin.Context) {
	if err := h.svc.DeleteSale(c.Request.Context(), c.Param("id"), middleware.UserID(c)); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// --- productions ---

type productionRequest struct {
	ProductID string                  `json:"product_id" binding:"required"`
	Status    models.ProductionStatus `json:"status" binding:"omitempty,oneof=awaiting in_progress harvested"`
	Quantity  float64                 `json:"quantity" binding:"gte=0"`
	StartDate time.Time               `json:"start_date" binding:"required"`
}

// ListProductions returns the caller's production batches.
func (h *RecordsHandler) ListProductions(c *gin.Context) {
	productions, err := h.svc.ListProductions(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, productions)
}

// GetProduction returns one production batch.
func (h *RecordsHandler) GetProduction(c *gin.Context) {
	production, err := h.svc.GetProduction(c.Request.Context(), c.Param("id"), middleware.UserID(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, production)
}

// CreateProduction starts a production batch.
func (h *RecordsHandler) CreateProduction(c *gin.Context) {
	var req productionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	id, err := h.svc.CreateProduction(c.Request.Context(), models.Production{
		ProductID: req.ProductID,
		Status:    req.Status,
		Quantity:  req.Quantity,
		StartDate: req.StartDate,
	}, middleware.UserID(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

type productionUpdateRequest struct {
	Status   *models.ProductionStatus `json:"status" binding:"omitempty,oneof=awaiting in_progress harvested"`
	Quantity *float64                 `json:"quantity" binding:"omitempty,gte=0"`
}

// UpdateProduction applies a partial production update.
func (h *RecordsHandler) UpdateProduction(c *gin.Context) {
	var req productionUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	err := h.svc.UpdateProduction(c.Request.Context(), c.Param("id"), middleware.UserID(c), farm.ProductionUpdate{
		Status:   req.Status,
		Quantity: req.Quantity,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// DeleteProduction removes a production batch.
func (h *RecordsHandler) DeleteProduction(c *gin.Context) {
	if err := h.svc.DeleteProduction(c.Request.Context(), c.Param("id"), middleware.UserID(c)); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// --- stock ---

type stockRequest struct {
	ProductID string  `json:"product_id" binding:"required"`
	Quantity  float64 `json:"quantity" binding:"gte=0"`
}

// ListStock returns the caller's stock levels.
func (h *RecordsHandler) ListStock(c *gin.Context) {
	stock, err := h.svc.ListStock(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, stock)
}

// SetStock upserts the stock level for one product.
func (h *RecordsHandler) SetStock(c *gin.Context) {
	var req stockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.svc.SetStock(c.Request.Context(), middleware.UserID(c), req.ProductID, req.Quantity); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}
