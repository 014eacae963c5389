package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/mamadbah2/farmdesk/internal/server/handlers"
	"github.com/mamadbah2/farmdesk/internal/server/middleware"
)

// Handlers groups the HTTP adapters wired into the engine.
type Handlers struct {
	Auth          *handlers.AuthHandler
	Records       *handlers.RecordsHandler
	Goals         *handlers.GoalHandler
	Notifications *handlers.NotificationHandler
	Dashboard     *handlers.DashboardHandler
}

// New wires the Gin engine with required routes and middlewares.
func New(h Handlers, parser middleware.TokenParser, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.ZapLogger(logger))
	r.Use(middleware.Metrics())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api/v1")

	api.POST("/auth/register", h.Auth.Register)
	api.POST("/auth/login", h.Auth.Login)

	authed := api.Group("", middleware.Auth(parser))
	{
		authed.POST("/auth/logout", h.Auth.Logout)
		authed.GET("/auth/me", h.Auth.Me)
		authed.POST("/auth/push-token", h.Auth.SetPushToken)

		authed.GET("/products", h.Records.ListProducts)
		authed.POST("/products", h.Records.CreateProduct)
		authed.GET("/products/:id", h.Records.GetProduct)
		authed.PATCH("/products/:id", h.Records.UpdateProduct)
		authed.DELETE("/products/:id", h.Records.DeleteProduct)

		authed.GET("/sales", h.Records.ListSales)
		authed.POST("/sales", h.Records.CreateSale)
		authed.GET("/sales/:id", h.Records.GetSale)
		authed.PATCH("/sales/:id", h.Records.UpdateSale)
		authed.DELETE("/sales/:id", h.Records.DeleteSale)

		authed.GET("/productions", h.Records.ListProductions)
		authed.POST("/productions", h.Records.CreateProduction)
		authed.GET("/productions/:id", h.Records.GetProduction)
		authed.PATCH("/productions/:id", h.Records.UpdateProduction)
		authed.DELETE("/productions/:id", h.Records.DeleteProduction)

		authed.GET("/stock", h.Records.ListStock)
		authed.PUT("/stock", h.Records.SetStock)

		authed.GET("/goals", h.Goals.List)
		authed.POST("/goals", h.Goals.Create)
		authed.GET("/goals/:id", h.Goals.Get)
		authed.PATCH("/goals/:id", h.Goals.Update)
		authed.DELETE("/goals/:id", h.Goals.Delete)

		authed.GET("/notifications", h.Notifications.List)
		authed.POST("/notifications/:id/read", h.Notifications.MarkRead)

		authed.GET("/dashboard/summary", h.Dashboard.Summary)
		authed.GET("/dashboard/sales-by-product", h.Dashboard.SalesByProduct)
		authed.GET("/dashboard/production-by-status", h.Dashboard.ProductionByStatus)
		authed.GET("/dashboard/history", h.Dashboard.History)
		authed.POST("/reports/export", h.Dashboard.Export)
	}

	if logger != nil {
		logger.Info("router initialized")
	}

	return r
}
