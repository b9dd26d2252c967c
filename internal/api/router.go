package api

import (
	"github.com/gin-gonic/gin"
	v1 "github.com/inventorypos/salesdesk/internal/api/v1"
	"github.com/inventorypos/salesdesk/internal/config"
	"github.com/inventorypos/salesdesk/internal/logger"
	"github.com/inventorypos/salesdesk/internal/rest/middleware"
	"github.com/inventorypos/salesdesk/internal/sentry"
)

type Handlers struct {
	Health *v1.HealthHandler
	Sales  *v1.SalesHandler
}

func NewRouter(handlers Handlers, cfg *config.Configuration, logger *logger.Logger, sentryService *sentry.Service) *gin.Engine {
	router := gin.New()
	router.Use(
		gin.Recovery(),
		middleware.SentryMiddleware(cfg),
		middleware.RequestIDMiddleware,
		middleware.ErrorHandler(logger, sentryService),
	)

	router.GET("/health", handlers.Health.Health)

	// v1 routes
	v1Group := router.Group("/v1")
	registerV1Routes(v1Group, handlers)

	return router
}

func registerV1Routes(router *gin.RouterGroup, handlers Handlers) {
	sales := router.Group("/sales")
	{
		sales.GET("/draft", handlers.Sales.GetDraft)
		sales.PUT("/customer", handlers.Sales.SelectCustomer)
		sales.POST("/items", handlers.Sales.AddLineItem)
		sales.DELETE("/items", handlers.Sales.ClearLineItems)
		sales.DELETE("/items/:index", handlers.Sales.RemoveLineItem)
		sales.PUT("/adjustments", handlers.Sales.UpdateAdjustments)
		sales.GET("/totals", handlers.Sales.GetTotals)
		sales.POST("/commit", handlers.Sales.Commit)
		sales.POST("/reset", handlers.Sales.Reset)
		sales.GET("/invoices/:number", handlers.Sales.GetInvoice)
	}
}
