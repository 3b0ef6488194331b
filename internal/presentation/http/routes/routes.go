package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/novapos/novapos-api/internal/config"
	"github.com/novapos/novapos-api/internal/presentation/http/handler"
	"github.com/novapos/novapos-api/internal/presentation/http/middleware"
	"go.uber.org/zap"
)

// Handlers aggregates every HTTP handler the router mounts
type Handlers struct {
	Order       *handler.OrderHandler
	Customer    *handler.CustomerHandler
	Stock       *handler.StockHandler
	Installment *handler.InstallmentHandler
}

// Setup configures the router with middleware and all application routes
func Setup(cfg *config.Config, log *zap.Logger, h *Handlers) *gin.Engine {
	if !cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware(log))
	router.Use(middleware.CORSMiddleware(&cfg.CORS))

	rateLimiter := middleware.NewClientRateLimiter(&cfg.RateLimit)
	router.Use(rateLimiter.Middleware())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": cfg.App.Name,
		})
	})

	v1 := router.Group("/api/v1")
	{
		orders := v1.Group("/orders")
		{
			orders.POST("", h.Order.Create)
			orders.POST("/preview", h.Order.Preview)
			orders.GET("", h.Order.List)
			orders.GET("/:id", h.Order.Get)
			orders.POST("/:id/cancel", h.Order.Cancel)
			orders.GET("/:id/installment-plan", h.Installment.GetByOrder)
		}

		customers := v1.Group("/customers")
		{
			customers.POST("", h.Customer.Create)
			customers.GET("", h.Customer.List)
			customers.GET("/:id", h.Customer.Get)
			customers.PUT("/:id", h.Customer.Update)
			customers.GET("/:id/balance", h.Customer.Balance)
			customers.GET("/:id/ledger", h.Customer.Statement)
		}

		stockUnits := v1.Group("/stock-units")
		{
			stockUnits.POST("", h.Stock.RegisterUnit)
			stockUnits.GET("", h.Stock.ListUnits)
			stockUnits.GET("/:id", h.Stock.GetUnit)
		}

		products := v1.Group("/products")
		{
			products.POST("", h.Stock.RegisterProduct)
			products.GET("", h.Stock.ListProducts)
			products.GET("/:id", h.Stock.GetProduct)
			products.POST("/:id/restock", h.Stock.RestockProduct)
		}

		installments := v1.Group("/installments")
		{
			installments.POST("/compute", h.Installment.ComputePlan)
			installments.POST("/periods/:id/pay", h.Installment.PayPeriod)
		}
	}

	return router
}
