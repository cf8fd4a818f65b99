package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nischayn/vyapari-api/internal/config"
	domainRepo "github.com/nischayn/vyapari-api/internal/domain/repository"
	"github.com/nischayn/vyapari-api/internal/presentation/http/handler"
	"github.com/nischayn/vyapari-api/internal/presentation/http/middleware"
	"github.com/nischayn/vyapari-api/pkg/utils"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth      *handler.AuthHandler
	Customer  *handler.CustomerHandler
	Product   *handler.ProductHandler
	Stock     *handler.StockHandler
	Invoice   *handler.InvoiceHandler
	Payment   *handler.PaymentHandler
	Quotation *handler.QuotationHandler
	Purchase  *handler.PurchaseHandler
	Report    *handler.ReportHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
	IdempotencyRepo domainRepo.IdempotencyRepository
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Public routes (no authentication required)
		auth := v1.Group("/auth")
		{
			auth.POST("/login", h.Auth.Login)
			auth.POST("/register", h.Auth.Register)
		}

		// Protected routes (authentication required)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))

		rateLimiter := middleware.NewUserRateLimiter(middleware.RateLimiterConfig{
			RequestsPerSecond: float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration),
			BurstSize:         deps.Cfg.RateLimit.Requests,
			CleanupInterval:   5 * time.Minute,
			EntryTTL:          10 * time.Minute,
		})
		protected.Use(rateLimiter.Middleware())

		registerProtectedRoutes(protected, h, deps)
	}

	return router
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	protected.GET("/auth/me", h.Auth.Me)

	// Customers
	customers := protected.Group("/customers")
	{
		customers.GET("", h.Customer.List)
		customers.POST("", h.Customer.Create)
		customers.GET("/:id", h.Customer.Get)
		customers.PUT("/:id", h.Customer.Update)
		customers.DELETE("/:id", h.Customer.Delete)
		customers.GET("/:id/ledger", h.Customer.Ledger)
	}

	// Products
	products := protected.Group("/products")
	{
		products.GET("", h.Product.List)
		products.POST("", h.Product.Create)
		products.GET("/low-stock", h.Product.LowStock)
		products.GET("/:id", h.Product.Get)
		products.PUT("/:id", h.Product.Update)
	}

	// Warehouses
	warehouses := protected.Group("/warehouses")
	{
		warehouses.GET("", h.Stock.ListWarehouses)
		warehouses.POST("", h.Stock.CreateWarehouse)
	}

	// Stock
	stock := protected.Group("/stock")
	{
		stock.POST("/adjustments", h.Stock.Adjust)
		stock.GET("/adjustments/:productId", h.Stock.History)
		stock.GET("/levels/:productId", h.Stock.Levels)
		stock.GET("/reconcile/:productId", h.Stock.Reconcile)
	}

	// Invoice and payment creation are not retry-safe, so both demand an
	// Idempotency-Key header.
	idem := middleware.IdempotencyRequired(middleware.IdempotencyConfig{
		Repo: deps.IdempotencyRepo,
	})

	// Invoices
	invoices := protected.Group("/invoices")
	{
		invoices.GET("", h.Invoice.List)
		invoices.POST("", idem, h.Invoice.Create)
		invoices.GET("/:id", h.Invoice.Get)
	}

	// Payments
	payments := protected.Group("/payments")
	{
		payments.GET("", h.Payment.List)
		payments.POST("", idem, h.Payment.Create)
		payments.GET("/:id", h.Payment.Get)
		payments.GET("/invoice/:invoiceId", h.Payment.ListByInvoice)
	}

	// Quotations
	quotations := protected.Group("/quotations")
	{
		quotations.GET("", h.Quotation.List)
		quotations.POST("", h.Quotation.Create)
		quotations.GET("/:id", h.Quotation.Get)
		quotations.POST("/:id/convert", h.Quotation.Convert)
	}

	// Purchases
	purchases := protected.Group("/purchases")
	{
		purchases.GET("", h.Purchase.List)
		purchases.POST("", h.Purchase.Create)
		purchases.GET("/:id", h.Purchase.Get)
	}

	// Suppliers
	suppliers := protected.Group("/suppliers")
	{
		suppliers.GET("", h.Purchase.ListSuppliers)
		suppliers.POST("", h.Purchase.CreateSupplier)
	}

	// Reports
	reports := protected.Group("/reports")
	{
		reports.GET("/sales", h.Report.Sales)
		reports.GET("/gst", h.Report.GST)
		reports.GET("/low-stock", h.Report.LowStock)
	}
}
