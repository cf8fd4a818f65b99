package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/nischayn/vyapari-api/internal/application/service"
	"github.com/nischayn/vyapari-api/internal/config"
	"github.com/nischayn/vyapari-api/internal/infrastructure/database"
	"github.com/nischayn/vyapari-api/internal/infrastructure/repository"
	"github.com/nischayn/vyapari-api/internal/presentation/http/handler"
	"github.com/nischayn/vyapari-api/internal/presentation/http/routes"
	"github.com/nischayn/vyapari-api/pkg/logger"
	"github.com/nischayn/vyapari-api/pkg/utils"
)

func main() {
	// Load configuration
	cfg := config.Load()
	logger.SetLevel(cfg.App.LogLevel)

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Seed default data
	if err := database.SeedDefaultData(db); err != nil {
		log.Printf("Warning: Failed to seed default data: %v", err)
	}

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(cfg.JWT.Secret, cfg.JWT.ExpiryHours)

	// Initialize repositories
	txr := repository.NewTransactor(db)
	userRepo := repository.NewUserRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	productRepo := repository.NewProductRepository(db)
	warehouseRepo := repository.NewWarehouseRepository(db)
	stockRepo := repository.NewStockRepository(db)
	invoiceRepo := repository.NewInvoiceRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	quotationRepo := repository.NewQuotationRepository(db)
	purchaseRepo := repository.NewPurchaseRepository(db)
	supplierRepo := repository.NewSupplierRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtManager)
	customerService := service.NewCustomerService(customerRepo, invoiceRepo, paymentRepo)
	productService := service.NewProductService(productRepo, stockRepo)
	warehouseService := service.NewWarehouseService(warehouseRepo)
	stockService := service.NewStockService(stockRepo, productRepo, warehouseRepo)
	invoiceService := service.NewInvoiceService(invoiceRepo, customerRepo, productRepo, stockRepo, warehouseRepo, txr, cfg.Billing.SellerStateCode)
	paymentService := service.NewPaymentService(paymentRepo, invoiceRepo, customerRepo, txr)
	quotationService := service.NewQuotationService(quotationRepo, invoiceRepo, customerRepo, productRepo, stockRepo, warehouseRepo, txr, cfg.Billing.SellerStateCode)
	purchaseService := service.NewPurchaseService(purchaseRepo, supplierRepo, productRepo, stockRepo, warehouseRepo, txr)
	reportService := service.NewReportService(invoiceRepo, productRepo)

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:      handler.NewAuthHandler(authService),
		Customer:  handler.NewCustomerHandler(customerService),
		Product:   handler.NewProductHandler(productService),
		Stock:     handler.NewStockHandler(stockService, warehouseService),
		Invoice:   handler.NewInvoiceHandler(invoiceService),
		Payment:   handler.NewPaymentHandler(paymentService),
		Quotation: handler.NewQuotationHandler(quotationService),
		Purchase:  handler.NewPurchaseHandler(purchaseService),
		Report:    handler.NewReportHandler(reportService),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
	})

	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting %s server on port %s...", cfg.App.Name, port)
	log.Printf("Environment: %s", cfg.App.Env)

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
