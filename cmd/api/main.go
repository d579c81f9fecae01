package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/kamandelane/tillpoint-api/internal/application/service"
	"github.com/kamandelane/tillpoint-api/internal/config"
	"github.com/kamandelane/tillpoint-api/internal/infrastructure/database"
	"github.com/kamandelane/tillpoint-api/internal/infrastructure/repository"
	"github.com/kamandelane/tillpoint-api/internal/presentation/http/handler"
	"github.com/kamandelane/tillpoint-api/internal/presentation/http/routes"
	"github.com/kamandelane/tillpoint-api/pkg/printer"
	"github.com/kamandelane/tillpoint-api/pkg/utils"
)

func main() {
	// Load configuration
	cfg := config.Load()

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
	jwtManager := utils.NewJWTManager(
		cfg.JWT.Secret,
		cfg.JWT.ExpiryHours,
		cfg.JWT.RefreshExpiryHours,
	)

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	roleRepo := repository.NewRoleRepository(db)
	permissionRepo := repository.NewPermissionRepository(db)
	productRepo := repository.NewProductRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	saleRepo := repository.NewSaleRepository(db)
	saleItemRepo := repository.NewSaleItemRepository(db)
	invoiceRepo := repository.NewInvoiceRepository(db)
	taxRepo := repository.NewTaxRepository(db)
	currencyRepo := repository.NewCurrencyRepository(db)
	companyRepo := repository.NewCompanyRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)
	analyticsRepo := repository.NewAnalyticsRepository(db)

	// Initialize services
	authService := service.NewAuthService(userRepo, roleRepo, jwtManager)
	productService := service.NewProductService(productRepo, categoryRepo)
	categoryService := service.NewCategoryService(categoryRepo)
	cartService := service.NewCartService(productRepo)
	saleService := service.NewSaleService(saleRepo, saleItemRepo, productRepo, customerRepo, invoiceRepo, taxRepo, currencyRepo, companyRepo)
	invoiceService := service.NewInvoiceService(invoiceRepo)
	customerService := service.NewCustomerService(customerRepo)
	dashboardService := service.NewDashboardService(analyticsRepo, productRepo, customerRepo, saleRepo)
	taxService := service.NewTaxService(taxRepo)
	currencyService := service.NewCurrencyService(currencyRepo)
	companyService := service.NewCompanyService(companyRepo)
	userService := service.NewUserService(userRepo, roleRepo, permissionRepo)

	// Initialize thermal printer
	thermalPrinter, err := printer.NewPrinterFromConfig(
		cfg.Printer.Type,
		cfg.Printer.USBPath,
		cfg.Printer.Address,
	)
	if err != nil {
		log.Printf("Warning: Failed to initialize printer: %v", err)
		thermalPrinter = printer.NewNullPrinter()
	}
	printerService := service.NewPrinterService(thermalPrinter, saleRepo, companyRepo, cfg.Printer.Type)

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:      handler.NewAuthHandler(authService),
		Product:   handler.NewProductHandler(productService),
		Category:  handler.NewCategoryHandler(categoryService),
		Cart:      handler.NewCartHandler(cartService),
		Sale:      handler.NewSaleHandler(saleService, cartService),
		Invoice:   handler.NewInvoiceHandler(invoiceService),
		Customer:  handler.NewCustomerHandler(customerService),
		Dashboard: handler.NewDashboardHandler(dashboardService),
		Tax:       handler.NewTaxHandler(taxService),
		Currency:  handler.NewCurrencyHandler(currencyService),
		Company:   handler.NewCompanyHandler(companyService),
		User:      handler.NewUserHandler(userService),
		Printer:   handler.NewPrinterHandler(printerService),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
	})

	// Get port from environment or use default
	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting %s server on port %s...", cfg.App.Name, port)
	log.Printf("Environment: %s", cfg.App.Env)

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
		os.Exit(1)
	}
}
