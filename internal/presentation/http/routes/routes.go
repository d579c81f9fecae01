package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kamandelane/tillpoint-api/internal/config"
	domainRepo "github.com/kamandelane/tillpoint-api/internal/domain/repository"
	"github.com/kamandelane/tillpoint-api/internal/presentation/http/handler"
	"github.com/kamandelane/tillpoint-api/internal/presentation/http/middleware"
	"github.com/kamandelane/tillpoint-api/pkg/utils"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth      *handler.AuthHandler
	Product   *handler.ProductHandler
	Category  *handler.CategoryHandler
	Cart      *handler.CartHandler
	Sale      *handler.SaleHandler
	Invoice   *handler.InvoiceHandler
	Customer  *handler.CustomerHandler
	Dashboard *handler.DashboardHandler
	Tax       *handler.TaxHandler
	Currency  *handler.CurrencyHandler
	Company   *handler.CompanyHandler
	User      *handler.UserHandler
	Printer   *handler.PrinterHandler
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
		registerAuthRoutes(v1, h)

		// Protected routes (authentication required)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))

		// Per-user rate limiter
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

func registerAuthRoutes(v1 *gin.RouterGroup, h *Handlers) {
	auth := v1.Group("/auth")
	{
		auth.POST("/login", h.Auth.Login)
		auth.POST("/register", h.Auth.Register)
		auth.POST("/refresh", h.Auth.RefreshToken)
	}
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	// Auth/Profile routes
	protected.POST("/auth/logout", h.Auth.Logout)
	protected.GET("/profile", h.Auth.GetProfile)
	protected.PUT("/profile", h.Auth.UpdateProfile)
	protected.PUT("/profile/password", h.Auth.ChangePassword)

	// Dashboard
	dashboard := protected.Group("/dashboard")
	dashboard.Use(middleware.RequirePermission("view-dashboard"))
	{
		dashboard.GET("", h.Dashboard.GetStats)
	}

	registerProductRoutes(protected, h)
	registerCategoryRoutes(protected, h)
	registerCartRoutes(protected, h)
	registerSaleRoutes(protected, h, deps)
	registerInvoiceRoutes(protected, h)
	registerCustomerRoutes(protected, h)
	registerSettingsRoutes(protected, h)
	registerUserRoutes(protected, h)
	registerPrinterRoutes(protected, h)
}

func registerProductRoutes(protected *gin.RouterGroup, h *Handlers) {
	products := protected.Group("/products")
	products.Use(middleware.RequirePermission("manage-products"))
	{
		products.GET("", h.Product.List)
		products.POST("", h.Product.Create)
		products.POST("/import", h.Product.Import)
		products.GET("/low-stock", h.Product.GetLowStock)
		products.GET("/:slug", h.Product.Get)
		products.PUT("/:slug", h.Product.Update)
		products.DELETE("/:slug", h.Product.Delete)
		products.POST("/:slug/restock", h.Product.Restock)
	}
}

func registerCategoryRoutes(protected *gin.RouterGroup, h *Handlers) {
	categories := protected.Group("/categories")
	categories.Use(middleware.RequirePermission("manage-categories"))
	{
		categories.GET("", h.Category.List)
		categories.POST("", h.Category.Create)
		categories.PUT("/:id", h.Category.Update)
		categories.DELETE("/:id", h.Category.Delete)
	}
}

func registerCartRoutes(protected *gin.RouterGroup, h *Handlers) {
	carts := protected.Group("/registers/:register/cart")
	carts.Use(middleware.RequirePermission("manage-sales"))
	{
		carts.GET("", h.Cart.Get)
		carts.POST("/items", h.Cart.AddItem)
		carts.PUT("/items/:productId/decrease", h.Cart.DecreaseItem)
		carts.DELETE("/items/:productId", h.Cart.RemoveItem)
		carts.DELETE("", h.Cart.Clear)
	}
}

func registerSaleRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	sales := protected.Group("/sales")
	sales.Use(middleware.RequirePermission("manage-sales"))
	{
		sales.GET("", h.Sale.List)
		// Checkout uses idempotency middleware to prevent duplicate sales
		sales.POST("", middleware.IdempotencyRequired(middleware.IdempotencyConfig{
			Repo: deps.IdempotencyRepo,
		}), h.Sale.Checkout)
		sales.GET("/export", h.Sale.Export)
		sales.GET("/receipt/:receiptNo", h.Sale.GetByReceiptNo)
		sales.GET("/:id", h.Sale.Get)
		sales.POST("/:id/cancel", h.Sale.Cancel)
	}
}

func registerInvoiceRoutes(protected *gin.RouterGroup, h *Handlers) {
	invoices := protected.Group("/invoices")
	invoices.Use(middleware.RequirePermission("view-invoices"))
	{
		invoices.GET("", h.Invoice.List)
		invoices.GET("/:id", h.Invoice.Get)
		invoices.GET("/:id/download", h.Invoice.Download)
		invoices.GET("/sale/:saleId", h.Invoice.GetBySale)
		invoices.GET("/sale/:saleId/download", h.Invoice.DownloadBySale)
	}
}

func registerCustomerRoutes(protected *gin.RouterGroup, h *Handlers) {
	customers := protected.Group("/customers")
	customers.Use(middleware.RequirePermission("manage-customers"))
	{
		customers.GET("", h.Customer.List)
		customers.POST("", h.Customer.Create)
		customers.GET("/:id", h.Customer.Get)
		customers.PUT("/:id", h.Customer.Update)
		customers.DELETE("/:id", h.Customer.Delete)
	}
}

func registerSettingsRoutes(protected *gin.RouterGroup, h *Handlers) {
	taxes := protected.Group("/taxes")
	taxes.Use(middleware.RequirePermission("manage-settings"))
	{
		taxes.GET("", h.Tax.List)
		taxes.POST("", h.Tax.Create)
		taxes.GET("/active", h.Tax.GetActive)
		taxes.PUT("/:id", h.Tax.Update)
		taxes.POST("/:id/activate", h.Tax.Activate)
		taxes.POST("/:id/deactivate", h.Tax.Deactivate)
		taxes.DELETE("/:id", h.Tax.Delete)
	}

	currencies := protected.Group("/currencies")
	currencies.Use(middleware.RequirePermission("manage-settings"))
	{
		currencies.GET("", h.Currency.List)
		currencies.POST("", h.Currency.Create)
		currencies.GET("/default", h.Currency.GetDefault)
		currencies.PUT("/:id", h.Currency.Update)
		currencies.POST("/:id/activate", h.Currency.Activate)
		currencies.POST("/:id/deactivate", h.Currency.Deactivate)
		currencies.POST("/:id/set-default", h.Currency.SetDefault)
		currencies.DELETE("/:id", h.Currency.Delete)
	}

	companies := protected.Group("/companies")
	companies.Use(middleware.RequirePermission("manage-settings"))
	{
		companies.GET("", h.Company.List)
		companies.POST("", h.Company.Create)
		companies.GET("/default", h.Company.GetDefault)
		companies.GET("/:id", h.Company.Get)
		companies.PUT("/:id", h.Company.Update)
		companies.POST("/:id/set-default", h.Company.SetDefault)
		companies.DELETE("/:id", h.Company.Delete)
	}
}

func registerUserRoutes(protected *gin.RouterGroup, h *Handlers) {
	users := protected.Group("/users")
	users.Use(middleware.RequirePermission("manage-users"))
	{
		users.GET("", h.User.List)
		users.POST("", h.User.Create)
		users.GET("/:id", h.User.Get)
		users.PUT("/:id/roles", h.User.UpdateRoles)
		users.DELETE("/:id", h.User.Delete)
	}

	roles := protected.Group("/roles")
	roles.Use(middleware.RequirePermission("manage-users"))
	{
		roles.GET("", h.User.ListRoles)
	}

	permissions := protected.Group("/permissions")
	permissions.Use(middleware.RequirePermission("manage-users"))
	{
		permissions.GET("", h.User.ListPermissions)
	}
}

func registerPrinterRoutes(protected *gin.RouterGroup, h *Handlers) {
	printerGroup := protected.Group("/printer")
	printerGroup.Use(middleware.RequirePermission("manage-sales"))
	{
		printerGroup.GET("/status", h.Printer.Status)
		printerGroup.POST("/test", h.Printer.TestPrint)
		printerGroup.POST("/sales/:id/receipt", h.Printer.PrintReceipt)
	}
}
