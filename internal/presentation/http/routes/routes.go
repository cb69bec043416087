package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/minimahotel/pos-api/internal/config"
	"github.com/minimahotel/pos-api/internal/presentation/http/handler"
	"github.com/minimahotel/pos-api/internal/presentation/http/middleware"
	"github.com/minimahotel/pos-api/pkg/utils"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth        *handler.AuthHandler
	Catalog     *handler.CatalogHandler
	Cart        *handler.CartHandler
	Transaction *handler.TransactionHandler
	Folio       *handler.FolioHandler
	Guest       *handler.GuestHandler
	Dashboard   *handler.DashboardHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager *utils.JWTManager
	Cfg        *config.Config
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

		// Per-staff rate limiter
		rateLimiter := middleware.NewStaffRateLimiter(middleware.RateLimiterConfig{
			RequestsPerSecond: float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration),
			BurstSize:         deps.Cfg.RateLimit.Requests,
			CleanupInterval:   5 * time.Minute,
			EntryTTL:          10 * time.Minute,
		})
		protected.Use(rateLimiter.Middleware())

		registerProtectedRoutes(protected, h)
	}

	return router
}

func registerAuthRoutes(v1 *gin.RouterGroup, h *Handlers) {
	auth := v1.Group("/auth")
	{
		auth.POST("/login", h.Auth.Login)
		auth.POST("/refresh", h.Auth.RefreshToken)
	}
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers) {
	// Auth/Profile routes
	protected.POST("/auth/logout", h.Auth.Logout)
	protected.GET("/profile", h.Auth.Me)
	protected.PUT("/profile/password", h.Auth.ChangePassword)

	// Dashboard
	protected.GET("/dashboard", h.Dashboard.Stats)

	// Catalog
	registerCatalogRoutes(protected, h)

	// Cart
	registerCartRoutes(protected, h)

	// Checkout and transactions
	registerTransactionRoutes(protected, h)

	// Guests and folios
	registerGuestRoutes(protected, h)
}

func registerCatalogRoutes(protected *gin.RouterGroup, h *Handlers) {
	products := protected.Group("/products")
	{
		products.GET("", h.Catalog.ListProducts)
		products.GET("/:id", h.Catalog.GetProduct)
	}

	protected.GET("/categories", h.Catalog.ListCategories)
	protected.GET("/discounts", h.Cart.ListDiscounts)
}

func registerCartRoutes(protected *gin.RouterGroup, h *Handlers) {
	cart := protected.Group("/cart")
	{
		cart.GET("", h.Cart.View)
		cart.POST("/items", h.Cart.AddItem)
		cart.PATCH("/items", h.Cart.ChangeQuantity)
		cart.DELETE("/items/:productId", h.Cart.RemoveItem)
		cart.DELETE("", h.Cart.Clear)
		cart.POST("/guest", h.Cart.SelectGuest)
		cart.DELETE("/guest", h.Cart.ClearGuest)
		cart.POST("/discount", h.Cart.ApplyDiscount)
		cart.DELETE("/discount", h.Cart.RemoveDiscount)
	}
}

func registerTransactionRoutes(protected *gin.RouterGroup, h *Handlers) {
	protected.POST("/checkout", h.Transaction.Checkout)
	protected.POST("/checkout/guest-tab", h.Transaction.CheckoutGuestTab)

	transactions := protected.Group("/transactions")
	{
		transactions.GET("", h.Transaction.List)
		transactions.GET("/number/:number", h.Transaction.GetByNumber)
		transactions.GET("/:id", h.Transaction.Get)
		transactions.POST("/:id/settle", h.Transaction.Settle)
		transactions.POST("/:id/void", h.Transaction.Void)
	}
}

func registerGuestRoutes(protected *gin.RouterGroup, h *Handlers) {
	protected.GET("/guests", h.Guest.ListActive)

	folios := protected.Group("/guests/:guestId/folio")
	{
		folios.GET("", h.Folio.Get)
		folios.POST("/selection/toggle", h.Folio.Toggle)
		folios.POST("/selection/toggle-all", h.Folio.ToggleAll)
		folios.POST("/pay", h.Folio.PaySelected)
	}
}
