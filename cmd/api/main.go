package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/minimahotel/pos-api/internal/application/service"
	"github.com/minimahotel/pos-api/internal/config"
	"github.com/minimahotel/pos-api/internal/infrastructure/database"
	"github.com/minimahotel/pos-api/internal/infrastructure/repository"
	"github.com/minimahotel/pos-api/internal/presentation/http/handler"
	"github.com/minimahotel/pos-api/internal/presentation/http/routes"
	"github.com/minimahotel/pos-api/pkg/utils"
	"github.com/shopspring/decimal"
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
	productRepo := repository.NewProductRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	discountRepo := repository.NewDiscountRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	transactionRepo := repository.NewTransactionRepository(db)

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtManager)
	catalogService := service.NewCatalogService(productRepo, categoryRepo)
	cartService := service.NewCartService(productRepo, bookingRepo, cfg.POS.MaxQuantity)
	discountService := service.NewDiscountService(discountRepo, cartService)
	voidPolicy := service.NewVoidPolicy(cfg.POS.ManagerVoidCode)
	transactionService := service.NewTransactionService(
		transactionRepo,
		bookingRepo,
		cartService,
		voidPolicy,
		decimal.NewFromFloat(cfg.POS.MaxCartTotal),
	)
	folioService := service.NewFolioService(transactionRepo, bookingRepo, transactionService)
	guestService := service.NewGuestService(bookingRepo)
	dashboardService := service.NewDashboardService(transactionRepo, productRepo, bookingRepo)

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:        handler.NewAuthHandler(authService),
		Catalog:     handler.NewCatalogHandler(catalogService),
		Cart:        handler.NewCartHandler(cartService, discountService),
		Transaction: handler.NewTransactionHandler(transactionService),
		Folio:       handler.NewFolioHandler(folioService),
		Guest:       handler.NewGuestHandler(guestService),
		Dashboard:   handler.NewDashboardHandler(dashboardService),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager: jwtManager,
		Cfg:        cfg,
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
