package database

import (
	"fmt"
	"log"

	"github.com/minimahotel/pos-api/internal/config"
	"github.com/minimahotel/pos-api/internal/domain/entity"
	"github.com/minimahotel/pos-api/internal/domain/enum"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewPostgresDB creates a new PostgreSQL database connection
func NewPostgresDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	logLevel := logger.Info

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DSN(),
		PreferSimpleProtocol: true, // disables implicit prepared statement usage
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get underlying SQL DB to set connection pool settings
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	// Set connection pool settings
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	log.Println("Successfully connected to PostgreSQL database")
	return db, nil
}

// AutoMigrate runs GORM auto-migration for all entities
func AutoMigrate(db *gorm.DB) error {
	log.Println("Running database migrations...")

	err := db.AutoMigrate(
		// Staff accounts
		&entity.User{},

		// Catalog entities
		&entity.Category{},
		&entity.Product{},
		&entity.Discount{},

		// Guest directory
		&entity.Booking{},

		// Transaction entities
		&entity.Transaction{},
		&entity.TransactionItem{},
	)

	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Println("Database migrations completed successfully")
	return nil
}

// SeedDefaultData seeds the database with default data (catalog,
// sample discounts, staff accounts)
func SeedDefaultData(db *gorm.DB) error {
	log.Println("Seeding default data...")

	// Create default categories
	categories := []entity.Category{
		{Name: "Foods", Icon: "utensils"},
		{Name: "Services", Icon: "concierge-bell"},
	}
	for i := range categories {
		var existing entity.Category
		if err := db.Where("name = ?", categories[i].Name).First(&existing).Error; err != nil {
			if err := db.Create(&categories[i]).Error; err != nil {
				log.Printf("Warning: failed to create category %s: %v", categories[i].Name, err)
			}
		} else {
			categories[i] = existing
		}
	}
	servicesID := categories[1].ID

	// Seed the hotel service catalog if no services exist yet
	var serviceCount int64
	db.Model(&entity.Product{}).Where("category_id = ?", servicesID).Count(&serviceCount)
	if serviceCount == 0 {
		type seedProduct struct {
			name        string
			description string
			price       int64
		}
		services := []seedProduct{
			{"Laundry Service", "Full laundry service per kg", 150},
			{"Dry Cleaning", "Professional dry cleaning per item", 250},
			{"Ironing Service", "Press and iron per item", 75},
			{"Spa Massage (1 hour)", "Relaxing full body massage", 1500},
			{"Facial Treatment", "Deep cleansing facial", 800},
			{"Airport Pickup", "One-way airport transfer", 1200},
			{"Airport Drop-off", "One-way airport transfer", 1200},
			{"Car Rental (per day)", "Sedan with driver", 3500},
			{"City Tour", "Half-day guided city tour", 2000},
			{"Gym Day Pass", "Full day gym access", 500},
			{"Pool Towel Rental", "Premium pool towel", 100},
			{"Minibar Restock", "Full minibar package", 800},
			{"Extra Bed", "Additional bed per night", 1000},
			{"Late Checkout", "Extend checkout until 4PM", 500},
			{"Early Check-in", "Check-in from 8AM", 500},
			{"Room Upgrade", "Upgrade to next room tier", 1500},
			{"Babysitting (per hour)", "Professional childcare service", 350},
			{"Pet Accommodation", "Pet stay fee per night", 500},
			{"Printing Service", "Per page printing", 15},
			{"Premium WiFi", "High-speed internet per day", 200},
		}
		for _, svc := range services {
			categoryID := servicesID
			product := entity.Product{
				CategoryID:  &categoryID,
				Name:        svc.name,
				Description: svc.description,
				Price:       decimal.NewFromInt(svc.price),
				IsAvailable: true,
			}
			if err := db.Create(&product).Error; err != nil {
				log.Printf("Warning: failed to create product %s: %v", svc.name, err)
			}
		}
	}

	// Create sample discounts
	minSubtotal := decimal.NewFromInt(500)
	discounts := []entity.Discount{
		{
			Code:        "WELCOME10",
			Kind:        enum.DiscountKindPercentage,
			Value:       decimal.NewFromInt(10),
			Description: "10% off for new guests",
			IsActive:    true,
		},
		{
			Code:        "SAVE100",
			Kind:        enum.DiscountKindFixed,
			Value:       decimal.NewFromInt(100),
			Description: "₱100 off orders over ₱500",
			MinSubtotal: &minSubtotal,
			IsActive:    true,
		},
	}
	for i := range discounts {
		var existing entity.Discount
		if err := db.Where("code = ?", discounts[i].Code).First(&existing).Error; err != nil {
			if err := db.Create(&discounts[i]).Error; err != nil {
				log.Printf("Warning: failed to create discount %s: %v", discounts[i].Code, err)
			}
		}
	}

	// Create staff accounts if configured via environment variables
	seedStaffUser(db, viper.GetString("MANAGER_EMAIL"), viper.GetString("MANAGER_PASSWORD"),
		viper.GetString("MANAGER_NAME"), "Hotel Manager", entity.RoleManager)
	seedStaffUser(db, viper.GetString("RECEPTIONIST_EMAIL"), viper.GetString("RECEPTIONIST_PASSWORD"),
		viper.GetString("RECEPTIONIST_NAME"), "Front Desk", entity.RoleReceptionist)

	log.Println("Default data seeding completed")
	return nil
}

func seedStaffUser(db *gorm.DB, email, password, name, defaultName, role string) {
	if email == "" || password == "" {
		return
	}

	var existing entity.User
	if err := db.Where("email = ?", email).First(&existing).Error; err == nil {
		log.Printf("Staff user already exists: %s", email)
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("Warning: failed to hash password for %s: %v", email, err)
		return
	}

	if name == "" {
		name = defaultName
	}
	firstName := name
	lastName := ""
	for i, c := range name {
		if c == ' ' {
			firstName = name[:i]
			lastName = name[i+1:]
			break
		}
	}

	user := entity.User{
		FirstName: firstName,
		LastName:  lastName,
		Email:     email,
		Password:  string(hashedPassword),
		Role:      role,
	}
	if err := db.Create(&user).Error; err != nil {
		log.Printf("Warning: failed to create staff user %s: %v", email, err)
	} else {
		log.Printf("Staff user created: %s (%s)", email, role)
	}
}
