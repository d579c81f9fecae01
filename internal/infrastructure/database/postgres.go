package database

import (
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/kamandelane/tillpoint-api/internal/config"
	"github.com/kamandelane/tillpoint-api/internal/domain/entity"
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
		// User-related entities
		&entity.User{},
		&entity.Role{},
		&entity.Permission{},

		// Catalog entities
		&entity.Category{},
		&entity.Product{},

		// Sales entities
		&entity.Customer{},
		&entity.Sale{},
		&entity.SaleItem{},
		&entity.Invoice{},

		// Configuration entities
		&entity.Company{},
		&entity.Currency{},
		&entity.Tax{},

		// System entities
		&entity.IdempotencyKey{},
	)

	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Println("Database migrations completed successfully")
	return nil
}

// SeedDefaultData seeds the database with default data (roles, permissions,
// settings rows and the admin user)
func SeedDefaultData(db *gorm.DB) error {
	log.Println("Seeding default data...")

	// Create default permissions
	permissions := []entity.Permission{
		{Name: "view-dashboard", GuardName: "web"},
		{Name: "manage-products", GuardName: "web"},
		{Name: "manage-categories", GuardName: "web"},
		{Name: "manage-sales", GuardName: "web"},
		{Name: "manage-customers", GuardName: "web"},
		{Name: "manage-users", GuardName: "web"},
		{Name: "manage-settings", GuardName: "web"},
		{Name: "view-invoices", GuardName: "web"},
		{Name: "view-reports", GuardName: "web"},
	}

	for i := range permissions {
		var existing entity.Permission
		if err := db.Where("name = ?", permissions[i].Name).First(&existing).Error; err != nil {
			if err := db.Create(&permissions[i]).Error; err != nil {
				log.Printf("Warning: failed to create permission %s: %v", permissions[i].Name, err)
			}
		}
	}

	// Reload permissions with IDs
	var allPermissions []entity.Permission
	db.Find(&allPermissions)

	// Create admin role with all permissions
	var adminRole entity.Role
	if err := db.Where("name = ?", "admin").First(&adminRole).Error; err != nil {
		adminRole = entity.Role{
			Name:        "admin",
			GuardName:   "web",
			Permissions: allPermissions,
		}
		if err := db.Create(&adminRole).Error; err != nil {
			log.Printf("Warning: failed to create admin role: %v", err)
		}
	}

	// Create cashier role limited to day-to-day counter work
	cashierPermissions := []string{
		"view-dashboard",
		"manage-sales",
		"manage-customers",
		"view-invoices",
	}
	var cashierPerms []entity.Permission
	for _, name := range cashierPermissions {
		for _, p := range allPermissions {
			if p.Name == name {
				cashierPerms = append(cashierPerms, p)
				break
			}
		}
	}

	var cashierRole entity.Role
	if err := db.Where("name = ?", "cashier").First(&cashierRole).Error; err != nil {
		cashierRole = entity.Role{
			Name:        "cashier",
			GuardName:   "web",
			Permissions: cashierPerms,
		}
		if err := db.Create(&cashierRole).Error; err != nil {
			log.Printf("Warning: failed to create cashier role: %v", err)
		}
	}

	if err := seedDefaultSettings(db); err != nil {
		log.Printf("Warning: failed to seed settings: %v", err)
	}

	// Create admin user if configured via environment variables
	adminEmail := viper.GetString("ADMIN_EMAIL")
	adminPassword := viper.GetString("ADMIN_PASSWORD")
	adminName := viper.GetString("ADMIN_NAME")

	if adminEmail != "" && adminPassword != "" {
		var existingAdmin entity.User
		if err := db.Where("email = ?", adminEmail).First(&existingAdmin).Error; err != nil {
			// Hash the password
			hashedPassword, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
			if err != nil {
				log.Printf("Warning: failed to hash admin password: %v", err)
			} else {
				var role entity.Role
				if err := db.Where("name = ?", "admin").First(&role).Error; err == nil {
					if adminName == "" {
						adminName = "Admin"
					}
					// Split admin name into first and last name
					firstName := adminName
					lastName := ""
					for i, c := range adminName {
						if c == ' ' {
							firstName = adminName[:i]
							lastName = adminName[i+1:]
							break
						}
					}
					adminUser := entity.User{
						ID:        uuid.New(),
						FirstName: firstName,
						LastName:  lastName,
						Email:     adminEmail,
						Password:  string(hashedPassword),
						Roles:     []entity.Role{role},
					}
					if err := db.Create(&adminUser).Error; err != nil {
						log.Printf("Warning: failed to create admin user: %v", err)
					} else {
						log.Printf("Admin user created: %s", adminEmail)
					}
				}
			}
		} else {
			log.Printf("Admin user already exists: %s", adminEmail)
		}
	}

	log.Println("Default data seeding completed")
	return nil
}

// seedDefaultSettings ensures checkout always has a company, currency and tax
// to snapshot onto invoices, even on a fresh install.
func seedDefaultSettings(db *gorm.DB) error {
	var companyCount int64
	db.Model(&entity.Company{}).Count(&companyCount)
	if companyCount == 0 {
		name := viper.GetString("COMPANY_NAME")
		if name == "" {
			name = "My Store"
		}
		company := entity.Company{
			Name:      name,
			IsDefault: true,
		}
		if err := db.Create(&company).Error; err != nil {
			return err
		}
	}

	var currencyCount int64
	db.Model(&entity.Currency{}).Count(&currencyCount)
	if currencyCount == 0 {
		currency := entity.Currency{
			Name:      "US Dollar",
			Code:      "USD",
			Symbol:    "$",
			IsActive:  true,
			IsDefault: true,
		}
		if err := db.Create(&currency).Error; err != nil {
			return err
		}
	}

	var taxCount int64
	db.Model(&entity.Tax{}).Count(&taxCount)
	if taxCount == 0 {
		tax := entity.Tax{
			Name:     "No Tax",
			Rate:     0,
			IsActive: true,
		}
		if err := db.Create(&tax).Error; err != nil {
			return err
		}
	}

	return nil
}
