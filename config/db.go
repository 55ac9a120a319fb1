package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"stunting/domain"
)

var db *gorm.DB

// GetDatabaseURL builds the database connection string.
func GetDatabaseURL() string {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		os.Getenv("DB_HOST"), os.Getenv("DB_PORT"), os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"), os.Getenv("DB_DATABASE"), getSSLMode())
	return dsn
}

func getSSLMode() string {
	v := os.Getenv("DB_SSLMODE")
	if v == "" {
		return "disable"
	}
	return v
}

// BootDB initializes the database connection and runs migrations.
func BootDB() (*gorm.DB, error) {
	url := GetDatabaseURL()
	var err error

	db, err = gorm.Open(postgres.Open(url), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := AutoMigrate(db); err != nil {
		return db, err
	}

	if err := SeedAdmin(db); err != nil {
		return db, err
	}

	GetLogrusInstance().Info("DB initialized")
	return db, nil
}

// AutoMigrate creates the tables. Addresses go first since children reference
// them.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&domain.Address{},
		&domain.User{},
	); err != nil {
		return fmt.Errorf("failed to migrate base tables: %w", err)
	}

	if err := db.AutoMigrate(
		&domain.ChildRecord{},
	); err != nil {
		return fmt.Errorf("failed to migrate relational tables: %w", err)
	}

	return nil
}

// SeedAdmin creates the admin account from ADMIN_USERNAME and ADMIN_PASSWORD
// when no admin exists yet.
func SeedAdmin(db *gorm.DB) error {
	var existingAdmin domain.User
	err := db.Where("role = ?", domain.RoleAdmin).First(&existingAdmin).Error
	if err == nil {
		return nil
	}

	log := GetLogrusInstance()
	adminUsername := strings.ToLower(os.Getenv("ADMIN_USERNAME"))
	adminPassword := os.Getenv("ADMIN_PASSWORD")
	if adminUsername == "" || adminPassword == "" {
		log.Warn("No admin account and ADMIN_USERNAME/ADMIN_PASSWORD not set, skipping admin seed")
		return nil
	}

	log.Info("Creating default admin account....")
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("could not hash password: %v", err)
	}

	now := time.Now()
	admin := domain.User{
		Username:  adminUsername,
		Password:  string(hashedPassword),
		Role:      domain.RoleAdmin,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := db.Create(&admin).Error; err != nil {
		return err
	}
	log.Info("Admin account created")

	return nil
}
