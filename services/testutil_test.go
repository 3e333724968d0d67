package services

import (
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/SwitteeFranca2-0/Panda-Spa/models"
)

// setupTestDB opens a fresh in-memory database migrated with the full
// schema. Limited to one connection so every query sees the same memory
// store.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to access sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&models.Customer{},
		&models.Service{},
		&models.Extra{},
		&models.Appointment{},
		&models.CustomerPreference{},
		&models.FeelingServiceMapping{},
		&models.FinancialRecord{},
		&models.Supplier{},
		&models.ReminderLog{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

func createTestCustomer(t *testing.T, db *gorm.DB, name string) *models.Customer {
	t.Helper()
	customer := &models.Customer{
		Name:     name,
		Species:  "Bear",
		IsActive: true,
	}
	if err := db.Create(customer).Error; err != nil {
		t.Fatalf("failed to create test customer: %v", err)
	}
	return customer
}

func createTestService(t *testing.T, db *gorm.DB, name, serviceType string,
	durationMinutes int, price float64) *models.Service {
	t.Helper()
	service := &models.Service{
		Name:            name,
		ServiceType:     serviceType,
		DurationMinutes: durationMinutes,
		Price:           price,
		MaxCapacity:     1,
		IsAvailable:     true,
	}
	if err := db.Create(service).Error; err != nil {
		t.Fatalf("failed to create test service: %v", err)
	}
	return service
}

func createTestExtra(t *testing.T, db *gorm.DB, name string, price float64,
	durationMinutes int, compatibleTypes string) *models.Extra {
	t.Helper()
	extra := &models.Extra{
		Name:                   name,
		Price:                  price,
		DurationMinutes:        durationMinutes,
		IsAvailable:            true,
		CompatibleServiceTypes: compatibleTypes,
	}
	if err := db.Create(extra).Error; err != nil {
		t.Fatalf("failed to create test extra: %v", err)
	}
	return extra
}

// bookingTime returns a fixed, conflict-free booking slot offset by the
// given hour on a fixed test day.
func bookingTime(hour, minute int) time.Time {
	return time.Date(2026, time.September, 10, hour, minute, 0, 0, time.UTC)
}
