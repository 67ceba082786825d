package database

import (
	"fmt"
	"log"
	"os"
	"time"

	"churchadmin/internal/model"

	"github.com/shopspring/decimal"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// NewConnection opens the connection pool, migrates the finance tables and
// seeds the default categories
func NewConnection(dsn, logLevel string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: newLogger(logLevel),
	})
	if err != nil {
		return nil, err
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}
	if err := Seed(db); err != nil {
		log.Println("WARNING: Failed to seed default categories:", err)
	}
	return db, nil
}

func newLogger(level string) logger.Interface {
	lvl := logger.Warn
	switch level {
	case "silent":
		lvl = logger.Silent
	case "error":
		lvl = logger.Error
	case "info":
		lvl = logger.Info
	}
	return logger.New(log.New(os.Stdout, "\r\n", log.LstdFlags), logger.Config{
		SlowThreshold:             500 * time.Millisecond,
		LogLevel:                  lvl,
		IgnoreRecordNotFoundError: true,
		Colorful:                  false,
	})
}

// referenceIndexes keep reference numbers unique when present; empty
// references are stored as NULL and never collide
var referenceIndexes = []string{
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_income_records_reference_number_unique
		ON income_records (reference_number) WHERE reference_number IS NOT NULL`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_expense_records_reference_number_unique
		ON expense_records (reference_number) WHERE reference_number IS NOT NULL`,
}

// Migrate creates or updates the finance schema
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&model.IncomeCategory{},
		&model.ExpenseCategory{},
		&model.IncomeRecord{},
		&model.ExpenseRecord{},
		&model.ActivityLog{},
	)
	if err != nil {
		return fmt.Errorf("failed to auto-migrate models: %w", err)
	}
	for _, stmt := range referenceIndexes {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("failed to create reference index: %w", err)
		}
	}
	return nil
}

var defaultIncomeCategories = []model.IncomeCategory{
	{Name: "Tithes", Description: "Regular tithes", IsActive: true},
	{Name: "Offerings", Description: "Sunday and special offerings", IsActive: true},
	{Name: "Building Fund", Description: "Contributions to building projects", IsActive: true},
	{Name: "Missions", Description: "Mission support", IsActive: true},
	{Name: "Donations", Description: "General donations", IsActive: true},
}

var defaultExpenseCategories = []model.ExpenseCategory{
	{Name: "Utilities", Description: "Electricity, water, internet", RequiresApproval: false, IsActive: true},
	{Name: "Salaries", Description: "Staff salaries and allowances", RequiresApproval: true, IsActive: true},
	{Name: "Maintenance", Description: "Building and equipment upkeep", RequiresApproval: true, IsActive: true},
	{Name: "Office Supplies", Description: "Stationery and consumables", RequiresApproval: false, IsActive: true},
	{Name: "Outreach", Description: "Community and mission activities", RequiresApproval: true, IsActive: true},
}

// Seed inserts the default categories; existing names are left untouched
func Seed(db *gorm.DB) error {
	for _, c := range defaultIncomeCategories {
		c := c
		if err := db.Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "name"}}, DoNothing: true}).Create(&c).Error; err != nil {
			return fmt.Errorf("seed income category %s: %w", c.Name, err)
		}
	}
	for _, c := range defaultExpenseCategories {
		c := c
		c.BudgetLimit = decimal.Zero
		if err := db.Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "name"}}, DoNothing: true}).Create(&c).Error; err != nil {
			return fmt.Errorf("seed expense category %s: %w", c.Name, err)
		}
	}
	return nil
}
