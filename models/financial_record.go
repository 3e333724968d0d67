package models

import (
	"time"
)

// Transaction types for the ledger.
const (
	TransactionRevenue = "revenue"
	TransactionExpense = "expense"
)

// Ledger categories.
const (
	CategoryServiceRevenue = "service_revenue"
	CategoryHotWater       = "hot_water"
	CategoryTea            = "tea"
	CategorySupplies       = "supplies"
	CategoryEquipment      = "equipment"
	CategoryMaintenance    = "maintenance"
	CategoryOther          = "other"
)

// FinancialCategories returns the valid ledger categories.
func FinancialCategories() []string {
	return []string{
		CategoryServiceRevenue,
		CategoryHotWater,
		CategoryTea,
		CategorySupplies,
		CategoryEquipment,
		CategoryMaintenance,
		CategoryOther,
	}
}

// IsValidFinancialCategory reports whether c is a known ledger category.
func IsValidFinancialCategory(c string) bool {
	for _, cat := range FinancialCategories() {
		if cat == c {
			return true
		}
	}
	return false
}

// FinancialRecord is one ledger entry: revenue from a completed
// appointment or an operating expense.
type FinancialRecord struct {
	ID uint `gorm:"primaryKey" json:"id"`

	TransactionType string  `gorm:"size:20;not null" json:"transactionType"`
	Amount          float64 `gorm:"type:decimal(10,2);not null" json:"amount"`
	Description     string  `gorm:"size:500;not null" json:"description"`
	Category        string  `gorm:"size:50;not null" json:"category"`

	SupplierID    *uint `gorm:"index" json:"supplierId"`
	AppointmentID *uint `gorm:"index" json:"appointmentId"`

	TransactionDate time.Time `gorm:"not null" json:"transactionDate"`
	ReceiptNumber   string    `gorm:"size:50;uniqueIndex" json:"receiptNumber"`
	Notes           string    `gorm:"type:text" json:"notes"`

	CreatedAt time.Time `json:"createdAt"`
}
