package models

import (
	"time"
)

// Supplier provides goods or services to the spa; expense ledger entries
// may reference one.
type Supplier struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name        string `gorm:"size:100;not null" json:"name"`
	ContactInfo string `gorm:"size:200" json:"contactInfo"`
	Category    string `gorm:"size:50" json:"category"`
	Notes       string `gorm:"type:text" json:"notes"`

	IsActive  bool      `gorm:"default:true;not null" json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`

	Records []FinancialRecord `gorm:"foreignKey:SupplierID" json:"-"`
}
