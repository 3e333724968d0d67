package models

import (
	"time"
)

// Customer is a guest of the spa. Visit statistics are maintained by the
// appointment service when bookings complete.
type Customer struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name        string `gorm:"size:100;not null" json:"name"`
	Species     string `gorm:"size:50;not null" json:"species"`
	ContactInfo string `gorm:"size:200" json:"contactInfo"`
	Notes       string `gorm:"type:text" json:"notes"`

	TotalVisits int        `gorm:"default:0;not null" json:"totalVisits"`
	TotalSpent  float64    `gorm:"type:decimal(10,2);default:0.0;not null" json:"totalSpent"`
	LastVisit   *time.Time `json:"lastVisit"`

	IsActive  bool      `gorm:"default:true;not null" json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`

	Appointments []Appointment        `gorm:"foreignKey:CustomerID" json:"-"`
	Preferences  []CustomerPreference `gorm:"foreignKey:CustomerID" json:"-"`
}
