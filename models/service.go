package models

import (
	"time"
)

// Service types offered by the spa.
const (
	ServiceTypeThermalBath = "thermal_bath"
	ServiceTypeMassage     = "massage"
	ServiceTypeTeaTherapy  = "tea_therapy"
)

// ServiceTypes returns the valid service type values.
func ServiceTypes() []string {
	return []string{ServiceTypeThermalBath, ServiceTypeMassage, ServiceTypeTeaTherapy}
}

// IsValidServiceType reports whether t is one of the known service types.
func IsValidServiceType(t string) bool {
	for _, st := range ServiceTypes() {
		if st == t {
			return true
		}
	}
	return false
}

type Service struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name        string `gorm:"size:100;uniqueIndex;not null" json:"name"`
	ServiceType string `gorm:"size:50;not null" json:"serviceType"`
	Description string `gorm:"type:text" json:"description"`

	DurationMinutes int     `gorm:"not null" json:"durationMinutes"`
	Price           float64 `gorm:"type:decimal(10,2);not null" json:"price"`

	// MaxCapacity is stored for catalog display. Conflict checking treats
	// every service as exclusive regardless of capacity.
	MaxCapacity int  `gorm:"default:1;not null" json:"maxCapacity"`
	IsAvailable bool `gorm:"default:true;not null" json:"isAvailable"`

	CreatedAt time.Time `json:"createdAt"`

	Appointments []Appointment        `gorm:"foreignKey:ServiceID" json:"-"`
	Preferences  []CustomerPreference `gorm:"foreignKey:ServiceID" json:"-"`
}
