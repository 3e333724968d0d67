package models

import (
	"strings"
	"time"
)

// Extra is an add-on that can be attached to an appointment at booking
// time, adding its price and duration to the appointment's frozen totals.
type Extra struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name        string `gorm:"size:100;uniqueIndex;not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`

	Price           float64 `gorm:"type:decimal(10,2);not null" json:"price"`
	DurationMinutes int     `gorm:"default:0;not null" json:"durationMinutes"`

	IsAvailable bool `gorm:"default:true;not null" json:"isAvailable"`

	// Comma-separated service types this extra may be attached to.
	// Empty means compatible with all service types.
	CompatibleServiceTypes string `gorm:"size:200" json:"compatibleServiceTypes"`

	CreatedAt time.Time `json:"createdAt"`
}

// IsCompatibleWith reports whether the extra can be attached to a service
// of the given type.
func (e *Extra) IsCompatibleWith(serviceType string) bool {
	if e.CompatibleServiceTypes == "" {
		return true
	}
	for _, t := range strings.Split(e.CompatibleServiceTypes, ",") {
		if strings.TrimSpace(t) == serviceType {
			return true
		}
	}
	return false
}
