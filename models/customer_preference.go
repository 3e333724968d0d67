package models

import (
	"time"
)

// CustomerPreference aggregates a customer's history with one service.
// One row exists per (customer, service) pair; it is created lazily on the
// first completed appointment and updated on every completion after that.
// PreferenceScore is denormalized and recomputed in full on each update.
type CustomerPreference struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CustomerID uint `gorm:"uniqueIndex:idx_customer_service,priority:1;not null" json:"customerId"`
	ServiceID  uint `gorm:"uniqueIndex:idx_customer_service,priority:2;not null" json:"serviceId"`

	PreferenceScore float64 `gorm:"default:0.0;not null" json:"preferenceScore"`
	VisitCount      int     `gorm:"default:0;not null" json:"visitCount"`
	TotalSpent      float64 `gorm:"type:decimal(10,2);default:0.0;not null" json:"totalSpent"`

	FirstVisited *time.Time `json:"firstVisited"`
	LastVisited  *time.Time `json:"lastVisited"`

	AverageRating *float64 `json:"averageRating"`
	Notes         string   `gorm:"type:text" json:"notes"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Customer Customer `gorm:"foreignKey:CustomerID" json:"-"`
	Service  Service  `gorm:"foreignKey:ServiceID" json:"-"`
}

// UpdateFromAppointment folds one completed visit into the aggregate.
func (p *CustomerPreference) UpdateFromAppointment(pricePaid float64, visitDate time.Time) {
	p.VisitCount++
	p.TotalSpent += pricePaid
	if p.FirstVisited == nil {
		p.FirstVisited = &visitDate
	}
	p.LastVisited = &visitDate
}
