package models

import (
	"time"
)

// FeelingServiceMapping is a configurable override for the built-in
// feeling tables: it pins a concrete service to a feeling. Lower priority
// values are recommended first.
type FeelingServiceMapping struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Feeling   string `gorm:"size:50;uniqueIndex:idx_feeling_service,priority:1;not null" json:"feeling"`
	ServiceID uint   `gorm:"uniqueIndex:idx_feeling_service,priority:2;not null" json:"serviceId"`

	Priority int  `gorm:"default:0;not null" json:"priority"`
	IsActive bool `gorm:"default:true;not null" json:"isActive"`

	CreatedAt time.Time `json:"createdAt"`

	Service Service `gorm:"foreignKey:ServiceID" json:"-"`
}
