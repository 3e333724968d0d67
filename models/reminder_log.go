package models

import (
	"time"
)

// ReminderLog records each appointment reminder the scheduler attempted
// to deliver.
type ReminderLog struct {
	ID uint `gorm:"primaryKey" json:"id"`

	AppointmentID uint `gorm:"index;not null" json:"appointmentId"`
	CustomerID    uint `gorm:"index;not null" json:"customerId"`

	Channel      string `gorm:"size:20" json:"channel"` // whatsapp, sms
	Message      string `gorm:"type:text" json:"message"`
	Status       string `gorm:"size:20" json:"status"` // sent, failed
	ErrorMessage string `gorm:"type:text" json:"errorMessage"`

	SentAt    time.Time `json:"sentAt"`
	CreatedAt time.Time `json:"createdAt"`
}
