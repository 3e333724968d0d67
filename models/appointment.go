package models

import (
	"time"
)

// Appointment statuses. Scheduled is the only non-terminal state.
const (
	StatusScheduled = "scheduled"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
	StatusNoShow    = "no_show"
)

// AppointmentStatuses returns the valid status values.
func AppointmentStatuses() []string {
	return []string{StatusScheduled, StatusCompleted, StatusCancelled, StatusNoShow}
}

// Appointment is a booking of one customer for one service at one time.
// DurationMinutes and PricePaid are captured at creation (service plus
// attached extras) and never recalculated afterwards.
type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CustomerID uint `gorm:"index;not null" json:"customerId"`
	ServiceID  uint `gorm:"index;not null" json:"serviceId"`

	AppointmentDatetime time.Time `gorm:"not null" json:"appointmentDatetime"`
	Status              string    `gorm:"size:20;default:'scheduled';not null" json:"status"`

	DurationMinutes int     `gorm:"not null" json:"durationMinutes"`
	PricePaid       float64 `gorm:"type:decimal(10,2);not null" json:"pricePaid"`

	Notes           string `gorm:"type:text" json:"notes"`
	CustomerFeeling string `gorm:"size:50" json:"customerFeeling"`

	CreatedAt          time.Time  `json:"createdAt"`
	CompletedAt        *time.Time `json:"completedAt"`
	CancelledAt        *time.Time `json:"cancelledAt"`
	CancellationReason string     `gorm:"size:200" json:"cancellationReason"`

	Customer Customer `gorm:"foreignKey:CustomerID" json:"-"`
	Service  Service  `gorm:"foreignKey:ServiceID" json:"-"`
	Extras   []Extra  `gorm:"many2many:appointment_extras" json:"extras"`
}

// EndTime returns the moment the appointment's window closes.
func (a *Appointment) EndTime() time.Time {
	return a.AppointmentDatetime.Add(time.Duration(a.DurationMinutes) * time.Minute)
}

// Cancel marks the appointment cancelled at the given time.
func (a *Appointment) Cancel(reason string, at time.Time) {
	a.Status = StatusCancelled
	a.CancelledAt = &at
	a.CancellationReason = reason
}

// Complete marks the appointment completed at the given time.
func (a *Appointment) Complete(at time.Time) {
	a.Status = StatusCompleted
	a.CompletedAt = &at
}

// MarkNoShow marks the appointment as a no-show.
func (a *Appointment) MarkNoShow() {
	a.Status = StatusNoShow
}
