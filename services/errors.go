package services

import (
	"errors"
	"fmt"
	"time"
)

// Sentinel errors returned by the business services. Controllers map
// these to HTTP status codes; the messages are safe for direct display.
var (
	ErrCustomerNotFound    = errors.New("customer not found")
	ErrServiceNotFound     = errors.New("service not found")
	ErrAppointmentNotFound = errors.New("appointment not found")
	ErrExtraNotFound       = errors.New("extra not found")

	ErrServiceUnavailable = errors.New("service is not available")
	ErrExtraUnavailable   = errors.New("extra is not available")
	ErrExtraIncompatible  = errors.New("extra is not compatible with this service")

	ErrAlreadyCancelled  = errors.New("appointment is already cancelled")
	ErrAlreadyCompleted  = errors.New("appointment is already completed")
	ErrInvalidTransition = errors.New("invalid appointment status transition")

	ErrPersistence = errors.New("failed to persist changes")
)

// ConflictError reports that a proposed time window overlaps an existing
// scheduled appointment for the same service.
type ConflictError struct {
	AppointmentID    uint
	ConflictingStart time.Time
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("time slot conflict: conflicts with appointment at %s",
		e.ConflictingStart.Format("2006-01-02 15:04"))
}
