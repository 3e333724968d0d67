package services

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/SwitteeFranca2-0/Panda-Spa/models"
	"github.com/SwitteeFranca2-0/Panda-Spa/utils"
)

// AppointmentService owns the appointment lifecycle: booking with
// conflict detection, cancellation, completion (with its financial and
// preference side effects), reschedules, and slot discovery.
//
// Conflict checks are check-then-act, so every mutating operation runs
// inside a transaction and behind the service mutex. Two concurrent
// bookings for the same window cannot both commit.
type AppointmentService struct {
	db *gorm.DB
	mu sync.Mutex

	recommendations *RecommendationService
	financials      *FinancialService
}

func NewAppointmentService(db *gorm.DB) *AppointmentService {
	return &AppointmentService{
		db:              db,
		recommendations: NewRecommendationService(db),
		financials:      NewFinancialService(db),
	}
}

// CreateAppointment books a service for a customer. Price and duration
// are frozen at creation time from the service plus the chosen extras;
// later catalog edits never touch existing bookings.
func (s *AppointmentService) CreateAppointment(customerID, serviceID uint, at time.Time,
	notes, customerFeeling string, extraIDs []uint) (*models.Appointment, error) {

	s.mu.Lock()
	defer s.mu.Unlock()

	var appointment *models.Appointment
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var customer models.Customer
		if err := tx.First(&customer, customerID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCustomerNotFound
			}
			return fmt.Errorf("%w: %v", ErrPersistence, err)
		}

		var service models.Service
		if err := tx.First(&service, serviceID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrServiceNotFound
			}
			return fmt.Errorf("%w: %v", ErrPersistence, err)
		}
		if !service.IsAvailable {
			return ErrServiceUnavailable
		}

		duration := service.DurationMinutes
		price := service.Price

		extras := make([]models.Extra, 0, len(extraIDs))
		for _, extraID := range extraIDs {
			var extra models.Extra
			if err := tx.First(&extra, extraID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("%w (id %d)", ErrExtraNotFound, extraID)
				}
				return fmt.Errorf("%w: %v", ErrPersistence, err)
			}
			if !extra.IsAvailable {
				return fmt.Errorf("%w: %s", ErrExtraUnavailable, extra.Name)
			}
			if !extra.IsCompatibleWith(service.ServiceType) {
				return fmt.Errorf("%w: %s", ErrExtraIncompatible, extra.Name)
			}
			duration += extra.DurationMinutes
			price += extra.Price
			extras = append(extras, extra)
		}

		if err := checkConflict(tx, serviceID, at, duration, 0); err != nil {
			return err
		}

		appointment = &models.Appointment{
			CustomerID:          customerID,
			ServiceID:           serviceID,
			AppointmentDatetime: at,
			Status:              models.StatusScheduled,
			DurationMinutes:     duration,
			PricePaid:           price,
			Notes:               notes,
			CustomerFeeling:     customerFeeling,
			Extras:              extras,
		}
		if err := tx.Create(appointment).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrPersistence, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return appointment, nil
}

// CheckConflict reports whether the proposed window overlaps any
// scheduled appointment for the service. excludeID skips one appointment
// (the one being rescheduled); pass 0 to check all.
func (s *AppointmentService) CheckConflict(serviceID uint, start time.Time,
	durationMinutes int, excludeID uint) error {
	return checkConflict(s.db, serviceID, start, durationMinutes, excludeID)
}

func checkConflict(tx *gorm.DB, serviceID uint, start time.Time,
	durationMinutes int, excludeID uint) error {

	end := start.Add(time.Duration(durationMinutes) * time.Minute)

	var scheduled []models.Appointment
	if err := tx.Where("service_id = ? AND status = ?", serviceID, models.StatusScheduled).
		Find(&scheduled).Error; err != nil {
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	for _, existing := range scheduled {
		if existing.ID == excludeID {
			continue
		}
		// Half-open intervals: a booking ending exactly when another
		// starts is not a conflict.
		if start.Before(existing.EndTime()) && end.After(existing.AppointmentDatetime) {
			return &ConflictError{
				AppointmentID:    existing.ID,
				ConflictingStart: existing.AppointmentDatetime,
			}
		}
	}
	return nil
}

// CancelAppointment cancels a booking. Completed appointments cannot be
// cancelled; cancelling twice is rejected.
func (s *AppointmentService) CancelAppointment(appointmentID uint, reason string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.db.Transaction(func(tx *gorm.DB) error {
		var appointment models.Appointment
		if err := tx.First(&appointment, appointmentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrAppointmentNotFound
			}
			return fmt.Errorf("%w: %v", ErrPersistence, err)
		}

		switch appointment.Status {
		case models.StatusCancelled:
			return ErrAlreadyCancelled
		case models.StatusCompleted:
			return fmt.Errorf("%w: cannot cancel a completed appointment", ErrInvalidTransition)
		}

		appointment.Cancel(reason, time.Now().UTC())
		if err := tx.Save(&appointment).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrPersistence, err)
		}
		return nil
	})
}

// CompleteAppointment marks a booking completed and applies the side
// effects of a finished visit in the same transaction: customer totals,
// a revenue ledger entry, and the learned preference for the pair.
func (s *AppointmentService) CompleteAppointment(appointmentID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.db.Transaction(func(tx *gorm.DB) error {
		var appointment models.Appointment
		if err := tx.First(&appointment, appointmentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrAppointmentNotFound
			}
			return fmt.Errorf("%w: %v", ErrPersistence, err)
		}

		switch appointment.Status {
		case models.StatusCompleted:
			return ErrAlreadyCompleted
		case models.StatusCancelled:
			return fmt.Errorf("%w: cannot complete a cancelled appointment", ErrInvalidTransition)
		case models.StatusNoShow:
			return fmt.Errorf("%w: cannot complete a no-show appointment", ErrInvalidTransition)
		}

		now := time.Now().UTC()
		appointment.Complete(now)
		if err := tx.Save(&appointment).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrPersistence, err)
		}

		var customer models.Customer
		if err := tx.First(&customer, appointment.CustomerID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCustomerNotFound
			}
			return fmt.Errorf("%w: %v", ErrPersistence, err)
		}
		customer.TotalVisits++
		customer.TotalSpent += appointment.PricePaid
		customer.LastVisit = appointment.CompletedAt
		if err := tx.Save(&customer).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrPersistence, err)
		}

		if err := s.financials.RecordRevenue(tx, &appointment, &customer); err != nil {
			return err
		}

		return s.recommendations.UpdatePreferencesFromAppointment(tx, &appointment)
	})
}

// MarkNoShow flags a scheduled appointment the customer never showed up
// for. No completion side effects run: a no-show earns no revenue and
// teaches no preference.
func (s *AppointmentService) MarkNoShow(appointmentID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.db.Transaction(func(tx *gorm.DB) error {
		var appointment models.Appointment
		if err := tx.First(&appointment, appointmentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrAppointmentNotFound
			}
			return fmt.Errorf("%w: %v", ErrPersistence, err)
		}

		if appointment.Status != models.StatusScheduled {
			return fmt.Errorf("%w: cannot mark %s appointment as no-show",
				ErrInvalidTransition, appointment.Status)
		}

		appointment.MarkNoShow()
		if err := tx.Save(&appointment).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrPersistence, err)
		}
		return nil
	})
}

// RescheduleAppointment moves a scheduled booking to a new time. Frozen
// duration and price are kept; the conflict check skips the appointment
// itself so it never collides with its own old slot.
func (s *AppointmentService) RescheduleAppointment(appointmentID uint, newTime time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.db.Transaction(func(tx *gorm.DB) error {
		var appointment models.Appointment
		if err := tx.First(&appointment, appointmentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrAppointmentNotFound
			}
			return fmt.Errorf("%w: %v", ErrPersistence, err)
		}

		if appointment.Status != models.StatusScheduled {
			return fmt.Errorf("%w: cannot reschedule %s appointment",
				ErrInvalidTransition, appointment.Status)
		}

		if err := checkConflict(tx, appointment.ServiceID, newTime,
			appointment.DurationMinutes, appointment.ID); err != nil {
			return err
		}

		if err := tx.Model(&appointment).
			Update("appointment_datetime", newTime).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrPersistence, err)
		}
		return nil
	})
}

// GetAvailableSlots lists candidate start times for a service on a day.
// Slots step through the business-hours window; a slot is kept when the
// full service duration fits before closing and overlaps no scheduled
// appointment of that service. Unknown or unavailable services yield no
// slots.
func (s *AppointmentService) GetAvailableSlots(serviceID uint, date time.Time,
	startHour, endHour, stepMinutes int) ([]time.Time, error) {

	var service models.Service
	if err := s.db.First(&service, serviceID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return []time.Time{}, nil
		}
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if !service.IsAvailable {
		return []time.Time{}, nil
	}

	var scheduled []models.Appointment
	if err := s.db.Where("service_id = ? AND status = ?", serviceID, models.StatusScheduled).
		Find(&scheduled).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	dayStart := utils.BeginningOfDay(date)
	dayAppointments := make([]models.Appointment, 0, len(scheduled))
	for _, a := range scheduled {
		if utils.BeginningOfDay(a.AppointmentDatetime).Equal(dayStart) {
			dayAppointments = append(dayAppointments, a)
		}
	}

	duration := time.Duration(service.DurationMinutes) * time.Minute
	step := time.Duration(stepMinutes) * time.Minute
	current := dayStart.Add(time.Duration(startHour) * time.Hour)
	closing := dayStart.Add(time.Duration(endHour) * time.Hour)

	slots := []time.Time{}
	for !current.Add(duration).After(closing) {
		slotEnd := current.Add(duration)
		conflict := false
		for _, a := range dayAppointments {
			if current.Before(a.EndTime()) && slotEnd.After(a.AppointmentDatetime) {
				conflict = true
				break
			}
		}
		if !conflict {
			slots = append(slots, current)
		}
		current = current.Add(step)
	}
	return slots, nil
}

// GetAppointment fetches one appointment with its extras.
func (s *AppointmentService) GetAppointment(appointmentID uint) (*models.Appointment, error) {
	var appointment models.Appointment
	if err := s.db.Preload("Extras").First(&appointment, appointmentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAppointmentNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return &appointment, nil
}

// GetAppointmentsByCustomer lists a customer's appointments.
func (s *AppointmentService) GetAppointmentsByCustomer(customerID uint) ([]models.Appointment, error) {
	var appointments []models.Appointment
	err := s.db.Preload("Extras").
		Where("customer_id = ?", customerID).
		Order("appointment_datetime").
		Find(&appointments).Error
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return appointments, nil
}

// GetAppointmentsByService lists all appointments for a service.
func (s *AppointmentService) GetAppointmentsByService(serviceID uint) ([]models.Appointment, error) {
	var appointments []models.Appointment
	err := s.db.Where("service_id = ?", serviceID).
		Order("appointment_datetime").
		Find(&appointments).Error
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return appointments, nil
}

// GetAppointmentsByStatus lists appointments in a given status.
func (s *AppointmentService) GetAppointmentsByStatus(status string) ([]models.Appointment, error) {
	var appointments []models.Appointment
	err := s.db.Where("status = ?", status).
		Order("appointment_datetime").
		Find(&appointments).Error
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return appointments, nil
}

// GetAppointmentsByDateRange lists appointments scheduled inside
// [start, end].
func (s *AppointmentService) GetAppointmentsByDateRange(start, end time.Time) ([]models.Appointment, error) {
	var appointments []models.Appointment
	err := s.db.Where("appointment_datetime BETWEEN ? AND ?", start, end).
		Order("appointment_datetime").
		Find(&appointments).Error
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return appointments, nil
}
