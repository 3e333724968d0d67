package services

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"gorm.io/gorm"

	"github.com/SwitteeFranca2-0/Panda-Spa/models"
	"github.com/SwitteeFranca2-0/Panda-Spa/utils"
)

// ReminderService sends next-day appointment reminders over Twilio and
// sweeps stale bookings into no_show.
type ReminderService struct {
	db           *gorm.DB
	client       *twilio.RestClient
	appointments *AppointmentService
}

func NewReminderService(db *gorm.DB, appointments *AppointmentService) *ReminderService {
	accountSid := os.Getenv("TWILIO_ACCOUNT_SID")
	authToken := os.Getenv("TWILIO_AUTH_TOKEN")

	return &ReminderService{
		db: db,
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: accountSid,
			Password: authToken,
		}),
		appointments: appointments,
	}
}

// StartScheduler registers the daily reminder run (9 AM) and the hourly
// no-show sweep.
func (s *ReminderService) StartScheduler() {
	c := cron.New()

	c.AddFunc("0 9 * * *", s.SendUpcomingReminders)
	c.AddFunc("@hourly", s.SweepNoShows)

	c.Start()
	log.Println("Reminder scheduler started")
}

// SendUpcomingReminders messages every customer with a scheduled
// appointment tomorrow. Each attempt is written to the reminder log.
func (s *ReminderService) SendUpcomingReminders() {
	log.Println("Starting daily reminder processing...")

	tomorrow := utils.BeginningOfDay(time.Now().AddDate(0, 0, 1))
	dayAfter := tomorrow.AddDate(0, 0, 1)

	var appointments []models.Appointment
	if err := s.db.Where("status = ? AND appointment_datetime >= ? AND appointment_datetime < ?",
		models.StatusScheduled, tomorrow, dayAfter).
		Find(&appointments).Error; err != nil {
		log.Printf("Failed to fetch tomorrow's appointments: %v", err)
		return
	}

	for _, appointment := range appointments {
		s.sendReminder(appointment)
	}

	log.Println("Daily reminder processing completed")
}

func (s *ReminderService) sendReminder(appointment models.Appointment) {
	var customer models.Customer
	if err := s.db.First(&customer, appointment.CustomerID).Error; err != nil {
		log.Printf("Appointment %d: failed to load customer: %v", appointment.ID, err)
		return
	}
	if !utils.ValidatePhone(customer.ContactInfo) {
		// Contact is a forest location or empty; nothing to dial.
		return
	}

	var service models.Service
	if err := s.db.First(&service, appointment.ServiceID).Error; err != nil {
		log.Printf("Appointment %d: failed to load service: %v", appointment.ID, err)
		return
	}

	message := fmt.Sprintf("Hi %s! A reminder of your %s at Panda Spa tomorrow at %s. See you there!",
		customer.Name, service.Name, appointment.AppointmentDatetime.Format("15:04"))

	// WhatsApp for E.164 numbers, plain SMS otherwise.
	channel := "sms"
	to := customer.ContactInfo
	from := os.Getenv("TWILIO_PHONE_NUMBER")
	if strings.HasPrefix(customer.ContactInfo, "+") {
		channel = "whatsapp"
		to = "whatsapp:" + customer.ContactInfo
		from = "whatsapp:" + os.Getenv("TWILIO_WHATSAPP_NUMBER")
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(from)
	params.SetBody(message)

	resp, err := s.client.Api.CreateMessage(params)
	status := "sent"
	errorMsg := ""

	if err != nil {
		log.Printf("Failed to send reminder to %s: %v", customer.ContactInfo, err)
		status = "failed"
		errorMsg = err.Error()
	} else if resp.Sid != nil {
		log.Printf("Reminder sent to %s, SID: %s", customer.ContactInfo, *resp.Sid)
	} else {
		log.Printf("Reminder sent to %s, but no SID returned", customer.ContactInfo)
	}

	reminderLog := models.ReminderLog{
		AppointmentID: appointment.ID,
		CustomerID:    customer.ID,
		Channel:       channel,
		Message:       message,
		Status:        status,
		ErrorMessage:  errorMsg,
		SentAt:        time.Now(),
	}
	if err := s.db.Create(&reminderLog).Error; err != nil {
		log.Printf("Failed to log reminder for appointment %d: %v", appointment.ID, err)
	}
}

// noShowAfter is how long past its end time a scheduled appointment may
// sit before the sweep flags it.
const noShowAfter = 24 * time.Hour

// SweepNoShows transitions scheduled appointments whose window ended more
// than noShowAfter ago into no_show.
func (s *ReminderService) SweepNoShows() {
	cutoff := time.Now().Add(-noShowAfter)

	var stale []models.Appointment
	if err := s.db.Where("status = ?", models.StatusScheduled).
		Find(&stale).Error; err != nil {
		log.Printf("No-show sweep: failed to fetch scheduled appointments: %v", err)
		return
	}

	flagged := 0
	for _, appointment := range stale {
		if appointment.EndTime().After(cutoff) {
			continue
		}
		if err := s.appointments.MarkNoShow(appointment.ID); err != nil {
			log.Printf("No-show sweep: appointment %d: %v", appointment.ID, err)
			continue
		}
		flagged++
	}
	if flagged > 0 {
		log.Printf("No-show sweep: flagged %d appointment(s)", flagged)
	}
}
