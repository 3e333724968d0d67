package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/SwitteeFranca2-0/Panda-Spa/config"
	"github.com/SwitteeFranca2-0/Panda-Spa/models"
	"github.com/SwitteeFranca2-0/Panda-Spa/utils"
)

// CreateAppointmentInput defines the expected JSON structure for booking
type CreateAppointmentInput struct {
	CustomerID      uint      `json:"customerId" binding:"required"`
	ServiceID       uint      `json:"serviceId" binding:"required"`
	Datetime        time.Time `json:"datetime" binding:"required"`
	Notes           string    `json:"notes"`
	CustomerFeeling string    `json:"customerFeeling"`
	ExtraIDs        []uint    `json:"extraIds"`
}

// CancelAppointmentInput carries the optional cancellation reason
type CancelAppointmentInput struct {
	Reason string `json:"reason"`
}

// RescheduleAppointmentInput carries the new booking time
type RescheduleAppointmentInput struct {
	Datetime time.Time `json:"datetime" binding:"required"`
}

// CreateAppointment books a service for a customer
func CreateAppointment(c *gin.Context) {
	var input CreateAppointmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	appointment, err := appointmentService.CreateAppointment(
		input.CustomerID, input.ServiceID, input.Datetime,
		input.Notes, input.CustomerFeeling, input.ExtraIDs)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, appointment)
}

// GetAppointments lists appointments, optionally filtered by customer,
// service, or status
func GetAppointments(c *gin.Context) {
	query := config.DB.Preload("Extras").Order("appointment_datetime")

	if customerID := c.Query("customerId"); customerID != "" {
		query = query.Where("customer_id = ?", customerID)
	}
	if serviceID := c.Query("serviceId"); serviceID != "" {
		query = query.Where("service_id = ?", serviceID)
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var appointments []models.Appointment
	if err := query.Find(&appointments).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve appointments")
		return
	}

	c.JSON(http.StatusOK, appointments)
}

// GetAppointment retrieves a specific appointment by ID
func GetAppointment(c *gin.Context) {
	appointmentID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	appointment, err := appointmentService.GetAppointment(appointmentID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, appointment)
}

// CancelAppointment cancels a scheduled booking
func CancelAppointment(c *gin.Context) {
	appointmentID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input CancelAppointmentInput
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&input); err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
			return
		}
	}

	if err := appointmentService.CancelAppointment(appointmentID, input.Reason); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Appointment cancelled"})
}

// CompleteAppointment marks a booking completed and applies its side
// effects (customer stats, revenue, preferences)
func CompleteAppointment(c *gin.Context) {
	appointmentID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := appointmentService.CompleteAppointment(appointmentID); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Appointment completed"})
}

// MarkAppointmentNoShow flags a booking the customer missed
func MarkAppointmentNoShow(c *gin.Context) {
	appointmentID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := appointmentService.MarkNoShow(appointmentID); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Appointment marked as no-show"})
}

// RescheduleAppointment moves a scheduled booking to a new time
func RescheduleAppointment(c *gin.Context) {
	appointmentID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input RescheduleAppointmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if err := appointmentService.RescheduleAppointment(appointmentID, input.Datetime); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Appointment rescheduled"})
}

// GetAvailableSlots lists bookable start times for a service on a date
func GetAvailableSlots(c *gin.Context) {
	serviceID, err := strconv.ParseUint(c.Query("serviceId"), 10, 32)
	if err != nil || serviceID == 0 {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid or missing serviceId")
		return
	}

	date, err := time.Parse("2006-01-02", c.Query("date"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid or missing date, expected YYYY-MM-DD")
		return
	}

	startHour := queryIntDefault(c, "startHour", 9)
	endHour := queryIntDefault(c, "endHour", 17)
	stepMinutes := queryIntDefault(c, "stepMinutes", 30)
	if startHour < 0 || endHour > 24 || startHour >= endHour || stepMinutes <= 0 {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid business-hours window")
		return
	}

	slots, err := appointmentService.GetAvailableSlots(uint(serviceID), date,
		startHour, endHour, stepMinutes)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"slots": slots})
}

func queryIntDefault(c *gin.Context, name string, fallback int) int {
	raw := c.Query(name)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}
