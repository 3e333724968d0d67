package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/SwitteeFranca2-0/Panda-Spa/config"
	"github.com/SwitteeFranca2-0/Panda-Spa/models"
	"github.com/SwitteeFranca2-0/Panda-Spa/utils"
)

type DashboardOverview struct {
	TotalCustomers    int64               `json:"totalCustomers"`
	TotalAppointments int64               `json:"totalAppointments"`
	ScheduledToday    []TodayAppointment  `json:"scheduledToday"`
	MonthlyRevenue    float64             `json:"monthlyRevenue"`
	MonthlyExpenses   float64             `json:"monthlyExpenses"`
	MonthlyProfit     float64             `json:"monthlyProfit"`
	TopServices       []ServicePopularity `json:"topServices"`
}

type TodayAppointment struct {
	ID           uint      `json:"id"`
	CustomerName string    `json:"customerName"`
	ServiceName  string    `json:"serviceName"`
	Time         time.Time `json:"time"`
}

type ServicePopularity struct {
	Name   string `json:"name"`
	Visits int    `json:"visits"`
}

// GetDashboardOverview returns the front-desk summary: today's schedule,
// this month's figures, and the most-visited services.
func GetDashboardOverview(c *gin.Context) {
	var totalCustomers int64
	config.DB.Model(&models.Customer{}).Where("is_active = ?", true).Count(&totalCustomers)

	var totalAppointments int64
	config.DB.Model(&models.Appointment{}).Count(&totalAppointments)

	now := time.Now()
	firstOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	monthlyRevenue, err := financialService.CalculateRevenue(firstOfMonth, now)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	monthlyExpenses, err := financialService.CalculateExpenses(firstOfMonth, now)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	dayStart := utils.BeginningOfDay(now)
	var todays []models.Appointment
	if err := config.DB.Preload("Customer").Preload("Service").
		Where("status = ? AND appointment_datetime >= ? AND appointment_datetime < ?",
			models.StatusScheduled, dayStart, dayStart.AddDate(0, 0, 1)).
		Order("appointment_datetime").
		Find(&todays).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to load today's appointments")
		return
	}

	scheduledToday := make([]TodayAppointment, 0, len(todays))
	for _, appointment := range todays {
		scheduledToday = append(scheduledToday, TodayAppointment{
			ID:           appointment.ID,
			CustomerName: appointment.Customer.Name,
			ServiceName:  appointment.Service.Name,
			Time:         appointment.AppointmentDatetime,
		})
	}

	type serviceVisits struct {
		Name   string
		Visits int
	}
	var rows []serviceVisits
	if err := config.DB.Model(&models.CustomerPreference{}).
		Select("services.name AS name, SUM(customer_preferences.visit_count) AS visits").
		Joins("JOIN services ON services.id = customer_preferences.service_id").
		Group("services.name").
		Order("visits DESC").
		Limit(5).
		Scan(&rows).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to load top services")
		return
	}

	topServices := make([]ServicePopularity, 0, len(rows))
	for _, row := range rows {
		topServices = append(topServices, ServicePopularity{Name: row.Name, Visits: row.Visits})
	}

	c.JSON(http.StatusOK, DashboardOverview{
		TotalCustomers:    totalCustomers,
		TotalAppointments: totalAppointments,
		ScheduledToday:    scheduledToday,
		MonthlyRevenue:    monthlyRevenue,
		MonthlyExpenses:   monthlyExpenses,
		MonthlyProfit:     monthlyRevenue - monthlyExpenses,
		TopServices:       topServices,
	})
}
