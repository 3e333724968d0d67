package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/SwitteeFranca2-0/Panda-Spa/services"
	"github.com/SwitteeFranca2-0/Panda-Spa/utils"
)

var (
	appointmentService    *services.AppointmentService
	recommendationService *services.RecommendationService
	moodService           *services.MoodRecommendationService
	financialService      *services.FinancialService
)

// Init wires the business services into the handler package. Call once
// at startup before routing requests.
func Init(db *gorm.DB) {
	appointmentService = services.NewAppointmentService(db)
	recommendationService = services.NewRecommendationService(db)
	moodService = services.NewMoodRecommendationService(db)
	financialService = services.NewFinancialService(db)
}

// parseIDParam reads a positive integer id from a path parameter.
func parseIDParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid id format")
		return 0, false
	}
	return uint(id), true
}

// respondServiceError maps a service-layer error to an HTTP response.
func respondServiceError(c *gin.Context, err error) {
	var conflict *services.ConflictError

	switch {
	case errors.Is(err, services.ErrCustomerNotFound),
		errors.Is(err, services.ErrServiceNotFound),
		errors.Is(err, services.ErrAppointmentNotFound),
		errors.Is(err, services.ErrExtraNotFound):
		utils.RespondWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrServiceUnavailable),
		errors.Is(err, services.ErrExtraUnavailable),
		errors.Is(err, services.ErrExtraIncompatible):
		utils.RespondWithError(c, http.StatusUnprocessableEntity, err.Error())
	case errors.As(err, &conflict):
		utils.RespondWithError(c, http.StatusConflict, err.Error())
	case errors.Is(err, services.ErrAlreadyCancelled),
		errors.Is(err, services.ErrAlreadyCompleted),
		errors.Is(err, services.ErrInvalidTransition):
		utils.RespondWithError(c, http.StatusConflict, err.Error())
	default:
		utils.RespondWithError(c, http.StatusInternalServerError, err.Error())
	}
}
