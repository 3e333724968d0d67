package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/SwitteeFranca2-0/Panda-Spa/config"
	"github.com/SwitteeFranca2-0/Panda-Spa/models"
	"github.com/SwitteeFranca2-0/Panda-Spa/utils"
)

// CreateServiceInput defines the expected JSON structure for creating a service
type CreateServiceInput struct {
	Name            string  `json:"name" binding:"required"`
	ServiceType     string  `json:"serviceType" binding:"required"`
	Description     string  `json:"description"`
	DurationMinutes int     `json:"durationMinutes" binding:"required,min=1"`
	Price           float64 `json:"price" binding:"required,gt=0"`
	MaxCapacity     int     `json:"maxCapacity"`
}

// UpdateServiceInput defines the expected JSON structure for updating a service
type UpdateServiceInput struct {
	Name            *string  `json:"name"`
	Description     *string  `json:"description"`
	DurationMinutes *int     `json:"durationMinutes"`
	Price           *float64 `json:"price"`
	MaxCapacity     *int     `json:"maxCapacity"`
	IsAvailable     *bool    `json:"isAvailable"`
}

// CreateService adds a new offering to the catalog
func CreateService(c *gin.Context) {
	var input CreateServiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if !models.IsValidServiceType(input.ServiceType) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid service type")
		return
	}

	maxCapacity := input.MaxCapacity
	if maxCapacity <= 0 {
		maxCapacity = 1
	}

	service := models.Service{
		Name:            input.Name,
		ServiceType:     input.ServiceType,
		Description:     input.Description,
		DurationMinutes: input.DurationMinutes,
		Price:           input.Price,
		MaxCapacity:     maxCapacity,
		IsAvailable:     true,
	}

	if err := config.DB.Create(&service).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create service")
		return
	}

	c.JSON(http.StatusCreated, service)
}

// GetServices retrieves the catalog
func GetServices(c *gin.Context) {
	var catalog []models.Service
	query := config.DB
	if serviceType := c.Query("type"); serviceType != "" {
		query = query.Where("service_type = ?", serviceType)
	}
	if err := query.Find(&catalog).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve services")
		return
	}

	c.JSON(http.StatusOK, catalog)
}

// GetService retrieves a specific service by ID
func GetService(c *gin.Context) {
	serviceID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var service models.Service
	if err := config.DB.First(&service, serviceID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Service not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, service)
}

// UpdateService updates an existing service. Changes never touch
// appointments already booked against it.
func UpdateService(c *gin.Context) {
	serviceID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input UpdateServiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var service models.Service
	if err := config.DB.First(&service, serviceID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Service not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.Name != nil {
		service.Name = *input.Name
	}
	if input.Description != nil {
		service.Description = *input.Description
	}
	if input.DurationMinutes != nil {
		if *input.DurationMinutes <= 0 {
			utils.RespondWithError(c, http.StatusBadRequest, "Duration must be positive")
			return
		}
		service.DurationMinutes = *input.DurationMinutes
	}
	if input.Price != nil {
		if *input.Price <= 0 {
			utils.RespondWithError(c, http.StatusBadRequest, "Price must be positive")
			return
		}
		service.Price = *input.Price
	}
	if input.MaxCapacity != nil {
		if *input.MaxCapacity <= 0 {
			utils.RespondWithError(c, http.StatusBadRequest, "Capacity must be positive")
			return
		}
		service.MaxCapacity = *input.MaxCapacity
	}
	if input.IsAvailable != nil {
		service.IsAvailable = *input.IsAvailable
	}

	if err := config.DB.Save(&service).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update service")
		return
	}

	c.JSON(http.StatusOK, service)
}

// DeleteService marks a service unavailable
func DeleteService(c *gin.Context) {
	serviceID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	result := config.DB.Model(&models.Service{}).
		Where("id = ?", serviceID).
		Update("is_available", false)

	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete service")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Service not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Service removed from catalog"})
}
