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

// CreateFeelingMappingInput defines the JSON structure for pinning a
// service to a feeling
type CreateFeelingMappingInput struct {
	Feeling   string `json:"feeling" binding:"required"`
	ServiceID uint   `json:"serviceId" binding:"required"`
	Priority  int    `json:"priority"`
}

// UpdateFeelingMappingInput defines the JSON structure for updating a mapping
type UpdateFeelingMappingInput struct {
	Priority *int  `json:"priority"`
	IsActive *bool `json:"isActive"`
}

// CreateFeelingMapping configures an override for the mood recommender
func CreateFeelingMapping(c *gin.Context) {
	var input CreateFeelingMappingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var service models.Service
	if err := config.DB.First(&service, input.ServiceID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Service not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	mapping := models.FeelingServiceMapping{
		Feeling:   input.Feeling,
		ServiceID: input.ServiceID,
		Priority:  input.Priority,
		IsActive:  true,
	}

	if err := config.DB.Create(&mapping).Error; err != nil {
		utils.RespondWithError(c, http.StatusConflict, "Mapping already exists for this feeling and service")
		return
	}

	c.JSON(http.StatusCreated, mapping)
}

// GetFeelingMappings lists configured feeling overrides
func GetFeelingMappings(c *gin.Context) {
	query := config.DB.Order("feeling, priority")
	if feeling := c.Query("feeling"); feeling != "" {
		query = query.Where("feeling = ?", feeling)
	}

	var mappings []models.FeelingServiceMapping
	if err := query.Find(&mappings).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve mappings")
		return
	}

	c.JSON(http.StatusOK, mappings)
}

// UpdateFeelingMapping changes a mapping's priority or active flag
func UpdateFeelingMapping(c *gin.Context) {
	mappingID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input UpdateFeelingMappingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var mapping models.FeelingServiceMapping
	if err := config.DB.First(&mapping, mappingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Mapping not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.Priority != nil {
		mapping.Priority = *input.Priority
	}
	if input.IsActive != nil {
		mapping.IsActive = *input.IsActive
	}

	if err := config.DB.Save(&mapping).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update mapping")
		return
	}

	c.JSON(http.StatusOK, mapping)
}

// DeleteFeelingMapping removes a configured override
func DeleteFeelingMapping(c *gin.Context) {
	mappingID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	result := config.DB.Delete(&models.FeelingServiceMapping{}, mappingID)
	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete mapping")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Mapping not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Mapping deleted"})
}
