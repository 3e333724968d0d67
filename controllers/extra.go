package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/SwitteeFranca2-0/Panda-Spa/config"
	"github.com/SwitteeFranca2-0/Panda-Spa/models"
	"github.com/SwitteeFranca2-0/Panda-Spa/utils"
)

// CreateExtraInput defines the expected JSON structure for creating an extra
type CreateExtraInput struct {
	Name                   string   `json:"name" binding:"required"`
	Description            string   `json:"description"`
	Price                  float64  `json:"price" binding:"min=0"`
	DurationMinutes        int      `json:"durationMinutes" binding:"min=0"`
	CompatibleServiceTypes []string `json:"compatibleServiceTypes"`
}

// UpdateExtraInput defines the expected JSON structure for updating an extra
type UpdateExtraInput struct {
	Name                   *string   `json:"name"`
	Description            *string   `json:"description"`
	Price                  *float64  `json:"price"`
	DurationMinutes        *int      `json:"durationMinutes"`
	IsAvailable            *bool     `json:"isAvailable"`
	CompatibleServiceTypes *[]string `json:"compatibleServiceTypes"`
}

func joinServiceTypes(c *gin.Context, types []string) (string, bool) {
	for _, t := range types {
		if !models.IsValidServiceType(t) {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid service type: "+t)
			return "", false
		}
	}
	return strings.Join(types, ","), true
}

// CreateExtra adds a new add-on to the catalog
func CreateExtra(c *gin.Context) {
	var input CreateExtraInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	compatible, ok := joinServiceTypes(c, input.CompatibleServiceTypes)
	if !ok {
		return
	}

	extra := models.Extra{
		Name:                   input.Name,
		Description:            input.Description,
		Price:                  input.Price,
		DurationMinutes:        input.DurationMinutes,
		IsAvailable:            true,
		CompatibleServiceTypes: compatible,
	}

	if err := config.DB.Create(&extra).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create extra")
		return
	}

	c.JSON(http.StatusCreated, extra)
}

// GetExtras retrieves all extras
func GetExtras(c *gin.Context) {
	var extras []models.Extra
	if err := config.DB.Find(&extras).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve extras")
		return
	}

	c.JSON(http.StatusOK, extras)
}

// GetExtra retrieves a specific extra by ID
func GetExtra(c *gin.Context) {
	extraID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var extra models.Extra
	if err := config.DB.First(&extra, extraID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Extra not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, extra)
}

// UpdateExtra updates an existing extra. Appointments that already carry
// the extra keep their frozen totals.
func UpdateExtra(c *gin.Context) {
	extraID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input UpdateExtraInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var extra models.Extra
	if err := config.DB.First(&extra, extraID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Extra not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.Name != nil {
		extra.Name = *input.Name
	}
	if input.Description != nil {
		extra.Description = *input.Description
	}
	if input.Price != nil {
		if *input.Price < 0 {
			utils.RespondWithError(c, http.StatusBadRequest, "Price must not be negative")
			return
		}
		extra.Price = *input.Price
	}
	if input.DurationMinutes != nil {
		if *input.DurationMinutes < 0 {
			utils.RespondWithError(c, http.StatusBadRequest, "Duration must not be negative")
			return
		}
		extra.DurationMinutes = *input.DurationMinutes
	}
	if input.IsAvailable != nil {
		extra.IsAvailable = *input.IsAvailable
	}
	if input.CompatibleServiceTypes != nil {
		compatible, ok := joinServiceTypes(c, *input.CompatibleServiceTypes)
		if !ok {
			return
		}
		extra.CompatibleServiceTypes = compatible
	}

	if err := config.DB.Save(&extra).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update extra")
		return
	}

	c.JSON(http.StatusOK, extra)
}

// DeleteExtra marks an extra unavailable
func DeleteExtra(c *gin.Context) {
	extraID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	result := config.DB.Model(&models.Extra{}).
		Where("id = ?", extraID).
		Update("is_available", false)

	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete extra")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Extra not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Extra removed from catalog"})
}
