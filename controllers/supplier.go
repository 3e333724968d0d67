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

// CreateSupplierInput defines the expected JSON structure for creating a supplier
type CreateSupplierInput struct {
	Name        string `json:"name" binding:"required"`
	ContactInfo string `json:"contactInfo"`
	Category    string `json:"category"`
	Notes       string `json:"notes"`
}

// UpdateSupplierInput defines the expected JSON structure for updating a supplier
type UpdateSupplierInput struct {
	Name        *string `json:"name"`
	ContactInfo *string `json:"contactInfo"`
	Category    *string `json:"category"`
	Notes       *string `json:"notes"`
	IsActive    *bool   `json:"isActive"`
}

// CreateSupplier registers a supplier for expense tracking
func CreateSupplier(c *gin.Context) {
	var input CreateSupplierInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	supplier := models.Supplier{
		Name:        input.Name,
		ContactInfo: input.ContactInfo,
		Category:    input.Category,
		Notes:       input.Notes,
		IsActive:    true,
	}

	if err := config.DB.Create(&supplier).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create supplier")
		return
	}

	c.JSON(http.StatusCreated, supplier)
}

// GetSuppliers retrieves all suppliers
func GetSuppliers(c *gin.Context) {
	var suppliers []models.Supplier
	if err := config.DB.Find(&suppliers).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve suppliers")
		return
	}

	c.JSON(http.StatusOK, suppliers)
}

// UpdateSupplier updates an existing supplier
func UpdateSupplier(c *gin.Context) {
	supplierID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input UpdateSupplierInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var supplier models.Supplier
	if err := config.DB.First(&supplier, supplierID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Supplier not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.Name != nil {
		supplier.Name = *input.Name
	}
	if input.ContactInfo != nil {
		supplier.ContactInfo = *input.ContactInfo
	}
	if input.Category != nil {
		supplier.Category = *input.Category
	}
	if input.Notes != nil {
		supplier.Notes = *input.Notes
	}
	if input.IsActive != nil {
		supplier.IsActive = *input.IsActive
	}

	if err := config.DB.Save(&supplier).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update supplier")
		return
	}

	c.JSON(http.StatusOK, supplier)
}

// DeleteSupplier deactivates a supplier
func DeleteSupplier(c *gin.Context) {
	supplierID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	result := config.DB.Model(&models.Supplier{}).
		Where("id = ?", supplierID).
		Update("is_active", false)

	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete supplier")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Supplier not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Supplier deactivated"})
}
