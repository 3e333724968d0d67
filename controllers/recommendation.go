package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/SwitteeFranca2-0/Panda-Spa/utils"
)

// GetRecommendations returns ranked service suggestions for a customer
func GetRecommendations(c *gin.Context) {
	customerID, ok := parseIDParam(c, "customerId")
	if !ok {
		return
	}

	limit := queryIntDefault(c, "limit", 3)
	if limit <= 0 || limit > 20 {
		utils.RespondWithError(c, http.StatusBadRequest, "limit must be between 1 and 20")
		return
	}

	recommendations, err := recommendationService.GetRecommendations(customerID, limit)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"recommendations": recommendations})
}

// GetRecommendationsByFeeling returns services and extras matched to a
// customer's stated mood
func GetRecommendationsByFeeling(c *gin.Context) {
	feeling := strings.TrimSpace(c.Param("feeling"))
	if feeling == "" {
		utils.RespondWithError(c, http.StatusBadRequest, "Feeling is required")
		return
	}

	recommendation, err := moodService.GetRecommendationsByFeeling(feeling)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, recommendation)
}

// GetAvailableFeelings lists the feelings the spa can respond to
func GetAvailableFeelings(c *gin.Context) {
	feelings, err := moodService.GetAvailableFeelings()
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"feelings": feelings})
}

// GetCustomerPreferences lists a customer's learned preferences, best
// score first
func GetCustomerPreferences(c *gin.Context) {
	customerID, ok := parseIDParam(c, "customerId")
	if !ok {
		return
	}

	limit := queryIntDefault(c, "limit", 5)
	preferences, err := recommendationService.GetTopPreferences(customerID, limit)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"preferences": preferences})
}
