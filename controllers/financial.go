package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/SwitteeFranca2-0/Panda-Spa/utils"
)

// CreateExpenseInput defines the expected JSON structure for recording
// an expense
type CreateExpenseInput struct {
	Amount        float64 `json:"amount" binding:"required,gt=0"`
	Category      string  `json:"category" binding:"required"`
	Description   string  `json:"description" binding:"required"`
	SupplierID    *uint   `json:"supplierId"`
	ReceiptNumber string  `json:"receiptNumber"`
	Notes         string  `json:"notes"`
}

// CreateExpense records an operating expense in the ledger
func CreateExpense(c *gin.Context) {
	var input CreateExpenseInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	record, err := financialService.RecordExpense(input.Amount, input.Category,
		input.Description, input.SupplierID, input.ReceiptNumber, input.Notes)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	c.JSON(http.StatusCreated, record)
}

// GetFinancialRecords lists ledger entries, optionally filtered by type
func GetFinancialRecords(c *gin.Context) {
	records, err := financialService.GetRecords(c.Query("type"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, records)
}

// GetFinancialSummary returns revenue, expenses, profit, and the expense
// category breakdown for a date range
func GetFinancialSummary(c *gin.Context) {
	start, ok := parseDateQuery(c, "start")
	if !ok {
		return
	}
	end, ok := parseDateQuery(c, "end")
	if !ok {
		return
	}
	if !end.IsZero() {
		end = utils.EndOfDay(end)
	}

	summary, err := financialService.GetFinancialSummary(start, end)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

// parseDateQuery reads an optional YYYY-MM-DD query parameter. A zero
// time means the parameter was absent.
func parseDateQuery(c *gin.Context, name string) (time.Time, bool) {
	raw := c.Query(name)
	if raw == "" {
		return time.Time{}, true
	}
	date, err := time.Parse("2006-01-02", raw)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest,
			"Invalid "+name+" date, expected YYYY-MM-DD")
		return time.Time{}, false
	}
	return date, true
}
