package services

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/SwitteeFranca2-0/Panda-Spa/models"
)

// FinancialService keeps the revenue/expense ledger and computes the
// figures behind the financial views.
type FinancialService struct {
	db *gorm.DB
}

func NewFinancialService(db *gorm.DB) *FinancialService {
	return &FinancialService{db: db}
}

// RecordRevenue writes the ledger entry for a completed appointment.
// Runs inside the completion transaction; the amount is the appointment's
// frozen price.
func (s *FinancialService) RecordRevenue(tx *gorm.DB, appointment *models.Appointment,
	customer *models.Customer) error {

	transactionDate := appointment.AppointmentDatetime
	if appointment.CompletedAt != nil {
		transactionDate = *appointment.CompletedAt
	}

	customerName := fmt.Sprintf("Customer %d", appointment.CustomerID)
	if customer != nil {
		customerName = customer.Name
	}

	appointmentID := appointment.ID
	record := models.FinancialRecord{
		TransactionType: models.TransactionRevenue,
		Amount:          appointment.PricePaid,
		Description: fmt.Sprintf("Service revenue from appointment #%d - %s",
			appointment.ID, customerName),
		Category:        models.CategoryServiceRevenue,
		AppointmentID:   &appointmentID,
		TransactionDate: transactionDate,
		ReceiptNumber:   uuid.NewString(),
	}

	if err := tx.Create(&record).Error; err != nil {
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return nil
}

// RecordExpense writes an expense ledger entry. Amount must be positive
// and the category one of the known ledger categories. A receipt number
// is generated when the caller has none.
func (s *FinancialService) RecordExpense(amount float64, category, description string,
	supplierID *uint, receiptNumber, notes string) (*models.FinancialRecord, error) {

	if amount <= 0 {
		return nil, fmt.Errorf("amount must be positive")
	}
	if !models.IsValidFinancialCategory(category) {
		return nil, fmt.Errorf("invalid category %q, must be one of %v",
			category, models.FinancialCategories())
	}

	if receiptNumber == "" {
		receiptNumber = uuid.NewString()
	}

	record := models.FinancialRecord{
		TransactionType: models.TransactionExpense,
		Amount:          amount,
		Description:     description,
		Category:        category,
		SupplierID:      supplierID,
		TransactionDate: time.Now().UTC(),
		ReceiptNumber:   receiptNumber,
		Notes:           notes,
	}

	if err := s.db.Create(&record).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return &record, nil
}

// CalculateRevenue sums revenue entries inside [start, end]. Zero times
// mean unbounded start / now.
func (s *FinancialService) CalculateRevenue(start, end time.Time) (float64, error) {
	return s.sumByType(models.TransactionRevenue, start, end)
}

// CalculateExpenses sums expense entries inside [start, end].
func (s *FinancialService) CalculateExpenses(start, end time.Time) (float64, error) {
	return s.sumByType(models.TransactionExpense, start, end)
}

// CalculateProfit is revenue minus expenses for the range.
func (s *FinancialService) CalculateProfit(start, end time.Time) (float64, error) {
	revenue, err := s.CalculateRevenue(start, end)
	if err != nil {
		return 0, err
	}
	expenses, err := s.CalculateExpenses(start, end)
	if err != nil {
		return 0, err
	}
	return revenue - expenses, nil
}

func (s *FinancialService) sumByType(transactionType string, start, end time.Time) (float64, error) {
	if end.IsZero() {
		end = time.Now().UTC()
	}

	query := s.db.Model(&models.FinancialRecord{}).
		Where("transaction_type = ? AND transaction_date <= ?", transactionType, end)
	if !start.IsZero() {
		query = query.Where("transaction_date >= ?", start)
	}

	var total float64
	if err := query.Select("COALESCE(SUM(amount), 0)").Scan(&total).Error; err != nil {
		return 0, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return total, nil
}

// GetCategoryBreakdown totals expenses per category for the range.
func (s *FinancialService) GetCategoryBreakdown(start, end time.Time) (map[string]float64, error) {
	if end.IsZero() {
		end = time.Now().UTC()
	}

	var records []models.FinancialRecord
	query := s.db.Where("transaction_type = ? AND transaction_date <= ?",
		models.TransactionExpense, end)
	if !start.IsZero() {
		query = query.Where("transaction_date >= ?", start)
	}
	if err := query.Find(&records).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	breakdown := map[string]float64{}
	for _, record := range records {
		breakdown[record.Category] += record.Amount
	}
	return breakdown, nil
}

// FinancialSummary is the combined revenue/expense/profit view for a
// date range.
type FinancialSummary struct {
	Revenue           float64            `json:"revenue"`
	Expenses          float64            `json:"expenses"`
	Profit            float64            `json:"profit"`
	CategoryBreakdown map[string]float64 `json:"categoryBreakdown"`
	StartDate         *time.Time         `json:"startDate"`
	EndDate           time.Time          `json:"endDate"`
}

// GetFinancialSummary builds the full summary for the range.
func (s *FinancialService) GetFinancialSummary(start, end time.Time) (*FinancialSummary, error) {
	if end.IsZero() {
		end = time.Now().UTC()
	}

	revenue, err := s.CalculateRevenue(start, end)
	if err != nil {
		return nil, err
	}
	expenses, err := s.CalculateExpenses(start, end)
	if err != nil {
		return nil, err
	}
	breakdown, err := s.GetCategoryBreakdown(start, end)
	if err != nil {
		return nil, err
	}

	summary := &FinancialSummary{
		Revenue:           revenue,
		Expenses:          expenses,
		Profit:            revenue - expenses,
		CategoryBreakdown: breakdown,
		EndDate:           end,
	}
	if !start.IsZero() {
		summary.StartDate = &start
	}
	return summary, nil
}

// GetRecords lists ledger entries, optionally filtered by transaction
// type, newest first.
func (s *FinancialService) GetRecords(transactionType string) ([]models.FinancialRecord, error) {
	query := s.db.Order("transaction_date DESC")
	if transactionType != "" {
		query = query.Where("transaction_type = ?", transactionType)
	}

	var records []models.FinancialRecord
	if err := query.Find(&records).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return records, nil
}
