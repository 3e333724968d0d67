package services

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"gorm.io/gorm"

	"github.com/SwitteeFranca2-0/Panda-Spa/models"
)

// Recommendation is one ranked suggestion for a customer. Score is the
// stored preference score when the suggestion is personal, and 0 when it
// comes from the popularity or complementary fallbacks (not personalized).
type Recommendation struct {
	Service models.Service `json:"service"`
	Score   float64        `json:"score"`
	Reason  string         `json:"reason"`
}

// complementaryTypes pairs each service type with the two others: a guest
// who loves thermal baths gets massage and tea therapy suggested, and so
// on around the triangle.
var complementaryTypes = map[string][]string{
	models.ServiceTypeThermalBath: {models.ServiceTypeMassage, models.ServiceTypeTeaTherapy},
	models.ServiceTypeMassage:     {models.ServiceTypeTeaTherapy, models.ServiceTypeThermalBath},
	models.ServiceTypeTeaTherapy:  {models.ServiceTypeMassage, models.ServiceTypeThermalBath},
}

// RecommendationService learns per-customer service preferences from
// completed appointments and ranks suggestions with three cascading
// strategies: personal history, overall popularity, complementary types.
type RecommendationService struct {
	db *gorm.DB
}

func NewRecommendationService(db *gorm.DB) *RecommendationService {
	return &RecommendationService{db: db}
}

// UpdatePreferencesFromAppointment folds one completed appointment into
// the (customer, service) preference row, creating it on first visit, and
// recomputes the stored score in full. Runs inside the completion
// transaction.
func (s *RecommendationService) UpdatePreferencesFromAppointment(tx *gorm.DB,
	appointment *models.Appointment) error {

	var preference models.CustomerPreference
	err := tx.Where("customer_id = ? AND service_id = ?",
		appointment.CustomerID, appointment.ServiceID).
		First(&preference).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		preference = models.CustomerPreference{
			CustomerID: appointment.CustomerID,
			ServiceID:  appointment.ServiceID,
		}
	} else if err != nil {
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	visitDate := appointment.AppointmentDatetime
	if appointment.CompletedAt != nil {
		visitDate = *appointment.CompletedAt
	}

	preference.UpdateFromAppointment(appointment.PricePaid, visitDate)
	preference.PreferenceScore = CalculatePreferenceScore(&preference, time.Now().UTC())

	if err := tx.Save(&preference).Error; err != nil {
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return nil
}

// CalculatePreferenceScore derives the 0-10 score from the stored
// aggregates. It is a pure function of the row and the clock, so the
// stored value never drifts: four capped components, summed and clamped.
//
//	frequency  min(4, visits*0.5)
//	recency    3 / 2 / 1 / 0.5 for <=7 / <=30 / <=90 / older days
//	spend      min(2, totalSpent/50)
//	rating     (avg-1)/4 on the 1-5 scale, when rated
func CalculatePreferenceScore(p *models.CustomerPreference, now time.Time) float64 {
	score := 0.0

	if p.VisitCount > 0 {
		score += math.Min(4.0, float64(p.VisitCount)*0.5)
	}

	if p.LastVisited != nil {
		daysSince := int(now.Sub(*p.LastVisited).Hours() / 24)
		switch {
		case daysSince <= 7:
			score += 3.0
		case daysSince <= 30:
			score += 2.0
		case daysSince <= 90:
			score += 1.0
		default:
			score += 0.5
		}
	}

	if p.TotalSpent > 0 {
		score += math.Min(2.0, p.TotalSpent/50.0)
	}

	if p.AverageRating != nil {
		score += (*p.AverageRating - 1.0) / 4.0
	}

	return math.Min(10.0, score)
}

// GetRecommendations ranks up to limit services for a customer. Each
// strategy appends candidates until the limit is met; duplicates are
// skipped by service id and each strategy keeps its own internal order.
func (s *RecommendationService) GetRecommendations(customerID uint, limit int) ([]Recommendation, error) {
	if limit <= 0 {
		limit = 3
	}

	var preferences []models.CustomerPreference
	if err := s.db.Where("customer_id = ?", customerID).
		Find(&preferences).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	recommendations := []Recommendation{}
	seen := map[uint]bool{}

	strategies := []func() ([]Recommendation, error){
		func() ([]Recommendation, error) { return s.personalCandidates(preferences, limit) },
		func() ([]Recommendation, error) { return s.popularCandidates(limit) },
		func() ([]Recommendation, error) { return s.complementaryCandidates(preferences, limit) },
	}

	for _, strategy := range strategies {
		if len(recommendations) >= limit {
			break
		}
		candidates, err := strategy()
		if err != nil {
			return nil, err
		}
		for _, candidate := range candidates {
			if len(recommendations) >= limit {
				break
			}
			if seen[candidate.Service.ID] {
				continue
			}
			seen[candidate.Service.ID] = true
			recommendations = append(recommendations, candidate)
		}
	}

	return recommendations, nil
}

// personalCandidates suggests services the customer already books, best
// score first.
func (s *RecommendationService) personalCandidates(preferences []models.CustomerPreference,
	limit int) ([]Recommendation, error) {

	sorted := make([]models.CustomerPreference, len(preferences))
	copy(sorted, preferences)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].PreferenceScore > sorted[j].PreferenceScore
	})

	candidates := []Recommendation{}
	for _, pref := range sorted {
		if len(candidates) >= limit {
			break
		}
		var service models.Service
		if err := s.db.First(&service, pref.ServiceID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
		}
		if !service.IsAvailable {
			continue
		}
		candidates = append(candidates, Recommendation{
			Service: service,
			Score:   pref.PreferenceScore,
			Reason:  personalReason(pref.VisitCount),
		})
	}
	return candidates, nil
}

func personalReason(visitCount int) string {
	switch {
	case visitCount > 3:
		return fmt.Sprintf("You've booked this %d times - a favorite!", visitCount)
	case visitCount > 1:
		return fmt.Sprintf("You've enjoyed this before (%d visits)", visitCount)
	default:
		return "Based on your past booking"
	}
}

// popularCandidates ranks services by total visit count across all
// customers' preference rows.
func (s *RecommendationService) popularCandidates(limit int) ([]Recommendation, error) {
	var allPreferences []models.CustomerPreference
	if err := s.db.Find(&allPreferences).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	visits := map[uint]int{}
	for _, pref := range allPreferences {
		visits[pref.ServiceID] += pref.VisitCount
	}

	serviceIDs := make([]uint, 0, len(visits))
	for id := range visits {
		serviceIDs = append(serviceIDs, id)
	}
	sort.SliceStable(serviceIDs, func(i, j int) bool {
		if visits[serviceIDs[i]] != visits[serviceIDs[j]] {
			return visits[serviceIDs[i]] > visits[serviceIDs[j]]
		}
		return serviceIDs[i] < serviceIDs[j]
	})

	candidates := []Recommendation{}
	for _, id := range serviceIDs {
		if len(candidates) >= limit {
			break
		}
		var service models.Service
		if err := s.db.First(&service, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
		}
		if !service.IsAvailable {
			continue
		}
		candidates = append(candidates, Recommendation{
			Service: service,
			Score:   0,
			Reason:  "Popular choice among our guests",
		})
	}
	return candidates, nil
}

// complementaryCandidates looks at the customer's top two preferred
// service types and suggests available services of the paired types.
func (s *RecommendationService) complementaryCandidates(preferences []models.CustomerPreference,
	limit int) ([]Recommendation, error) {

	if len(preferences) == 0 {
		return nil, nil
	}

	sorted := make([]models.CustomerPreference, len(preferences))
	copy(sorted, preferences)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].PreferenceScore > sorted[j].PreferenceScore
	})
	if len(sorted) > 2 {
		sorted = sorted[:2]
	}

	candidates := []Recommendation{}
	addedTypes := map[string]bool{}
	for _, pref := range sorted {
		var preferred models.Service
		if err := s.db.First(&preferred, pref.ServiceID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
		}
		for _, compType := range complementaryTypes[preferred.ServiceType] {
			if addedTypes[compType] {
				continue
			}
			addedTypes[compType] = true

			var services []models.Service
			if err := s.db.Where("service_type = ? AND is_available = ?", compType, true).
				Order("id").Find(&services).Error; err != nil {
				return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
			}
			for _, service := range services {
				candidates = append(candidates, Recommendation{
					Service: service,
					Score:   0,
					Reason:  "Complements your preferred services",
				})
				if len(candidates) >= limit {
					return candidates, nil
				}
			}
		}
	}
	return candidates, nil
}

// GetCustomerPreferences lists all preference rows for a customer.
func (s *RecommendationService) GetCustomerPreferences(customerID uint) ([]models.CustomerPreference, error) {
	var preferences []models.CustomerPreference
	if err := s.db.Where("customer_id = ?", customerID).
		Find(&preferences).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return preferences, nil
}

// GetTopPreferences lists a customer's preference rows, best score first.
func (s *RecommendationService) GetTopPreferences(customerID uint, limit int) ([]models.CustomerPreference, error) {
	preferences, err := s.GetCustomerPreferences(customerID)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(preferences, func(i, j int) bool {
		return preferences[i].PreferenceScore > preferences[j].PreferenceScore
	})
	if len(preferences) > limit {
		preferences = preferences[:limit]
	}
	return preferences, nil
}
