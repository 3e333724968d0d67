package services

import (
	"strings"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/SwitteeFranca2-0/Panda-Spa/models"
)

func daysAgo(now time.Time, days int) *time.Time {
	t := now.AddDate(0, 0, -days)
	return &t
}

func TestCalculatePreferenceScore(t *testing.T) {
	now := time.Date(2026, time.September, 10, 12, 0, 0, 0, time.UTC)
	rating := 5.0

	tests := []struct {
		name string
		pref models.CustomerPreference
		want float64
	}{
		{
			name: "five visits 300 spent 3 days ago",
			pref: models.CustomerPreference{
				VisitCount:  5,
				TotalSpent:  300,
				LastVisited: daysAgo(now, 3),
			},
			// frequency 2.5 + recency 3.0 + spend 2.0
			want: 7.5,
		},
		{
			name: "empty row scores zero",
			pref: models.CustomerPreference{},
			want: 0,
		},
		{
			name: "single cheap visit long ago",
			pref: models.CustomerPreference{
				VisitCount:  1,
				TotalSpent:  25,
				LastVisited: daysAgo(now, 120),
			},
			// 0.5 + 0.5 + 0.5
			want: 1.5,
		},
		{
			name: "recency bucket 30 days",
			pref: models.CustomerPreference{
				VisitCount:  1,
				LastVisited: daysAgo(now, 30),
			},
			// 0.5 + 2.0
			want: 2.5,
		},
		{
			name: "recency bucket 90 days",
			pref: models.CustomerPreference{
				VisitCount:  1,
				LastVisited: daysAgo(now, 90),
			},
			// 0.5 + 1.0
			want: 1.5,
		},
		{
			name: "perfect rating adds one point",
			pref: models.CustomerPreference{
				VisitCount:    5,
				TotalSpent:    300,
				LastVisited:   daysAgo(now, 3),
				AverageRating: &rating,
			},
			want: 8.5,
		},
		{
			name: "clamped at ten",
			pref: models.CustomerPreference{
				VisitCount:    50,
				TotalSpent:    5000,
				LastVisited:   daysAgo(now, 1),
				AverageRating: &rating,
			},
			// 4 + 3 + 2 + 1 = 10, no overflow
			want: 10,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculatePreferenceScore(&tt.pref, now)
			if got != tt.want {
				t.Errorf("score = %v, want %v", got, tt.want)
			}
			if got < 0 || got > 10 {
				t.Errorf("score %v outside [0, 10]", got)
			}
		})
	}
}

func TestPreferenceAccumulatesAcrossCompletions(t *testing.T) {
	db := setupTestDB(t)
	appointments := NewAppointmentService(db)

	customer := createTestCustomer(t, db, "Bamboo Bear")
	service := createTestService(t, db, "Hot Spring Soak", models.ServiceTypeThermalBath, 60, 50)

	for _, hour := range []int{9, 11} {
		appointment, err := appointments.CreateAppointment(customer.ID, service.ID,
			bookingTime(hour, 0), "", "", nil)
		if err != nil {
			t.Fatalf("booking failed: %v", err)
		}
		if err := appointments.CompleteAppointment(appointment.ID); err != nil {
			t.Fatalf("complete failed: %v", err)
		}
	}

	var preference models.CustomerPreference
	if err := db.Where("customer_id = ? AND service_id = ?", customer.ID, service.ID).
		First(&preference).Error; err != nil {
		t.Fatalf("preference row missing: %v", err)
	}
	if preference.VisitCount != 2 {
		t.Errorf("visitCount = %d, want 2", preference.VisitCount)
	}
	if preference.TotalSpent != 100 {
		t.Errorf("totalSpent = %v, want 100", preference.TotalSpent)
	}
	if preference.FirstVisited == nil || preference.LastVisited == nil {
		t.Fatal("visit timestamps not set")
	}
	// Completed just now: frequency 1.0 + recency 3.0 + spend 2.0.
	if preference.PreferenceScore != 6.0 {
		t.Errorf("score = %v, want 6.0", preference.PreferenceScore)
	}

	var count int64
	db.Model(&models.CustomerPreference{}).Count(&count)
	if count != 1 {
		t.Errorf("preference rows = %d, want a single row per pair", count)
	}
}

func TestGetRecommendationsPersonalOrdering(t *testing.T) {
	db := setupTestDB(t)
	svc := NewRecommendationService(db)

	customer := createTestCustomer(t, db, "Bamboo Bear")
	soak := createTestService(t, db, "Hot Spring Soak", models.ServiceTypeThermalBath, 60, 50)
	massage := createTestService(t, db, "Deep Tissue", models.ServiceTypeMassage, 60, 80)
	tea := createTestService(t, db, "Green Tea Ceremony", models.ServiceTypeTeaTherapy, 45, 30)

	now := time.Now().UTC()
	seedPreference(t, db, customer.ID, soak.ID, 5, 250, daysAgo(now, 2), 8.0)
	seedPreference(t, db, customer.ID, massage.ID, 2, 160, daysAgo(now, 10), 5.0)
	seedPreference(t, db, customer.ID, tea.ID, 1, 30, daysAgo(now, 40), 2.0)

	recommendations, err := svc.GetRecommendations(customer.ID, 3)
	if err != nil {
		t.Fatalf("GetRecommendations returned error: %v", err)
	}
	if len(recommendations) != 3 {
		t.Fatalf("got %d recommendations, want 3", len(recommendations))
	}

	if recommendations[0].Service.ID != soak.ID || recommendations[1].Service.ID != massage.ID ||
		recommendations[2].Service.ID != tea.ID {
		t.Errorf("wrong order: %v, %v, %v", recommendations[0].Service.Name,
			recommendations[1].Service.Name, recommendations[2].Service.Name)
	}

	if recommendations[0].Score != 8.0 {
		t.Errorf("top score = %v, want stored preference score 8.0", recommendations[0].Score)
	}
	if !strings.Contains(recommendations[0].Reason, "favorite") {
		t.Errorf("reason for frequent service = %q", recommendations[0].Reason)
	}
	if !strings.Contains(recommendations[1].Reason, "enjoyed this before") {
		t.Errorf("reason for repeat service = %q", recommendations[1].Reason)
	}
	if recommendations[2].Reason != "Based on your past booking" {
		t.Errorf("reason for single visit = %q", recommendations[2].Reason)
	}
}

func TestGetRecommendationsPopularityFallback(t *testing.T) {
	db := setupTestDB(t)
	svc := NewRecommendationService(db)

	newcomer := createTestCustomer(t, db, "New Hedgehog")
	regularA := createTestCustomer(t, db, "Bamboo Bear")
	regularB := createTestCustomer(t, db, "Forest Fox")

	soak := createTestService(t, db, "Hot Spring Soak", models.ServiceTypeThermalBath, 60, 50)
	massage := createTestService(t, db, "Deep Tissue", models.ServiceTypeMassage, 60, 80)
	tea := createTestService(t, db, "Green Tea Ceremony", models.ServiceTypeTeaTherapy, 45, 30)

	now := time.Now().UTC()
	// Aggregate visits: massage 9, soak 4, tea 1.
	seedPreference(t, db, regularA.ID, massage.ID, 6, 480, daysAgo(now, 3), 9.0)
	seedPreference(t, db, regularB.ID, massage.ID, 3, 240, daysAgo(now, 5), 6.0)
	seedPreference(t, db, regularA.ID, soak.ID, 4, 200, daysAgo(now, 8), 6.5)
	seedPreference(t, db, regularB.ID, tea.ID, 1, 30, daysAgo(now, 50), 1.5)

	recommendations, err := svc.GetRecommendations(newcomer.ID, 3)
	if err != nil {
		t.Fatalf("GetRecommendations returned error: %v", err)
	}
	if len(recommendations) != 3 {
		t.Fatalf("got %d recommendations, want 3", len(recommendations))
	}

	wantOrder := []uint{massage.ID, soak.ID, tea.ID}
	for i, want := range wantOrder {
		if recommendations[i].Service.ID != want {
			t.Errorf("position %d = %v", i, recommendations[i].Service.Name)
		}
		if recommendations[i].Score != 0 {
			t.Errorf("popularity score = %v, want 0 (not personalized)", recommendations[i].Score)
		}
		if recommendations[i].Reason != "Popular choice among our guests" {
			t.Errorf("reason = %q", recommendations[i].Reason)
		}
	}
}

func TestGetRecommendationsComplementaryFallback(t *testing.T) {
	db := setupTestDB(t)
	svc := NewRecommendationService(db)

	customer := createTestCustomer(t, db, "Bamboo Bear")
	soak := createTestService(t, db, "Hot Spring Soak", models.ServiceTypeThermalBath, 60, 50)
	massage := createTestService(t, db, "Deep Tissue", models.ServiceTypeMassage, 60, 80)
	tea := createTestService(t, db, "Green Tea Ceremony", models.ServiceTypeTeaTherapy, 45, 30)

	now := time.Now().UTC()
	// Only this customer's own history exists, so popularity can only
	// re-offer the soak; massage and tea must come from the
	// complementary table (thermal_bath -> massage, tea_therapy).
	seedPreference(t, db, customer.ID, soak.ID, 3, 150, daysAgo(now, 2), 7.0)

	recommendations, err := svc.GetRecommendations(customer.ID, 3)
	if err != nil {
		t.Fatalf("GetRecommendations returned error: %v", err)
	}
	if len(recommendations) != 3 {
		t.Fatalf("got %d recommendations, want 3", len(recommendations))
	}

	if recommendations[0].Service.ID != soak.ID {
		t.Errorf("first = %v, want personal favorite", recommendations[0].Service.Name)
	}
	if recommendations[1].Service.ID != massage.ID || recommendations[2].Service.ID != tea.ID {
		t.Errorf("complementary order = %v, %v", recommendations[1].Service.Name,
			recommendations[2].Service.Name)
	}
	if recommendations[1].Reason != "Complements your preferred services" {
		t.Errorf("reason = %q", recommendations[1].Reason)
	}

	seen := map[uint]bool{}
	for _, rec := range recommendations {
		if seen[rec.Service.ID] {
			t.Errorf("duplicate service %d in recommendations", rec.Service.ID)
		}
		seen[rec.Service.ID] = true
	}
}

func TestGetRecommendationsRespectsLimitAndAvailability(t *testing.T) {
	db := setupTestDB(t)
	svc := NewRecommendationService(db)

	customer := createTestCustomer(t, db, "Bamboo Bear")
	soak := createTestService(t, db, "Hot Spring Soak", models.ServiceTypeThermalBath, 60, 50)
	retired := createTestService(t, db, "Old Mud Bath", models.ServiceTypeThermalBath, 60, 40)
	db.Model(retired).Update("is_available", false)
	createTestService(t, db, "Deep Tissue", models.ServiceTypeMassage, 60, 80)
	createTestService(t, db, "Green Tea Ceremony", models.ServiceTypeTeaTherapy, 45, 30)

	now := time.Now().UTC()
	seedPreference(t, db, customer.ID, retired.ID, 8, 400, daysAgo(now, 1), 9.5)
	seedPreference(t, db, customer.ID, soak.ID, 2, 100, daysAgo(now, 5), 5.0)

	recommendations, err := svc.GetRecommendations(customer.ID, 2)
	if err != nil {
		t.Fatalf("GetRecommendations returned error: %v", err)
	}
	if len(recommendations) != 2 {
		t.Fatalf("got %d recommendations, want limit 2", len(recommendations))
	}
	for _, rec := range recommendations {
		if rec.Service.ID == retired.ID {
			t.Errorf("unavailable service %q recommended", rec.Service.Name)
		}
	}
	if recommendations[0].Service.ID != soak.ID {
		t.Errorf("first = %v, want the available favorite", recommendations[0].Service.Name)
	}
}

func TestGetTopPreferences(t *testing.T) {
	db := setupTestDB(t)
	svc := NewRecommendationService(db)

	customer := createTestCustomer(t, db, "Bamboo Bear")
	soak := createTestService(t, db, "Hot Spring Soak", models.ServiceTypeThermalBath, 60, 50)
	massage := createTestService(t, db, "Deep Tissue", models.ServiceTypeMassage, 60, 80)

	now := time.Now().UTC()
	seedPreference(t, db, customer.ID, soak.ID, 1, 50, daysAgo(now, 3), 4.0)
	seedPreference(t, db, customer.ID, massage.ID, 4, 320, daysAgo(now, 1), 8.0)

	top, err := svc.GetTopPreferences(customer.ID, 1)
	if err != nil {
		t.Fatalf("GetTopPreferences returned error: %v", err)
	}
	if len(top) != 1 || top[0].ServiceID != massage.ID {
		t.Errorf("top preference = %+v", top)
	}
}

func seedPreference(t *testing.T, db *gorm.DB, customerID, serviceID uint,
	visits int, spent float64, last *time.Time, score float64) {
	t.Helper()
	preference := &models.CustomerPreference{
		CustomerID:      customerID,
		ServiceID:       serviceID,
		VisitCount:      visits,
		TotalSpent:      spent,
		FirstVisited:    last,
		LastVisited:     last,
		PreferenceScore: score,
	}
	if err := db.Create(preference).Error; err != nil {
		t.Fatalf("failed to seed preference: %v", err)
	}
}
