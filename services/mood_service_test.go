package services

import (
	"errors"
	"strings"
	"testing"

	"gorm.io/gorm"

	"github.com/SwitteeFranca2-0/Panda-Spa/models"
)

func TestGetRecommendationsByFeelingBuiltinFallback(t *testing.T) {
	db := setupTestDB(t)
	svc := NewMoodRecommendationService(db)

	soak := createTestService(t, db, "Hot Spring Soak", models.ServiceTypeThermalBath, 60, 50)
	massage := createTestService(t, db, "Deep Tissue", models.ServiceTypeMassage, 60, 80)
	createTestService(t, db, "Green Tea Ceremony", models.ServiceTypeTeaTherapy, 45, 30)

	rec, err := svc.GetRecommendationsByFeeling("Stressed")
	if err != nil {
		t.Fatalf("GetRecommendationsByFeeling returned error: %v", err)
	}

	if rec.Feeling != "stressed" {
		t.Errorf("feeling = %q, want normalized %q", rec.Feeling, "stressed")
	}
	if rec.Description != "Perfect for melting away tension and stress" {
		t.Errorf("description = %q", rec.Description)
	}
	// Priority type thermal_bath yields one service, below the minimum of
	// two, so the wider list (massage) fills in.
	if len(rec.Services) != 2 {
		t.Fatalf("got %d services, want 2", len(rec.Services))
	}
	if rec.Services[0].ID != soak.ID {
		t.Errorf("first service = %q, want priority type first", rec.Services[0].Name)
	}
	if rec.Services[1].ID != massage.ID {
		t.Errorf("second service = %q", rec.Services[1].Name)
	}
	if rec.Message == "" {
		t.Error("message is empty")
	}
	if !strings.Contains(rec.Message, "Try: "+soak.Name) {
		t.Errorf("message %q does not name the recommended services", rec.Message)
	}
}

func TestGetRecommendationsByFeelingUnknownFeeling(t *testing.T) {
	db := setupTestDB(t)
	svc := NewMoodRecommendationService(db)

	tea := createTestService(t, db, "Green Tea Ceremony", models.ServiceTypeTeaTherapy, 45, 30)

	rec, err := svc.GetRecommendationsByFeeling("grumpy")
	if err != nil {
		t.Fatalf("GetRecommendationsByFeeling returned error: %v", err)
	}
	if rec.Feeling != "exploring" {
		t.Errorf("feeling = %q, want fallback %q", rec.Feeling, "exploring")
	}
	if rec.Description != "Discover new experiences" {
		t.Errorf("description = %q", rec.Description)
	}
	if len(rec.Services) == 0 || rec.Services[0].ID != tea.ID {
		t.Errorf("services = %+v, want tea therapy first for exploring", rec.Services)
	}
}

func TestGetRecommendationsByFeelingEmptyCatalog(t *testing.T) {
	db := setupTestDB(t)
	svc := NewMoodRecommendationService(db)

	rec, err := svc.GetRecommendationsByFeeling("stressed")
	if err != nil {
		t.Fatalf("GetRecommendationsByFeeling returned error: %v", err)
	}
	if len(rec.Services) != 0 {
		t.Errorf("got %d services from an empty catalog", len(rec.Services))
	}
	if rec.Message == "" {
		t.Error("message is empty")
	}
	if strings.Contains(rec.Message, "Try:") {
		t.Errorf("message %q suggests services that do not exist", rec.Message)
	}
}

func TestGetRecommendationsByFeelingConfiguredMappingsWin(t *testing.T) {
	db := setupTestDB(t)
	svc := NewMoodRecommendationService(db)

	soak := createTestService(t, db, "Hot Spring Soak", models.ServiceTypeThermalBath, 60, 50)
	massage := createTestService(t, db, "Deep Tissue", models.ServiceTypeMassage, 60, 80)
	tea := createTestService(t, db, "Green Tea Ceremony", models.ServiceTypeTeaTherapy, 45, 30)

	// Configured rows invert the built-in order for "stressed" and one
	// inactive row must be ignored.
	seedMapping(t, db, "stressed", tea.ID, 1, true)
	seedMapping(t, db, "stressed", massage.ID, 2, true)
	seedMapping(t, db, "stressed", soak.ID, 3, false)

	rec, err := svc.GetRecommendationsByFeeling("stressed")
	if err != nil {
		t.Fatalf("GetRecommendationsByFeeling returned error: %v", err)
	}
	if len(rec.Services) != 2 {
		t.Fatalf("got %d services, want the 2 active mappings", len(rec.Services))
	}
	if rec.Services[0].ID != tea.ID || rec.Services[1].ID != massage.ID {
		t.Errorf("mapping order not honored: %q, %q",
			rec.Services[0].Name, rec.Services[1].Name)
	}
	// Built-in description still applies for a known feeling.
	if rec.Description != "Perfect for melting away tension and stress" {
		t.Errorf("description = %q", rec.Description)
	}
}

func TestGetRecommendationsByFeelingSkipsUnavailableMappedService(t *testing.T) {
	db := setupTestDB(t)
	svc := NewMoodRecommendationService(db)

	retired := createTestService(t, db, "Old Mud Bath", models.ServiceTypeThermalBath, 60, 40)
	db.Model(retired).Update("is_available", false)
	soak := createTestService(t, db, "Hot Spring Soak", models.ServiceTypeThermalBath, 60, 50)

	seedMapping(t, db, "stressed", retired.ID, 1, true)
	seedMapping(t, db, "stressed", soak.ID, 2, true)

	rec, err := svc.GetRecommendationsByFeeling("stressed")
	if err != nil {
		t.Fatalf("GetRecommendationsByFeeling returned error: %v", err)
	}
	if len(rec.Services) != 1 || rec.Services[0].ID != soak.ID {
		t.Errorf("services = %+v, want only the available one", rec.Services)
	}
}

func TestMatchExtrasKeywordsAndCompatibility(t *testing.T) {
	db := setupTestDB(t)
	svc := NewMoodRecommendationService(db)

	soak := createTestService(t, db, "Hot Spring Soak", models.ServiceTypeThermalBath, 60, 50)

	aroma := createTestExtra(t, db, "Aromatherapy Oils", 10, 0,
		models.ServiceTypeThermalBath+","+models.ServiceTypeMassage)
	extended := createTestExtra(t, db, "Extended Time", 20, 30, "")
	// Matches the "extended_time" keyword by the "time" part but is not
	// compatible with thermal baths.
	createTestExtra(t, db, "Tea Time Special", 15, 0, models.ServiceTypeTeaTherapy)
	// Compatible but matches no stressed keyword for thermal baths.
	createTestExtra(t, db, "Hot Stones", 25, 0, models.ServiceTypeMassage)

	extras, err := svc.GetExtrasForServiceAndFeeling(soak.ID, "stressed")
	if err != nil {
		t.Fatalf("GetExtrasForServiceAndFeeling returned error: %v", err)
	}
	if len(extras) != 2 {
		t.Fatalf("got %d extras, want 2: %+v", len(extras), extras)
	}
	// Keyword order for (thermal_bath, stressed): aromatherapy then
	// extended_time, one extra per keyword.
	if extras[0].ID != aroma.ID || extras[1].ID != extended.ID {
		t.Errorf("extras = %q, %q", extras[0].Name, extras[1].Name)
	}
}

func TestMatchExtrasSkipsUnavailable(t *testing.T) {
	db := setupTestDB(t)
	svc := NewMoodRecommendationService(db)

	soak := createTestService(t, db, "Hot Spring Soak", models.ServiceTypeThermalBath, 60, 50)
	aroma := createTestExtra(t, db, "Aromatherapy Oils", 10, 0, "")
	db.Model(aroma).Update("is_available", false)

	extras, err := svc.GetExtrasForServiceAndFeeling(soak.ID, "relaxed")
	if err != nil {
		t.Fatalf("GetExtrasForServiceAndFeeling returned error: %v", err)
	}
	if len(extras) != 0 {
		t.Errorf("got %d extras, want none when the match is unavailable", len(extras))
	}
}

func TestGetExtrasForUnknownService(t *testing.T) {
	db := setupTestDB(t)
	svc := NewMoodRecommendationService(db)

	_, err := svc.GetExtrasForServiceAndFeeling(999, "stressed")
	if !errors.Is(err, ErrServiceNotFound) {
		t.Errorf("err = %v, want ErrServiceNotFound", err)
	}
}

func TestGetAvailableFeelings(t *testing.T) {
	db := setupTestDB(t)
	svc := NewMoodRecommendationService(db)

	soak := createTestService(t, db, "Hot Spring Soak", models.ServiceTypeThermalBath, 60, 50)
	seedMapping(t, db, "homesick", soak.ID, 1, true)

	feelings, err := svc.GetAvailableFeelings()
	if err != nil {
		t.Fatalf("GetAvailableFeelings returned error: %v", err)
	}

	// 8 built-in feelings plus the configured one.
	if len(feelings) != 9 {
		t.Fatalf("got %d feelings, want 9: %v", len(feelings), feelings)
	}
	for i := 1; i < len(feelings); i++ {
		if feelings[i-1] >= feelings[i] {
			t.Errorf("feelings not sorted: %v", feelings)
		}
	}
	found := false
	for _, feeling := range feelings {
		if feeling == "homesick" {
			found = true
		}
	}
	if !found {
		t.Errorf("configured feeling missing from %v", feelings)
	}
}

func seedMapping(t *testing.T, db *gorm.DB, feeling string, serviceID uint,
	priority int, active bool) {
	t.Helper()
	mapping := &models.FeelingServiceMapping{
		Feeling:   feeling,
		ServiceID: serviceID,
		Priority:  priority,
		IsActive:  active,
	}
	if err := db.Create(mapping).Error; err != nil {
		t.Fatalf("failed to seed feeling mapping: %v", err)
	}
}
