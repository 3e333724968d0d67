package services

import (
	"errors"
	"fmt"
	"math/rand"
	"sort"
	"strings"

	"gorm.io/gorm"

	"github.com/SwitteeFranca2-0/Panda-Spa/models"
)

// feelingProfile describes which service types suit a feeling. Priority
// types are offered first; the wider services list fills in when the
// catalog is thin.
type feelingProfile struct {
	services    []string
	priority    []string
	description string
}

// feelingServiceMap is the built-in feeling table, used when no
// FeelingServiceMapping rows are configured for a feeling. Unrecognized
// feelings fall back to "exploring".
var feelingServiceMap = map[string]feelingProfile{
	"stressed": {
		services:    []string{models.ServiceTypeThermalBath, models.ServiceTypeMassage},
		priority:    []string{models.ServiceTypeThermalBath},
		description: "Perfect for melting away tension and stress",
	},
	"tired": {
		services:    []string{models.ServiceTypeMassage, models.ServiceTypeTeaTherapy},
		priority:    []string{models.ServiceTypeMassage},
		description: "Rejuvenate your energy and restore balance",
	},
	"celebrating": {
		services:    []string{models.ServiceTypeThermalBath, models.ServiceTypeMassage, models.ServiceTypeTeaTherapy},
		priority:    []string{models.ServiceTypeThermalBath, models.ServiceTypeMassage},
		description: "Treat yourself to something special",
	},
	"relaxed": {
		services:    []string{models.ServiceTypeTeaTherapy, models.ServiceTypeThermalBath},
		priority:    []string{models.ServiceTypeTeaTherapy},
		description: "Maintain your peaceful state",
	},
	"energetic": {
		services:    []string{models.ServiceTypeMassage, models.ServiceTypeThermalBath},
		priority:    []string{models.ServiceTypeMassage},
		description: "Channel your energy into wellness",
	},
	"exploring": {
		services:    []string{models.ServiceTypeTeaTherapy, models.ServiceTypeThermalBath, models.ServiceTypeMassage},
		priority:    []string{models.ServiceTypeTeaTherapy},
		description: "Discover new experiences",
	},
	"sore": {
		services:    []string{models.ServiceTypeMassage},
		priority:    []string{models.ServiceTypeMassage},
		description: "Relief for tired muscles",
	},
	"indulgent": {
		services:    []string{models.ServiceTypeThermalBath, models.ServiceTypeMassage},
		priority:    []string{models.ServiceTypeThermalBath},
		description: "Luxury experience awaits",
	},
}

// serviceExtrasMap maps (service type, feeling) to extra keywords. Extras
// are matched against the catalog by name substring.
var serviceExtrasMap = map[string]map[string][]string{
	models.ServiceTypeThermalBath: {
		"stressed":    {"aromatherapy", "extended_time"},
		"tired":       {"aromatherapy", "premium_tea"},
		"celebrating": {"premium_tea", "extended_time", "special_treatment"},
		"relaxed":     {"aromatherapy"},
		"energetic":   {"extended_time"},
		"exploring":   {"aromatherapy", "premium_tea"},
		"sore":        {"hot_stones", "extended_time"},
		"indulgent":   {"premium_tea", "extended_time", "special_treatment"},
	},
	models.ServiceTypeMassage: {
		"stressed":    {"aromatherapy", "hot_stones"},
		"tired":       {"aromatherapy", "extended_time"},
		"celebrating": {"hot_stones", "extended_time", "special_treatment"},
		"relaxed":     {"aromatherapy"},
		"energetic":   {"hot_stones"},
		"exploring":   {"aromatherapy", "hot_stones"},
		"sore":        {"hot_stones", "extended_time"},
		"indulgent":   {"hot_stones", "extended_time", "special_treatment"},
	},
	models.ServiceTypeTeaTherapy: {
		"stressed":    {"premium_tea", "extended_time"},
		"tired":       {"premium_tea"},
		"celebrating": {"premium_tea", "special_treatment"},
		"relaxed":     {"premium_tea"},
		"energetic":   {"premium_tea"},
		"exploring":   {"premium_tea"},
		"sore":        {"premium_tea"},
		"indulgent":   {"premium_tea", "extended_time", "special_treatment"},
	},
}

// feelingMessages holds the canned message templates, one set per feeling.
var feelingMessages = map[string][]string{
	"stressed": {
		"🧘 Melt away your stress with our calming thermal waters",
		"💆 Let tension dissolve in our peaceful spa sanctuary",
		"🌊 Find your calm in our therapeutic waters",
	},
	"tired": {
		"⚡ Recharge your energy with a revitalizing experience",
		"🌿 Restore your balance and feel refreshed",
		"✨ Renew your spirit with our rejuvenating treatments",
	},
	"celebrating": {
		"🎉 Treat yourself to something special today!",
		"✨ You deserve this luxurious experience",
		"🌟 Celebrate with our premium spa treatments",
	},
	"relaxed": {
		"☕ Maintain your peaceful state with gentle therapy",
		"🌸 Continue your journey of tranquility",
		"🌙 Keep the calm flowing",
	},
	"energetic": {
		"💪 Channel your energy into wellness",
		"🔥 Transform your vitality into relaxation",
		"⚡ Harness your energy for ultimate balance",
	},
	"exploring": {
		"🔍 Discover new experiences waiting for you",
		"🌟 Try something you've never experienced before",
		"🌿 Expand your wellness horizons",
	},
	"sore": {
		"💆 Relief for your tired muscles awaits",
		"🔥 Soothe your aches with therapeutic treatments",
		"🌿 Gentle care for your body",
	},
	"indulgent": {
		"💎 Luxury experience awaits you",
		"✨ Indulge in our premium offerings",
		"🌟 Treat yourself to the finest",
	},
}

// MoodRecommendation is the answer to "I'm feeling X, what should I book?".
type MoodRecommendation struct {
	Feeling         string                  `json:"feeling"`
	Services        []models.Service        `json:"services"`
	ExtrasByService map[uint][]models.Extra `json:"extrasByService"`
	Description     string                  `json:"description"`
	Message         string                  `json:"message"`
}

// MoodRecommendationService maps a customer's stated feeling to services
// and fitting extras. Configured FeelingServiceMapping rows win over the
// built-in tables.
type MoodRecommendationService struct {
	db *gorm.DB
}

func NewMoodRecommendationService(db *gorm.DB) *MoodRecommendationService {
	return &MoodRecommendationService{db: db}
}

// GetRecommendationsByFeeling picks up to three services for a feeling
// and suggests extras for each.
func (s *MoodRecommendationService) GetRecommendationsByFeeling(feeling string) (*MoodRecommendation, error) {
	feeling = strings.ToLower(strings.TrimSpace(feeling))

	services, err := s.servicesFromMappings(feeling)
	if err != nil {
		return nil, err
	}

	effectiveFeeling := feeling
	if len(services) == 0 {
		if _, ok := feelingServiceMap[effectiveFeeling]; !ok {
			effectiveFeeling = "exploring"
		}
		services, err = s.servicesFromProfile(effectiveFeeling)
		if err != nil {
			return nil, err
		}
	}
	if len(services) > 3 {
		services = services[:3]
	}

	extrasByService := map[uint][]models.Extra{}
	for _, service := range services {
		extras, err := s.matchExtras(service.ServiceType, effectiveFeeling)
		if err != nil {
			return nil, err
		}
		if len(extras) > 0 {
			extrasByService[service.ID] = extras
		}
	}

	description := fmt.Sprintf("Services recommended for when you're feeling %s", effectiveFeeling)
	if profile, ok := feelingServiceMap[effectiveFeeling]; ok {
		description = profile.description
	}

	return &MoodRecommendation{
		Feeling:         effectiveFeeling,
		Services:        services,
		ExtrasByService: extrasByService,
		Description:     description,
		Message:         buildMessage(effectiveFeeling, services),
	}, nil
}

// servicesFromMappings resolves configured mappings for a feeling, lowest
// priority value first, keeping available services only.
func (s *MoodRecommendationService) servicesFromMappings(feeling string) ([]models.Service, error) {
	var mappings []models.FeelingServiceMapping
	if err := s.db.Where("feeling = ? AND is_active = ?", feeling, true).
		Order("priority").Find(&mappings).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	services := []models.Service{}
	seen := map[uint]bool{}
	for _, mapping := range mappings {
		if seen[mapping.ServiceID] {
			continue
		}
		var service models.Service
		err := s.db.First(&service, mapping.ServiceID).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
		}
		if !service.IsAvailable {
			continue
		}
		seen[mapping.ServiceID] = true
		services = append(services, service)
		if len(services) >= 3 {
			break
		}
	}
	return services, nil
}

// servicesFromProfile resolves the built-in table: priority types first,
// then the wider list until three services are found.
func (s *MoodRecommendationService) servicesFromProfile(feeling string) ([]models.Service, error) {
	profile := feelingServiceMap[feeling]

	services := []models.Service{}
	seen := map[uint]bool{}

	appendType := func(serviceType string) error {
		var matches []models.Service
		if err := s.db.Where("service_type = ? AND is_available = ?", serviceType, true).
			Order("id").Find(&matches).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrPersistence, err)
		}
		for _, service := range matches {
			if seen[service.ID] {
				continue
			}
			seen[service.ID] = true
			services = append(services, service)
		}
		return nil
	}

	for _, serviceType := range profile.priority {
		if err := appendType(serviceType); err != nil {
			return nil, err
		}
	}

	if len(services) < 2 {
		for _, serviceType := range profile.services {
			if len(services) >= 3 {
				break
			}
			if contains(profile.priority, serviceType) {
				continue
			}
			if err := appendType(serviceType); err != nil {
				return nil, err
			}
		}
	}
	return services, nil
}

// matchExtras fuzzy-matches catalog extras against the keyword list for
// (service type, feeling): an extra matches when its name contains the
// keyword or any underscore-separated part of it, and it is available and
// compatible with the service type. One extra per keyword.
func (s *MoodRecommendationService) matchExtras(serviceType, feeling string) ([]models.Extra, error) {
	keywords := serviceExtrasMap[serviceType][feeling]
	if len(keywords) == 0 {
		return nil, nil
	}

	var allExtras []models.Extra
	if err := s.db.Order("id").Find(&allExtras).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	matched := []models.Extra{}
	seen := map[uint]bool{}
	for _, keyword := range keywords {
		for _, extra := range allExtras {
			if seen[extra.ID] || !extra.IsAvailable || !extra.IsCompatibleWith(serviceType) {
				continue
			}
			if extraMatchesKeyword(extra.Name, keyword) {
				matched = append(matched, extra)
				seen[extra.ID] = true
				break
			}
		}
	}
	return matched, nil
}

func extraMatchesKeyword(name, keyword string) bool {
	lower := strings.ToLower(name)
	if strings.Contains(lower, strings.ToLower(keyword)) {
		return true
	}
	for _, part := range strings.Split(keyword, "_") {
		if part != "" && strings.Contains(lower, part) {
			return true
		}
	}
	return false
}

// buildMessage picks a random template for the feeling and names up to
// two of the recommended services.
func buildMessage(feeling string, services []models.Service) string {
	templates, ok := feelingMessages[feeling]
	if !ok {
		templates = feelingMessages["exploring"]
	}
	message := templates[rand.Intn(len(templates))]

	if len(services) > 0 {
		names := make([]string, 0, 2)
		for _, service := range services {
			names = append(names, service.Name)
			if len(names) == 2 {
				break
			}
		}
		return fmt.Sprintf("%s — Try: %s", message, strings.Join(names, ", "))
	}
	return message
}

// GetAvailableFeelings lists every feeling the spa can respond to: the
// built-in table plus any configured mappings, sorted.
func (s *MoodRecommendationService) GetAvailableFeelings() ([]string, error) {
	var mappings []models.FeelingServiceMapping
	if err := s.db.Find(&mappings).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	set := map[string]bool{}
	for feeling := range feelingServiceMap {
		set[feeling] = true
	}
	for _, mapping := range mappings {
		set[mapping.Feeling] = true
	}

	feelings := make([]string, 0, len(set))
	for feeling := range set {
		feelings = append(feelings, feeling)
	}
	sort.Strings(feelings)
	return feelings, nil
}

// GetExtrasForServiceAndFeeling suggests extras for one concrete service
// and feeling.
func (s *MoodRecommendationService) GetExtrasForServiceAndFeeling(serviceID uint, feeling string) ([]models.Extra, error) {
	var service models.Service
	if err := s.db.First(&service, serviceID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrServiceNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return s.matchExtras(service.ServiceType, strings.ToLower(strings.TrimSpace(feeling)))
}

func contains(list []string, value string) bool {
	for _, item := range list {
		if item == value {
			return true
		}
	}
	return false
}
