package utils

import (
	"regexp"
	"strings"
)

// ValidatePhone checks if a contact string is a usable phone number in
// international format. Customers may store a forest location instead of
// a phone; those never validate and simply get no reminders.
func ValidatePhone(phone string) bool {
	cleaned := strings.ReplaceAll(phone, " ", "")
	cleaned = strings.ReplaceAll(cleaned, "-", "")
	cleaned = strings.ReplaceAll(cleaned, "(", "")
	cleaned = strings.ReplaceAll(cleaned, ")", "")

	regex := `^\+?[1-9]\d{1,14}$`
	match, _ := regexp.MatchString(regex, cleaned)
	return match
}
