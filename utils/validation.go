// utils/validation.go
package utils

import (
	"regexp"
	"strings"
)

// ValidatePhone checks that a notification destination is a plausible
// international phone number: optional + prefix followed by 7-15
// digits, ignoring common separators.
func ValidatePhone(phone string) bool {
	cleaned := strings.ReplaceAll(phone, " ", "")
	cleaned = strings.ReplaceAll(cleaned, "-", "")
	cleaned = strings.ReplaceAll(cleaned, "(", "")
	cleaned = strings.ReplaceAll(cleaned, ")", "")

	regex := `^\+?[1-9]\d{1,14}$`
	match, _ := regexp.MatchString(regex, cleaned)
	return match
}
