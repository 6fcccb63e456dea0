// Package validation holds the custom form rules used in binding tags
package validation

import (
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validation rule patterns
var (
	// Phone numbers: optional leading +, then digits with spaces or dashes, 7 to 15 digits
	PhonePattern = `^\+?[0-9][0-9 \-]{5,18}[0-9]$`

	PhoneMinDigits = 7
	PhoneMaxDigits = 15
)

// CompiledPatterns caches compiled regex patterns for better performance
var CompiledPatterns = struct {
	Phone *regexp.Regexp
}{
	Phone: regexp.MustCompile(PhonePattern),
}

// Tags registered by Register
const (
	TagPhone    = "phone"
	TagNotBlank = "notblank"
)

// Register adds the portal's rules to v
func Register(v *validator.Validate) error {
	if err := v.RegisterValidation(TagPhone, validatePhone); err != nil {
		return err
	}
	return v.RegisterValidation(TagNotBlank, validateNotBlank)
}

func validatePhone(fl validator.FieldLevel) bool {
	return IsPhone(fl.Field().String())
}

func validateNotBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

// IsPhone reports whether value looks like a phone number
func IsPhone(value string) bool {
	if !CompiledPatterns.Phone.MatchString(value) {
		return false
	}
	digits := 0
	for _, r := range value {
		if r >= '0' && r <= '9' {
			digits++
		}
	}
	return digits >= PhoneMinDigits && digits <= PhoneMaxDigits
}
