package utils

import (
	"fmt"
	"html"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// FieldValidationError represents a validation error for a specific field
type FieldValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// FieldValidationErrors represents multiple field validation errors
type FieldValidationErrors []FieldValidationError

// Error implements the error interface
func (e FieldValidationErrors) Error() string {
	var messages []string
	for _, err := range e {
		messages = append(messages, fmt.Sprintf("%s: %s", err.Field, err.Message))
	}
	return strings.Join(messages, "; ")
}

// Add records a failure for field
func (e *FieldValidationErrors) Add(field, format string, args ...any) {
	*e = append(*e, FieldValidationError{Field: field, Message: fmt.Sprintf(format, args...)})
}

// Err returns nil when nothing was recorded
func (e FieldValidationErrors) Err() error {
	if len(e) == 0 {
		return nil
	}
	return e
}

var (
	emailRegex   = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	htmlTagRegex = regexp.MustCompile(`<[^>]*>`)
	jsEventRegex = regexp.MustCompile(`on\w+="[^"]*"`)
)

var xssPatterns = map[string]*regexp.Regexp{
	"Script tag found":                   regexp.MustCompile(`(?i)(<script.*>)`),
	"JavaScript protocol found":          regexp.MustCompile(`(?i)(javascript:)`),
	"onerror event handler found":        regexp.MustCompile(`(?i)(onerror=)`),
	"onload event handler found":         regexp.MustCompile(`(?i)(onload=)`),
	"document.cookie access found":       regexp.MustCompile(`(?i)(document\.cookie)`),
	"window.location manipulation found": regexp.MustCompile(`(?i)(window\.location)`),
}

// SanitizeString removes potentially dangerous characters and HTML tags
func SanitizeString(input string) string {
	sanitized := htmlTagRegex.ReplaceAllString(input, "")
	sanitized = jsEventRegex.ReplaceAllString(sanitized, "")
	return html.EscapeString(strings.TrimSpace(sanitized))
}

// ValidateXSS checks for common XSS attack patterns
func ValidateXSS(input string) (bool, string) {
	for message, pattern := range xssPatterns {
		if pattern.MatchString(input) {
			return false, "XSS detected: " + message
		}
	}
	return true, ""
}

// ValidateEmail checks if the email is valid and safe
func ValidateEmail(email string) (bool, string) {
	if valid, msg := ValidateXSS(email); !valid {
		return false, "Email: " + msg
	}
	if !emailRegex.MatchString(email) {
		return false, "Invalid email format. Please enter a valid email address"
	}
	return true, ""
}

// ValidateStringLength validates string length
func ValidateStringLength(str string, min, max int) error {
	length := len(strings.TrimSpace(str))
	if length < min {
		return fmt.Errorf("must be at least %d characters long", min)
	}
	if length > max {
		return fmt.Errorf("must not exceed %d characters", max)
	}
	return nil
}

// ValidatePrice rejects negative prices. Zero is allowed for free items.
func ValidatePrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return fmt.Errorf("price cannot be negative")
	}
	return nil
}

// ValidateDiscountValue checks a discount value against its type
func ValidateDiscountValue(discountType string, value decimal.Decimal) error {
	if value.IsNegative() {
		return fmt.Errorf("discount value cannot be negative")
	}
	if discountType == "percentage" && value.GreaterThan(decimal.NewFromInt(100)) {
		return fmt.Errorf("percentage discount value cannot exceed 100")
	}
	return nil
}
