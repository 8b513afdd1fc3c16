package utils

import (
	"fmt"
	"regexp"
	"strings"
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

var (
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	phoneRegex = regexp.MustCompile(`^(0|\+84)\d{9,10}$`)
	slugRegex  = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)
)

// ValidateEmail checks email format
func ValidateEmail(email string) bool {
	return emailRegex.MatchString(email)
}

// ValidatePhone checks a Vietnamese phone number (0xxxxxxxxx or +84...)
func ValidatePhone(phone string) bool {
	return phoneRegex.MatchString(phone)
}

// ValidatePassword checks password strength requirements
func ValidatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return fmt.Errorf("password must be at least %d characters", MinPasswordLength)
	}
	var hasLetter, hasNumber bool
	for _, r := range password {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
			hasLetter = true
		case r >= '0' && r <= '9':
			hasNumber = true
		}
	}
	if !hasLetter || !hasNumber {
		return fmt.Errorf("password must contain both letters and numbers")
	}
	return nil
}

// ValidateSlug checks a URL slug
func ValidateSlug(slug string) bool {
	return slugRegex.MatchString(slug)
}

// Slugify converts a name into a URL slug
func Slugify(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = regexp.MustCompile(`[^a-z0-9]+`).ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
