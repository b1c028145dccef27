package validation

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"onna/internal/models"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateEmail checks if an email address is valid
func ValidateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return ValidationError{Field: "email", Message: "email is required"}
	}
	if !emailRegex.MatchString(email) {
		return ValidationError{Field: "email", Message: "invalid email format"}
	}
	return nil
}

// ValidatePassword checks if a password meets requirements
func ValidatePassword(password string) error {
	if password == "" {
		return ValidationError{Field: "password", Message: "password is required"}
	}
	if len(password) < 8 {
		return ValidationError{Field: "password", Message: "password must be at least 8 characters"}
	}
	return nil
}

// ValidateName checks if a name is valid
func ValidateName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ValidationError{Field: "name", Message: "name is required"}
	}
	if len(name) < 2 {
		return ValidationError{Field: "name", Message: "name must be at least 2 characters"}
	}
	return nil
}

// ParseRole checks a submitted role against the two known account types.
func ParseRole(value string) (models.Role, error) {
	role := models.Role(strings.TrimSpace(value))
	if !role.Valid() {
		return "", ValidationError{Field: "role", Message: "role must be SENIOR or YOUTH"}
	}
	return role, nil
}

// ParseHeadCount parses the reservation head count. An empty value defaults
// to one seat.
func ParseHeadCount(value string) (int, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 1, nil
	}
	count, err := strconv.Atoi(value)
	if err != nil {
		return 0, ValidationError{Field: "headCount", Message: "head count must be a number"}
	}
	if count < 1 || count > 20 {
		return 0, ValidationError{Field: "headCount", Message: "head count must be between 1 and 20"}
	}
	return count, nil
}
