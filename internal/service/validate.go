package service

import (
	"regexp"
	"strings"
)

// ValidationError indica entrada de cliente inválida; el mensaje nombra el campo.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func validationErr(msg string) error {
	return &ValidationError{Message: msg}
}

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

func validateEmail(email string) error {
	if email == "" {
		return validationErr("Email is required")
	}
	if !emailPattern.MatchString(email) {
		return validationErr("Invalid email format")
	}
	if len(email) > 255 {
		return validationErr("Email must not exceed 255 characters")
	}
	return nil
}

func validatePassword(password string) error {
	if password == "" {
		return validationErr("Password is required")
	}
	if len(password) < 6 {
		return validationErr("Password must be at least 6 characters long")
	}
	// bcrypt rechaza entradas de más de 72 bytes.
	if len(password) > 72 {
		return validationErr("Password must not exceed 72 characters")
	}
	return nil
}

func validateFullName(fullName string) error {
	if fullName == "" {
		return validationErr("Full name is required")
	}
	if len(fullName) > 100 {
		return validationErr("Full name must not exceed 100 characters")
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
