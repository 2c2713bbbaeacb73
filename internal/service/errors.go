package service

import (
	"errors"
	"fmt"
	"time"

	"dealership-backend/pkg/validator"
)

// Sentinel errors; each one maps to exactly one HTTP status at the
// handler boundary.
var (
	ErrCarNotFound        = errors.New("car not found")
	ErrCustomerNotFound   = errors.New("customer not found")
	ErrSaleNotFound       = errors.New("sale not found")
	ErrExpenseNotFound    = errors.New("expense not found")
	ErrCarAlreadySold     = errors.New("this car has already been sold")
	ErrDuplicateVIN       = errors.New("a car with this VIN already exists")
	ErrEmailTaken         = errors.New("a user with this email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrWrongPassword      = errors.New("current password is incorrect")
)

// ValidationError carries per-field messages for a 400 response.
type ValidationError struct {
	Fields []*validator.FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	return fmt.Sprintf("validation failed: %s %s", e.Fields[0].Field, e.Fields[0].Message)
}

func validateStruct(data interface{}) error {
	if errs := validator.ValidateStruct(data); len(errs) > 0 {
		return &ValidationError{Fields: errs}
	}
	return nil
}

func fieldError(field, message string) error {
	return &ValidationError{Fields: []*validator.FieldError{{Field: field, Message: message}}}
}

// parseDate accepts the date formats the web UI sends.
func parseDate(field, value string) (time.Time, error) {
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fieldError(field, "must be a date in YYYY-MM-DD format")
}
