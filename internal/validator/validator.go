package validator

import (
	"fmt"
	"strconv"

	"github.com/go-playground/validator/v10"
)

func NewValidator() *validator.Validate {
	validate := validator.New(validator.WithRequiredStructEnabled())

	validate.RegisterValidation("seat_number", validateSeatNumber)
	validate.RegisterValidation("password", validatePassword)

	return validate
}

// Seat numbers arrive from the booking form as strings; only positive decimal
// integers are accepted.
func validateSeatNumber(fl validator.FieldLevel) bool {
	n, err := strconv.Atoi(fl.Field().String())

	return err == nil && n > 0
}

func validatePassword(fl validator.FieldLevel) bool {
	password := fl.Field().String()

	return len(password) >= 8 && len(password) <= 72
}

// ValidationMessage converts validator errors into readable messages
func ValidationMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return fmt.Sprintf("must be at least %s", err.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", err.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", err.Param())
	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s", err.Param())
	case "seat_number":
		return "must be a positive number"
	case "password":
		return "must be between 8 and 72 characters long"
	case "oneof":
		return fmt.Sprintf("must be one of: %s", err.Param())
	default:
		return "is invalid"
	}
}
