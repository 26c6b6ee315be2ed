package validator

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"staybook/pkg/logger"
	"staybook/pkg/model"
)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (v ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return ""
	}
	var messages []string
	for _, err := range v {
		messages = append(messages, err.Error())
	}
	return fmt.Sprintf("validation failed: %d error(s): [%s]", len(v), strings.Join(messages, "; "))
}

type BookingValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewBookingValidator(log *logger.Logger) *BookingValidator {
	return &BookingValidator{
		validate: validator.New(),
		logger:   log,
	}
}

// Validate checks the struct tags first, then the date rules the tags cannot
// express: both dates present and start not after end. The range is
// inclusive, so a one-day booking has start equal to end.
func (v *BookingValidator) Validate(booking *model.Booking) error {
	if err := v.validate.Struct(booking); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return v.translateValidationErrors(validationErrs)
		}
		return err
	}

	if booking.StartDate.IsZero() {
		return ValidationErrors{
			ValidationError{Field: "StartDate", Message: "start_date is required"},
		}
	}
	if booking.EndDate.IsZero() {
		return ValidationErrors{
			ValidationError{Field: "EndDate", Message: "end_date is required"},
		}
	}
	if booking.StartDate.After(booking.EndDate.Time) {
		return ValidationErrors{
			ValidationError{Field: "EndDate", Message: "end_date must not be before start_date"},
		}
	}

	return nil
}

// ValidateStatus checks a requested lifecycle status value.
func (v *BookingValidator) ValidateStatus(status model.BookingStatus) error {
	if !status.Valid() {
		return ValidationErrors{
			ValidationError{
				Field:   "Status",
				Message: fmt.Sprintf("status must be one of: %s %s %s", model.StatusPending, model.StatusConfirmed, model.StatusCancelled),
			},
		}
	}
	return nil
}

func (v *BookingValidator) translateValidationErrors(errs validator.ValidationErrors) ValidationErrors {
	var validationErrors ValidationErrors

	for _, err := range errs {
		message := err.Error()

		switch err.Tag() {
		case "required":
			message = fmt.Sprintf("%s is required", err.Field())
		case "min":
			message = fmt.Sprintf("%s must be at least %s", err.Field(), err.Param())
		case "max":
			message = fmt.Sprintf("%s must be at most %s", err.Field(), err.Param())
		case "mongodb":
			message = fmt.Sprintf("%s must be a valid MongoDB ObjectID", err.Field())
		case "oneof":
			message = fmt.Sprintf("%s must be one of: %s", err.Field(), err.Param())
		}

		validationErrors = append(validationErrors, ValidationError{
			Field:   err.Field(),
			Message: message,
		})
	}

	return validationErrors
}
