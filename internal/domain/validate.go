package domain

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validator checks the validate tags on Project and Task, plus the
// cross-field rule that a project may not end before it starts. It
// satisfies echo.Validator.
type Validator struct {
	validator *validator.Validate
}

func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	v.RegisterStructValidation(validateProjectDates, Project{})
	return &Validator{validator: v}
}

func validateProjectDates(sl validator.StructLevel) {
	p := sl.Current().Interface().(Project)
	if !p.StartDate.IsZero() && !p.EndDate.IsZero() && p.EndDate.Before(p.StartDate) {
		sl.ReportError(p.EndDate, "endDate", "EndDate", "gtestart", "")
	}
}

// Validate returns a *ValidationError for the first failing field.
func (v *Validator) Validate(i any) error {
	err := v.validator.Struct(i)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return &ValidationError{Field: fe.Field(), Message: describe(fe)}
	}
	return fmt.Errorf("%w: %v", ErrInvalidInput, err)
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of %s", strings.ReplaceAll(fe.Param(), " ", ", "))
	case "gtestart":
		return "must not be before the start date"
	default:
		return fmt.Sprintf("failed on '%s' validation", fe.Tag())
	}
}
