package validator

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validator wraps the go-playground validator with the custom password rules
// and produces a single human-readable message for the first violated
// constraint. Validation stops at the first failure; errors are never
// aggregated.
type Validator struct {
	validate *validator.Validate
}

var (
	upperRe   = regexp.MustCompile(`[A-Z]`)
	lowerRe   = regexp.MustCompile(`[a-z]`)
	digitRe   = regexp.MustCompile(`[0-9]`)
	specialRe = regexp.MustCompile(`[\W_]`)
)

// New creates a validator instance with the custom rules registered.
func New() *Validator {
	validate := validator.New()

	// Report JSON field names in error messages
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	validate.RegisterValidation("pw_upper", func(fl validator.FieldLevel) bool {
		return upperRe.MatchString(fl.Field().String())
	})
	validate.RegisterValidation("pw_lower", func(fl validator.FieldLevel) bool {
		return lowerRe.MatchString(fl.Field().String())
	})
	validate.RegisterValidation("pw_digit", func(fl validator.FieldLevel) bool {
		return digitRe.MatchString(fl.Field().String())
	})
	validate.RegisterValidation("pw_special", func(fl validator.FieldLevel) bool {
		return specialRe.MatchString(fl.Field().String())
	})

	return &Validator{validate: validate}
}

// Validate checks a request struct against its declared constraints. On
// failure it returns the message for the first violated constraint.
func (v *Validator) Validate(i interface{}) error {
	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}

	errs, ok := err.(validator.ValidationErrors)
	if !ok || len(errs) == 0 {
		return err
	}
	return fmt.Errorf("%s", messageFor(errs[0]))
}

// messageFor renders the human-readable message for a single violation.
func messageFor(fe validator.FieldError) string {
	field := fe.Field()

	switch fe.Tag() {
	case "required":
		switch field {
		case "email":
			return "Email cannot be empty."
		case "password":
			return "Password cannot be empty."
		case "userId", "role":
			return field + " is required."
		}
		return field + " cannot be empty."
	case "email":
		return "Bad email format."
	case "min", "max":
		if field == "password" {
			return "Password must be at least 8 characters long and at most 32 characters long."
		}
		return fmt.Sprintf("%s has an invalid length.", field)
	case "uuid4":
		return field + " must be a valid UUID."
	case "pw_upper":
		return "Password must contain at least one uppercase letter."
	case "pw_lower":
		return "Password must contain at least one lowercase letter."
	case "pw_digit":
		return "Password must contain at least one digit."
	case "pw_special":
		return "Password must contain at least one special character."
	default:
		return field + " is invalid."
	}
}
