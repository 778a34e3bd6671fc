package middleware

import (
	"github.com/labstack/echo/v4"

	"auth-api/app/rest/response"
	apperrors "auth-api/app/utils/errors"
	"auth-api/app/utils/validator"
)

// validatedBodyKey is where the binder stores the validated request struct.
const validatedBodyKey = "validated_body"

// BodyValidator binds and validates request bodies against their declared
// schemas before the handler runs. A request failing any constraint is
// terminated with a 400 envelope carrying the first violation's message.
type BodyValidator struct {
	validator *validator.Validator
}

// NewBodyValidator creates a body validator.
func NewBodyValidator(v *validator.Validator) *BodyValidator {
	return &BodyValidator{validator: v}
}

// Validate returns middleware that binds the JSON body into a fresh struct
// produced by newBody, validates it, and stores it in the request context.
// newBody must return a pointer to the request struct.
func (bv *BodyValidator) Validate(newBody func() interface{}) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			body := newBody()
			if err := c.Bind(body); err != nil {
				return response.FromAppError(c,
					apperrors.New(apperrors.ErrCodeValidation, "Invalid request body"))
			}
			if err := bv.validator.Validate(body); err != nil {
				return response.FromAppError(c,
					apperrors.New(apperrors.ErrCodeValidation, err.Error()))
			}
			c.Set(validatedBodyKey, body)
			return next(c)
		}
	}
}

// ValidatedBody returns the struct stored by Validate.
func ValidatedBody(c echo.Context) interface{} {
	return c.Get(validatedBodyKey)
}
