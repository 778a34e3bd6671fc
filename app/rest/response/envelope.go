package response

import (
	"github.com/labstack/echo/v4"

	apperrors "auth-api/app/utils/errors"
)

// Envelope is the uniform reply shape used by every endpoint, success or
// failure. A failed response always carries an empty data object.
type Envelope struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

// Success writes a success envelope with the given status, message and data.
func Success(c echo.Context, status int, message string, data interface{}) error {
	if data == nil {
		data = map[string]interface{}{}
	}
	return c.JSON(status, Envelope{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// Error writes a failure envelope. Data is always the empty object.
func Error(c echo.Context, status int, message string) error {
	return c.JSON(status, Envelope{
		Success: false,
		Message: message,
		Data:    map[string]interface{}{},
	})
}

// FromAppError writes a failure envelope from a coded application error,
// taking the status from the error's code mapping.
func FromAppError(c echo.Context, err *apperrors.AppError) error {
	return Error(c, err.StatusCode, err.Message)
}
