// Package validator adapts go-playground/validator to echo's Validator.
package validator

import (
	"net/http"

	playground "github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// CustomValidator wraps a validator instance for echo request binding.
type CustomValidator struct {
	validator *playground.Validate
}

// New creates the echo validator.
func New() *CustomValidator {
	return &CustomValidator{validator: playground.New()}
}

// Validate validates a bound request struct.
func (cv *CustomValidator) Validate(i any) error {
	if err := cv.validator.Struct(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	return nil
}
