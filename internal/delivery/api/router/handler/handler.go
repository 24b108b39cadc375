// Package handler contains the HTTP handlers of the storefront API.
package handler

import (
	"net/http"

	"storefront/internal/delivery/api/response"
	"storefront/internal/delivery/api/validator"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// bindAndValidate decodes the body into req and validates it. When it
// returns false the 400 has already been written.
func bindAndValidate(c echo.Context, req any, bindMessage string) (bool, error) {
	if err := c.Bind(req); err != nil {
		return false, response.BindingError(c, bindMessage)
	}

	if err := c.Validate(req); err != nil {
		if fields, ok := validator.Describe(err); ok {
			return false, response.BadRequestWithDetails(c, "VALIDATION_ERROR", "Input validation failed", fields)
		}

		return false, errors.WithStack(err)
	}

	return true, nil
}

// HealthCheck is a simple handler to check if the service is up.
func HealthCheck(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{"status": "ok"})
}
