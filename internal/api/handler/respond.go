package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// successResponse is the envelope for every 2xx JSON body. Errors never pass
// through here; the central error handler renders its own envelope.
type successResponse struct {
	Success bool `json:"success"`
	Data    any  `json:"data,omitempty"`
}

// errorResponse mirrors the central error handler's envelope. It exists here
// for the API documentation only.
type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func respond(c echo.Context, status int, data any) error {
	return c.JSON(status, successResponse{Success: true, Data: data})
}

func respondOK(c echo.Context, data any) error {
	return respond(c, http.StatusOK, data)
}

// bindAndValidate decodes the JSON body into req and runs struct validation.
// Failures surface as 400s through echo's error handling.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}
