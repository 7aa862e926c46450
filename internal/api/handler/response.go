package handler

import (
	"github.com/labstack/echo/v4"
)

// envelope is the success wrapper shared by every endpoint. Errors never use
// it; they go through the central HTTP error handler instead.
type envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

func respond(c echo.Context, code int, data any) error {
	return c.JSON(code, envelope{Success: true, Data: data})
}

func respondMessage(c echo.Context, code int, data any, message string) error {
	return c.JSON(code, envelope{Success: true, Data: data, Message: message})
}
