package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type errorPage struct {
	Status  int
	Message string
}

func (a *App) er(c echo.Context, statusCode int) error {
	return c.Render(statusCode, "error.html", &errorPage{
		Status:  statusCode,
		Message: http.StatusText(statusCode),
	})
}
