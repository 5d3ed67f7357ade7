package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

func (a *App) Logout(c echo.Context) error {
	if err := a.signOut(c); err != nil {
		a.l.Error("failed to sign out", zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	return c.Redirect(http.StatusSeeOther, "/Account/Login")
}
