package handlers

import (
	"campus-portal/app/server/users"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type profilePage struct {
	Name        string
	Address     string
	Email       string
	PhoneNumber string
	Grade       *int     // 仅学生
	Salary      *float64 // 仅讲师
}

func (a *App) Index(c echo.Context) error {
	rctx := c.Request().Context()

	user, err, statusCode := a.currentUser(c)
	if err != nil {
		if statusCode == http.StatusUnauthorized {
			return c.Redirect(http.StatusSeeOther, "/Account/Login")
		}
		if errors.Is(err, users.ErrNotFound) {
			// 会话仍在但用户已不存在，立即引导重新注册
			return c.Redirect(http.StatusSeeOther, "/Account/Register")
		}
		a.l.Error("failed to get current user", zap.Error(err))
		return a.er(c, statusCode)
	}

	page := &profilePage{
		Name:        user.Name,
		Address:     user.Address,
		Email:       user.Email,
		PhoneNumber: user.PhoneNumber,
	}

	// 按角色加载档案变体
	profile, err := a.users.Profile(rctx, user)
	if err != nil {
		a.l.Error("failed to load profile", zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}
	switch p := profile.(type) {
	case users.StudentProfile:
		page.Grade = &p.Grade
	case users.InstructorProfile:
		page.Salary = &p.Salary
	}

	return c.Render(http.StatusOK, "profile.html", page)
}
