package handlers

import (
	"campus-portal/app/server/constants"
	"campus-portal/app/server/models"
	"campus-portal/app/server/users"
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type RegisterForm struct {
	Email      string `form:"email" validate:"required,email"`
	Password   string `form:"password" validate:"required"`
	Name       string `form:"name" validate:"required"`
	Department uint   `form:"department" validate:"required"`
}

type registerPage struct {
	CSRF        string
	Form        RegisterForm
	Departments []models.Department
	Summary     []string
}

func (a *App) RegisterPage(c echo.Context) error {
	deps, err := a.departments(c.Request().Context())
	if err != nil {
		a.l.Error("failed to get departments", zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	return c.Render(http.StatusOK, "register.html", &registerPage{
		CSRF:        csrfToken(c),
		Departments: deps,
	})
}

func (a *App) Register(c echo.Context) error {
	rctx := c.Request().Context()

	// 绑定表单
	var form RegisterForm
	if err := c.Bind(&form); err != nil {
		a.l.Error("failed to bind register form", zap.Error(err))
		return a.er(c, http.StatusBadRequest)
	}

	// 出错时带着已填内容重新显示表单
	renderForm := func(summary []string) error {
		deps, err := a.departments(rctx)
		if err != nil {
			a.l.Error("failed to get departments", zap.Error(err))
			return a.er(c, http.StatusInternalServerError)
		}
		return c.Render(http.StatusOK, "register.html", &registerPage{
			CSRF:        csrfToken(c),
			Form:        form,
			Departments: deps,
			Summary:     summary,
		})
	}

	if err := c.Validate(&form); err != nil {
		return renderForm(validationMessages(err))
	}

	// 新注册的账户一律是学生
	student := &models.User{
		Email:        form.Email,
		Username:     form.Email,
		Name:         form.Name,
		DepartmentID: &form.Department,
	}
	if err := a.users.Create(rctx, student, form.Password); err != nil {
		var policyErr *users.PolicyError
		if errors.As(err, &policyErr) {
			return renderForm(policyErr.Messages)
		}
		a.l.Error("failed to create user", zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	if err := a.users.AddToRole(rctx, student, constants.RoleStudent); err != nil {
		a.l.Error("failed to add student role", zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	// 注册成功即登录
	if err := a.signIn(c, student); err != nil {
		a.l.Error("failed to sign in", zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	return c.Redirect(http.StatusSeeOther, "/Account/Index")
}

func (a *App) departments(ctx context.Context) ([]models.Department, error) {
	var deps []models.Department
	if err := a.db.WithContext(ctx).Order("id ASC").Find(&deps).Error; err != nil {
		return nil, err
	}
	return deps, nil
}
