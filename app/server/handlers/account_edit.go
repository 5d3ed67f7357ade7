package handlers

import (
	"campus-portal/app/server/users"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type EditForm struct {
	Name        string `form:"name" validate:"required"`
	Address     string `form:"address" validate:"required"`
	PhoneNumber string `form:"phone" validate:"omitempty,min=7,max=20"`
}

type editPage struct {
	CSRF    string
	Email   string
	Form    EditForm
	Summary []string
}

func (a *App) EditPage(c echo.Context) error {
	user, err, statusCode := a.currentUser(c)
	if err != nil {
		if statusCode == http.StatusUnauthorized {
			return c.Redirect(http.StatusSeeOther, "/Account/Login")
		}
		if errors.Is(err, users.ErrNotFound) {
			return c.Redirect(http.StatusSeeOther, "/Account/Register")
		}
		a.l.Error("failed to get current user", zap.Error(err))
		return a.er(c, statusCode)
	}

	return c.Render(http.StatusOK, "edit.html", &editPage{
		CSRF:  csrfToken(c),
		Email: user.Email,
		Form: EditForm{
			Name:        user.Name,
			Address:     user.Address,
			PhoneNumber: user.PhoneNumber,
		},
	})
}

func (a *App) Edit(c echo.Context) error {
	rctx := c.Request().Context()

	user, err, statusCode := a.currentUser(c)
	if err != nil {
		if statusCode == http.StatusUnauthorized {
			return c.Redirect(http.StatusSeeOther, "/Account/Login")
		}
		if errors.Is(err, users.ErrNotFound) {
			return c.Redirect(http.StatusSeeOther, "/Account/Register")
		}
		a.l.Error("failed to get current user", zap.Error(err))
		return a.er(c, statusCode)
	}

	// 绑定表单
	var form EditForm
	if err := c.Bind(&form); err != nil {
		a.l.Error("failed to bind edit form", zap.Error(err))
		return a.er(c, http.StatusBadRequest)
	}

	if err := c.Validate(&form); err != nil {
		// 校验失败，不做任何写入
		return c.Render(http.StatusOK, "edit.html", &editPage{
			CSRF:    csrfToken(c),
			Email:   user.Email,
			Form:    form,
			Summary: validationMessages(err),
		})
	}

	// 只允许修改这三个字段，邮箱与角色不经此路径变更
	user.Name = form.Name
	user.Address = form.Address
	user.PhoneNumber = form.PhoneNumber
	if err := a.users.Update(rctx, user); err != nil {
		a.l.Error("failed to update user", zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	return c.Redirect(http.StatusSeeOther, "/Account/Index")
}
