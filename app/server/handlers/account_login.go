package handlers

import (
	"campus-portal/app/server/users"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// 无论邮箱不存在还是密码不符，都只返回这一条提示，避免账户枚举
const msgInvalidCredentials = "Invalid Email or Password"

type LoginForm struct {
	Email    string `form:"email"`
	Password string `form:"password"`
}

type loginPage struct {
	CSRF    string
	Email   string
	Summary []string
}

func (a *App) LoginPage(c echo.Context) error {
	// 已登录则直接回到个人资料页
	if a.isAuthenticated(c) {
		return c.Redirect(http.StatusSeeOther, "/Account/Index")
	}

	return c.Render(http.StatusOK, "login.html", &loginPage{CSRF: csrfToken(c)})
}

func (a *App) Login(c echo.Context) error {
	rctx := c.Request().Context()

	// 绑定表单
	var form LoginForm
	if err := c.Bind(&form); err != nil {
		a.l.Error("failed to bind login form", zap.Error(err))
		return a.er(c, http.StatusBadRequest)
	}

	renderFailed := func() error {
		return c.Render(http.StatusOK, "login.html", &loginPage{
			CSRF:    csrfToken(c),
			Email:   form.Email,
			Summary: []string{msgInvalidCredentials},
		})
	}

	user, err := a.users.FindByEmail(rctx, form.Email)
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			return renderFailed()
		}
		a.l.Error("failed to find user", zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	// 校验密码
	match, err := a.users.CheckPassword(rctx, user, form.Password)
	if err != nil {
		a.l.Error("failed to check password", zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}
	if !match {
		return renderFailed()
	}

	// 创建持久会话
	if err := a.signIn(c, user); err != nil {
		a.l.Error("failed to sign in", zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	return c.Redirect(http.StatusSeeOther, "/Account/Index")
}
