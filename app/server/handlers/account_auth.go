package handlers

import (
	"campus-portal/app/server/constants"
	"campus-portal/app/server/jwt"
	"campus-portal/app/server/models"
	"campus-portal/app/server/sessions"
	"campus-portal/app/server/users"
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
)

func (a *App) currentSession(c echo.Context) (*sessions.Session, error) {
	// 提取 cookie
	cookie, err := c.Cookie(constants.SessionCookieName)
	if err != nil || cookie.Value == "" {
		return nil, fmt.Errorf("missing session cookie")
	}

	// 验证签名
	claims, err := a.jwt.ParseSession(cookie.Value)
	if err != nil {
		// 无效的 token
		return nil, fmt.Errorf("failed to parse session token: %w", err)
	}

	// 查询会话存储，cookie 本身不是权威，登出后即失效
	sess, err := a.sessions.Get(c.Request().Context(), claims.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to find session: %w", err)
	}

	return sess, nil
}

func (a *App) isAuthenticated(c echo.Context) bool {
	_, err := a.currentSession(c)
	return err == nil
}

// currentUser 从会话解析出当前用户
func (a *App) currentUser(c echo.Context) (*models.User, error, int) {
	sess, err := a.currentSession(c)
	if err != nil {
		return nil, err, http.StatusUnauthorized
	}

	user, err := a.users.FindByID(c.Request().Context(), sess.UserID)
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			return nil, err, http.StatusNotFound
		}
		return nil, err, http.StatusInternalServerError
	}

	return user, nil, http.StatusOK
}

// signIn 建立持久会话并下发 cookie
func (a *App) signIn(c echo.Context, user *models.User) error {
	sess, err := a.sessions.Create(c.Request().Context(), user.ID, constants.SessionDuration)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}

	token, err := a.jwt.SignSession(&jwt.Session{
		ID:      sess.ID,
		Expires: sess.ExpiresAt.Unix(),
	})
	if err != nil {
		return fmt.Errorf("failed to sign session token: %w", err)
	}

	c.SetCookie(&http.Cookie{
		Name:     constants.SessionCookieName,
		Value:    token,
		Path:     "/",
		Expires:  sess.ExpiresAt,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// signOut 销毁会话并让浏览器删除 cookie
func (a *App) signOut(c echo.Context) error {
	if cookie, err := c.Cookie(constants.SessionCookieName); err == nil && cookie.Value != "" {
		if claims, err := a.jwt.ParseSession(cookie.Value); err == nil {
			if err := a.sessions.Destroy(c.Request().Context(), claims.ID); err != nil {
				return fmt.Errorf("failed to destroy session: %w", err)
			}
		}
	}

	c.SetCookie(&http.Cookie{
		Name:     constants.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

func csrfToken(c echo.Context) string {
	if token, ok := c.Get("csrf").(string); ok {
		return token
	}
	return ""
}
