package handlers

import (
	"campus-portal/app/server/jwt"
	"campus-portal/app/server/sessions"
	"campus-portal/app/server/users"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	l        *zap.Logger    // 日志
	db       *gorm.DB       // 数据库，只用于部门等只读参考数据
	users    users.Store    // 用户存储
	sessions sessions.Store // 会话存储
	jwt      *jwt.JWT       // 会话 cookie 的签名
}

func NewApp(l *zap.Logger, db *gorm.DB, userStore users.Store, sessionStore sessions.Store, j *jwt.JWT) *App {
	return &App{
		l:        l,
		db:       db,
		users:    userStore,
		sessions: sessionStore,
		jwt:      j,
	}
}
