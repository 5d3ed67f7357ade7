package main

import (
	"campus-portal/app/server/handlers"
	"campus-portal/app/server/inits"
	"campus-portal/app/server/jwt"
	"campus-portal/app/server/middlewares"
	"campus-portal/app/server/seeder"
	"campus-portal/app/server/sessions"
	"campus-portal/app/server/users"
	"campus-portal/app/server/views"
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

func main() {
	// 初始化配置
	cfg, err := inits.Config()
	if err != nil {
		log.Fatal(fmt.Errorf("error loading config: %w", err))
	}

	// 初始化日志
	l, err := inits.Logger(!cfg.System.IsProd)
	if err != nil {
		log.Fatal(fmt.Errorf("error initializing logger: %w", err))
	}

	// 切换日志系统
	l.Debug("logger initialized")

	// 初始化数据库连接
	db, err := inits.DB(cfg.System.DBConnectionString)
	if err != nil {
		l.Fatal("error initializing DB connection", zap.Error(err))
	}

	// 初始化 redis 连接
	rdb, err := inits.Redis(cfg.System.RedisConnectionString)
	if err != nil {
		l.Fatal("error initializing Redis connection", zap.Error(err))
	}

	// 初始化会话签名
	j, err := jwt.New(cfg.Security.SessionSecretKey)
	if err != nil {
		l.Fatal("error initializing session signer", zap.Error(err))
	}

	// 各数据存储
	userStore := users.NewGormStore(db)
	roleStore := users.NewGormRoleStore(db)
	sessionStore := sessions.NewRedisStore(rdb)

	// 接受请求前写入基础数据，失败则拒绝启动
	if err := seeder.New(l, db, userStore, roleStore, cfg.Admin).Seed(context.Background()); err != nil {
		l.Fatal("error seeding initial data", zap.Error(err))
	}

	// 准备 handler app
	handlerApp := handlers.NewApp(l, db, userStore, sessionStore, j)

	// 准备页面渲染
	renderer, err := views.New()
	if err != nil {
		l.Fatal("error initializing views", zap.Error(err))
	}

	// 准备 echo 服务
	e := echo.New()
	e.Renderer = renderer
	e.Validator = handlers.NewValidator()
	e.Use(middlewares.RequestTiming(l))
	e.Use(middleware.Recover())

	// 绑定路由
	e.GET("/", func(c echo.Context) error {
		return c.Redirect(http.StatusSeeOther, "/Account/Login")
	})

	account := e.Group("/Account", middleware.CSRFWithConfig(middleware.CSRFConfig{
		TokenLookup: "form:_csrf",
	}))
	account.GET("/Login", handlerApp.LoginPage)
	account.POST("/Login", handlerApp.Login)
	account.GET("/Register", handlerApp.RegisterPage)
	account.POST("/Register", handlerApp.Register)
	account.Match([]string{http.MethodGet, http.MethodPost}, "/Logout", handlerApp.Logout)
	account.GET("/Index", handlerApp.Index)
	account.GET("/Edit", handlerApp.EditPage)
	account.POST("/Edit", handlerApp.Edit)

	// 启动 echo 服务
	if err := e.Start(cfg.System.Listen); err != nil {
		l.Fatal("shutting down the server", zap.Error(err))
	}
}
