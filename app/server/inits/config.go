package inits

import (
	"campus-portal/app/server/config"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

func Config() (cfg *config.Config, err error) {
	cfg = &config.Config{}

	// 手动配置映射，如果这里有什么自动映射工具就好了
	{
		mode, exist := os.LookupEnv("MODE")
		cfg.System.IsProd = exist && strings.HasPrefix(strings.ToLower(mode), "p")
	}

	// 开发环境下尝试加载 .env 文件
	if !cfg.System.IsProd {
		_ = godotenv.Load()
	}

	if listen, exist := os.LookupEnv("LISTEN"); !exist {
		cfg.System.Listen = ":1323" // 默认监听地址
	} else {
		cfg.System.Listen = listen
	}

	if dbconn, exist := os.LookupEnv("DB_CONN"); !exist {
		return nil, fmt.Errorf("DB_CONN environment variable not set")
	} else {
		cfg.System.DBConnectionString = dbconn
	}

	if redisconn, exist := os.LookupEnv("REDIS_CONN"); !exist {
		return nil, fmt.Errorf("REDIS_CONN environment variable not set")
	} else {
		cfg.System.RedisConnectionString = redisconn
	}

	if sigsk, exist := os.LookupEnv("SESSION_SECRET_KEY"); !exist {
		return nil, fmt.Errorf("SESSION_SECRET_KEY environment variable not set")
	} else {
		cfg.Security.SessionSecretKey = sigsk
	}

	// Admin 配置段，校验失败则拒绝启动
	cfg.Admin.Email = os.Getenv("ADMIN_EMAIL")
	cfg.Admin.Password = os.Getenv("ADMIN_PASSWORD")
	cfg.Admin.Name = os.Getenv("ADMIN_NAME")
	cfg.Admin.Address = os.Getenv("ADMIN_ADDRESS")
	if err = cfg.Admin.Validate(); err != nil {
		return nil, fmt.Errorf("invalid admin options: %w", err)
	}

	return cfg, nil
}
