package config

import (
	"errors"
	"strings"
	"unicode"
)

type Config struct {
	System struct {
		IsProd                bool   // 是否为生产环境
		Listen                string // 监听地址
		DBConnectionString    string // Postgres 数据库的连接字符串
		RedisConnectionString string // Redis 数据库的连接字符串
	}
	Security struct {
		SessionSecretKey string // 会话 cookie 的签名密钥，更新会导致旧有会话失效
	}
	Admin AdminConfig // 启动时播种的管理员账户（Admin 配置段）
}

// AdminConfig 管理员账户的初始配置，校验不通过时进程拒绝启动
type AdminConfig struct {
	Email    string
	Password string
	Name     string
	Address  string
}

func (a *AdminConfig) Validate() error {
	if !strings.Contains(a.Email, "@") {
		return errors.New("admin email is not valid")
	}

	var hasLower, hasUpper, hasDigit bool
	for _, r := range a.Password {
		switch {
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasLower || !hasUpper || !hasDigit {
		return errors.New("admin password must have at least one lower, one upper, and one digit")
	}

	return nil
}
