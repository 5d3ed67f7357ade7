package jwt

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

type JWT struct {
	key []byte
}

// Session 签入会话 cookie 的声明
type Session struct {
	ID      string
	Expires int64 // Unix second
}

func New(key string) (*JWT, error) {
	if len(key) == 0 {
		return nil, errors.New("key is empty")
	}

	return &JWT{key: []byte(key)}, nil
}

func (j *JWT) ParseSession(tokenString string) (*Session, error) {
	// 检查是否有效
	if len(tokenString) == 0 {
		return nil, errors.New("token string is empty")
	}

	// 映射字段
	sess := &Session{}
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		return j.key, nil
	})
	if err != nil {
		return nil, fmt.Errorf("parse jwt failed: %w", err)
	}

	// 匹配内容
	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		sid, ok := claims["sid"].(string)
		if !ok {
			return nil, fmt.Errorf("invalid token")
		}
		exp, ok := claims["exp"].(float64)
		if !ok {
			return nil, fmt.Errorf("invalid token")
		}
		sess.ID = sid
		sess.Expires = int64(exp)
	} else {
		return nil, fmt.Errorf("invalid token")
	}

	return sess, nil
}

func (j *JWT) SignSession(sess *Session) (string, error) {
	// 创建声明
	claims := jwt.MapClaims{
		"sid": sess.ID,
		"exp": sess.Expires,
	}

	// 创建令牌
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	// 签名并返回
	return token.SignedString(j.key)
}
