package users

import (
	"errors"
	"strings"
)

// ErrNotFound 查询的用户不存在
var ErrNotFound = errors.New("user not found")

// PolicyError 聚合创建账户时所有用户可见的失败原因（弱密码、邮箱已占用等），
// 这些信息会原样展示在表单上。
type PolicyError struct {
	Messages []string
}

func (e *PolicyError) Error() string {
	return strings.Join(e.Messages, "; ")
}
