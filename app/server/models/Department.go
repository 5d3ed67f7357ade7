package models

import "gorm.io/gorm"

// Department 只读的参考数据，用于注册表单的部门选择列表
type Department struct {
	gorm.Model

	Name string `gorm:"column:name"`
}
