package models

import "gorm.io/gorm"

type Role struct {
	gorm.Model

	Name string `gorm:"column:name;uniqueIndex"` // 角色名，全局唯一
}
