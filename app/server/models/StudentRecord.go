package models

import "gorm.io/gorm"

// StudentRecord 学生角色专属的扩展记录，其他角色不会持有
type StudentRecord struct {
	gorm.Model

	UserID uint `gorm:"column:user_id;uniqueIndex"`
	Grade  int  `gorm:"column:grade"`
}
