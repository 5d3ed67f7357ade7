package models

import "gorm.io/gorm"

// InstructorRecord 讲师角色专属的扩展记录，其他角色不会持有
type InstructorRecord struct {
	gorm.Model

	UserID uint    `gorm:"column:user_id;uniqueIndex"`
	Salary float64 `gorm:"column:salary"`
}
