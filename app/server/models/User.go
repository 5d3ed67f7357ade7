package models

import "gorm.io/gorm"

type User struct {
	gorm.Model

	// 基础信息
	Email          string `gorm:"column:email;uniqueIndex"` // 邮箱，全局唯一
	Username       string `gorm:"column:username"`          // 用户名，始终与邮箱保持一致
	Name           string `gorm:"column:name"`              // 显示名称
	Address        string `gorm:"column:address"`
	PhoneNumber    string `gorm:"column:phone_number"`
	EmailConfirmed bool   `gorm:"column:email_confirmed"`

	// 登录认证相关
	Password string `gorm:"column:password"` // 密码，使用 argon2id 储存

	// 关联
	DepartmentID *uint       `gorm:"column:department_id"` // 注册时选择的部门
	Department   *Department `gorm:"foreignKey:DepartmentID"`
	Roles        []Role      `gorm:"many2many:user_roles"`
}
