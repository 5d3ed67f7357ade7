package users

import "campus-portal/app/server/constants"

// Profile 按角色区分的档案变体：学生持有成绩，讲师持有薪酬，
// 其他角色只有基础信息。非法的跨角色组合无法表达。
type Profile interface {
	RoleName() string
}

type StudentProfile struct {
	Grade int
}

func (StudentProfile) RoleName() string { return constants.RoleStudent }

type InstructorProfile struct {
	Salary float64
}

func (InstructorProfile) RoleName() string { return constants.RoleInstructor }

type BasicProfile struct{}

func (BasicProfile) RoleName() string { return "" }
