package constants

const (
	RoleAdmin      = "Admin"
	RoleInstructor = "Instructor"
	RoleStudent    = "Student"
)

// SeedRoles 启动时保证存在的角色集合
var SeedRoles = []string{RoleAdmin, RoleInstructor, RoleStudent}
