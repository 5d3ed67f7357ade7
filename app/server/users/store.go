package users

import (
	"campus-portal/app/server/constants"
	"campus-portal/app/server/models"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/alexedwards/argon2id"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Store 用户存储的契约：查找、带密码创建、密码校验、更新与角色归属
type Store interface {
	FindByID(ctx context.Context, id uint) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, user *models.User, password string) error
	CheckPassword(ctx context.Context, user *models.User, password string) (bool, error)
	Update(ctx context.Context, user *models.User) error
	AddToRole(ctx context.Context, user *models.User, roleName string) error
	Profile(ctx context.Context, user *models.User) (Profile, error)
}

// RoleStore 角色存储的契约
type RoleStore interface {
	Exists(ctx context.Context, name string) (bool, error)
	Create(ctx context.Context, name string) error
}

type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) FindByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Preload("Roles").First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (s *GormStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Preload("Roles").First(&user, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// Create 校验邮箱与密码策略，哈希密码后写入用户。
// 所有用户可见的失败原因通过 *PolicyError 返回。
func (s *GormStore) Create(ctx context.Context, user *models.User, password string) error {
	var issues []string
	if !strings.Contains(user.Email, "@") {
		issues = append(issues, "Email is not valid.")
	}
	issues = append(issues, passwordPolicyIssues(password)...)
	if len(issues) > 0 {
		return &PolicyError{Messages: issues}
	}

	// 重复邮箱检查（并发下的竞争由唯一索引兜底）
	var counter int64
	if err := s.db.WithContext(ctx).Model(&models.User{}).Where("email = ?", user.Email).Count(&counter).Error; err != nil {
		return fmt.Errorf("failed to check email: %w", err)
	}
	if counter > 0 {
		return &PolicyError{Messages: []string{fmt.Sprintf("Email '%s' is already taken.", user.Email)}}
	}

	// 处理密码
	passwordHash, err := argon2id.CreateHash(password, argon2id.DefaultParams)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user.Password = passwordHash
	user.Username = user.Email

	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return &PolicyError{Messages: []string{fmt.Sprintf("Email '%s' is already taken.", user.Email)}}
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (s *GormStore) CheckPassword(_ context.Context, user *models.User, password string) (bool, error) {
	match, _, err := argon2id.CheckHash(password, user.Password)
	if err != nil {
		return false, fmt.Errorf("failed to check password: %w", err)
	}
	return match, nil
}

func (s *GormStore) Update(ctx context.Context, user *models.User) error {
	// 只写本体字段，角色归属由 AddToRole 维护
	if err := s.db.WithContext(ctx).Omit(clause.Associations).Save(user).Error; err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	return nil
}

// AddToRole 建立角色归属，并补全该角色对应的扩展记录，
// 保证角色成员总是持有自己这一侧的变体数据。
func (s *GormStore) AddToRole(ctx context.Context, user *models.User, roleName string) error {
	var role models.Role
	if err := s.db.WithContext(ctx).First(&role, "name = ?", roleName).Error; err != nil {
		return fmt.Errorf("failed to find role %s: %w", roleName, err)
	}

	if err := s.db.WithContext(ctx).Model(user).Association("Roles").Append(&role); err != nil {
		return fmt.Errorf("failed to append role %s: %w", roleName, err)
	}

	switch roleName {
	case constants.RoleStudent:
		var rec models.StudentRecord
		if err := s.db.WithContext(ctx).Where(&models.StudentRecord{UserID: user.ID}).FirstOrCreate(&rec).Error; err != nil {
			return fmt.Errorf("failed to create student record: %w", err)
		}
	case constants.RoleInstructor:
		var rec models.InstructorRecord
		if err := s.db.WithContext(ctx).Where(&models.InstructorRecord{UserID: user.ID}).FirstOrCreate(&rec).Error; err != nil {
			return fmt.Errorf("failed to create instructor record: %w", err)
		}
	}
	return nil
}

// Profile 按角色标签加载具体的档案变体
func (s *GormStore) Profile(ctx context.Context, user *models.User) (Profile, error) {
	if IsInRole(user, constants.RoleStudent) {
		var rec models.StudentRecord
		if err := s.db.WithContext(ctx).First(&rec, "user_id = ?", user.ID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return StudentProfile{}, nil
			}
			return nil, fmt.Errorf("failed to load student record: %w", err)
		}
		return StudentProfile{Grade: rec.Grade}, nil
	}

	if IsInRole(user, constants.RoleInstructor) {
		var rec models.InstructorRecord
		if err := s.db.WithContext(ctx).First(&rec, "user_id = ?", user.ID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return InstructorProfile{}, nil
			}
			return nil, fmt.Errorf("failed to load instructor record: %w", err)
		}
		return InstructorProfile{Salary: rec.Salary}, nil
	}

	return BasicProfile{}, nil
}

// IsInRole 检查已加载角色的用户是否持有指定角色
func IsInRole(user *models.User, roleName string) bool {
	for _, role := range user.Roles {
		if role.Name == roleName {
			return true
		}
	}
	return false
}

// 密码策略与原有的账户体系保持一致：至少 8 位，包含大小写字母与数字，
// 不强制特殊字符。
func passwordPolicyIssues(password string) []string {
	var issues []string
	if len(password) < 8 {
		issues = append(issues, "Passwords must be at least 8 characters.")
	}

	var hasLower, hasUpper, hasDigit bool
	for _, r := range password {
		switch {
		case r >= 'a' && r <= 'z':
			hasLower = true
		case r >= 'A' && r <= 'Z':
			hasUpper = true
		case r >= '0' && r <= '9':
			hasDigit = true
		}
	}
	if !hasLower {
		issues = append(issues, "Passwords must have at least one lowercase ('a'-'z').")
	}
	if !hasUpper {
		issues = append(issues, "Passwords must have at least one uppercase ('A'-'Z').")
	}
	if !hasDigit {
		issues = append(issues, "Passwords must have at least one digit ('0'-'9').")
	}
	return issues
}
