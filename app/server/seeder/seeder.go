package seeder

import (
	"campus-portal/app/server/config"
	"campus-portal/app/server/constants"
	"campus-portal/app/server/models"
	"campus-portal/app/server/users"
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Seeder 在服务开始接受请求前，幂等地写入基础数据：
// 角色集合、部门列表和管理员账户。任何失败都应阻止启动。
type Seeder struct {
	l     *zap.Logger
	db    *gorm.DB
	users users.Store
	roles users.RoleStore
	admin config.AdminConfig
}

func New(l *zap.Logger, db *gorm.DB, userStore users.Store, roleStore users.RoleStore, admin config.AdminConfig) *Seeder {
	return &Seeder{
		l:     l,
		db:    db,
		users: userStore,
		roles: roleStore,
		admin: admin,
	}
}

func (s *Seeder) Seed(ctx context.Context) error {
	if err := s.seedRoles(ctx); err != nil {
		return fmt.Errorf("failed to seed roles: %w", err)
	}
	if err := s.seedDepartments(ctx); err != nil {
		return fmt.Errorf("failed to seed departments: %w", err)
	}
	if err := s.seedAdmin(ctx); err != nil {
		return fmt.Errorf("failed to seed admin: %w", err)
	}
	return nil
}

func (s *Seeder) seedRoles(ctx context.Context) error {
	for _, name := range constants.SeedRoles {
		exists, err := s.roles.Exists(ctx, name)
		if err != nil {
			return err
		}
		if exists {
			continue
		}
		if err := s.roles.Create(ctx, name); err != nil {
			return err
		}
		s.l.Info("created role", zap.String("name", name))
	}
	return nil
}

func (s *Seeder) seedDepartments(ctx context.Context) error {
	// 查询现有记录数量，空表时才写入默认部门
	var counter int64
	if err := s.db.WithContext(ctx).Model(&models.Department{}).Count(&counter).Error; err != nil {
		return fmt.Errorf("failed to get department count: %w", err)
	} else if counter == 0 {
		if err := s.db.WithContext(ctx).Create([]*models.Department{
			{Name: "Software Engineering"},
			{Name: "Information Systems"},
			{Name: "Network Administration"},
			{Name: "Data Science"},
		}).Error; err != nil {
			return fmt.Errorf("failed to create initial departments: %w", err)
		}
		s.l.Info("created initial departments")
	}
	return nil
}

func (s *Seeder) seedAdmin(ctx context.Context) error {
	// 已存在视作初始化完成，不重新校验密码或角色
	if _, err := s.users.FindByEmail(ctx, s.admin.Email); err == nil {
		return nil
	} else if !errors.Is(err, users.ErrNotFound) {
		return err
	}

	admin := &models.User{
		Email:          s.admin.Email,
		Username:       s.admin.Email,
		EmailConfirmed: true,
		Name:           s.admin.Name,
		Address:        s.admin.Address,
	}
	if err := s.users.Create(ctx, admin, s.admin.Password); err != nil {
		return fmt.Errorf("failed to create admin user: %w", err)
	}
	if err := s.users.AddToRole(ctx, admin, constants.RoleAdmin); err != nil {
		return fmt.Errorf("failed to add admin role: %w", err)
	}

	s.l.Info("created admin user", zap.String("email", s.admin.Email))
	return nil
}
