package users

import (
	"campus-portal/app/server/models"
	"context"
	"fmt"

	"gorm.io/gorm"
)

type GormRoleStore struct {
	db *gorm.DB
}

func NewGormRoleStore(db *gorm.DB) *GormRoleStore {
	return &GormRoleStore{db: db}
}

func (s *GormRoleStore) Exists(ctx context.Context, name string) (bool, error) {
	var counter int64
	if err := s.db.WithContext(ctx).Model(&models.Role{}).Where("name = ?", name).Count(&counter).Error; err != nil {
		return false, fmt.Errorf("failed to count role %s: %w", name, err)
	}
	return counter > 0, nil
}

func (s *GormRoleStore) Create(ctx context.Context, name string) error {
	if err := s.db.WithContext(ctx).Create(&models.Role{Name: name}).Error; err != nil {
		return fmt.Errorf("failed to create role %s: %w", name, err)
	}
	return nil
}
