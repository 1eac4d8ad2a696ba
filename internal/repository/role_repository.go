package repository

import (
	"context"

	"gorm.io/gorm"

	"volunteer-api/internal/domain"
)

// RoleRepository defines the interface for role catalog access
type RoleRepository interface {
	FindByID(ctx context.Context, id int) (*domain.Role, error)
	FindByName(ctx context.Context, name string) (*domain.Role, error)
	ListAll(ctx context.Context) ([]domain.Role, error)
}

// roleRepositoryImpl is the GORM implementation of RoleRepository
type roleRepositoryImpl struct {
	db *gorm.DB
}

// NewRoleRepository creates a new instance of RoleRepository
func NewRoleRepository(db *gorm.DB) RoleRepository {
	return &roleRepositoryImpl{db: db}
}

// FindByID finds a role by ID
func (r *roleRepositoryImpl) FindByID(ctx context.Context, id int) (*domain.Role, error) {
	var role domain.Role
	if err := r.db.WithContext(ctx).First(&role, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &role, nil
}

// FindByName finds a role by name
func (r *roleRepositoryImpl) FindByName(ctx context.Context, name string) (*domain.Role, error) {
	var role domain.Role
	if err := r.db.WithContext(ctx).First(&role, "name = ?", name).Error; err != nil {
		return nil, err
	}
	return &role, nil
}

// ListAll returns all roles ordered by ID
func (r *roleRepositoryImpl) ListAll(ctx context.Context) ([]domain.Role, error) {
	var roles []domain.Role
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&roles).Error; err != nil {
		return nil, err
	}
	return roles, nil
}
