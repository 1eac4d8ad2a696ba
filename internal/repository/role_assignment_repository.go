package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"volunteer-api/internal/domain"
)

// RoleAssignmentRepository defines the interface for role assignment data access
type RoleAssignmentRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*domain.RoleAssignment, error)
	FindByUserAndRole(ctx context.Context, userID uuid.UUID, roleID int) (*domain.RoleAssignment, error)
	FindByUser(ctx context.Context, userID uuid.UUID) ([]domain.RoleAssignment, error)
	Upsert(ctx context.Context, assignment *domain.RoleAssignment) error
	Update(ctx context.Context, assignment *domain.RoleAssignment) error
	FindPendingPaginated(ctx context.Context, search string, page, rows int) ([]domain.RoleAssignment, int64, error)
	MarkExpired(ctx context.Context, now time.Time) (int64, error)
}

// roleAssignmentRepositoryImpl is the GORM implementation of RoleAssignmentRepository
type roleAssignmentRepositoryImpl struct {
	db *gorm.DB
}

// NewRoleAssignmentRepository creates a new instance of RoleAssignmentRepository
func NewRoleAssignmentRepository(db *gorm.DB) RoleAssignmentRepository {
	return &roleAssignmentRepositoryImpl{db: db}
}

// FindByID finds an assignment by ID with user and role preloaded
func (r *roleAssignmentRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*domain.RoleAssignment, error) {
	var assignment domain.RoleAssignment
	err := r.db.WithContext(ctx).
		Preload("User").Preload("Role").
		First(&assignment, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &assignment, nil
}

// FindByUserAndRole finds the single assignment row for a (user, role) pair
func (r *roleAssignmentRepositoryImpl) FindByUserAndRole(ctx context.Context, userID uuid.UUID, roleID int) (*domain.RoleAssignment, error) {
	var assignment domain.RoleAssignment
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND role_id = ?", userID, roleID).
		First(&assignment).Error
	if err != nil {
		return nil, err
	}
	return &assignment, nil
}

// FindByUser finds all assignments for a user
func (r *roleAssignmentRepositoryImpl) FindByUser(ctx context.Context, userID uuid.UUID) ([]domain.RoleAssignment, error) {
	var assignments []domain.RoleAssignment
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Find(&assignments).Error
	return assignments, err
}

// Upsert creates the assignment row for a (user, role) pair, or resets the
// existing row back into a fresh pending application
func (r *roleAssignmentRepositoryImpl) Upsert(ctx context.Context, assignment *domain.RoleAssignment) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "role_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"status", "request_message", "attachment_path",
			"rejection_reason", "active_until", "downtime_until",
			"updated_at",
		}),
	}).Create(assignment).Error
}

// Update updates an assignment
func (r *roleAssignmentRepositoryImpl) Update(ctx context.Context, assignment *domain.RoleAssignment) error {
	return r.db.WithContext(ctx).Save(assignment).Error
}

// FindPendingPaginated finds pending assignments with optional search on
// the applicant's email or username
func (r *roleAssignmentRepositoryImpl) FindPendingPaginated(ctx context.Context, search string, page, rows int) ([]domain.RoleAssignment, int64, error) {
	if page < 1 {
		page = 1
	}
	if rows < 1 {
		rows = 20
	}

	query := r.db.WithContext(ctx).
		Model(&domain.RoleAssignment{}).
		Joins("JOIN users ON users.id = role_assignments.user_id").
		Where("role_assignments.status = ?", domain.RoleStatusPending)

	if search != "" {
		pattern := "%" + search + "%"
		query = query.Where("LOWER(users.email) LIKE LOWER(?) OR LOWER(users.username) LIKE LOWER(?)", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var assignments []domain.RoleAssignment
	err := query.
		Preload("User").Preload("Role").
		Order("role_assignments.created_at ASC").
		Offset((page - 1) * rows).
		Limit(rows).
		Find(&assignments).Error
	if err != nil {
		return nil, 0, err
	}

	return assignments, total, nil
}

// MarkExpired flips active assignments whose active_until has passed to
// expired and returns the number of rows touched
func (r *roleAssignmentRepositoryImpl) MarkExpired(ctx context.Context, now time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&domain.RoleAssignment{}).
		Where("status = ? AND active_until IS NOT NULL AND active_until <= ?", domain.RoleStatusActive, now).
		Update("status", domain.RoleStatusExpired)
	return result.RowsAffected, result.Error
}
