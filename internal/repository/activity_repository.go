package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"volunteer-api/internal/domain"
)

// ActivityRepository defines the interface for activity data access
type ActivityRepository interface {
	Create(ctx context.Context, activity *domain.Activity) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Activity, error)
	ListByNews(ctx context.Context, newsID uuid.UUID) ([]domain.Activity, error)
	FindTimeSlotByID(ctx context.Context, slotID uuid.UUID) (*domain.ActivityTimeSlot, error)
}

// activityRepositoryImpl is the GORM implementation of ActivityRepository
type activityRepositoryImpl struct {
	db *gorm.DB
}

// NewActivityRepository creates a new instance of ActivityRepository
func NewActivityRepository(db *gorm.DB) ActivityRepository {
	return &activityRepositoryImpl{db: db}
}

// Create creates an activity along with its facilities and time slots
func (r *activityRepositoryImpl) Create(ctx context.Context, activity *domain.Activity) error {
	return r.db.WithContext(ctx).Create(activity).Error
}

// FindByID finds an activity by ID with facilities and slots preloaded
func (r *activityRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*domain.Activity, error) {
	var activity domain.Activity
	err := r.db.WithContext(ctx).
		Preload("Meal").
		Preload("Transport").
		Preload("TimeSlots", func(db *gorm.DB) *gorm.DB {
			return db.Order("date ASC, start_time ASC")
		}).
		First(&activity, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &activity, nil
}

// ListByNews finds all activities attached to a news post
func (r *activityRepositoryImpl) ListByNews(ctx context.Context, newsID uuid.UUID) ([]domain.Activity, error) {
	var activities []domain.Activity
	err := r.db.WithContext(ctx).
		Preload("Meal").
		Preload("Transport").
		Preload("TimeSlots", func(db *gorm.DB) *gorm.DB {
			return db.Order("date ASC, start_time ASC")
		}).
		Where("news_id = ?", newsID).
		Order("created_at ASC").
		Find(&activities).Error
	return activities, err
}

// FindTimeSlotByID finds a single time slot by ID
func (r *activityRepositoryImpl) FindTimeSlotByID(ctx context.Context, slotID uuid.UUID) (*domain.ActivityTimeSlot, error) {
	var slot domain.ActivityTimeSlot
	if err := r.db.WithContext(ctx).First(&slot, "id = ?", slotID).Error; err != nil {
		return nil, err
	}
	return &slot, nil
}
