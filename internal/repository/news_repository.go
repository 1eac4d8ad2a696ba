package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"volunteer-api/internal/domain"
)

// NewsRepository defines the interface for news data access
type NewsRepository interface {
	Create(ctx context.Context, news *domain.News) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.News, error)
	ListLatest(ctx context.Context, limit int) ([]domain.News, error)
}

// newsRepositoryImpl is the GORM implementation of NewsRepository
type newsRepositoryImpl struct {
	db *gorm.DB
}

// NewNewsRepository creates a new instance of NewsRepository
func NewNewsRepository(db *gorm.DB) NewsRepository {
	return &newsRepositoryImpl{db: db}
}

// Create creates a news post
func (r *newsRepositoryImpl) Create(ctx context.Context, news *domain.News) error {
	return r.db.WithContext(ctx).Create(news).Error
}

// FindByID finds a news post by ID with its activities preloaded
func (r *newsRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*domain.News, error) {
	var news domain.News
	err := r.db.WithContext(ctx).
		Preload("Activities").
		Preload("Activities.TimeSlots").
		First(&news, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &news, nil
}

// ListLatest returns the most recent news posts
func (r *newsRepositoryImpl) ListLatest(ctx context.Context, limit int) ([]domain.News, error) {
	if limit < 1 {
		limit = 20
	}
	var items []domain.News
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&items).Error
	return items, err
}
