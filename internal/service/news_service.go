package service

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"volunteer-api/internal/domain"
	"volunteer-api/internal/dto"
	"volunteer-api/internal/repository"
	"volunteer-api/internal/response"
)

// NewsService defines the interface for news post logic
type NewsService interface {
	Create(ctx context.Context, authorID uuid.UUID, req *dto.CreateNewsRequest) (*dto.NewsResponse, error)
	Get(ctx context.Context, newsID uuid.UUID) (*dto.NewsResponse, error)
	ListLatest(ctx context.Context, limit int) ([]dto.NewsSummaryResponse, error)
}

// newsServiceImpl is the implementation of NewsService
type newsServiceImpl struct {
	newsRepo repository.NewsRepository
	roleSvc  RoleService
	logger   *zap.Logger
}

// NewNewsService creates a new instance of NewsService
func NewNewsService(newsRepo repository.NewsRepository, roleSvc RoleService, logger *zap.Logger) NewsService {
	return &newsServiceImpl{
		newsRepo: newsRepo,
		roleSvc:  roleSvc,
		logger:   logger,
	}
}

// Create publishes a news post. The caller must hold the publisher role.
func (s *newsServiceImpl) Create(ctx context.Context, authorID uuid.UUID, req *dto.CreateNewsRequest) (*dto.NewsResponse, error) {
	allowed, err := s.roleSvc.HasActiveRole(ctx, authorID, domain.RolePublisher)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to check publisher role", err.Error())
	}
	if !allowed {
		return nil, response.NewAppError(response.ErrCodeForbidden, "Publisher role is required", "")
	}

	tags := req.Tags
	if tags == nil {
		tags = []string{}
	}
	tagsJSON, err := json.Marshal(tags)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to encode tags", err.Error())
	}

	news := &domain.News{
		AuthorID:   authorID,
		Title:      req.Title,
		FileURL:    req.FileURL,
		Thumbnail:  req.Thumbnail,
		PreviewURL: req.PreviewURL,
		Tags:       datatypes.JSON(tagsJSON),
	}
	if err := s.newsRepo.Create(ctx, news); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to create news", err.Error())
	}

	s.logger.Info("news published",
		zap.String("news_id", news.ID.String()),
		zap.String("author_id", authorID.String()),
	)

	return toNewsResponse(news), nil
}

// Get returns one news post
func (s *newsServiceImpl) Get(ctx context.Context, newsID uuid.UUID) (*dto.NewsResponse, error) {
	news, err := s.newsRepo.FindByID(ctx, newsID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeNotFound, "News not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to load news", err.Error())
	}
	return toNewsResponse(news), nil
}

// ListLatest returns the landing feed of recent posts
func (s *newsServiceImpl) ListLatest(ctx context.Context, limit int) ([]dto.NewsSummaryResponse, error) {
	items, err := s.newsRepo.ListLatest(ctx, limit)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to load news feed", err.Error())
	}

	result := make([]dto.NewsSummaryResponse, 0, len(items))
	for i := range items {
		result = append(result, dto.NewsSummaryResponse{
			NewsID:     items[i].ID,
			Title:      items[i].Title,
			Thumbnail:  items[i].Thumbnail,
			PreviewURL: items[i].PreviewURL,
			CreatedAt:  items[i].CreatedAt,
		})
	}
	return result, nil
}

func toNewsResponse(news *domain.News) *dto.NewsResponse {
	var tags []string
	if len(news.Tags) > 0 {
		_ = json.Unmarshal(news.Tags, &tags)
	}
	if tags == nil {
		tags = []string{}
	}
	return &dto.NewsResponse{
		NewsID:     news.ID,
		Title:      news.Title,
		FileURL:    news.FileURL,
		Thumbnail:  news.Thumbnail,
		PreviewURL: news.PreviewURL,
		Tags:       tags,
		CreatedAt:  news.CreatedAt,
	}
}
