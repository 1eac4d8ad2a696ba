package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"volunteer-api/internal/domain"
	"volunteer-api/internal/dto"
	"volunteer-api/internal/repository"
	"volunteer-api/internal/response"
)

// ActivityService defines the interface for activity management logic
type ActivityService interface {
	Create(ctx context.Context, creatorID uuid.UUID, req *dto.CreateActivityRequest) (*dto.CreateActivityResponse, error)
	Get(ctx context.Context, activityID uuid.UUID) (*dto.ActivityResponse, error)
	ListByNews(ctx context.Context, newsID uuid.UUID) ([]dto.ActivityResponse, error)
}

// activityServiceImpl is the implementation of ActivityService
type activityServiceImpl struct {
	activityRepo repository.ActivityRepository
	newsRepo     repository.NewsRepository
	roleSvc      RoleService
	logger       *zap.Logger
}

// NewActivityService creates a new instance of ActivityService
func NewActivityService(
	activityRepo repository.ActivityRepository,
	newsRepo repository.NewsRepository,
	roleSvc RoleService,
	logger *zap.Logger,
) ActivityService {
	return &activityServiceImpl{
		activityRepo: activityRepo,
		newsRepo:     newsRepo,
		roleSvc:      roleSvc,
		logger:       logger,
	}
}

// Create creates an activity under a news post. The caller must hold the
// organizer role and the news post must exist.
func (s *activityServiceImpl) Create(ctx context.Context, creatorID uuid.UUID, req *dto.CreateActivityRequest) (*dto.CreateActivityResponse, error) {
	allowed, err := s.roleSvc.HasActiveRole(ctx, creatorID, domain.RoleOrganizer)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to check organizer role", err.Error())
	}
	if !allowed {
		return nil, response.NewAppError(response.ErrCodeForbidden, "Organizer role is required", "")
	}

	if _, err := s.newsRepo.FindByID(ctx, req.NewsID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeNotFound, "News not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to load news", err.Error())
	}

	activity := &domain.Activity{
		NewsID:            req.NewsID,
		CreatedBy:         creatorID,
		Title:             req.Title,
		Description:       req.Description,
		WorkTypeCode:      req.WorkTypeCode,
		MinParticipants:   req.MinParticipants,
		MaxParticipants:   req.MaxParticipants,
		MeetingLocation:   req.MeetingLocationText,
		MeetingLat:        req.MeetingLat,
		MeetingLng:        req.MeetingLng,
		VolunteerLocation: req.VolunteerLocationText,
		VolunteerLat:      req.VolunteerLat,
		VolunteerLng:      req.VolunteerLng,
		Meal:              toMeal(req.Meal),
		Transport:         toTransport(req.Transport),
	}

	for _, slot := range req.TimeSlots {
		activity.TimeSlots = append(activity.TimeSlots, domain.ActivityTimeSlot{
			DayCode:   slot.DayCode,
			Date:      slot.Date,
			StartTime: slot.StartTime,
			EndTime:   slot.EndTime,
		})
	}

	if err := s.activityRepo.Create(ctx, activity); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to create activity", err.Error())
	}

	s.logger.Info("activity created",
		zap.String("activity_id", activity.ID.String()),
		zap.String("news_id", req.NewsID.String()),
		zap.Int("time_slots", len(activity.TimeSlots)),
	)

	return &dto.CreateActivityResponse{ActivityID: activity.ID}, nil
}

// Get returns one activity with facilities and slots
func (s *activityServiceImpl) Get(ctx context.Context, activityID uuid.UUID) (*dto.ActivityResponse, error) {
	activity, err := s.activityRepo.FindByID(ctx, activityID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeNotFound, "Activity not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to load activity", err.Error())
	}
	return toActivityResponse(activity), nil
}

// ListByNews returns all activities attached to a news post
func (s *activityServiceImpl) ListByNews(ctx context.Context, newsID uuid.UUID) ([]dto.ActivityResponse, error) {
	activities, err := s.activityRepo.ListByNews(ctx, newsID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to load activities", err.Error())
	}

	result := make([]dto.ActivityResponse, 0, len(activities))
	for i := range activities {
		result = append(result, *toActivityResponse(&activities[i]))
	}
	return result, nil
}

// toMeal builds the meal facility row from the request payload. A
// facility that is not provided still gets a row so the offer is explicit.
func toMeal(p dto.FacilityPayload) *domain.ActivityMeal {
	meal := domain.ActivityMeal{
		Provided: p.Provided,
		IsPaid:   p.Provided && !p.IsFree,
	}
	if meal.IsPaid {
		meal.Fee = p.Fee
		meal.Currency = p.Currency
	}
	return &meal
}

func toTransport(p dto.FacilityPayload) *domain.ActivityTransport {
	transport := domain.ActivityTransport{
		Provided: p.Provided,
		IsPaid:   p.Provided && !p.IsFree,
	}
	if transport.IsPaid {
		transport.Fee = p.Fee
		transport.Currency = p.Currency
	}
	return &transport
}

func toActivityResponse(a *domain.Activity) *dto.ActivityResponse {
	resp := &dto.ActivityResponse{
		ActivityID:            a.ID,
		NewsID:                a.NewsID,
		Title:                 a.Title,
		Description:           a.Description,
		WorkTypeCode:          a.WorkTypeCode,
		MinParticipants:       a.MinParticipants,
		MaxParticipants:       a.MaxParticipants,
		MeetingLocationText:   a.MeetingLocation,
		MeetingLat:            a.MeetingLat,
		MeetingLng:            a.MeetingLng,
		VolunteerLocationText: a.VolunteerLocation,
		VolunteerLat:          a.VolunteerLat,
		VolunteerLng:          a.VolunteerLng,
		TimeSlots:             make([]dto.TimeSlotResponse, 0, len(a.TimeSlots)),
	}

	if a.Meal != nil {
		resp.Meal = &dto.FacilityResponse{
			Provided: a.Meal.Provided,
			IsFree:   !a.Meal.IsPaid,
			Fee:      a.Meal.Fee,
			Currency: a.Meal.Currency,
		}
	}
	if a.Transport != nil {
		resp.Transport = &dto.FacilityResponse{
			Provided: a.Transport.Provided,
			IsFree:   !a.Transport.IsPaid,
			Fee:      a.Transport.Fee,
			Currency: a.Transport.Currency,
		}
	}

	for _, slot := range a.TimeSlots {
		resp.TimeSlots = append(resp.TimeSlots, dto.TimeSlotResponse{
			SlotID:    slot.ID,
			DayCode:   slot.DayCode,
			Date:      slot.Date,
			StartTime: slot.StartTime,
			EndTime:   slot.EndTime,
		})
	}
	return resp
}
