package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"volunteer-api/internal/domain"
	"volunteer-api/internal/dto"
	"volunteer-api/internal/metrics"
	"volunteer-api/internal/repository"
	"volunteer-api/internal/response"
)

// slotCountTTL bounds how stale a cached slot count may get
const slotCountTTL = 30 * time.Second

// ParticipantService defines the interface for signup and attendance logic
type ParticipantService interface {
	RegisterSlots(ctx context.Context, userID, activityID uuid.UUID, req *dto.RegisterSlotsRequest) error
	CancelSlots(ctx context.Context, userID, activityID uuid.UUID, req *dto.CancelSlotsRequest) error
	CheckRegistration(ctx context.Context, userID, activityID uuid.UUID) (*dto.RegistrationCheckResponse, error)
	SlotCount(ctx context.Context, slotID uuid.UUID) (*dto.SlotCountResponse, error)
	ListParticipants(ctx context.Context, callerID, activityID uuid.UUID) ([]dto.ActivityParticipantResponse, error)
	UpdateSlotStatus(ctx context.Context, callerID, participantSlotID uuid.UUID, req *dto.UpdateSlotStatusRequest) (*dto.ParticipantSlotResponse, error)
	Kick(ctx context.Context, callerID uuid.UUID, req *dto.KickParticipantRequest) error
}

// participantServiceImpl is the implementation of ParticipantService
type participantServiceImpl struct {
	participantRepo repository.ParticipantRepository
	activityRepo    repository.ActivityRepository
	roleSvc         RoleService
	redis           *redis.Client
	metrics         *metrics.Metrics
	logger          *zap.Logger
}

// NewParticipantService creates a new instance of ParticipantService
func NewParticipantService(
	participantRepo repository.ParticipantRepository,
	activityRepo repository.ActivityRepository,
	roleSvc RoleService,
	redisClient *redis.Client,
	m *metrics.Metrics,
	logger *zap.Logger,
) ParticipantService {
	return &participantServiceImpl{
		participantRepo: participantRepo,
		activityRepo:    activityRepo,
		roleSvc:         roleSvc,
		redis:           redisClient,
		metrics:         m,
		logger:          logger,
	}
}

// RegisterSlots signs the caller up for the selected time slots. Selections
// against a facility the activity does not offer have their preferences
// dropped rather than rejected; a full slot fails the whole request.
func (s *participantServiceImpl) RegisterSlots(ctx context.Context, userID, activityID uuid.UUID, req *dto.RegisterSlotsRequest) error {
	activity, err := s.activityRepo.FindByID(ctx, activityID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NewAppError(response.ErrCodeNotFound, "Activity not found", "")
		}
		return response.NewAppError(response.ErrCodeInternal, "Failed to load activity", err.Error())
	}

	mealOffered := activity.Meal != nil && activity.Meal.Provided
	transportOffered := activity.Transport != nil && activity.Transport.Provided

	selections := make([]repository.SlotRegistration, 0, len(req.Selections))
	for _, sel := range req.Selections {
		reg := repository.SlotRegistration{TimeSlotID: sel.SlotID}
		if mealOffered {
			reg.MealWanted = sel.MealWanted
			reg.MealReason = sel.MealReason
		}
		if transportOffered {
			reg.TransportWanted = sel.TransportWanted
			reg.TransportReason = sel.TransportReason
		}
		selections = append(selections, reg)
	}

	if _, err := s.participantRepo.RegisterSlots(ctx, userID, activityID, selections); err != nil {
		var full *repository.SlotFullError
		if errors.As(err, &full) {
			if s.metrics != nil {
				s.metrics.IncrementCapacityRejection()
			}
			return response.NewAppError(response.ErrCodeCapacityExceeded, full.Error(), "")
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NewAppError(response.ErrCodeNotFound, "Time slot not found", "")
		}
		return response.NewAppError(response.ErrCodeInternal, "Failed to register", err.Error())
	}

	if s.metrics != nil {
		s.metrics.IncrementActivitySignup()
	}
	s.logger.Info("slots registered",
		zap.String("user_id", userID.String()),
		zap.String("activity_id", activityID.String()),
		zap.Int("slots", len(selections)),
	)

	for _, sel := range req.Selections {
		s.invalidateSlotCount(ctx, sel.SlotID)
	}
	return nil
}

// CancelSlots removes the caller's registrations for the named slots
func (s *participantServiceImpl) CancelSlots(ctx context.Context, userID, activityID uuid.UUID, req *dto.CancelSlotsRequest) error {
	removed, err := s.participantRepo.CancelSlots(ctx, userID, activityID, req.SlotIDs)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NewAppError(response.ErrCodeNotFound, "You are not registered for this activity", "")
		}
		return response.NewAppError(response.ErrCodeInternal, "Failed to cancel registration", err.Error())
	}

	s.logger.Info("slots cancelled",
		zap.String("user_id", userID.String()),
		zap.String("activity_id", activityID.String()),
		zap.Bool("participant_removed", removed),
	)

	for _, slotID := range req.SlotIDs {
		s.invalidateSlotCount(ctx, slotID)
	}
	return nil
}

// CheckRegistration reports whether the caller is registered for the
// activity, which slots, and the live per-slot counts
func (s *participantServiceImpl) CheckRegistration(ctx context.Context, userID, activityID uuid.UUID) (*dto.RegistrationCheckResponse, error) {
	activity, err := s.activityRepo.FindByID(ctx, activityID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeNotFound, "Activity not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to load activity", err.Error())
	}

	slotIDs := make([]uuid.UUID, 0, len(activity.TimeSlots))
	for _, slot := range activity.TimeSlots {
		slotIDs = append(slotIDs, slot.ID)
	}
	counts, err := s.participantRepo.CountBySlots(ctx, slotIDs)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to count registrations", err.Error())
	}

	resp := &dto.RegistrationCheckResponse{
		Joined:           false,
		JoinedSlotDetail: []dto.JoinedSlotDetail{},
		SlotCounts:       counts,
	}

	participant, err := s.participantRepo.FindByUserAndActivity(ctx, userID, activityID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return resp, nil
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to load registration", err.Error())
	}

	resp.Joined = true
	for _, slot := range participant.Slots {
		detail := dto.JoinedSlotDetail{
			SlotID:            slot.TimeSlotID,
			ParticipantSlotID: slot.ID,
			MealWanted:        slot.MealWanted,
			TransportWanted:   slot.TransportWanted,
		}
		if slot.TimeSlot != nil {
			detail.Date = slot.TimeSlot.Date
			detail.StartTime = slot.TimeSlot.StartTime
			detail.EndTime = slot.TimeSlot.EndTime
		}
		resp.JoinedSlotDetail = append(resp.JoinedSlotDetail, detail)
	}
	return resp, nil
}

// SlotCount returns the registration count for one slot, served from the
// cache when fresh
func (s *participantServiceImpl) SlotCount(ctx context.Context, slotID uuid.UUID) (*dto.SlotCountResponse, error) {
	if s.redis != nil {
		cached, err := s.redis.Get(ctx, slotCountKey(slotID)).Result()
		if err == nil {
			if count, parseErr := strconv.ParseInt(cached, 10, 64); parseErr == nil {
				return &dto.SlotCountResponse{SlotID: slotID, Count: count}, nil
			}
		}
	}

	if _, err := s.activityRepo.FindTimeSlotByID(ctx, slotID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeNotFound, "Time slot not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to load time slot", err.Error())
	}

	count, err := s.participantRepo.CountBySlot(ctx, slotID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to count registrations", err.Error())
	}

	if s.redis != nil {
		if err := s.redis.Set(ctx, slotCountKey(slotID), count, slotCountTTL).Err(); err != nil {
			s.logger.Warn("failed to cache slot count", zap.Error(err))
		}
	}
	return &dto.SlotCountResponse{SlotID: slotID, Count: count}, nil
}

// ListParticipants returns the organizer roster view for an activity
func (s *participantServiceImpl) ListParticipants(ctx context.Context, callerID, activityID uuid.UUID) ([]dto.ActivityParticipantResponse, error) {
	if err := s.requireOrganizer(ctx, callerID); err != nil {
		return nil, err
	}

	if _, err := s.activityRepo.FindByID(ctx, activityID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeNotFound, "Activity not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to load activity", err.Error())
	}

	participants, err := s.participantRepo.ListByActivity(ctx, activityID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to load participants", err.Error())
	}

	result := make([]dto.ActivityParticipantResponse, 0, len(participants))
	for i := range participants {
		p := &participants[i]
		item := dto.ActivityParticipantResponse{
			ParticipantID: p.ID,
			UserID:        p.UserID,
			JoinedAt:      p.JoinedAt,
			Slots:         make([]dto.ParticipantSlotResponse, 0, len(p.Slots)),
		}
		if p.User != nil {
			item.UserEmail = p.User.Email
			item.Username = p.User.Username
		}
		for _, slot := range p.Slots {
			item.Slots = append(item.Slots, toParticipantSlotResponse(&slot))
		}
		result = append(result, item)
	}
	return result, nil
}

// UpdateSlotStatus records attendance tracking fields on one registration.
// Only the fields present in the request change; status codes may move
// freely between values.
func (s *participantServiceImpl) UpdateSlotStatus(ctx context.Context, callerID, participantSlotID uuid.UUID, req *dto.UpdateSlotStatusRequest) (*dto.ParticipantSlotResponse, error) {
	if err := s.requireOrganizer(ctx, callerID); err != nil {
		return nil, err
	}

	slot, err := s.participantRepo.FindSlotByID(ctx, participantSlotID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeNotFound, "Registration not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to load registration", err.Error())
	}

	if req.StatusCode != nil {
		if !req.StatusCode.IsValid() {
			return nil, response.NewAppError(response.ErrCodeValidation,
				fmt.Sprintf("Unknown attendance status %d", int(*req.StatusCode)), "")
		}
		slot.StatusCode = req.StatusCode
	}
	if req.ArrivalTime != nil {
		slot.ArrivalTime = req.ArrivalTime
	}
	if req.LeaveTime != nil {
		slot.LeaveTime = req.LeaveTime
	}

	if err := s.participantRepo.UpdateSlot(ctx, slot); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to update registration", err.Error())
	}

	resp := toParticipantSlotResponse(slot)
	return &resp, nil
}

// Kick removes a participant from an activity and records the reason
func (s *participantServiceImpl) Kick(ctx context.Context, callerID uuid.UUID, req *dto.KickParticipantRequest) error {
	if err := s.requireOrganizer(ctx, callerID); err != nil {
		return err
	}

	participant, err := s.participantRepo.FindByID(ctx, req.ParticipantID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NewAppError(response.ErrCodeNotFound, "Participant not found", "")
		}
		return response.NewAppError(response.ErrCodeInternal, "Failed to load participant", err.Error())
	}

	if err := s.participantRepo.Kick(ctx, req.ParticipantID, req.ActivityID, req.Reason); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NewAppError(response.ErrCodeNotFound, "Participant not found in this activity", "")
		}
		return response.NewAppError(response.ErrCodeInternal, "Failed to remove participant", err.Error())
	}

	if s.metrics != nil {
		s.metrics.IncrementKick()
	}
	s.logger.Info("participant kicked",
		zap.String("participant_id", req.ParticipantID.String()),
		zap.String("activity_id", req.ActivityID.String()),
	)

	for _, slot := range participant.Slots {
		s.invalidateSlotCount(ctx, slot.TimeSlotID)
	}
	return nil
}

func (s *participantServiceImpl) requireOrganizer(ctx context.Context, callerID uuid.UUID) error {
	allowed, err := s.roleSvc.HasActiveRole(ctx, callerID, domain.RoleOrganizer)
	if err != nil {
		return response.NewAppError(response.ErrCodeInternal, "Failed to check organizer role", err.Error())
	}
	if !allowed {
		return response.NewAppError(response.ErrCodeForbidden, "Organizer role is required", "")
	}
	return nil
}

func (s *participantServiceImpl) invalidateSlotCount(ctx context.Context, slotID uuid.UUID) {
	if s.redis == nil {
		return
	}
	if err := s.redis.Del(ctx, slotCountKey(slotID)).Err(); err != nil {
		s.logger.Warn("failed to invalidate slot count cache",
			zap.String("slot_id", slotID.String()),
			zap.Error(err),
		)
	}
}

func slotCountKey(slotID uuid.UUID) string {
	return "slot_count:" + slotID.String()
}

func toParticipantSlotResponse(slot *domain.ActivityParticipantSlot) dto.ParticipantSlotResponse {
	return dto.ParticipantSlotResponse{
		ParticipantSlotID: slot.ID,
		ParticipantID:     slot.ParticipantID,
		TimeSlotID:        slot.TimeSlotID,
		MealWanted:        slot.MealWanted,
		MealReason:        slot.MealReason,
		TransportWanted:   slot.TransportWanted,
		TransportReason:   slot.TransportReason,
		StatusCode:        slot.StatusCode,
		ArrivalTime:       slot.ArrivalTime,
		LeaveTime:         slot.LeaveTime,
	}
}
