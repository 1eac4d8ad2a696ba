package dto

import (
	"time"

	"github.com/google/uuid"

	"volunteer-api/internal/domain"
)

// SlotSelection is one time slot the caller wants to register into,
// with logistics preferences where the activity offers them
type SlotSelection struct {
	SlotID          uuid.UUID `json:"slotId" binding:"required"`
	MealWanted      *bool     `json:"mealWanted,omitempty"`
	MealReason      *string   `json:"mealReason,omitempty"`
	TransportWanted *bool     `json:"transportWanted,omitempty"`
	TransportReason *string   `json:"transportReason,omitempty"`
}

// RegisterSlotsRequest represents an activity signup
type RegisterSlotsRequest struct {
	Selections []SlotSelection `json:"selections" binding:"required,min=1,dive"`
}

// CancelSlotsRequest represents a cancellation of named slot registrations
type CancelSlotsRequest struct {
	SlotIDs []uuid.UUID `json:"slotIds" binding:"required,min=1"`
}

// JoinedSlotDetail is one slot the caller is registered into
type JoinedSlotDetail struct {
	SlotID            uuid.UUID `json:"slotId"`
	ParticipantSlotID uuid.UUID `json:"participantSlotId"`
	Date              string    `json:"date"`
	StartTime         string    `json:"startTime"`
	EndTime           string    `json:"endTime"`
	MealWanted        *bool     `json:"mealWanted,omitempty"`
	TransportWanted   *bool     `json:"transportWanted,omitempty"`
}

// RegistrationCheckResponse reports the caller's registration state for an
// activity plus the current per-slot registration counts
type RegistrationCheckResponse struct {
	Joined           bool                `json:"joined"`
	JoinedSlotDetail []JoinedSlotDetail  `json:"joinedSlotDetails"`
	SlotCounts       map[uuid.UUID]int64 `json:"slotCounts"`
}

// SlotCountResponse is the registration count for one time slot
type SlotCountResponse struct {
	SlotID uuid.UUID `json:"slotId"`
	Count  int64     `json:"count"`
}

// UpdateSlotStatusRequest represents an organizer-side attendance update
type UpdateSlotStatusRequest struct {
	StatusCode  *domain.AttendanceStatus `json:"statusCode,omitempty"`
	ArrivalTime *time.Time               `json:"arrivalTime,omitempty"`
	LeaveTime   *time.Time               `json:"leaveTime,omitempty"`
}

// ParticipantSlotResponse represents one participant-slot row
type ParticipantSlotResponse struct {
	ParticipantSlotID uuid.UUID                `json:"participantSlotId"`
	ParticipantID     uuid.UUID                `json:"participantId"`
	TimeSlotID        uuid.UUID                `json:"timeSlotId"`
	MealWanted        *bool                    `json:"mealWanted,omitempty"`
	MealReason        *string                  `json:"mealReason,omitempty"`
	TransportWanted   *bool                    `json:"transportWanted,omitempty"`
	TransportReason   *string                  `json:"transportReason,omitempty"`
	StatusCode        *domain.AttendanceStatus `json:"statusCode,omitempty"`
	ArrivalTime       *time.Time               `json:"arrivalTime,omitempty"`
	LeaveTime         *time.Time               `json:"leaveTime,omitempty"`
}

// ActivityParticipantResponse is one participant in the organizer view
type ActivityParticipantResponse struct {
	ParticipantID uuid.UUID                 `json:"participantId"`
	UserID        uuid.UUID                 `json:"userId"`
	UserEmail     string                    `json:"userEmail,omitempty"`
	Username      string                    `json:"username,omitempty"`
	JoinedAt      time.Time                 `json:"joinedAt"`
	Slots         []ParticipantSlotResponse `json:"slots"`
}

// KickParticipantRequest represents a forced removal
type KickParticipantRequest struct {
	ParticipantID uuid.UUID `json:"participantId" binding:"required"`
	ActivityID    uuid.UUID `json:"activityId" binding:"required"`
	Reason        string    `json:"reason" binding:"required"`
}
