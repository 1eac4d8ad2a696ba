package dto

import (
	"github.com/google/uuid"
)

// TimeSlotPayload is one occurrence in an activity creation request
type TimeSlotPayload struct {
	DayCode   int    `json:"dayCode"`
	Date      string `json:"date" binding:"required"`
	StartTime string `json:"startTime" binding:"required"`
	EndTime   string `json:"endTime" binding:"required"`
}

// FacilityPayload describes a meal or transport facility in a creation
// request. Fee and currency are only recorded when the facility is both
// provided and paid.
type FacilityPayload struct {
	Provided bool     `json:"provided"`
	IsFree   bool     `json:"isFree"`
	Fee      *float64 `json:"fee,omitempty"`
	Currency *string  `json:"currency,omitempty"`
}

// CreateActivityRequest represents the request to create an activity
type CreateActivityRequest struct {
	NewsID      uuid.UUID `json:"newsId" binding:"required"`
	Title       string    `json:"title" binding:"required,max=255"`
	Description string    `json:"description,omitempty"`

	WorkTypeCode    int `json:"workTypeCode,omitempty"`
	MinParticipants int `json:"minParticipants,omitempty"`
	MaxParticipants int `json:"maxParticipants" binding:"required,min=1"`

	MeetingLocationText string   `json:"meetingLocationText,omitempty"`
	MeetingLat          *float64 `json:"meetingLat,omitempty"`
	MeetingLng          *float64 `json:"meetingLng,omitempty"`

	VolunteerLocationText string   `json:"volunteerLocationText,omitempty"`
	VolunteerLat          *float64 `json:"volunteerLat,omitempty"`
	VolunteerLng          *float64 `json:"volunteerLng,omitempty"`

	Meal      FacilityPayload `json:"meal"`
	Transport FacilityPayload `json:"transport"`

	TimeSlots []TimeSlotPayload `json:"timeSlots" binding:"required,min=1,dive"`
}

// CreateActivityResponse carries the id of the new activity
type CreateActivityResponse struct {
	ActivityID uuid.UUID `json:"activityId"`
}

// TimeSlotResponse is one occurrence of an activity
type TimeSlotResponse struct {
	SlotID    uuid.UUID `json:"slotId"`
	DayCode   int       `json:"dayCode"`
	Date      string    `json:"date"`
	StartTime string    `json:"startTime"`
	EndTime   string    `json:"endTime"`
}

// FacilityResponse describes a meal or transport facility
type FacilityResponse struct {
	Provided bool     `json:"provided"`
	IsFree   bool     `json:"isFree"`
	Fee      *float64 `json:"fee,omitempty"`
	Currency *string  `json:"currency,omitempty"`
}

// ActivityResponse represents a full activity
type ActivityResponse struct {
	ActivityID  uuid.UUID `json:"activityId"`
	NewsID      uuid.UUID `json:"newsId"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`

	WorkTypeCode    int `json:"workTypeCode"`
	MinParticipants int `json:"minParticipants"`
	MaxParticipants int `json:"maxParticipants"`

	MeetingLocationText string   `json:"meetingLocationText,omitempty"`
	MeetingLat          *float64 `json:"meetingLat,omitempty"`
	MeetingLng          *float64 `json:"meetingLng,omitempty"`

	VolunteerLocationText string   `json:"volunteerLocationText,omitempty"`
	VolunteerLat          *float64 `json:"volunteerLat,omitempty"`
	VolunteerLng          *float64 `json:"volunteerLng,omitempty"`

	Meal      *FacilityResponse  `json:"meal,omitempty"`
	Transport *FacilityResponse  `json:"transport,omitempty"`
	TimeSlots []TimeSlotResponse `json:"timeSlots"`
}
