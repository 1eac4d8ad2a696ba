package domain

import (
	"github.com/google/uuid"
)

// Activity represents a scheduled volunteer event. Capacity is carried
// here: MaxParticipants is the ceiling each individual time slot enforces
// on its own registrations (slots do not have capacities of their own).
type Activity struct {
	BaseModel
	NewsID      uuid.UUID `gorm:"type:uuid;not null;index:idx_activities_news_id" json:"newsId"`
	CreatedBy   uuid.UUID `gorm:"type:uuid;not null;index:idx_activities_created_by" json:"createdBy"`
	Title       string    `gorm:"type:varchar(255);not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`

	WorkTypeCode    int `gorm:"not null;default:0" json:"workTypeCode"`
	MinParticipants int `gorm:"not null;default:0" json:"minParticipants"`
	MaxParticipants int `gorm:"not null" json:"maxParticipants"`

	MeetingLocation string   `gorm:"type:varchar(500)" json:"meetingLocation"`
	MeetingLat      *float64 `json:"meetingLat,omitempty"`
	MeetingLng      *float64 `json:"meetingLng,omitempty"`

	VolunteerLocation string   `gorm:"type:varchar(500)" json:"volunteerLocation"`
	VolunteerLat      *float64 `json:"volunteerLat,omitempty"`
	VolunteerLng      *float64 `json:"volunteerLng,omitempty"`

	// Relations
	Meal         *ActivityMeal         `gorm:"foreignKey:ActivityID" json:"meal,omitempty"`
	Transport    *ActivityTransport    `gorm:"foreignKey:ActivityID" json:"transport,omitempty"`
	TimeSlots    []ActivityTimeSlot    `gorm:"foreignKey:ActivityID;constraint:OnDelete:CASCADE" json:"timeSlots,omitempty"`
	Participants []ActivityParticipant `gorm:"foreignKey:ActivityID" json:"participants,omitempty"`
}

// TableName specifies the table name for Activity
func (Activity) TableName() string {
	return "activities"
}

// ActivityMeal describes the meal facility offered by an activity
type ActivityMeal struct {
	BaseModel
	ActivityID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_activity_meals_activity" json:"activityId"`
	Provided   bool      `gorm:"not null;default:false" json:"provided"`
	IsPaid     bool      `gorm:"not null;default:false" json:"isPaid"`
	Fee        *float64  `json:"fee,omitempty"`
	Currency   *string   `gorm:"type:varchar(10)" json:"currency,omitempty"`
}

// TableName specifies the table name for ActivityMeal
func (ActivityMeal) TableName() string {
	return "activity_meals"
}

// ActivityTransport describes the transport facility offered by an activity
type ActivityTransport struct {
	BaseModel
	ActivityID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_activity_transports_activity" json:"activityId"`
	Provided   bool      `gorm:"not null;default:false" json:"provided"`
	IsPaid     bool      `gorm:"not null;default:false" json:"isPaid"`
	Fee        *float64  `json:"fee,omitempty"`
	Currency   *string   `gorm:"type:varchar(10)" json:"currency,omitempty"`
}

// TableName specifies the table name for ActivityTransport
func (ActivityTransport) TableName() string {
	return "activity_transports"
}

// ActivityTimeSlot is one concrete date/start/end occurrence of an activity
type ActivityTimeSlot struct {
	BaseModel
	ActivityID uuid.UUID `gorm:"type:uuid;not null;index:idx_activity_time_slots_activity_id" json:"activityId"`
	DayCode    int       `gorm:"not null;default:0" json:"dayCode"`
	Date       string    `gorm:"type:varchar(10);not null" json:"date"`
	StartTime  string    `gorm:"type:varchar(5);not null" json:"startTime"`
	EndTime    string    `gorm:"type:varchar(5);not null" json:"endTime"`
}

// TableName specifies the table name for ActivityTimeSlot
func (ActivityTimeSlot) TableName() string {
	return "activity_time_slots"
}
