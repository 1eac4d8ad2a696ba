package domain

import (
	"time"

	"github.com/google/uuid"
)

// AttendanceStatus enumerates the per-slot attendance outcomes. Any code
// may follow any other; there is no enforced transition order.
type AttendanceStatus int

const (
	AttendanceRegistered AttendanceStatus = 1
	AttendanceAttended   AttendanceStatus = 2
	AttendanceSickLeave  AttendanceStatus = 3
	AttendanceAbsent     AttendanceStatus = 4
	AttendanceLeftEarly  AttendanceStatus = 5
)

// IsValid reports whether the code is a known attendance status
func (s AttendanceStatus) IsValid() bool {
	return s >= AttendanceRegistered && s <= AttendanceLeftEarly
}

// String returns the lowercase name of the status
func (s AttendanceStatus) String() string {
	switch s {
	case AttendanceRegistered:
		return "registered"
	case AttendanceAttended:
		return "attended"
	case AttendanceSickLeave:
		return "sick_leave"
	case AttendanceAbsent:
		return "absent"
	case AttendanceLeftEarly:
		return "left_early"
	default:
		return "unknown"
	}
}

// ActivityParticipant joins a user to an activity. Unique per
// (user, activity); removed again when its last slot registration goes.
type ActivityParticipant struct {
	BaseModel
	UserID     uuid.UUID `gorm:"type:uuid;not null;index:idx_activity_participants_user_id;uniqueIndex:uq_activity_participants_user_activity" json:"userId"`
	ActivityID uuid.UUID `gorm:"type:uuid;not null;index:idx_activity_participants_activity_id;uniqueIndex:uq_activity_participants_user_activity" json:"activityId"`
	JoinedAt   time.Time `gorm:"not null" json:"joinedAt"`

	// Relations
	User  *User                     `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Slots []ActivityParticipantSlot `gorm:"foreignKey:ParticipantID;constraint:OnDelete:CASCADE" json:"slots,omitempty"`
}

// TableName specifies the table name for ActivityParticipant
func (ActivityParticipant) TableName() string {
	return "activity_participants"
}

// ActivityParticipantSlot is one registration of a participant into one
// time slot, carrying logistics preferences and attendance tracking
type ActivityParticipantSlot struct {
	BaseModel
	ParticipantID uuid.UUID `gorm:"type:uuid;not null;index:idx_participant_slots_participant_id;uniqueIndex:uq_participant_slots_participant_slot" json:"participantId"`
	TimeSlotID    uuid.UUID `gorm:"type:uuid;not null;index:idx_participant_slots_time_slot_id;uniqueIndex:uq_participant_slots_participant_slot" json:"timeSlotId"`

	MealWanted      *bool   `json:"mealWanted,omitempty"`
	MealReason      *string `json:"mealReason,omitempty"`
	TransportWanted *bool   `json:"transportWanted,omitempty"`
	TransportReason *string `json:"transportReason,omitempty"`

	StatusCode  *AttendanceStatus `json:"statusCode,omitempty"`
	ArrivalTime *time.Time        `json:"arrivalTime,omitempty"`
	LeaveTime   *time.Time        `json:"leaveTime,omitempty"`

	// Relations
	TimeSlot *ActivityTimeSlot `gorm:"foreignKey:TimeSlotID" json:"timeSlot,omitempty"`
}

// TableName specifies the table name for ActivityParticipantSlot
func (ActivityParticipantSlot) TableName() string {
	return "activity_participant_slots"
}

// ActivityKickLog is an append-only audit record of a forced removal
type ActivityKickLog struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ParticipantID uuid.UUID `gorm:"type:uuid;not null;index:idx_activity_kick_logs_participant_id" json:"participantId"`
	ActivityID    uuid.UUID `gorm:"type:uuid;not null;index:idx_activity_kick_logs_activity_id" json:"activityId"`
	Reason        string    `gorm:"type:text;not null" json:"reason"`
	CreatedAt     time.Time `gorm:"not null" json:"createdAt"`
}

// TableName specifies the table name for ActivityKickLog
func (ActivityKickLog) TableName() string {
	return "activity_kick_logs"
}
