package domain

import (
	"time"

	"github.com/google/uuid"
)

// RoleAssignment links a user to a role and tracks the application
// lifecycle. At most one row exists per (user, role) pair; applications
// and renewals upsert the same row.
type RoleAssignment struct {
	BaseModel
	UserID          uuid.UUID  `gorm:"type:uuid;not null;index:idx_role_assignments_user_id;uniqueIndex:uq_role_assignments_user_role" json:"userId"`
	RoleID          int        `gorm:"not null;index:idx_role_assignments_role_id;uniqueIndex:uq_role_assignments_user_role" json:"roleId"`
	Status          RoleStatus `gorm:"not null;default:1" json:"status"`
	ActiveUntil     *time.Time `gorm:"index" json:"activeUntil,omitempty"`
	DowntimeUntil   *time.Time `json:"downtimeUntil,omitempty"`
	RejectionReason *string    `json:"rejectionReason,omitempty"`
	RequestMessage  *string    `json:"requestMessage,omitempty"`
	AttachmentPath  *string    `json:"attachmentPath,omitempty"`

	// Relations
	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Role *Role `gorm:"foreignKey:RoleID" json:"role,omitempty"`
}

// TableName specifies the table name for RoleAssignment
func (RoleAssignment) TableName() string {
	return "role_assignments"
}
