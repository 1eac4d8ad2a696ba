package dto

import (
	"time"

	"github.com/google/uuid"

	"volunteer-api/internal/domain"
)

// SubmitRoleRequestRequest represents a role application or renewal
type SubmitRoleRequestRequest struct {
	RoleID        int    `json:"roleId" binding:"required"`
	Message       string `json:"message,omitempty"`
	AttachmentURL string `json:"attachmentUrl,omitempty"`
	FileType      string `json:"fileType,omitempty"`
	FileSize      int64  `json:"fileSize,omitempty"`
}

// SubmitRoleRequestResponse carries the id of the upserted request row
type SubmitRoleRequestResponse struct {
	RequestID uuid.UUID `json:"requestId"`
}

// RoleWithStatusResponse is one role definition plus the caller's derived
// lifecycle view against it
type RoleWithStatusResponse struct {
	RoleID          int               `json:"roleId"`
	Name            string            `json:"name"`
	UserStatus      domain.RoleStatus `json:"userStatus"`
	CanApply        bool              `json:"canApply"`
	ActiveUntil     *time.Time        `json:"activeUntil,omitempty"`
	DowntimeUntil   *time.Time        `json:"downtimeUntil,omitempty"`
	RejectionReason *string           `json:"rejectionReason,omitempty"`
	RequestedAt     *time.Time        `json:"requestedAt,omitempty"`
}

// DecideRoleRequestRequest represents an admin decision on a pending request
type DecideRoleRequestRequest struct {
	Decision        string     `json:"decision" binding:"required,oneof=approve reject"`
	ActiveUntil     *time.Time `json:"activeUntil,omitempty"`
	RejectionReason string     `json:"rejectionReason,omitempty"`
	DowntimeUntil   *time.Time `json:"downtimeUntil,omitempty"`
}

// PendingRoleRequestResponse is one pending request in the admin review list
type PendingRoleRequestResponse struct {
	RequestID      uuid.UUID `json:"requestId"`
	RoleID         int       `json:"roleId"`
	RoleName       string    `json:"roleName"`
	UserID         uuid.UUID `json:"userId"`
	UserEmail      string    `json:"userEmail"`
	Username       string    `json:"username"`
	RequestMessage *string   `json:"requestMessage,omitempty"`
	AttachmentPath *string   `json:"attachmentPath,omitempty"`
	RequestedAt    time.Time `json:"requestedAt"`
}

// PendingRoleRequestListResponse is the paginated admin review list
type PendingRoleRequestListResponse struct {
	Requests []PendingRoleRequestResponse `json:"requests"`
	Total    int64                        `json:"total"`
	Page     int                          `json:"page"`
	Rows     int                          `json:"rows"`
}
