package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"volunteer-api/internal/client"
	"volunteer-api/internal/domain"
	"volunteer-api/internal/dto"
	"volunteer-api/internal/metrics"
	"volunteer-api/internal/repository"
	"volunteer-api/internal/response"
)

const (
	// MaxAttachmentSize is the upper bound for role request proof files
	MaxAttachmentSize = 5 * 1024 * 1024

	approvedSubject = "Your Role Request Is Approved"
	rejectedSubject = "Your Role Request Is Rejected"
)

// allowedAttachmentTypes are the accepted proof file MIME types
var allowedAttachmentTypes = map[string]bool{
	"image/jpeg":      true,
	"image/png":       true,
	"application/pdf": true,
}

// ValidateAttachment checks a proof file's declared type and size
func ValidateAttachment(fileType string, fileSize int64) error {
	if !allowedAttachmentTypes[fileType] {
		return response.NewAppError(response.ErrCodeInvalidAttachment,
			fmt.Sprintf("File type %s is not allowed", fileType), "")
	}
	if fileSize > MaxAttachmentSize {
		return response.NewAppError(response.ErrCodeInvalidAttachment,
			"File exceeds the 5MB size limit", "")
	}
	return nil
}

// RoleService defines the interface for role lifecycle logic
type RoleService interface {
	ListWithStatus(ctx context.Context, userID uuid.UUID) ([]dto.RoleWithStatusResponse, error)
	SubmitRequest(ctx context.Context, userID uuid.UUID, req *dto.SubmitRoleRequestRequest) (*dto.SubmitRoleRequestResponse, error)
	ListPending(ctx context.Context, search string, page, rows int) (*dto.PendingRoleRequestListResponse, error)
	RequestDetail(ctx context.Context, requestID uuid.UUID) (*dto.PendingRoleRequestResponse, error)
	Decide(ctx context.Context, requestID uuid.UUID, req *dto.DecideRoleRequestRequest) error
	HasActiveRole(ctx context.Context, userID uuid.UUID, roleName string) (bool, error)
}

// roleServiceImpl is the implementation of RoleService
type roleServiceImpl struct {
	roleRepo       repository.RoleRepository
	assignmentRepo repository.RoleAssignmentRepository
	mailer         client.Mailer
	metrics        *metrics.Metrics
	logger         *zap.Logger
	now            func() time.Time
}

// NewRoleService creates a new instance of RoleService
func NewRoleService(
	roleRepo repository.RoleRepository,
	assignmentRepo repository.RoleAssignmentRepository,
	mailer client.Mailer,
	m *metrics.Metrics,
	logger *zap.Logger,
) RoleService {
	return &roleServiceImpl{
		roleRepo:       roleRepo,
		assignmentRepo: assignmentRepo,
		mailer:         mailer,
		metrics:        m,
		logger:         logger,
		now:            func() time.Time { return time.Now().UTC() },
	}
}

// ListWithStatus returns every role in the catalog with the caller's
// derived lifecycle view against each
func (s *roleServiceImpl) ListWithStatus(ctx context.Context, userID uuid.UUID) ([]dto.RoleWithStatusResponse, error) {
	roles, err := s.roleRepo.ListAll(ctx)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to load roles", err.Error())
	}

	assignments, err := s.assignmentRepo.FindByUser(ctx, userID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to load role assignments", err.Error())
	}
	byRole := make(map[int]*domain.RoleAssignment, len(assignments))
	for i := range assignments {
		byRole[assignments[i].RoleID] = &assignments[i]
	}

	now := s.now()
	result := make([]dto.RoleWithStatusResponse, 0, len(roles))
	for _, role := range roles {
		view := domain.ResolveRoleStatus(byRole[role.ID], now)
		result = append(result, dto.RoleWithStatusResponse{
			RoleID:          role.ID,
			Name:            role.Name,
			UserStatus:      view.Status,
			CanApply:        view.CanApply,
			ActiveUntil:     view.ActiveUntil,
			DowntimeUntil:   view.DowntimeUntil,
			RejectionReason: view.RejectionReason,
			RequestedAt:     view.RequestedAt,
		})
	}
	return result, nil
}

// SubmitRequest files a role application or renewal. Admission goes
// through the derived status: a user who cannot apply gets a conflict.
func (s *roleServiceImpl) SubmitRequest(ctx context.Context, userID uuid.UUID, req *dto.SubmitRoleRequestRequest) (*dto.SubmitRoleRequestResponse, error) {
	role, err := s.roleRepo.FindByID(ctx, req.RoleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeNotFound, "Role not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to load role", err.Error())
	}

	if req.AttachmentURL != "" {
		if err := ValidateAttachment(req.FileType, req.FileSize); err != nil {
			return nil, err
		}
	}

	latest, err := s.assignmentRepo.FindByUserAndRole(ctx, userID, role.ID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to load role assignment", err.Error())
	}

	view := domain.ResolveRoleStatus(latest, s.now())
	if !view.CanApply {
		switch view.Status {
		case domain.RoleStatusPending:
			return nil, response.NewAppError(response.ErrCodeConflict,
				"You already have a pending request for this role", "")
		case domain.RoleStatusActive:
			return nil, response.NewAppError(response.ErrCodeConflict,
				"You already hold this role", "")
		default:
			return nil, response.NewAppError(response.ErrCodeConflict,
				"You cannot apply for this role yet", "")
		}
	}

	assignment := &domain.RoleAssignment{
		UserID: userID,
		RoleID: role.ID,
		Status: domain.RoleStatusPending,
	}
	if req.Message != "" {
		assignment.RequestMessage = &req.Message
	}
	if req.AttachmentURL != "" {
		assignment.AttachmentPath = &req.AttachmentURL
	}

	if err := s.assignmentRepo.Upsert(ctx, assignment); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to save role request", err.Error())
	}

	// The upsert may have reused an existing row id
	saved, err := s.assignmentRepo.FindByUserAndRole(ctx, userID, role.ID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to reload role request", err.Error())
	}

	if s.metrics != nil {
		s.metrics.IncrementRoleRequest()
	}
	s.logger.Info("role request submitted",
		zap.String("user_id", userID.String()),
		zap.Int("role_id", role.ID),
	)

	return &dto.SubmitRoleRequestResponse{RequestID: saved.ID}, nil
}

// ListPending returns the paginated admin review queue
func (s *roleServiceImpl) ListPending(ctx context.Context, search string, page, rows int) (*dto.PendingRoleRequestListResponse, error) {
	if page < 1 {
		page = 1
	}
	if rows < 1 {
		rows = 20
	}

	assignments, total, err := s.assignmentRepo.FindPendingPaginated(ctx, search, page, rows)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to load pending requests", err.Error())
	}

	requests := make([]dto.PendingRoleRequestResponse, 0, len(assignments))
	for i := range assignments {
		requests = append(requests, toPendingResponse(&assignments[i]))
	}

	return &dto.PendingRoleRequestListResponse{
		Requests: requests,
		Total:    total,
		Page:     page,
		Rows:     rows,
	}, nil
}

// RequestDetail returns one request for admin review
func (s *roleServiceImpl) RequestDetail(ctx context.Context, requestID uuid.UUID) (*dto.PendingRoleRequestResponse, error) {
	assignment, err := s.assignmentRepo.FindByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeNotFound, "Role request not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to load role request", err.Error())
	}

	resp := toPendingResponse(assignment)
	return &resp, nil
}

// Decide applies an admin decision to a pending request. The notification
// email is sent after the row is saved and never affects the outcome.
func (s *roleServiceImpl) Decide(ctx context.Context, requestID uuid.UUID, req *dto.DecideRoleRequestRequest) error {
	assignment, err := s.assignmentRepo.FindByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NewAppError(response.ErrCodeNotFound, "Role request not found", "")
		}
		return response.NewAppError(response.ErrCodeInternal, "Failed to load role request", err.Error())
	}
	if assignment.Status != domain.RoleStatusPending {
		return response.NewAppError(response.ErrCodeConflict, "Role request has already been decided", "")
	}

	switch req.Decision {
	case "approve":
		if req.ActiveUntil == nil || !req.ActiveUntil.After(s.now()) {
			return response.NewAppError(response.ErrCodeValidation, "Approval requires a future activeUntil date", "")
		}
		assignment.Status = domain.RoleStatusActive
		assignment.ActiveUntil = req.ActiveUntil
		assignment.RejectionReason = nil
		assignment.DowntimeUntil = nil
	case "reject":
		if req.RejectionReason == "" {
			return response.NewAppError(response.ErrCodeValidation, "Rejection requires a reason", "")
		}
		reason := req.RejectionReason
		assignment.Status = domain.RoleStatusRejected
		assignment.ActiveUntil = nil
		assignment.DowntimeUntil = req.DowntimeUntil
		assignment.RejectionReason = &reason
	default:
		return response.NewAppError(response.ErrCodeValidation, "Decision must be approve or reject", "")
	}

	if err := s.assignmentRepo.Update(ctx, assignment); err != nil {
		return response.NewAppError(response.ErrCodeInternal, "Failed to save decision", err.Error())
	}

	if s.metrics != nil {
		s.metrics.IncrementRoleDecision(req.Decision)
	}
	s.logger.Info("role request decided",
		zap.String("request_id", assignment.ID.String()),
		zap.String("decision", req.Decision),
	)

	s.notifyDecision(assignment, req)

	return nil
}

// notifyDecision sends the outcome email in the background. Delivery
// failures are logged and counted only.
func (s *roleServiceImpl) notifyDecision(assignment *domain.RoleAssignment, req *dto.DecideRoleRequestRequest) {
	if s.mailer == nil || assignment.User == nil {
		return
	}

	to := assignment.User.Email
	roleName := ""
	if assignment.Role != nil {
		roleName = assignment.Role.Name
	}

	var subject, body string
	if req.Decision == "approve" {
		subject = approvedSubject
		body = fmt.Sprintf("Hello %s,\n\nYour request for the %s role has been approved.",
			assignment.User.Username, roleName)
		if assignment.ActiveUntil != nil {
			body += fmt.Sprintf(" It is active until %s.", assignment.ActiveUntil.Format("2006-01-02"))
		}
	} else {
		subject = rejectedSubject
		body = fmt.Sprintf("Hello %s,\n\nYour request for the %s role has been rejected.",
			assignment.User.Username, roleName)
		if assignment.RejectionReason != nil {
			body += fmt.Sprintf("\n\nReason: %s", *assignment.RejectionReason)
		}
		if assignment.DowntimeUntil != nil {
			body += fmt.Sprintf("\nYou may apply again after %s.", assignment.DowntimeUntil.Format("2006-01-02"))
		}
	}

	go func() {
		if err := s.mailer.Send(to, subject, body); err != nil {
			s.logger.Warn("failed to send decision email",
				zap.String("to", to),
				zap.Error(err),
			)
			if s.metrics != nil {
				s.metrics.IncrementEmailFailed()
			}
			return
		}
		if s.metrics != nil {
			s.metrics.IncrementEmailSent()
		}
	}()
}

// HasActiveRole reports whether the user currently holds the named role.
// Renewable counts as held; the role is still active inside its window.
func (s *roleServiceImpl) HasActiveRole(ctx context.Context, userID uuid.UUID, roleName string) (bool, error) {
	role, err := s.roleRepo.FindByName(ctx, roleName)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}

	latest, err := s.assignmentRepo.FindByUserAndRole(ctx, userID, role.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}

	view := domain.ResolveRoleStatus(latest, s.now())
	return view.Status == domain.RoleStatusActive || view.Status == domain.RoleStatusRenewable, nil
}

func toPendingResponse(a *domain.RoleAssignment) dto.PendingRoleRequestResponse {
	resp := dto.PendingRoleRequestResponse{
		RequestID:      a.ID,
		RoleID:         a.RoleID,
		UserID:         a.UserID,
		RequestMessage: a.RequestMessage,
		AttachmentPath: a.AttachmentPath,
		RequestedAt:    a.CreatedAt,
	}
	if a.User != nil {
		resp.UserEmail = a.User.Email
		resp.Username = a.User.Username
	}
	if a.Role != nil {
		resp.RoleName = a.Role.Name
	}
	return resp
}
