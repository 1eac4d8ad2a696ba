package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"volunteer-api/internal/domain"
	"volunteer-api/internal/dto"
	"volunteer-api/internal/repository"
)

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	CreateFunc        func(ctx context.Context, user *domain.User) error
	FindByIDFunc      func(ctx context.Context, id uuid.UUID) (*domain.User, error)
	FindByEmailFunc   func(ctx context.Context, email string) (*domain.User, error)
	ExistsByEmailFunc func(ctx context.Context, email string) (bool, error)
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, user)
	}
	return nil
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.FindByEmailFunc != nil {
		return m.FindByEmailFunc(ctx, email)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *MockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	if m.ExistsByEmailFunc != nil {
		return m.ExistsByEmailFunc(ctx, email)
	}
	return false, nil
}

// MockRoleRepository is a mock implementation of RoleRepository
type MockRoleRepository struct {
	FindByIDFunc   func(ctx context.Context, id int) (*domain.Role, error)
	FindByNameFunc func(ctx context.Context, name string) (*domain.Role, error)
	ListAllFunc    func(ctx context.Context) ([]domain.Role, error)
}

func (m *MockRoleRepository) FindByID(ctx context.Context, id int) (*domain.Role, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *MockRoleRepository) FindByName(ctx context.Context, name string) (*domain.Role, error) {
	if m.FindByNameFunc != nil {
		return m.FindByNameFunc(ctx, name)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *MockRoleRepository) ListAll(ctx context.Context) ([]domain.Role, error) {
	if m.ListAllFunc != nil {
		return m.ListAllFunc(ctx)
	}
	return []domain.Role{}, nil
}

// MockRoleAssignmentRepository is a mock implementation of RoleAssignmentRepository
type MockRoleAssignmentRepository struct {
	FindByIDFunc             func(ctx context.Context, id uuid.UUID) (*domain.RoleAssignment, error)
	FindByUserAndRoleFunc    func(ctx context.Context, userID uuid.UUID, roleID int) (*domain.RoleAssignment, error)
	FindByUserFunc           func(ctx context.Context, userID uuid.UUID) ([]domain.RoleAssignment, error)
	UpsertFunc               func(ctx context.Context, assignment *domain.RoleAssignment) error
	UpdateFunc               func(ctx context.Context, assignment *domain.RoleAssignment) error
	FindPendingPaginatedFunc func(ctx context.Context, search string, page, rows int) ([]domain.RoleAssignment, int64, error)
	MarkExpiredFunc          func(ctx context.Context, now time.Time) (int64, error)
}

func (m *MockRoleAssignmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.RoleAssignment, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *MockRoleAssignmentRepository) FindByUserAndRole(ctx context.Context, userID uuid.UUID, roleID int) (*domain.RoleAssignment, error) {
	if m.FindByUserAndRoleFunc != nil {
		return m.FindByUserAndRoleFunc(ctx, userID, roleID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *MockRoleAssignmentRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]domain.RoleAssignment, error) {
	if m.FindByUserFunc != nil {
		return m.FindByUserFunc(ctx, userID)
	}
	return []domain.RoleAssignment{}, nil
}

func (m *MockRoleAssignmentRepository) Upsert(ctx context.Context, assignment *domain.RoleAssignment) error {
	if m.UpsertFunc != nil {
		return m.UpsertFunc(ctx, assignment)
	}
	return nil
}

func (m *MockRoleAssignmentRepository) Update(ctx context.Context, assignment *domain.RoleAssignment) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, assignment)
	}
	return nil
}

func (m *MockRoleAssignmentRepository) FindPendingPaginated(ctx context.Context, search string, page, rows int) ([]domain.RoleAssignment, int64, error) {
	if m.FindPendingPaginatedFunc != nil {
		return m.FindPendingPaginatedFunc(ctx, search, page, rows)
	}
	return []domain.RoleAssignment{}, 0, nil
}

func (m *MockRoleAssignmentRepository) MarkExpired(ctx context.Context, now time.Time) (int64, error) {
	if m.MarkExpiredFunc != nil {
		return m.MarkExpiredFunc(ctx, now)
	}
	return 0, nil
}

// MockNewsRepository is a mock implementation of NewsRepository
type MockNewsRepository struct {
	CreateFunc     func(ctx context.Context, news *domain.News) error
	FindByIDFunc   func(ctx context.Context, id uuid.UUID) (*domain.News, error)
	ListLatestFunc func(ctx context.Context, limit int) ([]domain.News, error)
}

func (m *MockNewsRepository) Create(ctx context.Context, news *domain.News) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, news)
	}
	return nil
}

func (m *MockNewsRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.News, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *MockNewsRepository) ListLatest(ctx context.Context, limit int) ([]domain.News, error) {
	if m.ListLatestFunc != nil {
		return m.ListLatestFunc(ctx, limit)
	}
	return []domain.News{}, nil
}

// MockActivityRepository is a mock implementation of ActivityRepository
type MockActivityRepository struct {
	CreateFunc           func(ctx context.Context, activity *domain.Activity) error
	FindByIDFunc         func(ctx context.Context, id uuid.UUID) (*domain.Activity, error)
	ListByNewsFunc       func(ctx context.Context, newsID uuid.UUID) ([]domain.Activity, error)
	FindTimeSlotByIDFunc func(ctx context.Context, slotID uuid.UUID) (*domain.ActivityTimeSlot, error)
}

func (m *MockActivityRepository) Create(ctx context.Context, activity *domain.Activity) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, activity)
	}
	return nil
}

func (m *MockActivityRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Activity, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *MockActivityRepository) ListByNews(ctx context.Context, newsID uuid.UUID) ([]domain.Activity, error) {
	if m.ListByNewsFunc != nil {
		return m.ListByNewsFunc(ctx, newsID)
	}
	return []domain.Activity{}, nil
}

func (m *MockActivityRepository) FindTimeSlotByID(ctx context.Context, slotID uuid.UUID) (*domain.ActivityTimeSlot, error) {
	if m.FindTimeSlotByIDFunc != nil {
		return m.FindTimeSlotByIDFunc(ctx, slotID)
	}
	return nil, gorm.ErrRecordNotFound
}

// MockParticipantRepository is a mock implementation of ParticipantRepository
type MockParticipantRepository struct {
	FindByIDFunc              func(ctx context.Context, id uuid.UUID) (*domain.ActivityParticipant, error)
	FindByUserAndActivityFunc func(ctx context.Context, userID, activityID uuid.UUID) (*domain.ActivityParticipant, error)
	RegisterSlotsFunc         func(ctx context.Context, userID, activityID uuid.UUID, selections []repository.SlotRegistration) (*domain.ActivityParticipant, error)
	CancelSlotsFunc           func(ctx context.Context, userID, activityID uuid.UUID, slotIDs []uuid.UUID) (bool, error)
	CountBySlotFunc           func(ctx context.Context, slotID uuid.UUID) (int64, error)
	CountBySlotsFunc          func(ctx context.Context, slotIDs []uuid.UUID) (map[uuid.UUID]int64, error)
	ListByActivityFunc        func(ctx context.Context, activityID uuid.UUID) ([]domain.ActivityParticipant, error)
	FindSlotByIDFunc          func(ctx context.Context, slotRowID uuid.UUID) (*domain.ActivityParticipantSlot, error)
	UpdateSlotFunc            func(ctx context.Context, slot *domain.ActivityParticipantSlot) error
	KickFunc                  func(ctx context.Context, participantID, activityID uuid.UUID, reason string) error
}

func (m *MockParticipantRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.ActivityParticipant, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *MockParticipantRepository) FindByUserAndActivity(ctx context.Context, userID, activityID uuid.UUID) (*domain.ActivityParticipant, error) {
	if m.FindByUserAndActivityFunc != nil {
		return m.FindByUserAndActivityFunc(ctx, userID, activityID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *MockParticipantRepository) RegisterSlots(ctx context.Context, userID, activityID uuid.UUID, selections []repository.SlotRegistration) (*domain.ActivityParticipant, error) {
	if m.RegisterSlotsFunc != nil {
		return m.RegisterSlotsFunc(ctx, userID, activityID, selections)
	}
	return &domain.ActivityParticipant{}, nil
}

func (m *MockParticipantRepository) CancelSlots(ctx context.Context, userID, activityID uuid.UUID, slotIDs []uuid.UUID) (bool, error) {
	if m.CancelSlotsFunc != nil {
		return m.CancelSlotsFunc(ctx, userID, activityID, slotIDs)
	}
	return false, nil
}

func (m *MockParticipantRepository) CountBySlot(ctx context.Context, slotID uuid.UUID) (int64, error) {
	if m.CountBySlotFunc != nil {
		return m.CountBySlotFunc(ctx, slotID)
	}
	return 0, nil
}

func (m *MockParticipantRepository) CountBySlots(ctx context.Context, slotIDs []uuid.UUID) (map[uuid.UUID]int64, error) {
	if m.CountBySlotsFunc != nil {
		return m.CountBySlotsFunc(ctx, slotIDs)
	}
	counts := make(map[uuid.UUID]int64, len(slotIDs))
	for _, id := range slotIDs {
		counts[id] = 0
	}
	return counts, nil
}

func (m *MockParticipantRepository) ListByActivity(ctx context.Context, activityID uuid.UUID) ([]domain.ActivityParticipant, error) {
	if m.ListByActivityFunc != nil {
		return m.ListByActivityFunc(ctx, activityID)
	}
	return []domain.ActivityParticipant{}, nil
}

func (m *MockParticipantRepository) FindSlotByID(ctx context.Context, slotRowID uuid.UUID) (*domain.ActivityParticipantSlot, error) {
	if m.FindSlotByIDFunc != nil {
		return m.FindSlotByIDFunc(ctx, slotRowID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *MockParticipantRepository) UpdateSlot(ctx context.Context, slot *domain.ActivityParticipantSlot) error {
	if m.UpdateSlotFunc != nil {
		return m.UpdateSlotFunc(ctx, slot)
	}
	return nil
}

func (m *MockParticipantRepository) Kick(ctx context.Context, participantID, activityID uuid.UUID, reason string) error {
	if m.KickFunc != nil {
		return m.KickFunc(ctx, participantID, activityID, reason)
	}
	return nil
}

// MockMailer is a mock implementation of client.Mailer
type MockMailer struct {
	SendFunc func(to, subject, body string) error
}

func (m *MockMailer) Send(to, subject, body string) error {
	if m.SendFunc != nil {
		return m.SendFunc(to, subject, body)
	}
	return nil
}

// MockRoleService is a mock implementation of RoleService for services that
// only consume the role check
type MockRoleService struct {
	HasActiveRoleFunc func(ctx context.Context, userID uuid.UUID, roleName string) (bool, error)
}

func (m *MockRoleService) ListWithStatus(ctx context.Context, userID uuid.UUID) ([]dto.RoleWithStatusResponse, error) {
	return []dto.RoleWithStatusResponse{}, nil
}

func (m *MockRoleService) SubmitRequest(ctx context.Context, userID uuid.UUID, req *dto.SubmitRoleRequestRequest) (*dto.SubmitRoleRequestResponse, error) {
	return &dto.SubmitRoleRequestResponse{}, nil
}

func (m *MockRoleService) ListPending(ctx context.Context, search string, page, rows int) (*dto.PendingRoleRequestListResponse, error) {
	return &dto.PendingRoleRequestListResponse{}, nil
}

func (m *MockRoleService) RequestDetail(ctx context.Context, requestID uuid.UUID) (*dto.PendingRoleRequestResponse, error) {
	return nil, gorm.ErrRecordNotFound
}

func (m *MockRoleService) Decide(ctx context.Context, requestID uuid.UUID, req *dto.DecideRoleRequestRequest) error {
	return nil
}

func (m *MockRoleService) HasActiveRole(ctx context.Context, userID uuid.UUID, roleName string) (bool, error) {
	if m.HasActiveRoleFunc != nil {
		return m.HasActiveRoleFunc(ctx, userID, roleName)
	}
	return false, nil
}
