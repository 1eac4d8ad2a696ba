package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"volunteer-api/internal/domain"
)

// SlotFullError is returned when a time slot has no seats left
type SlotFullError struct {
	SlotID uuid.UUID
}

func (e *SlotFullError) Error() string {
	return fmt.Sprintf("Timeslot %s is full", e.SlotID)
}

// SlotRegistration carries one slot selection with logistics preferences
type SlotRegistration struct {
	TimeSlotID      uuid.UUID
	MealWanted      *bool
	MealReason      *string
	TransportWanted *bool
	TransportReason *string
}

// ParticipantRepository defines the interface for participant data access
type ParticipantRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*domain.ActivityParticipant, error)
	FindByUserAndActivity(ctx context.Context, userID, activityID uuid.UUID) (*domain.ActivityParticipant, error)
	RegisterSlots(ctx context.Context, userID, activityID uuid.UUID, selections []SlotRegistration) (*domain.ActivityParticipant, error)
	CancelSlots(ctx context.Context, userID, activityID uuid.UUID, slotIDs []uuid.UUID) (bool, error)
	CountBySlot(ctx context.Context, slotID uuid.UUID) (int64, error)
	CountBySlots(ctx context.Context, slotIDs []uuid.UUID) (map[uuid.UUID]int64, error)
	ListByActivity(ctx context.Context, activityID uuid.UUID) ([]domain.ActivityParticipant, error)
	FindSlotByID(ctx context.Context, slotRowID uuid.UUID) (*domain.ActivityParticipantSlot, error)
	UpdateSlot(ctx context.Context, slot *domain.ActivityParticipantSlot) error
	Kick(ctx context.Context, participantID, activityID uuid.UUID, reason string) error
}

// participantRepositoryImpl is the GORM implementation of ParticipantRepository
type participantRepositoryImpl struct {
	db *gorm.DB
}

// NewParticipantRepository creates a new instance of ParticipantRepository
func NewParticipantRepository(db *gorm.DB) ParticipantRepository {
	return &participantRepositoryImpl{db: db}
}

// FindByID finds a participant by ID with user and slots preloaded
func (r *participantRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*domain.ActivityParticipant, error) {
	var participant domain.ActivityParticipant
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Slots").
		First(&participant, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &participant, nil
}

// FindByUserAndActivity finds a participant row for a (user, activity) pair
func (r *participantRepositoryImpl) FindByUserAndActivity(ctx context.Context, userID, activityID uuid.UUID) (*domain.ActivityParticipant, error) {
	var participant domain.ActivityParticipant
	err := r.db.WithContext(ctx).
		Preload("Slots").
		Preload("Slots.TimeSlot").
		Where("user_id = ? AND activity_id = ?", userID, activityID).
		First(&participant).Error
	if err != nil {
		return nil, err
	}
	return &participant, nil
}

// RegisterSlots registers the user into the selected time slots of one
// activity inside a single transaction. Each slot is admitted against the
// activity's max participant ceiling while its row is locked; the first
// full slot aborts the whole transaction with SlotFullError.
func (r *participantRepositoryImpl) RegisterSlots(ctx context.Context, userID, activityID uuid.UUID, selections []SlotRegistration) (*domain.ActivityParticipant, error) {
	var participant domain.ActivityParticipant

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var activity domain.Activity
		if err := tx.First(&activity, "id = ?", activityID).Error; err != nil {
			return err
		}

		// Ensure the participant row exists for this (user, activity)
		if err := tx.Where("user_id = ? AND activity_id = ?", userID, activityID).
			First(&participant).Error; err != nil {
			if err != gorm.ErrRecordNotFound {
				return err
			}
			participant = domain.ActivityParticipant{
				UserID:     userID,
				ActivityID: activityID,
				JoinedAt:   time.Now().UTC(),
			}
			if err := tx.Create(&participant).Error; err != nil {
				return err
			}
		}

		for _, sel := range selections {
			slotQuery := tx
			// Row locks are a no-op on sqlite, which runs serialized anyway
			if tx.Dialector.Name() == "postgres" {
				slotQuery = tx.Clauses(clause.Locking{Strength: "UPDATE"})
			}

			var slot domain.ActivityTimeSlot
			if err := slotQuery.First(&slot, "id = ? AND activity_id = ?", sel.TimeSlotID, activityID).Error; err != nil {
				return err
			}

			// Count seats taken by other participants under the lock
			var taken int64
			if err := tx.Model(&domain.ActivityParticipantSlot{}).
				Where("time_slot_id = ? AND participant_id <> ?", slot.ID, participant.ID).
				Count(&taken).Error; err != nil {
				return err
			}
			if taken >= int64(activity.MaxParticipants) {
				return &SlotFullError{SlotID: slot.ID}
			}

			row := domain.ActivityParticipantSlot{
				ParticipantID:   participant.ID,
				TimeSlotID:      slot.ID,
				MealWanted:      sel.MealWanted,
				MealReason:      sel.MealReason,
				TransportWanted: sel.TransportWanted,
				TransportReason: sel.TransportReason,
			}
			if err := tx.Clauses(clause.OnConflict{
				Columns: []clause.Column{{Name: "participant_id"}, {Name: "time_slot_id"}},
				DoUpdates: clause.AssignmentColumns([]string{
					"meal_wanted", "meal_reason",
					"transport_wanted", "transport_reason",
					"updated_at",
				}),
			}).Create(&row).Error; err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}
	return &participant, nil
}

// CancelSlots removes the given slot registrations for the user. When no
// registrations remain the participant row itself is removed; the second
// return value reports whether that happened.
func (r *participantRepositoryImpl) CancelSlots(ctx context.Context, userID, activityID uuid.UUID, slotIDs []uuid.UUID) (bool, error) {
	participantRemoved := false

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var participant domain.ActivityParticipant
		if err := tx.Where("user_id = ? AND activity_id = ?", userID, activityID).
			First(&participant).Error; err != nil {
			return err
		}

		if err := tx.Where("participant_id = ? AND time_slot_id IN ?", participant.ID, slotIDs).
			Delete(&domain.ActivityParticipantSlot{}).Error; err != nil {
			return err
		}

		var remaining int64
		if err := tx.Model(&domain.ActivityParticipantSlot{}).
			Where("participant_id = ?", participant.ID).
			Count(&remaining).Error; err != nil {
			return err
		}
		if remaining == 0 {
			if err := tx.Delete(&domain.ActivityParticipant{}, "id = ?", participant.ID).Error; err != nil {
				return err
			}
			participantRemoved = true
		}

		return nil
	})
	return participantRemoved, err
}

// CountBySlot counts registrations in a single time slot
func (r *participantRepositoryImpl) CountBySlot(ctx context.Context, slotID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.ActivityParticipantSlot{}).
		Where("time_slot_id = ?", slotID).
		Count(&count).Error
	return count, err
}

// CountBySlots counts registrations per time slot. Slots with no
// registrations map to zero.
func (r *participantRepositoryImpl) CountBySlots(ctx context.Context, slotIDs []uuid.UUID) (map[uuid.UUID]int64, error) {
	counts := make(map[uuid.UUID]int64, len(slotIDs))
	for _, id := range slotIDs {
		counts[id] = 0
	}
	if len(slotIDs) == 0 {
		return counts, nil
	}

	type slotCount struct {
		TimeSlotID uuid.UUID
		Total      int64
	}
	var rows []slotCount
	err := r.db.WithContext(ctx).
		Model(&domain.ActivityParticipantSlot{}).
		Select("time_slot_id, COUNT(*) AS total").
		Where("time_slot_id IN ?", slotIDs).
		Group("time_slot_id").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		counts[row.TimeSlotID] = row.Total
	}
	return counts, nil
}

// ListByActivity returns all participants of an activity with their users
// and slot registrations preloaded
func (r *participantRepositoryImpl) ListByActivity(ctx context.Context, activityID uuid.UUID) ([]domain.ActivityParticipant, error) {
	var participants []domain.ActivityParticipant
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Slots").
		Preload("Slots.TimeSlot").
		Where("activity_id = ?", activityID).
		Order("joined_at ASC").
		Find(&participants).Error
	return participants, err
}

// FindSlotByID finds a participant slot row by its own ID
func (r *participantRepositoryImpl) FindSlotByID(ctx context.Context, slotRowID uuid.UUID) (*domain.ActivityParticipantSlot, error) {
	var slot domain.ActivityParticipantSlot
	if err := r.db.WithContext(ctx).First(&slot, "id = ?", slotRowID).Error; err != nil {
		return nil, err
	}
	return &slot, nil
}

// UpdateSlot updates a participant slot row
func (r *participantRepositoryImpl) UpdateSlot(ctx context.Context, slot *domain.ActivityParticipantSlot) error {
	return r.db.WithContext(ctx).Save(slot).Error
}

// Kick removes a participant from an activity in one transaction: slot
// registrations first, then the participant row, then the audit record.
func (r *participantRepositoryImpl) Kick(ctx context.Context, participantID, activityID uuid.UUID, reason string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var participant domain.ActivityParticipant
		if err := tx.Where("id = ? AND activity_id = ?", participantID, activityID).
			First(&participant).Error; err != nil {
			return err
		}

		if err := tx.Where("participant_id = ?", participant.ID).
			Delete(&domain.ActivityParticipantSlot{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&domain.ActivityParticipant{}, "id = ?", participant.ID).Error; err != nil {
			return err
		}

		kickLog := domain.ActivityKickLog{
			ID:            uuid.New(),
			ParticipantID: participant.ID,
			ActivityID:    activityID,
			Reason:        reason,
			CreatedAt:     time.Now().UTC(),
		}
		return tx.Create(&kickLog).Error
	})
}
