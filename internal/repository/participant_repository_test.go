package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"volunteer-api/internal/domain"
)

func setupParticipantTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&domain.User{},
		&domain.Activity{},
		&domain.ActivityTimeSlot{},
		&domain.ActivityParticipant{},
		&domain.ActivityParticipantSlot{},
		&domain.ActivityKickLog{},
	))
	return db
}

func seedActivity(t *testing.T, db *gorm.DB, maxParticipants, slots int) (*domain.Activity, []domain.ActivityTimeSlot) {
	t.Helper()

	activity := &domain.Activity{
		NewsID:          uuid.New(),
		CreatedBy:       uuid.New(),
		Title:           "Beach cleanup",
		MaxParticipants: maxParticipants,
	}
	require.NoError(t, db.Create(activity).Error)

	timeSlots := make([]domain.ActivityTimeSlot, 0, slots)
	for i := 0; i < slots; i++ {
		slot := domain.ActivityTimeSlot{
			ActivityID: activity.ID,
			Date:       "2026-04-01",
			StartTime:  "09:00",
			EndTime:    "12:00",
		}
		require.NoError(t, db.Create(&slot).Error)
		timeSlots = append(timeSlots, slot)
	}
	return activity, timeSlots
}

func TestParticipantRepository_RegisterSlots(t *testing.T) {
	ctx := context.Background()

	t.Run("rejects registration into a full slot", func(t *testing.T) {
		db := setupParticipantTestDB(t)
		repo := NewParticipantRepository(db)
		activity, slots := seedActivity(t, db, 2, 1)

		for i := 0; i < 2; i++ {
			_, err := repo.RegisterSlots(ctx, uuid.New(), activity.ID, []SlotRegistration{
				{TimeSlotID: slots[0].ID},
			})
			require.NoError(t, err)
		}

		_, err := repo.RegisterSlots(ctx, uuid.New(), activity.ID, []SlotRegistration{
			{TimeSlotID: slots[0].ID},
		})

		var full *SlotFullError
		if assert.ErrorAs(t, err, &full) {
			assert.Equal(t, slots[0].ID, full.SlotID)
		}

		// The failed attempt must leave nothing behind
		var participants int64
		db.Model(&domain.ActivityParticipant{}).Where("activity_id = ?", activity.ID).Count(&participants)
		assert.Equal(t, int64(2), participants)
	})

	t.Run("a full slot aborts the whole registration", func(t *testing.T) {
		db := setupParticipantTestDB(t)
		repo := NewParticipantRepository(db)
		activity, slots := seedActivity(t, db, 1, 2)

		_, err := repo.RegisterSlots(ctx, uuid.New(), activity.ID, []SlotRegistration{
			{TimeSlotID: slots[1].ID},
		})
		require.NoError(t, err)

		userID := uuid.New()
		_, err = repo.RegisterSlots(ctx, userID, activity.ID, []SlotRegistration{
			{TimeSlotID: slots[0].ID},
			{TimeSlotID: slots[1].ID},
		})

		var full *SlotFullError
		assert.ErrorAs(t, err, &full)

		// Nothing from the aborted request may be visible, including the
		// registration into the slot that still had room
		count, countErr := repo.CountBySlot(ctx, slots[0].ID)
		require.NoError(t, countErr)
		assert.Equal(t, int64(0), count)

		_, findErr := repo.FindByUserAndActivity(ctx, userID, activity.ID)
		assert.True(t, errors.Is(findErr, gorm.ErrRecordNotFound))
	})

	t.Run("re-registering a held slot updates preferences instead of failing", func(t *testing.T) {
		db := setupParticipantTestDB(t)
		repo := NewParticipantRepository(db)
		activity, slots := seedActivity(t, db, 1, 1)

		userID := uuid.New()
		wanted := true
		_, err := repo.RegisterSlots(ctx, userID, activity.ID, []SlotRegistration{
			{TimeSlotID: slots[0].ID},
		})
		require.NoError(t, err)

		// The slot is now at capacity, held by this same user
		_, err = repo.RegisterSlots(ctx, userID, activity.ID, []SlotRegistration{
			{TimeSlotID: slots[0].ID, MealWanted: &wanted},
		})
		require.NoError(t, err)

		participant, err := repo.FindByUserAndActivity(ctx, userID, activity.ID)
		require.NoError(t, err)
		require.Len(t, participant.Slots, 1)
		if assert.NotNil(t, participant.Slots[0].MealWanted) {
			assert.True(t, *participant.Slots[0].MealWanted)
		}

		count, err := repo.CountBySlot(ctx, slots[0].ID)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})

	t.Run("unknown activity fails", func(t *testing.T) {
		db := setupParticipantTestDB(t)
		repo := NewParticipantRepository(db)

		_, err := repo.RegisterSlots(ctx, uuid.New(), uuid.New(), []SlotRegistration{
			{TimeSlotID: uuid.New()},
		})
		assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
	})

	t.Run("slot from another activity fails", func(t *testing.T) {
		db := setupParticipantTestDB(t)
		repo := NewParticipantRepository(db)
		activity, _ := seedActivity(t, db, 5, 1)
		_, otherSlots := seedActivity(t, db, 5, 1)

		_, err := repo.RegisterSlots(ctx, uuid.New(), activity.ID, []SlotRegistration{
			{TimeSlotID: otherSlots[0].ID},
		})
		assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
	})
}

func TestParticipantRepository_CancelSlots(t *testing.T) {
	ctx := context.Background()

	t.Run("cancelling some slots keeps the participant", func(t *testing.T) {
		db := setupParticipantTestDB(t)
		repo := NewParticipantRepository(db)
		activity, slots := seedActivity(t, db, 5, 2)

		userID := uuid.New()
		_, err := repo.RegisterSlots(ctx, userID, activity.ID, []SlotRegistration{
			{TimeSlotID: slots[0].ID},
			{TimeSlotID: slots[1].ID},
		})
		require.NoError(t, err)

		removed, err := repo.CancelSlots(ctx, userID, activity.ID, []uuid.UUID{slots[0].ID})
		require.NoError(t, err)
		assert.False(t, removed)

		participant, err := repo.FindByUserAndActivity(ctx, userID, activity.ID)
		require.NoError(t, err)
		assert.Len(t, participant.Slots, 1)
	})

	t.Run("cancelling the last slot removes the participant row", func(t *testing.T) {
		db := setupParticipantTestDB(t)
		repo := NewParticipantRepository(db)
		activity, slots := seedActivity(t, db, 5, 1)

		userID := uuid.New()
		_, err := repo.RegisterSlots(ctx, userID, activity.ID, []SlotRegistration{
			{TimeSlotID: slots[0].ID},
		})
		require.NoError(t, err)

		removed, err := repo.CancelSlots(ctx, userID, activity.ID, []uuid.UUID{slots[0].ID})
		require.NoError(t, err)
		assert.True(t, removed)

		_, err = repo.FindByUserAndActivity(ctx, userID, activity.ID)
		assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
	})

	t.Run("cancel then re-register works", func(t *testing.T) {
		db := setupParticipantTestDB(t)
		repo := NewParticipantRepository(db)
		activity, slots := seedActivity(t, db, 1, 1)

		userID := uuid.New()
		_, err := repo.RegisterSlots(ctx, userID, activity.ID, []SlotRegistration{
			{TimeSlotID: slots[0].ID},
		})
		require.NoError(t, err)

		_, err = repo.CancelSlots(ctx, userID, activity.ID, []uuid.UUID{slots[0].ID})
		require.NoError(t, err)

		_, err = repo.RegisterSlots(ctx, userID, activity.ID, []SlotRegistration{
			{TimeSlotID: slots[0].ID},
		})
		require.NoError(t, err)

		count, err := repo.CountBySlot(ctx, slots[0].ID)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})

	t.Run("unregistered user gets not found", func(t *testing.T) {
		db := setupParticipantTestDB(t)
		repo := NewParticipantRepository(db)
		activity, slots := seedActivity(t, db, 5, 1)

		_, err := repo.CancelSlots(ctx, uuid.New(), activity.ID, []uuid.UUID{slots[0].ID})
		assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
	})
}

func TestParticipantRepository_CountBySlots(t *testing.T) {
	ctx := context.Background()
	db := setupParticipantTestDB(t)
	repo := NewParticipantRepository(db)
	activity, slots := seedActivity(t, db, 5, 2)

	for i := 0; i < 3; i++ {
		_, err := repo.RegisterSlots(ctx, uuid.New(), activity.ID, []SlotRegistration{
			{TimeSlotID: slots[0].ID},
		})
		require.NoError(t, err)
	}

	counts, err := repo.CountBySlots(ctx, []uuid.UUID{slots[0].ID, slots[1].ID})
	require.NoError(t, err)
	assert.Equal(t, int64(3), counts[slots[0].ID])
	assert.Equal(t, int64(0), counts[slots[1].ID])
}

func TestParticipantRepository_Kick(t *testing.T) {
	ctx := context.Background()

	t.Run("removes the participant and writes the audit record", func(t *testing.T) {
		db := setupParticipantTestDB(t)
		repo := NewParticipantRepository(db)
		activity, slots := seedActivity(t, db, 5, 2)

		userID := uuid.New()
		participant, err := repo.RegisterSlots(ctx, userID, activity.ID, []SlotRegistration{
			{TimeSlotID: slots[0].ID},
			{TimeSlotID: slots[1].ID},
		})
		require.NoError(t, err)

		err = repo.Kick(ctx, participant.ID, activity.ID, "disruptive behavior")
		require.NoError(t, err)

		_, err = repo.FindByUserAndActivity(ctx, userID, activity.ID)
		assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))

		for _, slot := range slots {
			count, countErr := repo.CountBySlot(ctx, slot.ID)
			require.NoError(t, countErr)
			assert.Equal(t, int64(0), count)
		}

		var logs []domain.ActivityKickLog
		require.NoError(t, db.Where("activity_id = ?", activity.ID).Find(&logs).Error)
		if assert.Len(t, logs, 1) {
			assert.Equal(t, participant.ID, logs[0].ParticipantID)
			assert.Equal(t, "disruptive behavior", logs[0].Reason)
		}
	})

	t.Run("participant from another activity gets not found", func(t *testing.T) {
		db := setupParticipantTestDB(t)
		repo := NewParticipantRepository(db)
		activity, slots := seedActivity(t, db, 5, 1)
		otherActivity, _ := seedActivity(t, db, 5, 1)

		participant, err := repo.RegisterSlots(ctx, uuid.New(), activity.ID, []SlotRegistration{
			{TimeSlotID: slots[0].ID},
		})
		require.NoError(t, err)

		err = repo.Kick(ctx, participant.ID, otherActivity.ID, "wrong activity")
		assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
	})
}
