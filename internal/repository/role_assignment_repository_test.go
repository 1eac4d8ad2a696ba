package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"volunteer-api/internal/domain"
)

func setupRoleTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&domain.User{},
		&domain.Role{},
		&domain.RoleAssignment{},
	))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, email, username string) *domain.User {
	t.Helper()
	user := &domain.User{
		Email:        email,
		Username:     username,
		PasswordHash: "x",
		IsActive:     true,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func seedRole(t *testing.T, db *gorm.DB, name string) *domain.Role {
	t.Helper()
	role := &domain.Role{Name: name}
	require.NoError(t, db.Create(role).Error)
	return role
}

func TestRoleAssignmentRepository_Upsert(t *testing.T) {
	ctx := context.Background()
	db := setupRoleTestDB(t)
	repo := NewRoleAssignmentRepository(db)

	user := seedUser(t, db, "a@example.com", "a")
	role := seedRole(t, db, domain.RolePublisher)

	msg := "first application"
	require.NoError(t, repo.Upsert(ctx, &domain.RoleAssignment{
		UserID:         user.ID,
		RoleID:         role.ID,
		Status:         domain.RoleStatusPending,
		RequestMessage: &msg,
	}))

	first, err := repo.FindByUserAndRole(ctx, user.ID, role.ID)
	require.NoError(t, err)

	// Decide the request, leaving decision fields behind
	until := time.Now().UTC().Add(90 * 24 * time.Hour)
	first.Status = domain.RoleStatusActive
	first.ActiveUntil = &until
	require.NoError(t, repo.Update(ctx, first))

	// A renewal reuses the same row and clears the old decision fields
	msg2 := "renewal"
	require.NoError(t, repo.Upsert(ctx, &domain.RoleAssignment{
		UserID:         user.ID,
		RoleID:         role.ID,
		Status:         domain.RoleStatusPending,
		RequestMessage: &msg2,
	}))

	var count int64
	db.Model(&domain.RoleAssignment{}).Where("user_id = ? AND role_id = ?", user.ID, role.ID).Count(&count)
	assert.Equal(t, int64(1), count)

	second, err := repo.FindByUserAndRole(ctx, user.ID, role.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, domain.RoleStatusPending, second.Status)
	assert.Nil(t, second.ActiveUntil)
	if assert.NotNil(t, second.RequestMessage) {
		assert.Equal(t, "renewal", *second.RequestMessage)
	}
}

func TestRoleAssignmentRepository_FindPendingPaginated(t *testing.T) {
	ctx := context.Background()
	db := setupRoleTestDB(t)
	repo := NewRoleAssignmentRepository(db)

	role := seedRole(t, db, domain.RoleOrganizer)
	alice := seedUser(t, db, "alice@example.com", "alice")
	bob := seedUser(t, db, "bob@example.com", "bob")
	carol := seedUser(t, db, "carol@example.com", "carol")

	for _, user := range []*domain.User{alice, bob, carol} {
		require.NoError(t, repo.Upsert(ctx, &domain.RoleAssignment{
			UserID: user.ID,
			RoleID: role.ID,
			Status: domain.RoleStatusPending,
		}))
	}

	// A decided request must not show up in the queue
	decided, err := repo.FindByUserAndRole(ctx, carol.ID, role.ID)
	require.NoError(t, err)
	decided.Status = domain.RoleStatusRejected
	require.NoError(t, repo.Update(ctx, decided))

	t.Run("lists pending requests with the applicant preloaded", func(t *testing.T) {
		assignments, total, err := repo.FindPendingPaginated(ctx, "", 1, 10)
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
		require.Len(t, assignments, 2)
		require.NotNil(t, assignments[0].User)
		require.NotNil(t, assignments[0].Role)
	})

	t.Run("search matches email case-insensitively", func(t *testing.T) {
		assignments, total, err := repo.FindPendingPaginated(ctx, "ALICE", 1, 10)
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, assignments, 1)
		assert.Equal(t, alice.ID, assignments[0].UserID)
	})

	t.Run("pagination bounds the page size", func(t *testing.T) {
		assignments, total, err := repo.FindPendingPaginated(ctx, "", 1, 1)
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
		assert.Len(t, assignments, 1)

		rest, _, err := repo.FindPendingPaginated(ctx, "", 2, 1)
		require.NoError(t, err)
		require.Len(t, rest, 1)
		assert.NotEqual(t, assignments[0].ID, rest[0].ID)
	})

	t.Run("no match returns an empty page", func(t *testing.T) {
		assignments, total, err := repo.FindPendingPaginated(ctx, "nobody", 1, 10)
		require.NoError(t, err)
		assert.Equal(t, int64(0), total)
		assert.Empty(t, assignments)
	})
}

func TestRoleAssignmentRepository_MarkExpired(t *testing.T) {
	ctx := context.Background()
	db := setupRoleTestDB(t)
	repo := NewRoleAssignmentRepository(db)

	role := seedRole(t, db, domain.RoleVolunteer)
	now := time.Now().UTC()
	past := now.Add(-time.Hour)
	future := now.Add(90 * 24 * time.Hour)

	stale := &domain.RoleAssignment{
		UserID: seedUser(t, db, "stale@example.com", "stale").ID,
		RoleID: role.ID, Status: domain.RoleStatusActive, ActiveUntil: &past,
	}
	current := &domain.RoleAssignment{
		UserID: seedUser(t, db, "current@example.com", "current").ID,
		RoleID: role.ID, Status: domain.RoleStatusActive, ActiveUntil: &future,
	}
	openEnded := &domain.RoleAssignment{
		UserID: seedUser(t, db, "open@example.com", "open").ID,
		RoleID: role.ID, Status: domain.RoleStatusActive,
	}
	pending := &domain.RoleAssignment{
		UserID: seedUser(t, db, "pending@example.com", "pending").ID,
		RoleID: role.ID, Status: domain.RoleStatusPending,
	}
	for _, a := range []*domain.RoleAssignment{stale, current, openEnded, pending} {
		require.NoError(t, db.Create(a).Error)
	}

	touched, err := repo.MarkExpired(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, int64(1), touched)

	reloaded, err := repo.FindByID(ctx, stale.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleStatusExpired, reloaded.Status)

	for _, a := range []*domain.RoleAssignment{current, openEnded} {
		got, err := repo.FindByID(ctx, a.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.RoleStatusActive, got.Status)
	}

	got, err := repo.FindByID(ctx, pending.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleStatusPending, got.Status)

	// A second sweep finds nothing left to do
	touched, err = repo.MarkExpired(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, int64(0), touched)
}
