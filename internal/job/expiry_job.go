package job

import (
	"context"
	"time"

	"go.uber.org/zap"

	"volunteer-api/internal/database"
	"volunteer-api/internal/repository"
)

// ExpiryJob persists the expiry of role grants whose active window has
// passed. Reads already derive the expired state on the fly; this sweep
// keeps the stored rows in line with it.
type ExpiryJob struct {
	logger *zap.Logger
}

// NewExpiryJob creates a new ExpiryJob instance
func NewExpiryJob(logger *zap.Logger) *ExpiryJob {
	return &ExpiryJob{logger: logger}
}

// Run executes the expiry sweep. The database connection is resolved per
// run so a sweep scheduled before the connection came up still works.
func (j *ExpiryJob) Run() {
	db := database.GetDB()
	if db == nil {
		j.logger.Warn("Skipping expiry sweep, database not connected")
		return
	}

	ctx := context.Background()
	assignmentRepo := repository.NewRoleAssignmentRepository(db)

	expired, err := assignmentRepo.MarkExpired(ctx, time.Now().UTC())
	if err != nil {
		j.logger.Error("Failed to expire role grants", zap.Error(err))
		return
	}
	if expired > 0 {
		j.logger.Info("Expired role grants", zap.Int64("count", expired))
	}
}
