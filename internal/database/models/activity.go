package models

import (
	"context"
	"fmt"
	"time"

	"github.com/uptrace/bun"
	"go.uber.org/zap"

	"github.com/axoguild/axobot/internal/database/dbretry"
	"github.com/axoguild/axobot/internal/database/types"
)

// ActivityModel handles database operations for the audit log.
type ActivityModel struct {
	db     *bun.DB
	logger *zap.Logger
}

// NewActivity creates a repository with database access for audit entries.
func NewActivity(db *bun.DB, logger *zap.Logger) *ActivityModel {
	return &ActivityModel{
		db:     db,
		logger: logger.Named("db_activity"),
	}
}

// Log stores one audit entry. Audit writes are best effort: failures are
// logged, never propagated, so they cannot fail the operation they describe.
func (r *ActivityModel) Log(ctx context.Context, entry *types.ActivityLog) {
	entry.CreatedAt = time.Now()

	err := dbretry.NoResult(ctx, func(ctx context.Context) error {
		_, err := r.db.NewInsert().Model(entry).Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to log activity: %w", err)
		}
		return nil
	})
	if err != nil {
		r.logger.Error("Failed to log activity",
			zap.Error(err),
			zap.String("action", entry.Action),
			zap.Uint64("userID", entry.UserID),
			zap.Uint64("moderatorID", entry.ModeratorID))
		return
	}

	r.logger.Debug("Logged activity",
		zap.String("action", entry.Action),
		zap.Uint64("userID", entry.UserID),
		zap.Uint64("moderatorID", entry.ModeratorID))
}

// GetRecent returns the most recent audit entries, newest first.
func (r *ActivityModel) GetRecent(ctx context.Context, limit int) ([]*types.ActivityLog, error) {
	return dbretry.Operation(ctx, func(ctx context.Context) ([]*types.ActivityLog, error) {
		var entries []*types.ActivityLog
		err := r.db.NewSelect().
			Model(&entries).
			Order("created_at DESC").
			Limit(limit).
			Scan(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to get audit entries: %w", err)
		}
		return entries, nil
	})
}
