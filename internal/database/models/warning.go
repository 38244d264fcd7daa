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

// WarningModel handles database operations for moderator warnings.
type WarningModel struct {
	db     *bun.DB
	logger *zap.Logger
}

// NewWarning creates a repository with database access for warnings.
func NewWarning(db *bun.DB, logger *zap.Logger) *WarningModel {
	return &WarningModel{
		db:     db,
		logger: logger.Named("db_warning"),
	}
}

// Add appends a warning and bumps the mirrored count on the user row in one
// transaction.
func (r *WarningModel) Add(ctx context.Context, warning *types.Warning) error {
	warning.CreatedAt = time.Now()

	return dbretry.Transaction(ctx, r.db, func(ctx context.Context, tx bun.Tx) error {
		_, err := tx.NewInsert().
			Model(warning).
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to insert warning: %w (userID=%d)", err, warning.UserID)
		}

		_, err = tx.NewUpdate().
			Model((*types.User)(nil)).
			Set("warning_count = warning_count + 1").
			Set("updated_at = ?", time.Now()).
			Where("id = ?", warning.UserID).
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to bump warning count: %w (userID=%d)", err, warning.UserID)
		}
		return nil
	})
}

// GetForUser returns the user's warnings, newest first.
func (r *WarningModel) GetForUser(ctx context.Context, userID uint64) ([]*types.Warning, error) {
	return dbretry.Operation(ctx, func(ctx context.Context) ([]*types.Warning, error) {
		var warnings []*types.Warning
		err := r.db.NewSelect().
			Model(&warnings).
			Where("user_id = ?", userID).
			Order("created_at DESC").
			Scan(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to get warnings: %w (userID=%d)", err, userID)
		}
		return warnings, nil
	})
}
