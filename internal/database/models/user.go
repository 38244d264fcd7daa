package models

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/bun"
	"go.uber.org/zap"

	"github.com/axoguild/axobot/internal/database/dbretry"
	"github.com/axoguild/axobot/internal/database/types"
)

// UserModel handles database operations for guild member records.
type UserModel struct {
	db     *bun.DB
	logger *zap.Logger
}

// NewUser creates a repository with database access for member records.
func NewUser(db *bun.DB, logger *zap.Logger) *UserModel {
	return &UserModel{
		db:     db,
		logger: logger.Named("db_user"),
	}
}

// Upsert creates the user row on first contact or refreshes the display name
// on subsequent ones. Group, warnings and mute state are never clobbered here.
func (r *UserModel) Upsert(ctx context.Context, id uint64, displayName string) error {
	return dbretry.NoResult(ctx, func(ctx context.Context) error {
		now := time.Now()
		user := &types.User{
			ID:          id,
			DisplayName: displayName,
			JoinedAt:    now,
			UpdatedAt:   now,
		}

		_, err := r.db.NewInsert().
			Model(user).
			On("CONFLICT (id) DO UPDATE").
			Set("display_name = EXCLUDED.display_name").
			Set("updated_at = EXCLUDED.updated_at").
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to upsert user: %w (userID=%d)", err, id)
		}
		return nil
	})
}

// Get fetches one user row. Returns types.ErrUserNotFound when absent.
func (r *UserModel) Get(ctx context.Context, id uint64) (*types.User, error) {
	return dbretry.Operation(ctx, func(ctx context.Context) (*types.User, error) {
		var user types.User
		err := r.db.NewSelect().
			Model(&user).
			Where("id = ?", id).
			Scan(ctx)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, types.ErrUserNotFound
			}
			return nil, fmt.Errorf("failed to get user: %w (userID=%d)", err, id)
		}
		return &user, nil
	})
}

// SetGroup persists the user's academic group. An empty group clears it,
// returning the user to guest state.
func (r *UserModel) SetGroup(ctx context.Context, id uint64, group string) error {
	return dbretry.NoResult(ctx, func(ctx context.Context) error {
		_, err := r.db.NewUpdate().
			Model((*types.User)(nil)).
			Set("\"group\" = ?", sql.NullString{String: group, Valid: group != ""}).
			Set("updated_at = ?", time.Now()).
			Where("id = ?", id).
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to set user group: %w (userID=%d)", err, id)
		}
		return nil
	})
}

// SetMutedUntil persists the timeout expiry. A nil value clears the mute.
func (r *UserModel) SetMutedUntil(ctx context.Context, id uint64, until *time.Time) error {
	return dbretry.NoResult(ctx, func(ctx context.Context) error {
		_, err := r.db.NewUpdate().
			Model((*types.User)(nil)).
			Set("muted_until = ?", until).
			Set("updated_at = ?", time.Now()).
			Where("id = ?", id).
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to set mute expiry: %w (userID=%d)", err, id)
		}
		return nil
	})
}

// GetGroupMembers returns all users recorded in the given group.
func (r *UserModel) GetGroupMembers(ctx context.Context, group string) ([]*types.User, error) {
	return dbretry.Operation(ctx, func(ctx context.Context) ([]*types.User, error) {
		var users []*types.User
		err := r.db.NewSelect().
			Model(&users).
			Where("\"group\" = ?", group).
			Order("display_name ASC").
			Scan(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to get group members: %w (group=%s)", err, group)
		}
		return users, nil
	})
}

// Count returns the number of recorded users.
func (r *UserModel) Count(ctx context.Context) (int, error) {
	return dbretry.Operation(ctx, func(ctx context.Context) (int, error) {
		count, err := r.db.NewSelect().
			Model((*types.User)(nil)).
			Count(ctx)
		if err != nil {
			return 0, fmt.Errorf("failed to count users: %w", err)
		}
		return count, nil
	})
}

// GroupCounts returns the number of recorded members per group.
func (r *UserModel) GroupCounts(ctx context.Context) (map[string]int, error) {
	return dbretry.Operation(ctx, func(ctx context.Context) (map[string]int, error) {
		var rows []struct {
			Group string `bun:"group"`
			Count int    `bun:"count"`
		}

		err := r.db.NewSelect().
			Model((*types.User)(nil)).
			ColumnExpr("\"group\", COUNT(*) AS count").
			Where("\"group\" IS NOT NULL").
			GroupExpr("\"group\"").
			Scan(ctx, &rows)
		if err != nil {
			return nil, fmt.Errorf("failed to count group members: %w", err)
		}

		counts := make(map[string]int, len(rows))
		for _, row := range rows {
			counts[row.Group] = row.Count
		}
		return counts, nil
	})
}
