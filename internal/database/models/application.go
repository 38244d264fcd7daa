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
	"github.com/axoguild/axobot/internal/database/types/enum"
)

// pgUniqueViolation is the PostgreSQL error code for unique constraint hits.
const pgUniqueViolation = "23505"

// ApplicationModel handles database operations for group applications.
type ApplicationModel struct {
	db     *bun.DB
	logger *zap.Logger
}

// NewApplication creates a repository with database access for group
// applications.
func NewApplication(db *bun.DB, logger *zap.Logger) *ApplicationModel {
	return &ApplicationModel{
		db:     db,
		logger: logger.Named("db_application"),
	}
}

// Create inserts a new pending application. The partial unique index on
// (user_id) WHERE status = 'pending' makes the single-pending invariant
// atomic: a second concurrent submission fails the insert and surfaces as
// types.ErrPendingExists.
func (r *ApplicationModel) Create(ctx context.Context, app *types.Application) error {
	return dbretry.NoResult(ctx, func(ctx context.Context) error {
		app.Status = enum.ApplicationStatusPending
		app.SubmittedAt = time.Now()

		_, err := r.db.NewInsert().
			Model(app).
			Exec(ctx)
		if err != nil {
			if isUniqueViolation(err) {
				return types.ErrPendingExists
			}
			return fmt.Errorf("failed to create application: %w (userID=%d)", err, app.UserID)
		}
		return nil
	})
}

// Get fetches one application by ID.
func (r *ApplicationModel) Get(ctx context.Context, id int64) (*types.Application, error) {
	return dbretry.Operation(ctx, func(ctx context.Context) (*types.Application, error) {
		var app types.Application
		err := r.db.NewSelect().
			Model(&app).
			Where("id = ?", id).
			Scan(ctx)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, types.ErrApplicationNotFound
			}
			return nil, fmt.Errorf("failed to get application: %w (id=%d)", err, id)
		}
		return &app, nil
	})
}

// Review resolves a pending application to approved or rejected. The update
// is conditional on status = 'pending' so concurrent reviewers cannot both
// win: the loser observes no matching row and gets types.ErrAlreadyReviewed.
func (r *ApplicationModel) Review(
	ctx context.Context, id int64, status enum.ApplicationStatus, reviewerID uint64,
) error {
	return dbretry.NoResult(ctx, func(ctx context.Context) error {
		res, err := r.db.NewUpdate().
			Model((*types.Application)(nil)).
			Set("status = ?", status).
			Set("reviewed_by = ?", reviewerID).
			Set("reviewed_at = ?", time.Now()).
			Where("id = ?", id).
			Where("status = ?", enum.ApplicationStatusPending).
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to review application: %w (id=%d)", err, id)
		}

		rows, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to read review result: %w (id=%d)", err, id)
		}
		if rows == 0 {
			return types.ErrAlreadyReviewed
		}
		return nil
	})
}

// RejectPendingForUser rejects whatever pending application the user holds.
// Used when an applicant leaves the guild before review. Returns the number
// of applications closed (0 or 1).
func (r *ApplicationModel) RejectPendingForUser(ctx context.Context, userID uint64) (int64, error) {
	return dbretry.Operation(ctx, func(ctx context.Context) (int64, error) {
		res, err := r.db.NewUpdate().
			Model((*types.Application)(nil)).
			Set("status = ?", enum.ApplicationStatusRejected).
			Set("reviewed_at = ?", time.Now()).
			Where("user_id = ?", userID).
			Where("status = ?", enum.ApplicationStatusPending).
			Exec(ctx)
		if err != nil {
			return 0, fmt.Errorf("failed to reject pending application: %w (userID=%d)", err, userID)
		}

		rows, err := res.RowsAffected()
		if err != nil {
			return 0, fmt.Errorf("failed to read reject result: %w (userID=%d)", err, userID)
		}
		return rows, nil
	})
}

// isUniqueViolation reports whether err is a unique constraint hit. The
// driver reports SQLSTATE through Field('C').
func isUniqueViolation(err error) bool {
	var pgerr interface{ Field(byte) string }
	return errors.As(err, &pgerr) && pgerr.Field('C') == pgUniqueViolation
}

// GetPendingForUser fetches the user's pending application if one exists.
func (r *ApplicationModel) GetPendingForUser(ctx context.Context, userID uint64) (*types.Application, error) {
	return dbretry.Operation(ctx, func(ctx context.Context) (*types.Application, error) {
		var app types.Application
		err := r.db.NewSelect().
			Model(&app).
			Where("user_id = ?", userID).
			Where("status = ?", enum.ApplicationStatusPending).
			Scan(ctx)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, types.ErrApplicationNotFound
			}
			return nil, fmt.Errorf("failed to get pending application: %w (userID=%d)", err, userID)
		}
		return &app, nil
	})
}
