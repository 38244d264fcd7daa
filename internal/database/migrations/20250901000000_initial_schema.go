package migrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"

	"github.com/axoguild/axobot/internal/database/types"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		tables := []struct {
			model any
			name  string
		}{
			{(*types.User)(nil), "users"},
			{(*types.VoiceChannel)(nil), "voice_channels"},
			{(*types.Application)(nil), "applications"},
			{(*types.Warning)(nil), "warnings"},
			{(*types.ActivityLog)(nil), "activity_logs"},
		}

		for _, table := range tables {
			_, err := db.NewCreateTable().
				Model(table.model).
				ModelTableExpr(table.name).
				IfNotExists().
				Exec(ctx)
			if err != nil {
				return fmt.Errorf("failed to create table %s: %w", table.name, err)
			}
		}

		// The partial unique index is what enforces the single-pending
		// invariant: a second pending insert for the same user fails with a
		// unique violation.
		_, err := db.NewCreateIndex().
			Model((*types.Application)(nil)).
			Index("applications_one_pending_per_user").
			Column("user_id").
			Unique().
			IfNotExists().
			Where("status = 'pending'").
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to create pending application index: %w", err)
		}

		indexes := []struct {
			name    string
			model   any
			columns []string
		}{
			{"users_group_idx", (*types.User)(nil), []string{"group"}},
			{"voice_channels_owner_idx", (*types.VoiceChannel)(nil), []string{"owner_id"}},
			{"applications_user_idx", (*types.Application)(nil), []string{"user_id"}},
			{"applications_status_idx", (*types.Application)(nil), []string{"status"}},
			{"warnings_user_idx", (*types.Warning)(nil), []string{"user_id"}},
			{"activity_logs_user_idx", (*types.ActivityLog)(nil), []string{"user_id"}},
		}

		for _, idx := range indexes {
			_, err := db.NewCreateIndex().
				Model(idx.model).
				Index(idx.name).
				Column(idx.columns...).
				IfNotExists().
				Exec(ctx)
			if err != nil {
				return fmt.Errorf("failed to create index %s: %w", idx.name, err)
			}
		}

		return nil
	}, func(ctx context.Context, db *bun.DB) error {
		for _, table := range []string{"activity_logs", "warnings", "applications", "voice_channels", "users"} {
			_, err := db.ExecContext(ctx, "DROP TABLE IF EXISTS "+table)
			if err != nil {
				return fmt.Errorf("failed to drop table %s: %w", table, err)
			}
		}
		return nil
	})
}
