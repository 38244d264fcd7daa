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

// VoiceChannelModel handles database operations for ephemeral voice channel
// records.
type VoiceChannelModel struct {
	db     *bun.DB
	logger *zap.Logger
}

// NewVoiceChannel creates a repository with database access for voice channel
// records.
func NewVoiceChannel(db *bun.DB, logger *zap.Logger) *VoiceChannelModel {
	return &VoiceChannelModel{
		db:     db,
		logger: logger.Named("db_voice"),
	}
}

// Create inserts the record for a freshly created channel.
func (r *VoiceChannelModel) Create(ctx context.Context, channel *types.VoiceChannel) error {
	channel.CreatedAt = time.Now()

	return dbretry.NoResult(ctx, func(ctx context.Context) error {
		_, err := r.db.NewInsert().
			Model(channel).
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to create voice channel record: %w (channelID=%d)", err, channel.ChannelID)
		}
		return nil
	})
}

// Get fetches one channel record. Returns types.ErrVoiceChannelNotFound when
// the channel is not tracked.
func (r *VoiceChannelModel) Get(ctx context.Context, channelID uint64) (*types.VoiceChannel, error) {
	return dbretry.Operation(ctx, func(ctx context.Context) (*types.VoiceChannel, error) {
		var channel types.VoiceChannel
		err := r.db.NewSelect().
			Model(&channel).
			Where("channel_id = ?", channelID).
			Scan(ctx)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, types.ErrVoiceChannelNotFound
			}
			return nil, fmt.Errorf("failed to get voice channel record: %w (channelID=%d)", err, channelID)
		}
		return &channel, nil
	})
}

// GetByOwner fetches the channel currently owned by the user. Returns
// types.ErrVoiceChannelNotFound when the user owns none.
func (r *VoiceChannelModel) GetByOwner(ctx context.Context, ownerID uint64) (*types.VoiceChannel, error) {
	return dbretry.Operation(ctx, func(ctx context.Context) (*types.VoiceChannel, error) {
		var channel types.VoiceChannel
		err := r.db.NewSelect().
			Model(&channel).
			Where("owner_id = ?", ownerID).
			Order("created_at DESC").
			Limit(1).
			Scan(ctx)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, types.ErrVoiceChannelNotFound
			}
			return nil, fmt.Errorf("failed to get voice channel by owner: %w (ownerID=%d)", err, ownerID)
		}
		return &channel, nil
	})
}

// GetAll returns every tracked channel record. Used by startup reconciliation.
func (r *VoiceChannelModel) GetAll(ctx context.Context) ([]*types.VoiceChannel, error) {
	return dbretry.Operation(ctx, func(ctx context.Context) ([]*types.VoiceChannel, error) {
		var channels []*types.VoiceChannel
		err := r.db.NewSelect().
			Model(&channels).
			Scan(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to get voice channel records: %w", err)
		}
		return channels, nil
	})
}

// SetLocked persists the lock flag.
func (r *VoiceChannelModel) SetLocked(ctx context.Context, channelID uint64, locked bool) error {
	return r.update(ctx, channelID, "is_locked = ?", locked)
}

// SetName persists a rename.
func (r *VoiceChannelModel) SetName(ctx context.Context, channelID uint64, name string) error {
	return r.update(ctx, channelID, "name = ?", name)
}

// SetOwner reassigns channel ownership. Ownership is the only mutation.
func (r *VoiceChannelModel) SetOwner(ctx context.Context, channelID uint64, ownerID uint64) error {
	return r.update(ctx, channelID, "owner_id = ?", ownerID)
}

// Delete removes the channel record. The returned bool is false when the row
// was already gone, which callers treat as success: the manual delete and the
// empty-channel reclaim may race.
func (r *VoiceChannelModel) Delete(ctx context.Context, channelID uint64) (bool, error) {
	return dbretry.Operation(ctx, func(ctx context.Context) (bool, error) {
		res, err := r.db.NewDelete().
			Model((*types.VoiceChannel)(nil)).
			Where("channel_id = ?", channelID).
			Exec(ctx)
		if err != nil {
			return false, fmt.Errorf("failed to delete voice channel record: %w (channelID=%d)", err, channelID)
		}

		rows, err := res.RowsAffected()
		if err != nil {
			return false, fmt.Errorf("failed to read delete result: %w (channelID=%d)", err, channelID)
		}
		return rows > 0, nil
	})
}

func (r *VoiceChannelModel) update(ctx context.Context, channelID uint64, set string, value any) error {
	return dbretry.NoResult(ctx, func(ctx context.Context) error {
		res, err := r.db.NewUpdate().
			Model((*types.VoiceChannel)(nil)).
			Set(set, value).
			Where("channel_id = ?", channelID).
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to update voice channel record: %w (channelID=%d)", err, channelID)
		}

		rows, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to read update result: %w (channelID=%d)", err, channelID)
		}
		if rows == 0 {
			return types.ErrVoiceChannelNotFound
		}
		return nil
	})
}
