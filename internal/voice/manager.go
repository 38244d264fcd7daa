// Package voice manages ephemeral voice channels. A member joining the
// creator channel gets their own channel and a control panel; the channel is
// reclaimed as soon as the last member leaves.
package voice

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/axoguild/axobot/internal/bot/audit"
	"github.com/axoguild/axobot/internal/bot/constants"
	"github.com/axoguild/axobot/internal/bot/views"
	"github.com/axoguild/axobot/internal/database"
	"github.com/axoguild/axobot/internal/database/types"
	"github.com/axoguild/axobot/internal/setup/config"
	"github.com/disgoorg/disgo/bot"
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/rest"
	"github.com/disgoorg/snowflake/v2"
	"github.com/sourcegraph/conc/pool"
	"go.uber.org/zap"
)

// Manager owns the lifecycle of ephemeral voice channels.
type Manager struct {
	client  bot.Client
	db      database.Client
	config  *config.Guild
	confirm *ConfirmStore
	logger  *zap.Logger
	audit   *audit.Logger
}

// NewManager creates a Manager.
func NewManager(
	client bot.Client, db database.Client, cfg *config.Guild,
	confirm *ConfirmStore, auditLog *audit.Logger, logger *zap.Logger,
) *Manager {
	return &Manager{
		client:  client,
		db:      db,
		config:  cfg,
		confirm: confirm,
		logger:  logger.Named("voice"),
		audit:   auditLog,
	}
}

// Confirm exposes the delete confirmation store.
func (m *Manager) Confirm() *ConfirmStore {
	return m.confirm
}

// Get loads the record for a managed channel.
func (m *Manager) Get(ctx context.Context, channelID snowflake.ID) (*types.VoiceChannel, error) {
	return m.db.Model().Voice().Get(ctx, uint64(channelID))
}

// GetByOwner loads the channel a user currently owns.
func (m *Manager) GetByOwner(ctx context.Context, ownerID snowflake.ID) (*types.VoiceChannel, error) {
	return m.db.Model().Voice().GetByOwner(ctx, uint64(ownerID))
}

// MemberCount reports how many members are connected to the channel
// according to the voice state cache.
func (m *Manager) MemberCount(channelID snowflake.ID) int {
	return m.memberCount(channelID)
}

// HandleStateUpdate reacts to a voice state change. Joining the creator
// channel spawns a personal channel, and leaving a managed channel reclaims
// it once empty.
func (m *Manager) HandleStateUpdate(ctx context.Context, member discord.Member, oldChannelID, newChannelID *snowflake.ID) {
	if newChannelID != nil && *newChannelID == m.config.Channels.VoiceCreator {
		if err := m.CreateFor(ctx, member); err != nil {
			m.logger.Error("Failed to create voice channel",
				zap.Uint64("userID", uint64(member.User.ID)),
				zap.Error(err))
		}
	}

	if oldChannelID != nil && *oldChannelID != m.config.Channels.VoiceCreator {
		if newChannelID != nil && *newChannelID == *oldChannelID {
			return
		}
		if err := m.reclaimIfEmpty(ctx, *oldChannelID); err != nil {
			m.logger.Error("Failed to reclaim voice channel",
				zap.Uint64("channelID", uint64(*oldChannelID)),
				zap.Error(err))
		}
	}
}

// CreateFor creates a personal channel for the member, moves them into it,
// and posts the control panel.
func (m *Manager) CreateFor(ctx context.Context, member discord.Member) error {
	name := truncateName(fmt.Sprintf("%s's channel", member.EffectiveName()), constants.MaxNameLen)

	channel, err := m.client.Rest().CreateGuildChannel(m.config.ID, discord.GuildVoiceChannelCreate{
		Name:     name,
		ParentID: m.config.VoiceCategory,
	})
	if err != nil {
		return fmt.Errorf("failed to create guild channel: %w", err)
	}
	channelID := channel.ID()

	record := &types.VoiceChannel{
		ChannelID: uint64(channelID),
		OwnerID:   uint64(member.User.ID),
		Name:      name,
	}
	if err := m.db.Model().Voice().Create(ctx, record); err != nil {
		// Roll the channel back so Discord and the store stay in sync.
		_ = m.client.Rest().DeleteChannel(channelID)
		return fmt.Errorf("failed to store voice channel: %w", err)
	}

	if err := m.moveMember(member.User.ID, &channelID); err != nil {
		// The member hung up before the move. Reclaim handles the rest.
		m.logger.Debug("Failed to move member into new channel",
			zap.Uint64("userID", uint64(member.User.ID)),
			zap.Error(err))
		if reclaimErr := m.reclaimIfEmpty(ctx, channelID); reclaimErr != nil {
			m.logger.Error("Failed to reclaim abandoned channel", zap.Error(reclaimErr))
		}
		return nil
	}

	panel := views.VoiceControlPanel(channelID, member.User.ID, false)
	if _, err := m.client.Rest().CreateMessage(channelID, panel); err != nil {
		m.logger.Error("Failed to post control panel",
			zap.Uint64("channelID", uint64(channelID)),
			zap.Error(err))
	}

	m.audit.Log(ctx, audit.Entry{
		Action: audit.ActionVoiceCreated,
		UserID: member.User.ID,
		Details: map[string]any{
			"Channel": fmt.Sprintf("<#%s>", channelID),
		},
	})

	return nil
}

// SetLocked applies or removes a connect deny for the default role and
// records the new state.
func (m *Manager) SetLocked(ctx context.Context, channelID snowflake.ID, locked bool) error {
	var allow, deny discord.Permissions
	if locked {
		deny = discord.PermissionConnect
	}

	overwrites := []discord.PermissionOverwrite{
		discord.RolePermissionOverwrite{
			// The default role shares the guild's ID.
			RoleID: m.config.ID,
			Allow:  allow,
			Deny:   deny,
		},
	}

	if _, err := m.client.Rest().UpdateChannel(channelID, discord.GuildVoiceChannelUpdate{
		PermissionOverwrites: &overwrites,
	}); err != nil {
		return fmt.Errorf("failed to update channel permissions: %w", err)
	}

	return m.db.Model().Voice().SetLocked(ctx, uint64(channelID), locked)
}

// SetLimit applies a user limit. Zero removes the limit.
func (m *Manager) SetLimit(_ context.Context, channelID snowflake.ID, limit int) error {
	if _, err := m.client.Rest().UpdateChannel(channelID, discord.GuildVoiceChannelUpdate{
		UserLimit: &limit,
	}); err != nil {
		return fmt.Errorf("failed to update user limit: %w", err)
	}
	return nil
}

// Rename renames the channel on Discord and in the store.
func (m *Manager) Rename(ctx context.Context, channelID snowflake.ID, name string) error {
	if _, err := m.client.Rest().UpdateChannel(channelID, discord.GuildVoiceChannelUpdate{
		Name: &name,
	}); err != nil {
		return fmt.Errorf("failed to rename channel: %w", err)
	}
	return m.db.Model().Voice().SetName(ctx, uint64(channelID), name)
}

// ErrNotInChannel is returned when an ownership transfer targets someone
// outside the channel.
var ErrNotInChannel = errors.New("target is not in the channel")

// Transfer hands channel ownership to another member currently connected to
// the channel.
func (m *Manager) Transfer(ctx context.Context, channelID, newOwnerID snowflake.ID) error {
	if !m.isInChannel(newOwnerID, channelID) {
		return ErrNotInChannel
	}

	if err := m.db.Model().Voice().SetOwner(ctx, uint64(channelID), uint64(newOwnerID)); err != nil {
		return err
	}

	m.audit.Log(ctx, audit.Entry{
		Action: audit.ActionVoiceTransfer,
		UserID: newOwnerID,
		Details: map[string]any{
			"Channel": fmt.Sprintf("<#%s>", channelID),
		},
	})

	return nil
}

// Delete removes the channel's record, then the channel itself. The record
// goes first so a concurrent reclaim observes it gone and backs off; a
// channel already missing on either side counts as success.
func (m *Manager) Delete(ctx context.Context, channelID snowflake.ID, actorID snowflake.ID) error {
	deleted, err := m.db.Model().Voice().Delete(ctx, uint64(channelID))
	if err != nil {
		return err
	}

	if deleted {
		m.audit.Log(ctx, audit.Entry{
			Action: audit.ActionVoiceDeleted,
			UserID: actorID,
			Details: map[string]any{
				"Channel ID": channelID.String(),
			},
		})
	}

	// A 404 here means the other side of a delete race got there first.
	if err := m.client.Rest().DeleteChannel(channelID); err != nil && !isNotFound(err) {
		return fmt.Errorf("failed to delete channel: %w", err)
	}

	return nil
}

// Reconcile removes stale records and empty channels left over from a
// previous run. It runs once at startup.
func (m *Manager) Reconcile(ctx context.Context) error {
	records, err := m.db.Model().Voice().GetAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to load voice channels: %w", err)
	}

	p := pool.New().WithMaxGoroutines(4)
	for _, record := range records {
		p.Go(func() {
			channelID := snowflake.ID(record.ChannelID)

			if _, err := m.client.Rest().GetChannel(channelID); err != nil {
				// Only a 404 proves the channel is gone. Anything else is
				// transient, and purging on it would orphan a live channel.
				if !isNotFound(err) {
					m.logger.Warn("Failed to look up voice channel, keeping record",
						zap.Uint64("channelID", record.ChannelID),
						zap.Error(err))
					return
				}
				if _, err := m.db.Model().Voice().Delete(ctx, record.ChannelID); err != nil {
					m.logger.Error("Failed to drop stale voice record",
						zap.Uint64("channelID", record.ChannelID),
						zap.Error(err))
				}
				return
			}

			if m.memberCount(channelID) == 0 {
				if err := m.Delete(ctx, channelID, 0); err != nil {
					m.logger.Error("Failed to reclaim empty channel",
						zap.Uint64("channelID", record.ChannelID),
						zap.Error(err))
				}
			}
		})
	}
	p.Wait()

	m.logger.Info("Voice channel reconciliation finished",
		zap.Int("records", len(records)))

	return nil
}

func (m *Manager) reclaimIfEmpty(ctx context.Context, channelID snowflake.ID) error {
	if _, err := m.Get(ctx, channelID); err != nil {
		if errors.Is(err, types.ErrVoiceChannelNotFound) {
			return nil
		}
		return err
	}

	if m.memberCount(channelID) > 0 {
		return nil
	}

	return m.Delete(ctx, channelID, 0)
}

func (m *Manager) memberCount(channelID snowflake.ID) int {
	count := 0
	m.client.Caches().VoiceStatesForEach(m.config.ID, func(state discord.VoiceState) {
		if state.ChannelID != nil && *state.ChannelID == channelID {
			count++
		}
	})
	return count
}

func (m *Manager) isInChannel(userID, channelID snowflake.ID) bool {
	state, ok := m.client.Caches().VoiceState(m.config.ID, userID)
	if !ok || state.ChannelID == nil {
		return false
	}
	return *state.ChannelID == channelID
}

func (m *Manager) moveMember(userID snowflake.ID, channelID *snowflake.ID) error {
	_, err := m.client.Rest().UpdateMember(m.config.ID, userID, discord.MemberUpdate{
		ChannelID: channelID,
	})
	return err
}

// isNotFound reports whether err is a Discord 404.
func isNotFound(err error) bool {
	var restErr *rest.Error
	return errors.As(err, &restErr) &&
		restErr.Response != nil &&
		restErr.Response.StatusCode == http.StatusNotFound
}
