// Package moderation implements the moderator command surface: bans, kicks,
// timeouts, warnings and message cleanup, each mirrored into the audit log.
package moderation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/axoguild/axobot/internal/bot/audit"
	"github.com/axoguild/axobot/internal/bot/views"
	"github.com/axoguild/axobot/internal/database"
	"github.com/axoguild/axobot/internal/database/types"
	"github.com/axoguild/axobot/internal/setup/config"
	"github.com/disgoorg/disgo/bot"
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/json"
	"github.com/disgoorg/snowflake/v2"
	"go.uber.org/zap"
)

// ErrDurationTooLong is returned when a mute exceeds the platform maximum.
var ErrDurationTooLong = fmt.Errorf("mute duration exceeds the maximum of %s", MaxMuteDuration)

// Service executes moderation actions.
type Service struct {
	client bot.Client
	db     database.Client
	config *config.Guild
	audit  *audit.Logger
	logger *zap.Logger
}

// NewService creates a Service.
func NewService(
	client bot.Client, db database.Client, cfg *config.Guild,
	auditLog *audit.Logger, logger *zap.Logger,
) *Service {
	return &Service{
		client: client,
		db:     db,
		config: cfg,
		audit:  auditLog,
		logger: logger.Named("moderation"),
	}
}

// guildName resolves the managed guild's display name for DM notices.
func (s *Service) guildName() string {
	if guild, ok := s.client.Caches().Guild(s.config.ID); ok {
		return guild.Name
	}
	return "the server"
}

// Ban notifies the target, then bans them. The DM must go out first since a
// banned user can no longer be messaged.
func (s *Service) Ban(ctx context.Context, targetID, moderatorID snowflake.ID, reason string) error {
	s.notify(targetID, "ban", reason)

	if err := s.client.Rest().AddBan(s.config.ID, targetID, 0); err != nil {
		return fmt.Errorf("failed to ban member: %w", err)
	}

	s.audit.Log(ctx, audit.Entry{
		Action:      audit.ActionBan,
		UserID:      targetID,
		ModeratorID: moderatorID,
		Details:     reasonDetails(reason),
	})

	return nil
}

// Kick notifies the target, then removes them from the guild.
func (s *Service) Kick(ctx context.Context, targetID, moderatorID snowflake.ID, reason string) error {
	s.notify(targetID, "kick", reason)

	if err := s.client.Rest().RemoveMember(s.config.ID, targetID); err != nil {
		return fmt.Errorf("failed to kick member: %w", err)
	}

	s.audit.Log(ctx, audit.Entry{
		Action:      audit.ActionKick,
		UserID:      targetID,
		ModeratorID: moderatorID,
		Details:     reasonDetails(reason),
	})

	return nil
}

// Mute times the target out for the given duration and records the expiry.
func (s *Service) Mute(ctx context.Context, targetID, moderatorID snowflake.ID, duration time.Duration, reason string) (time.Time, error) {
	if duration > MaxMuteDuration {
		return time.Time{}, ErrDurationTooLong
	}

	until := time.Now().Add(duration)
	disabledUntil := json.NewNullable(until)

	if _, err := s.client.Rest().UpdateMember(s.config.ID, targetID, discord.MemberUpdate{
		CommunicationDisabledUntil: &disabledUntil,
	}); err != nil {
		return time.Time{}, fmt.Errorf("failed to time out member: %w", err)
	}

	if err := s.db.Model().User().SetMutedUntil(ctx, uint64(targetID), &until); err != nil {
		return time.Time{}, err
	}

	s.notify(targetID, fmt.Sprintf("mute (%s)", duration), reason)

	details := reasonDetails(reason)
	details["Until"] = until.Format("2006-01-02 15:04 MST")
	s.audit.Log(ctx, audit.Entry{
		Action:      audit.ActionMute,
		UserID:      targetID,
		ModeratorID: moderatorID,
		Details:     details,
	})

	return until, nil
}

// Unmute lifts an active timeout.
func (s *Service) Unmute(ctx context.Context, targetID, moderatorID snowflake.ID) error {
	disabledUntil := json.Null[time.Time]()

	if _, err := s.client.Rest().UpdateMember(s.config.ID, targetID, discord.MemberUpdate{
		CommunicationDisabledUntil: &disabledUntil,
	}); err != nil {
		return fmt.Errorf("failed to lift timeout: %w", err)
	}

	if err := s.db.Model().User().SetMutedUntil(ctx, uint64(targetID), nil); err != nil {
		return err
	}

	s.audit.Log(ctx, audit.Entry{
		Action:      audit.ActionUnmute,
		UserID:      targetID,
		ModeratorID: moderatorID,
	})

	return nil
}

// Warn stores a warning and returns the target's new warning count.
func (s *Service) Warn(ctx context.Context, targetID, moderatorID snowflake.ID, reason string) (int, error) {
	warning := &types.Warning{
		UserID:      uint64(targetID),
		ModeratorID: uint64(moderatorID),
		Reason:      reason,
	}
	if err := s.db.Model().Warning().Add(ctx, warning); err != nil {
		return 0, err
	}

	user, err := s.db.Model().User().Get(ctx, uint64(targetID))
	if err != nil && !errors.Is(err, types.ErrUserNotFound) {
		return 0, err
	}
	count := 0
	if user != nil {
		count = user.WarningCount
	}

	s.notify(targetID, "warning", reason)

	details := reasonDetails(reason)
	details["Total Warnings"] = count
	s.audit.Log(ctx, audit.Entry{
		Action:      audit.ActionWarn,
		UserID:      targetID,
		ModeratorID: moderatorID,
		Details:     details,
	})

	return count, nil
}

// Warnings returns the target's warnings, newest first.
func (s *Service) Warnings(ctx context.Context, targetID snowflake.ID) ([]*types.Warning, error) {
	return s.db.Model().Warning().GetForUser(ctx, uint64(targetID))
}

// Clear bulk-deletes up to count recent messages from the channel and
// returns how many were targeted. Messages older than two weeks are skipped
// because the platform refuses to bulk-delete them.
func (s *Service) Clear(ctx context.Context, channelID snowflake.ID, count int, moderatorID snowflake.ID) (int, error) {
	messages, err := s.client.Rest().GetMessages(channelID, 0, 0, 0, count)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch messages: %w", err)
	}

	cutoff := time.Now().Add(-14 * 24 * time.Hour)
	ids := make([]snowflake.ID, 0, len(messages))
	for _, message := range messages {
		if message.CreatedAt.After(cutoff) {
			ids = append(ids, message.ID)
		}
	}

	switch len(ids) {
	case 0:
		return 0, nil
	case 1:
		if err := s.client.Rest().DeleteMessage(channelID, ids[0]); err != nil {
			return 0, fmt.Errorf("failed to delete message: %w", err)
		}
	default:
		if err := s.client.Rest().BulkDeleteMessages(channelID, ids); err != nil {
			return 0, fmt.Errorf("failed to bulk delete messages: %w", err)
		}
	}

	s.audit.Log(ctx, audit.Entry{
		ModeratorID: moderatorID,
		Action:      audit.ActionClear,
		Details: map[string]any{
			"Channel": fmt.Sprintf("<#%s>", channelID),
			"Count":   len(ids),
		},
	})

	return len(ids), nil
}

func (s *Service) notify(targetID snowflake.ID, action, reason string) {
	dm, err := s.client.Rest().CreateDMChannel(targetID)
	if err != nil {
		s.logger.Debug("Failed to open DM channel",
			zap.Uint64("userID", uint64(targetID)),
			zap.Error(err))
		return
	}
	if _, err := s.client.Rest().CreateMessage(dm.ID(), views.ModerationDM(action, s.guildName(), reason)); err != nil {
		s.logger.Debug("Failed to send moderation DM",
			zap.Uint64("userID", uint64(targetID)),
			zap.Error(err))
	}
}

func reasonDetails(reason string) map[string]any {
	details := map[string]any{}
	if reason != "" {
		details["Reason"] = reason
	}
	return details
}
