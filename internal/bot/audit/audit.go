// Package audit records every significant action twice: as a structured row
// in the activity log table and as an embed in the guild's log channel. Both
// writes are best effort so auditing never blocks the action itself.
package audit

import (
	"context"
	"fmt"
	"time"

	"github.com/axoguild/axobot/internal/bot/constants"
	"github.com/axoguild/axobot/internal/database"
	"github.com/axoguild/axobot/internal/database/types"
	"github.com/axoguild/axobot/internal/setup/config"
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/rest"
	"github.com/disgoorg/snowflake/v2"
	"go.uber.org/zap"
)

// Action names stored in the activity log.
const (
	ActionMemberJoin     = "member_join"
	ActionMemberLeave    = "member_leave"
	ActionRolesChanged   = "roles_changed"
	ActionMessageDeleted = "message_deleted"
	ActionMessageEdited  = "message_edited"
	ActionRulesAccepted  = "rules_accepted"
	ActionAppSubmitted   = "application_submitted"
	ActionAppApproved    = "application_approved"
	ActionAppRejected    = "application_rejected"
	ActionVoiceCreated   = "voice_created"
	ActionVoiceDeleted   = "voice_deleted"
	ActionVoiceTransfer  = "voice_transferred"
	ActionBan            = "ban"
	ActionKick           = "kick"
	ActionMute           = "mute"
	ActionUnmute         = "unmute"
	ActionWarn           = "warn"
	ActionClear          = "clear"
	ActionGroupChanged   = "group_changed"
	ActionGroupSync      = "group_sync"
)

// Logger writes audit entries.
type Logger struct {
	rest   rest.Rest
	db     database.Client
	config *config.Guild
	logger *zap.Logger
}

// NewLogger creates a Logger.
func NewLogger(restClient rest.Rest, db database.Client, cfg *config.Guild, logger *zap.Logger) *Logger {
	return &Logger{
		rest:   restClient,
		db:     db,
		config: cfg,
		logger: logger.Named("audit"),
	}
}

// Entry describes a single auditable event.
type Entry struct {
	Action      string
	UserID      snowflake.ID
	ModeratorID snowflake.ID
	Details     map[string]any
}

// Log persists the entry and posts it to the log channel. Failures are
// logged and swallowed.
func (l *Logger) Log(ctx context.Context, entry Entry) {
	row := &types.ActivityLog{
		Action:  entry.Action,
		UserID:  uint64(entry.UserID),
		Details: entry.Details,
	}
	if entry.ModeratorID != 0 {
		row.ModeratorID = uint64(entry.ModeratorID)
	}
	l.db.Model().Activity().Log(ctx, row)

	if l.config.Channels.Log == 0 {
		return
	}

	if _, err := l.rest.CreateMessage(l.config.Channels.Log, l.buildEmbed(entry)); err != nil {
		l.logger.Error("Failed to post log embed",
			zap.String("action", entry.Action),
			zap.Error(err))
	}
}

func (l *Logger) buildEmbed(entry Entry) discord.MessageCreate {
	builder := discord.NewEmbedBuilder().
		SetTitle(titleFor(entry.Action)).
		SetColor(colorFor(entry.Action)).
		SetTimestamp(time.Now())

	if entry.UserID != 0 {
		builder.AddField("User", fmt.Sprintf("<@%s>", entry.UserID), true)
	}
	if entry.ModeratorID != 0 {
		builder.AddField("Moderator", fmt.Sprintf("<@%s>", entry.ModeratorID), true)
	}
	for key, value := range entry.Details {
		builder.AddField(key, fmt.Sprintf("%v", value), true)
	}

	return discord.NewMessageCreateBuilder().SetEmbeds(builder.Build()).Build()
}

func titleFor(action string) string {
	switch action {
	case ActionMemberJoin:
		return "Member Joined"
	case ActionMemberLeave:
		return "Member Left"
	case ActionRolesChanged:
		return "Roles Changed"
	case ActionMessageDeleted:
		return "Message Deleted"
	case ActionMessageEdited:
		return "Message Edited"
	case ActionRulesAccepted:
		return "Rules Accepted"
	case ActionAppSubmitted:
		return "Application Submitted"
	case ActionAppApproved:
		return "Application Approved"
	case ActionAppRejected:
		return "Application Rejected"
	case ActionVoiceCreated:
		return "Voice Channel Created"
	case ActionVoiceDeleted:
		return "Voice Channel Deleted"
	case ActionVoiceTransfer:
		return "Voice Ownership Transferred"
	case ActionBan:
		return "Member Banned"
	case ActionKick:
		return "Member Kicked"
	case ActionMute:
		return "Member Muted"
	case ActionUnmute:
		return "Member Unmuted"
	case ActionWarn:
		return "Member Warned"
	case ActionClear:
		return "Messages Cleared"
	case ActionGroupChanged:
		return "Group Changed"
	case ActionGroupSync:
		return "Groups Synced"
	default:
		return action
	}
}

func colorFor(action string) int {
	switch action {
	case ActionBan, ActionKick, ActionMessageDeleted:
		return constants.ColorError
	case ActionMute, ActionWarn, ActionClear, ActionMemberLeave, ActionAppRejected:
		return constants.ColorWarning
	case ActionMemberJoin, ActionRulesAccepted, ActionAppApproved, ActionUnmute:
		return constants.ColorSuccess
	default:
		return constants.ColorInfo
	}
}
