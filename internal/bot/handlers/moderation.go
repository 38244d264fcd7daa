package handlers

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/axoguild/axobot/internal/bot/command"
	"github.com/axoguild/axobot/internal/bot/constants"
	"github.com/axoguild/axobot/internal/bot/permission"
	"github.com/axoguild/axobot/internal/bot/views"
	"github.com/axoguild/axobot/internal/database/types"
	"github.com/axoguild/axobot/internal/moderation"
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/snowflake/v2"
	"go.uber.org/zap"
)

func (h *Hub) isModerator(ctx *command.Context) bool {
	return permission.IsModerator(&h.config.Guild, ctx.Member.RoleIDs)
}

// resolveTarget parses the first argument as a user and verifies the actor
// may moderate them. Moderators and the actor themselves are off limits.
func (h *Hub) resolveTarget(ctx *command.Context) (snowflake.ID, bool) {
	targetID, err := ctx.UserArg(0)
	if err != nil {
		ctx.ReplyError("Mention a user or give their ID.")
		return 0, false
	}

	var targetRoles []snowflake.ID
	if target, err := h.client.Rest().GetMember(h.config.Guild.ID, targetID); err == nil {
		targetRoles = target.RoleIDs
	}

	if !permission.CanModerate(&h.config.Guild, ctx.Author.ID, targetID, ctx.Member.RoleIDs, targetRoles) {
		ctx.ReplyError("You cannot moderate that user.")
		return 0, false
	}

	return targetID, true
}

func (h *Hub) handleBan(ctx *command.Context) {
	targetID, ok := h.resolveTarget(ctx)
	if !ok {
		return
	}
	reason := strings.Join(ctx.Args[1:], " ")

	if err := h.moderation.Ban(ctx.Ctx, targetID, ctx.Author.ID, reason); err != nil {
		h.logger.Error("Ban failed", zap.Error(err))
		ctx.ReplyError("Failed to ban the user.")
		return
	}

	ctx.Reply(views.ModerationResult("Member Banned", targetID, ctx.Author.ID, reason))
}

func (h *Hub) handleKick(ctx *command.Context) {
	targetID, ok := h.resolveTarget(ctx)
	if !ok {
		return
	}
	reason := strings.Join(ctx.Args[1:], " ")

	if err := h.moderation.Kick(ctx.Ctx, targetID, ctx.Author.ID, reason); err != nil {
		h.logger.Error("Kick failed", zap.Error(err))
		ctx.ReplyError("Failed to kick the user.")
		return
	}

	ctx.Reply(views.ModerationResult("Member Kicked", targetID, ctx.Author.ID, reason))
}

func (h *Hub) handleMute(ctx *command.Context) {
	targetID, ok := h.resolveTarget(ctx)
	if !ok {
		return
	}
	if len(ctx.Args) < 2 {
		ctx.ReplyError("Usage: mute @user <duration> [reason], e.g. mute @user 2h30m spam")
		return
	}

	duration, err := moderation.ParseDuration(ctx.Args[1])
	if err != nil {
		ctx.ReplyError("Invalid duration. Use forms like 30m, 1h, 2h30m or 1d.")
		return
	}
	reason := strings.Join(ctx.Args[2:], " ")

	until, err := h.moderation.Mute(ctx.Ctx, targetID, ctx.Author.ID, duration, reason)
	if err != nil {
		if errors.Is(err, moderation.ErrDurationTooLong) {
			ctx.ReplyError("Mutes cannot exceed 28 days.")
			return
		}
		h.logger.Error("Mute failed", zap.Error(err))
		ctx.ReplyError("Failed to mute the user.")
		return
	}

	ctx.Reply(views.ModerationResult("Member Muted", targetID, ctx.Author.ID, reason,
		discord.EmbedField{Name: "Until", Value: until.Format("2006-01-02 15:04 MST")}))
}

func (h *Hub) handleUnmute(ctx *command.Context) {
	targetID, err := ctx.UserArg(0)
	if err != nil {
		ctx.ReplyError("Mention a user or give their ID.")
		return
	}

	if err := h.moderation.Unmute(ctx.Ctx, targetID, ctx.Author.ID); err != nil {
		h.logger.Error("Unmute failed", zap.Error(err))
		ctx.ReplyError("Failed to unmute the user.")
		return
	}

	ctx.ReplySuccess(fmt.Sprintf("Unmuted <@%s>.", targetID))
}

func (h *Hub) handleWarn(ctx *command.Context) {
	targetID, ok := h.resolveTarget(ctx)
	if !ok {
		return
	}
	reason := strings.Join(ctx.Args[1:], " ")
	if reason == "" {
		reason = "No reason provided"
	}

	count, err := h.moderation.Warn(ctx.Ctx, targetID, ctx.Author.ID, reason)
	if err != nil {
		h.logger.Error("Warn failed", zap.Error(err))
		ctx.ReplyError("Failed to warn the user.")
		return
	}

	ctx.Reply(views.ModerationResult("Member Warned", targetID, ctx.Author.ID, reason,
		discord.EmbedField{Name: "Total Warnings", Value: strconv.Itoa(count)}))
}

func (h *Hub) handleWarnings(ctx *command.Context) {
	targetID, err := ctx.UserArg(0)
	if err != nil {
		ctx.ReplyError("Mention a user or give their ID.")
		return
	}

	warnings, err := h.moderation.Warnings(ctx.Ctx, targetID)
	if err != nil && !errors.Is(err, types.ErrUserNotFound) {
		h.logger.Error("Failed to load warnings", zap.Error(err))
		ctx.ReplyError("Failed to load warnings.")
		return
	}

	ctx.Reply(views.WarningList(targetID, warnings))
}

func (h *Hub) handleClear(ctx *command.Context) {
	if len(ctx.Args) < 1 {
		ctx.ReplyError(fmt.Sprintf("Usage: clear <count> (%d to %d)", constants.MinClearCount, constants.MaxClearCount))
		return
	}

	count, err := strconv.Atoi(ctx.Args[0])
	if err != nil || count < constants.MinClearCount || count > constants.MaxClearCount {
		ctx.ReplyError(fmt.Sprintf("Count must be between %d and %d.", constants.MinClearCount, constants.MaxClearCount))
		return
	}

	deleted, err := h.moderation.Clear(ctx.Ctx, ctx.ChannelID, count, ctx.Author.ID)
	if err != nil {
		h.logger.Error("Clear failed", zap.Error(err))
		ctx.ReplyError("Failed to delete messages.")
		return
	}

	ctx.ReplySuccess(fmt.Sprintf("Deleted %d messages.", deleted))
}
