package handlers

import (
	"errors"

	"github.com/axoguild/axobot/internal/bot/command"
	"github.com/axoguild/axobot/internal/bot/views"
	"github.com/axoguild/axobot/internal/database/types"
	"github.com/disgoorg/snowflake/v2"
	"go.uber.org/zap"
)

// handleVoice shows the managed voice channel of the author or the mentioned
// user.
func (h *Hub) handleVoice(ctx *command.Context) {
	targetID := ctx.Author.ID
	if len(ctx.Args) > 0 {
		id, err := ctx.UserArg(0)
		if err != nil {
			ctx.ReplyError("Mention a user or give their ID.")
			return
		}
		targetID = id
	}

	record, err := h.voice.GetByOwner(ctx.Ctx, targetID)
	if err != nil {
		if errors.Is(err, types.ErrVoiceChannelNotFound) {
			if targetID == ctx.Author.ID {
				ctx.ReplyError("You do not own a voice channel right now.")
			} else {
				ctx.ReplyError("That user does not own a voice channel right now.")
			}
			return
		}
		h.logger.Error("Failed to load voice channel", zap.Error(err))
		ctx.ReplyError("Failed to load voice channel information.")
		return
	}

	count := h.voice.MemberCount(snowflake.ID(record.ChannelID))
	ctx.Reply(views.VoiceChannelInfo(record, count))
}
