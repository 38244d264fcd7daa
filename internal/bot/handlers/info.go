package handlers

import (
	"errors"

	"github.com/axoguild/axobot/internal/bot/command"
	"github.com/axoguild/axobot/internal/bot/views"
	"github.com/axoguild/axobot/internal/database/types"
	"go.uber.org/zap"
)

func (h *Hub) handleUserInfo(ctx *command.Context) {
	targetID := ctx.Author.ID
	if len(ctx.Args) > 0 {
		id, err := ctx.UserArg(0)
		if err != nil {
			ctx.ReplyError("Mention a user or give their ID.")
			return
		}
		targetID = id
	}

	member, err := h.client.Rest().GetMember(h.config.Guild.ID, targetID)
	if err != nil {
		ctx.ReplyError("That user is not in the server.")
		return
	}

	user, err := h.db.Model().User().Get(ctx.Ctx, uint64(targetID))
	if err != nil && !errors.Is(err, types.ErrUserNotFound) {
		h.logger.Error("Failed to load user profile", zap.Error(err))
		ctx.ReplyError("Failed to load the user profile.")
		return
	}

	warningCount := 0
	if user != nil {
		warningCount = user.WarningCount
	}

	ctx.Reply(views.UserInfo(*member, user, warningCount))
}

func (h *Hub) handleServerInfo(ctx *command.Context) {
	guild, ok := h.client.Caches().Guild(h.config.Guild.ID)
	if !ok {
		ctx.ReplyError("Guild data is not available yet, try again shortly.")
		return
	}

	counts, err := h.db.Model().User().GroupCounts(ctx.Ctx)
	if err != nil {
		h.logger.Error("Failed to load group counts", zap.Error(err))
		counts = nil
	}

	memberCount, err := h.db.Model().User().Count(ctx.Ctx)
	if err != nil {
		h.logger.Error("Failed to count users", zap.Error(err))
	}

	ctx.Reply(views.ServerInfo(guild, memberCount, counts))
}

func (h *Hub) handleHelp(ctx *command.Context) {
	ctx.Reply(views.Help(h.config.Discord.CommandPrefix, h.isModerator(ctx)))
}
