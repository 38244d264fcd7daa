package handlers

import (
	"sort"

	"github.com/axoguild/axobot/internal/bot/command"
	"github.com/axoguild/axobot/internal/bot/views"
	"go.uber.org/zap"
)

// handleSetupRules posts the persistent rules acceptance prompt into the
// configured rules channel.
func (h *Hub) handleSetupRules(ctx *command.Context) {
	if _, err := h.client.Rest().CreateMessage(h.config.Guild.Channels.Rules, views.RulesPrompt()); err != nil {
		h.logger.Error("Failed to post rules prompt", zap.Error(err))
		ctx.ReplyError("Failed to post the rules prompt.")
		return
	}
	ctx.ReplySuccess("Rules prompt posted.")
}

// handleSetupGroups posts the persistent group selection prompt into the
// configured selection channel.
func (h *Hub) handleSetupGroups(ctx *command.Context) {
	groups := h.config.Guild.GroupNames()
	sort.Strings(groups)

	if _, err := h.client.Rest().CreateMessage(h.config.Guild.Channels.GroupSelect, views.GroupPrompt(groups)); err != nil {
		h.logger.Error("Failed to post group prompt", zap.Error(err))
		ctx.ReplyError("Failed to post the group selection prompt.")
		return
	}
	ctx.ReplySuccess("Group selection prompt posted.")
}
