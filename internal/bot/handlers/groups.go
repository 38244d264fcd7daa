package handlers

import (
	"errors"
	"fmt"
	"strings"

	"github.com/axoguild/axobot/internal/bot/audit"
	"github.com/axoguild/axobot/internal/bot/command"
	"github.com/axoguild/axobot/internal/bot/views"
	"github.com/axoguild/axobot/internal/onboarding"
	"go.uber.org/zap"
)

// handleGroup dispatches the group subcommands. Read-only subcommands are
// open to everyone; the mutating ones need moderation privilege.
func (h *Hub) handleGroup(ctx *command.Context) {
	if len(ctx.Args) == 0 {
		ctx.ReplyError("Usage: group <info|members|stats|list|transfer|remove|sync>")
		return
	}

	sub := strings.ToLower(ctx.Args[0])
	ctx.Args = ctx.Args[1:]

	switch sub {
	case "info":
		h.handleGroupInfo(ctx)
	case "members":
		h.handleGroupMembers(ctx)
	case "stats":
		h.handleGroupStats(ctx)
	case "list":
		ctx.Reply(views.GroupList(h.config.Guild.GroupNames()))
	case "transfer":
		h.requireModerator(h.handleGroupTransfer)(ctx)
	case "remove":
		h.requireModerator(h.handleGroupRemove)(ctx)
	case "sync":
		h.requireModerator(h.handleGroupSync)(ctx)
	default:
		ctx.ReplyError(fmt.Sprintf("Unknown subcommand %q.", sub))
	}
}

func (h *Hub) groupArg(ctx *command.Context, i int) (string, bool) {
	if i >= len(ctx.Args) {
		ctx.ReplyError("Give a group name. See `group list`.")
		return "", false
	}

	name := ctx.Args[i]
	if _, ok := h.config.Guild.GroupRole(name); !ok {
		ctx.ReplyError(fmt.Sprintf("Unknown group %q. See `group list`.", name))
		return "", false
	}
	return name, true
}

func (h *Hub) handleGroupInfo(ctx *command.Context) {
	name, ok := h.groupArg(ctx, 0)
	if !ok {
		return
	}

	members, err := h.db.Model().User().GetGroupMembers(ctx.Ctx, name)
	if err != nil {
		h.logger.Error("Failed to load group members", zap.Error(err))
		ctx.ReplyError("Failed to load group information.")
		return
	}

	ctx.Reply(views.GroupInfo(name, len(members)))
}

func (h *Hub) handleGroupMembers(ctx *command.Context) {
	name, ok := h.groupArg(ctx, 0)
	if !ok {
		return
	}

	members, err := h.db.Model().User().GetGroupMembers(ctx.Ctx, name)
	if err != nil {
		h.logger.Error("Failed to load group members", zap.Error(err))
		ctx.ReplyError("Failed to load group members.")
		return
	}

	ctx.Reply(views.GroupMembers(name, members))
}

func (h *Hub) handleGroupStats(ctx *command.Context) {
	counts, err := h.db.Model().User().GroupCounts(ctx.Ctx)
	if err != nil {
		h.logger.Error("Failed to load group counts", zap.Error(err))
		ctx.ReplyError("Failed to load group statistics.")
		return
	}

	// Configured groups with no members still show up at zero.
	for _, name := range h.config.Guild.GroupNames() {
		if _, ok := counts[name]; !ok {
			counts[name] = 0
		}
	}

	ctx.Reply(views.GroupStats(counts))
}

func (h *Hub) handleGroupTransfer(ctx *command.Context) {
	targetID, err := ctx.UserArg(0)
	if err != nil {
		ctx.ReplyError("Usage: group transfer @user <group>")
		return
	}
	name, ok := h.groupArg(ctx, 1)
	if !ok {
		return
	}

	member, err := h.client.Rest().GetMember(h.config.Guild.ID, targetID)
	if err != nil {
		ctx.ReplyError("That user is not in the server.")
		return
	}

	if err := h.onboarding.SetMemberGroup(ctx.Ctx, *member, name); err != nil {
		h.logger.Error("Group transfer failed", zap.Error(err))
		ctx.ReplyError("Failed to move the user.")
		return
	}

	h.audit.Log(ctx.Ctx, audit.Entry{
		Action:      audit.ActionGroupChanged,
		UserID:      targetID,
		ModeratorID: ctx.Author.ID,
		Details:     map[string]any{"Group": name},
	})

	ctx.ReplySuccess(fmt.Sprintf("Moved <@%s> to **%s**.", targetID, name))
}

func (h *Hub) handleGroupRemove(ctx *command.Context) {
	targetID, err := ctx.UserArg(0)
	if err != nil {
		ctx.ReplyError("Usage: group remove @user")
		return
	}

	member, err := h.client.Rest().GetMember(h.config.Guild.ID, targetID)
	if err != nil {
		ctx.ReplyError("That user is not in the server.")
		return
	}

	if err := h.onboarding.SetMemberGroup(ctx.Ctx, *member, ""); err != nil {
		if errors.Is(err, onboarding.ErrUnknownGroup) {
			ctx.ReplyError("That user is not in a group.")
			return
		}
		h.logger.Error("Group remove failed", zap.Error(err))
		ctx.ReplyError("Failed to remove the user from their group.")
		return
	}

	h.audit.Log(ctx.Ctx, audit.Entry{
		Action:      audit.ActionGroupChanged,
		UserID:      targetID,
		ModeratorID: ctx.Author.ID,
		Details:     map[string]any{"Group": "none"},
	})

	ctx.ReplySuccess(fmt.Sprintf("Removed <@%s> from their group.", targetID))
}

func (h *Hub) handleGroupSync(ctx *command.Context) {
	synced, err := h.onboarding.SyncAll(ctx.Ctx, ctx.Author.ID)
	if err != nil {
		h.logger.Error("Group sync failed", zap.Error(err))
		ctx.ReplyError("Group sync ran into errors; check the logs.")
		return
	}

	ctx.ReplySuccess(fmt.Sprintf("Sync complete. %d members updated.", synced))
}
