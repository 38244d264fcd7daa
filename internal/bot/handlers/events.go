package handlers

import (
	"context"
	"fmt"

	"github.com/axoguild/axobot/internal/bot/audit"
	"github.com/disgoorg/disgo/events"
	"github.com/disgoorg/snowflake/v2"
	"go.uber.org/zap"
)

// OnReady runs startup reconciliation once the gateway session is live.
func (h *Hub) OnReady(_ *events.Ready) {
	h.logger.Info("Gateway session ready")

	go func() {
		if err := h.voice.Reconcile(context.Background()); err != nil {
			h.logger.Error("Voice reconciliation failed", zap.Error(err))
		}
	}()
}

// OnMessageCreate feeds guild messages into the command router.
func (h *Hub) OnMessageCreate(event *events.MessageCreate) {
	h.router.Dispatch(event)
}

// OnGuildMemberJoin records the new member.
func (h *Hub) OnGuildMemberJoin(event *events.GuildMemberJoin) {
	if event.Member.User.Bot {
		return
	}
	h.onboarding.HandleMemberJoin(context.Background(), event.Member)
}

// OnGuildMemberLeave closes out the leaver's pending application.
func (h *Hub) OnGuildMemberLeave(event *events.GuildMemberLeave) {
	if event.User.Bot {
		return
	}
	h.onboarding.HandleMemberLeave(context.Background(), event.User)
}

// OnGuildMemberUpdate keeps the stored group aligned with role changes and
// logs the role diff.
func (h *Hub) OnGuildMemberUpdate(event *events.GuildMemberUpdate) {
	if event.Member.User.Bot {
		return
	}

	ctx := context.Background()

	added, removed := diffRoles(event.OldMember.RoleIDs, event.Member.RoleIDs)
	if len(added) == 0 && len(removed) == 0 {
		return
	}

	if err := h.onboarding.SyncMember(ctx, event.Member); err != nil {
		h.logger.Error("Failed to sync member group",
			zap.Uint64("userID", uint64(event.Member.User.ID)),
			zap.Error(err))
	}

	details := map[string]any{}
	if len(added) > 0 {
		details["Added"] = mentionRoles(added)
	}
	if len(removed) > 0 {
		details["Removed"] = mentionRoles(removed)
	}

	h.audit.Log(ctx, audit.Entry{
		Action:  audit.ActionRolesChanged,
		UserID:  event.Member.User.ID,
		Details: details,
	})
}

// OnGuildVoiceStateUpdate drives the ephemeral voice channel lifecycle.
func (h *Hub) OnGuildVoiceStateUpdate(event *events.GuildVoiceStateUpdate) {
	if event.Member.User.Bot {
		return
	}

	var oldChannelID *snowflake.ID
	if event.OldVoiceState.ChannelID != nil {
		oldChannelID = event.OldVoiceState.ChannelID
	}

	h.voice.HandleStateUpdate(context.Background(), event.Member, oldChannelID, event.VoiceState.ChannelID)
}

// OnGuildMessageDelete logs deleted messages with whatever content the cache
// still holds.
func (h *Hub) OnGuildMessageDelete(event *events.GuildMessageDelete) {
	if event.Message.Author.Bot {
		return
	}

	details := map[string]any{
		"Channel": fmt.Sprintf("<#%s>", event.ChannelID),
	}
	if event.Message.Content != "" {
		details["Content"] = truncate(event.Message.Content, 1000)
	}

	h.audit.Log(context.Background(), audit.Entry{
		Action:  audit.ActionMessageDeleted,
		UserID:  event.Message.Author.ID,
		Details: details,
	})
}

// OnGuildMessageUpdate logs message edits with the before and after text.
func (h *Hub) OnGuildMessageUpdate(event *events.GuildMessageUpdate) {
	if event.Message.Author.Bot {
		return
	}
	if event.OldMessage.Content == event.Message.Content {
		// Embed unfurls and pin changes also fire this event.
		return
	}

	details := map[string]any{
		"Channel": fmt.Sprintf("<#%s>", event.ChannelID),
		"After":   truncate(event.Message.Content, 1000),
	}
	if event.OldMessage.Content != "" {
		details["Before"] = truncate(event.OldMessage.Content, 1000)
	}

	h.audit.Log(context.Background(), audit.Entry{
		Action:  audit.ActionMessageEdited,
		UserID:  event.Message.Author.ID,
		Details: details,
	})
}

func diffRoles(before, after []snowflake.ID) (added, removed []snowflake.ID) {
	old := make(map[snowflake.ID]struct{}, len(before))
	for _, id := range before {
		old[id] = struct{}{}
	}

	current := make(map[snowflake.ID]struct{}, len(after))
	for _, id := range after {
		current[id] = struct{}{}
		if _, ok := old[id]; !ok {
			added = append(added, id)
		}
	}
	for _, id := range before {
		if _, ok := current[id]; !ok {
			removed = append(removed, id)
		}
	}

	return added, removed
}

func mentionRoles(ids []snowflake.ID) string {
	out := ""
	for i, id := range ids {
		if i > 0 {
			out += " "
		}
		out += fmt.Sprintf("<@&%s>", id)
	}
	return out
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "…"
}
