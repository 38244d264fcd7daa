package handlers

import (
	"context"
	"errors"
	"fmt"

	"github.com/axoguild/axobot/internal/bot/command"
	"github.com/axoguild/axobot/internal/bot/constants"
	"github.com/axoguild/axobot/internal/bot/customid"
	"github.com/axoguild/axobot/internal/bot/permission"
	"github.com/axoguild/axobot/internal/bot/views"
	"github.com/axoguild/axobot/internal/database/types"
	"github.com/axoguild/axobot/internal/onboarding"
	"github.com/axoguild/axobot/internal/voice"
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/events"
	"github.com/disgoorg/snowflake/v2"
	"go.uber.org/zap"
)

// OnComponent routes button presses by their custom ID payload.
func (h *Hub) OnComponent(event *events.ComponentInteractionCreate) {
	payload, err := customid.Parse(event.Data.CustomID())
	if err != nil {
		h.logger.Warn("Unroutable component interaction",
			zap.String("custom_id", event.Data.CustomID()),
			zap.Error(err))
		return
	}

	ctx := context.Background()

	switch payload.Kind {
	case constants.KindRules:
		h.componentRules(ctx, event)
	case constants.KindGroup:
		h.componentGroupSelect(event, payload)
	case constants.KindApplication:
		h.componentApplicationReview(ctx, event, payload)
	case constants.KindVoice:
		h.componentVoice(ctx, event, payload)
	default:
		h.logger.Warn("Unknown component kind", zap.String("kind", payload.Kind))
	}
}

// OnModal routes modal submissions by their custom ID payload.
func (h *Hub) OnModal(event *events.ModalSubmitInteractionCreate) {
	payload, err := customid.Parse(event.Data.CustomID)
	if err != nil {
		h.logger.Warn("Unroutable modal submission",
			zap.String("custom_id", event.Data.CustomID),
			zap.Error(err))
		return
	}

	ctx := context.Background()

	switch payload.Kind {
	case constants.KindGroup:
		h.modalApplication(ctx, event, payload)
	case constants.KindVoice:
		h.modalVoice(ctx, event, payload)
	default:
		h.logger.Warn("Unknown modal kind", zap.String("kind", payload.Kind))
	}
}

func (h *Hub) componentRules(ctx context.Context, event *events.ComponentInteractionCreate) {
	member := event.Member()
	if member == nil {
		return
	}

	first, err := h.onboarding.AcceptRules(ctx, member.Member)
	if err != nil {
		h.logger.Error("Rules acceptance failed", zap.Error(err))
		h.ephemeral(event, views.Error("Something went wrong, try again."))
		return
	}

	if first {
		h.ephemeral(event, views.Success("Welcome! You now have access to the server."))
	} else {
		h.ephemeral(event, views.Success("You have already accepted the rules."))
	}
}

func (h *Hub) componentGroupSelect(event *events.ComponentInteractionCreate, payload customid.Payload) {
	member := event.Member()
	if member == nil {
		return
	}
	group := payload.Arg(0)

	if err := h.onboarding.CheckEligibility(member.Member); err != nil {
		switch {
		case errors.Is(err, onboarding.ErrNotGuest):
			h.ephemeral(event, views.Error("Accept the rules first."))
		case errors.Is(err, onboarding.ErrAlreadyInGroup):
			h.ephemeral(event, views.Error("You already belong to a group. Ask a moderator to move you."))
		default:
			h.ephemeral(event, views.Error("You cannot apply right now."))
		}
		return
	}

	if _, ok := h.config.Guild.GroupRole(group); !ok {
		h.ephemeral(event, views.Error("That group no longer exists."))
		return
	}

	if err := event.Modal(views.ApplicationModal(group)); err != nil {
		h.logger.Error("Failed to open application modal", zap.Error(err))
	}
}

func (h *Hub) componentApplicationReview(ctx context.Context, event *events.ComponentInteractionCreate, payload customid.Payload) {
	member := event.Member()
	if member == nil {
		return
	}

	if !permission.IsModerator(&h.config.Guild, member.RoleIDs) {
		h.ephemeral(event, views.Error("Only moderators can review applications."))
		return
	}

	appID, err := payload.Int64Arg(0)
	if err != nil {
		h.logger.Warn("Bad application payload", zap.Error(err))
		return
	}
	approve := payload.Action == constants.ApplicationActionApprove

	app, err := h.onboarding.Review(ctx, appID, approve, member.User.ID)
	if err != nil {
		msg, known := reviewFailureMessage(err)
		if !known {
			h.logger.Error("Application review failed", zap.Error(err))
		}
		h.ephemeral(event, views.Error(msg))
		return
	}

	if err := event.UpdateMessage(views.ApplicationResolved(app, member.User.ID, approve)); err != nil {
		h.logger.Error("Failed to update review message", zap.Error(err))
	}
}

// reviewFailureMessage maps a failed review to the notice shown to the
// reviewer. The bool is false for unexpected errors worth logging.
func reviewFailureMessage(err error) (string, bool) {
	switch {
	case errors.Is(err, types.ErrAlreadyReviewed):
		return "This application was already reviewed.", true
	case errors.Is(err, onboarding.ErrApplicantGone):
		return "The applicant has left the server.", true
	case errors.Is(err, types.ErrApplicationNotFound):
		return "This application no longer exists.", true
	case errors.Is(err, onboarding.ErrGroupAssignFailed):
		return "Approved, but granting the group role failed. Assign it manually.", true
	default:
		return "Review failed, try again.", false
	}
}

func (h *Hub) componentVoice(ctx context.Context, event *events.ComponentInteractionCreate, payload customid.Payload) {
	member := event.Member()
	if member == nil {
		return
	}

	rawChannelID, err := payload.Uint64Arg(0)
	if err != nil {
		h.logger.Warn("Bad voice payload", zap.Error(err))
		return
	}
	channelID := snowflake.ID(rawChannelID)

	record, err := h.voice.Get(ctx, channelID)
	if err != nil {
		if errors.Is(err, types.ErrVoiceChannelNotFound) {
			h.ephemeral(event, views.Error("This channel is no longer managed."))
			return
		}
		h.logger.Error("Failed to load voice channel", zap.Error(err))
		h.ephemeral(event, views.Error("Something went wrong, try again."))
		return
	}

	if !permission.CanControlVoice(&h.config.Guild, member.User.ID, snowflake.ID(record.OwnerID), member.RoleIDs) {
		h.ephemeral(event, views.Error("Only the channel owner can use these controls."))
		return
	}

	switch payload.Action {
	case constants.VoiceActionLock:
		h.voiceSetLocked(ctx, event, channelID, true)
	case constants.VoiceActionUnlock:
		h.voiceSetLocked(ctx, event, channelID, false)
	case constants.VoiceActionLimit:
		if err := event.Modal(views.VoiceLimitModal(channelID)); err != nil {
			h.logger.Error("Failed to open limit modal", zap.Error(err))
		}
	case constants.VoiceActionRename:
		if err := event.Modal(views.VoiceRenameModal(channelID, record.Name)); err != nil {
			h.logger.Error("Failed to open rename modal", zap.Error(err))
		}
	case constants.VoiceActionTransfer:
		if err := event.Modal(views.VoiceTransferModal(channelID)); err != nil {
			h.logger.Error("Failed to open transfer modal", zap.Error(err))
		}
	case constants.VoiceActionDelete:
		token, err := h.voice.Confirm().Issue(ctx, channelID)
		if err != nil {
			h.logger.Error("Failed to issue confirm token", zap.Error(err))
			h.ephemeral(event, views.Error("Something went wrong, try again."))
			return
		}
		if err := event.CreateMessage(views.VoiceDeleteConfirm(channelID, token)); err != nil {
			h.logger.Error("Failed to send confirm prompt", zap.Error(err))
		}
	case constants.VoiceActionConfirm:
		h.voiceConfirmDelete(ctx, event, payload, channelID, member.User.ID)
	case constants.VoiceActionCancel:
		if err := h.voice.Confirm().Cancel(ctx, channelID); err != nil {
			h.logger.Error("Failed to cancel confirm token", zap.Error(err))
		}
		h.updateEphemeral(event, "Deletion cancelled.")
	default:
		h.logger.Warn("Unknown voice action", zap.String("action", payload.Action))
	}
}

func (h *Hub) voiceSetLocked(ctx context.Context, event *events.ComponentInteractionCreate, channelID snowflake.ID, locked bool) {
	if err := h.voice.SetLocked(ctx, channelID, locked); err != nil {
		h.logger.Error("Failed to set lock state", zap.Error(err))
		h.ephemeral(event, views.Error("Failed to update the channel."))
		return
	}

	if locked {
		h.ephemeral(event, views.Success("Channel locked."))
	} else {
		h.ephemeral(event, views.Success("Channel unlocked."))
	}
}

func (h *Hub) voiceConfirmDelete(ctx context.Context, event *events.ComponentInteractionCreate, payload customid.Payload, channelID snowflake.ID, actorID snowflake.ID) {
	token := payload.Arg(1)

	ok, err := h.voice.Confirm().Consume(ctx, channelID, token)
	if err != nil {
		h.logger.Error("Failed to check confirm token", zap.Error(err))
		h.ephemeral(event, views.Error("Something went wrong, try again."))
		return
	}
	if !ok {
		h.updateEphemeral(event, "This confirmation has expired. Press Delete again.")
		return
	}

	if err := h.voice.Delete(ctx, channelID, actorID); err != nil {
		h.logger.Error("Failed to delete voice channel", zap.Error(err))
		h.ephemeral(event, views.Error("Failed to delete the channel."))
		return
	}

	h.updateEphemeral(event, "Channel deleted.")
}

func (h *Hub) modalApplication(ctx context.Context, event *events.ModalSubmitInteractionCreate, payload customid.Payload) {
	member := event.Member()
	if member == nil {
		return
	}
	group := payload.Arg(0)
	fullName := event.Data.Text(constants.InputFullName)

	app, err := h.onboarding.Submit(ctx, member.Member, group, fullName)
	if err != nil {
		switch {
		case errors.Is(err, onboarding.ErrInvalidFullName):
			h.ephemeralModal(event, views.Error("Enter your full name, at least first and last name."))
		case errors.Is(err, types.ErrPendingExists):
			h.ephemeralModal(event, views.Error("You already have an application waiting for review."))
		case errors.Is(err, onboarding.ErrUnknownGroup):
			h.ephemeralModal(event, views.Error("That group no longer exists."))
		default:
			h.logger.Error("Application submit failed", zap.Error(err))
			h.ephemeralModal(event, views.Error("Something went wrong, try again."))
		}
		return
	}

	h.ephemeralModal(event, views.Success(fmt.Sprintf(
		"Application #%d to **%s** submitted. You will get a DM once it is reviewed.", app.ID, app.Group)))
}

func (h *Hub) modalVoice(ctx context.Context, event *events.ModalSubmitInteractionCreate, payload customid.Payload) {
	member := event.Member()
	if member == nil {
		return
	}

	rawChannelID, err := payload.Uint64Arg(0)
	if err != nil {
		h.logger.Warn("Bad voice modal payload", zap.Error(err))
		return
	}
	channelID := snowflake.ID(rawChannelID)

	record, err := h.voice.Get(ctx, channelID)
	if err != nil {
		h.ephemeralModal(event, views.Error("This channel is no longer managed."))
		return
	}
	if !permission.CanControlVoice(&h.config.Guild, member.User.ID, snowflake.ID(record.OwnerID), member.RoleIDs) {
		h.ephemeralModal(event, views.Error("Only the channel owner can use these controls."))
		return
	}

	switch payload.Action {
	case constants.VoiceActionLimit:
		limit, err := voice.ParseUserLimit(event.Data.Text(constants.InputUserLimit))
		if err != nil {
			h.ephemeralModal(event, views.Error("The limit must be a number between 0 and 99."))
			return
		}
		if err := h.voice.SetLimit(ctx, channelID, limit); err != nil {
			h.logger.Error("Failed to set user limit", zap.Error(err))
			h.ephemeralModal(event, views.Error("Failed to update the channel."))
			return
		}
		if limit == 0 {
			h.ephemeralModal(event, views.Success("User limit removed."))
		} else {
			h.ephemeralModal(event, views.Success(fmt.Sprintf("User limit set to %d.", limit)))
		}

	case constants.VoiceActionRename:
		name, err := voice.ValidateName(event.Data.Text(constants.InputName))
		if err != nil {
			h.ephemeralModal(event, views.Error("The name must be 1 to 100 characters."))
			return
		}
		if err := h.voice.Rename(ctx, channelID, name); err != nil {
			h.logger.Error("Failed to rename channel", zap.Error(err))
			h.ephemeralModal(event, views.Error("Failed to rename the channel."))
			return
		}
		h.ephemeralModal(event, views.Success(fmt.Sprintf("Channel renamed to **%s**.", name)))

	case constants.VoiceActionTransfer:
		newOwnerID, err := command.ParseUserArg(event.Data.Text(constants.InputNewOwner))
		if err != nil {
			h.ephemeralModal(event, views.Error("Enter a user ID or @mention."))
			return
		}
		if err := h.voice.Transfer(ctx, channelID, newOwnerID); err != nil {
			if errors.Is(err, voice.ErrNotInChannel) {
				h.ephemeralModal(event, views.Error("The new owner must be in the channel."))
				return
			}
			h.logger.Error("Failed to transfer ownership", zap.Error(err))
			h.ephemeralModal(event, views.Error("Failed to transfer ownership."))
			return
		}
		h.ephemeralModal(event, views.Success(fmt.Sprintf("Ownership transferred to <@%s>.", newOwnerID)))

	default:
		h.logger.Warn("Unknown voice modal action", zap.String("action", payload.Action))
	}
}

func (h *Hub) ephemeral(event *events.ComponentInteractionCreate, message discord.MessageCreate) {
	message.Flags = message.Flags.Add(discord.MessageFlagEphemeral)
	if err := event.CreateMessage(message); err != nil {
		h.logger.Error("Failed to respond to component", zap.Error(err))
	}
}

func (h *Hub) ephemeralModal(event *events.ModalSubmitInteractionCreate, message discord.MessageCreate) {
	message.Flags = message.Flags.Add(discord.MessageFlagEphemeral)
	if err := event.CreateMessage(message); err != nil {
		h.logger.Error("Failed to respond to modal", zap.Error(err))
	}
}

func (h *Hub) updateEphemeral(event *events.ComponentInteractionCreate, text string) {
	update := discord.NewMessageUpdateBuilder().
		SetEmbeds(discord.NewEmbedBuilder().
			SetDescription(text).
			SetColor(constants.ColorInfo).
			Build()).
		SetContainerComponents().
		Build()

	if err := event.UpdateMessage(update); err != nil {
		h.logger.Error("Failed to update prompt", zap.Error(err))
	}
}
