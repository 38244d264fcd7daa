package views

import (
	"fmt"
	"strconv"

	"github.com/axoguild/axobot/internal/bot/constants"
	"github.com/axoguild/axobot/internal/bot/customid"
	"github.com/axoguild/axobot/internal/database/types"
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/snowflake/v2"
)

// VoiceControlPanel builds the control panel message posted into a freshly
// created voice channel. Custom IDs carry the channel ID so the panel keeps
// working after a restart.
func VoiceControlPanel(channelID snowflake.ID, ownerID snowflake.ID, locked bool) discord.MessageCreate {
	cid := channelID.String()

	state := "🔓 Unlocked"
	if locked {
		state = "🔒 Locked"
	}

	embed := discord.NewEmbedBuilder().
		SetTitle("Voice Channel Controls").
		SetDescription(fmt.Sprintf("Owner: <@%s>\nState: %s", ownerID, state)).
		AddField("Lock / Unlock", "Control who can join your channel.", true).
		AddField("Limit", "Set a user limit between 0 and 99.", true).
		AddField("Rename", "Give your channel a new name.", true).
		AddField("Transfer", "Hand ownership to someone in the channel.", true).
		AddField("Delete", "Remove the channel for everyone.", true).
		SetColor(constants.ColorInfo).
		Build()

	return discord.NewMessageCreateBuilder().
		SetEmbeds(embed).
		AddActionRow(
			discord.NewSecondaryButton("🔒 Lock", customid.New(constants.KindVoice, constants.VoiceActionLock, cid)),
			discord.NewSecondaryButton("🔓 Unlock", customid.New(constants.KindVoice, constants.VoiceActionUnlock, cid)),
			discord.NewSecondaryButton("👥 Limit", customid.New(constants.KindVoice, constants.VoiceActionLimit, cid)),
		).
		AddActionRow(
			discord.NewSecondaryButton("✏️ Rename", customid.New(constants.KindVoice, constants.VoiceActionRename, cid)),
			discord.NewSecondaryButton("👑 Transfer", customid.New(constants.KindVoice, constants.VoiceActionTransfer, cid)),
			discord.NewDangerButton("🗑️ Delete", customid.New(constants.KindVoice, constants.VoiceActionDelete, cid)),
		).
		Build()
}

// VoiceDeleteConfirm builds the ephemeral confirmation prompt shown before a
// channel is deleted. The token ties the prompt to a short-lived record so
// stale confirmations expire.
func VoiceDeleteConfirm(channelID snowflake.ID, token string) discord.MessageCreate {
	cid := channelID.String()

	embed := discord.NewEmbedBuilder().
		SetTitle("Delete Voice Channel").
		SetDescription("Are you sure? This will disconnect everyone in the channel.").
		SetColor(constants.ColorWarning).
		Build()

	return discord.NewMessageCreateBuilder().
		SetEmbeds(embed).
		AddActionRow(
			discord.NewDangerButton("Delete", customid.New(constants.KindVoice, constants.VoiceActionConfirm, cid, token)),
			discord.NewSecondaryButton("Cancel", customid.New(constants.KindVoice, constants.VoiceActionCancel, cid)),
		).
		SetEphemeral(true).
		Build()
}

// VoiceChannelInfo builds the reply for the voice info command.
func VoiceChannelInfo(channel *types.VoiceChannel, memberCount int) discord.MessageCreate {
	state := "🔓 Unlocked"
	if channel.IsLocked {
		state = "🔒 Locked"
	}

	embed := discord.NewEmbedBuilder().
		SetTitle("Voice Channel").
		AddField("Channel", fmt.Sprintf("<#%d>", channel.ChannelID), true).
		AddField("Owner", fmt.Sprintf("<@%d>", channel.OwnerID), true).
		AddField("State", state, true).
		AddField("Members", strconv.Itoa(memberCount), true).
		AddField("Created", channel.CreatedAt.Format("2006-01-02 15:04"), true).
		SetColor(constants.ColorInfo).
		Build()

	return discord.NewMessageCreateBuilder().SetEmbeds(embed).Build()
}

// VoiceLimitModal builds the user limit input modal.
func VoiceLimitModal(channelID snowflake.ID) discord.ModalCreate {
	return discord.NewModalCreateBuilder().
		SetCustomID(customid.New(constants.KindVoice, constants.VoiceActionLimit, channelID.String())).
		SetTitle("Set User Limit").
		AddActionRow(discord.NewShortTextInput(constants.InputUserLimit, "User limit (0 = unlimited)").
			WithRequired(true).
			WithMinLength(1).
			WithMaxLength(2).
			WithPlaceholder(strconv.Itoa(constants.MaxUserLimit))).
		Build()
}

// VoiceRenameModal builds the rename input modal.
func VoiceRenameModal(channelID snowflake.ID, currentName string) discord.ModalCreate {
	return discord.NewModalCreateBuilder().
		SetCustomID(customid.New(constants.KindVoice, constants.VoiceActionRename, channelID.String())).
		SetTitle("Rename Channel").
		AddActionRow(discord.NewShortTextInput(constants.InputName, "New name").
			WithRequired(true).
			WithMinLength(constants.MinNameLen).
			WithMaxLength(constants.MaxNameLen).
			WithValue(currentName)).
		Build()
}

// VoiceTransferModal builds the ownership transfer modal. The new owner is
// entered as a user ID or mention.
func VoiceTransferModal(channelID snowflake.ID) discord.ModalCreate {
	return discord.NewModalCreateBuilder().
		SetCustomID(customid.New(constants.KindVoice, constants.VoiceActionTransfer, channelID.String())).
		SetTitle("Transfer Ownership").
		AddActionRow(discord.NewShortTextInput(constants.InputNewOwner, "New owner (user ID or @mention)").
			WithRequired(true).
			WithMinLength(1).
			WithMaxLength(32)).
		Build()
}
