package views

import (
	"fmt"
	"time"

	"github.com/axoguild/axobot/internal/bot/constants"
	"github.com/axoguild/axobot/internal/database/types"
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/snowflake/v2"
)

// ModerationResult builds the channel confirmation posted after a moderation
// action succeeds.
func ModerationResult(action string, targetID, moderatorID snowflake.ID, reason string, extra ...discord.EmbedField) discord.MessageCreate {
	builder := discord.NewEmbedBuilder().
		SetTitle(action).
		AddField("User", fmt.Sprintf("<@%s>", targetID), true).
		AddField("Moderator", fmt.Sprintf("<@%s>", moderatorID), true).
		SetColor(constants.ColorWarning).
		SetTimestamp(time.Now())

	if reason != "" {
		builder.AddField("Reason", reason, false)
	}
	for _, f := range extra {
		builder.AddFields(f)
	}

	return discord.NewMessageCreateBuilder().SetEmbeds(builder.Build()).Build()
}

// ModerationDM builds the best-effort direct message sent to the target of a
// moderation action.
func ModerationDM(action, guildName, reason string) discord.MessageCreate {
	desc := fmt.Sprintf("You have received a **%s** in **%s**.", action, guildName)
	embed := discord.NewEmbedBuilder().
		SetTitle("Moderation Notice").
		SetDescription(desc).
		SetColor(constants.ColorWarning).
		SetTimestamp(time.Now())

	if reason != "" {
		embed.AddField("Reason", reason, false)
	}

	return discord.NewMessageCreateBuilder().SetEmbeds(embed.Build()).Build()
}

// WarningList builds the reply for the warnings command.
func WarningList(userID snowflake.ID, warnings []*types.Warning) discord.MessageCreate {
	builder := discord.NewEmbedBuilder().
		SetTitle(fmt.Sprintf("Warnings (%d)", len(warnings))).
		SetDescription(fmt.Sprintf("Warnings for <@%s>", userID)).
		SetColor(constants.ColorWarning)

	if len(warnings) == 0 {
		builder.SetDescription(fmt.Sprintf("<@%s> has no warnings.", userID))
	}

	// Discord caps embeds at 25 fields.
	for i, w := range warnings {
		if i == 25 {
			break
		}
		builder.AddField(
			fmt.Sprintf("#%d · %s", w.ID, w.CreatedAt.Format("2006-01-02 15:04")),
			fmt.Sprintf("%s\n*by <@%d>*", w.Reason, w.ModeratorID),
			false,
		)
	}

	return discord.NewMessageCreateBuilder().SetEmbeds(builder.Build()).Build()
}

// Error builds a short red error reply.
func Error(message string) discord.MessageCreate {
	embed := discord.NewEmbedBuilder().
		SetDescription("❌ " + message).
		SetColor(constants.ColorError).
		Build()

	return discord.NewMessageCreateBuilder().SetEmbeds(embed).Build()
}

// Success builds a short green confirmation reply.
func Success(message string) discord.MessageCreate {
	embed := discord.NewEmbedBuilder().
		SetDescription("✅ " + message).
		SetColor(constants.ColorSuccess).
		Build()

	return discord.NewMessageCreateBuilder().SetEmbeds(embed).Build()
}
