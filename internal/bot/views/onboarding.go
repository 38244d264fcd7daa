package views

import (
	"fmt"
	"strings"
	"time"

	"github.com/axoguild/axobot/internal/bot/constants"
	"github.com/axoguild/axobot/internal/bot/customid"
	"github.com/axoguild/axobot/internal/database/types"
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/snowflake/v2"
)

// RulesPrompt builds the persistent rules acceptance message posted into the
// rules channel.
func RulesPrompt() discord.MessageCreate {
	embed := discord.NewEmbedBuilder().
		SetTitle("Server Rules").
		SetDescription("Please read the rules above, then press the button below to accept them and unlock the server.").
		SetColor(constants.ColorDefault).
		Build()

	return discord.NewMessageCreateBuilder().
		SetEmbeds(embed).
		AddActionRow(
			discord.NewSuccessButton("✅ I accept the rules", customid.New(constants.KindRules, constants.RulesActionAccept)),
		).
		Build()
}

// GroupPrompt builds the persistent group selection message. One button per
// configured group, with the group key carried in the custom ID.
func GroupPrompt(groups []string) discord.MessageCreate {
	embed := discord.NewEmbedBuilder().
		SetTitle("Group Selection").
		SetDescription("Pick your group below. You will be asked for your full name, and a moderator will review your application.").
		SetColor(constants.ColorDefault).
		Build()

	builder := discord.NewMessageCreateBuilder().SetEmbeds(embed)

	// Discord allows at most five buttons per row.
	var row []discord.InteractiveComponent
	for _, group := range groups {
		row = append(row, discord.NewPrimaryButton(group,
			customid.New(constants.KindGroup, constants.GroupActionSelect, group)))
		if len(row) == 5 {
			builder.AddActionRow(row...)
			row = nil
		}
	}
	if len(row) > 0 {
		builder.AddActionRow(row...)
	}

	return builder.Build()
}

// ApplicationModal builds the full name input modal shown after a group
// button press.
func ApplicationModal(group string) discord.ModalCreate {
	return discord.NewModalCreateBuilder().
		SetCustomID(customid.New(constants.KindGroup, constants.GroupActionApply, group)).
		SetTitle(fmt.Sprintf("Apply to %s", group)).
		AddActionRow(discord.NewShortTextInput(constants.InputFullName, "Full name").
			WithRequired(true).
			WithMinLength(3).
			WithMaxLength(100).
			WithPlaceholder("First and last name")).
		Build()
}

// ApplicationReview builds the review message posted into the applications
// channel. The reviewer roles are mentioned in the content so they get
// notified.
func ApplicationReview(app *types.Application, reviewerRoles []snowflake.ID) discord.MessageCreate {
	embed := discord.NewEmbedBuilder().
		SetTitle("New Application").
		AddField("Applicant", fmt.Sprintf("<@%d>", app.UserID), true).
		AddField("Group", app.Group, true).
		AddField("Full Name", app.FullName, false).
		SetColor(constants.ColorInfo).
		SetTimestamp(app.SubmittedAt).
		Build()

	id := fmt.Sprintf("%d", app.ID)

	mentions := make([]string, 0, len(reviewerRoles))
	for _, roleID := range reviewerRoles {
		mentions = append(mentions, fmt.Sprintf("<@&%d>", roleID))
	}

	return discord.NewMessageCreateBuilder().
		SetContent(strings.Join(mentions, " ")).
		SetEmbeds(embed).
		AddActionRow(
			discord.NewSuccessButton("Approve", customid.New(constants.KindApplication, constants.ApplicationActionApprove, id)),
			discord.NewDangerButton("Reject", customid.New(constants.KindApplication, constants.ApplicationActionReject, id)),
		).
		Build()
}

// ApplicationResolved rewrites a review message after a decision, replacing
// the buttons with the outcome so nobody can act on it twice.
func ApplicationResolved(app *types.Application, reviewerID snowflake.ID, approved bool) discord.MessageUpdate {
	verdict := "Rejected"
	color := constants.ColorError
	if approved {
		verdict = "Approved"
		color = constants.ColorSuccess
	}

	embed := discord.NewEmbedBuilder().
		SetTitle(fmt.Sprintf("Application %s", verdict)).
		AddField("Applicant", fmt.Sprintf("<@%d>", app.UserID), true).
		AddField("Group", app.Group, true).
		AddField("Full Name", app.FullName, false).
		AddField("Reviewed By", fmt.Sprintf("<@%s>", reviewerID), true).
		SetColor(color).
		SetTimestamp(time.Now()).
		Build()

	return discord.NewMessageUpdateBuilder().
		SetEmbeds(embed).
		SetContainerComponents().
		Build()
}

// ApplicationDecisionDM builds the direct message sent to an applicant after
// their application is reviewed.
func ApplicationDecisionDM(group string, approved bool) discord.MessageCreate {
	var embed discord.Embed
	if approved {
		embed = discord.NewEmbedBuilder().
			SetTitle("Application Approved").
			SetDescription(fmt.Sprintf("Welcome! Your application to **%s** was approved.", group)).
			SetColor(constants.ColorSuccess).
			Build()
	} else {
		embed = discord.NewEmbedBuilder().
			SetTitle("Application Rejected").
			SetDescription(fmt.Sprintf("Your application to **%s** was rejected. You may apply again.", group)).
			SetColor(constants.ColorError).
			Build()
	}

	return discord.NewMessageCreateBuilder().SetEmbeds(embed).Build()
}
