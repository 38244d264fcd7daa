package views

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/axoguild/axobot/internal/bot/constants"
	"github.com/axoguild/axobot/internal/database/types"
	"github.com/disgoorg/disgo/discord"
)

// UserInfo builds the userinfo reply combining Discord member data with the
// stored profile.
func UserInfo(member discord.Member, user *types.User, warningCount int) discord.MessageCreate {
	group := "none"
	if user != nil && user.Group != "" {
		group = user.Group
	}

	builder := discord.NewEmbedBuilder().
		SetTitle("User Info").
		SetDescription(fmt.Sprintf("<@%s>", member.User.ID)).
		AddField("Username", member.User.Username, true).
		AddField("ID", member.User.ID.String(), true).
		AddField("Group", group, true).
		AddField("Warnings", fmt.Sprintf("%d", warningCount), true).
		SetColor(constants.ColorInfo).
		SetTimestamp(time.Now())

	if !member.JoinedAt.IsZero() {
		builder.AddField("Joined", member.JoinedAt.Format("2006-01-02"), true)
	}
	if user != nil && user.IsMuted() {
		builder.AddField("Muted Until", user.MutedUntil.Format("2006-01-02 15:04"), true)
	}
	builder.SetThumbnail(member.User.EffectiveAvatarURL())

	return discord.NewMessageCreateBuilder().SetEmbeds(builder.Build()).Build()
}

// ServerInfo builds the serverinfo reply.
func ServerInfo(guild discord.Guild, memberCount int, groupCounts map[string]int) discord.MessageCreate {
	builder := discord.NewEmbedBuilder().
		SetTitle(guild.Name).
		AddField("Members", fmt.Sprintf("%d", memberCount), true).
		AddField("Created", guild.ID.Time().Format("2006-01-02"), true).
		SetColor(constants.ColorInfo).
		SetTimestamp(time.Now())

	if len(groupCounts) > 0 {
		names := make([]string, 0, len(groupCounts))
		for name := range groupCounts {
			names = append(names, name)
		}
		sort.Strings(names)

		var sb strings.Builder
		for _, name := range names {
			fmt.Fprintf(&sb, "%s: %d\n", name, groupCounts[name])
		}
		builder.AddField("Groups", sb.String(), false)
	}

	if icon := guild.IconURL(); icon != nil {
		builder.SetThumbnail(*icon)
	}

	return discord.NewMessageCreateBuilder().SetEmbeds(builder.Build()).Build()
}

// GroupInfo builds the reply for the group info command.
func GroupInfo(name string, memberCount int) discord.MessageCreate {
	embed := discord.NewEmbedBuilder().
		SetTitle(fmt.Sprintf("Group: %s", name)).
		AddField("Members", fmt.Sprintf("%d", memberCount), true).
		SetColor(constants.ColorInfo).
		Build()

	return discord.NewMessageCreateBuilder().SetEmbeds(embed).Build()
}

// GroupMembers builds the member listing for a group.
func GroupMembers(name string, members []*types.User) discord.MessageCreate {
	builder := discord.NewEmbedBuilder().
		SetTitle(fmt.Sprintf("Members of %s (%d)", name, len(members))).
		SetColor(constants.ColorInfo)

	if len(members) == 0 {
		builder.SetDescription("This group has no members.")
	} else {
		var sb strings.Builder
		for i, m := range members {
			if i == 50 {
				fmt.Fprintf(&sb, "… and %d more", len(members)-i)
				break
			}
			fmt.Fprintf(&sb, "<@%d> · %s\n", m.ID, m.DisplayName)
		}
		builder.SetDescription(sb.String())
	}

	return discord.NewMessageCreateBuilder().SetEmbeds(builder.Build()).Build()
}

// GroupStats builds the per-group membership breakdown.
func GroupStats(counts map[string]int) discord.MessageCreate {
	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Strings(names)

	builder := discord.NewEmbedBuilder().
		SetTitle("Group Statistics").
		SetColor(constants.ColorInfo)

	total := 0
	for _, name := range names {
		builder.AddField(name, fmt.Sprintf("%d members", counts[name]), true)
		total += counts[name]
	}
	builder.SetDescription(fmt.Sprintf("%d members across %d groups", total, len(names)))

	return discord.NewMessageCreateBuilder().SetEmbeds(builder.Build()).Build()
}

// GroupList builds the listing of configured groups.
func GroupList(groups []string) discord.MessageCreate {
	sorted := make([]string, len(groups))
	copy(sorted, groups)
	sort.Strings(sorted)

	embed := discord.NewEmbedBuilder().
		SetTitle("Configured Groups").
		SetDescription(strings.Join(sorted, "\n")).
		SetColor(constants.ColorInfo).
		Build()

	return discord.NewMessageCreateBuilder().SetEmbeds(embed).Build()
}

// Help builds the command reference reply.
func Help(prefix string, moderator bool) discord.MessageCreate {
	builder := discord.NewEmbedBuilder().
		SetTitle("Commands").
		AddField("General",
			fmt.Sprintf("`%shelp` · this message\n`%suserinfo [@user]` · user profile\n`%sserverinfo` · server overview\n`%svoice [@user]` · voice channel info", prefix, prefix, prefix, prefix),
			false).
		AddField("Groups",
			fmt.Sprintf("`%sgroup info <name>`\n`%sgroup members <name>`\n`%sgroup stats`\n`%sgroup list`", prefix, prefix, prefix, prefix),
			false).
		SetColor(constants.ColorInfo)

	if moderator {
		builder.AddField("Moderation",
			fmt.Sprintf("`%sban @user [reason]`\n`%skick @user [reason]`\n`%smute @user <duration> [reason]`\n`%sunmute @user`\n`%swarn @user <reason>`\n`%swarnings @user`\n`%sclear <count>`",
				prefix, prefix, prefix, prefix, prefix, prefix, prefix),
			false)
		builder.AddField("Group Management",
			fmt.Sprintf("`%sgroup transfer @user <name>`\n`%sgroup remove @user`\n`%sgroup sync`", prefix, prefix, prefix),
			false)
		builder.AddField("Setup",
			fmt.Sprintf("`%ssetup_rules`\n`%ssetup_groups`", prefix, prefix),
			false)
	}

	return discord.NewMessageCreateBuilder().SetEmbeds(builder.Build()).Build()
}
