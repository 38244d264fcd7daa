package permission_test

import (
	"testing"

	"github.com/axoguild/axobot/internal/bot/permission"
	"github.com/axoguild/axobot/internal/setup/config"
	"github.com/disgoorg/snowflake/v2"
	"github.com/stretchr/testify/assert"
)

const (
	modRoleID   = snowflake.ID(100)
	guestRoleID = snowflake.ID(200)
)

func testGuild() *config.Guild {
	return &config.Guild{
		GuestRoleID:    guestRoleID,
		ModeratorRoles: []snowflake.ID{modRoleID},
	}
}

func TestIsModerator(t *testing.T) {
	t.Parallel()

	guild := testGuild()

	assert.True(t, permission.IsModerator(guild, []snowflake.ID{guestRoleID, modRoleID}))
	assert.False(t, permission.IsModerator(guild, []snowflake.ID{guestRoleID}))
	assert.False(t, permission.IsModerator(guild, nil))
}

func TestCanModerate(t *testing.T) {
	t.Parallel()

	guild := testGuild()
	actor := snowflake.ID(1)
	target := snowflake.ID(2)
	modRoles := []snowflake.ID{modRoleID}
	memberRoles := []snowflake.ID{guestRoleID}

	tests := []struct {
		name        string
		actorID     snowflake.ID
		targetID    snowflake.ID
		actorRoles  []snowflake.ID
		targetRoles []snowflake.ID
		want        bool
	}{
		{
			name:        "moderator targets member",
			actorID:     actor,
			targetID:    target,
			actorRoles:  modRoles,
			targetRoles: memberRoles,
			want:        true,
		},
		{
			name:        "member cannot moderate",
			actorID:     actor,
			targetID:    target,
			actorRoles:  memberRoles,
			targetRoles: memberRoles,
			want:        false,
		},
		{
			name:        "moderator cannot target moderator",
			actorID:     actor,
			targetID:    target,
			actorRoles:  modRoles,
			targetRoles: modRoles,
			want:        false,
		},
		{
			name:        "cannot target self",
			actorID:     actor,
			targetID:    actor,
			actorRoles:  modRoles,
			targetRoles: modRoles,
			want:        false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := permission.CanModerate(guild, tt.actorID, tt.targetID, tt.actorRoles, tt.targetRoles)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCanControlVoice(t *testing.T) {
	t.Parallel()

	guild := testGuild()
	owner := snowflake.ID(1)
	other := snowflake.ID(2)

	assert.True(t, permission.CanControlVoice(guild, owner, owner, nil))
	assert.True(t, permission.CanControlVoice(guild, other, owner, []snowflake.ID{modRoleID}))
	assert.False(t, permission.CanControlVoice(guild, other, owner, []snowflake.ID{guestRoleID}))
}
