// Package permission centralizes privilege checks so every handler asks the
// same question the same way.
package permission

import (
	"github.com/axoguild/axobot/internal/setup/config"
	"github.com/disgoorg/snowflake/v2"
)

// IsModerator reports whether any of the given role IDs grant moderation
// privilege under the guild configuration.
func IsModerator(guild *config.Guild, roleIDs []snowflake.ID) bool {
	for _, id := range roleIDs {
		if guild.IsModeratorRole(id) {
			return true
		}
	}
	return false
}

// CanModerate reports whether an actor with the given roles may apply a
// moderation action to a target with the given roles. Moderators cannot be
// targeted by moderation actions, and nobody can target themselves.
func CanModerate(guild *config.Guild, actorID, targetID snowflake.ID, actorRoles, targetRoles []snowflake.ID) bool {
	if actorID == targetID {
		return false
	}
	if !IsModerator(guild, actorRoles) {
		return false
	}
	return !IsModerator(guild, targetRoles)
}

// CanControlVoice reports whether a user may operate a voice channel control
// panel. The channel owner always can, and moderators can override.
func CanControlVoice(guild *config.Guild, userID, ownerID snowflake.ID, roles []snowflake.ID) bool {
	if userID == ownerID {
		return true
	}
	return IsModerator(guild, roles)
}
