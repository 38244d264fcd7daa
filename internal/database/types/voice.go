package types

import (
	"errors"
	"time"
)

var ErrVoiceChannelNotFound = errors.New("voice channel not found")

// VoiceChannel tracks one live ephemeral voice channel. Exactly one row exists
// per channel; the row is removed when the channel is reclaimed or deleted.
type VoiceChannel struct {
	ChannelID uint64    `bun:",pk"`                    // Discord channel ID
	OwnerID   uint64    `bun:",notnull"`               // Member controlling the channel
	Name      string    `bun:",notnull"`               // Last persisted channel name
	IsLocked  bool      `bun:",notnull,default:false"` // Whether connect is denied for the default role
	CreatedAt time.Time `bun:",notnull"`               // When the channel was created
}
