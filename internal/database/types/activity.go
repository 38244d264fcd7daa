package types

import "time"

// ActivityLog is one audit entry written as a side effect of a mutating
// operation. Append-only.
type ActivityLog struct {
	ID          int64          `bun:",pk,autoincrement"` // Unique numeric identifier
	Action      string         `bun:",notnull"`          // Machine name of the action, e.g. "moderation_ban"
	UserID      uint64         `bun:",notnull"`          // Discord ID of the affected user
	ModeratorID uint64         `bun:",nullzero"`         // Discord ID of the acting moderator (0 if system)
	Details     map[string]any `bun:",type:jsonb"`       // Action-specific key-value context
	CreatedAt   time.Time      `bun:",notnull"`          // When the action happened
}
