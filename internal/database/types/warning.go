package types

import "time"

// Warning is one moderator warning issued to a user. Append-only; the running
// count is mirrored onto User.WarningCount.
type Warning struct {
	ID          int64     `bun:",pk,autoincrement"` // Unique numeric identifier
	UserID      uint64    `bun:",notnull"`          // Discord ID of the warned user
	ModeratorID uint64    `bun:",notnull"`          // Discord ID of the issuing moderator
	Reason      string    `bun:",type:text"`        // Free-text reason, may be empty
	CreatedAt   time.Time `bun:",notnull"`          // When the warning was issued
}
