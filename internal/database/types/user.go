package types

import (
	"errors"
	"time"
)

var ErrUserNotFound = errors.New("user not found")

// User represents a guild member known to the bot. Rows are created on first
// join or rules acceptance and kept after the member leaves.
type User struct {
	ID           uint64     `bun:",pk"`                // Discord user ID
	DisplayName  string     `bun:",notnull"`           // Name shown in the guild at last update
	Group        string     `bun:",nullzero"`          // Academic group name, empty while guest
	WarningCount int        `bun:",notnull,default:0"` // Mirror of the warnings table count
	MutedUntil   *time.Time `bun:",nullzero"`          // Active timeout expiry, nil when not muted
	JoinedAt     time.Time  `bun:",notnull"`           // When the row was first created
	UpdatedAt    time.Time  `bun:",notnull"`           // When the row was last touched
}

// IsGuest reports whether the user holds no academic group.
func (u *User) IsGuest() bool {
	return u.Group == ""
}

// IsMuted reports whether the user has an active timeout.
func (u *User) IsMuted() bool {
	return u.MutedUntil != nil && time.Now().Before(*u.MutedUntil)
}
