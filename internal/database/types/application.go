package types

import (
	"errors"
	"time"

	"github.com/axoguild/axobot/internal/database/types/enum"
)

var (
	ErrApplicationNotFound = errors.New("application not found")
	ErrPendingExists       = errors.New("user already has a pending application")
	ErrAlreadyReviewed     = errors.New("application already reviewed")
)

// Application represents a group membership request. At most one pending
// application may exist per user; transitions are pending to approved or
// pending to rejected and terminal thereafter.
type Application struct {
	ID          int64                  `bun:",pk,autoincrement"` // Unique numeric identifier
	UserID      uint64                 `bun:",notnull"`          // Discord ID of the applicant
	Group       string                 `bun:",notnull"`          // Requested academic group
	FullName    string                 `bun:",notnull"`          // Applicant-provided full name
	Status      enum.ApplicationStatus `bun:",notnull"`          // Current review state
	SubmittedAt time.Time              `bun:",notnull"`          // When the application was filed
	ReviewedBy  uint64                 `bun:",nullzero"`         // Discord ID of the reviewer
	ReviewedAt  time.Time              `bun:",nullzero"`         // When the decision was made
}
