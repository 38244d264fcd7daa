package enum

// ApplicationStatus represents the review state of a group application.
// Stored as text so the rows stay readable in psql.
type ApplicationStatus string

const (
	// ApplicationStatusPending indicates the application awaits review.
	ApplicationStatusPending ApplicationStatus = "pending"
	// ApplicationStatusApproved indicates a reviewer accepted the application.
	ApplicationStatusApproved ApplicationStatus = "approved"
	// ApplicationStatusRejected indicates a reviewer declined the application.
	ApplicationStatusRejected ApplicationStatus = "rejected"
)

// String implements fmt.Stringer.
func (s ApplicationStatus) String() string {
	return string(s)
}

// IsTerminal reports whether the status can no longer change.
func (s ApplicationStatus) IsTerminal() bool {
	return s == ApplicationStatusApproved || s == ApplicationStatusRejected
}
