package handlers

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/axoguild/axobot/internal/database/types"
	"github.com/axoguild/axobot/internal/onboarding"
)

func TestReviewFailureMessage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		err       error
		wantMsg   string
		wantKnown bool
	}{
		{
			name:      "lost the review race",
			err:       types.ErrAlreadyReviewed,
			wantMsg:   "This application was already reviewed.",
			wantKnown: true,
		},
		{
			name:      "wrapped race loss",
			err:       fmt.Errorf("review: %w", types.ErrAlreadyReviewed),
			wantMsg:   "This application was already reviewed.",
			wantKnown: true,
		},
		{
			name:      "applicant left",
			err:       onboarding.ErrApplicantGone,
			wantMsg:   "The applicant has left the server.",
			wantKnown: true,
		},
		{
			name:      "application missing",
			err:       types.ErrApplicationNotFound,
			wantMsg:   "This application no longer exists.",
			wantKnown: true,
		},
		{
			name:      "approved but roles failed",
			err:       fmt.Errorf("%w: add role: forbidden", onboarding.ErrGroupAssignFailed),
			wantMsg:   "Approved, but granting the group role failed. Assign it manually.",
			wantKnown: true,
		},
		{
			name:      "unexpected",
			err:       errors.New("connection reset"),
			wantMsg:   "Review failed, try again.",
			wantKnown: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			msg, known := reviewFailureMessage(tt.err)
			assert.Equal(t, tt.wantMsg, msg)
			assert.Equal(t, tt.wantKnown, known)
		})
	}
}
