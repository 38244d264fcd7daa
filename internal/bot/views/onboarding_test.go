package views_test

import (
	"testing"
	"time"

	"github.com/disgoorg/snowflake/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/axoguild/axobot/internal/bot/views"
	"github.com/axoguild/axobot/internal/database/types"
)

func TestApplicationReviewMentionsReviewerRoles(t *testing.T) {
	t.Parallel()

	app := &types.Application{
		ID:          7,
		UserID:      42,
		Group:       "KN-41",
		FullName:    "Jane Doe",
		SubmittedAt: time.Now(),
	}

	msg := views.ApplicationReview(app, []snowflake.ID{111, 222})
	assert.Equal(t, "<@&111> <@&222>", msg.Content)
	require.Len(t, msg.Embeds, 1)

	msg = views.ApplicationReview(app, nil)
	assert.Empty(t, msg.Content)
}
