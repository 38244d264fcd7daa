package voice

import (
	"context"
	"fmt"

	"github.com/axoguild/axobot/internal/bot/constants"
	"github.com/disgoorg/snowflake/v2"
	"github.com/google/uuid"
	"github.com/redis/rueidis"
)

// ConfirmStore issues short-lived delete confirmation tokens backed by
// Redis. A token is valid for one confirmation within its TTL, so a stale
// prompt left on screen after a restart or a timeout simply stops working.
type ConfirmStore struct {
	client rueidis.Client
}

// NewConfirmStore creates a ConfirmStore.
func NewConfirmStore(client rueidis.Client) *ConfirmStore {
	return &ConfirmStore{client: client}
}

func confirmKey(channelID snowflake.ID) string {
	return fmt.Sprintf("voice:confirm:%s", channelID)
}

// Issue creates a new confirmation token for the channel, replacing any
// previous one.
func (s *ConfirmStore) Issue(ctx context.Context, channelID snowflake.ID) (string, error) {
	token := uuid.NewString()

	cmd := s.client.B().Set().
		Key(confirmKey(channelID)).
		Value(token).
		Ex(constants.ConfirmTTL).
		Build()
	if err := s.client.Do(ctx, cmd).Error(); err != nil {
		return "", fmt.Errorf("failed to store confirm token: %w", err)
	}

	return token, nil
}

// Consume checks the token against the stored one and deletes it. It returns
// false when the token is missing, expired, or does not match.
func (s *ConfirmStore) Consume(ctx context.Context, channelID snowflake.ID, token string) (bool, error) {
	cmd := s.client.B().Getdel().Key(confirmKey(channelID)).Build()

	stored, err := s.client.Do(ctx, cmd).ToString()
	if err != nil {
		if rueidis.IsRedisNil(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to read confirm token: %w", err)
	}

	return stored == token, nil
}

// Cancel drops any pending confirmation for the channel.
func (s *ConfirmStore) Cancel(ctx context.Context, channelID snowflake.ID) error {
	cmd := s.client.B().Del().Key(confirmKey(channelID)).Build()
	if err := s.client.Do(ctx, cmd).Error(); err != nil {
		return fmt.Errorf("failed to cancel confirm token: %w", err)
	}
	return nil
}
