package voice_test

import (
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/axoguild/axobot/internal/voice"
	"github.com/disgoorg/snowflake/v2"
	"github.com/redis/rueidis"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupConfirmTest(t *testing.T) (*voice.ConfirmStore, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client, err := rueidis.NewClient(rueidis.ClientOption{
		InitAddress:  []string{mr.Addr()},
		DisableCache: true,
	})
	require.NoError(t, err)
	t.Cleanup(client.Close)

	return voice.NewConfirmStore(client), mr
}

func TestConfirmStore(t *testing.T) {
	t.Parallel()

	channelID := snowflake.ID(123456789)

	t.Run("issue and consume", func(t *testing.T) {
		t.Parallel()
		store, _ := setupConfirmTest(t)
		ctx := t.Context()

		token, err := store.Issue(ctx, channelID)
		require.NoError(t, err)
		require.NotEmpty(t, token)

		ok, err := store.Consume(ctx, channelID, token)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("consume is one shot", func(t *testing.T) {
		t.Parallel()
		store, _ := setupConfirmTest(t)
		ctx := t.Context()

		token, err := store.Issue(ctx, channelID)
		require.NoError(t, err)

		ok, err := store.Consume(ctx, channelID, token)
		require.NoError(t, err)
		require.True(t, ok)

		ok, err = store.Consume(ctx, channelID, token)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("wrong token rejected", func(t *testing.T) {
		t.Parallel()
		store, _ := setupConfirmTest(t)
		ctx := t.Context()

		_, err := store.Issue(ctx, channelID)
		require.NoError(t, err)

		ok, err := store.Consume(ctx, channelID, "deadbeef00000000")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("reissue invalidates earlier token", func(t *testing.T) {
		t.Parallel()
		store, _ := setupConfirmTest(t)
		ctx := t.Context()

		first, err := store.Issue(ctx, channelID)
		require.NoError(t, err)

		second, err := store.Issue(ctx, channelID)
		require.NoError(t, err)
		require.NotEqual(t, first, second)

		ok, err := store.Consume(ctx, channelID, first)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("expired token rejected", func(t *testing.T) {
		t.Parallel()
		store, mr := setupConfirmTest(t)
		ctx := t.Context()

		token, err := store.Issue(ctx, channelID)
		require.NoError(t, err)

		mr.FastForward(2 * time.Minute)

		ok, err := store.Consume(ctx, channelID, token)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("cancel drops token", func(t *testing.T) {
		t.Parallel()
		store, _ := setupConfirmTest(t)
		ctx := t.Context()

		token, err := store.Issue(ctx, channelID)
		require.NoError(t, err)

		require.NoError(t, store.Cancel(ctx, channelID))

		ok, err := store.Consume(ctx, channelID, token)
		require.NoError(t, err)
		assert.False(t, ok)
	})
}
