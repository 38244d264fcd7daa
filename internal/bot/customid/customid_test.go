package customid_test

import (
	"testing"

	"github.com/axoguild/axobot/internal/bot/customid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		kind   string
		action string
		args   []string
		want   string
	}{
		{
			name:   "no args",
			kind:   "rules",
			action: "accept",
			want:   "rules:accept",
		},
		{
			name:   "single arg",
			kind:   "voice",
			action: "lock",
			args:   []string{"123456789"},
			want:   "voice:lock:123456789",
		},
		{
			name:   "multiple args",
			kind:   "voice",
			action: "confirm",
			args:   []string{"123456789", "a1b2c3d4"},
			want:   "voice:confirm:123456789:a1b2c3d4",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, customid.New(tt.kind, tt.action, tt.args...))
		})
	}
}

func TestParse(t *testing.T) {
	t.Parallel()

	t.Run("round trip", func(t *testing.T) {
		t.Parallel()

		p, err := customid.Parse(customid.New("app", "approve", "42"))
		require.NoError(t, err)

		assert.Equal(t, "app", p.Kind)
		assert.Equal(t, "approve", p.Action)

		id, err := p.Int64Arg(0)
		require.NoError(t, err)
		assert.Equal(t, int64(42), id)
	})

	t.Run("malformed inputs", func(t *testing.T) {
		t.Parallel()

		for _, id := range []string{"", "rules", ":accept", "rules:"} {
			_, err := customid.Parse(id)
			assert.ErrorIs(t, err, customid.ErrMalformed, "input %q", id)
		}
	})

	t.Run("missing argument", func(t *testing.T) {
		t.Parallel()

		p, err := customid.Parse("voice:lock")
		require.NoError(t, err)

		_, err = p.Uint64Arg(0)
		assert.ErrorIs(t, err, customid.ErrMalformed)
	})

	t.Run("non numeric argument", func(t *testing.T) {
		t.Parallel()

		p, err := customid.Parse("voice:lock:abc")
		require.NoError(t, err)

		_, err = p.Uint64Arg(0)
		assert.ErrorIs(t, err, customid.ErrMalformed)
	})
}
