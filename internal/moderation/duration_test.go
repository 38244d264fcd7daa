package moderation_test

import (
	"testing"
	"time"

	"github.com/axoguild/axobot/internal/moderation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDuration(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    time.Duration
		wantErr bool
	}{
		{name: "seconds", input: "45s", want: 45 * time.Second},
		{name: "minutes", input: "30m", want: 30 * time.Minute},
		{name: "one hour", input: "1h", want: time.Hour},
		{name: "one day", input: "1d", want: 24 * time.Hour},
		{name: "compound", input: "2h30m", want: 2*time.Hour + 30*time.Minute},
		{name: "day and hours", input: "1d12h", want: 36 * time.Hour},
		{name: "repeated unit sums", input: "1h1h", want: 2 * time.Hour},
		{name: "empty", input: "", wantErr: true},
		{name: "letters only", input: "abc", wantErr: true},
		{name: "bare number", input: "90", wantErr: true},
		{name: "unknown unit", input: "5w", wantErr: true},
		{name: "unit without digits", input: "h", wantErr: true},
		{name: "trailing digits", input: "1h30", wantErr: true},
		{name: "zero", input: "0s", wantErr: true},
		{name: "negative", input: "-5m", wantErr: true},
		{name: "whitespace inside", input: "1h 30m", wantErr: true},
		{name: "overflows duration", input: "999999999d", wantErr: true},
		{name: "overflow across segments", input: "99999999d99999999d99999999d", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := moderation.ParseDuration(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, moderation.ErrInvalidDuration)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
