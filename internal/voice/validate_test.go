package voice_test

import (
	"strings"
	"testing"

	"github.com/axoguild/axobot/internal/voice"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseUserLimit(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    int
		wantErr bool
	}{
		{name: "zero means unlimited", input: "0", want: 0},
		{name: "normal value", input: "5", want: 5},
		{name: "upper bound", input: "99", want: 99},
		{name: "whitespace trimmed", input: " 10 ", want: 10},
		{name: "above upper bound", input: "100", wantErr: true},
		{name: "negative", input: "-1", wantErr: true},
		{name: "not a number", input: "five", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := voice.ParseUserLimit(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, voice.ErrInvalidLimit)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValidateName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "simple name", input: "study room", want: "study room"},
		{name: "trimmed", input: "  gaming  ", want: "gaming"},
		{name: "single character", input: "x", want: "x"},
		{name: "max length", input: strings.Repeat("a", 100), want: strings.Repeat("a", 100)},
		{name: "cyrillic counted as characters", input: strings.Repeat("к", 60), want: strings.Repeat("к", 60)},
		{name: "cyrillic max length", input: strings.Repeat("к", 100), want: strings.Repeat("к", 100)},
		{name: "cyrillic too long", input: strings.Repeat("к", 101), wantErr: true},
		{name: "empty", input: "", wantErr: true},
		{name: "only whitespace", input: "   ", wantErr: true},
		{name: "too long", input: strings.Repeat("a", 101), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := voice.ValidateName(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, voice.ErrInvalidName)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
