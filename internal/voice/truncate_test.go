package voice

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestTruncateName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		max   int
		want  string
	}{
		{name: "short enough", input: "room", max: 100, want: "room"},
		{name: "exact length", input: strings.Repeat("a", 100), max: 100, want: strings.Repeat("a", 100)},
		{name: "ascii truncated", input: strings.Repeat("a", 150), max: 100, want: strings.Repeat("a", 100)},
		{name: "multibyte truncated on rune boundary", input: strings.Repeat("ї", 150), max: 100, want: strings.Repeat("ї", 100)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := truncateName(tt.input, tt.max)
			assert.Equal(t, tt.want, got)
			assert.True(t, utf8.ValidString(got))
		})
	}
}
