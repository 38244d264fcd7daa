package handlers

import (
	"testing"

	"github.com/disgoorg/snowflake/v2"
	"github.com/stretchr/testify/assert"
)

func TestDiffRoles(t *testing.T) {
	t.Parallel()

	a := snowflake.ID(1)
	b := snowflake.ID(2)
	c := snowflake.ID(3)

	tests := []struct {
		name        string
		before      []snowflake.ID
		after       []snowflake.ID
		wantAdded   []snowflake.ID
		wantRemoved []snowflake.ID
	}{
		{name: "no change", before: []snowflake.ID{a, b}, after: []snowflake.ID{a, b}},
		{name: "role added", before: []snowflake.ID{a}, after: []snowflake.ID{a, b}, wantAdded: []snowflake.ID{b}},
		{name: "role removed", before: []snowflake.ID{a, b}, after: []snowflake.ID{a}, wantRemoved: []snowflake.ID{b}},
		{
			name:        "swap",
			before:      []snowflake.ID{a, b},
			after:       []snowflake.ID{a, c},
			wantAdded:   []snowflake.ID{c},
			wantRemoved: []snowflake.ID{b},
		},
		{name: "from empty", after: []snowflake.ID{a}, wantAdded: []snowflake.ID{a}},
		{name: "to empty", before: []snowflake.ID{a}, wantRemoved: []snowflake.ID{a}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			added, removed := diffRoles(tt.before, tt.after)
			assert.Equal(t, tt.wantAdded, added)
			assert.Equal(t, tt.wantRemoved, removed)
		})
	}
}

func TestTruncate(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "exact", truncate("exact", 5))
	assert.Equal(t, "abcde…", truncate("abcdefgh", 5))
}
