package onboarding_test

import (
	"testing"

	"github.com/axoguild/axobot/internal/onboarding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateFullName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "first and last", input: "Ada Lovelace", want: "Ada Lovelace"},
		{name: "three tokens", input: "Anna Maria Petrenko", want: "Anna Maria Petrenko"},
		{name: "extra whitespace collapsed", input: "  Ada   Lovelace  ", want: "Ada Lovelace"},
		{name: "tabs and newlines", input: "Ada\tLovelace\n", want: "Ada Lovelace"},
		{name: "single word", input: "Ada", wantErr: true},
		{name: "empty", input: "", wantErr: true},
		{name: "only whitespace", input: "   ", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := onboarding.ValidateFullName(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, onboarding.ErrInvalidFullName)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
