package command_test

import (
	"testing"

	"github.com/axoguild/axobot/internal/bot/command"
	"github.com/disgoorg/snowflake/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseUserArg(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    snowflake.ID
		wantErr bool
	}{
		{name: "plain mention", input: "<@123456789012345678>", want: 123456789012345678},
		{name: "nickname mention", input: "<@!123456789012345678>", want: 123456789012345678},
		{name: "raw ID", input: "123456789012345678", want: 123456789012345678},
		{name: "not a user", input: "hello", wantErr: true},
		{name: "channel mention", input: "<#123456789012345678>", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := command.ParseUserArg(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, command.ErrInvalidUserArg)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
