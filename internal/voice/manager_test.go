package voice

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/disgoorg/disgo/rest"
	"github.com/stretchr/testify/assert"
)

func TestIsNotFound(t *testing.T) {
	t.Parallel()

	notFound := &rest.Error{Response: &http.Response{StatusCode: http.StatusNotFound}}
	forbidden := &rest.Error{Response: &http.Response{StatusCode: http.StatusForbidden}}

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "nil", err: nil, want: false},
		{name: "plain error", err: errors.New("connection reset"), want: false},
		{name: "rest 404", err: notFound, want: true},
		{name: "wrapped rest 404", err: fmt.Errorf("failed to get channel: %w", notFound), want: true},
		{name: "rest 403", err: forbidden, want: false},
		{name: "rest error without response", err: &rest.Error{}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, isNotFound(tt.err))
		})
	}
}
