package models

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

// sqlStateError mimics the driver's error shape: SQLSTATE is exposed through
// Field('C').
type sqlStateError struct {
	code string
}

func (e *sqlStateError) Error() string {
	return "ERROR: duplicate key value violates unique constraint (SQLSTATE=" + e.code + ")"
}

func (e *sqlStateError) Field(field byte) string {
	if field == 'C' {
		return e.code
	}
	return ""
}

func TestIsUniqueViolation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "nil", err: nil, want: false},
		{name: "plain error", err: errors.New("connection refused"), want: false},
		{name: "unique violation", err: &sqlStateError{code: "23505"}, want: true},
		{name: "wrapped unique violation", err: fmt.Errorf("insert: %w", &sqlStateError{code: "23505"}), want: true},
		{name: "serialization failure", err: &sqlStateError{code: "40001"}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, isUniqueViolation(tt.err))
		})
	}
}
