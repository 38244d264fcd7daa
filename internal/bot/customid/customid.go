// Package customid encodes component and modal custom IDs as structured
// payloads. Discord persists custom IDs with the message, so any prompt
// rendered before a restart keeps routing correctly afterwards as long as
// the payload carries everything a handler needs.
package customid

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrMalformed is returned when a custom ID cannot be parsed.
var ErrMalformed = errors.New("malformed custom ID")

const separator = ":"

// Payload is a decoded custom ID.
type Payload struct {
	Kind   string
	Action string
	Args   []string
}

// New builds a custom ID string from its parts.
func New(kind, action string, args ...string) string {
	parts := append([]string{kind, action}, args...)
	return strings.Join(parts, separator)
}

// Parse decodes a custom ID into its payload. At least a kind and an action
// must be present.
func Parse(id string) (Payload, error) {
	parts := strings.Split(id, separator)
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return Payload{}, fmt.Errorf("%w: %q", ErrMalformed, id)
	}

	return Payload{
		Kind:   parts[0],
		Action: parts[1],
		Args:   parts[2:],
	}, nil
}

// Arg returns the argument at index i, or an empty string if absent.
func (p Payload) Arg(i int) string {
	if i < 0 || i >= len(p.Args) {
		return ""
	}
	return p.Args[i]
}

// Uint64Arg parses the argument at index i as an unsigned integer, which is
// how snowflake IDs travel inside payloads.
func (p Payload) Uint64Arg(i int) (uint64, error) {
	raw := p.Arg(i)
	if raw == "" {
		return 0, fmt.Errorf("%w: missing argument %d", ErrMalformed, i)
	}

	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: argument %d: %w", ErrMalformed, i, err)
	}
	return v, nil
}

// Int64Arg parses the argument at index i as a signed integer, used for
// database row IDs.
func (p Payload) Int64Arg(i int) (int64, error) {
	raw := p.Arg(i)
	if raw == "" {
		return 0, fmt.Errorf("%w: missing argument %d", ErrMalformed, i)
	}

	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: argument %d: %w", ErrMalformed, i, err)
	}
	return v, nil
}
