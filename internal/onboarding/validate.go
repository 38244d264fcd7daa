package onboarding

import (
	"errors"
	"strings"
)

// ErrInvalidFullName is returned when an applicant's full name does not look
// like at least a first and last name.
var ErrInvalidFullName = errors.New("full name must contain at least two words")

// ValidateFullName normalizes modal input into a canonical full name. It
// collapses runs of whitespace and requires at least two tokens.
func ValidateFullName(raw string) (string, error) {
	tokens := strings.Fields(raw)
	if len(tokens) < 2 {
		return "", ErrInvalidFullName
	}
	return strings.Join(tokens, " "), nil
}
