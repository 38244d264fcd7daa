package voice

import (
	"errors"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/axoguild/axobot/internal/bot/constants"
)

var (
	// ErrInvalidLimit is returned when a user limit falls outside 0 to 99.
	ErrInvalidLimit = errors.New("user limit must be between 0 and 99")

	// ErrInvalidName is returned when a channel name is empty or too long.
	ErrInvalidName = errors.New("channel name must be between 1 and 100 characters")
)

// ParseUserLimit validates raw modal input as a voice channel user limit.
// Zero means unlimited.
func ParseUserLimit(raw string) (int, error) {
	limit, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, ErrInvalidLimit
	}
	if limit < constants.MinUserLimit || limit > constants.MaxUserLimit {
		return 0, ErrInvalidLimit
	}
	return limit, nil
}

// ValidateName validates raw modal input as a voice channel name and returns
// the trimmed name.
func ValidateName(raw string) (string, error) {
	name := strings.TrimSpace(raw)
	// Length bounds count characters, not bytes, so Cyrillic names fit.
	length := utf8.RuneCountInString(name)
	if length < constants.MinNameLen || length > constants.MaxNameLen {
		return "", ErrInvalidName
	}
	return name, nil
}

// truncateName cuts a name down to max characters on a rune boundary.
func truncateName(name string, max int) string {
	if utf8.RuneCountInString(name) <= max {
		return name
	}
	runes := []rune(name)
	return string(runes[:max])
}
