package moderation

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// ErrInvalidDuration is returned for durations that cannot be parsed.
var ErrInvalidDuration = errors.New("invalid duration")

// MaxMuteDuration is the longest timeout Discord accepts (28 days).
const MaxMuteDuration = 28 * 24 * time.Hour

var unitSeconds = map[byte]int64{
	's': 1,
	'm': 60,
	'h': 3600,
	'd': 86400,
}

// maxSeconds is the largest total that still fits in a time.Duration.
const maxSeconds = math.MaxInt64 / int64(time.Second)

// ParseDuration parses a compact duration like "30m", "1h", "2h30m" or "1d".
// It accepts one or more <digits><unit> segments with units s, m, h and d,
// and sums them. Empty input, bare numbers, unknown units and zero totals
// are all rejected.
func ParseDuration(input string) (time.Duration, error) {
	if input == "" {
		return 0, fmt.Errorf("%w: empty input", ErrInvalidDuration)
	}

	var total int64
	var value int64
	digits := 0

	for i := 0; i < len(input); i++ {
		c := input[i]
		switch {
		case c >= '0' && c <= '9':
			value = value*10 + int64(c-'0')
			digits++
			if digits > 9 {
				return 0, fmt.Errorf("%w: %q", ErrInvalidDuration, input)
			}
		default:
			mult, ok := unitSeconds[c]
			if !ok || digits == 0 {
				return 0, fmt.Errorf("%w: %q", ErrInvalidDuration, input)
			}
			total += value * mult
			if total > maxSeconds {
				return 0, fmt.Errorf("%w: %q", ErrInvalidDuration, input)
			}
			value = 0
			digits = 0
		}
	}

	// Trailing digits without a unit.
	if digits > 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidDuration, input)
	}
	if total == 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidDuration, input)
	}

	return time.Duration(total) * time.Second, nil
}
