package sample

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// units and their factors; each factor multiplies all previous ones,
// so "s" is 1000ms and "d" is 1000*60*60*24ms.
var (
	units   = []byte{'s', 'm', 'h', 'd'}
	factors = []int64{1000, 60, 60, 24}
)

// ParseOffset converts a relative-time token such as "-3d" or "45m" into a
// signed duration. Negative values point to the past.
func ParseOffset(token string) (time.Duration, error) {
	token = strings.TrimSpace(token)
	if len(token) < 2 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidOffset, token)
	}

	value, err := strconv.ParseInt(token[:len(token)-1], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %v", ErrInvalidOffset, token, err)
	}

	unit := token[len(token)-1]
	ms := int64(1)
	found := false
	for i, u := range units {
		ms *= factors[i]
		if u == unit {
			found = true
			break
		}
	}
	if !found {
		return 0, fmt.Errorf("%w: unknown unit %q in %q", ErrInvalidOffset, unit, token)
	}

	if value > math.MaxInt64/int64(time.Millisecond)/ms || value < math.MinInt64/int64(time.Millisecond)/ms {
		return 0, fmt.Errorf("%w: %q overflows", ErrInvalidOffset, token)
	}

	return time.Duration(value*ms) * time.Millisecond, nil
}

// At resolves offset against now with millisecond precision.
func At(now time.Time, offset time.Duration) time.Time {
	return time.UnixMilli(now.UnixMilli() + offset.Milliseconds()).UTC()
}

// Date draws an instant uniformly from [now+from, now+to).
// Bounds are not reordered: to before from is ErrInvalidDateRange.
// Equal bounds return that instant.
func Date(src *Source, now time.Time, from, to time.Duration) (time.Time, error) {
	lo := now.UnixMilli() + from.Milliseconds()
	hi := now.UnixMilli() + to.Milliseconds()
	if hi < lo {
		return time.Time{}, fmt.Errorf("%w: %s is before %s", ErrInvalidDateRange, to, from)
	}

	ms := int64(math.Floor(src.Float64()*float64(hi-lo))) + lo
	return time.UnixMilli(ms).UTC(), nil
}
