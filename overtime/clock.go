package overtime

import (
	"fmt"
	"strings"
	"time"
)

// ClockTime is a time of day without a date.
type ClockTime struct {
	Hour   int
	Minute int
}

// ParseClock reads HH:MM. HH:MM:SS is accepted because Postgres time columns
// come back with seconds.
func ParseClock(s string) (ClockTime, error) {
	s = strings.TrimSpace(s)
	t, err := time.Parse("15:04", s)
	if err != nil {
		var errSec error
		if t, errSec = time.Parse("15:04:05", s); errSec != nil {
			return ClockTime{}, fmt.Errorf("parse clock time %q: %w", s, err)
		}
	}
	return ClockTime{Hour: t.Hour(), Minute: t.Minute()}, nil
}

// Minutes since midnight.
func (c ClockTime) Minutes() int {
	return c.Hour*60 + c.Minute
}

func (c ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}
