package overtime

import "math"

const (
	// nightWindowEnd is 05:00 in minutes; the night window opens at 20:00.
	nightWindowEnd = 5 * 60
	minutesPerDay  = 24 * 60
)

// Shift is the raw input for an overtime computation. Empty fields mean the
// user has not filled them in yet.
type Shift struct {
	Date  string // YYYY-MM-DD, the day the shift began
	Entry string // HH:MM
	Exit  string // HH:MM
	Type  BoundaryShiftType
}

// Calculator turns clock times into overtime hours.
type Calculator struct {
	rules *Resolver
}

func NewCalculator(rules *Resolver) *Calculator {
	return &Calculator{rules: rules}
}

func (c *Calculator) Resolver() *Resolver {
	return c.rules
}

// Hours returns the overtime for s rounded to the nearest half hour. Missing
// or unreadable input yields 0.
func (c *Calculator) Hours(s Shift) float64 {
	if s.Entry == "" || s.Exit == "" || s.Date == "" {
		return 0
	}
	entry, err := ParseClock(s.Entry)
	if err != nil {
		return 0
	}
	exit, err := ParseClock(s.Exit)
	if err != nil {
		return 0
	}

	if s.Type == ShiftNight {
		// only the excess past 05:00 counts
		if exit.Minutes() <= nightWindowEnd {
			return 0
		}
		return RoundHalf(minutesToHours(exit.Minutes() - nightWindowEnd))
	}

	boundary := c.rules.NormalShiftEndHour(s.Date)
	if boundary == noNormalShift {
		elapsed := exit.Minutes() - entry.Minutes()
		if exit.Minutes() < entry.Minutes() {
			elapsed += minutesPerDay
		}
		return RoundHalf(minutesToHours(elapsed))
	}

	limit := boundary * 60
	if exit.Minutes() <= limit {
		return 0
	}
	return RoundHalf(minutesToHours(exit.Minutes() - limit))
}

// RoundHalf rounds to the nearest 0.5, halves away from zero.
func RoundHalf(hours float64) float64 {
	return math.Round(hours*2) / 2
}

func minutesToHours(m int) float64 {
	return float64(m) / 60
}
