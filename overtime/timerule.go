package overtime

import (
	"fmt"
	"time"
	_ "time/tzdata" // the civil timezone must resolve on hosts without a zoneinfo database
)

// DateLayout is the plain calendar date format used on input and storage.
const DateLayout = "2006-01-02"

// DefaultTimezone is the system's civil timezone.
const DefaultTimezone = "America/Sao_Paulo"

const (
	weekdayShiftEnd = 17
	fridayShiftEnd  = 16
	noNormalShift   = 0
)

// Resolver answers weekday questions about calendar dates in a fixed civil timezone.
type Resolver struct {
	loc *time.Location
}

func NewResolver(loc *time.Location) *Resolver {
	if loc == nil {
		loc = time.UTC
	}
	return &Resolver{loc: loc}
}

// Location returns the civil timezone the resolver reads weekdays in.
func (r *Resolver) Location() *time.Location {
	return r.loc
}

// Civil parses a YYYY-MM-DD date and anchors it at midday in the resolver's
// timezone. Midday never falls inside a DST gap.
func (r *Resolver) Civil(date string) (time.Time, error) {
	d, err := time.Parse(DateLayout, date)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", date, err)
	}
	return time.Date(d.Year(), d.Month(), d.Day(), 12, 0, 0, 0, r.loc), nil
}

func (r *Resolver) Weekday(date string) (time.Weekday, error) {
	t, err := r.Civil(date)
	if err != nil {
		return 0, err
	}
	return t.Weekday(), nil
}

// NormalShiftEndHour returns the hour at which the normal day shift ends:
// 17 Monday to Thursday, 16 on Friday and 0 on weekends (no normal shift).
// An unparseable date yields 17.
func (r *Resolver) NormalShiftEndHour(date string) int {
	wd, err := r.Weekday(date)
	if err != nil {
		return weekdayShiftEnd
	}
	return shiftEndFor(wd)
}

func shiftEndFor(wd time.Weekday) int {
	switch wd {
	case time.Saturday, time.Sunday:
		return noNormalShift
	case time.Friday:
		return fridayShiftEnd
	default:
		return weekdayShiftEnd
	}
}
