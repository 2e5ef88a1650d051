package overtime

import "time"

// periodStartDay is the day of month on which an overtime pay period opens.
// A period closes on the day before, one month later.
const periodStartDay = 26

// Period is an inclusive range of calendar dates.
type Period struct {
	Start time.Time
	End   time.Time
}

func (p Period) Contains(d time.Time) bool {
	d = dateOnly(d)
	return !d.Before(p.Start) && !d.After(p.End)
}

func (p Period) StartString() string { return p.Start.Format(DateLayout) }
func (p Period) EndString() string   { return p.End.Format(DateLayout) }

// PayPeriodFor returns the overtime pay period containing d: the 26th of a
// month through the 25th of the next.
func PayPeriodFor(d time.Time) Period {
	year, month, day := d.Date()
	if day < periodStartDay {
		month--
	}
	start := time.Date(year, month, periodStartDay, 0, 0, 0, 0, time.UTC)
	end := time.Date(year, month+1, periodStartDay-1, 0, 0, 0, 0, time.UTC)
	return Period{Start: start, End: end}
}

// CurrentPayPeriod returns the pay period for today in the resolver's timezone.
func (r *Resolver) CurrentPayPeriod(now time.Time) Period {
	return PayPeriodFor(now.In(r.loc))
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
