package overtime

import "github.com/shopspring/decimal"

// monthlyHours is the fixed number of normal hours in a month used to derive
// the hourly rate from a monthly wage.
var monthlyHours = decimal.NewFromInt(220)

var (
	timeAndHalf = decimal.RequireFromString("1.5")
	doubleTime  = decimal.NewFromInt(2)
)

var multipliers = map[PayShiftType]decimal.Decimal{
	PayDay:      timeAndHalf,
	PayNight:    timeAndHalf,
	PayStandard: timeAndHalf,
	PaySaturday: timeAndHalf,
	PaySunday:   doubleTime,
	PayHoliday:  doubleTime,
}

// Multiplier returns the pay factor for a shift class. Unknown tags pay time and a half.
func Multiplier(p PayShiftType) decimal.Decimal {
	if m, ok := multipliers[p]; ok {
		return m
	}
	return timeAndHalf
}

// HourlyRate is the base (non-overtime) hourly rate for a monthly wage.
func HourlyRate(monthlyWage decimal.Decimal) decimal.Decimal {
	return monthlyWage.Div(monthlyHours)
}

// ComputeAmount values overtime hours: wage/220 * multiplier * hours.
// The result is never negative.
func ComputeAmount(monthlyWage decimal.Decimal, p PayShiftType, hours float64) decimal.Decimal {
	amount := HourlyRate(monthlyWage).Mul(Multiplier(p)).Mul(decimal.NewFromFloat(hours))
	if amount.IsNegative() {
		return decimal.Zero
	}
	return amount
}
