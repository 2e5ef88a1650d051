package overtime

import (
	"fmt"

	"github.com/shopspring/decimal"
)

type State int

const (
	Editing State = iota
	Valid
	Invalid
)

func (s State) String() string {
	switch s {
	case Valid:
		return "valid"
	case Invalid:
		return "invalid"
	default:
		return "editing"
	}
}

// Problem classifies why an entry was rejected before reaching the store.
type Problem string

const (
	ProblemNone       Problem = ""
	ProblemIncomplete Problem = "input_incomplete"
	ProblemMalformed  Problem = "input_malformed"
	ProblemNoOvertime Problem = "no_overtime"
)

// Input is an in-progress overtime entry as typed by the user.
type Input struct {
	Date        string
	Entry       string
	Exit        string
	Shift       PayShiftType
	MonthlyWage decimal.Decimal
}

func (in Input) shift() Shift {
	return Shift{Date: in.Date, Entry: in.Entry, Exit: in.Exit, Type: in.Shift.Boundary()}
}

// Preview holds the derived values shown next to the form.
type Preview struct {
	OvertimeHours  float64         `json:"overtime_hours"`
	ComputedAmount decimal.Decimal `json:"computed_amount"`
}

type Verdict struct {
	State   State
	Problem Problem
	Reason  string
	Preview Preview
}

func (v Verdict) Valid() bool {
	return v.State == Valid
}

// Gate decides whether an entry may be submitted.
type Gate struct {
	calc *Calculator
}

func NewGate(calc *Calculator) *Gate {
	return &Gate{calc: calc}
}

// Compute derives hours and amount from the current input. It holds no state,
// so repeated calls with the same input return the same values.
func (g *Gate) Compute(in Input) Preview {
	hours := g.calc.Hours(in.shift())
	return Preview{
		OvertimeHours:  hours,
		ComputedAmount: ComputeAmount(in.MonthlyWage, in.Shift, hours),
	}
}

// Evaluate runs the computation and validation for one input snapshot. The
// preview is always filled in; it never decides validity on its own.
func (g *Gate) Evaluate(in Input) Verdict {
	v := Verdict{Preview: g.Compute(in)}

	switch {
	case in.Date == "":
		return v.reject(ProblemIncomplete, "Date is required.")
	case in.Entry == "":
		return v.reject(ProblemIncomplete, "Entry time is required.")
	case in.Exit == "":
		return v.reject(ProblemIncomplete, "Exit time is required.")
	}

	weekday, err := g.calc.Resolver().Weekday(in.Date)
	if err != nil {
		return v.reject(ProblemMalformed, fmt.Sprintf("Date %q is not a valid YYYY-MM-DD date.", in.Date))
	}
	if _, err := ParseClock(in.Entry); err != nil {
		return v.reject(ProblemMalformed, fmt.Sprintf("Entry time %q is not a valid HH:MM time.", in.Entry))
	}
	if _, err := ParseClock(in.Exit); err != nil {
		return v.reject(ProblemMalformed, fmt.Sprintf("Exit time %q is not a valid HH:MM time.", in.Exit))
	}

	if v.Preview.OvertimeHours > 0 {
		v.State = Valid
		return v
	}

	if in.Shift.Boundary() == ShiftNight {
		return v.reject(ProblemNoOvertime,
			"Night shift: the normal window runs from 20:00 to 05:00, so an exit at or before 05:00 has no overtime.")
	}
	switch end := shiftEndFor(weekday); end {
	case noNormalShift:
		return v.reject(ProblemNoOvertime, fmt.Sprintf(
			"%s has no normal shift and every worked hour counts, but no time was worked between entry and exit.", weekday))
	default:
		return v.reject(ProblemNoOvertime, fmt.Sprintf(
			"%s has a normal shift until %02d:00; the exit time must be after %02d:00 to count overtime.", weekday, end, end))
	}
}

func (v Verdict) reject(p Problem, reason string) Verdict {
	v.State = Invalid
	v.Problem = p
	v.Reason = reason
	return v
}

// Form tracks a single entry while it is being edited and re-validates on
// every field change.
type Form struct {
	gate        *Gate
	input       Input
	verdict     Verdict
	onValidated func(Verdict)
}

func (g *Gate) NewForm(monthlyWage decimal.Decimal, shift PayShiftType, onValidated func(Verdict)) *Form {
	return &Form{
		gate:        g,
		input:       Input{Shift: shift, MonthlyWage: monthlyWage},
		onValidated: onValidated,
	}
}

func (f *Form) SetDate(date string) Verdict         { f.input.Date = date; return f.changed() }
func (f *Form) SetEntry(entry string) Verdict       { f.input.Entry = entry; return f.changed() }
func (f *Form) SetExit(exit string) Verdict         { f.input.Exit = exit; return f.changed() }
func (f *Form) SetShift(shift PayShiftType) Verdict { f.input.Shift = shift; return f.changed() }

func (f *Form) State() State     { return f.verdict.State }
func (f *Form) Verdict() Verdict { return f.verdict }
func (f *Form) Input() Input     { return f.input }

func (f *Form) changed() Verdict {
	f.verdict = f.gate.Evaluate(f.input)
	if f.onValidated != nil {
		f.onValidated(f.verdict)
	}
	return f.verdict
}
