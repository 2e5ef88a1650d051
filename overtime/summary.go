package overtime

import (
	"sort"

	"github.com/shopspring/decimal"
)

// Line is one recorded entry as seen by the summary.
type Line struct {
	Worker string
	Shift  PayShiftType
	Hours  float64
	Amount decimal.Decimal
}

type Subtotal struct {
	Key    string          `json:"key"`
	Hours  float64         `json:"hours"`
	Amount decimal.Decimal `json:"amount"`
}

type Summary struct {
	Records     int             `json:"records"`
	TotalHours  float64         `json:"total_hours"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	ByShift     []Subtotal      `json:"by_shift"`
	ByWorker    []Subtotal      `json:"by_worker"`
}

func Summarize(lines []Line) Summary {
	s := Summary{Records: len(lines), TotalAmount: decimal.Zero}
	byShift := map[string]*Subtotal{}
	byWorker := map[string]*Subtotal{}

	for _, l := range lines {
		s.TotalHours += l.Hours
		s.TotalAmount = s.TotalAmount.Add(l.Amount)
		add(byShift, string(l.Shift), l)
		add(byWorker, l.Worker, l)
	}

	s.ByShift = sorted(byShift)
	s.ByWorker = sorted(byWorker)
	return s
}

func add(m map[string]*Subtotal, key string, l Line) {
	st, ok := m[key]
	if !ok {
		st = &Subtotal{Key: key, Amount: decimal.Zero}
		m[key] = st
	}
	st.Hours += l.Hours
	st.Amount = st.Amount.Add(l.Amount)
}

func sorted(m map[string]*Subtotal) []Subtotal {
	out := make([]Subtotal, 0, len(m))
	for _, st := range m {
		out = append(out, *st)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}
