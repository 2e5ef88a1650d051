package overtime

import (
	"fmt"
	"strings"
)

// BoundaryShiftType selects which normal-window rule applies to a worked period.
type BoundaryShiftType string

const (
	ShiftDay   BoundaryShiftType = "day"
	ShiftNight BoundaryShiftType = "night"
)

// PayShiftType selects the pay multiplier. day and night are the tags chosen
// when an entry is recorded; the others are legacy classes kept for valuation.
type PayShiftType string

const (
	PayDay      PayShiftType = "day"
	PayNight    PayShiftType = "night"
	PayStandard PayShiftType = "standard"
	PaySaturday PayShiftType = "saturday"
	PaySunday   PayShiftType = "sunday"
	PayHoliday  PayShiftType = "holiday"
)

// Tags written by earlier versions of the system.
var legacyPayTags = map[string]PayShiftType{
	"diurno":  PayDay,
	"noturno": PayNight,
	"normal":  PayStandard,
	"sabado":  PaySaturday,
	"domingo": PaySunday,
	"feriado": PayHoliday,
}

func ParsePayShiftType(s string) (PayShiftType, error) {
	tag := strings.ToLower(strings.TrimSpace(s))
	switch p := PayShiftType(tag); p {
	case PayDay, PayNight, PayStandard, PaySaturday, PaySunday, PayHoliday:
		return p, nil
	}
	if p, ok := legacyPayTags[tag]; ok {
		return p, nil
	}
	return "", fmt.Errorf("unknown shift type %q", s)
}

func ParseBoundaryShiftType(s string) (BoundaryShiftType, error) {
	switch b := BoundaryShiftType(strings.ToLower(strings.TrimSpace(s))); b {
	case ShiftDay, ShiftNight:
		return b, nil
	}
	return "", fmt.Errorf("shift type %q cannot be selected for a new entry", s)
}

// Boundary maps a pay class onto the boundary rule. Only night shifts use the
// 20:00-05:00 window; every other class is resolved as day work.
func (p PayShiftType) Boundary() BoundaryShiftType {
	if p == PayNight {
		return ShiftNight
	}
	return ShiftDay
}

func (b BoundaryShiftType) PayShift() PayShiftType {
	if b == ShiftNight {
		return PayNight
	}
	return PayDay
}

// Selectable reports whether the tag can be picked when recording an entry.
func (p PayShiftType) Selectable() bool {
	return p == PayDay || p == PayNight
}
