package overtime

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePayShiftType(t *testing.T) {
	tests := map[string]PayShiftType{
		"day":      PayDay,
		" Night ":  PayNight,
		"standard": PayStandard,
		"saturday": PaySaturday,
		"sunday":   PaySunday,
		"holiday":  PayHoliday,
		"diurno":   PayDay,
		"noturno":  PayNight,
		"normal":   PayStandard,
		"sabado":   PaySaturday,
		"domingo":  PaySunday,
		"FERIADO":  PayHoliday,
	}
	for in, want := range tests {
		got, err := ParsePayShiftType(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParsePayShiftType("weekday")
	assert.Error(t, err)
}

func TestParseBoundaryShiftType(t *testing.T) {
	b, err := ParseBoundaryShiftType("NIGHT")
	require.NoError(t, err)
	assert.Equal(t, ShiftNight, b)

	_, err = ParseBoundaryShiftType("sunday")
	assert.Error(t, err)
}

func TestShiftTypeMapping(t *testing.T) {
	for _, p := range []PayShiftType{PayDay, PayStandard, PaySaturday, PaySunday, PayHoliday} {
		assert.Equal(t, ShiftDay, p.Boundary(), p)
	}
	assert.Equal(t, ShiftNight, PayNight.Boundary())

	assert.Equal(t, PayDay, ShiftDay.PayShift())
	assert.Equal(t, PayNight, ShiftNight.PayShift())

	assert.True(t, PayDay.Selectable())
	assert.True(t, PayNight.Selectable())
	assert.False(t, PayHoliday.Selectable())
}
