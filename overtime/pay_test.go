package overtime

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestComputeAmount(t *testing.T) {
	wage := decimal.NewFromInt(2200)

	tests := []struct {
		shift PayShiftType
		hours float64
		want  string
	}{
		{PayDay, 2, "30"},
		{PayNight, 2, "30"},
		{PayStandard, 2, "30"},
		{PaySaturday, 2, "30"},
		{PaySunday, 2, "40"},
		{PayHoliday, 2, "40"},
		{PayShiftType("bogus"), 2, "30"},
		{PayDay, 0.5, "7.5"},
		{PayDay, 0, "0"},
	}
	for _, tt := range tests {
		t.Run(string(tt.shift), func(t *testing.T) {
			got := ComputeAmount(wage, tt.shift, tt.hours)
			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)), "got %s want %s", got, tt.want)
		})
	}
}

func TestComputeAmount_NeverNegative(t *testing.T) {
	assert.True(t, ComputeAmount(decimal.NewFromInt(-2200), PayDay, 2).IsZero())
	assert.True(t, ComputeAmount(decimal.NewFromInt(2200), PayDay, -1).IsZero())
}

func TestHourlyRate(t *testing.T) {
	got := HourlyRate(decimal.NewFromInt(3300))
	assert.Equal(t, "15", got.String())
}

func TestMultiplier(t *testing.T) {
	assert.Equal(t, "1.5", Multiplier(PayDay).String())
	assert.Equal(t, "2", Multiplier(PayHoliday).String())
	assert.Equal(t, "1.5", Multiplier("").String())
}
