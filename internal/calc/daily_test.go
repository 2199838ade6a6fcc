package calc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shiftlog/internal/format"
)

func TestDaily(t *testing.T) {
	tests := []struct {
		name        string
		start, end  string
		allocated   float64
		wantWorked  string
		wantBalance string
	}{
		{"overnight", "22:00", "06:00", 0, "8.00", "8.00"},
		{"under allocation", "09:00", "12:00", 5, "5.00", "0.00"},
		{"overtime", "09:00", "18:00", 8, "9.00", "1.00"},
		{"exact allocation", "09:00", "17:00", 8, "8.00", "0.00"},
		{"fractional", "09:15", "17:45", 8, "8.50", "0.50"},
		{"same instant", "10:00", "10:00", 0, "0.00", "0.00"},
		{"negative allocation", "09:00", "10:00", -3, "1.00", "1.00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Daily(tt.start, tt.end, tt.allocated)
			require.NoError(t, err)
			assert.Equal(t, tt.wantWorked, format.To2(got.Worked))
			assert.Equal(t, tt.wantBalance, format.To2(got.Balance))
		})
	}
}

func TestDailyIncomplete(t *testing.T) {
	_, err := Daily("", "18:00", 8)
	assert.ErrorIs(t, err, ErrIncomplete)

	_, err = Daily("09:00", "  ", 8)
	assert.ErrorIs(t, err, ErrIncomplete)
}

func TestDailyBadClock(t *testing.T) {
	_, err := Daily("25:00", "18:00", 8)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrIncomplete)
}

func TestClock(t *testing.T) {
	m, err := ParseClock(" 07:30 ")
	require.NoError(t, err)
	assert.Equal(t, 450, m)
	assert.Equal(t, "07:30", FormatClock(m))
	assert.Equal(t, "00:30", FormatClock(1470))
	assert.Equal(t, "23:00", FormatClock(-60))

	for _, bad := range []string{"7", "07:60", "aa:bb", "12:00:00", "9:5", "+17:0", "-0:30", "0008:00", "10:0", "24:00", "1a:00"} {
		_, err := ParseClock(bad)
		assert.Error(t, err, bad)
	}
}

func TestHoursConversion(t *testing.T) {
	assert.InDelta(t, 7.5, ToDecimal(7, 30), 1e-9)
	assert.InDelta(t, 7+59.0/60, ToDecimal(7, 75), 1e-9)
	assert.InDelta(t, 2, ToDecimal(2, -5), 1e-9)
	assert.InDelta(t, 0.25, ToDecimal(-1, 15), 1e-9)

	h, m := FromDecimal(7.5)
	assert.Equal(t, []int{7, 30}, []int{h, m})

	h, m = FromDecimal(3.9999)
	assert.Equal(t, []int{3, 59}, []int{h, m})

	h, m = FromDecimal(-2)
	assert.Equal(t, []int{0, 0}, []int{h, m})

	for hours := 0; hours < 3; hours++ {
		for minutes := 0; minutes < 60; minutes++ {
			h, m := FromDecimal(ToDecimal(hours, minutes))
			assert.Equal(t, []int{hours, minutes}, []int{h, m})
		}
	}
}
