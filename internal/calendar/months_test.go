package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAvailableMonths(t *testing.T) {
	today := NewDate(2025, time.June, 10)

	t.Run("previous december first then the current year", func(t *testing.T) {
		got := MonthStrings(AvailableMonths([]MonthKey{NewMonthKey(2025, time.March)}, today))
		assert.Equal(t, []string{
			"2024-12",
			"2025-01", "2025-02", "2025-03", "2025-04", "2025-05", "2025-06",
			"2025-07", "2025-08", "2025-09", "2025-10", "2025-11", "2025-12",
		}, got)
	})

	t.Run("roster months outside the window are dropped", func(t *testing.T) {
		rosters := []MonthKey{
			NewMonthKey(2023, time.May),
			NewMonthKey(2024, time.November),
			NewMonthKey(2026, time.January),
			{Year: 2025, Month: 13},
		}
		got := AvailableMonths(rosters, today)
		require.Len(t, got, 13)
		assert.Equal(t, NewMonthKey(2024, time.December), got[0])
		assert.Equal(t, NewMonthKey(2025, time.December), got[12])
	})

	t.Run("no roster", func(t *testing.T) {
		got := AvailableMonths(nil, NewDate(2026, time.January, 1))
		require.Len(t, got, 13)
		assert.Equal(t, "2025-12", got[0].String())
		assert.Equal(t, "2026-01", got[1].String())
	})
}

func TestNormalizeMonth(t *testing.T) {
	tests := []struct {
		name   string
		input  any
		want   MonthKey
		wantOK bool
	}{
		{name: "year-month", input: "2025-03", want: NewMonthKey(2025, time.March), wantOK: true},
		{name: "single digit month", input: "2025-3", want: NewMonthKey(2025, time.March), wantOK: true},
		{name: "month/year", input: "03/2025", want: NewMonthKey(2025, time.March), wantOK: true},
		{name: "full date", input: "2025-03-18", want: NewMonthKey(2025, time.March), wantOK: true},
		{name: "day first date", input: "18/03/2025", want: NewMonthKey(2025, time.March), wantOK: true},
		{name: "serial", input: 45717.0, want: NewMonthKey(2025, time.March), wantOK: true},
		{name: "month out of range", input: "2025-13"},
		{name: "garbage", input: "marzo"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := NormalizeMonth(tt.input)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestParseMonthKey(t *testing.T) {
	k, err := ParseMonthKey(" 2025-10 ")
	require.NoError(t, err)
	assert.Equal(t, NewMonthKey(2025, time.October), k)

	_, err = ParseMonthKey("octubre")
	assert.Error(t, err)
}

func TestMonthKey(t *testing.T) {
	assert.Equal(t, 29, NewMonthKey(2024, time.February).Days())
	assert.Equal(t, 31, NewMonthKey(2025, time.January).Days())
	assert.Equal(t, "2025-01", NewMonthKey(2025, time.January).String())
	assert.True(t, NewMonthKey(2025, time.January).Contains(NewDate(2025, time.January, 31)))
	assert.False(t, NewMonthKey(2025, time.January).Contains(NewDate(2025, time.February, 1)))
	assert.Equal(t, -1, NewMonthKey(2024, time.December).Compare(NewMonthKey(2025, time.January)))
	assert.False(t, MonthKey{}.Valid())
}
