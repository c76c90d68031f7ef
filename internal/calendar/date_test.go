package calendar

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	want := NewDate(2026, time.February, 8)
	plusTwo := time.FixedZone("UTC+2", 2*3600)

	tests := []struct {
		name  string
		input any
	}{
		{name: "iso", input: "2026-02-08"},
		{name: "iso with time", input: "2026-02-08T23:30:00Z"},
		{name: "iso with spaces", input: "  2026-02-08  "},
		{name: "year first slashes", input: "2026/02/08"},
		{name: "year first short", input: "2026/2/8"},
		{name: "day first dashes", input: "08-02-2026"},
		{name: "day first slashes", input: "08/02/2026"},
		{name: "day first short", input: "8/2/2026"},
		{name: "day first mixed", input: "08/2/2026"},
		{name: "serial float", input: 46061.0},
		{name: "serial with time fraction", input: 46061.75},
		{name: "serial int", input: 46061},
		{name: "serial json number", input: json.Number("46061")},
		{name: "time value", input: time.Date(2026, 2, 8, 23, 59, 0, 0, time.UTC)},
		{name: "time value keeps its own day", input: time.Date(2026, 2, 8, 0, 30, 0, 0, plusTwo)},
		{name: "time pointer", input: func() *time.Time { v := time.Date(2026, 2, 8, 9, 0, 0, 0, time.UTC); return &v }()},
		{name: "fallback dotted", input: "08.02.2026"},
		{name: "fallback english", input: "February 8, 2026"},
		{name: "fallback short english", input: "8 Feb 2026"},
		{name: "fallback single digit iso", input: "2026-2-8"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Normalize(tt.input)
			require.True(t, ok)
			assert.Equal(t, want, got)
			assert.Equal(t, "2026-02-08", got.String())
		})
	}
}

func TestNormalize_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		input any
	}{
		{name: "nil", input: nil},
		{name: "empty", input: ""},
		{name: "blank", input: "   "},
		{name: "garbage", input: "not a date"},
		{name: "month 13", input: "2026-13-01"},
		{name: "february 30", input: "30/02/2026"},
		{name: "negative serial", input: -5.0},
		{name: "huge serial", input: 1e12},
		{name: "zero time", input: time.Time{}},
		{name: "bool", input: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := Normalize(tt.input)
			assert.False(t, ok)
		})
	}
}

func TestNormalize_SerialMatchesEpochFormula(t *testing.T) {
	for _, serial := range []float64{62, 25569, 36526, 45658, 46061, 46387} {
		got, ok := Normalize(serial)
		require.True(t, ok)

		want := DateOf(time.Unix(0, 0).UTC().AddDate(0, 0, int(serial)-excelEpochOffset))
		assert.Equal(t, want, got, "serial %v", serial)
	}
}

func TestNormalize_SerialJustBeforeMidnight(t *testing.T) {
	for _, serial := range []float64{46061.9999999, 46061.99999999, 46061.5} {
		got, ok := Normalize(serial)
		require.True(t, ok)
		assert.Equal(t, NewDate(2026, time.February, 8), got, "serial %v", serial)
	}
}

func TestDate_Compare(t *testing.T) {
	a := NewDate(2025, time.March, 5)
	b := NewDate(2025, time.March, 6)
	c := NewDate(2026, time.January, 1)

	assert.True(t, a.Before(b))
	assert.True(t, c.After(b))
	assert.Equal(t, 0, a.Compare(a))
	assert.Equal(t, time.Wednesday, a.Weekday())
	assert.Equal(t, NewDate(2025, time.April, 1), NewDate(2025, time.March, 31).AddDays(1))
	assert.Equal(t, 31, daysBetween(NewDate(2025, time.January, 1), NewDate(2025, time.February, 1)))
}

func TestDate_TimeIsLocalMidnight(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*3600)
	got := NewDate(2025, time.June, 1).Time(loc)

	assert.Equal(t, 0, got.Hour())
	assert.Equal(t, loc, got.Location())
}
