package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clockIn(day Date, hhmm string) AttendanceEvent {
	secs, _ := ParseClock(hhmm)
	return AttendanceEvent{Date: day, Clock: secs, Kind: ClockIn}
}

func clockOut(day Date, hhmm string) AttendanceEvent {
	secs, _ := ParseClock(hhmm)
	return AttendanceEvent{Date: day, Clock: secs, Kind: ClockOut}
}

func clockOutWithDuration(day Date, hhmm string, seconds int) AttendanceEvent {
	ev := clockOut(day, hhmm)
	ev.Duration = &seconds
	return ev
}

func TestParseClock(t *testing.T) {
	tests := []struct {
		name   string
		input  any
		want   int
		wantOK bool
	}{
		{name: "hh:mm", input: "08:05", want: 8*3600 + 5*60, wantOK: true},
		{name: "h:mm", input: "8:05", want: 8*3600 + 5*60, wantOK: true},
		{name: "hh:mm:ss", input: "17:30:15", want: 17*3600 + 30*60 + 15, wantOK: true},
		{name: "timestamp", input: "2025-10-01T07:45:00Z", want: 7*3600 + 45*60, wantOK: true},
		{name: "timestamp with space", input: "2025-10-01 07:45", want: 7*3600 + 45*60, wantOK: true},
		{name: "day fraction", input: 0.5, want: 12 * 3600, wantOK: true},
		{name: "time value", input: time.Date(2025, 10, 1, 9, 15, 0, 0, time.UTC), want: 9*3600 + 15*60, wantOK: true},
		{name: "hour out of range", input: "25:00"},
		{name: "garbage", input: "later"},
		{name: "nil", input: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseClock(tt.input)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestParseDurationSeconds(t *testing.T) {
	got, ok := ParseDurationSeconds(3600.0)
	require.True(t, ok)
	assert.Equal(t, 3600, got)

	got, ok = ParseDurationSeconds("07:30:10")
	require.True(t, ok)
	assert.Equal(t, 7*3600+30*60+10, got)

	got, ok = ParseDurationSeconds("125:00")
	require.True(t, ok)
	assert.Equal(t, 125*3600, got)

	got, ok = ParseDurationSeconds("5400")
	require.True(t, ok)
	assert.Equal(t, 5400, got)

	_, ok = ParseDurationSeconds("n/a")
	assert.False(t, ok)
}

func TestEventFromRecord(t *testing.T) {
	ev, ok := EventFromRecord(Record{"fecha": "01/10/2025", "hora": "08:00:00", "tipo": "Entrada"})
	require.True(t, ok)
	assert.Equal(t, NewDate(2025, time.October, 1), ev.Date)
	assert.Equal(t, 8*3600, ev.Clock)
	assert.Equal(t, ClockIn, ev.Kind)
	assert.Nil(t, ev.Duration)

	ev, ok = EventFromRecord(Record{"time": "2025-10-01T16:00:00", "type": "salida", "duration": 28800.0})
	require.True(t, ok)
	assert.Equal(t, NewDate(2025, time.October, 1), ev.Date)
	assert.Equal(t, ClockOut, ev.Kind)
	require.NotNil(t, ev.Duration)
	assert.Equal(t, 28800, *ev.Duration)

	ev, ok = EventFromRecord(Record{"fecha": "2025-10-01", "hora": "08:00", "tipo": "Entrada", "duracion": 100.0})
	require.True(t, ok)
	assert.Nil(t, ev.Duration, "durations only count on exits")

	_, ok = EventFromRecord(Record{"fecha": "2025-10-01", "hora": "08:00", "tipo": "Pausa"})
	assert.False(t, ok)

	_, ok = EventFromRecord(Record{"hora": "08:00", "tipo": "Entrada"})
	assert.False(t, ok, "no date anywhere")
}

func TestEvaluateDay(t *testing.T) {
	today := NewDate(2025, time.October, 15)
	past := NewDate(2025, time.October, 14)

	t.Run("past day with entry and no exit is incomplete", func(t *testing.T) {
		got := EvaluateDay(past, []AttendanceEvent{clockIn(past, "08:00")}, today)
		assert.True(t, got.IncompleteClockIn)
		assert.Nil(t, got.WorkedMinutes)
	})

	t.Run("past day without events is incomplete", func(t *testing.T) {
		got := EvaluateDay(past, nil, today)
		assert.True(t, got.IncompleteClockIn)
	})

	t.Run("today without exit is not flagged yet", func(t *testing.T) {
		got := EvaluateDay(today, []AttendanceEvent{clockIn(today, "08:00")}, today)
		assert.False(t, got.IncompleteClockIn)
		assert.Nil(t, got.WorkedMinutes)
	})

	t.Run("positional pairing", func(t *testing.T) {
		events := []AttendanceEvent{
			clockIn(past, "08:05"),
			clockOut(past, "12:00"),
			clockIn(past, "08:00"),
		}
		got := EvaluateDay(past, events, today)
		assert.False(t, got.IncompleteClockIn)
		require.NotNil(t, got.WorkedMinutes)
		assert.Equal(t, 240, *got.WorkedMinutes)
	})

	t.Run("two pairs", func(t *testing.T) {
		events := []AttendanceEvent{
			clockIn(past, "08:00"), clockOut(past, "14:00"),
			clockIn(past, "16:00"), clockOut(past, "19:30"),
		}
		got := EvaluateDay(past, events, today)
		require.NotNil(t, got.WorkedMinutes)
		assert.Equal(t, 6*60+3*60+30, *got.WorkedMinutes)
	})

	t.Run("overnight pair wraps", func(t *testing.T) {
		events := []AttendanceEvent{clockIn(past, "22:00"), clockOut(past, "06:00")}
		got := EvaluateDay(past, events, today)
		require.NotNil(t, got.WorkedMinutes)
		assert.Equal(t, 8*60, *got.WorkedMinutes)
	})

	t.Run("other days are ignored", func(t *testing.T) {
		events := []AttendanceEvent{clockIn(past.AddDays(-1), "08:00"), clockOut(past.AddDays(-1), "15:00")}
		got := EvaluateDay(past, events, today)
		assert.True(t, got.IncompleteClockIn)
	})
}

func TestComputeMonthlyTotal_PrefersRecordedDurations(t *testing.T) {
	month := NewMonthKey(2025, time.October)
	d1 := NewDate(2025, time.October, 1)
	d2 := NewDate(2025, time.October, 2)
	events := []AttendanceEvent{
		clockIn(d1, "08:00"), clockOutWithDuration(d1, "15:00", 7*3600),
		clockIn(d2, "08:00"), clockOutWithDuration(d2, "16:30", 8*3600+30*60+15),
		clockOutWithDuration(NewDate(2025, time.September, 30), "15:00", 9999),
	}

	got := ComputeMonthlyTotal(month, events)
	assert.True(t, got.FromRecords)
	assert.Equal(t, 15*3600+30*60+15, got.Seconds)
	assert.Equal(t, "15h 30m 15s", got.String())
	assert.Equal(t, got, ComputeMonthlyTotal(month, events))
}

func TestComputeMonthlyTotal_GreedyFallback(t *testing.T) {
	month := NewMonthKey(2025, time.October)
	d1 := NewDate(2025, time.October, 1)
	d2 := NewDate(2025, time.October, 2)

	t.Run("unmatched second entry", func(t *testing.T) {
		events := []AttendanceEvent{clockIn(d1, "08:00"), clockIn(d1, "08:05"), clockOut(d1, "12:00")}
		got := ComputeMonthlyTotal(month, events)
		assert.False(t, got.FromRecords)
		assert.Equal(t, 4*3600, got.Seconds)
	})

	t.Run("orphan exit before first entry is skipped", func(t *testing.T) {
		events := []AttendanceEvent{
			clockOut(d1, "07:00"),
			clockIn(d1, "08:00"), clockOut(d1, "14:00"),
			clockIn(d2, "09:00"), clockOut(d2, "13:30"),
		}
		got := ComputeMonthlyTotal(month, events)
		assert.Equal(t, 6*3600+4*3600+30*60, got.Seconds)
		assert.Equal(t, "10h 30m 0s", got.String())
	})

	t.Run("zero recorded durations fall back", func(t *testing.T) {
		events := []AttendanceEvent{clockIn(d1, "08:00"), clockOutWithDuration(d1, "10:00", 0)}
		got := ComputeMonthlyTotal(month, events)
		assert.False(t, got.FromRecords)
		assert.Equal(t, 2*3600, got.Seconds)
	})

	t.Run("idempotent", func(t *testing.T) {
		events := []AttendanceEvent{clockIn(d1, "08:00"), clockOut(d1, "12:00"), clockIn(d2, "08:00"), clockOut(d2, "09:00")}
		assert.Equal(t, ComputeMonthlyTotal(month, events), ComputeMonthlyTotal(month, events))
	})
}

func TestPairGreedy(t *testing.T) {
	assert.Equal(t, 0, pairGreedy(nil, []int{100}))
	assert.Equal(t, 100, pairGreedy([]int{100, 150}, []int{50, 200}))
	assert.Equal(t, 150, pairGreedy([]int{100, 300}, []int{100, 200, 350}))
}
