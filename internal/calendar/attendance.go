package calendar

import (
	"fmt"
	"sort"
	"strings"
)

// EventKind distinguishes clock-in from clock-out events.
type EventKind int

const (
	ClockIn EventKind = iota
	ClockOut
)

func (k EventKind) String() string {
	if k == ClockOut {
		return "Salida"
	}
	return "Entrada"
}

// ParseEventKind maps the raw event type onto an EventKind.
func ParseEventKind(s string) (EventKind, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "entrada", "e", "in", "clock_in":
		return ClockIn, true
	case "salida", "s", "out", "clock_out":
		return ClockOut, true
	}
	return 0, false
}

// AttendanceEvent is one clock-in or clock-out. Clock is seconds since
// midnight. Duration, in seconds, is only meaningful on clock-outs.
type AttendanceEvent struct {
	Date     Date
	Clock    int
	Kind     EventKind
	Duration *int
}

// EventFromRecord decodes a raw attendance event. When the date field is
// missing, the date part of a timestamp in the time field is used.
func EventFromRecord(rec Record) (AttendanceEvent, bool) {
	kind, ok := ParseEventKind(LookupString(rec, FieldEventType))
	if !ok {
		return AttendanceEvent{}, false
	}

	timeVal, hasTime := Lookup(rec, FieldEventTime)
	if !hasTime {
		return AttendanceEvent{}, false
	}
	clock, ok := ParseClock(timeVal)
	if !ok {
		return AttendanceEvent{}, false
	}

	date, ok := LookupDate(rec, FieldEventDate)
	if !ok {
		if date, ok = Normalize(timeVal); !ok {
			return AttendanceEvent{}, false
		}
	}

	ev := AttendanceEvent{Date: date, Clock: clock, Kind: kind}
	if v, ok := Lookup(rec, FieldEventDuration); ok && kind == ClockOut {
		if secs, ok := ParseDurationSeconds(v); ok {
			ev.Duration = &secs
		}
	}
	return ev, true
}

// DayAttendance holds the attendance fields attached to a work-shift day.
// WorkedMinutes is nil when no entry/exit pair exists.
type DayAttendance struct {
	IncompleteClockIn bool
	WorkedMinutes     *int
}

// EventsOn filters events to one day.
func EventsOn(day Date, events []AttendanceEvent) []AttendanceEvent {
	var out []AttendanceEvent
	for _, ev := range events {
		if ev.Date == day {
			out = append(out, ev)
		}
	}
	return out
}

// EvaluateDay checks a work-shift day: a past day missing all entries or all
// exits is flagged incomplete; otherwise the i-th sorted entry is paired with
// the i-th sorted exit and the pairs are summed, wrapping past midnight.
func EvaluateDay(day Date, events []AttendanceEvent, today Date) DayAttendance {
	ins, outs := splitClocks(EventsOn(day, events))

	if (len(ins) == 0 || len(outs) == 0) && day.Before(today) {
		return DayAttendance{IncompleteClockIn: true}
	}

	pairs := min(len(ins), len(outs))
	if pairs == 0 {
		return DayAttendance{}
	}

	total := 0
	for i := 0; i < pairs; i++ {
		entry, exit := ins[i]/60, outs[i]/60
		total += ((exit-entry)%1440 + 1440) % 1440
	}
	return DayAttendance{WorkedMinutes: &total}
}

func splitClocks(events []AttendanceEvent) ([]int, []int) {
	var ins, outs []int
	for _, ev := range events {
		if ev.Kind == ClockIn {
			ins = append(ins, ev.Clock)
		} else {
			outs = append(outs, ev.Clock)
		}
	}
	sort.Ints(ins)
	sort.Ints(outs)
	return ins, outs
}

// MonthlyTotal is the worked time of a month. FromRecords is set when the
// total comes from the durations stored on clock-out events.
type MonthlyTotal struct {
	Seconds     int
	FromRecords bool
}

func (t MonthlyTotal) Hours() int   { return t.Seconds / 3600 }
func (t MonthlyTotal) Minutes() int { return t.Seconds % 3600 / 60 }
func (t MonthlyTotal) Secs() int    { return t.Seconds % 60 }

func (t MonthlyTotal) String() string {
	return fmt.Sprintf("%dh %dm %ds", t.Hours(), t.Minutes(), t.Secs())
}

// ComputeMonthlyTotal sums the month's stored clock-out durations. When none
// are available it falls back to pairing each day's events greedily.
func ComputeMonthlyTotal(month MonthKey, events []AttendanceEvent) MonthlyTotal {
	recorded := 0
	byDay := make(map[Date][]AttendanceEvent)
	for _, ev := range events {
		if !month.Contains(ev.Date) {
			continue
		}
		if ev.Kind == ClockOut && ev.Duration != nil {
			recorded += *ev.Duration
		}
		byDay[ev.Date] = append(byDay[ev.Date], ev)
	}
	if recorded > 0 {
		return MonthlyTotal{Seconds: recorded, FromRecords: true}
	}

	total := 0
	for _, dayEvents := range byDay {
		ins, outs := splitClocks(dayEvents)
		total += pairGreedy(ins, outs)
	}
	return MonthlyTotal{Seconds: total}
}

// pairGreedy walks both sorted lists, skipping exits that are not later than
// the current entry, and returns the summed seconds of the matched pairs.
func pairGreedy(ins, outs []int) int {
	total := 0
	i, j := 0, 0
	for i < len(ins) && j < len(outs) {
		if outs[j] <= ins[i] {
			j++
			continue
		}
		total += outs[j] - ins[i]
		i++
		j++
	}
	return total
}
