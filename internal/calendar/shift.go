package calendar

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// DefaultShiftRange is the schedule text of the weekday fallback rule.
const DefaultShiftRange = "08:00-17:00"

// RosterEntry is the month roster of one employee: raw shift codes by
// day of month.
type RosterEntry struct {
	Month        MonthKey
	EmployeeCode string
	EmployeeName string
	Days         map[int]string
}

// RosterFromRecord decodes a roster record. ok is false when the record
// has no recognizable month.
func RosterFromRecord(rec Record) (RosterEntry, bool) {
	v, ok := Lookup(rec, FieldRosterMonth)
	if !ok {
		return RosterEntry{}, false
	}
	month, ok := NormalizeMonth(v)
	if !ok {
		return RosterEntry{}, false
	}

	entry := RosterEntry{
		Month:        month,
		EmployeeCode: LookupString(rec, FieldRosterEmployeeCode),
		EmployeeName: LookupString(rec, FieldRosterEmployeeName),
		Days:         make(map[int]string),
	}
	for day := 1; day <= month.Days(); day++ {
		d := strconv.Itoa(day)
		if v, ok := lookupKeys(rec, []string{d, "dia" + d, "DIA" + d, "dia_" + d, "DIA_" + d}); ok {
			entry.Days[day] = toText(v)
		}
	}
	return entry, true
}

// Code returns the raw code for a day of month, if the roster carries one.
func (r RosterEntry) Code(day int) (string, bool) {
	code, ok := r.Days[day]
	if !ok || code == "" {
		return "", false
	}
	return code, true
}

// FindRoster returns the roster for month. A later entry for the same month
// replaces an earlier one.
func FindRoster(entries []RosterEntry, month MonthKey) *RosterEntry {
	var found *RosterEntry
	for i := range entries {
		if entries[i].Month == month {
			found = &entries[i]
		}
	}
	return found
}

// Interval is one clock-in/clock-out pair of the weekly template.
type Interval struct {
	In  string
	Out string
}

func (i Interval) String() string {
	return i.In + "-" + i.Out
}

// AssignedSchedule is a weekly template of up to three intervals per day.
type AssignedSchedule struct {
	Name   string
	Center string
	Group  string
	Days   map[time.Weekday][]Interval
}

var weekdayKeys = map[time.Weekday][]string{
	time.Sunday:    {"D", "DOM", "domingo", "DOMINGO", "sun"},
	time.Monday:    {"L", "LUN", "lunes", "LUNES", "mon"},
	time.Tuesday:   {"M", "MAR", "martes", "MARTES", "tue"},
	time.Wednesday: {"X", "MIE", "miercoles", "MIERCOLES", "wed"},
	time.Thursday:  {"J", "JUE", "jueves", "JUEVES", "thu"},
	time.Friday:    {"V", "VIE", "viernes", "VIERNES", "fri"},
	time.Saturday:  {"S", "SAB", "sabado", "SABADO", "sat"},
}

var slotKeys = [3][2][]string{
	{{"in1", "entrada1", "ENTRADA1", "e1"}, {"out1", "salida1", "SALIDA1", "s1"}},
	{{"in2", "entrada2", "ENTRADA2", "e2"}, {"out2", "salida2", "SALIDA2", "s2"}},
	{{"in3", "entrada3", "ENTRADA3", "e3"}, {"out3", "salida3", "SALIDA3", "s3"}},
}

// ScheduleFromRecord decodes an assigned schedule. Days may sit under a
// nested days object or directly on the record.
func ScheduleFromRecord(rec Record) AssignedSchedule {
	s := AssignedSchedule{
		Name:   LookupString(rec, FieldScheduleName),
		Center: LookupString(rec, FieldScheduleCenter),
		Group:  LookupString(rec, FieldScheduleGroup),
		Days:   make(map[time.Weekday][]Interval),
	}

	days := rec
	if v, ok := Lookup(rec, FieldScheduleDays); ok {
		if nested, ok := asRecord(v); ok {
			days = nested
		}
	}

	for wd, keys := range weekdayKeys {
		v, ok := lookupKeys(days, keys)
		if !ok {
			continue
		}
		slots, ok := asRecord(v)
		if !ok {
			continue
		}
		for _, slot := range slotKeys {
			in, inOK := lookupKeys(slots, slot[0])
			out, outOK := lookupKeys(slots, slot[1])
			if !inOK || !outOK {
				continue
			}
			s.Days[wd] = append(s.Days[wd], Interval{In: clockText(in), Out: clockText(out)})
		}
	}
	return s
}

func asRecord(v any) (Record, bool) {
	switch val := v.(type) {
	case Record:
		return val, true
	case map[string]any:
		return Record(val), true
	}
	return nil, false
}

func clockText(v any) string {
	if secs, ok := ParseClock(v); ok {
		return FormatClock(secs)
	}
	return toText(v)
}

// BaseShift is the shift a day has before absences and leave are applied.
// An empty Code means a free day.
type BaseShift struct {
	Code     ShiftCode
	Schedule string
}

func (b BaseShift) Category() Category {
	if b.Code == "" {
		return Free()
	}
	return WorkShift(b.Code)
}

var leadingClock = regexp.MustCompile(`^\d{1,2}:\d{2}`)

// ResolveBaseShift picks the base shift of day: the roster code when the
// roster has one for the day, else the assigned weekly template, else the
// default weekday rule.
func ResolveBaseShift(day Date, roster *RosterEntry, schedule *AssignedSchedule, defaultRange string) BaseShift {
	if roster != nil {
		if raw, ok := roster.Code(day.Day); ok {
			return shiftFromCode(raw)
		}
	}

	if schedule != nil {
		var parts []string
		for _, iv := range schedule.Days[day.Weekday()] {
			if len(parts) == 3 {
				break
			}
			parts = append(parts, iv.String())
		}
		if len(parts) == 0 {
			return BaseShift{}
		}
		return BaseShift{Code: ShiftT1, Schedule: strings.Join(parts, ", ")}
	}

	switch day.Weekday() {
	case time.Saturday, time.Sunday:
		return BaseShift{}
	}
	if defaultRange == "" {
		defaultRange = DefaultShiftRange
	}
	return BaseShift{Code: ShiftT1, Schedule: defaultRange}
}

func shiftFromCode(raw string) BaseShift {
	code := strings.TrimSpace(raw)
	upper := strings.ToUpper(code)

	switch {
	case upper == "", upper == "LIBRE", upper == "LIB":
		return BaseShift{}
	case strings.HasPrefix(upper, string(ShiftT1)),
		strings.HasPrefix(upper, string(ShiftT2)),
		strings.HasPrefix(upper, string(ShiftT3)):
		return BaseShift{Code: ShiftCode(upper[:2]), Schedule: strings.TrimSpace(code[2:])}
	case leadingClock.MatchString(code):
		return BaseShift{Code: ShiftT1, Schedule: code}
	}
	return BaseShift{}
}
