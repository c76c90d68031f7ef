package calendar

import (
	"math"
	"sort"
	"strings"
)

const (
	genericAbsenceLabel = "Ausencia"
	periodSeparator     = " - "
)

// AbsenceRecord is an approved non-medical absence. It covers either a single
// Date or the Start..End interval; bounds that could not be parsed are nil.
type AbsenceRecord struct {
	Type   string
	Reason string
	Date   *Date
	Start  *Date
	End    *Date
}

// AbsenceFromRecord decodes a raw absence record. A combined "start - end"
// field fills whichever bound the dedicated fields did not provide.
func AbsenceFromRecord(rec Record) AbsenceRecord {
	a := AbsenceRecord{
		Type:   LookupString(rec, FieldAbsenceType),
		Reason: LookupString(rec, FieldAbsenceReason),
	}

	if d, ok := LookupDate(rec, FieldAbsenceDate); ok {
		a.Date = &d
	}
	if d, ok := LookupDate(rec, FieldAbsenceStart); ok {
		a.Start = &d
	}
	if d, ok := LookupDate(rec, FieldAbsenceEnd); ok {
		a.End = &d
	}

	if a.Start == nil || a.End == nil {
		if start, end, ok := splitPeriod(LookupString(rec, FieldAbsencePeriod)); ok {
			if a.Start == nil {
				if d, ok := Normalize(start); ok {
					a.Start = &d
				}
			}
			if a.End == nil {
				if d, ok := Normalize(end); ok {
					a.End = &d
				}
			}
		}
	}

	return a
}

func splitPeriod(s string) (string, string, bool) {
	start, end, found := strings.Cut(s, periodSeparator)
	if !found {
		return "", "", false
	}
	return strings.TrimSpace(start), strings.TrimSpace(end), true
}

// Span returns the absence interval. A missing end makes it a one-day
// interval; inverted bounds are swapped. ok is false without a start.
func (a AbsenceRecord) Span() (Date, Date, bool) {
	if a.Start == nil {
		return Date{}, Date{}, false
	}
	start, end := *a.Start, *a.Start
	if a.End != nil {
		end = *a.End
	}
	if end.Before(start) {
		start, end = end, start
	}
	return start, end, true
}

// spanDays is the interval length used to rank candidates. Records without
// both bounds rank last, even though a start-only record still covers its
// start day.
func (a AbsenceRecord) spanDays() float64 {
	if a.Start == nil || a.End == nil {
		return math.Inf(1)
	}
	start, end, _ := a.Span()
	return float64(daysBetween(start, end))
}

func (a AbsenceRecord) covers(day Date) bool {
	if a.Date != nil && *a.Date == day {
		return true
	}
	start, end, ok := a.Span()
	if !ok {
		return false
	}
	return !day.Before(start) && !day.After(end)
}

// Category maps the free-text absence type onto the closed category set.
// Anything that is not a vacation counts as personal leave.
func (a AbsenceRecord) Category() Category {
	t := strings.ToLower(a.Type)
	if strings.Contains(t, "vacac") || strings.Contains(t, "vacation") {
		return Vacation()
	}
	return PersonalLeave()
}

// Label is the absence type, or a generic label when the type is missing.
func (a AbsenceRecord) Label() string {
	if a.Type == "" {
		return genericAbsenceLabel
	}
	return a.Type
}

// ResolveAbsence returns the most specific absence covering day: candidates
// are tried shortest interval first, so a one-day request nested inside a
// longer period wins over the period.
func ResolveAbsence(day Date, absences []AbsenceRecord) (AbsenceRecord, bool) {
	order := make([]int, len(absences))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return absences[order[i]].spanDays() < absences[order[j]].spanDays()
	})

	for _, i := range order {
		if absences[i].covers(day) {
			return absences[i], true
		}
	}
	return AbsenceRecord{}, false
}
