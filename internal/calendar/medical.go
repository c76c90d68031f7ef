package calendar

const genericLeaveLabel = "Baja médica"

// MedicalLeaveRecord is a sick-leave period. ActualEnd is set once the leave
// is closed, PredictedEnd while it is still open.
type MedicalLeaveRecord struct {
	Start        *Date
	ActualEnd    *Date
	PredictedEnd *Date
	Situation    string
}

func MedicalLeaveFromRecord(rec Record) MedicalLeaveRecord {
	l := MedicalLeaveRecord{Situation: LookupString(rec, FieldLeaveSituation)}
	if d, ok := LookupDate(rec, FieldLeaveStart); ok {
		l.Start = &d
	}
	if d, ok := LookupDate(rec, FieldLeaveEnd); ok {
		l.ActualEnd = &d
	}
	if d, ok := LookupDate(rec, FieldLeavePredictedEnd); ok {
		l.PredictedEnd = &d
	}
	return l
}

// LeaveRange is the resolved [Start, End] of one medical leave.
type LeaveRange struct {
	Start     Date
	End       Date
	Open      bool // End was inferred as today
	Situation string
}

func (r LeaveRange) Contains(day Date) bool {
	return !day.Before(r.Start) && !day.After(r.End)
}

// Reason is the situation text, or a generic label when missing.
func (r LeaveRange) Reason() string {
	if r.Situation == "" {
		return genericLeaveLabel
	}
	return r.Situation
}

// BuildLeaveRanges resolves every record into a range. The end is the actual
// end when known; otherwise the predicted end unless that already passed, in
// which case (as with no end at all) the leave is still open and ends today.
// Records without a start are dropped.
func BuildLeaveRanges(records []MedicalLeaveRecord, today Date) []LeaveRange {
	ranges := make([]LeaveRange, 0, len(records))
	for _, rec := range records {
		if rec.Start == nil {
			continue
		}

		r := LeaveRange{Start: *rec.Start, Situation: rec.Situation}
		switch {
		case rec.ActualEnd != nil:
			r.End = *rec.ActualEnd
		case rec.PredictedEnd != nil && !rec.PredictedEnd.Before(today):
			r.End = *rec.PredictedEnd
		default:
			r.End = today
			r.Open = true
		}

		if r.End.Before(r.Start) {
			r.Start, r.End = r.End, r.Start
		}
		ranges = append(ranges, r)
	}
	return ranges
}

// LeaveCovering returns the first range, in record order, containing day.
func LeaveCovering(day Date, ranges []LeaveRange) (LeaveRange, bool) {
	for _, r := range ranges {
		if r.Contains(day) {
			return r, true
		}
	}
	return LeaveRange{}, false
}

// CurrentLeave reports the leave the employee is on today, if any.
func CurrentLeave(records []MedicalLeaveRecord, today Date) (LeaveRange, bool) {
	return LeaveCovering(today, BuildLeaveRanges(records, today))
}
