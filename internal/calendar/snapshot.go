package calendar

// RawSnapshot holds the undecoded record arrays of one employee.
type RawSnapshot struct {
	Rosters       []Record
	Schedules     []Record
	Absences      []Record
	MedicalLeaves []Record
	Events        []Record
}

// Decode turns the raw records into a Snapshot for month. Records that
// cannot be decoded are skipped. Only the first assigned schedule is used.
func (r RawSnapshot) Decode(month MonthKey, today Date) Snapshot {
	s := Snapshot{Month: month, Today: today}

	s.Rosters = r.DecodeRosters()

	if len(r.Schedules) > 0 {
		sched := ScheduleFromRecord(r.Schedules[0])
		s.Schedule = &sched
	}

	for _, rec := range r.Absences {
		s.Absences = append(s.Absences, AbsenceFromRecord(rec))
	}
	for _, rec := range r.MedicalLeaves {
		s.MedicalLeaves = append(s.MedicalLeaves, MedicalLeaveFromRecord(rec))
	}
	for _, rec := range r.Events {
		if ev, ok := EventFromRecord(rec); ok {
			s.Events = append(s.Events, ev)
		}
	}
	return s
}

// DecodeRosters decodes every roster record with a recognizable month.
func (r RawSnapshot) DecodeRosters() []RosterEntry {
	var entries []RosterEntry
	for _, rec := range r.Rosters {
		if e, ok := RosterFromRecord(rec); ok {
			entries = append(entries, e)
		}
	}
	return entries
}
