// Package calendar resolves what each day of an employee's month means:
// a work shift, a free day, an approved absence or medical leave, plus the
// attendance completeness and worked time of shift days.
//
// Every function here is pure. Inputs are read-only snapshots and each call
// returns fresh values, so callers may resolve months concurrently.
package calendar

// Options tune the resolution.
type Options struct {
	// DefaultShift is the schedule text of the weekday fallback rule.
	DefaultShift string
}

func DefaultOptions() Options {
	return Options{DefaultShift: DefaultShiftRange}
}

// Snapshot is everything known about one employee for one month.
type Snapshot struct {
	Month         MonthKey
	Today         Date
	Rosters       []RosterEntry
	Schedule      *AssignedSchedule
	Absences      []AbsenceRecord
	MedicalLeaves []MedicalLeaveRecord
	Events        []AttendanceEvent
}

// DayCell is the resolved description of one day.
type DayCell struct {
	Day               int
	Date              Date
	Category          Category
	Label             string
	Schedule          string
	Reason            string
	IncompleteClockIn bool
	WorkedMinutes     *int
}

// Month is the resolution of one employee month.
type Month struct {
	Key          MonthKey
	Cells        []DayCell
	Total        MonthlyTotal
	CurrentLeave *LeaveRange
}

// Resolve builds one DayCell per day of the snapshot month. Medical leave
// outranks absences, absences outrank the base shift.
func Resolve(s Snapshot, opts Options) Month {
	leaves := BuildLeaveRanges(s.MedicalLeaves, s.Today)
	roster := FindRoster(s.Rosters, s.Month)

	days := s.Month.Days()
	cells := make([]DayCell, 0, days)
	for day := 1; day <= days; day++ {
		date := Date{Year: s.Month.Year, Month: s.Month.Month, Day: day}
		cells = append(cells, resolveDay(date, s, leaves, roster, opts))
	}

	m := Month{
		Key:   s.Month,
		Cells: cells,
		Total: ComputeMonthlyTotal(s.Month, s.Events),
	}
	if current, ok := LeaveCovering(s.Today, leaves); ok {
		m.CurrentLeave = &current
	}
	return m
}

func resolveDay(date Date, s Snapshot, leaves []LeaveRange, roster *RosterEntry, opts Options) DayCell {
	cell := DayCell{Day: date.Day, Date: date}

	if leave, ok := LeaveCovering(date, leaves); ok {
		cell.Category = MedicalLeave()
		cell.Label = genericLeaveLabel
		cell.Reason = leave.Reason()
		return cell
	}

	if absence, ok := ResolveAbsence(date, s.Absences); ok {
		cell.Category = absence.Category()
		cell.Label = absence.Label()
		cell.Reason = absence.Reason
		return cell
	}

	base := ResolveBaseShift(date, roster, s.Schedule, opts.DefaultShift)
	cell.Category = base.Category()
	cell.Schedule = base.Schedule
	if !cell.Category.IsWorkShift() {
		cell.Label = freeLabel
		return cell
	}

	cell.Label = string(base.Code)
	att := EvaluateDay(date, s.Events, s.Today)
	cell.IncompleteClockIn = att.IncompleteClockIn
	cell.WorkedMinutes = att.WorkedMinutes
	return cell
}

const freeLabel = "Libre"

// Summary counts the days of a resolved month by category.
type Summary struct {
	WorkDays       int
	FreeDays       int
	VacationDays   int
	PersonalDays   int
	LeaveDays      int
	IncompleteDays int
	WorkedMinutes  int
}

func (m Month) Summary() Summary {
	var s Summary
	for _, c := range m.Cells {
		switch c.Category.Kind {
		case KindWorkShift:
			s.WorkDays++
		case KindFree:
			s.FreeDays++
		case KindVacation:
			s.VacationDays++
		case KindPersonalLeave:
			s.PersonalDays++
		case KindMedicalLeave:
			s.LeaveDays++
		}
		if c.IncompleteClockIn {
			s.IncompleteDays++
		}
		if c.WorkedMinutes != nil {
			s.WorkedMinutes += *c.WorkedMinutes
		}
	}
	return s
}
