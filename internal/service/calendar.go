package service

import (
	"fmt"
	"strings"
	"time"

	"shift-calendar-bot/internal/calendar"
	"shift-calendar-bot/internal/models"
	"shift-calendar-bot/internal/repository"

	"github.com/sirupsen/logrus"
)

type CalendarService struct {
	records   repository.SourceRecordRepository
	events    repository.AttendanceEventRepository
	summaries repository.MonthlySummaryRepository
	opts      calendar.Options
	loc       *time.Location
	now       func() time.Time
	logger    *logrus.Logger
}

func NewCalendarService(
	records repository.SourceRecordRepository,
	events repository.AttendanceEventRepository,
	summaries repository.MonthlySummaryRepository,
	opts calendar.Options,
	loc *time.Location,
) *CalendarService {
	if loc == nil {
		loc = time.UTC
	}
	return &CalendarService{
		records:   records,
		events:    events,
		summaries: summaries,
		opts:      opts,
		loc:       loc,
		now:       time.Now,
		logger:    newLogger(),
	}
}

// Today is the current date in the configured timezone.
func (s *CalendarService) Today() calendar.Date {
	return calendar.DateOf(s.now().In(s.loc))
}

// CurrentMonth is the month of Today.
func (s *CalendarService) CurrentMonth() calendar.MonthKey {
	return s.Today().MonthKey()
}

func (s *CalendarService) loadRaw(employeeID uint) (calendar.RawSnapshot, error) {
	var raw calendar.RawSnapshot
	targets := []struct {
		kind models.SourceKind
		dst  *[]calendar.Record
	}{
		{models.SourceRoster, &raw.Rosters},
		{models.SourceSchedule, &raw.Schedules},
		{models.SourceAbsence, &raw.Absences},
		{models.SourceMedicalLeave, &raw.MedicalLeaves},
	}

	for _, t := range targets {
		rows, err := s.records.GetByEmployee(employeeID, t.kind)
		if err != nil {
			return raw, fmt.Errorf("load %s records: %w", t.kind, err)
		}
		for i := range rows {
			rec, err := rows[i].Decode()
			if err != nil {
				s.logger.WithError(err).WithField("employee_id", employeeID).Warn("Skipping undecodable record")
				continue
			}
			*t.dst = append(*t.dst, rec)
		}
	}
	return raw, nil
}

func (s *CalendarService) loadEvents(employeeID uint, month calendar.MonthKey) ([]calendar.AttendanceEvent, error) {
	rows, err := s.events.GetByEmployeeAndMonth(employeeID, month.Year, int(month.Month))
	if err != nil {
		return nil, fmt.Errorf("load attendance events: %w", err)
	}

	events := make([]calendar.AttendanceEvent, 0, len(rows))
	for i := range rows {
		if ev, ok := rows[i].Calendar(); ok {
			events = append(events, ev)
		}
	}
	return events, nil
}

// MonthCalendar resolves one month of an employee and memoizes its summary.
func (s *CalendarService) MonthCalendar(employeeID uint, month calendar.MonthKey) (calendar.Month, error) {
	if !month.Valid() {
		return calendar.Month{}, fmt.Errorf("invalid month %s", month)
	}

	raw, err := s.loadRaw(employeeID)
	if err != nil {
		return calendar.Month{}, err
	}
	events, err := s.loadEvents(employeeID, month)
	if err != nil {
		return calendar.Month{}, err
	}

	snap := raw.Decode(month, s.Today())
	snap.Events = events
	resolved := calendar.Resolve(snap, s.opts)

	summary := models.NewMonthlySummary(employeeID, resolved)
	if err := s.summaries.Upsert(&summary); err != nil {
		s.logger.WithError(err).WithFields(logrus.Fields{
			"employee_id": employeeID,
			"month":       month.String(),
		}).Warn("Failed to store monthly summary")
	}

	s.logger.WithFields(logrus.Fields{
		"employee_id": employeeID,
		"month":       month.String(),
		"total":       resolved.Total.String(),
	}).Debug("Month resolved")
	return resolved, nil
}

// DayEvents returns the attendance events of one day, sorted by clock.
func (s *CalendarService) DayEvents(employeeID uint, day calendar.Date) ([]calendar.AttendanceEvent, error) {
	rows, err := s.events.GetByEmployeeAndDate(employeeID, day.String())
	if err != nil {
		return nil, fmt.Errorf("load attendance events: %w", err)
	}

	events := make([]calendar.AttendanceEvent, 0, len(rows))
	for i := range rows {
		if ev, ok := rows[i].Calendar(); ok {
			events = append(events, ev)
		}
	}
	return events, nil
}

// MonthTotal returns the worked time of a month without resolving days.
func (s *CalendarService) MonthTotal(employeeID uint, month calendar.MonthKey) (calendar.MonthlyTotal, error) {
	events, err := s.loadEvents(employeeID, month)
	if err != nil {
		return calendar.MonthlyTotal{}, err
	}
	return calendar.ComputeMonthlyTotal(month, events), nil
}

// AvailableMonths returns the months an employee can browse.
func (s *CalendarService) AvailableMonths(employeeID uint) ([]calendar.MonthKey, error) {
	raw, err := s.loadRaw(employeeID)
	if err != nil {
		return nil, err
	}
	return calendar.AvailableMonths(calendar.RosterMonths(raw.DecodeRosters()), s.Today()), nil
}

// CurrentLeave returns the medical leave covering today, or nil.
func (s *CalendarService) CurrentLeave(employeeID uint) (*calendar.LeaveRange, error) {
	raw, err := s.loadRaw(employeeID)
	if err != nil {
		return nil, err
	}

	records := make([]calendar.MedicalLeaveRecord, 0, len(raw.MedicalLeaves))
	for _, rec := range raw.MedicalLeaves {
		records = append(records, calendar.MedicalLeaveFromRecord(rec))
	}

	leave, ok := calendar.CurrentLeave(records, s.Today())
	if !ok {
		return nil, nil
	}
	return &leave, nil
}

var monthNames = [...]string{
	"enero", "febrero", "marzo", "abril", "mayo", "junio",
	"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre",
}

var weekdayLetters = [...]string{"D", "L", "M", "X", "J", "V", "S"}

func MonthName(k calendar.MonthKey) string {
	if !k.Valid() {
		return k.String()
	}
	return fmt.Sprintf("%s %d", monthNames[k.Month-1], k.Year)
}

func categoryEmoji(c calendar.Category) string {
	switch c.Kind {
	case calendar.KindWorkShift:
		return "🟢"
	case calendar.KindVacation:
		return "🏖"
	case calendar.KindPersonalLeave:
		return "📝"
	case calendar.KindMedicalLeave:
		return "🏥"
	}
	return "⚪"
}

// FormatMonth renders a resolved month as chat text.
func (s *CalendarService) FormatMonth(employee *models.Employee, m calendar.Month) string {
	var b strings.Builder

	fmt.Fprintf(&b, "📅 %s: %s\n", employee.DisplayName(), MonthName(m.Key))
	if m.CurrentLeave != nil {
		b.WriteString(s.FormatLeave(m.CurrentLeave))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	for _, c := range m.Cells {
		fmt.Fprintf(&b, "%02d %s %s %s", c.Day, weekdayLetters[c.Date.Weekday()], categoryEmoji(c.Category), c.Label)
		if c.Schedule != "" {
			fmt.Fprintf(&b, " %s", c.Schedule)
		}
		if c.Reason != "" && c.Reason != c.Label {
			fmt.Fprintf(&b, " (%s)", c.Reason)
		}
		if c.WorkedMinutes != nil {
			fmt.Fprintf(&b, " · %dh %02dm", *c.WorkedMinutes/60, *c.WorkedMinutes%60)
		}
		if c.IncompleteClockIn {
			b.WriteString(" ⚠️")
		}
		b.WriteString("\n")
	}

	sum := m.Summary()
	b.WriteString("\n")
	fmt.Fprintf(&b, "🟢 Trabajo: %d  ⚪ Libres: %d  🏖 Vacaciones: %d  📝 Asuntos: %d  🏥 Baja: %d\n",
		sum.WorkDays, sum.FreeDays, sum.VacationDays, sum.PersonalDays, sum.LeaveDays)
	if sum.IncompleteDays > 0 {
		fmt.Fprintf(&b, "⚠️ Fichajes incompletos: %d\n", sum.IncompleteDays)
	}
	b.WriteString(FormatTotal(m.Key, m.Total))

	return b.String()
}

// FormatTotal renders the worked time of a month.
func FormatTotal(k calendar.MonthKey, total calendar.MonthlyTotal) string {
	source := "calculado de fichajes"
	if total.FromRecords {
		source = "según registros"
	}
	return fmt.Sprintf("⏱ Total %s: %s (%s)", MonthName(k), total.String(), source)
}

// FormatMonths renders the selectable months, marking the current one.
func (s *CalendarService) FormatMonths(months []calendar.MonthKey) string {
	current := s.CurrentMonth()

	var lines []string
	lines = append(lines, "🗓 Meses disponibles:")
	lines = append(lines, "")
	for _, k := range months {
		line := fmt.Sprintf("• %s (%s)", MonthName(k), k.String())
		if k == current {
			line += " ◀️"
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

// FormatLeave renders the current leave banner.
func (s *CalendarService) FormatLeave(leave *calendar.LeaveRange) string {
	if leave == nil {
		return "✅ No tienes ninguna baja activa."
	}
	text := fmt.Sprintf("🏥 %s desde %s", leave.Reason(), leave.Start)
	if leave.Open {
		return text + " (sin fecha de alta)"
	}
	return text + fmt.Sprintf(" hasta %s", leave.End)
}

// FormatDay renders the clock events of one day and their worked time.
func (s *CalendarService) FormatDay(day calendar.Date, events []calendar.AttendanceEvent) string {
	var lines []string
	lines = append(lines, fmt.Sprintf("🕐 Fichajes del %s (%s):", day, weekdayLetters[day.Weekday()]))
	lines = append(lines, "")

	if len(events) == 0 {
		lines = append(lines, "📭 Sin fichajes.")
		return strings.Join(lines, "\n")
	}

	for _, ev := range events {
		emoji, label := "🟢", "Entrada"
		if ev.Kind == calendar.ClockOut {
			emoji, label = "🔴", "Salida"
		}
		lines = append(lines, fmt.Sprintf("%s %s %s", emoji, label, calendar.FormatClock(ev.Clock)))
	}

	att := calendar.EvaluateDay(day, events, s.Today())
	lines = append(lines, "")
	if att.WorkedMinutes != nil {
		lines = append(lines, fmt.Sprintf("⏱ Trabajado: %dh %02dm", *att.WorkedMinutes/60, *att.WorkedMinutes%60))
	}
	if att.IncompleteClockIn {
		lines = append(lines, "⚠️ Fichaje incompleto")
	}
	return strings.Join(lines, "\n")
}
