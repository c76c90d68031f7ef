package service

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"shift-calendar-bot/internal/calendar"
	"shift-calendar-bot/internal/models"
	"shift-calendar-bot/internal/repository"

	"github.com/sirupsen/logrus"
)

// StatsService reads back the summaries memoized by CalendarService and
// the imported record counts.
type StatsService struct {
	summaries repository.MonthlySummaryRepository
	records   repository.SourceRecordRepository
	logger    *logrus.Logger
}

func NewStatsService(
	summaries repository.MonthlySummaryRepository,
	records repository.SourceRecordRepository,
) *StatsService {
	return &StatsService{
		summaries: summaries,
		records:   records,
		logger:    newLogger(),
	}
}

// EmployeeStats returns every stored summary of an employee, newest first.
func (s *StatsService) EmployeeStats(employeeID uint) ([]*models.MonthlySummary, error) {
	stats, err := s.summaries.GetByEmployee(employeeID)
	if err != nil {
		s.logger.WithError(err).WithField("employee_id", employeeID).Error("Failed to get employee stats")
		return nil, err
	}
	return stats, nil
}

// MonthStats returns the stored summaries of every employee for month.
func (s *StatsService) MonthStats(month calendar.MonthKey) ([]*models.MonthlySummary, error) {
	stats, err := s.summaries.GetByMonth(month.Year, int(month.Month))
	if err != nil {
		s.logger.WithError(err).WithField("month", month.String()).Error("Failed to get month stats")
		return nil, err
	}
	return stats, nil
}

func (s *StatsService) RecordCounts(employeeID uint) (map[models.SourceKind]int, error) {
	return s.records.CountByEmployee(employeeID)
}

func summaryMonth(st *models.MonthlySummary) calendar.MonthKey {
	return calendar.NewMonthKey(st.Year, time.Month(st.Month))
}

func (s *StatsService) FormatStat(st *models.MonthlySummary) string {
	var lines []string

	lines = append(lines, fmt.Sprintf("📊 %s", MonthName(summaryMonth(st))))
	lines = append(lines, fmt.Sprintf("🟢 Trabajo: %d  ⚪ Libres: %d", st.WorkDays, st.FreeDays))
	lines = append(lines, fmt.Sprintf("🏖 Vacaciones: %d  📝 Asuntos: %d  🏥 Baja: %d", st.VacationDays, st.PersonalDays, st.LeaveDays))
	if st.IncompleteDays > 0 {
		lines = append(lines, fmt.Sprintf("⚠️ Fichajes incompletos: %d", st.IncompleteDays))
	}
	lines = append(lines, fmt.Sprintf("⏱ %s", st.Total().String()))

	return strings.Join(lines, "\n")
}

func (s *StatsService) FormatStatsList(stats []*models.MonthlySummary) string {
	if len(stats) == 0 {
		return "📭 Aún no hay resúmenes. Consulta un mes con /calendar para generarlo."
	}

	blocks := make([]string, 0, len(stats))
	for _, st := range stats {
		blocks = append(blocks, s.FormatStat(st))
	}
	return strings.Join(blocks, "\n\n")
}

// FormatMonthStats renders one line per employee, ordered by code.
func (s *StatsService) FormatMonthStats(month calendar.MonthKey, stats []*models.MonthlySummary) string {
	if len(stats) == 0 {
		return fmt.Sprintf("📭 No hay resúmenes de %s.", MonthName(month))
	}

	sort.Slice(stats, func(i, j int) bool {
		return stats[i].Employee.Code < stats[j].Employee.Code
	})

	var lines []string
	lines = append(lines, fmt.Sprintf("📊 Resumen de %s:", MonthName(month)))
	lines = append(lines, "")

	for _, st := range stats {
		line := fmt.Sprintf("• %s (%s): %d días de trabajo, %s",
			st.Employee.DisplayName(), st.Employee.Code, st.WorkDays, st.Total().String())
		if st.IncompleteDays > 0 {
			line += fmt.Sprintf(" ⚠️ %d", st.IncompleteDays)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

var sourceKindNames = []struct {
	kind models.SourceKind
	name string
}{
	{models.SourceRoster, "Cuadrantes"},
	{models.SourceSchedule, "Horarios"},
	{models.SourceAbsence, "Ausencias"},
	{models.SourceMedicalLeave, "Bajas"},
}

func (s *StatsService) FormatRecordCounts(counts map[models.SourceKind]int) string {
	parts := make([]string, 0, len(sourceKindNames))
	for _, k := range sourceKindNames {
		parts = append(parts, fmt.Sprintf("%s: %d", k.name, counts[k.kind]))
	}
	return "🗂 " + strings.Join(parts, ", ")
}
