package service

import (
	"fmt"
	"path/filepath"
	"strings"

	"shift-calendar-bot/internal/calendar"
	"shift-calendar-bot/internal/models"
	"shift-calendar-bot/internal/repository"
	"shift-calendar-bot/pkg/snapshot"

	"github.com/sirupsen/logrus"
)

type ImportService struct {
	employees repository.EmployeeRepository
	records   repository.SourceRecordRepository
	events    repository.AttendanceEventRepository
	summaries repository.MonthlySummaryRepository
	logger    *logrus.Logger
}

func NewImportService(
	employees repository.EmployeeRepository,
	records repository.SourceRecordRepository,
	events repository.AttendanceEventRepository,
	summaries repository.MonthlySummaryRepository,
) *ImportService {
	return &ImportService{
		employees: employees,
		records:   records,
		events:    events,
		summaries: summaries,
		logger:    newLogger(),
	}
}

// ImportResult counts what an import stored.
type ImportResult struct {
	Employees     int
	Records       int
	Events        int
	SkippedEvents int
}

func (r *ImportResult) String() string {
	return fmt.Sprintf("empleados: %d, registros: %d, fichajes: %d (descartados: %d)",
		r.Employees, r.Records, r.Events, r.SkippedEvents)
}

// ImportFile loads a .json snapshot export or a .xlsx roster sheet.
func (s *ImportService) ImportFile(path string) (*ImportResult, error) {
	s.logger.WithField("path", path).Info("Importing file")

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		file, err := snapshot.ParseSnapshotJSON(path)
		if err != nil {
			return nil, err
		}
		return s.ImportSnapshot(file)
	case ".xlsx":
		rows, err := snapshot.ParseRosterXLSX(path)
		if err != nil {
			return nil, err
		}
		return s.ImportRosterRows(rows)
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedFile, filepath.Base(path))
}

// ImportSnapshot replaces, per employee in file, every stored record set
// and the attendance events.
func (s *ImportService) ImportSnapshot(file *snapshot.File) (*ImportResult, error) {
	result := &ImportResult{}

	for _, e := range file.Employees {
		employee, err := s.employees.UpsertByCode(e.Code, e.Name)
		if err != nil {
			return result, fmt.Errorf("upsert employee %s: %w", e.Code, err)
		}

		sets := []struct {
			kind models.SourceKind
			recs []calendar.Record
		}{
			{models.SourceRoster, e.Rosters},
			{models.SourceSchedule, e.Schedules},
			{models.SourceAbsence, e.Absences},
			{models.SourceMedicalLeave, e.MedicalLeaves},
		}
		for _, set := range sets {
			n, err := s.replaceRecords(employee.ID, set.kind, set.recs)
			if err != nil {
				return result, err
			}
			result.Records += n
		}

		events := make([]models.AttendanceEvent, 0, len(e.Events))
		for _, rec := range e.Events {
			ev, ok := calendar.EventFromRecord(rec)
			if !ok {
				result.SkippedEvents++
				continue
			}
			events = append(events, models.NewAttendanceEvent(employee.ID, ev))
		}
		if err := s.events.ReplaceForEmployee(employee.ID, events); err != nil {
			return result, fmt.Errorf("store events of %s: %w", e.Code, err)
		}
		result.Events += len(events)
		result.Employees++
	}

	s.logger.WithFields(logrus.Fields{
		"employees": result.Employees,
		"records":   result.Records,
		"events":    result.Events,
		"skipped":   result.SkippedEvents,
	}).Info("Snapshot imported")
	return result, nil
}

func (s *ImportService) replaceRecords(employeeID uint, kind models.SourceKind, recs []calendar.Record) (int, error) {
	rows := make([]models.SourceRecord, 0, len(recs))
	for i, rec := range recs {
		row, err := models.NewSourceRecord(employeeID, kind, i, rec)
		if err != nil {
			return 0, err
		}
		rows = append(rows, row)
	}
	if err := s.records.ReplaceForEmployee(employeeID, kind, rows); err != nil {
		return 0, fmt.Errorf("store %s records: %w", kind, err)
	}
	return len(rows), nil
}

// ImportRosterRows merges roster sheet rows into the stored rosters: a
// stored month present in the sheet is replaced, other months are kept.
func (s *ImportService) ImportRosterRows(rows []snapshot.RosterRow) (*ImportResult, error) {
	result := &ImportResult{}

	var order []string
	byCode := make(map[string][]snapshot.RosterRow)
	for _, row := range rows {
		if _, seen := byCode[row.Code]; !seen {
			order = append(order, row.Code)
		}
		byCode[row.Code] = append(byCode[row.Code], row)
	}

	for _, code := range order {
		group := byCode[code]
		employee, err := s.employees.UpsertByCode(code, group[0].Name)
		if err != nil {
			return result, fmt.Errorf("upsert employee %s: %w", code, err)
		}

		months := make(map[calendar.MonthKey]bool)
		var incoming []calendar.Record
		for _, row := range group {
			entry, ok := calendar.RosterFromRecord(row.Record)
			if !ok {
				continue
			}
			months[entry.Month] = true
			incoming = append(incoming, row.Record)
		}

		stored, err := s.records.GetByEmployee(employee.ID, models.SourceRoster)
		if err != nil {
			return result, err
		}
		var merged []calendar.Record
		for i := range stored {
			rec, err := stored[i].Decode()
			if err != nil {
				continue
			}
			if entry, ok := calendar.RosterFromRecord(rec); ok && months[entry.Month] {
				continue
			}
			merged = append(merged, rec)
		}
		merged = append(merged, incoming...)

		n, err := s.replaceRecords(employee.ID, models.SourceRoster, merged)
		if err != nil {
			return result, err
		}
		result.Records += n
		result.Employees++
	}

	s.logger.WithFields(logrus.Fields{
		"employees": result.Employees,
		"records":   result.Records,
	}).Info("Roster sheet imported")
	return result, nil
}

// RemoveEmployee deletes the employee with code together with everything
// imported for it.
func (s *ImportService) RemoveEmployee(code string) (*models.Employee, error) {
	employee, err := s.employees.GetByCode(strings.TrimSpace(code))
	if err != nil {
		return nil, fmt.Errorf("get employee by code: %w", err)
	}
	if employee == nil {
		return nil, ErrEmployeeNotFound
	}
	if employee.IsAdmin() {
		return nil, ErrProtectedAdmin
	}

	if err := s.records.DeleteByEmployee(employee.ID); err != nil {
		return nil, fmt.Errorf("delete records: %w", err)
	}
	if err := s.events.DeleteByEmployee(employee.ID); err != nil {
		return nil, fmt.Errorf("delete events: %w", err)
	}
	if err := s.summaries.DeleteByEmployee(employee.ID); err != nil {
		return nil, fmt.Errorf("delete summaries: %w", err)
	}
	if err := s.employees.Delete(employee.ID); err != nil {
		return nil, fmt.Errorf("delete employee: %w", err)
	}

	s.logger.WithField("code", employee.Code).Info("Employee removed")
	return employee, nil
}
