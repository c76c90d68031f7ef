package snapshot

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"shift-calendar-bot/internal/calendar"
)

// File is a snapshot export: every employee with its raw record arrays.
type File struct {
	GeneratedAt string     `json:"generated_at"`
	Employees   []Employee `json:"employees"`
}

// Employee carries the raw upstream records of one employee.
type Employee struct {
	Code          string            `json:"code"`
	Name          string            `json:"name"`
	Rosters       []calendar.Record `json:"rosters"`
	Schedules     []calendar.Record `json:"schedules"`
	Absences      []calendar.Record `json:"absences"`
	MedicalLeaves []calendar.Record `json:"medical_leaves"`
	Events        []calendar.Record `json:"events"`
}

// Raw returns the record arrays in the shape the calendar decodes.
func (e Employee) Raw() calendar.RawSnapshot {
	return calendar.RawSnapshot{
		Rosters:       e.Rosters,
		Schedules:     e.Schedules,
		Absences:      e.Absences,
		MedicalLeaves: e.MedicalLeaves,
		Events:        e.Events,
	}
}

// ParseSnapshotJSON reads a snapshot export from filePath.
func ParseSnapshotJSON(filePath string) (*File, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open snapshot file: %w", err)
	}
	defer f.Close()

	return DecodeSnapshot(f)
}

// DecodeSnapshot decodes a snapshot export. Employees without a code are
// rejected since nothing could be attached to them.
func DecodeSnapshot(r io.Reader) (*File, error) {
	var file File
	if err := json.NewDecoder(r).Decode(&file); err != nil {
		return nil, fmt.Errorf("failed to unmarshal snapshot: %w", err)
	}

	for i := range file.Employees {
		file.Employees[i].Code = strings.TrimSpace(file.Employees[i].Code)
		if file.Employees[i].Code == "" {
			return nil, fmt.Errorf("employee #%d has no code", i+1)
		}
	}
	return &file, nil
}

// Find returns the employee with code.
func (f *File) Find(code string) (Employee, bool) {
	code = strings.TrimSpace(code)
	for _, e := range f.Employees {
		if strings.EqualFold(e.Code, code) {
			return e, true
		}
	}
	return Employee{}, false
}
