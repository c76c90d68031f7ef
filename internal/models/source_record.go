package models

import (
	"encoding/json"
	"fmt"
	"time"
)

type SourceKind string

// Kinds of raw record sets kept per employee.
const (
	SourceRoster       SourceKind = "roster"
	SourceSchedule     SourceKind = "schedule"
	SourceAbsence      SourceKind = "absence"
	SourceMedicalLeave SourceKind = "medical_leave"
)

func (k SourceKind) Valid() bool {
	switch k {
	case SourceRoster, SourceSchedule, SourceAbsence, SourceMedicalLeave:
		return true
	}
	return false
}

// SourceRecord stores one raw upstream record as JSON. A set of records of
// one kind is replaced as a whole on every import.
type SourceRecord struct {
	ID         uint      `gorm:"primarykey" json:"id"`
	EmployeeID uint      `gorm:"not null;index:idx_source_employee_kind" json:"employee_id"`
	Kind       string    `gorm:"type:varchar(20);not null;index:idx_source_employee_kind" json:"kind"`
	Position   int       `gorm:"not null;default:0" json:"position"`
	Payload    string    `gorm:"type:text;not null" json:"payload"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`

	Employee Employee `gorm:"foreignKey:EmployeeID" json:"-"`
}

func (SourceRecord) TableName() string {
	return "source_records"
}

// NewSourceRecord encodes rec as the payload of a record at position.
func NewSourceRecord(employeeID uint, kind SourceKind, position int, rec map[string]any) (SourceRecord, error) {
	payload, err := json.Marshal(rec)
	if err != nil {
		return SourceRecord{}, fmt.Errorf("encode %s record: %w", kind, err)
	}
	return SourceRecord{
		EmployeeID: employeeID,
		Kind:       string(kind),
		Position:   position,
		Payload:    string(payload),
	}, nil
}

// Decode returns the raw record.
func (r *SourceRecord) Decode() (map[string]any, error) {
	var rec map[string]any
	if err := json.Unmarshal([]byte(r.Payload), &rec); err != nil {
		return nil, fmt.Errorf("decode %s record %d: %w", r.Kind, r.ID, err)
	}
	return rec, nil
}
