package models

import (
	"time"

	"shift-calendar-bot/internal/calendar"
)

// Event types as stored.
const (
	EventClockIn  = "entrada"
	EventClockOut = "salida"
)

// AttendanceEvent is one imported clock-in or clock-out.
type AttendanceEvent struct {
	ID              uint      `gorm:"primarykey" json:"id"`
	EmployeeID      uint      `gorm:"not null;index" json:"employee_id"`
	Date            string    `gorm:"type:varchar(10);not null;index" json:"date"` // YYYY-MM-DD
	Year            int       `gorm:"not null;index:idx_event_month" json:"year"`
	Month           int       `gorm:"not null;index:idx_event_month" json:"month"`
	ClockSeconds    int       `gorm:"not null" json:"clock_seconds"`
	Type            string    `gorm:"type:varchar(10);not null" json:"type"`
	DurationSeconds *int      `json:"duration_seconds"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"created_at"`

	Employee Employee `gorm:"foreignKey:EmployeeID" json:"-"`
}

func (AttendanceEvent) TableName() string {
	return "attendance_events"
}

func NewAttendanceEvent(employeeID uint, ev calendar.AttendanceEvent) AttendanceEvent {
	typ := EventClockIn
	if ev.Kind == calendar.ClockOut {
		typ = EventClockOut
	}
	return AttendanceEvent{
		EmployeeID:      employeeID,
		Date:            ev.Date.String(),
		Year:            ev.Date.Year,
		Month:           int(ev.Date.Month),
		ClockSeconds:    ev.Clock,
		Type:            typ,
		DurationSeconds: ev.Duration,
	}
}

// Calendar converts the stored row back into a core event. ok is false for
// rows whose date or type no longer parse.
func (e *AttendanceEvent) Calendar() (calendar.AttendanceEvent, bool) {
	kind, ok := calendar.ParseEventKind(e.Type)
	if !ok {
		return calendar.AttendanceEvent{}, false
	}
	date, ok := calendar.Normalize(e.Date)
	if !ok {
		return calendar.AttendanceEvent{}, false
	}
	return calendar.AttendanceEvent{
		Date:     date,
		Clock:    e.ClockSeconds,
		Kind:     kind,
		Duration: e.DurationSeconds,
	}, true
}

func (e *AttendanceEvent) IsValid() bool {
	if e.EmployeeID == 0 || e.Date == "" {
		return false
	}
	if e.ClockSeconds < 0 || e.ClockSeconds >= 24*3600 {
		return false
	}
	return e.Type == EventClockIn || e.Type == EventClockOut
}
