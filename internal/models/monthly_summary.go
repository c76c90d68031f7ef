package models

import (
	"time"

	"shift-calendar-bot/internal/calendar"
)

// MonthlySummary memoizes the counts of the last resolution of a month.
type MonthlySummary struct {
	ID         uint `gorm:"primarykey" json:"id"`
	EmployeeID uint `gorm:"not null;uniqueIndex:idx_summary_employee_month" json:"employee_id"`
	Year       int  `gorm:"not null;uniqueIndex:idx_summary_employee_month" json:"year"`
	Month      int  `gorm:"not null;check:month >= 1 AND month <= 12;uniqueIndex:idx_summary_employee_month" json:"month"`

	WorkDays       int `gorm:"not null;default:0" json:"work_days"`
	FreeDays       int `gorm:"not null;default:0" json:"free_days"`
	VacationDays   int `gorm:"not null;default:0" json:"vacation_days"`
	PersonalDays   int `gorm:"not null;default:0" json:"personal_days"`
	LeaveDays      int `gorm:"not null;default:0" json:"leave_days"`
	IncompleteDays int `gorm:"not null;default:0" json:"incomplete_days"`

	WorkedSeconds int  `gorm:"not null;default:0" json:"worked_seconds"`
	FromRecords   bool `gorm:"not null;default:false" json:"from_records"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Employee Employee `gorm:"foreignKey:EmployeeID" json:"-"`
}

func (MonthlySummary) TableName() string {
	return "monthly_summaries"
}

// NewMonthlySummary builds the summary row of a resolved month.
func NewMonthlySummary(employeeID uint, m calendar.Month) MonthlySummary {
	s := m.Summary()
	return MonthlySummary{
		EmployeeID:     employeeID,
		Year:           m.Key.Year,
		Month:          int(m.Key.Month),
		WorkDays:       s.WorkDays,
		FreeDays:       s.FreeDays,
		VacationDays:   s.VacationDays,
		PersonalDays:   s.PersonalDays,
		LeaveDays:      s.LeaveDays,
		IncompleteDays: s.IncompleteDays,
		WorkedSeconds:  m.Total.Seconds,
		FromRecords:    m.Total.FromRecords,
	}
}

func (s *MonthlySummary) Total() calendar.MonthlyTotal {
	return calendar.MonthlyTotal{Seconds: s.WorkedSeconds, FromRecords: s.FromRecords}
}

func (s *MonthlySummary) IsValid() bool {
	if s.EmployeeID == 0 {
		return false
	}
	if s.Month < 1 || s.Month > 12 {
		return false
	}
	if s.WorkDays < 0 || s.IncompleteDays < 0 || s.WorkedSeconds < 0 {
		return false
	}
	return s.WorkDays+s.FreeDays+s.VacationDays+s.PersonalDays+s.LeaveDays <= 31
}
