package repository

import (
	"errors"

	"shift-calendar-bot/internal/models"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type AttendanceEventRepository interface {
	ReplaceForEmployee(employeeID uint, events []models.AttendanceEvent) error
	GetByEmployeeAndMonth(employeeID uint, year, month int) ([]models.AttendanceEvent, error)
	GetByEmployeeAndDate(employeeID uint, date string) ([]models.AttendanceEvent, error)
	DeleteByEmployee(employeeID uint) error
}

type GormAttendanceEventRepository struct {
	db     *gorm.DB
	logger *logrus.Logger
}

func NewGormAttendanceEventRepository(db *gorm.DB) (*GormAttendanceEventRepository, error) {
	logger := newLogger()

	if err := db.AutoMigrate(&models.AttendanceEvent{}); err != nil {
		logger.WithError(err).Error("Failed to auto-migrate attendance_events table")
		return nil, err
	}

	logger.Debug("Attendance event repository initialized")

	return &GormAttendanceEventRepository{
		db:     db,
		logger: logger,
	}, nil
}

// ReplaceForEmployee drops every stored event of the employee and inserts
// events instead.
func (r *GormAttendanceEventRepository) ReplaceForEmployee(employeeID uint, events []models.AttendanceEvent) error {
	for i := range events {
		events[i].ID = 0
		events[i].EmployeeID = employeeID
		if !events[i].IsValid() {
			r.logger.WithFields(logrus.Fields{
				"employee_id": employeeID,
				"date":        events[i].Date,
				"type":        events[i].Type,
			}).Warn("Invalid attendance event")
			return errors.New("invalid attendance event")
		}
	}

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("employee_id = ?", employeeID).Delete(&models.AttendanceEvent{}).Error; err != nil {
			return err
		}
		if len(events) == 0 {
			return nil
		}
		return tx.CreateInBatches(&events, 200).Error
	})
	if err != nil {
		r.logger.WithError(err).WithField("employee_id", employeeID).Error("Failed to replace attendance events")
		return err
	}

	r.logger.WithFields(logrus.Fields{
		"employee_id": employeeID,
		"count":       len(events),
	}).Debug("Attendance events replaced")
	return nil
}

func (r *GormAttendanceEventRepository) GetByEmployeeAndMonth(employeeID uint, year, month int) ([]models.AttendanceEvent, error) {
	var events []models.AttendanceEvent
	err := r.db.Where("employee_id = ? AND year = ? AND month = ?", employeeID, year, month).
		Order("date, clock_seconds").
		Find(&events).Error
	if err != nil {
		r.logger.WithError(err).Error("Failed to get attendance events by month")
		return nil, err
	}

	r.logger.WithFields(logrus.Fields{
		"employee_id": employeeID,
		"year":        year,
		"month":       month,
		"count":       len(events),
	}).Debug("Retrieved attendance events")
	return events, nil
}

func (r *GormAttendanceEventRepository) GetByEmployeeAndDate(employeeID uint, date string) ([]models.AttendanceEvent, error) {
	var events []models.AttendanceEvent
	err := r.db.Where("employee_id = ? AND date = ?", employeeID, date).
		Order("clock_seconds").
		Find(&events).Error
	return events, err
}

func (r *GormAttendanceEventRepository) DeleteByEmployee(employeeID uint) error {
	return r.db.Where("employee_id = ?", employeeID).Delete(&models.AttendanceEvent{}).Error
}
