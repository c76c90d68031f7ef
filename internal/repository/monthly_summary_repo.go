package repository

import (
	"errors"

	"shift-calendar-bot/internal/models"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type MonthlySummaryRepository interface {
	Upsert(summary *models.MonthlySummary) error
	GetByEmployeeAndMonth(employeeID uint, year, month int) (*models.MonthlySummary, error)
	GetByEmployee(employeeID uint) ([]*models.MonthlySummary, error)
	GetByMonth(year, month int) ([]*models.MonthlySummary, error)
	DeleteByEmployee(employeeID uint) error
}

type GormMonthlySummaryRepository struct {
	db     *gorm.DB
	logger *logrus.Logger
}

func NewGormMonthlySummaryRepository(db *gorm.DB) (*GormMonthlySummaryRepository, error) {
	logger := newLogger()

	if err := db.AutoMigrate(&models.MonthlySummary{}); err != nil {
		logger.WithError(err).Error("Failed to auto-migrate monthly_summaries table")
		return nil, err
	}

	logger.Debug("Monthly summary repository initialized")

	return &GormMonthlySummaryRepository{
		db:     db,
		logger: logger,
	}, nil
}

// Upsert stores summary, overwriting the row of the same employee month.
func (r *GormMonthlySummaryRepository) Upsert(summary *models.MonthlySummary) error {
	if !summary.IsValid() {
		r.logger.WithFields(logrus.Fields{
			"employee_id": summary.EmployeeID,
			"year":        summary.Year,
			"month":       summary.Month,
		}).Warn("Invalid monthly summary")
		return errors.New("invalid monthly summary")
	}

	result := r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "employee_id"}, {Name: "year"}, {Name: "month"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"work_days", "free_days", "vacation_days", "personal_days", "leave_days",
			"incomplete_days", "worked_seconds", "from_records", "updated_at",
		}),
	}).Create(summary)
	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to upsert monthly summary")
		return result.Error
	}

	r.logger.WithFields(logrus.Fields{
		"employee_id":    summary.EmployeeID,
		"year":           summary.Year,
		"month":          summary.Month,
		"worked_seconds": summary.WorkedSeconds,
	}).Debug("Monthly summary stored")
	return nil
}

func (r *GormMonthlySummaryRepository) GetByEmployeeAndMonth(employeeID uint, year, month int) (*models.MonthlySummary, error) {
	var summary models.MonthlySummary
	result := r.db.Where("employee_id = ? AND year = ? AND month = ?", employeeID, year, month).First(&summary)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to get monthly summary")
		return nil, result.Error
	}
	return &summary, nil
}

func (r *GormMonthlySummaryRepository) GetByEmployee(employeeID uint) ([]*models.MonthlySummary, error) {
	var summaries []*models.MonthlySummary
	err := r.db.Where("employee_id = ?", employeeID).
		Order("year DESC, month DESC").
		Find(&summaries).Error
	return summaries, err
}

func (r *GormMonthlySummaryRepository) GetByMonth(year, month int) ([]*models.MonthlySummary, error) {
	var summaries []*models.MonthlySummary
	err := r.db.Preload("Employee").
		Where("year = ? AND month = ?", year, month).
		Find(&summaries).Error
	return summaries, err
}

func (r *GormMonthlySummaryRepository) DeleteByEmployee(employeeID uint) error {
	return r.db.Where("employee_id = ?", employeeID).Delete(&models.MonthlySummary{}).Error
}
