package repository

import (
	"fmt"

	"shift-calendar-bot/internal/models"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type SourceRecordRepository interface {
	ReplaceForEmployee(employeeID uint, kind models.SourceKind, records []models.SourceRecord) error
	GetByEmployee(employeeID uint, kind models.SourceKind) ([]models.SourceRecord, error)
	CountByEmployee(employeeID uint) (map[models.SourceKind]int, error)
	DeleteByEmployee(employeeID uint) error
}

type GormSourceRecordRepository struct {
	db     *gorm.DB
	logger *logrus.Logger
}

func NewGormSourceRecordRepository(db *gorm.DB) (*GormSourceRecordRepository, error) {
	logger := newLogger()

	if err := db.AutoMigrate(&models.SourceRecord{}); err != nil {
		logger.WithError(err).Error("Failed to auto-migrate source_records table")
		return nil, err
	}

	logger.Debug("Source record repository initialized")

	return &GormSourceRecordRepository{
		db:     db,
		logger: logger,
	}, nil
}

// ReplaceForEmployee swaps the whole record set of one kind in a single
// transaction. Positions are renumbered in slice order.
func (r *GormSourceRecordRepository) ReplaceForEmployee(employeeID uint, kind models.SourceKind, records []models.SourceRecord) error {
	if !kind.Valid() {
		return fmt.Errorf("unknown source kind %q", kind)
	}

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("employee_id = ? AND kind = ?", employeeID, string(kind)).
			Delete(&models.SourceRecord{}).Error; err != nil {
			return err
		}
		if len(records) == 0 {
			return nil
		}

		for i := range records {
			records[i].ID = 0
			records[i].EmployeeID = employeeID
			records[i].Kind = string(kind)
			records[i].Position = i
		}
		return tx.Create(&records).Error
	})
	if err != nil {
		r.logger.WithError(err).WithFields(logrus.Fields{
			"employee_id": employeeID,
			"kind":        kind,
		}).Error("Failed to replace source records")
		return err
	}

	r.logger.WithFields(logrus.Fields{
		"employee_id": employeeID,
		"kind":        kind,
		"count":       len(records),
	}).Debug("Source records replaced")
	return nil
}

func (r *GormSourceRecordRepository) GetByEmployee(employeeID uint, kind models.SourceKind) ([]models.SourceRecord, error) {
	var records []models.SourceRecord
	err := r.db.Where("employee_id = ? AND kind = ?", employeeID, string(kind)).
		Order("position").
		Find(&records).Error
	if err != nil {
		r.logger.WithError(err).Error("Failed to get source records")
		return nil, err
	}
	return records, nil
}

func (r *GormSourceRecordRepository) CountByEmployee(employeeID uint) (map[models.SourceKind]int, error) {
	var rows []struct {
		Kind  string
		Count int
	}
	err := r.db.Model(&models.SourceRecord{}).
		Select("kind, COUNT(*) as count").
		Where("employee_id = ?", employeeID).
		Group("kind").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[models.SourceKind]int, len(rows))
	for _, row := range rows {
		counts[models.SourceKind(row.Kind)] = row.Count
	}
	return counts, nil
}

func (r *GormSourceRecordRepository) DeleteByEmployee(employeeID uint) error {
	return r.db.Where("employee_id = ?", employeeID).Delete(&models.SourceRecord{}).Error
}
