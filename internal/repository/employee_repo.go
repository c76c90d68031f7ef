package repository

import (
	"errors"

	"shift-calendar-bot/internal/models"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var ErrEmployeeNotFound = errors.New("employee not found")

type EmployeeRepository interface {
	Create(employee *models.Employee) error
	Update(employee *models.Employee) error
	GetByID(id uint) (*models.Employee, error)
	GetByChatID(chatID int64) (*models.Employee, error)
	GetByCode(code string) (*models.Employee, error)
	GetAll() ([]*models.Employee, error)
	GetAdmins() ([]*models.Employee, error)
	UpsertByCode(code, name string) (*models.Employee, error)
	LinkChat(code string, chatID int64) error
	UpdateRole(id uint, role models.Role) error
	Delete(id uint) error
}

type GormEmployeeRepository struct {
	db     *gorm.DB
	logger *logrus.Logger
}

func NewGormEmployeeRepository(db *gorm.DB) (*GormEmployeeRepository, error) {
	logger := newLogger()

	if err := db.AutoMigrate(&models.Employee{}); err != nil {
		logger.WithError(err).Error("Failed to auto-migrate employees table")
		return nil, err
	}

	logger.Debug("Employee repository initialized")

	return &GormEmployeeRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *GormEmployeeRepository) Create(employee *models.Employee) error {
	existing, err := r.GetByCode(employee.Code)
	if err != nil {
		return err
	}
	if existing != nil {
		return errors.New("employee already exists")
	}

	if err := r.db.Create(employee).Error; err != nil {
		r.logger.WithError(err).WithField("code", employee.Code).Error("Failed to create employee")
		return err
	}

	r.logger.WithFields(logrus.Fields{
		"id":   employee.ID,
		"code": employee.Code,
	}).Info("Employee created")
	return nil
}

func (r *GormEmployeeRepository) Update(employee *models.Employee) error {
	existing, err := r.GetByID(employee.ID)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrEmployeeNotFound
	}

	return r.db.Save(employee).Error
}

func (r *GormEmployeeRepository) GetByID(id uint) (*models.Employee, error) {
	return r.first("id = ?", id)
}

func (r *GormEmployeeRepository) GetByChatID(chatID int64) (*models.Employee, error) {
	return r.first("chat_id = ?", chatID)
}

func (r *GormEmployeeRepository) GetByCode(code string) (*models.Employee, error) {
	return r.first("code = ?", code)
}

func (r *GormEmployeeRepository) first(query string, arg any) (*models.Employee, error) {
	var employee models.Employee
	result := r.db.Where(query, arg).First(&employee)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if result.Error != nil {
		r.logger.WithError(result.Error).WithField("query", query).Error("Failed to get employee")
		return nil, result.Error
	}

	return &employee, nil
}

func (r *GormEmployeeRepository) GetAll() ([]*models.Employee, error) {
	var employees []*models.Employee
	if err := r.db.Order("code").Find(&employees).Error; err != nil {
		return nil, err
	}
	return employees, nil
}

func (r *GormEmployeeRepository) GetAdmins() ([]*models.Employee, error) {
	var admins []*models.Employee
	if err := r.db.Where("role = ?", models.RoleAdmin).Find(&admins).Error; err != nil {
		return nil, err
	}
	return admins, nil
}

// UpsertByCode creates the employee with code or refreshes its name.
func (r *GormEmployeeRepository) UpsertByCode(code, name string) (*models.Employee, error) {
	employee, err := r.GetByCode(code)
	if err != nil {
		return nil, err
	}

	if employee == nil {
		employee = &models.Employee{Code: code, Name: name, Role: string(models.RoleEmployee)}
		if err := r.db.Create(employee).Error; err != nil {
			r.logger.WithError(err).WithField("code", code).Error("Failed to create employee")
			return nil, err
		}
		r.logger.WithFields(logrus.Fields{
			"id":   employee.ID,
			"code": code,
		}).Info("Employee created from import")
		return employee, nil
	}

	if name != "" && employee.Name != name {
		employee.Name = name
		if err := r.db.Save(employee).Error; err != nil {
			return nil, err
		}
	}
	return employee, nil
}

// LinkChat attaches chatID to the employee with code, detaching it from any
// other employee first.
func (r *GormEmployeeRepository) LinkChat(code string, chatID int64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Employee{}).
			Where("chat_id = ? AND code <> ?", chatID, code).
			Update("chat_id", nil).Error; err != nil {
			return err
		}

		result := tx.Model(&models.Employee{}).
			Where("code = ?", code).
			Update("chat_id", chatID)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrEmployeeNotFound
		}

		r.logger.WithFields(logrus.Fields{
			"code":    code,
			"chat_id": chatID,
		}).Info("Chat linked to employee")
		return nil
	})
}

func (r *GormEmployeeRepository) UpdateRole(id uint, role models.Role) error {
	result := r.db.Model(&models.Employee{}).
		Where("id = ?", id).
		Update("role", string(role))

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrEmployeeNotFound
	}
	return nil
}

func (r *GormEmployeeRepository) Delete(id uint) error {
	result := r.db.Delete(&models.Employee{}, id)

	if result.Error != nil {
		r.logger.WithError(result.Error).WithField("id", id).Error("Failed to delete employee")
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrEmployeeNotFound
	}

	r.logger.WithField("id", id).Info("Employee deleted")
	return nil
}
