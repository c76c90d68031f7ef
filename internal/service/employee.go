package service

import (
	"fmt"
	"strings"

	"shift-calendar-bot/internal/models"
	"shift-calendar-bot/internal/repository"

	"github.com/sirupsen/logrus"
)

type EmployeeService struct {
	repo            repository.EmployeeRepository
	baseAdminChatID int64
	logger          *logrus.Logger
}

func NewEmployeeService(repo repository.EmployeeRepository) *EmployeeService {
	return &EmployeeService{repo: repo, logger: newLogger()}
}

// GetByChat returns the employee linked to chatID.
func (s *EmployeeService) GetByChat(chatID int64) (*models.Employee, error) {
	employee, err := s.repo.GetByChatID(chatID)
	if err != nil {
		return nil, fmt.Errorf("get employee by chat: %w", err)
	}
	if employee == nil {
		return nil, ErrEmployeeNotLinked
	}
	return employee, nil
}

func (s *EmployeeService) GetByCode(code string) (*models.Employee, error) {
	employee, err := s.repo.GetByCode(strings.TrimSpace(code))
	if err != nil {
		return nil, fmt.Errorf("get employee by code: %w", err)
	}
	if employee == nil {
		return nil, ErrEmployeeNotFound
	}
	return employee, nil
}

// LinkChat attaches chatID to the employee with code. The admin role
// travels with the chat.
func (s *EmployeeService) LinkChat(chatID int64, code string) (*models.Employee, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, fmt.Errorf("empty employee code")
	}

	target, err := s.GetByCode(code)
	if err != nil {
		return nil, err
	}

	previous, err := s.repo.GetByChatID(chatID)
	if err != nil {
		return nil, fmt.Errorf("get employee by chat: %w", err)
	}

	if err := s.repo.LinkChat(target.Code, chatID); err != nil {
		return nil, fmt.Errorf("link chat: %w", err)
	}

	if previous != nil && previous.IsAdmin() && !target.IsAdmin() {
		if err := s.repo.UpdateRole(target.ID, models.RoleAdmin); err != nil {
			return nil, fmt.Errorf("carry admin role: %w", err)
		}
		target.SetRole(models.RoleAdmin)
	}

	target.ChatID = &chatID
	s.logger.WithFields(logrus.Fields{
		"chat_id": chatID,
		"code":    target.Code,
	}).Info("Employee linked")
	return target, nil
}

func (s *EmployeeService) IsAdmin(chatID int64) (bool, error) {
	employee, err := s.repo.GetByChatID(chatID)
	if err != nil {
		return false, err
	}
	return employee != nil && employee.IsAdmin(), nil
}

// InitializeAdmin makes sure the configured admin chat exists with the
// admin role.
func (s *EmployeeService) InitializeAdmin(adminChatID int64) error {
	if adminChatID == 0 {
		return nil
	}
	s.baseAdminChatID = adminChatID

	existing, err := s.repo.GetByChatID(adminChatID)
	if err != nil {
		return err
	}
	if existing != nil {
		if existing.IsAdmin() {
			return nil
		}
		return s.repo.UpdateRole(existing.ID, models.RoleAdmin)
	}

	admin := &models.Employee{
		ChatID: &adminChatID,
		Code:   fmt.Sprintf("admin-%d", adminChatID),
		Name:   "Administrador",
		Role:   string(models.RoleAdmin),
	}
	return s.repo.Create(admin)
}

func (s *EmployeeService) GetAll() ([]*models.Employee, error) {
	return s.repo.GetAll()
}

func (s *EmployeeService) GetAdmins() ([]*models.Employee, error) {
	return s.repo.GetAdmins()
}

// SetRole changes the role of the employee with code. The configured admin
// chat cannot be demoted.
func (s *EmployeeService) SetRole(code string, role models.Role) (*models.Employee, error) {
	if role != models.RoleAdmin && role != models.RoleEmployee {
		return nil, fmt.Errorf("unknown role %q", role)
	}

	employee, err := s.GetByCode(code)
	if err != nil {
		return nil, err
	}

	if role != models.RoleAdmin && s.isBaseAdmin(employee) {
		return nil, ErrProtectedAdmin
	}

	if err := s.repo.UpdateRole(employee.ID, role); err != nil {
		return nil, fmt.Errorf("update role: %w", err)
	}
	employee.SetRole(role)

	s.logger.WithFields(logrus.Fields{
		"code": employee.Code,
		"role": role,
	}).Info("Employee role updated")
	return employee, nil
}

func (s *EmployeeService) isBaseAdmin(employee *models.Employee) bool {
	return s.baseAdminChatID != 0 && employee.ChatID != nil && *employee.ChatID == s.baseAdminChatID
}

func (s *EmployeeService) FormatEmployee(employee *models.Employee) string {
	var lines []string

	lines = append(lines, "👤 Perfil:")
	lines = append(lines, "")
	lines = append(lines, fmt.Sprintf("🆔 Código: %s", employee.Code))
	lines = append(lines, fmt.Sprintf("👨‍💼 Nombre: %s", employee.DisplayName()))

	roleEmoji := "👤"
	if employee.IsAdmin() {
		roleEmoji = "👑"
	}
	lines = append(lines, fmt.Sprintf("%s Rol: %s", roleEmoji, employee.Role))

	return strings.Join(lines, "\n")
}

func (s *EmployeeService) FormatAdmins() (string, error) {
	admins, err := s.GetAdmins()
	if err != nil {
		return "", err
	}

	if len(admins) == 0 {
		return "👑 La lista de administradores está vacía.", nil
	}

	var lines []string
	lines = append(lines, "👑 Administradores:")
	lines = append(lines, "")

	for i, a := range admins {
		line := fmt.Sprintf("%d. %s (%s)", i+1, a.DisplayName(), a.Code)
		if a.ChatID != nil {
			line += fmt.Sprintf(" - chat: %d", *a.ChatID)
		}
		lines = append(lines, line)
	}

	return strings.Join(lines, "\n"), nil
}

func (s *EmployeeService) FormatAllEmployees() (string, error) {
	employees, err := s.GetAll()
	if err != nil {
		return "", err
	}

	if len(employees) == 0 {
		return "📭 No hay empleados importados.", nil
	}

	var lines []string
	lines = append(lines, "📋 Empleados:")
	lines = append(lines, "")

	linked := 0
	for i, e := range employees {
		roleEmoji := "👤"
		if e.IsAdmin() {
			roleEmoji = "👑"
		}
		line := fmt.Sprintf("%d. %s %s (%s)", i+1, roleEmoji, e.DisplayName(), e.Code)
		if e.IsLinked() {
			linked++
			line += " 🔗"
		}
		lines = append(lines, line)
	}

	lines = append(lines, "")
	lines = append(lines, fmt.Sprintf("📊 Total: %d, vinculados: %d", len(employees), linked))

	return strings.Join(lines, "\n"), nil
}
