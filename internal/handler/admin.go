package handler

import (
	"errors"
	"fmt"
	"strings"

	"shift-calendar-bot/internal/models"
	"shift-calendar-bot/internal/service"

	"github.com/sirupsen/logrus"
)

// requireAdmin replies to non-admin chats and reports whether to continue.
func (h *Handler) requireAdmin(chatID int64) bool {
	isAdmin, err := h.employeeService.IsAdmin(chatID)
	if err != nil {
		h.sendText(chatID, "❌ Error al comprobar permisos: "+err.Error())
		return false
	}

	if !isAdmin {
		h.sendText(chatID, "❌ Acceso denegado. Este comando es solo para administradores.")
		return false
	}
	return true
}

func (h *Handler) importFile(chatID int64, args string) {
	if !h.requireAdmin(chatID) {
		return
	}

	path := strings.TrimSpace(args)
	if path == "" {
		h.sendText(chatID, "❌ Indica la ruta del fichero: /import RUTA")
		return
	}

	result, err := h.importService.ImportFile(path)
	if errors.Is(err, service.ErrUnsupportedFile) {
		h.sendText(chatID, "❌ Solo se admiten ficheros .json o .xlsx")
		return
	}
	if err != nil {
		logrus.WithError(err).WithField("path", path).Error("Import failed")
		h.sendText(chatID, "❌ Error al importar: "+err.Error())
		return
	}

	h.sendText(chatID, "✅ Importación completada\n"+result.String())
}

func (h *Handler) showEmployees(chatID int64) {
	if !h.requireAdmin(chatID) {
		return
	}

	text, err := h.employeeService.FormatAllEmployees()
	if err != nil {
		h.sendText(chatID, "❌ Error al obtener los empleados: "+err.Error())
		return
	}

	h.sendText(chatID, text)
}

func (h *Handler) showAdmins(chatID int64) {
	if !h.requireAdmin(chatID) {
		return
	}

	text, err := h.employeeService.FormatAdmins()
	if err != nil {
		h.sendText(chatID, "❌ Error al obtener los administradores: "+err.Error())
		return
	}

	h.sendText(chatID, text)
}

func (h *Handler) setRole(chatID int64, args string, role models.Role) {
	if !h.requireAdmin(chatID) {
		return
	}

	code := strings.TrimSpace(args)
	if code == "" {
		h.sendText(chatID, "❌ Indica el código del empleado.\nEjemplo: /promote E-001")
		return
	}

	employee, err := h.employeeService.SetRole(code, role)
	switch {
	case errors.Is(err, service.ErrEmployeeNotFound):
		h.sendText(chatID, "❌ No existe ningún empleado con el código "+code+".")
		return
	case errors.Is(err, service.ErrProtectedAdmin):
		h.sendText(chatID, "❌ No se puede quitar el administrador principal de la configuración.")
		return
	case err != nil:
		logrus.WithError(err).WithField("code", code).Error("Failed to update role")
		h.sendText(chatID, "❌ Error al cambiar el rol: "+err.Error())
		return
	}

	if role == models.RoleAdmin {
		h.sendText(chatID, fmt.Sprintf("✅ %s (%s) ahora es administrador.", employee.DisplayName(), employee.Code))
		return
	}
	h.sendText(chatID, fmt.Sprintf("✅ %s (%s) ya no es administrador.", employee.DisplayName(), employee.Code))
}

func (h *Handler) showMonthStats(chatID int64, args string) {
	if !h.requireAdmin(chatID) {
		return
	}
	month, ok := h.parseMonthArg(chatID, args)
	if !ok {
		return
	}

	stats, err := h.statsService.MonthStats(month)
	if err != nil {
		h.sendText(chatID, "❌ Error al obtener el resumen: "+err.Error())
		return
	}

	h.sendText(chatID, h.statsService.FormatMonthStats(month, stats))
}

func (h *Handler) removeEmployee(chatID int64, args string) {
	if !h.requireAdmin(chatID) {
		return
	}

	code := strings.TrimSpace(args)
	if code == "" {
		h.sendText(chatID, "❌ Indica el código del empleado.\nEjemplo: /remove E-001")
		return
	}

	employee, err := h.importService.RemoveEmployee(code)
	switch {
	case errors.Is(err, service.ErrEmployeeNotFound):
		h.sendText(chatID, "❌ No existe ningún empleado con el código "+code+".")
		return
	case errors.Is(err, service.ErrProtectedAdmin):
		h.sendText(chatID, "❌ No se puede borrar a un administrador. Usa antes /demote.")
		return
	case err != nil:
		logrus.WithError(err).WithField("code", code).Error("Failed to remove employee")
		h.sendText(chatID, "❌ Error al borrar el empleado: "+err.Error())
		return
	}

	h.sendText(chatID, fmt.Sprintf("🗑 Empleado %s (%s) borrado.", employee.DisplayName(), employee.Code))
}
