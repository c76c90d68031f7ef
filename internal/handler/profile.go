package handler

import (
	"errors"
	"strings"

	"shift-calendar-bot/internal/models"
	"shift-calendar-bot/internal/service"

	"github.com/sirupsen/logrus"
)

// startLink links right away when a code is given, otherwise asks for it.
func (h *Handler) startLink(chatID int64, args string) {
	if code := strings.TrimSpace(args); code != "" {
		h.linkEmployee(chatID, code)
		return
	}

	h.userStates[chatID] = stateAwaitingCode
	h.sendText(chatID, "✏️ Envía tu código de empleado:")
}

func (h *Handler) linkEmployee(chatID int64, code string) {
	employee, err := h.employeeService.LinkChat(chatID, code)
	if errors.Is(err, service.ErrEmployeeNotFound) {
		h.sendText(chatID, "❌ No existe ningún empleado con el código "+strings.TrimSpace(code)+".")
		return
	}
	if err != nil {
		logrus.WithError(err).WithField("chat_id", chatID).Error("Failed to link employee")
		h.sendText(chatID, "❌ Error al vincular: "+err.Error())
		return
	}

	h.sendText(chatID, "✅ Chat vinculado.\n\n"+h.employeeService.FormatEmployee(employee))
}

func (h *Handler) showProfile(chatID int64) {
	employee, ok := h.currentEmployee(chatID)
	if !ok {
		return
	}
	text := h.employeeService.FormatEmployee(employee)
	counts, err := h.statsService.RecordCounts(employee.ID)
	if err != nil {
		logrus.WithError(err).WithField("chat_id", chatID).Warn("Failed to count records")
	} else {
		text += "\n" + h.statsService.FormatRecordCounts(counts)
	}
	h.sendText(chatID, text)
}

func (h *Handler) showMyStats(chatID int64) {
	employee, ok := h.currentEmployee(chatID)
	if !ok {
		return
	}

	stats, err := h.statsService.EmployeeStats(employee.ID)
	if err != nil {
		h.sendText(chatID, "❌ Error al obtener los resúmenes: "+err.Error())
		return
	}
	h.sendText(chatID, h.statsService.FormatStatsList(stats))
}

// currentEmployee resolves the employee of chatID, replying to the chat
// when there is none.
func (h *Handler) currentEmployee(chatID int64) (*models.Employee, bool) {
	employee, err := h.employeeService.GetByChat(chatID)
	if errors.Is(err, service.ErrEmployeeNotLinked) {
		h.sendText(chatID, "❌ Tu chat no está vinculado a ningún empleado.\nUsa /link CÓDIGO para vincularlo.")
		return nil, false
	}
	if err != nil {
		logrus.WithError(err).WithField("chat_id", chatID).Error("Failed to get employee")
		h.sendText(chatID, "❌ Error al obtener tu perfil: "+err.Error())
		return nil, false
	}
	return employee, true
}
