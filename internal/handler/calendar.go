package handler

import (
	"strings"

	"shift-calendar-bot/internal/calendar"
	"shift-calendar-bot/internal/service"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"
)

// parseMonthArg reads an optional month argument, defaulting to the
// current month.
func (h *Handler) parseMonthArg(chatID int64, args string) (calendar.MonthKey, bool) {
	args = strings.TrimSpace(args)
	if args == "" {
		return h.calendarService.CurrentMonth(), true
	}

	month, err := calendar.ParseMonthKey(args)
	if err != nil {
		h.sendText(chatID, "❌ Mes no válido. Usa el formato AAAA-MM, por ejemplo /calendar 2025-10")
		return calendar.MonthKey{}, false
	}
	return month, true
}

func (h *Handler) showCalendar(chatID int64, args string) {
	employee, ok := h.currentEmployee(chatID)
	if !ok {
		return
	}
	month, ok := h.parseMonthArg(chatID, args)
	if !ok {
		return
	}

	resolved, err := h.calendarService.MonthCalendar(employee.ID, month)
	if err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{
			"chat_id": chatID,
			"month":   month.String(),
		}).Error("Failed to build calendar")
		h.sendText(chatID, "❌ Error al generar el calendario: "+err.Error())
		return
	}

	msg := tgbotapi.NewMessage(chatID, h.calendarService.FormatMonth(employee, resolved))
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("⏱ Total", callbackTotal+month.String()),
		),
	)
	h.send(msg)
}

func (h *Handler) showMonths(chatID int64) {
	employee, ok := h.currentEmployee(chatID)
	if !ok {
		return
	}

	months, err := h.calendarService.AvailableMonths(employee.ID)
	if err != nil {
		logrus.WithError(err).WithField("chat_id", chatID).Error("Failed to list months")
		h.sendText(chatID, "❌ Error al obtener los meses: "+err.Error())
		return
	}

	msg := tgbotapi.NewMessage(chatID, h.calendarService.FormatMonths(months))
	msg.ReplyMarkup = monthsKeyboard(months)
	h.send(msg)
}

// monthsKeyboard lays the months out three per row.
func monthsKeyboard(months []calendar.MonthKey) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	var row []tgbotapi.InlineKeyboardButton
	for _, k := range months {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(k.String(), callbackMonth+k.String()))
		if len(row) == 3 {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func (h *Handler) showTotal(chatID int64, args string) {
	employee, ok := h.currentEmployee(chatID)
	if !ok {
		return
	}
	month, ok := h.parseMonthArg(chatID, args)
	if !ok {
		return
	}

	total, err := h.calendarService.MonthTotal(employee.ID, month)
	if err != nil {
		logrus.WithError(err).WithField("chat_id", chatID).Error("Failed to compute total")
		h.sendText(chatID, "❌ Error al calcular el total: "+err.Error())
		return
	}

	h.sendText(chatID, service.FormatTotal(month, total))
}

func (h *Handler) showLeave(chatID int64) {
	employee, ok := h.currentEmployee(chatID)
	if !ok {
		return
	}

	leave, err := h.calendarService.CurrentLeave(employee.ID)
	if err != nil {
		logrus.WithError(err).WithField("chat_id", chatID).Error("Failed to get current leave")
		h.sendText(chatID, "❌ Error al consultar la baja: "+err.Error())
		return
	}

	h.sendText(chatID, h.calendarService.FormatLeave(leave))
}

func (h *Handler) showDay(chatID int64, args string) {
	employee, ok := h.currentEmployee(chatID)
	if !ok {
		return
	}

	day := h.calendarService.Today()
	if arg := strings.TrimSpace(args); arg != "" {
		parsed, ok := calendar.Normalize(arg)
		if !ok {
			h.sendText(chatID, "❌ Fecha no válida. Usa el formato AAAA-MM-DD, por ejemplo /day 2025-10-06")
			return
		}
		day = parsed
	}

	events, err := h.calendarService.DayEvents(employee.ID, day)
	if err != nil {
		logrus.WithError(err).WithField("chat_id", chatID).Error("Failed to get day events")
		h.sendText(chatID, "❌ Error al obtener los fichajes: "+err.Error())
		return
	}

	h.sendText(chatID, h.calendarService.FormatDay(day, events))
}
