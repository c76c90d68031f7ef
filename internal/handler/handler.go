package handler

import (
	"strings"

	"shift-calendar-bot/internal/service"
	"shift-calendar-bot/pkg/telegram"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"
)

const stateAwaitingCode = "awaiting_code"

// callback data prefixes
const (
	callbackMonth = "month:"
	callbackTotal = "total:"
)

type Handler struct {
	bot             telegram.Sender
	employeeService *service.EmployeeService
	calendarService *service.CalendarService
	importService   *service.ImportService
	statsService    *service.StatsService
	userStates      map[int64]string
}

func NewHandler(
	bot telegram.Sender,
	employeeService *service.EmployeeService,
	calendarService *service.CalendarService,
	importService *service.ImportService,
	statsService *service.StatsService,
) *Handler {
	return &Handler{
		bot:             bot,
		employeeService: employeeService,
		calendarService: calendarService,
		importService:   importService,
		statsService:    statsService,
		userStates:      make(map[int64]string),
	}
}

func (h *Handler) HandleUpdates(updates tgbotapi.UpdatesChannel) {
	for update := range updates {
		h.HandleUpdate(update)
	}
}

func (h *Handler) HandleUpdate(update tgbotapi.Update) {
	if update.CallbackQuery != nil {
		h.handleCallbackQuery(update.CallbackQuery)
		return
	}

	if update.Message == nil {
		return
	}

	h.handleMessage(update.Message)
}

func (h *Handler) handleCallbackQuery(callback *tgbotapi.CallbackQuery) {
	if callback.Message == nil {
		return
	}
	chatID := callback.Message.Chat.ID
	data := callback.Data

	editMsg := tgbotapi.NewEditMessageReplyMarkup(chatID, callback.Message.MessageID, tgbotapi.NewInlineKeyboardMarkup())
	h.request(editMsg)

	switch {
	case strings.HasPrefix(data, callbackMonth):
		h.showCalendar(chatID, strings.TrimPrefix(data, callbackMonth))
	case strings.HasPrefix(data, callbackTotal):
		h.showTotal(chatID, strings.TrimPrefix(data, callbackTotal))
	default:
		logrus.WithField("data", data).Warn("Unknown callback")
	}

	h.request(tgbotapi.NewCallback(callback.ID, ""))
}

func (h *Handler) handleMessage(message *tgbotapi.Message) {
	if message.Chat == nil {
		return
	}
	chatID := message.Chat.ID

	fields := logrus.Fields{"chat_id": chatID}
	if message.From != nil {
		fields["user"] = message.From.UserName
	}
	logrus.WithFields(fields).Info(message.Text)

	if message.IsCommand() {
		delete(h.userStates, chatID)
		h.handleCommand(message)
		return
	}

	if state, exists := h.userStates[chatID]; exists {
		h.handleState(message, state)
		return
	}

	h.sendText(chatID, "🤔 No entiendo ese mensaje. Usa /help para ver los comandos.")
}

func (h *Handler) handleState(message *tgbotapi.Message, state string) {
	switch state {
	case stateAwaitingCode:
		delete(h.userStates, message.Chat.ID)
		h.linkEmployee(message.Chat.ID, message.Text)
	default:
		delete(h.userStates, message.Chat.ID)
	}
}

func (h *Handler) sendText(chatID int64, text string) {
	h.send(tgbotapi.NewMessage(chatID, text))
}

func (h *Handler) send(c tgbotapi.Chattable) {
	if _, err := h.bot.Send(c); err != nil {
		logrus.WithError(err).Error("Failed to send message")
	}
}

func (h *Handler) request(c tgbotapi.Chattable) {
	if _, err := h.bot.Request(c); err != nil {
		logrus.WithError(err).Debug("Telegram request failed")
	}
}
