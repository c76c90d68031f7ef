package handler

import (
	"shift-calendar-bot/internal/models"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func (h *Handler) handleCommand(message *tgbotapi.Message) {
	chatID := message.Chat.ID
	command := message.Command()
	args := message.CommandArguments()

	switch command {
	case "start":
		h.sendStartMessage(chatID)
	case "help":
		h.sendHelpMessage(chatID)

	// perfil
	case "link":
		h.startLink(chatID, args)
	case "me", "perfil":
		h.showProfile(chatID)

	// calendario
	case "calendar", "calendario":
		h.showCalendar(chatID, args)
	case "months", "meses":
		h.showMonths(chatID)
	case "total":
		h.showTotal(chatID, args)
	case "leave", "baja":
		h.showLeave(chatID)
	case "day", "dia":
		h.showDay(chatID, args)
	case "mystats", "resumen":
		h.showMyStats(chatID)

	// administración
	case "import":
		h.importFile(chatID, args)
	case "employees", "empleados":
		h.showEmployees(chatID)
	case "admins":
		h.showAdmins(chatID)
	case "promote":
		h.setRole(chatID, args, models.RoleAdmin)
	case "demote":
		h.setRole(chatID, args, models.RoleEmployee)
	case "stats":
		h.showMonthStats(chatID, args)
	case "remove":
		h.removeEmployee(chatID, args)

	default:
		h.sendUnknownCommand(chatID)
	}
}

func (h *Handler) sendUnknownCommand(chatID int64) {
	h.sendText(chatID, "❌ Comando desconocido. Usa /help para ver la lista de comandos.")
}

func (h *Handler) sendStartMessage(chatID int64) {
	text := `👋 ¡Hola! Soy el bot del calendario de turnos.

Para empezar, vincula tu chat con tu código de empleado:
/link CÓDIGO

Después podrás consultar tu calendario con /calendar.
Usa /help para ver todos los comandos.`

	h.sendText(chatID, text)
}

func (h *Handler) sendHelpMessage(chatID int64) {
	text := `📋 Comandos disponibles:

👤 Perfil:
/link CÓDIGO - Vincular el chat a tu código de empleado
/me - Ver tu perfil

📅 Calendario:
/calendar [AAAA-MM] - Calendario del mes (por defecto, el actual)
/months - Meses disponibles
/total [AAAA-MM] - Horas trabajadas en el mes
/leave - Baja médica activa
/day [AAAA-MM-DD] - Fichajes del día (por defecto, hoy)
/mystats - Resúmenes de los meses consultados

🛠 Administración:
/import RUTA - Importar un fichero .json o un cuadrante .xlsx
/employees - Lista de empleados
/admins - Lista de administradores
/promote CÓDIGO - Dar permisos de administrador
/demote CÓDIGO - Quitar permisos de administrador
/stats [AAAA-MM] - Resumen del mes de todos los empleados
/remove CÓDIGO - Borrar un empleado y sus datos importados

Leyenda: 🟢 turno  ⚪ libre  🏖 vacaciones  📝 asuntos propios  🏥 baja  ⚠️ fichaje incompleto`

	h.sendText(chatID, text)
}
