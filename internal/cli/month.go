package cli

import (
	"fmt"
	"strings"
	"time"

	"shift-calendar-bot/internal/calendar"

	"github.com/spf13/cobra"
)

var monthCmd = LeafCommand{
	Use:   "month",
	Short: "Print the resolved calendar of one employee month",
	StrFlags: []StringFlag{
		{Name: "file", Usage: "snapshot JSON file"},
		{Name: "employee", Usage: "employee code"},
		{Name: "month", Usage: "month as YYYY-MM (defaults to the current month)"},
		{Name: "today", Usage: "reference date as YYYY-MM-DD (defaults to today)"},
		{Name: "shift", Usage: "default weekday shift range", Default: calendar.DefaultShiftRange},
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		file, _ := cmd.Flags().GetString("file")
		code, _ := cmd.Flags().GetString("employee")
		month, _ := cmd.Flags().GetString("month")
		today, _ := cmd.Flags().GetString("today")
		shift, _ := cmd.Flags().GetString("shift")
		return runMonth(cmd, file, code, month, today, shift, time.Now())
	},
}.Build()

func runMonth(cmd *cobra.Command, path, code, monthArg, todayArg, shift string, now time.Time) error {
	employee, err := loadEmployee(path, code)
	if err != nil {
		return err
	}

	today, err := resolveToday(todayArg, now)
	if err != nil {
		return err
	}

	month := today.MonthKey()
	if strings.TrimSpace(monthArg) != "" {
		if month, err = calendar.ParseMonthKey(monthArg); err != nil {
			return err
		}
	}

	resolved := calendar.Resolve(employee.Raw().Decode(month, today), calendar.Options{DefaultShift: shift})

	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(out, "%s  %s\n", Primary(employee.Name), Silent(employee.Code+" · "+month.String()))
	for _, cell := range resolved.Cells {
		_, _ = fmt.Fprintln(out, formatCell(cell))
	}

	summary := resolved.Summary()
	_, _ = fmt.Fprintln(out)
	_, _ = fmt.Fprintf(out, "work %d, free %d, vacation %d, personal %d, leave %d, incomplete %d\n",
		summary.WorkDays, summary.FreeDays, summary.VacationDays, summary.PersonalDays,
		summary.LeaveDays, summary.IncompleteDays)
	_, _ = fmt.Fprintf(out, "total %s\n", Info(resolved.Total.String()))
	if resolved.CurrentLeave != nil {
		_, _ = fmt.Fprintf(out, "on leave since %s (%s)\n", resolved.CurrentLeave.Start, resolved.CurrentLeave.Reason())
	}
	return nil
}

func formatCell(cell calendar.DayCell) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s  %-14s", cell.Date, cell.Date.Weekday().String()[:3], cell.Category)
	fmt.Fprintf(&b, " %s", cell.Label)
	if cell.Schedule != "" {
		fmt.Fprintf(&b, " %s", Silent(cell.Schedule))
	}
	if cell.Reason != "" && cell.Reason != cell.Label {
		fmt.Fprintf(&b, " (%s)", cell.Reason)
	}
	if cell.WorkedMinutes != nil {
		fmt.Fprintf(&b, " %dh %02dm", *cell.WorkedMinutes/60, *cell.WorkedMinutes%60)
	}
	if cell.IncompleteClockIn {
		b.WriteString(" " + Warning("incomplete"))
	}
	return b.String()
}
