package cli

import (
	"fmt"
	"time"

	"shift-calendar-bot/internal/calendar"

	"github.com/spf13/cobra"
)

var monthsCmd = LeafCommand{
	Use:   "months",
	Short: "List the months selectable for an employee",
	StrFlags: []StringFlag{
		{Name: "file", Usage: "snapshot JSON file"},
		{Name: "employee", Usage: "employee code"},
		{Name: "today", Usage: "reference date as YYYY-MM-DD (defaults to today)"},
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		file, _ := cmd.Flags().GetString("file")
		code, _ := cmd.Flags().GetString("employee")
		today, _ := cmd.Flags().GetString("today")
		return runMonths(cmd, file, code, today, time.Now())
	},
}.Build()

func runMonths(cmd *cobra.Command, path, code, todayArg string, now time.Time) error {
	employee, err := loadEmployee(path, code)
	if err != nil {
		return err
	}

	today, err := resolveToday(todayArg, now)
	if err != nil {
		return err
	}

	rosterMonths := calendar.RosterMonths(employee.Raw().DecodeRosters())
	for _, k := range calendar.AvailableMonths(rosterMonths, today) {
		line := k.String()
		if k == today.MonthKey() {
			line = Primary(line)
		}
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), line)
	}
	return nil
}
