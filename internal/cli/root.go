// Package cli resolves calendars straight from a snapshot export, without
// the bot or its database.
package cli

import (
	"fmt"
	"strings"
	"time"

	"shift-calendar-bot/internal/calendar"
	"shift-calendar-bot/pkg/snapshot"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:          "calendar",
	Short:        "Resolve employee shift calendars from a snapshot file",
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(monthCmd)
	rootCmd.AddCommand(monthsCmd)
}

func Execute() error {
	return rootCmd.Execute()
}

// loadEmployee reads the snapshot at path and picks the employee by code.
func loadEmployee(path, code string) (snapshot.Employee, error) {
	if strings.TrimSpace(path) == "" {
		return snapshot.Employee{}, fmt.Errorf("--file is required")
	}
	if strings.TrimSpace(code) == "" {
		return snapshot.Employee{}, fmt.Errorf("--employee is required")
	}

	file, err := snapshot.ParseSnapshotJSON(path)
	if err != nil {
		return snapshot.Employee{}, err
	}

	employee, ok := file.Find(code)
	if !ok {
		return snapshot.Employee{}, fmt.Errorf("employee %q not found in %s", code, path)
	}
	return employee, nil
}

// resolveToday parses the --today flag, falling back to now.
func resolveToday(arg string, now time.Time) (calendar.Date, error) {
	if strings.TrimSpace(arg) == "" {
		return calendar.DateOf(now), nil
	}
	today, ok := calendar.Normalize(arg)
	if !ok {
		return calendar.Date{}, fmt.Errorf("invalid --today %q", arg)
	}
	return today, nil
}
